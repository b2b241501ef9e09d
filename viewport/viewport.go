// Package viewport computes which rendered list item is most visible.
//
// The resolver is pure: it ranks layout rectangles against the visible window
// by intersection ratio and applies a minimum-visibility threshold so barely
// scrolled-in items never win. Whether the winner is acted upon (auto-play) is
// the caller's policy; the resolver only answers "which item would it be".
package viewport

import (
	"sync"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/mediakey"
	"github.com/samber/mo"
)

// MinVisibleRatio is the fraction of an item that must be inside the window
// before it can be selected. Below it the resolver reports no candidate,
// which prevents play/pause flapping during fast scrolls.
const MinVisibleRatio = 0.15

// Layout records one rendered item's rectangle and identity.
// Overwritten on re-layout, never explicitly deleted; a stale rectangle for an
// unmounted item is harmless because re-registration supersedes it.
type Layout struct {
	Key    mediakey.Key
	Y      float64
	Height float64
	Kind   content.Kind
	URI    string
}

// Registry tracks layouts in insertion order so resolution ties break
// deterministically toward the item registered first.
type Registry struct {
	mu      sync.Mutex
	order   []mediakey.Key
	layouts map[mediakey.Key]Layout
}

// NewRegistry returns an empty layout registry.
func NewRegistry() *Registry {
	return &Registry{
		layouts: make(map[mediakey.Key]Layout),
	}
}

// Put records or updates the layout for its key. Updating an existing key
// keeps its original position in the iteration order.
func (r *Registry) Put(l Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.layouts[l.Key]; !ok {
		r.order = append(r.order, l.Key)
	}
	r.layouts[l.Key] = l
}

// Layouts returns a snapshot of every tracked layout in insertion order.
func (r *Registry) Layouts() []Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]Layout, 0, len(r.order))
	for _, k := range r.order {
		snapshot = append(snapshot, r.layouts[k])
	}
	return snapshot
}

// Clear drops every tracked layout. Used when the owning list is rebuilt.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.layouts = make(map[mediakey.Key]Layout)
}

// Resolve returns the registry's most visible layout for the given window.
func (r *Registry) Resolve(scrollTop, viewportHeight float64) mo.Option[Layout] {
	return Resolve(scrollTop, viewportHeight, r.Layouts())
}

// Resolve picks the layout with the highest visible fraction of its own
// height inside [scrollTop, scrollTop+viewportHeight]. Layouts are considered
// in slice order and the first maximum wins, so equal ratios resolve to the
// earlier entry. Returns None when nothing reaches MinVisibleRatio.
func Resolve(scrollTop, viewportHeight float64, layouts []Layout) mo.Option[Layout] {
	if viewportHeight <= 0 {
		return mo.None[Layout]()
	}

	var (
		best      Layout
		bestRatio float64
	)

	for _, l := range layouts {
		ratio := visibleRatio(scrollTop, viewportHeight, l)
		if ratio > bestRatio {
			best = l
			bestRatio = ratio
		}
	}

	if bestRatio < MinVisibleRatio {
		return mo.None[Layout]()
	}
	return mo.Some(best)
}

// visibleRatio reports which fraction of l's height intersects the window,
// clamped to [0, 1].
func visibleRatio(scrollTop, viewportHeight float64, l Layout) float64 {
	if l.Height <= 0 {
		return 0
	}

	top := max(scrollTop, l.Y)
	bottom := min(scrollTop+viewportHeight, l.Y+l.Height)
	if bottom <= top {
		return 0
	}

	ratio := (bottom - top) / l.Height
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
