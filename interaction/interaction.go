// Package interaction coordinates optimistic like/save/share/view actions.
//
// Every action flips the local stats copy before the network round-trip and
// rolls it back if the round-trip fails, so the UI always reacts instantly and
// never sticks in a wrong state. Concurrent actions on the same
// (content id, kind) pair serialize behind a per-pair lock; without it two
// in-flight toggles could double-apply or lose the rollback.
package interaction

import (
	"sync"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/stats"
)

// Remote is the backend surface the coordinator mutates. Implemented by
// api.Client in production and by fakes in tests. Every mutation must be
// idempotent per user so client retries are safe.
type Remote interface {
	ToggleLike(contentID string, kind content.Kind) (api.ToggleResult, error)
	ToggleSave(contentID string, kind content.Kind) (api.ToggleResult, error)
	RecordShare(contentID string, kind content.Kind) (int, error)
	RecordView(contentID string, kind content.Kind) error
}

// ViewQueue receives view reports that could not reach the backend, for a
// later background retry. Views are never rolled back locally.
type ViewQueue interface {
	Enqueue(contentID string, kind content.Kind)
}

// Coordinator serializes and applies optimistic interactions.
type Coordinator struct {
	remote Remote
	cache  *stats.Cache
	queue  ViewQueue

	mu    sync.Mutex
	locks map[lockKey]*sync.Mutex
}

type lockKey struct {
	contentID string
	kind      content.Kind
}

// New returns a coordinator over the given remote and local stats cache.
// queue may be nil, in which case failed view reports are dropped.
func New(remote Remote, cache *stats.Cache, queue ViewQueue) *Coordinator {
	return &Coordinator{
		remote: remote,
		cache:  cache,
		queue:  queue,
		locks:  make(map[lockKey]*sync.Mutex),
	}
}

// lockFor returns the serialization lock for one (content id, kind) pair,
// creating it on first use. Locks are never removed; the pair space is small
// within a session.
func (c *Coordinator) lockFor(contentID string, kind content.Kind) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := lockKey{contentID: contentID, kind: kind}
	l, ok := c.locks[k]
	if !ok {
		l = &sync.Mutex{}
		c.locks[k] = l
	}
	return l
}

// snapshot reads the current cached stats for rollback purposes.
func (c *Coordinator) snapshot(contentID string) stats.ContentStats {
	if s, ok := c.cache.Get(contentID).Get(); ok {
		return s
	}
	return stats.ContentStats{}
}

// ToggleLike optimistically flips the like state, then reconciles against the
// server response or rolls back on failure.
func (c *Coordinator) ToggleLike(contentID string, kind content.Kind) error {
	l := c.lockFor(contentID, kind)
	l.Lock()
	defer l.Unlock()

	before := c.snapshot(contentID)

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) {
		if s.User.Liked {
			s.User.Liked = false
			s.Likes--
			if s.Likes < 0 {
				s.Likes = 0
			}
		} else {
			s.User.Liked = true
			s.Likes++
		}
	})

	res, err := c.remote.ToggleLike(contentID, kind)
	if err != nil {
		log.Warnf("like toggle failed for %s, rolling back: %v", contentID, err)
		_ = c.cache.Set(contentID, before)
		return err
	}

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) {
		s.Likes = res.Count
		s.User.Liked = res.Active
	})
	return nil
}

// ToggleSave optimistically flips the save state, then reconciles against the
// server response or rolls back on failure.
func (c *Coordinator) ToggleSave(contentID string, kind content.Kind) error {
	l := c.lockFor(contentID, kind)
	l.Lock()
	defer l.Unlock()

	before := c.snapshot(contentID)

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) {
		if s.User.Saved {
			s.User.Saved = false
			s.Saves--
			if s.Saves < 0 {
				s.Saves = 0
			}
		} else {
			s.User.Saved = true
			s.Saves++
		}
	})

	res, err := c.remote.ToggleSave(contentID, kind)
	if err != nil {
		log.Warnf("save toggle failed for %s, rolling back: %v", contentID, err)
		_ = c.cache.Set(contentID, before)
		return err
	}

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) {
		s.Saves = res.Count
		s.User.Saved = res.Active
	})
	return nil
}

// Share optimistically bumps the share counter, reconciling with the server's
// count or rolling back on failure.
func (c *Coordinator) Share(contentID string, kind content.Kind) error {
	l := c.lockFor(contentID, kind)
	l.Lock()
	defer l.Unlock()

	before := c.snapshot(contentID)

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) { s.Shares++ })

	count, err := c.remote.RecordShare(contentID, kind)
	if err != nil {
		log.Warnf("share failed for %s, rolling back: %v", contentID, err)
		_ = c.cache.Set(contentID, before)
		return err
	}

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) { s.Shares = count })
	return nil
}

// View bumps the local view counter and reports the view in the background.
// Views are not a user-reversible action, so there is no rollback; a failed
// report lands on the retry queue instead.
func (c *Coordinator) View(contentID string, kind content.Kind) {
	_ = c.cache.Update(contentID, func(s *stats.ContentStats) { s.Views++ })

	go func() {
		if err := c.remote.RecordView(contentID, kind); err != nil {
			log.Warnf("view report failed for %s: %v", contentID, err)
			if c.queue != nil {
				c.queue.Enqueue(contentID, kind)
			}
		}
	}()
}

// Refresh replaces the local copy with the server's stats, when available.
// Used on real-time change hints and manual refresh; the hint itself carries
// no numbers, the fetch does.
func (c *Coordinator) Refresh(contentID string, kind content.Kind, fetch func() (*stats.ContentStats, error)) {
	server, err := fetch()
	if err != nil || server == nil {
		return
	}

	_ = c.cache.Update(contentID, func(s *stats.ContentStats) {
		s.Reconcile(*server)
	})
}
