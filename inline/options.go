// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	ItemPicker  func([]*content.Item) *content.Item
	ItemsFilter func([]*content.Item) ([]*content.Item, error)
)

type Options struct {
	Out          io.Writer
	Sources      []content.Source
	IncludeStats bool
	Json         bool
	Query        string
	ItemPicker   mo.Option[ItemPicker]
	ItemsFilter  mo.Option[ItemsFilter]
	Streams      bool
}

func ParseItemPicker(kind, value string) (ItemPicker, error) {
	switch kind {
	case "first":
		return func(items []*content.Item) *content.Item {
			if len(items) == 0 {
				return nil
			}
			return items[0]
		}, nil
	case "last":
		return func(items []*content.Item) *content.Item {
			if len(items) == 0 {
				return nil
			}
			return items[len(items)-1]
		}, nil
	case "exact":
		return func(items []*content.Item) *content.Item {
			for _, it := range items {
				if it.Title == value {
					return it
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(items []*content.Item) *content.Item {
			if len(items) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(items)-1))
			return items[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseItemsFilter parses a string description of a result filter.
// Format: "all", a media kind ("video", "audio", "ebook", "sermon"),
// a range "1-5", a substring "@text@" or a single index "5"
func ParseItemsFilter(description string) (ItemsFilter, error) {
	if description == "all" {
		return func(items []*content.Item) ([]*content.Item, error) {
			return items, nil
		}, nil
	}

	// Media kind: "audio", "sermon", ...
	if kind, err := content.ParseKind(description); err == nil {
		return func(items []*content.Item) ([]*content.Item, error) {
			return lo.Filter(items, func(it *content.Item, _ int) bool {
				return it.Kind == kind
			}), nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(items []*content.Item) ([]*content.Item, error) {
					start := util.Min(from, uint64(len(items)))
					end := util.Min(to+1, uint64(len(items)))
					if start > end {
						return []*content.Item{}, nil
					}
					return items[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(items []*content.Item) ([]*content.Item, error) {
			return lo.Filter(items, func(it *content.Item, _ int) bool {
				return strings.Contains(strings.ToLower(it.Title), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(items []*content.Item) ([]*content.Item, error) {
			if uint64(len(items)) <= idx {
				return []*content.Item{}, nil
			}
			return []*content.Item{items[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid items filter: %s", description)
}
