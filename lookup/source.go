package lookup

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jevah-cli/jevah/content"
)

// Source adapts the lookup client to the content.Source interface, serving as
// the built-in catalog source alongside user-installed scripted ones.
type Source struct {
	client *Client
}

// NewSource returns the built-in catalog source over the given client.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

func (s *Source) Name() string {
	return "Jevah"
}

func (s *Source) ID() string {
	return "jevah"
}

// Search queries the catalog across every content kind.
func (s *Source) Search(q string) ([]*content.Item, error) {
	items, err := s.client.Search(q, "")
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		item.Source = s
	}
	return items, nil
}

// StreamsOf resolves the single direct stream for a catalog item, refreshing
// a stale file URL once on the way.
func (s *Source) StreamsOf(item *content.Item) ([]*content.Stream, error) {
	if !item.Kind.Playable() {
		return nil, fmt.Errorf("%s %q has no playable stream", item.Kind, item.Title)
	}

	uri := s.client.EnsurePlayableURL(item)
	if uri == "" {
		return nil, fmt.Errorf("no playable URL for %q", item.Title)
	}

	return []*content.Stream{{
		URL:       uri,
		Extension: strings.TrimPrefix(filepath.Ext(uri), "."),
	}}, nil
}
