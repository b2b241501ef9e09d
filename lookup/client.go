package lookup

import (
	"fmt"
	"strings"
	"time"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/query"
)

// searchLimit bounds one catalog search round-trip.
const searchLimit = 25

// notFoundID marks a query cached as unresolvable, so repeated lookups for a
// missing title fail fast instead of re-querying the backend.
const notFoundID = "!"

// Searcher is the catalog surface the client queries. Implemented by
// api.Client in production and by fakes in tests.
type Searcher interface {
	SearchMedia(title string, kind content.Kind, limit int) ([]*content.Item, error)
}

// Client is the cached lookup client. Construct one per application and share it.
type Client struct {
	api Searcher

	// relation maps a normalized (kind, title) query to the content id it
	// resolved to, or notFoundID.
	relation *cacher[string, string]
	// ids holds full item records keyed by content id.
	ids *cacher[string, *content.Item]
	// search holds result id pages per normalized query.
	search *cacher[string, []string]
	// fail short-circuits recently failed queries to mitigate API pressure.
	fail *cacher[string, bool]
}

// NewClient returns a lookup client over the given catalog searcher.
func NewClient(api Searcher) *Client {
	return &Client{
		api:      api,
		relation: newCacher[string, string]("lookup_relations.json", 0, normalizedName),
		ids:      newCacher[string, *content.Item]("lookup_id_cache.json", time.Hour*24*2, nil),
		search:   newCacher[string, []string]("lookup_search_cache.json", time.Hour*24*10, normalizedName),
		fail:     newCacher[string, bool]("lookup_fail_cache.json", time.Minute, normalizedName),
	}
}

// normalizedName returns a lowercased, trimmed string for consistent comparison.
func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// queryKey scopes a title query to one content kind so a sermon and a song
// with the same title never shadow each other in the caches.
func queryKey(title string, kind content.Kind) string {
	return string(kind) + "/" + normalizedName(title)
}

// GetByID returns the cached item with the given content id, if known.
func (c *Client) GetByID(id string) (*content.Item, bool) {
	return c.ids.Get(id).Get()
}

// Search returns catalog items matching the given title and kind, going
// through the search cache first.
func (c *Client) Search(title string, kind content.Kind) ([]*content.Item, error) {
	name := queryKey(title, kind)
	_ = query.Remember(normalizedName(title), 1)

	if _, failed := c.fail.Get(name).Get(); failed {
		return nil, fmt.Errorf("failed to search for %s", title)
	}

	if ids, ok := c.search.Get(name).Get(); ok {
		items := make([]*content.Item, 0, len(ids))
		for _, id := range ids {
			if item, ok := c.ids.Get(id).Get(); ok {
				items = append(items, item)
			}
		}

		if len(items) == 0 {
			// Stale page: the item records expired out from under it.
			_ = c.search.Delete(name)
			return c.Search(title, kind)
		}

		return items, nil
	}

	items, err := c.api.SearchMedia(title, kind, searchLimit)
	if err != nil {
		log.Error(err)
		_ = c.fail.Set(name, true)
		return nil, err
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
		_ = c.ids.Set(item.ID, item)
	}
	_ = c.search.Set(name, ids)

	return items, nil
}
