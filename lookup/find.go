package lookup

import (
	"fmt"
	"strings"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/util"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// FindClosest returns the catalog item closest to the given title within one
// content kind, comparing candidates by Levenshtein distance.
func (c *Client) FindClosest(title string, kind content.Kind) (*content.Item, error) {
	name := normalizedName(title)
	return c.findClosest(name, name, kind, 0, 3)
}

// findClosest recursively relaxes the query by dropping its trailing token
// until something matches or the attempt limit is reached.
func (c *Client) findClosest(name, originalName string, kind content.Kind, try, limit int) (*content.Item, error) {
	if try >= limit {
		err := fmt.Errorf("no results found for %s %q", kind, name)
		log.Error(err)
		_ = c.relation.Set(queryKey(originalName, kind), notFoundID)
		return nil, err
	}

	id := c.relation.Get(queryKey(name, kind))
	if id.IsPresent() {
		if id.MustGet() == notFoundID {
			return nil, fmt.Errorf("no results found for %s %q", kind, name)
		}

		if item, ok := c.ids.Get(id.MustGet()).Get(); ok {
			if try > 0 {
				_ = c.relation.Set(queryKey(originalName, kind), item.ID)
			}
			return item, nil
		}
	}

	items, err := c.Search(name, kind)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	if id.IsPresent() {
		found, ok := lo.Find(items, func(item *content.Item) bool {
			return item.ID == id.MustGet()
		})

		if ok {
			return found, nil
		}

		// The cached relation exists, but the item is gone from the catalog.
		// Cleanup: remove the stale identifier so the next lookup re-resolves.
		_ = c.relation.Delete(queryKey(name, kind))
		log.Infof("Item %s was removed from the catalog", id.MustGet())
	}

	if len(items) == 0 {
		words := strings.Split(name, " ")
		if len(words) <= 2 {
			// Too short to relax further; exhaust the attempts.
			return c.findClosest(name, originalName, kind, limit, limit)
		}

		alternateName := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof(`No results found for %q, trying %q`, name, alternateName)
		return c.findClosest(alternateName, originalName, kind, try+1, limit)
	}

	// Apply Levenshtein distance to identify the most relevant match.
	closest := lo.MinBy(items, func(a, b *content.Item) bool {
		return levenshtein.Distance(
			name,
			normalizedName(a.Title),
		) < levenshtein.Distance(
			name,
			normalizedName(b.Title),
		)
	})

	log.Info("Found closest match: " + closest.Title)

	save := func(n string) {
		if id := c.relation.Get(queryKey(n, kind)); id.IsAbsent() {
			_ = c.relation.Set(queryKey(n, kind), closest.ID)
		}
	}

	save(name)
	save(originalName)

	_ = c.ids.Set(closest.ID, closest)
	return closest, nil
}
