package lookup

import (
	"regexp"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
)

// playableURLPattern accepts well-formed absolute http(s) URLs. Anything else
// (empty, expired placeholder, relative path) triggers a refresh lookup.
var playableURLPattern = regexp.MustCompile(`^https?://\S+$`)

// EnsurePlayableURL returns a playable URL for the item. A well-formed file
// URL is returned unchanged without touching the catalog; otherwise the
// catalog is queried once for the best match by (title, kind) and its file URL
// substituted. When even that fails, the original value comes back unchanged —
// the caller shows an error state instead of retrying indefinitely.
func (c *Client) EnsurePlayableURL(item *content.Item) string {
	if playableURLPattern.MatchString(item.FileURL) {
		return item.FileURL
	}

	log.Infof("Refreshing stale file URL for %s %q", item.Kind, item.Title)

	match, err := c.FindClosest(item.Title, item.Kind)
	if err != nil {
		log.Warnf("URL refresh failed for %q: %v", item.Title, err)
		return item.FileURL
	}

	if playableURLPattern.MatchString(match.FileURL) {
		return match.FileURL
	}
	return item.FileURL
}
