package api

import (
	"fmt"
	"net/http"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/stats"
)

// statsResponse mirrors the wire shape of the stats endpoint.
type statsResponse struct {
	Success bool               `json:"success"`
	Stats   stats.ContentStats `json:"stats"`
}

// Stats fetches the authoritative engagement counters for the given content.
// Returns nil (not an error) when the backend has no stats for the item, so
// callers keep working from their cached copy.
func (c *Client) Stats(contentID string, kind content.Kind) (*stats.ContentStats, error) {
	var resp statsResponse
	err := c.do(http.MethodGet, fmt.Sprintf("/content/%s/%s/stats", kind, contentID), nil, &resp)
	if err != nil {
		log.Warnf("stats fetch failed for %s: %v", contentID, err)
		return nil, nil // Graceful degradation
	}
	if !resp.Success {
		return nil, nil
	}

	s := resp.Stats
	return &s, nil
}
