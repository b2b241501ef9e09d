package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
)

// wireItem is the loosely-typed content shape the backend returns. Converted
// into the tagged content.Item at this boundary, never passed further up.
type wireItem struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	ContentType  string `json:"contentType"`
	FileURL      string `json:"fileUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	UploadedBy   string `json:"uploadedBy"`
	Duration     int    `json:"duration"`
}

// searchResponse mirrors the wire shape of the media search endpoint.
type searchResponse struct {
	Success bool       `json:"success"`
	Media   []wireItem `json:"media"`
}

// SearchMedia queries the backend catalog by title, optionally narrowed to one
// content kind. Items whose content type cannot be parsed are skipped.
func (c *Client) SearchMedia(title string, kind content.Kind, limit int) ([]*content.Item, error) {
	q := url.Values{}
	q.Set("search", title)
	if kind != "" {
		q.Set("contentType", string(kind))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}

	log.Infof("Searching jevah catalog for %q", title)

	var resp searchResponse
	if err := c.do(http.MethodGet, "/media/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	items := make([]*content.Item, 0, len(resp.Media))
	for _, w := range resp.Media {
		k, err := content.ParseKind(w.ContentType)
		if err != nil {
			log.Warnf("skipping item %s: %v", w.ID, err)
			continue
		}

		items = append(items, &content.Item{
			ID:           w.ID,
			Title:        w.Title,
			Kind:         k,
			FileURL:      w.FileURL,
			ThumbnailURL: w.ThumbnailURL,
			Uploader:     w.UploadedBy,
			Duration:     w.Duration,
			Index:        uint16(len(items)),
		})
	}

	log.Infof("Got response from jevah catalog, found %d results", len(items))
	return items, nil
}
