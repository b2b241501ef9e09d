package api

import (
	"fmt"
	"net/http"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
)

// ToggleResult is the server's authoritative answer to a like/save toggle.
type ToggleResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Active  bool `json:"active"`
}

// likeResponse mirrors the wire shape of the like endpoint.
type likeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
	Liked   bool `json:"liked"`
}

// saveResponse mirrors the wire shape of the save endpoint.
type saveResponse struct {
	Success bool `json:"success"`
	Saves   int  `json:"saves"`
	Saved   bool `json:"saved"`
}

// shareResponse mirrors the wire shape of the share endpoint.
type shareResponse struct {
	Success bool `json:"success"`
	Shares  int  `json:"shares"`
}

// ToggleLike flips the requesting user's like on the given content.
func (c *Client) ToggleLike(contentID string, kind content.Kind) (ToggleResult, error) {
	log.Infof("Toggling like on %s %s", kind, contentID)

	var resp likeResponse
	err := c.do(http.MethodPost, fmt.Sprintf("/content/%s/%s/like", kind, contentID), nil, &resp)
	if err != nil {
		return ToggleResult{}, err
	}
	if !resp.Success {
		return ToggleResult{}, fmt.Errorf("jevah api: like toggle rejected for %s", contentID)
	}

	return ToggleResult{Success: true, Count: resp.Likes, Active: resp.Liked}, nil
}

// ToggleSave flips the requesting user's save on the given content.
func (c *Client) ToggleSave(contentID string, kind content.Kind) (ToggleResult, error) {
	log.Infof("Toggling save on %s %s", kind, contentID)

	var resp saveResponse
	err := c.do(http.MethodPost, fmt.Sprintf("/content/%s/%s/save", kind, contentID), nil, &resp)
	if err != nil {
		return ToggleResult{}, err
	}
	if !resp.Success {
		return ToggleResult{}, fmt.Errorf("jevah api: save toggle rejected for %s", contentID)
	}

	return ToggleResult{Success: true, Count: resp.Saves, Active: resp.Saved}, nil
}

// RecordShare reports a share action. Shares only ever increment.
func (c *Client) RecordShare(contentID string, kind content.Kind) (int, error) {
	log.Infof("Recording share on %s %s", kind, contentID)

	var resp shareResponse
	err := c.do(http.MethodPost, fmt.Sprintf("/content/%s/%s/share", kind, contentID), nil, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Shares, nil
}

// RecordView reports a view. Fire-and-forget on the caller's side; the error
// is still returned so the sync queue can retry later.
func (c *Client) RecordView(contentID string, kind content.Kind) error {
	return c.do(http.MethodPost, fmt.Sprintf("/content/%s/%s/view", kind, contentID), nil, nil)
}
