package jevah

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jevah-cli/jevah/auth"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/internal/sync"
	"github.com/jevah-cli/jevah/log"
)

// MarkViewed records the item in the signed-in user's account history. When no
// token is stored the call is a no-op so anonymous usage stays silent. On
// network failure the mutation is committed to the offline sync queue and the
// sync_queued sentinel is returned so the UI can surface a notification.
func (j *Jevah) MarkViewed(item *content.Item) error {
	if j.token == "" {
		token, err := auth.GetToken()
		if err != nil || token == "" {
			return nil
		}
		j.token = token
	}

	body := map[string]interface{}{
		"content_id": item.ID,
		"kind":       string(item.Kind),
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error(err)
		return err
	}

	req, err := http.NewRequest(
		http.MethodPost,
		j.base()+"/account/history",
		bytes.NewBuffer(jsonBody),
	)

	if err != nil {
		log.Error(err)
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+j.token)
	req.Header.Set("Accept", "application/json")

	log.Info("Syncing account history: " + string(jsonBody))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Warnf("Network failure, committing to offline sync queue: %v", err)
		if qErr := sync.QueueFailure(item.ID, item.Kind, sync.ActionView); qErr == nil {
			return fmt.Errorf("sync_queued") // Sentinel error string intercepted by the TUI for asynchronous notification.
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("Request failed with status %d, committing to offline sync queue", resp.StatusCode)
		if qErr := sync.QueueFailure(item.ID, item.Kind, sync.ActionView); qErr == nil {
			return fmt.Errorf("sync_queued")
		}
		return fmt.Errorf("invalid response code %d", resp.StatusCode)
	}

	var response struct {
		Success bool `json:"success"`
	}

	return json.NewDecoder(resp.Body).Decode(&response)
}
