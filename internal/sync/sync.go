// Package sync implements asynchronous background replay of interaction
// records that failed to reach the backend while it was unreachable.
package sync

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
)

// Mutation encapsulates a single interaction record for deferred replay.
type Mutation struct {
	Timestamp int64        `json:"timestamp"`
	ContentID string       `json:"content_id"`
	Kind      content.Kind `json:"kind"`
	Action    string       `json:"action"`
}

// Replayable actions. Toggles are never queued: their optimistic state was
// already rolled back, so replaying one later would flip state the user no
// longer expects.
const (
	ActionView  = "view"
	ActionShare = "share"
)

// syncFileOverride redirects the failure log, for tests.
var syncFileOverride string

func getSyncFile() string {
	if syncFileOverride != "" {
		return syncFileOverride
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	dir := filepath.Join(home, ".config", "jevah")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "failed_syncs.json")
}

// QueueFailure persists a failed interaction record to a local JSON-log for deferred reconciliation.
func QueueFailure(contentID string, kind content.Kind, action string) error {
	f, err := os.OpenFile(getSyncFile(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	mutation := Mutation{
		Timestamp: time.Now().Unix(),
		ContentID: contentID,
		Kind:      kind,
		Action:    action,
	}

	// Stream JSON directly to disk buffer
	encoder := json.NewEncoder(f)
	return encoder.Encode(mutation)
}

// ViewQueue satisfies the interaction coordinator's queue hook by persisting
// failed view reports into the failure log.
type ViewQueue struct{}

func (ViewQueue) Enqueue(contentID string, kind content.Kind) {
	_ = QueueFailure(contentID, kind, ActionView)
}

// pendingMutations reads the failure log, tolerating partially-written records.
func pendingMutations() []Mutation {
	path := getSyncFile()
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var mutations []Mutation
	decoder := json.NewDecoder(bytes.NewReader(raw))
	for decoder.More() {
		var m Mutation
		if err := decoder.Decode(&m); err == nil {
			mutations = append(mutations, m)
		} else {
			break
		}
	}
	return mutations
}

// ReconcileFailures initializes an asynchronous background process to replay
// previously failed interaction records against the backend.
func ReconcileFailures(client *api.Client) {
	go func() {
		mutations := pendingMutations()
		if len(mutations) == 0 {
			return
		}

		successCount := 0

		for i, m := range mutations {
			// Apply incremental delay with randomized jitter to manage request throttling.
			backoff := time.Duration((1<<i)*100)*time.Millisecond + time.Duration(rand.Intn(100))*time.Millisecond
			time.Sleep(backoff)

			var err error
			switch m.Action {
			case ActionView:
				err = client.RecordView(m.ContentID, m.Kind)
			case ActionShare:
				_, err = client.RecordShare(m.ContentID, m.Kind)
			default:
				// Unknown action from an older version: drop it.
				successCount++
				continue
			}

			if err == nil {
				successCount++
			}
		}

		// Atomic state update: Truncate the failure log if all operations successfully synchronized.
		if successCount == len(mutations) {
			_ = os.Truncate(getSyncFile(), 0)
		}
	}()
}
