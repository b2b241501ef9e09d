// Package realtime subscribes to the backend's push channel for stat-change hints.
//
// Events are hints only: they carry which content changed, never the numbers.
// Consumers react by re-fetching stats through the API client. The whole
// channel is optional; when it cannot connect the application degrades to
// updating stats from direct API responses and manual refresh.
package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jevah-cli/jevah/auth"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/network"
	"github.com/spf13/viper"
)

// Event is one stat-change hint from the backend.
type Event struct {
	Type      string       `json:"type"`
	ContentID string       `json:"contentId"`
	Kind      content.Kind `json:"contentType"`
}

// reconnectDelay paces reconnection attempts so a flapping backend does not
// get hammered.
const reconnectDelay = 10 * time.Second

// Subscriber maintains one server-sent-events connection to the backend.
type Subscriber struct {
	baseURL string
	http    *http.Client
}

// streamingClient shares the tuned transport but drops the overall request
// timeout, which would otherwise sever the long-lived stream after a minute.
func streamingClient() *http.Client {
	return &http.Client{Transport: network.Client.Transport}
}

// NewSubscriber returns a subscriber against the configured backend.
func NewSubscriber() *Subscriber {
	return &Subscriber{
		baseURL: strings.TrimRight(viper.GetString(key.APIBaseURL), "/"),
		http:    streamingClient(),
	}
}

// NewSubscriberWithBase returns a subscriber against an explicit backend URL. Used by tests.
func NewSubscriberWithBase(baseURL string) *Subscriber {
	return &Subscriber{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    streamingClient(),
	}
}

// Subscribe opens the event stream and delivers hints until ctx is cancelled.
// Connection failures reconnect with a fixed delay; the returned channel is
// closed on cancellation, never on a transient failure.
func (s *Subscriber) Subscribe(ctx context.Context) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		for {
			if err := s.stream(ctx, events); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warnf("realtime: stream dropped: %v", err)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
		}
	}()

	return events
}

// stream runs one connection lifetime, pushing parsed events onto out.
func (s *Subscriber) stream(ctx context.Context, out chan<- Event) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/events", nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if token, err := auth.GetToken(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("realtime endpoint returned %d", resp.StatusCode)
	}

	log.Info("realtime: connected to event stream")

	scanner := bufio.NewScanner(resp.Body)
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			// Blank line terminates one event.
			if data.Len() > 0 {
				s.dispatch(ctx, data.String(), out)
				data.Reset()
			}
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		default:
			// Comments (":keepalive") and event/id fields are ignored; the
			// payload type travels inside the JSON body.
		}
	}

	return scanner.Err()
}

func (s *Subscriber) dispatch(ctx context.Context, payload string, out chan<- Event) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		log.Warnf("realtime: unparseable event payload: %v", err)
		return
	}
	if e.ContentID == "" {
		return
	}

	select {
	case out <- e:
	case <-ctx.Done():
	}
}
