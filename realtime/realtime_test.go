package realtime

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jevah-cli/jevah/content"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubscribe(t *testing.T) {
	Convey("Subscribe", t, func() {
		// The handler runs on the server's goroutine, so assertions inside it
		// must go through the captured context.
		Convey("Delivers parsed hints from the stream", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.Header.Get("Accept"), ShouldEqual, "text/event-stream")
				w.Header().Set("Content-Type", "text/event-stream")

				flusher := w.(http.Flusher)
				fmt.Fprint(w, ": keepalive\n\n")
				fmt.Fprint(w, "data: {\"type\":\"like\",\"contentId\":\"c1\",\"contentType\":\"video\"}\n\n")
				flusher.Flush()

				<-r.Context().Done()
			}))
			defer srv.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			events := NewSubscriberWithBase(srv.URL).Subscribe(ctx)

			select {
			case e := <-events:
				So(e.ContentID, ShouldEqual, "c1")
				So(e.Kind, ShouldEqual, content.Video)
				So(e.Type, ShouldEqual, "like")
			case <-time.After(5 * time.Second):
				So("timeout", ShouldBeEmpty)
			}
		})

		Convey("Skips malformed payloads without dying", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				flusher := w.(http.Flusher)
				fmt.Fprint(w, "data: not-json\n\n")
				fmt.Fprint(w, "data: {\"contentId\":\"c2\",\"contentType\":\"audio\"}\n\n")
				flusher.Flush()
				<-r.Context().Done()
			}))
			defer srv.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			events := NewSubscriberWithBase(srv.URL).Subscribe(ctx)

			select {
			case e := <-events:
				So(e.ContentID, ShouldEqual, "c2")
			case <-time.After(5 * time.Second):
				So("timeout", ShouldBeEmpty)
			}
		})

		Convey("Closes the channel on cancellation even when unreachable", func() {
			ctx, cancel := context.WithCancel(context.Background())
			events := NewSubscriberWithBase("http://127.0.0.1:1").Subscribe(ctx)
			cancel()

			select {
			case _, open := <-events:
				So(open, ShouldBeFalse)
			case <-time.After(5 * time.Second):
				So("timeout", ShouldBeEmpty)
			}
		})
	})
}
