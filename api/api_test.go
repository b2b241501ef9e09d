package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jevah-cli/jevah/content"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInteractions(t *testing.T) {
	Convey("Given a backend", t, func() {
		var gotPath string
		mux := http.NewServeMux()
		mux.HandleFunc("/content/video/c1/like", func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true, "likes": 7, "liked": true,
			})
		})
		mux.HandleFunc("/content/video/c1/share", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "shares": 3})
		})
		mux.HandleFunc("/content/video/c1/view", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		srv := httptest.NewServer(mux)
		defer srv.Close()
		c := NewWithBase(srv.URL)

		Convey("ToggleLike returns the server's authoritative state", func() {
			res, err := c.ToggleLike("c1", content.Video)
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/content/video/c1/like")
			So(res.Count, ShouldEqual, 7)
			So(res.Active, ShouldBeTrue)
		})

		Convey("RecordShare returns the new counter", func() {
			shares, err := c.RecordShare("c1", content.Video)
			So(err, ShouldBeNil)
			So(shares, ShouldEqual, 3)
		})

		Convey("RecordView tolerates empty responses", func() {
			So(c.RecordView("c1", content.Video), ShouldBeNil)
		})

		Convey("Unknown routes surface as errors", func() {
			_, err := c.ToggleSave("missing", content.Video)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestStatsGracefulDegradation(t *testing.T) {
	Convey("Stats returns nil without error when the backend is down", t, func() {
		c := NewWithBase("http://127.0.0.1:1") // nothing listens here
		s, err := c.Stats("c1", content.Video)
		So(err, ShouldBeNil)
		So(s, ShouldBeNil)
	})
}

func TestSearchMedia(t *testing.T) {
	Convey("SearchMedia converts wire items and skips unknown types", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Query().Get("search"), ShouldEqual, "grace")
			c.So(r.URL.Query().Get("contentType"), ShouldEqual, "audio")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"media": []map[string]any{
					{"_id": "m1", "title": "Grace", "contentType": "music", "fileUrl": "https://cdn/x.mp3"},
					{"_id": "m2", "title": "???", "contentType": "hologram"},
				},
			})
		}))
		defer srv.Close()

		items, err := NewWithBase(srv.URL).SearchMedia("grace", content.Audio, 5)
		So(err, ShouldBeNil)
		So(items, ShouldHaveLength, 1)
		So(items[0].ID, ShouldEqual, "m1")
		So(items[0].Kind, ShouldEqual, content.Audio)
		So(items[0].FileURL, ShouldEqual, "https://cdn/x.mp3")
	})
}
