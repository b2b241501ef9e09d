package lookup

import (
	"errors"
	"sync"
	"testing"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeCatalog is a scriptable Searcher double.
type fakeCatalog struct {
	mu    sync.Mutex
	items []*content.Item
	err   error
	calls int
}

func (f *fakeCatalog) SearchMedia(title string, kind content.Kind, limit int) ([]*content.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func item(id, title, fileURL string) *content.Item {
	return &content.Item{ID: id, Title: title, Kind: content.Audio, FileURL: fileURL}
}

func TestEnsurePlayableURL(t *testing.T) {
	Convey("EnsurePlayableURL", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		Convey("Returns a well-formed URL without touching the catalog", func() {
			catalog := &fakeCatalog{}
			c := NewClient(catalog)

			got := c.EnsurePlayableURL(item("c1", "Amazing Grace", "https://cdn.example.com/a.mp3"))
			So(got, ShouldEqual, "https://cdn.example.com/a.mp3")
			So(catalog.calls, ShouldEqual, 0)
		})

		Convey("Queries the catalog exactly once for an empty URL", func() {
			catalog := &fakeCatalog{items: []*content.Item{
				item("c1", "Amazing Grace", "https://cdn.example.com/fresh.mp3"),
			}}
			c := NewClient(catalog)

			got := c.EnsurePlayableURL(item("c1", "Amazing Grace", ""))
			So(got, ShouldEqual, "https://cdn.example.com/fresh.mp3")
			So(catalog.calls, ShouldEqual, 1)
		})

		Convey("Returns the original value when the catalog has nothing", func() {
			catalog := &fakeCatalog{err: errors.New("catalog down")}
			c := NewClient(catalog)

			got := c.EnsurePlayableURL(item("c1", "Amazing Grace", ""))
			So(got, ShouldEqual, "")
		})
	})
}

func TestFindClosest(t *testing.T) {
	Convey("FindClosest", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		Convey("Picks the candidate with the smallest edit distance", func() {
			catalog := &fakeCatalog{items: []*content.Item{
				item("c1", "Morning Devotion", "https://cdn/m.mp3"),
				item("c2", "Morning Worship", "https://cdn/w.mp3"),
			}}
			c := NewClient(catalog)

			got, err := c.FindClosest("morning worshp", content.Audio)
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, "c2")
		})

		Convey("Serves repeat lookups from the relation cache", func() {
			catalog := &fakeCatalog{items: []*content.Item{
				item("c1", "Morning Devotion", "https://cdn/m.mp3"),
			}}
			c := NewClient(catalog)

			first, err := c.FindClosest("morning devotion", content.Audio)
			So(err, ShouldBeNil)

			again, err := c.FindClosest("morning devotion", content.Audio)
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, first.ID)
			So(catalog.calls, ShouldEqual, 1)
		})

		Convey("Caches unresolvable queries as terminal", func() {
			catalog := &fakeCatalog{}
			c := NewClient(catalog)

			_, err := c.FindClosest("no such thing", content.Audio)
			So(err, ShouldNotBeNil)

			callsAfterFirst := catalog.calls
			_, err = c.FindClosest("no such thing", content.Audio)
			So(err, ShouldNotBeNil)
			So(catalog.calls, ShouldEqual, callsAfterFirst)
		})
	})
}

func TestSource(t *testing.T) {
	Convey("The built-in catalog source", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		catalog := &fakeCatalog{items: []*content.Item{
			item("c1", "Amazing Grace", "https://cdn.example.com/a.mp3"),
		}}
		s := NewSource(NewClient(catalog))

		Convey("Exposes identity", func() {
			So(s.Name(), ShouldEqual, "Jevah")
			So(s.ID(), ShouldEqual, "jevah")
		})

		Convey("Search binds results back to itself", func() {
			items, err := s.Search("grace")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)
			So(items[0].Source, ShouldEqual, s)
		})

		Convey("StreamsOf yields the direct stream", func() {
			streams, err := s.StreamsOf(item("c1", "Amazing Grace", "https://cdn.example.com/a.mp3"))
			So(err, ShouldBeNil)
			So(streams, ShouldHaveLength, 1)
			So(streams[0].URL, ShouldEqual, "https://cdn.example.com/a.mp3")
			So(streams[0].Extension, ShouldEqual, "mp3")
		})

		Convey("StreamsOf rejects non-playable kinds", func() {
			book := &content.Item{ID: "b1", Title: "Psalms Study", Kind: content.Ebook}
			_, err := s.StreamsOf(book)
			So(err, ShouldNotBeNil)
		})
	})
}
