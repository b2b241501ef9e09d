package interaction

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/stats"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeRemote is a scriptable backend double.
type fakeRemote struct {
	mu sync.Mutex

	fail  bool
	liked bool
	likes int
	saved bool
	saves int

	shares    int
	viewCalls int
	likeCalls int
}

func (f *fakeRemote) ToggleLike(contentID string, kind content.Kind) (api.ToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likeCalls++
	if f.fail {
		return api.ToggleResult{}, errors.New("network down")
	}
	f.liked = !f.liked
	if f.liked {
		f.likes++
	} else {
		f.likes--
	}
	return api.ToggleResult{Success: true, Count: f.likes, Active: f.liked}, nil
}

func (f *fakeRemote) ToggleSave(contentID string, kind content.Kind) (api.ToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return api.ToggleResult{}, errors.New("network down")
	}
	f.saved = !f.saved
	if f.saved {
		f.saves++
	} else {
		f.saves--
	}
	return api.ToggleResult{Success: true, Count: f.saves, Active: f.saved}, nil
}

func (f *fakeRemote) RecordShare(contentID string, kind content.Kind) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, errors.New("network down")
	}
	f.shares++
	return f.shares, nil
}

func (f *fakeRemote) RecordView(contentID string, kind content.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewCalls++
	if f.fail {
		return errors.New("network down")
	}
	return nil
}

type fakeQueue struct {
	mu      sync.Mutex
	entries []string
}

func (q *fakeQueue) Enqueue(contentID string, kind content.Kind) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, contentID)
}

func (q *fakeQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func TestToggleLike(t *testing.T) {
	defer filesystem.SetOsFs()

	Convey("ToggleLike", t, func() {
		// Fresh in-memory fs per leaf, the gache-backed cache persists to disk.
		filesystem.SetMemMapFs()

		remote := &fakeRemote{likes: 10}
		cache := stats.NewCache()
		So(cache.Set("c1", stats.ContentStats{Likes: 10}), ShouldBeNil)
		c := New(remote, cache, nil)

		Convey("Applies and reconciles on success", func() {
			So(c.ToggleLike("c1", content.Video), ShouldBeNil)

			got := cache.Get("c1").MustGet()
			So(got.User.Liked, ShouldBeTrue)
			So(got.Likes, ShouldEqual, 11)

			Convey("And untoggles back down", func() {
				So(c.ToggleLike("c1", content.Video), ShouldBeNil)
				got := cache.Get("c1").MustGet()
				So(got.User.Liked, ShouldBeFalse)
				So(got.Likes, ShouldEqual, 10)
			})
		})

		Convey("Rolls back exactly to the prior state on failure", func() {
			before := cache.Get("c1").MustGet()
			remote.fail = true

			So(c.ToggleLike("c1", content.Video), ShouldNotBeNil)
			So(cache.Get("c1").MustGet(), ShouldResemble, before)
		})

		Convey("Serializes concurrent toggles on the same pair", func() {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = c.ToggleLike("c1", content.Video)
				}()
			}
			wg.Wait()

			// An even number of successful toggles must land back where it started.
			got := cache.Get("c1").MustGet()
			So(remote.likeCalls, ShouldEqual, 10)
			So(got.User.Liked, ShouldBeFalse)
			So(got.Likes, ShouldEqual, 10)
		})
	})
}

func TestShare(t *testing.T) {
	defer filesystem.SetOsFs()

	Convey("Share", t, func() {
		filesystem.SetMemMapFs()

		remote := &fakeRemote{}
		cache := stats.NewCache()
		c := New(remote, cache, nil)

		Convey("Increments and adopts the server count", func() {
			So(c.Share("c1", content.Video), ShouldBeNil)
			So(cache.Get("c1").MustGet().Shares, ShouldEqual, 1)
		})

		Convey("Rolls back on failure", func() {
			remote.fail = true
			So(c.Share("c1", content.Video), ShouldNotBeNil)
			So(cache.Get("c1").MustGet().Shares, ShouldEqual, 0)
		})
	})
}

func TestView(t *testing.T) {
	defer filesystem.SetOsFs()

	Convey("View", t, func() {
		filesystem.SetMemMapFs()

		Convey("Bumps locally and reports in the background", func() {
			remote := &fakeRemote{}
			cache := stats.NewCache()
			c := New(remote, cache, nil)

			c.View("c1", content.Video)
			So(cache.Get("c1").MustGet().Views, ShouldEqual, 1)

			So(func() int {
				for i := 0; i < 50; i++ {
					remote.mu.Lock()
					n := remote.viewCalls
					remote.mu.Unlock()
					if n > 0 {
						return n
					}
					time.Sleep(10 * time.Millisecond)
				}
				return 0
			}(), ShouldEqual, 1)
		})

		Convey("Queues the report when the backend is down, keeping the local bump", func() {
			remote := &fakeRemote{fail: true}
			cache := stats.NewCache()
			queue := &fakeQueue{}
			c := New(remote, cache, queue)

			c.View("c2", content.Audio)

			So(func() int {
				for i := 0; i < 50; i++ {
					if queue.len() > 0 {
						return queue.len()
					}
					time.Sleep(10 * time.Millisecond)
				}
				return 0
			}(), ShouldEqual, 1)
			So(cache.Get("c2").MustGet().Views, ShouldEqual, 1)
		})
	})
}
