package stats

import (
	"testing"

	"github.com/jevah-cli/jevah/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCache(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Cache", t, func() {
		c := NewCache()

		Convey("Misses on an unknown content id", func() {
			So(c.Get("missing").IsAbsent(), ShouldBeTrue)
		})

		Convey("Round-trips a stats record", func() {
			s := ContentStats{Views: 10, Likes: 3, User: UserInteractions{Liked: true}}
			So(c.Set("c1", s), ShouldBeNil)

			got := c.Get("c1")
			So(got.IsPresent(), ShouldBeTrue)
			So(got.MustGet(), ShouldResemble, s)
		})

		Convey("Update mutates in place, creating missing records", func() {
			So(c.Update("c2", func(s *ContentStats) {
				s.Likes++
				s.User.Liked = true
			}), ShouldBeNil)

			got := c.Get("c2").MustGet()
			So(got.Likes, ShouldEqual, 1)
			So(got.User.Liked, ShouldBeTrue)

			So(c.Update("c2", func(s *ContentStats) { s.Likes-- }), ShouldBeNil)
			So(c.Get("c2").MustGet().Likes, ShouldEqual, 0)
		})
	})
}

func TestReconcile(t *testing.T) {
	Convey("Reconcile adopts the server copy wholesale", t, func() {
		local := ContentStats{Likes: 5, User: UserInteractions{Liked: true}}
		server := ContentStats{Likes: 4, Views: 100}

		local.Reconcile(server)
		So(local, ShouldResemble, server)
	})
}
