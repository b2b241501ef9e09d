package mediakey

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDerive(t *testing.T) {
	Convey("Derive", t, func() {
		Convey("Is deterministic for the same inputs", func() {
			a := Derive("feed", "abc123", "", 0)
			b := Derive("feed", "abc123", "", 0)
			So(a, ShouldEqual, b)
		})

		Convey("Distinct ids never collide within a context", func() {
			a := Derive("feed", "abc123", "", 0)
			b := Derive("feed", "xyz789", "", 1)
			So(a, ShouldNotEqual, b)
		})

		Convey("The same item differs across rendering contexts", func() {
			feed := Derive("feed", "abc123", "", 0)
			reel := Derive("reel", "abc123", "", 0)
			So(feed, ShouldNotEqual, reel)
		})

		Convey("Falls back to fileURL when id is absent", func() {
			k := Derive("feed", "", "https://cdn.example.com/a.mp4", 3)
			So(k, ShouldEqual, Key("feed-https://cdn.example.com/a.mp4"))
		})

		Convey("Falls back to index when id and fileURL are absent", func() {
			k := Derive("feed", "", "", 3)
			So(k, ShouldEqual, Key("feed-3"))

			Convey("And stays stable across re-renders", func() {
				So(Derive("feed", "", "", 3), ShouldEqual, k)
			})
		})
	})
}
