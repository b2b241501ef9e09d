package viewport

import (
	"testing"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/mediakey"
	. "github.com/smartystreets/goconvey/convey"
)

func layout(id string, y, height float64) Layout {
	return Layout{
		Key:    mediakey.Derive("feed", id, "", 0),
		Y:      y,
		Height: height,
		Kind:   content.Video,
	}
}

func TestResolve(t *testing.T) {
	Convey("Resolve", t, func() {
		Convey("Picks the item with the largest visible fraction", func() {
			// Window [0, 100). x shows 10% of itself, y shows 20%.
			x := layout("x", -90, 100)
			y := layout("y", 80, 100)

			got := Resolve(0, 100, []Layout{x, y})
			So(got.IsPresent(), ShouldBeTrue)
			So(got.MustGet().Key, ShouldEqual, y.Key)
		})

		Convey("Returns none below the visibility threshold", func() {
			x := layout("x", -90, 100) // 10% visible, under 15%

			got := Resolve(0, 100, []Layout{x})
			So(got.IsAbsent(), ShouldBeTrue)
		})

		Convey("Accepts an item exactly at the threshold", func() {
			x := layout("x", -85, 100) // exactly 15% visible

			got := Resolve(0, 100, []Layout{x})
			So(got.IsPresent(), ShouldBeTrue)
		})

		Convey("Breaks ties toward the earlier entry", func() {
			a := layout("a", 0, 50)
			b := layout("b", 50, 50) // both fully visible

			got := Resolve(0, 100, []Layout{a, b})
			So(got.MustGet().Key, ShouldEqual, a.Key)
		})

		Convey("Clamps the ratio for items taller than the window", func() {
			// The window sits entirely inside the item, so only 50/200 of the
			// item is visible even though the window itself is filled.
			tall := layout("tall", -100, 200)
			small := layout("small", 10, 40) // fully visible

			got := Resolve(0, 50, []Layout{tall, small})
			So(got.MustGet().Key, ShouldEqual, small.Key)
		})

		Convey("Handles degenerate inputs", func() {
			So(Resolve(0, 0, []Layout{layout("x", 0, 100)}).IsAbsent(), ShouldBeTrue)
			So(Resolve(0, 100, nil).IsAbsent(), ShouldBeTrue)
			So(Resolve(0, 100, []Layout{layout("zero", 0, 0)}).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Registry", t, func() {
		r := NewRegistry()

		Convey("Preserves insertion order across updates", func() {
			a := layout("a", 0, 50)
			b := layout("b", 50, 50)
			r.Put(a)
			r.Put(b)

			// Re-layout of a keeps its position at the front.
			a.Y = 5
			r.Put(a)

			got := r.Layouts()
			So(got, ShouldHaveLength, 2)
			So(got[0].Key, ShouldEqual, a.Key)
			So(got[0].Y, ShouldEqual, 5)
			So(got[1].Key, ShouldEqual, b.Key)
		})

		Convey("Resolves against the tracked snapshot", func() {
			r.Put(layout("a", 0, 50))
			r.Put(layout("b", 50, 50))

			got := r.Resolve(40, 100)
			So(got.IsPresent(), ShouldBeTrue)
			So(got.MustGet().Key, ShouldEqual, mediakey.Derive("feed", "b", "", 0))
		})

		Convey("Clear empties the registry", func() {
			r.Put(layout("a", 0, 50))
			r.Clear()
			So(r.Layouts(), ShouldBeEmpty)
			So(r.Resolve(0, 100).IsAbsent(), ShouldBeTrue)
		})
	})
}
