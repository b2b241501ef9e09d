package provider

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When getting the built-in provider", t, func() {
		p, ok := Get("Jevah")
		Convey("Then it should be found", func() {
			So(ok, ShouldBeTrue)
			So(p.ID, ShouldEqual, "jevah")
			So(p.IsCustom, ShouldBeFalse)
		})
	})
}
