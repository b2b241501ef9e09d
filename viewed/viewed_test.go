package viewed

import (
	"testing"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestViewed(t *testing.T) {
	Convey("Given a content item", t, func() {
		item := &content.Item{
			ID:      "c1",
			Title:   "Sunday Service",
			Kind:    content.Sermon,
			FileURL: "https://cdn.example.com/s.mp4",
		}

		Convey("When saving the item", func() {
			So(Save(item, 40), ShouldBeNil)

			Convey("Then it appears in the registry", func() {
				records, err := Get()
				So(err, ShouldBeNil)
				So(records["c1 (jevah)"], ShouldNotBeNil)
				So(records["c1 (jevah)"].Title, ShouldEqual, "Sunday Service")
				So(records["c1 (jevah)"].ViewedPercentage, ShouldEqual, 40)
			})

			Convey("And a lower percentage never regresses the record", func() {
				So(Save(item, 10), ShouldBeNil)

				records, err := Get()
				So(err, ShouldBeNil)
				So(records["c1 (jevah)"].ViewedPercentage, ShouldEqual, 40)
			})

			Convey("And a higher percentage advances it", func() {
				So(Save(item, 90), ShouldBeNil)

				records, err := Get()
				So(err, ShouldBeNil)
				So(records["c1 (jevah)"].ViewedPercentage, ShouldEqual, 90)
			})

			Convey("And removal deletes it", func() {
				records, _ := Get()
				So(Remove(records["c1 (jevah)"]), ShouldBeNil)

				records, err := Get()
				So(err, ShouldBeNil)
				So(records["c1 (jevah)"], ShouldBeNil)
			})
		})
	})
}
