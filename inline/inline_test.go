package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jevah-cli/jevah/content"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteJsonResponse(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for empty result list", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "test", Json: true}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestParseItemsFilter(t *testing.T) {
	Convey("ParseItemsFilter", t, func() {
		items := []*content.Item{
			{Title: "Morning Worship", Kind: content.Audio},
			{Title: "Evening Sermon", Kind: content.Sermon},
			{Title: "Youth Conference", Kind: content.Video},
		}

		Convey("Should pass everything through for 'all'", func() {
			filter, err := ParseItemsFilter("all")
			So(err, ShouldBeNil)

			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 3)
		})

		Convey("Should filter by media kind", func() {
			filter, err := ParseItemsFilter("sermon")
			So(err, ShouldBeNil)

			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0].Title, ShouldEqual, "Evening Sermon")
		})

		Convey("Should filter by substring", func() {
			filter, err := ParseItemsFilter("@worship@")
			So(err, ShouldBeNil)

			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0].Title, ShouldEqual, "Morning Worship")
		})

		Convey("Should select a single index", func() {
			filter, err := ParseItemsFilter("2")
			So(err, ShouldBeNil)

			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0].Title, ShouldEqual, "Youth Conference")
		})

		Convey("Should reject garbage", func() {
			_, err := ParseItemsFilter("certainly not a filter")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseItemPicker(t *testing.T) {
	Convey("ParseItemPicker", t, func() {
		items := []*content.Item{
			{Title: "A"},
			{Title: "B"},
			{Title: "C"},
		}

		Convey("first", func() {
			picker, err := ParseItemPicker("first", "")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "A")
		})

		Convey("last", func() {
			picker, err := ParseItemPicker("last", "")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "C")
		})

		Convey("exact", func() {
			picker, err := ParseItemPicker("exact", "B")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "B")
		})

		Convey("index clamps to the last entry", func() {
			picker, err := ParseItemPicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "C")
		})

		Convey("unknown kind fails", func() {
			_, err := ParseItemPicker("median", "")
			So(err, ShouldNotBeNil)
		})
	})
}
