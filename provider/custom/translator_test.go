package custom

import (
	"testing"

	"github.com/jevah-cli/jevah/content"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func TestItemFromTable(t *testing.T) {
	Convey("itemFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract an item from a valid Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("Sunday Service"))
			tbl.RawSetString("url", lua.LString("https://example.com/sunday"))
			tbl.RawSetString("kind", lua.LString("sermon"))
			tbl.RawSetString("thumbnail", lua.LString("https://example.com/thumb.jpg"))

			item, err := itemFromTable(tbl, 0)
			So(err, ShouldBeNil)
			So(item.Title, ShouldEqual, "Sunday Service")
			So(item.FileURL, ShouldEqual, "https://example.com/sunday")
			So(item.Kind, ShouldEqual, content.Sermon)
			So(item.ThumbnailURL, ShouldEqual, "https://example.com/thumb.jpg")
			So(item.ID, ShouldEqual, "https://example.com/sunday")
		})

		Convey("Should fail when required field 'title' is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com"))

			_, err := itemFromTable(tbl, 0)
			So(err, ShouldNotBeNil)
		})

		Convey("Should default unknown kinds to video", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("Clip"))
			tbl.RawSetString("url", lua.LString("https://example.com/clip"))
			tbl.RawSetString("kind", lua.LString("hologram"))

			item, err := itemFromTable(tbl, 0)
			So(err, ShouldBeNil)
			So(item.Kind, ShouldEqual, content.Video)
		})
	})
}

func TestStreamFromTable(t *testing.T) {
	Convey("streamFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract a stream with URL", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.m3u8"))
			tbl.RawSetString("quality", lua.LString("1080p"))

			stream, err := streamFromTable(tbl, 0)
			So(err, ShouldBeNil)
			So(stream.URL, ShouldEqual, "https://example.com/stream.m3u8")
			So(stream.Quality, ShouldEqual, "1080p")
		})

		Convey("Should extract headers from a Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.m3u8"))

			headers := L.NewTable()
			headers.RawSetString("Referer", lua.LString("https://example.com"))
			headers.RawSetString("User-Agent", lua.LString("Mozilla/5.0"))
			tbl.RawSetString("headers", headers)

			stream, err := streamFromTable(tbl, 0)
			So(err, ShouldBeNil)
			So(stream.Headers, ShouldNotBeNil)
			So(stream.Headers["Referer"], ShouldEqual, "https://example.com")
			So(stream.Headers["User-Agent"], ShouldEqual, "Mozilla/5.0")
		})

		Convey("Should fail when URL is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("quality", lua.LString("720p"))

			_, err := streamFromTable(tbl, 0)
			So(err, ShouldNotBeNil)
		})
	})
}
