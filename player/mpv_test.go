package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Accepts http and https URLs", func() {
			for _, u := range []string{
				"http://cdn.example.com/a.mp3",
				"https://cdn.example.com/a.mp4?sig=abc",
			} {
				got, err := sanitizeMediaTarget(u)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, u)
			}
		})

		Convey("Rejects empty and whitespace-only input", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects flag injection", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects control characters", func() {
			_, err := sanitizeMediaTarget("https://a.com/\nb")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects non-http schemes", func() {
			_, err := sanitizeMediaTarget("ftp://a.com/b.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("Cleans local file paths", func() {
			got, err := sanitizeMediaTarget("downloads//../media/a.mp3")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "media/a.mp3")
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle flattens whitespace and strips null bytes", t, func() {
		So(sanitizeTitle("Sunday\nService\t2024\x00"), ShouldEqual, "Sunday Service 2024")
		So(sanitizeTitle("  plain  "), ShouldEqual, "plain")
	})
}
