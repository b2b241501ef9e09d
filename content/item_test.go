package content

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseKind(t *testing.T) {
	Convey("ParseKind", t, func() {
		Convey("Normalizes wire spellings", func() {
			for wire, want := range map[string]Kind{
				"videos":    Video,
				"Reels":     Video,
				"music":     Audio,
				"books":     Ebook,
				"teachings": Sermon,
				" sermon ":  Sermon,
			} {
				kind, err := ParseKind(wire)
				So(err, ShouldBeNil)
				So(kind, ShouldEqual, want)
			}
		})

		Convey("Rejects unknown types", func() {
			_, err := ParseKind("hologram")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPlayable(t *testing.T) {
	Convey("Playable", t, func() {
		So(Video.Playable(), ShouldBeTrue)
		So(Audio.Playable(), ShouldBeTrue)
		So(Sermon.Playable(), ShouldBeTrue)
		So(Ebook.Playable(), ShouldBeFalse)
	})
}
