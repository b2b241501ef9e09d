package query

import (
	"testing"

	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("sunday service", 1), ShouldBeNil)
			So(Remember("worship night", 10), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				// Drop the in-memory layer to force a read from the persisted file.
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("wor")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, "worship night")
			})

			Convey("Repeat queries accumulate rank", func() {
				So(Remember("sunday service", 5), ShouldBeNil)
				suggestionCache = make(map[string][]*queryRecord)

				s := Suggest("sun")
				So(s.IsPresent(), ShouldBeTrue)
				So(s.MustGet(), ShouldEqual, "sunday service")
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  Sunday Service  "), ShouldEqual, "sunday service")
			})
		})

		Convey("Suggestions can be disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("wor"), ShouldBeEmpty)
		})
	})
}
