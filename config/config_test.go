package config

import (
	"testing"

	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				val := viper.Get(name)
				So(val, ShouldNotBeNil)
			}
		})

		Convey("Autoplay should default to disabled", func() {
			_ = Setup()
			So(viper.GetBool(key.PlaybackAutoplay), ShouldBeFalse)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("playback.completion.percentage")
			So(result, ShouldEqual, "playback_completion_percentage")
		})
	})
}
