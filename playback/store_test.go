package playback

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/jevah-cli/jevah/mediakey"
	. "github.com/smartystreets/goconvey/convey"
)

// countPlaying returns how many tracked entries report themselves as playing.
func countPlaying(s *Store) int {
	n := 0
	for _, e := range s.Entries() {
		if e.IsPlaying {
			n++
		}
	}
	return n
}

func TestPlayExclusively(t *testing.T) {
	Convey("Given a store with several tracked keys", t, func() {
		s := NewStore()
		a := mediakey.Derive("feed", "a", "", 0)
		b := mediakey.Derive("feed", "b", "", 1)
		c := mediakey.Derive("feed", "c", "", 2)

		Convey("Playing one key clears every other key", func() {
			s.PlayExclusively(a, KindAudio)
			s.PlayExclusively(b, KindVideo)
			s.PlayExclusively(c, KindAudio)

			So(s.Entry(a).IsPlaying, ShouldBeFalse)
			So(s.Entry(b).IsPlaying, ShouldBeFalse)
			So(s.Entry(c).IsPlaying, ShouldBeTrue)
			So(countPlaying(s), ShouldEqual, 1)
		})

		Convey("Playing a paused key resumes it", func() {
			s.PlayExclusively(a, KindAudio)
			s.Pause(a)
			So(s.Entry(a).IsPlaying, ShouldBeFalse)

			s.PlayExclusively(a, KindAudio)
			So(s.Entry(a).IsPlaying, ShouldBeTrue)
		})

		Convey("Playing a completed key makes it playable again", func() {
			s.PlayExclusively(a, KindAudio)
			s.SetCompleted(a, true)
			So(s.Entry(a).HasCompleted, ShouldBeTrue)
			So(s.Entry(a).ProgressPercent, ShouldEqual, 0)

			s.PlayExclusively(a, KindAudio)
			So(s.Entry(a).IsPlaying, ShouldBeTrue)
			So(s.Entry(a).HasCompleted, ShouldBeFalse)
		})

		Convey("It clears a previous playback error", func() {
			s.SetError(a, fmt.Errorf("decode failure"))
			So(s.Entry(a).Err, ShouldNotBeNil)

			s.PlayExclusively(a, KindAudio)
			So(s.Entry(a).Err, ShouldBeNil)
		})
	})
}

func TestExclusivityInvariant(t *testing.T) {
	Convey("For any randomized sequence of play calls", t, func() {
		rng := rand.New(rand.NewSource(42))

		pool := make([]mediakey.Key, 10)
		for i := range pool {
			pool[i] = mediakey.Derive("feed", fmt.Sprintf("item-%d", i), "", i)
		}

		for trial := 0; trial < 50; trial++ {
			s := NewStore()
			length := 1 + rng.Intn(100)

			var last mediakey.Key
			for i := 0; i < length; i++ {
				key := pool[rng.Intn(len(pool))]
				kind := KindAudio
				if rng.Intn(2) == 0 {
					kind = KindVideo
				}
				s.PlayExclusively(key, kind)
				last = key
			}

			So(countPlaying(s), ShouldEqual, 1)
			So(s.Entry(last).IsPlaying, ShouldBeTrue)
			So(s.Playing().MustGet(), ShouldEqual, last)
		}
	})
}

func TestPauseAll(t *testing.T) {
	Convey("PauseAll clears every playing flag", t, func() {
		s := NewStore()
		a := mediakey.Derive("feed", "a", "", 0)
		b := mediakey.Derive("feed", "b", "", 1)

		s.PlayExclusively(a, KindAudio)
		s.PlayExclusively(b, KindAudio)
		s.PauseAll()

		So(countPlaying(s), ShouldEqual, 0)
		So(s.Playing().IsAbsent(), ShouldBeTrue)
	})
}

func TestPerKeyFlags(t *testing.T) {
	Convey("Per-key flags have no cross-key effects", t, func() {
		s := NewStore()
		a := mediakey.Derive("feed", "a", "", 0)
		b := mediakey.Derive("feed", "b", "", 1)

		s.ToggleMute(a)
		s.SetProgress(a, 150) // clamped
		s.SetOverlayVisible(a, true)

		So(s.Entry(a).IsMuted, ShouldBeTrue)
		So(s.Entry(a).ProgressPercent, ShouldEqual, 100)
		So(s.Entry(a).OverlayVisible, ShouldBeTrue)

		So(s.Entry(b).IsMuted, ShouldBeFalse)
		So(s.Entry(b).ProgressPercent, ShouldEqual, 0)
		So(s.Entry(b).OverlayVisible, ShouldBeFalse)

		s.ToggleMute(a)
		So(s.Entry(a).IsMuted, ShouldBeFalse)

		s.SetProgress(a, -5)
		So(s.Entry(a).ProgressPercent, ShouldEqual, 0)
	})
}

type recordingPauser struct {
	calls []mediakey.Key
}

func (r *recordingPauser) PauseAllExcept(key mediakey.Key) {
	r.calls = append(r.calls, key)
}

func TestCollaboratorSignals(t *testing.T) {
	Convey("Given registered collaborators", t, func() {
		s := NewStore()
		pauser := &recordingPauser{}
		s.SetAudioPauser(pauser)

		videoPauses := 0
		s.OnPauseVideo(func() { videoPauses++ })

		a := mediakey.Derive("feed", "a", "", 0)

		Convey("Audio playback notifies both collaborators", func() {
			s.PlayExclusively(a, KindAudio)
			So(pauser.calls, ShouldResemble, []mediakey.Key{a})
			So(videoPauses, ShouldEqual, 1)
		})

		Convey("Video playback pauses audio handles but not video renderers", func() {
			s.PlayExclusively(a, KindVideo)
			So(pauser.calls, ShouldResemble, []mediakey.Key{a})
			So(videoPauses, ShouldEqual, 0)
		})
	})
}
