package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/mediakey"
	"github.com/jevah-cli/jevah/playback"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeHandle is a scripted in-memory media backend.
type fakeHandle struct {
	mu       sync.Mutex
	uri      string
	playing  bool
	muted    bool
	closed   bool
	position int64
	duration int64
	openErr  error
}

func (f *fakeHandle) Open(uri, _ string, _ map[string]string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uri = uri
	f.playing = true
	return nil
}

func (f *fakeHandle) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	return nil
}

func (f *fakeHandle) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = true
	return nil
}

func (f *fakeHandle) SeekMs(ms int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = ms
	return nil
}

func (f *fakeHandle) SetMuted(muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = muted
	return nil
}

func (f *fakeHandle) PositionMs() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position, nil
}

func (f *fakeHandle) DurationMs() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration, nil
}

func (f *fakeHandle) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.playing = false
	return nil
}

func (f *fakeHandle) advance(ms int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position += ms
}

// fakeFactory hands out fresh fakes and remembers every handle it created,
// along with the kind each one was requested for.
type fakeFactory struct {
	mu      sync.Mutex
	created []*fakeHandle
	kinds   []content.Kind
	next    func() *fakeHandle
}

func newFakeFactory() *fakeFactory {
	f := &fakeFactory{}
	f.next = func() *fakeHandle { return &fakeHandle{duration: 60_000} }
	return f
}

func (f *fakeFactory) factory(kind content.Kind) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.next()
	f.created = append(f.created, h)
	f.kinds = append(f.kinds, kind)
	return h
}

func (f *fakeFactory) last() *fakeHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

func TestPlayValidation(t *testing.T) {
	Convey("Play rejects an empty source without side effects", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		k := mediakey.Derive("feed", "a", "", 0)
		err := m.Play(k, "", "Empty", content.Audio)

		So(errors.Is(err, ErrInvalidSource), ShouldBeTrue)
		So(factory.created, ShouldBeEmpty)
		So(store.Entry(k).IsPlaying, ShouldBeFalse)
	})
}

func TestPlayPauseResume(t *testing.T) {
	Convey("Given a playing key", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		k := mediakey.Derive("feed", "a", "", 0)
		So(m.Play(k, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)
		So(store.Entry(k).IsPlaying, ShouldBeTrue)

		handle := factory.last()
		handle.advance(12_345)

		Convey("Playing it again pauses and records the position", func() {
			So(m.Play(k, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)

			So(store.Entry(k).IsPlaying, ShouldBeFalse)
			So(handle.playing, ShouldBeFalse)
			So(m.Position(k), ShouldEqual, 12_345)

			Convey("And playing once more resumes from that position", func() {
				So(m.Play(k, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)

				So(store.Entry(k).IsPlaying, ShouldBeTrue)
				So(handle.playing, ShouldBeTrue)
				So(handle.position, ShouldEqual, 12_345)
			})
		})
	})
}

func TestResumePositionAcrossKeys(t *testing.T) {
	Convey("Pausing A by playing B keeps A's resume position", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		a := mediakey.Derive("feed", "a", "", 0)
		b := mediakey.Derive("feed", "b", "", 1)

		So(m.Play(a, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)
		handleA := factory.last()
		handleA.advance(30_000)

		So(m.Play(b, "https://cdn.example.com/b.mp3", "B", content.Audio), ShouldBeNil)
		So(m.Position(a), ShouldEqual, 30_000)
		So(handleA.playing, ShouldBeFalse)

		So(m.Play(a, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)
		So(handleA.playing, ShouldBeTrue)
		So(handleA.position, ShouldEqual, 30_000)
	})
}

func TestOpenFailureCleanup(t *testing.T) {
	Convey("A decode failure leaves no ghost state", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		factory.next = func() *fakeHandle {
			return &fakeHandle{openErr: errors.New("codec not supported")}
		}
		m := New(store, factory.factory)
		defer m.Close()

		k := mediakey.Derive("feed", "a", "", 0)
		err := m.Play(k, "https://cdn.example.com/a.mp3", "A", content.Audio)

		So(errors.Is(err, ErrDecodeFailure), ShouldBeTrue)
		So(store.Entry(k).IsPlaying, ShouldBeFalse)
		So(store.Entry(k).Err, ShouldNotBeNil)
		So(factory.last().closed, ShouldBeTrue)

		Convey("And the key stays playable with a working handle", func() {
			factory.next = func() *fakeHandle { return &fakeHandle{duration: 60_000} }
			So(m.Play(k, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)
			So(store.Entry(k).IsPlaying, ShouldBeTrue)
			So(store.Entry(k).Err, ShouldBeNil)
		})
	})
}

func TestDisposeIdempotent(t *testing.T) {
	Convey("Dispose is safe on any key", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		k := mediakey.Derive("feed", "a", "", 0)
		So(m.Dispose(k), ShouldBeNil) // never created

		So(m.Play(k, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)
		So(m.Dispose(k), ShouldBeNil)
		So(factory.last().closed, ShouldBeTrue)
		So(m.Dispose(k), ShouldBeNil) // already disposed
	})
}

func TestSetMutedWithoutHandle(t *testing.T) {
	Convey("SetMuted without a live handle is a no-op", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		k := mediakey.Derive("feed", "a", "", 0)
		So(m.SetMuted(k, true), ShouldBeNil)
		So(factory.created, ShouldBeEmpty)
	})
}

func TestThreeItemTrace(t *testing.T) {
	Convey("The canonical three-audio-item trace is deterministic", t, func() {
		store := playback.NewStore()
		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		a1 := mediakey.Derive("feed", "a1", "", 0)
		a2 := mediakey.Derive("feed", "a2", "", 1)
		a3 := mediakey.Derive("feed", "a3", "", 2)

		So(m.Play(a1, "https://cdn.example.com/a1.mp3", "A1", content.Audio), ShouldBeNil)
		So(store.Entry(a1).IsPlaying, ShouldBeTrue)

		factory.last().advance(5_000)

		So(m.Play(a2, "https://cdn.example.com/a2.mp3", "A2", content.Audio), ShouldBeNil)
		So(store.Entry(a1).IsPlaying, ShouldBeFalse)
		So(store.Entry(a2).IsPlaying, ShouldBeTrue)
		So(m.Position(a1), ShouldEqual, 5_000)

		factory.last().advance(8_000)

		So(m.Play(a3, "https://cdn.example.com/a3.mp3", "A3", content.Audio), ShouldBeNil)
		So(store.Entry(a2).IsPlaying, ShouldBeFalse)
		So(store.Entry(a3).IsPlaying, ShouldBeTrue)
		So(m.Position(a2), ShouldEqual, 8_000)

		m.PauseAll()
		So(store.Entry(a1).IsPlaying, ShouldBeFalse)
		So(store.Entry(a2).IsPlaying, ShouldBeFalse)
		So(store.Entry(a3).IsPlaying, ShouldBeFalse)
	})
}

func TestKindRouting(t *testing.T) {
	Convey("Play threads the item kind to the factory and the store", t, func() {
		store := playback.NewStore()
		videoPauses := 0
		store.OnPauseVideo(func() { videoPauses++ })

		factory := newFakeFactory()
		m := New(store, factory.factory)
		defer m.Close()

		v := mediakey.Derive("feed", "v", "", 0)
		So(m.Play(v, "https://cdn.example.com/v.mp4", "V", content.Video), ShouldBeNil)
		So(factory.kinds, ShouldResemble, []content.Kind{content.Video})

		// A video taking over must not signal the video renderers to pause.
		So(videoPauses, ShouldEqual, 0)

		a := mediakey.Derive("feed", "a", "", 1)
		So(m.Play(a, "https://cdn.example.com/a.mp3", "A", content.Audio), ShouldBeNil)
		So(factory.kinds, ShouldResemble, []content.Kind{content.Video, content.Audio})
		So(videoPauses, ShouldEqual, 1)

		// Resuming the paused video goes back through the video universe.
		So(m.Play(v, "https://cdn.example.com/v.mp4", "V", content.Video), ShouldBeNil)
		So(store.Entry(v).IsPlaying, ShouldBeTrue)
		So(videoPauses, ShouldEqual, 1)
	})
}
