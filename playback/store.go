// Package playback implements the process-wide playback state store.
//
// The store maps media keys to per-item playback flags and enforces the single
// global invariant every screen relies on: at most one entry reports itself as
// playing at any instant, across the combined video and audio universe. All
// callers go through the store's operations; nothing mutates flags directly.
package playback

import (
	"sync"

	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/mediakey"
	"github.com/samber/mo"
)

// Kind distinguishes the two media universes the exclusivity invariant spans.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Entry holds the playback flags tracked for a single media key.
// Entries are created lazily on first write and never explicitly destroyed.
type Entry struct {
	Key             mediakey.Key
	IsPlaying       bool
	IsMuted         bool
	ProgressPercent float64
	HasCompleted    bool
	OverlayVisible  bool
	// Err is the terminal playback error for this item, surfaced to the UI
	// as a disabled/error state. Cleared on the next play attempt.
	Err error
}

// AudioPauser is implemented by the audio session manager. The store invokes it
// after a play-exclusively mutation so any live decoded-audio handle that does
// not match the new key is paused. The call happens outside the store's lock;
// the handle-level pause may complete asynchronously, the store-level invariant
// already holds.
type AudioPauser interface {
	PauseAllExcept(key mediakey.Key)
}

// Store is the playback state table. It is safe for concurrent use and is
// shared as a single instance by every screen; construct it once and inject it.
type Store struct {
	mu      sync.Mutex
	entries map[mediakey.Key]*Entry

	audioPauser AudioPauser
	pauseVideo  func()
}

// NewStore returns an empty playback state store.
func NewStore() *Store {
	return &Store{
		entries: make(map[mediakey.Key]*Entry),
	}
}

// SetAudioPauser registers the audio session manager collaborator.
func (s *Store) SetAudioPauser(p AudioPauser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioPauser = p
}

// OnPauseVideo registers the signal external video renderers listen to when an
// audio item takes over playback.
func (s *Store) OnPauseVideo(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseVideo = fn
}

// entry returns the tracked entry for key, creating it with defaults on first reference.
// Caller must hold s.mu.
func (s *Store) entry(key mediakey.Key) *Entry {
	e, ok := s.entries[key]
	if !ok {
		e = &Entry{Key: key}
		s.entries[key] = e
	}
	return e
}

// PlayExclusively marks key as playing and every other tracked key as not
// playing, regardless of kind. The store-level mutation is atomic: no observer
// can read a state with two playing entries, even momentarily. Collaborator
// notifications (audio handle pause, video renderer signal) fire after the
// lock is released.
func (s *Store) PlayExclusively(key mediakey.Key, kind Kind) {
	s.mu.Lock()
	for k, e := range s.entries {
		if k != key {
			e.IsPlaying = false
		}
	}
	e := s.entry(key)
	e.IsPlaying = true
	e.HasCompleted = false
	e.Err = nil

	pauser := s.audioPauser
	pauseVideo := s.pauseVideo
	s.mu.Unlock()

	log.Debugf("playback: %s now playing exclusively (%s)", key, kind)

	if pauser != nil {
		pauser.PauseAllExcept(key)
	}
	if kind == KindAudio && pauseVideo != nil {
		pauseVideo()
	}
}

// Pause marks key as not playing. No effect on other keys.
func (s *Store) Pause(key mediakey.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(key).IsPlaying = false
}

// PauseAll marks every tracked key as not playing. Used on screen blur and
// navigation away.
func (s *Store) PauseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		e.IsPlaying = false
	}
}

// ToggleMute inverts the mute flag for key.
func (s *Store) ToggleMute(key mediakey.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(key)
	e.IsMuted = !e.IsMuted
}

// SetProgress records the playback completion percentage for key, clamped to [0, 100].
func (s *Store) SetProgress(key mediakey.Key, percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(key).ProgressPercent = percent
}

// SetCompleted transitions key in and out of the completed state. Completion
// resets progress to zero and clears the playing flag, so the entry is
// immediately replayable.
func (s *Store) SetCompleted(key mediakey.Key, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(key)
	e.HasCompleted = completed
	if completed {
		e.IsPlaying = false
		e.ProgressPercent = 0
	}
}

// SetOverlayVisible records the overlay visibility flag for key.
func (s *Store) SetOverlayVisible(key mediakey.Key, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(key).OverlayVisible = visible
}

// SetError records a terminal playback error for key and clears its playing flag.
func (s *Store) SetError(key mediakey.Key, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(key)
	e.Err = err
	e.IsPlaying = false
}

// Entry returns a snapshot copy of the tracked entry for key.
func (s *Store) Entry(key mediakey.Key) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.entry(key)
}

// Playing returns the key currently marked as playing, if any.
func (s *Store) Playing() mo.Option[mediakey.Key] {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if e.IsPlaying {
			return mo.Some(k)
		}
	}
	return mo.None[mediakey.Key]()
}

// Entries returns a snapshot of every tracked entry.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		snapshot = append(snapshot, *e)
	}
	return snapshot
}
