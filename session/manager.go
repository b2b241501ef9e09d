package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/mediakey"
	"github.com/jevah-cli/jevah/playback"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// defaultProgressInterval bounds how often the manager reports progress into the
// playback store. Decoupled from any render loop so rapid position updates never
// flood re-renders.
const defaultProgressInterval = time.Second

// Manager owns the live media handles and the paused-position map. One instance
// per application, shared by every screen; it registers itself as the playback
// store's audio pauser so store-level exclusivity propagates to the hardware.
type Manager struct {
	mu        sync.Mutex
	store     *playback.Store
	factory   Factory
	handles   map[mediakey.Key]Handle
	current   mo.Option[mediakey.Key]
	positions map[mediakey.Key]int64

	interval   time.Duration
	tickerStop chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithProgressInterval overrides the progress reporting cadence. Used by tests.
func WithProgressInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

// New creates the media session manager bound to the given playback store.
func New(store *playback.Store, factory Factory, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		factory:   factory,
		handles:   make(map[mediakey.Key]Handle),
		current:   mo.None[mediakey.Key](),
		positions: make(map[mediakey.Key]int64),
		interval:  defaultProgressInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	store.SetAudioPauser(m)
	return m
}

// Play starts, pauses, or resumes playback for key depending on its current state:
//
//   - key is currently playing: pause it and record its position.
//   - key has a paused handle: resume from the recorded position.
//   - otherwise: pause whichever key is playing, create a fresh handle at the
//     recorded resume position (default 0) and start it.
//
// The item kind selects the player backend for fresh handles and the playback
// universe reported to the store, so audio taking over signals video renderers
// to pause while video taking over does not signal itself.
//
// On a handle failure the partially-created handle is disposed and the store
// entry is left consistent; no ghost playing flag survives.
func (m *Manager) Play(k mediakey.Key, uri, title string, kind content.Kind) error {
	if uri == "" {
		return ErrInvalidSource
	}

	m.mu.Lock()

	if h, ok := m.handles[k]; ok {
		if cur, present := m.current.Get(); present && cur == k {
			// Playing → paused.
			m.recordPositionLocked(k, h)
			if err := h.Pause(); err != nil {
				log.Warnf("session: pause %s: %v", k, err)
			}
			m.current = mo.None[mediakey.Key]()
			m.mu.Unlock()

			m.store.Pause(k)
			return nil
		}

		// Paused → resumed from the recorded position.
		m.pauseCurrentLocked()
		if pos := m.positions[k]; pos > 0 {
			if err := h.SeekMs(pos); err != nil {
				log.Warnf("session: seek %s to %dms: %v", k, pos, err)
			}
		}
		if err := h.Resume(); err != nil {
			m.disposeLocked(k)
			m.mu.Unlock()

			wrapped := fmt.Errorf("%w: resume %s: %v", ErrDecodeFailure, k, err)
			m.store.SetError(k, wrapped)
			return wrapped
		}
		m.current = mo.Some(k)
		m.mu.Unlock()

		m.store.PlayExclusively(k, storeKind(kind))
		return nil
	}

	// Fresh handle for a key we have never (or no longer) tracked.
	m.pauseCurrentLocked()

	h := m.factory(kind)
	if err := h.Open(uri, title, nil); err != nil {
		_ = h.Close()
		m.mu.Unlock()

		wrapped := fmt.Errorf("%w: open %s: %v", ErrDecodeFailure, k, err)
		m.store.SetError(k, wrapped)
		return wrapped
	}

	if pos := m.positions[k]; pos > 0 {
		if err := h.SeekMs(pos); err != nil {
			log.Warnf("session: seek %s to %dms: %v", k, pos, err)
		}
	}

	m.handles[k] = h
	m.current = mo.Some(k)
	m.ensureTickerLocked()
	m.mu.Unlock()

	m.store.PlayExclusively(k, storeKind(kind))
	return nil
}

// storeKind maps the content taxonomy onto the store's two playback universes.
func storeKind(kind content.Kind) playback.Kind {
	if kind == content.Video {
		return playback.KindVideo
	}
	return playback.KindAudio
}

// PauseAllExcept pauses every live handle that does not match key, recording
// positions for later resume. Invoked by the playback store after an exclusive
// play mutation; individual pause failures are tolerated.
func (m *Manager) PauseAllExcept(k mediakey.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for other, h := range m.handles {
		if other == k {
			continue
		}
		if cur, present := m.current.Get(); present && cur == other {
			m.recordPositionLocked(other, h)
			if err := h.Pause(); err != nil {
				log.Warnf("session: pause %s: %v", other, err)
			}
		}
	}

	if cur, present := m.current.Get(); present && cur != k {
		m.current = mo.None[mediakey.Key]()
	}
}

// PauseAll pauses every live handle best-effort, clears the playing pointer, and
// propagates the pause to the playback store. Used on screen blur and shutdown.
func (m *Manager) PauseAll() {
	m.mu.Lock()
	for k, h := range m.handles {
		if cur, present := m.current.Get(); present && cur == k {
			m.recordPositionLocked(k, h)
		}
		if err := h.Pause(); err != nil {
			log.Warnf("session: pause %s: %v", k, err)
		}
	}
	m.current = mo.None[mediakey.Key]()
	m.mu.Unlock()

	m.store.PauseAll()
}

// SetMuted toggles mute on the live handle for key. No-op when no handle exists.
func (m *Manager) SetMuted(k mediakey.Key, muted bool) error {
	m.mu.Lock()
	h, ok := m.handles[k]
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return h.SetMuted(muted)
}

// Dispose unloads the handle for key and removes it from the live set.
// Safe to call on an already-disposed or never-created key.
func (m *Manager) Dispose(k mediakey.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposeLocked(k)
	return nil
}

// Position reports the recorded paused position for key in milliseconds.
func (m *Manager) Position(k mediakey.Key) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positions[k]
}

// Close stops the progress ticker and disposes every live handle.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop = nil
	}
	for k := range m.handles {
		m.disposeLocked(k)
	}
	m.mu.Unlock()
}

// recordPositionLocked snapshots the handle position into the paused-position map.
func (m *Manager) recordPositionLocked(k mediakey.Key, h Handle) {
	pos, err := h.PositionMs()
	if err != nil {
		log.Warnf("session: read position of %s: %v", k, err)
		return
	}
	m.positions[k] = pos
}

// pauseCurrentLocked pauses whichever key is currently playing, recording its position.
func (m *Manager) pauseCurrentLocked() {
	cur, present := m.current.Get()
	if !present {
		return
	}
	if h, ok := m.handles[cur]; ok {
		m.recordPositionLocked(cur, h)
		if err := h.Pause(); err != nil {
			log.Warnf("session: pause %s: %v", cur, err)
		}
	}
	m.current = mo.None[mediakey.Key]()
}

func (m *Manager) disposeLocked(k mediakey.Key) {
	h, ok := m.handles[k]
	if !ok {
		return
	}
	if err := h.Close(); err != nil {
		log.Warnf("session: close %s: %v", k, err)
	}
	delete(m.handles, k)
	if cur, present := m.current.Get(); present && cur == k {
		m.current = mo.None[mediakey.Key]()
	}
}

// ensureTickerLocked starts the bounded-interval progress reporter once.
func (m *Manager) ensureTickerLocked() {
	if m.tickerStop != nil {
		return
	}
	m.tickerStop = make(chan struct{})
	go m.progressLoop(m.tickerStop)
}

// progressLoop polls the playing handle at the configured interval and feeds
// the playback store. On natural completion it disposes the handle, resets the
// paused position to zero and transitions the store entry to completed.
func (m *Manager) progressLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.reportProgress()
		}
	}
}

func (m *Manager) reportProgress() {
	m.mu.Lock()
	cur, present := m.current.Get()
	if !present {
		m.mu.Unlock()
		return
	}
	h := m.handles[cur]
	m.mu.Unlock()

	if h == nil {
		return
	}

	pos, posErr := h.PositionMs()
	dur, durErr := h.DurationMs()

	if posErr != nil || durErr != nil {
		// The backing process went away mid-playback. Treat it as completion when
		// we were already past the completion threshold, as a plain stop otherwise.
		last := m.store.Entry(cur).ProgressPercent
		threshold := float64(viper.GetInt(key.PlaybackCompletionPercentage))
		m.finish(cur, last >= threshold)
		return
	}

	if dur <= 0 {
		return
	}

	percent := float64(pos) / float64(dur) * 100
	m.store.SetProgress(cur, percent)

	if pos >= dur {
		m.finish(cur, true)
	}
}

// finish tears down the current handle after playback ended on its own.
func (m *Manager) finish(k mediakey.Key, completed bool) {
	m.mu.Lock()
	m.disposeLocked(k)
	if completed {
		m.positions[k] = 0
	}
	m.mu.Unlock()

	if completed {
		m.store.SetCompleted(k, true)
	} else {
		m.store.Pause(k)
	}
}
