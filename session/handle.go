// Package session implements the media session manager.
//
// The manager owns at most one live decoded-media handle at a time and keeps a
// paused-position map per media key so playback resumes where it stopped
// instead of restarting. It is the only component allowed to touch handles
// directly; screens interact with it through the playback store's flags.
package session

import (
	"errors"

	"github.com/jevah-cli/jevah/content"
)

// Error taxonomy for playback attempts.
var (
	// ErrInvalidSource marks an attempt to play an empty or malformed URL.
	// Surfaced to the UI as a disabled state on that item, never retried automatically.
	ErrInvalidSource = errors.New("invalid media source")

	// ErrDecodeFailure marks a handle that rejected its source. The failed handle is
	// disposed before the error propagates; a single stale-URL refresh may be attempted
	// as recovery, a second failure is terminal for that playback attempt.
	ErrDecodeFailure = errors.New("media decode failure")
)

// Handle abstracts one live decoded-media resource. Implementations wrap an
// external player process (see the player package) or a fake backend in tests,
// so the session logic never depends on a specific playback engine's mechanics.
type Handle interface {
	// Open loads the media at uri and starts playing it.
	Open(uri, title string, headers map[string]string) error

	// Pause suspends playback, keeping the handle alive.
	Pause() error

	// Resume continues playback of a paused handle.
	Resume() error

	// SeekMs moves playback to an absolute position in milliseconds.
	SeekMs(ms int64) error

	// SetMuted toggles audio output without affecting playback position.
	SetMuted(muted bool) error

	// PositionMs reports the current playback position in milliseconds.
	PositionMs() (int64, error)

	// DurationMs reports the total media duration in milliseconds, zero when unknown.
	DurationMs() (int64, error)

	// Close disposes the handle and releases its resources. Idempotent.
	Close() error
}

// Factory creates a fresh handle for a new playback attempt. The item kind
// picks the backend: video items get a windowed player, audio-only kinds run
// headless.
type Factory func(kind content.Kind) Handle
