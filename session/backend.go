package session

import (
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/player"
	"github.com/spf13/viper"
)

// playerHandle adapts a player backend to the Handle interface the manager
// works against. The player package speaks seconds, the session layer speaks
// milliseconds.
type playerHandle struct {
	p player.Player
}

// DefaultFactory creates handles backed by the configured media player. Video
// items open a windowed mpv; audio and sermons run without a video window.
func DefaultFactory() Factory {
	return func(kind content.Kind) Handle {
		switch viper.GetString(key.Player) {
		case "iina":
			return &playerHandle{p: player.NewIINA()}
		default:
			if kind == content.Video {
				return &playerHandle{p: player.NewMPV()}
			}
			return &playerHandle{p: player.NewAudioMPV()}
		}
	}
}

func (h *playerHandle) Open(uri, title string, headers map[string]string) error {
	return h.p.Play(uri, title, headers)
}

func (h *playerHandle) Pause() error {
	return h.p.SetPaused(true)
}

func (h *playerHandle) Resume() error {
	return h.p.SetPaused(false)
}

func (h *playerHandle) SeekMs(ms int64) error {
	return h.p.Seek(float64(ms) / 1000)
}

func (h *playerHandle) SetMuted(muted bool) error {
	return h.p.SetMuted(muted)
}

func (h *playerHandle) PositionMs() (int64, error) {
	pos, err := h.p.GetTimePos()
	if err != nil {
		return 0, err
	}
	return int64(pos * 1000), nil
}

func (h *playerHandle) DurationMs() (int64, error) {
	dur, err := h.p.GetDuration()
	if err != nil {
		return 0, err
	}
	return int64(dur * 1000), nil
}

func (h *playerHandle) Close() error {
	return h.p.Close()
}
