// Package mini implements a lightweight, minimalist interface for media search and playback.
package mini

import (
	"os"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/interaction"
	intsync "github.com/jevah-cli/jevah/internal/sync"
	"github.com/jevah-cli/jevah/playback"
	"github.com/jevah-cli/jevah/session"
	"github.com/jevah-cli/jevah/stats"
	"github.com/jevah-cli/jevah/util"
	"github.com/samber/lo"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	selectedSource content.Source

	cachedItems map[string][]*content.Item

	query        string
	selectedItem *content.Item

	store       *playback.Store
	sessions    *session.Manager
	coordinator *interaction.Coordinator
	statsCache  *stats.Cache
}

func newMini() *mini {
	statsCache := stats.NewCache()
	store := playback.NewStore()

	return &mini{
		statesHistory: util.Stack[state]{},
		cachedItems:   make(map[string][]*content.Item),

		store:       store,
		sessions:    session.New(store, session.DefaultFactory()),
		coordinator: interaction.New(api.New(), statsCache, &intsync.ViewQueue{}),
		statsCache:  statsCache,
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	m := newMini()
	defer m.sessions.Close()

	m.state = sourceSelectState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case sourceSelectState:
		return m.handleSourceSelectState()
	case mediaSearchState:
		return m.handleMediaSearchState()
	case itemSelectState:
		return m.handleItemSelectState()
	case playbackState:
		return m.handlePlaybackState()
	case quitState:
		m.sessions.PauseAll()
		m.sessions.Close()
		os.Exit(0)
	}

	return nil
}
