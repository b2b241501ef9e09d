// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/constant"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/interaction"
	intsync "github.com/jevah-cli/jevah/internal/sync"
	"github.com/jevah-cli/jevah/internal/ui"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/playback"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/realtime"
	"github.com/jevah-cli/jevah/session"
	"github.com/jevah-cli/jevah/stats"
	"github.com/jevah-cli/jevah/style"
	"github.com/jevah-cli/jevah/util"
	"github.com/jevah-cli/jevah/viewport"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // Protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	historyC  list.Model
	sourcesC  list.Model
	itemsC    list.Model
	postPlayC list.Model
	progressC progress.Model
	helpC     help.Model

	selectedProviders map[*provider.Provider]struct{}
	selectedSources   []content.Source

	sourcesLoadedChannel chan []content.Source
	foundItemsChannel    chan []*content.Item
	errorChannel         chan error

	progressStatus string

	// playback coordination core, shared across every screen
	client        *api.Client
	playbackStore *playback.Store
	sessions      *session.Manager
	coordinator   *interaction.Coordinator
	statsCache    *stats.Cache
	viewports     *viewport.Registry

	realtimeEvents <-chan realtime.Event
	realtimeCancel context.CancelFunc

	currentPlayingItem *content.Item
	lastError          error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		playState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.sourcesC.SetSize(listWidth, listHeight)
	b.sourcesC.Help.Width = listWidth

	b.itemsC.SetSize(listWidth, listHeight)
	b.itemsC.Help.Width = listWidth

	b.postPlayC.SetSize(listWidth, listHeight)
	b.postPlayC.Help.Width = listWidth

	b.progressC.Width = listWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth

	b.syncViewportLayouts()
}

// startLoading enters a concurrent loading state, initializing visual indicators across child components.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return tea.Batch(b.itemsC.StartSpinner(), b.historyC.StartSpinner())
}

// stopLoading exits the loading state and synchronizes child component visual indicators.
func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.busy = false
	b.itemsC.StopSpinner()
	b.historyC.StopSpinner()
	return nil
}

// shutdown pauses every live session and tears down background workers.
func (b *statefulBubble) shutdown() {
	if b.realtimeCancel != nil {
		b.realtimeCancel()
	}
	b.sessions.PauseAll()
	b.sessions.Close()
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()

	client := api.New()
	statsCache := stats.NewCache()
	playbackStore := playback.NewStore()
	sessions := session.New(playbackStore, session.DefaultFactory())
	coordinator := interaction.New(client, statsCache, &intsync.ViewQueue{})

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		sourcesLoadedChannel: make(chan []content.Source),
		foundItemsChannel:    make(chan []*content.Item),
		errorChannel:         make(chan error),

		selectedProviders: make(map[*provider.Provider]struct{}),

		client:        client,
		playbackStore: playbackStore,
		sessions:      sessions,
		coordinator:   coordinator,
		statsCache:    statsCache,
		viewports:     viewport.NewRegistry(),

		notifier: &ui.Model{},
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search Media (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.sourcesC = makeList("Media Sources", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.sourcesC.SetStatusBarItemName("source", "sources")

	bubble.itemsC = makeList("Search Results", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.itemsC.SetStatusBarItemName("item", "items")

	bubble.options = options

	bubble.historyC = makeList("History", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.postPlayC = makeList("What's Next", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Mauve).Padding(0, 1),
		),
	})
	bubble.postPlayC.SetItems([]list.Item{
		&listItem{internal: "Next"},
		&listItem{internal: "Replay"},
		&listItem{internal: "Previous"},
		&listItem{internal: "Back to Results"},
	})
	bubble.postPlayC.SetStatusBarItemName("option", "options")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
