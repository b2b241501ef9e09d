// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"time"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/internal/ui"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/open"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/query"
	"github.com/jevah-cli/jevah/realtime"
	"github.com/jevah-cli/jevah/viewed"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	jevahKey "github.com/jevah-cli/jevah/key"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process Ephemeral UI Notifications (captures `string` and `ui.ClearNotificationMsg`)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case provider.ScraperUpdatedMsg:
		// Provider updates are reloaded asynchronously.
		return b, b.loadProviders()
	case realtime.Event:
		// Stat-change hint: re-fetch the counters, then resubscribe.
		return b, tea.Batch(b.refreshStats(msg), b.waitForRealtime())
	case statsChangedMsg:
		b.applyStatsUpdate(msg.contentID)
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}

		// Input Guard: Ignore non-priority keys during asynchronous operations.
		if b.busy && b.state != playState && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case searchState:
				b.inputC.SetValue("")
			case itemsState:
				if b.itemsC.FilterState() != list.Unfiltered {
					b.itemsC, cmd = b.itemsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.itemsC)
			case historyState:
				if b.historyC.FilterState() != list.Unfiltered {
					b.historyC, cmd = b.historyC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.historyC)
			case sourcesState:
				if b.sourcesC.FilterState() != list.Unfiltered {
					b.sourcesC, cmd = b.sourcesC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.sourcesC)
			case playState:
				// Leaving the playback screen pauses everything; the paused
				// position survives for the next resume.
				b.savePlaybackProgress()
				b.sessions.PauseAll()
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case historyState:
		return b.updateHistory(msg)
	case sourcesState:
		return b.updateSources(msg)
	case searchState:
		return b.updateSearch(msg)
	case itemsState:
		return b.updateItems(msg)
	case playState:
		return b.updatePlay(msg)
	case postPlayState:
		return b.updatePostPlay(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

// applyStatsUpdate pushes the freshest cached counters into the matching list rows.
func (b *statefulBubble) applyStatsUpdate(contentID string) {
	for _, li := range b.itemsC.Items() {
		li := li.(*listItem)
		if item, ok := li.internal.(*content.Item); ok && item.ID == contentID {
			if cached, ok := b.statsCache.Get(contentID).Get(); ok {
				li.stats = &cached
			}
		}
	}
}

// savePlaybackProgress persists the currently playing item's watched percentage.
func (b *statefulBubble) savePlaybackProgress() {
	item := b.currentPlayingItem
	if item == nil {
		return
	}
	entry := b.playbackStore.Entry(keyFor(item))
	if viper.GetBool(jevahKey.HistorySaveOnView) {
		if err := viewed.Save(item, entry.ProgressPercent); err != nil {
			log.Warnf("failed to save progress for %s: %v", item.Title, err)
		}
	}
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			} else {
				return b, tea.Quit
			}
		}
	case []*content.Item:
		items := make([]list.Item, len(msg))
		listItems := make([]*listItem, len(msg))
		for i, m := range msg {
			li := &listItem{internal: m}
			items[i] = li
			listItems[i] = li
		}

		cmds = append(cmds, b.itemsC.SetItems(items))
		b.newState(itemsState)
		b.stopLoading()

		b.syncViewportLayouts()
		b.hydrateStats(listItems)
	case []content.Source:
		b.selectedSources = msg

		if b.statesHistory.Peek() == historyState {
			b.newState(historyState)
			b.stopLoading()
			cmds = append(cmds, func() tea.Msg {
				return msg
			})
		} else {
			b.stopLoading()
			b.newState(searchState)
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case []content.Source: // Sources loaded for a history entry
		b.selectedSources = msg
		selected := b.historyC.SelectedItem().(*listItem).internal.(*viewed.SavedItem)

		item := &content.Item{
			ID:      selected.ContentID,
			Title:   selected.Title,
			Kind:    selected.Kind,
			FileURL: selected.FileURL,
			Source:  b.selectedSources[0],
		}

		if !item.Kind.Playable() {
			if err := open.Start(item.FileURL); err != nil {
				b.raiseError(err)
			}
			return b, nil
		}

		b.currentPlayingItem = item
		b.progressStatus = fmt.Sprintf("Resuming %s...", item.Title)
		b.newState(playState)
		return b, tea.Batch(b.playItem(item), b.startLoading())

	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			p := b.historyC.Items()
			if len(p) > 0 && b.historyC.Index() == len(p)-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*viewed.SavedItem)
				err := open.Run(entry.FileURL)
				if err != nil {
					b.raiseError(err)
				}
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*viewed.SavedItem)
				_ = viewed.Remove(entry)
				cmd, err := b.loadHistory()
				if err != nil {
					return nil, nil // Error during load
				}
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.selectOne, b.keymap.confirm):
			if b.historyC.SelectedItem() != nil {
				selected := b.historyC.SelectedItem().(*listItem).internal.(*viewed.SavedItem)
				providers := lo.Map(b.sourcesC.Items(), func(i list.Item, _ int) *provider.Provider {
					return i.(*listItem).internal.(*provider.Provider)
				})

				p, ok := lo.Find(providers, func(p *provider.Provider) bool {
					return p.ID == selected.SourceID
				})

				if !ok {
					err := fmt.Errorf("provider %s not found (was used for %s)", selected.SourceID, selected.Title)
					b.raiseError(err)
					return b, nil
				}

				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.loadSources([]*provider.Provider{p}), b.waitForSourcesLoaded())
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSources(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.sourcesC.Items()); n > 0 && b.sourcesC.Index() == 0 {
				b.sourcesC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			p := b.sourcesC.Items()
			if n := len(p); n > 0 && b.sourcesC.Index() == n-1 {
				b.sourcesC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.selectAll):
			for _, item := range b.sourcesC.Items() {
				item := item.(*listItem)
				item.marked = true
				b.selectedProviders[item.internal.(*provider.Provider)] = struct{}{}
			}
		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			for _, item := range b.sourcesC.Items() {
				item := item.(*listItem)
				item.marked = false
				delete(b.selectedProviders, item.internal.(*provider.Provider))
			}
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			item := b.sourcesC.SelectedItem().(*listItem)
			p := item.internal.(*provider.Provider)

			if item.marked {
				delete(b.selectedProviders, p)
			} else {
				b.selectedProviders[p] = struct{}{}
			}
			item.toggleMark()
		case bubblesKey.Matches(msg, b.keymap.saveAsDefault):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			item := b.sourcesC.SelectedItem().(*listItem)
			p := item.internal.(*provider.Provider)

			viper.Set(jevahKey.DefaultSources, []string{p.Name})
			if err := viper.WriteConfig(); err != nil {
				b.raiseError(err)
				break
			}

			// Update the results header to indicate the currently active provider.
			b.itemsC.Title = fmt.Sprintf("Search Results - %s", p.Name)
			b.sourcesC.NewStatusMessage(fmt.Sprintf("Saved %s as default source", p.Name))

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadSources([]*provider.Provider{p}), b.waitForSourcesLoaded())

		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			item := b.sourcesC.SelectedItem().(*listItem)

			if len(b.selectedProviders) == 0 {
				p := item.internal.(*provider.Provider)
				b.itemsC.Title = fmt.Sprintf("Search Results - %s", p.Name)
				b.progressStatus = fmt.Sprintf("Loading media from %s...", p.Name)
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.loadSources([]*provider.Provider{p}), b.waitForSourcesLoaded())
			}

			b.progressStatus = "Loading selected providers..."
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadSources(lo.Keys(b.selectedProviders)), b.waitForSourcesLoaded())
		}
	}

	b.sourcesC, cmd = b.sourcesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.changeSource):
			b.newState(sourcesState)
			return b, b.loadProviders()
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			b.progressStatus = fmt.Sprintf("Searching for %s...", b.inputC.Value())
			b.startLoading()
			b.newState(loadingState)
			go query.Remember(b.inputC.Value(), 1)
			return b, tea.Batch(b.searchMedia(b.inputC.Value()), b.waitForItems(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.changeSource):
			b.newState(sourcesState)
			return b, b.loadProviders()

		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.itemsC.Items()); n > 0 && b.itemsC.Index() == 0 {
				b.itemsC.Select(n - 1)
				return b, b.maybeAutoplay()
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.itemsC.Items()); n > 0 && b.itemsC.Index() == n-1 {
				b.itemsC.Select(0)
				return b, b.maybeAutoplay()
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(*content.Item)
			if err := open.Start(item.FileURL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.like):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(*content.Item)
			return b, b.toggleLike(item)
		case bubblesKey.Matches(msg, b.keymap.save):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(*content.Item)
			return b, b.toggleSave(item)
		case bubblesKey.Matches(msg, b.keymap.share):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(*content.Item)
			return b, b.shareItem(item)
		case bubblesKey.Matches(msg, b.keymap.play), bubblesKey.Matches(msg, b.keymap.confirm) && viper.GetBool(jevahKey.TUIPlayOnEnter):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(*content.Item)

			// Ebooks have no stream; hand them to the system opener.
			if !item.Kind.Playable() {
				if err := open.Start(item.FileURL); err != nil {
					b.raiseError(err)
				}
				return b, nil
			}

			go query.Remember(item.Title, 2)
			b.currentPlayingItem = item
			b.newState(playState)
			return b, tea.Batch(b.playItem(item), b.startLoading())
		}
	}

	b.itemsC, cmd = b.itemsC.Update(msg)
	return b, tea.Batch(cmd, b.maybeAutoplay())
}

// maybeAutoplay resolves the dominant visible item and, when the autoplay
// setting is on, starts it if it is not already the active session.
func (b *statefulBubble) maybeAutoplay() tea.Cmd {
	candidate, act := b.autoplayCandidate()
	if candidate == nil || !act || !candidate.Kind.Playable() {
		return nil
	}

	if cur, ok := b.playbackStore.Playing().Get(); ok && cur == keyFor(candidate) {
		return nil
	}

	b.currentPlayingItem = candidate
	return b.playItem(candidate)
}

func (b *statefulBubble) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case playStartedMsg:
		b.stopLoading()
		b.currentPlayingItem = msg.item
		tick := tea.Tick(time.Second, func(time.Time) tea.Msg {
			return playTickMsg{}
		})
		if msg.syncQueued {
			return b, tea.Batch(tick, ui.NotifySyncFailure())
		}
		return b, tick
	case playTickMsg:
		if b.currentPlayingItem == nil {
			return b, nil
		}

		entry := b.playbackStore.Entry(keyFor(b.currentPlayingItem))

		if entry.Err != nil {
			b.raiseError(entry.Err)
			return b, nil
		}

		if entry.HasCompleted {
			b.savePlaybackProgress()
			b.newState(postPlayState)
			b.postPlayC.Select(0)
			return b, nil
		}

		return b, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return playTickMsg{}
		})
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			if b.currentPlayingItem == nil {
				break
			}
			return b, b.playItem(b.currentPlayingItem)
		case bubblesKey.Matches(msg, b.keymap.mute):
			if b.currentPlayingItem == nil {
				break
			}
			k := keyFor(b.currentPlayingItem)
			entry := b.playbackStore.Entry(k)
			if err := b.sessions.SetMuted(k, !entry.IsMuted); err != nil {
				log.Warnf("mute toggle failed: %v", err)
				break
			}
			b.playbackStore.ToggleMute(k)
		case bubblesKey.Matches(msg, b.keymap.like):
			if b.currentPlayingItem == nil {
				break
			}
			return b, b.toggleLike(b.currentPlayingItem)
		case bubblesKey.Matches(msg, b.keymap.save):
			if b.currentPlayingItem == nil {
				break
			}
			return b, b.toggleSave(b.currentPlayingItem)
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePostPlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.postPlayC.Items()); n > 0 && b.postPlayC.Index() == 0 {
				b.postPlayC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.postPlayC.Items()); n > 0 && b.postPlayC.Index() == n-1 {
				b.postPlayC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.selectOne):
			if b.postPlayC.SelectedItem() == nil {
				break
			}
			selection := b.postPlayC.SelectedItem().(*listItem).internal.(string)
			switch selection {
			case "Next":
				if next, ok := b.adjacentItem(+1); ok {
					b.currentPlayingItem = next
					b.newState(playState)
					return b, tea.Batch(b.playItem(next), b.startLoading())
				}
				b.previousState()

			case "Replay":
				if b.currentPlayingItem != nil {
					b.newState(playState)
					return b, tea.Batch(b.playItem(b.currentPlayingItem), b.startLoading())
				}

			case "Previous":
				if prev, ok := b.adjacentItem(-1); ok {
					b.currentPlayingItem = prev
					b.newState(playState)
					return b, tea.Batch(b.playItem(prev), b.startLoading())
				}
				b.previousState()

			case "Back to Results":
				b.previousState()
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		}
	}

	b.postPlayC, cmd = b.postPlayC.Update(msg)
	return b, cmd
}

// adjacentItem walks the results list relative to the current item, skipping
// entries that cannot be played.
func (b *statefulBubble) adjacentItem(step int) (*content.Item, bool) {
	current := b.currentPlayingItem
	if current == nil {
		return nil, false
	}

	items := b.itemsC.Items()
	idx := -1
	for i, li := range items {
		item, ok := li.(*listItem).internal.(*content.Item)
		if ok && item.ID == current.ID && item.FileURL == current.FileURL {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false
	}

	for i := idx + step; i >= 0 && i < len(items); i += step {
		item, ok := items[i].(*listItem).internal.(*content.Item)
		if ok && item.Kind.Playable() {
			b.itemsC.Select(i)
			return item, true
		}
	}
	return nil, false
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, cmd
}
