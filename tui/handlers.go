// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jevah-cli/jevah/color"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/integration"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/mediakey"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/realtime"
	"github.com/jevah-cli/jevah/stats"
	"github.com/jevah-cli/jevah/style"
	"github.com/jevah-cli/jevah/util"
	"github.com/jevah-cli/jevah/viewed"
	"github.com/jevah-cli/jevah/viewport"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) loadProviders() tea.Cmd {
	providers := provider.Builtins()
	customProviders := provider.Customs()

	var items []list.Item
	for _, p := range providers {
		items = append(items, &listItem{
			internal: p,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.Compare(items[i].FilterValue(), items[j].FilterValue()) < 0
	})

	var customItems []list.Item
	for _, p := range customProviders {
		customItems = append(customItems, &listItem{
			internal: p,
		})
	}
	sort.Slice(customItems, func(i, j int) bool {
		return strings.Compare(customItems[i].FilterValue(), customItems[j].FilterValue()) < 0
	})

	return b.sourcesC.SetItems(append(items, customItems...))
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := viewed.Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].Title, entries[j].Title) < 0
	})

	var items []list.Item
	for _, e := range entries {
		items = append(items, &listItem{
			internal: e,
		})
	}

	return tea.Batch(b.historyC.SetItems(items), b.loadProviders()), nil
}

func (b *statefulBubble) loadSources(ps []*provider.Provider) tea.Cmd {
	return func() tea.Msg {
		var (
			sources = make([]content.Source, len(ps))
			wg      = sync.WaitGroup{}
			mutex   = sync.Mutex{}
			err     error
		)

		wg.Add(len(ps))
		for i, p := range ps {
			go func(i int, p *provider.Provider) {
				defer wg.Done()

				if err != nil {
					return
				}

				log.Info("loading source " + p.ID)
				b.progressStatus = "Initializing source"
				var s content.Source
				s, err = p.CreateSource()

				if err != nil {
					log.Error(err)
					b.errorChannel <- err
					return
				}

				if s == nil {
					log.Errorf("source %s creation returned nil", p.ID)
					return
				}

				log.Info("source " + p.ID + " loaded")

				mutex.Lock()
				sources[i] = s
				mutex.Unlock()
			}(i, p)
		}

		wg.Wait()

		validSources := lo.Filter(sources, func(s content.Source, _ int) bool {
			return s != nil
		})

		if len(validSources) == 0 && len(ps) > 0 {
			if err != nil {
				return err
			}
			return fmt.Errorf("failed to load any sources")
		}

		b.sourcesLoadedChannel <- validSources
		return nil
	}
}

func (b *statefulBubble) waitForSourcesLoaded() tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-b.sourcesLoadedChannel:
			return res
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) searchMedia(query string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching for " + query)
		b.progressStatus = fmt.Sprintf("Searching among %s", util.Quantify(len(b.selectedSources), "source", "sources"))

		var items = make([]*content.Item, 0)
		var mutex sync.Mutex

		wg := sync.WaitGroup{}
		wg.Add(len(b.selectedSources))
		for _, s := range b.selectedSources {
			go func(s content.Source) {
				defer wg.Done()
				found, err := s.Search(query)

				if err != nil {
					log.Error(err)
					b.errorChannel <- err
					return
				}

				log.Infof("found %s from source %s", util.Quantify(len(found), "item", "items"), s.Name())
				mutex.Lock()
				items = append(items, found...)
				mutex.Unlock()
			}(s)
		}

		wg.Wait()

		log.Infof("found %d items from %d sources", len(items), len(b.selectedSources))
		b.foundItemsChannel <- items
		return nil
	}
}

func (b *statefulBubble) waitForItems() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.foundItemsChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

// hydrateStats asynchronously pulls the engagement snapshot for each search
// result so list descriptions render accurately. Failures leave the cached
// copy in place; the backend is the authority, not a requirement.
func (b *statefulBubble) hydrateStats(items []*listItem) {
	go func() {
		for _, li := range items {
			item, ok := li.internal.(*content.Item)
			if !ok {
				continue
			}

			if cached, ok := b.statsCache.Get(item.ID).Get(); ok {
				li.stats = &cached
			}

			s, err := b.client.Stats(item.ID, item.Kind)
			if err != nil || s == nil {
				continue
			}

			_ = b.statsCache.Set(item.ID, *s)
			li.stats = s
		}
	}()
}

// keyFor derives the stable identity used by the playback store and session
// manager for one rendered item.
func keyFor(item *content.Item) mediakey.Key {
	return mediakey.Derive("tui", item.ID, item.FileURL, int(item.Index))
}

type playStartedMsg struct {
	item *content.Item

	// set when an account history mutation failed and was queued for retry
	syncQueued bool
}

// playItem resolves a playable stream for the item and toggles playback through
// the session manager. Repeated invocations on the same item alternate between
// pause and resume; switching items pauses whatever was playing first.
func (b *statefulBubble) playItem(item *content.Item) tea.Cmd {
	return func() tea.Msg {
		if !item.Kind.Playable() {
			return fmt.Errorf("%s content cannot be played, use open url instead", item.Kind)
		}

		title := item.Title
		b.progressStatus = fmt.Sprintf("Launching %s", style.Fg(color.Purple)(title))

		uri := item.FileURL

		if item.Source != nil {
			streams, err := item.Source.StreamsOf(item)
			if err == nil && len(streams) > 0 {
				uri = streams[0].URL
				if streams[0].Quality != "" {
					log.Infof("Selected stream: %s (%s)", uri, streams[0].Quality)
				} else {
					log.Infof("Selected stream: %s", uri)
				}
			} else if err != nil {
				log.Warnf("StreamsOf failed: %v, falling back to file URL", err)
			}
		}

		k := keyFor(item)
		wasPlaying := false
		if cur, ok := b.playbackStore.Playing().Get(); ok && cur == k {
			wasPlaying = true
		}

		if err := b.sessions.Play(k, uri, title, item.Kind); err != nil {
			log.Errorf("failed to play %s: %v", title, err)
			b.errorChannel <- fmt.Errorf("playback failed: %w", err)
			return nil
		}

		// First transition to playing for this key records the view.
		if !wasPlaying {
			if viper.GetBool(key.HistorySaveOnView) {
				if err := viewed.Save(item, 0); err != nil {
					log.Warnf("failed to save history entry: %v", err)
				}
			}
			if viper.GetBool(key.AccountMarkViewedOnPlay) {
				b.coordinator.View(item.ID, item.Kind)

				if err := integration.Jevah.MarkViewed(item); err != nil {
					if err.Error() == "sync_queued" {
						return playStartedMsg{item: item, syncQueued: true}
					}
					log.Warnf("account history sync failed: %v", err)
				}
			}
		}

		return playStartedMsg{item: item}
	}
}

type statsChangedMsg struct {
	contentID string
}

// toggleLike flips the like state optimistically and reconciles with the backend.
func (b *statefulBubble) toggleLike(item *content.Item) tea.Cmd {
	return func() tea.Msg {
		if err := b.coordinator.ToggleLike(item.ID, item.Kind); err != nil {
			log.Warnf("like toggle rolled back for %s: %v", item.ID, err)
		}
		return statsChangedMsg{contentID: item.ID}
	}
}

// toggleSave flips the save state optimistically and reconciles with the backend.
func (b *statefulBubble) toggleSave(item *content.Item) tea.Cmd {
	return func() tea.Msg {
		if err := b.coordinator.ToggleSave(item.ID, item.Kind); err != nil {
			log.Warnf("save toggle rolled back for %s: %v", item.ID, err)
		}
		return statsChangedMsg{contentID: item.ID}
	}
}

// shareItem bumps the share counter optimistically and reconciles with the backend.
func (b *statefulBubble) shareItem(item *content.Item) tea.Cmd {
	return func() tea.Msg {
		if err := b.coordinator.Share(item.ID, item.Kind); err != nil {
			log.Warnf("share rolled back for %s: %v", item.ID, err)
		}
		return statsChangedMsg{contentID: item.ID}
	}
}

// waitForRealtime blocks on the next stat-change hint from the push channel.
func (b *statefulBubble) waitForRealtime() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-b.realtimeEvents
		if !ok {
			return nil
		}
		return ev
	}
}

// refreshStats re-fetches the authoritative counters for a hinted content id.
func (b *statefulBubble) refreshStats(ev realtime.Event) tea.Cmd {
	return func() tea.Msg {
		b.coordinator.Refresh(ev.ContentID, ev.Kind, func() (*stats.ContentStats, error) {
			return b.client.Stats(ev.ContentID, ev.Kind)
		})
		return statsChangedMsg{contentID: ev.ContentID}
	}
}

// playTickMsg drives the playback screen's progress refresh.
type playTickMsg struct{}

// syncViewportLayouts republishes the rendered geometry of every visible search
// result into the viewport registry. The registry is what the autoplay resolver
// reads; it never inspects the list component directly.
func (b *statefulBubble) syncViewportLayouts() {
	if b.viewports == nil {
		return
	}

	b.viewports.Clear()

	itemHeight := float64(2 + viper.GetInt(key.TUIItemSpacing))
	for i, li := range b.itemsC.Items() {
		item, ok := li.(*listItem).internal.(*content.Item)
		if !ok {
			continue
		}
		b.viewports.Put(viewport.Layout{
			Key:    keyFor(item),
			Y:      float64(i) * itemHeight,
			Height: itemHeight,
			Kind:   item.Kind,
			URI:    item.FileURL,
		})
	}
}

// autoplayCandidate resolves which item currently dominates the visible window.
// The resolution always runs so the selection logic stays exercised; acting on
// it is gated behind the autoplay setting, which defaults to off.
func (b *statefulBubble) autoplayCandidate() (*content.Item, bool) {
	itemHeight := float64(2 + viper.GetInt(key.TUIItemSpacing))
	scrollTop := float64(b.itemsC.Paginator.Page*b.itemsC.Paginator.PerPage) * itemHeight

	layout, ok := b.viewports.Resolve(scrollTop, float64(b.height)).Get()
	if !ok {
		return nil, false
	}

	for _, li := range b.itemsC.Items() {
		item, isItem := li.(*listItem).internal.(*content.Item)
		if isItem && keyFor(item) == layout.Key {
			return item, viper.GetBool(key.PlaybackAutoplay)
		}
	}
	return nil, false
}
