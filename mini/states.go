// Package mini implements a lightweight, minimalist interface for media search and playback.
package mini

import (
	"fmt"
	"strings"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/mediakey"
	"github.com/jevah-cli/jevah/open"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/style"
	"github.com/jevah-cli/jevah/viewed"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type state int

const (
	mediaSearchState state = iota + 1
	itemSelectState
	sourceSelectState
	playbackState
	historySelectState
	quitState
)

const quitOption = "Quit"

func (m *mini) handleSourceSelectState() error {
	var err error

	if names := viper.GetStringSlice(key.DefaultSources); len(names) != 0 {
		p, ok := provider.Get(names[0])
		if !ok {
			return fmt.Errorf("unknown source %q", names[0])
		}

		m.selectedSource, err = p.CreateSource()
		if err != nil {
			return err
		}
	} else {
		var providers []*provider.Provider
		providers = append(providers, provider.Builtins()...)
		providers = append(providers, provider.Customs()...)

		slices.SortFunc(providers, func(a, b *provider.Provider) int {
			return strings.Compare(a.String(), b.String())
		})

		title("Select Source")
		choice, err := menu(lo.Map(providers, func(p *provider.Provider, _ int) string {
			return p.Name
		}))
		if err != nil {
			return err
		}

		if choice == quitOption {
			m.newState(quitState)
			return nil
		}

		p, _ := lo.Find(providers, func(p *provider.Provider) bool {
			return p.Name == choice
		})

		erase := progress("Initializing Source..")
		m.selectedSource, err = p.CreateSource()
		if err != nil {
			return err
		}
		erase()
	}

	m.newState(mediaSearchState)
	return nil
}

func (m *mini) handleMediaSearchState() error {
	var searchLoop func() error
	title("Search Media")

	searchLoop = func() error {
		query, err := getInput("Search", func(s string) bool {
			return s != ""
		})

		if err != nil {
			return err
		}

		erase := progress("Searching Query..")
		m.cachedItems[query], err = m.selectedSource.Search(query)
		if err != nil {
			return err
		}
		max := lo.Min([]int{len(m.cachedItems[query]), viper.GetInt(key.MiniSearchLimit)})
		m.cachedItems[query] = m.cachedItems[query][:max]
		erase()

		if len(m.cachedItems[query]) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		m.query = query
		m.newState(itemSelectState)
		return err
	}

	return searchLoop()
}

func (m *mini) handleItemSelectState() error {
	title("Query Results >>")

	items := m.cachedItems[m.query]
	choice, err := menu(lo.Map(items, func(it *content.Item, _ int) string {
		return style.Truncate(truncateAt)(it.String())
	}))
	if err != nil {
		return err
	}

	if choice == quitOption {
		m.newState(quitState)
		return nil
	}

	selected, _ := lo.Find(items, func(it *content.Item) bool {
		return style.Truncate(truncateAt)(it.String()) == choice
	})

	// Ebooks carry no stream; hand them to the system opener and stay here.
	if !selected.Kind.Playable() {
		if err := open.Start(selected.FileURL); err != nil {
			return err
		}
		return nil
	}

	m.selectedItem = selected
	m.newState(playbackState)
	return err
}

// keyFor derives the playback identity for an item rendered by this interface.
func keyFor(item *content.Item) mediakey.Key {
	return mediakey.Derive("mini", item.ID, item.FileURL, int(item.Index))
}

// startPlayback resolves a playable stream and routes it through the shared
// session manager, so exclusivity and resume positions behave exactly like
// the full TUI.
func (m *mini) startPlayback(item *content.Item) error {
	uri := item.FileURL

	if item.Source != nil {
		erase := progress("Resolving Stream..")
		streams, err := item.Source.StreamsOf(item)
		erase()
		if err == nil && len(streams) > 0 {
			uri = streams[0].URL
		} else if err != nil {
			log.Warnf("stream resolution failed: %v, falling back to file URL", err)
		}
	}

	k := keyFor(item)
	wasPlaying := false
	if cur, ok := m.store.Playing().Get(); ok && cur == k {
		wasPlaying = true
	}

	if err := m.sessions.Play(k, uri, item.Title, item.Kind); err != nil {
		return err
	}

	if !wasPlaying {
		if viper.GetBool(key.HistorySaveOnView) {
			_ = viewed.Save(item, 0)
		}
		if viper.GetBool(key.AccountMarkViewedOnPlay) {
			m.coordinator.View(item.ID, item.Kind)
		}
	}

	return nil
}

func (m *mini) handlePlaybackState() error {
	item := m.selectedItem
	if item == nil {
		m.previousState()
		return nil
	}

	if err := m.startPlayback(item); err != nil {
		fail(err.Error())
		m.previousState()
		return nil
	}

	items := m.cachedItems[m.query]
	idx := slices.Index(items, item)

	for {
		entry := m.store.Entry(keyFor(item))

		stateLabel := "Paused"
		toggleLabel := "Resume"
		if entry.IsPlaying {
			stateLabel = "Playing"
			toggleLabel = "Pause"
		}

		title(fmt.Sprintf("%s %s (%.0f%%)", stateLabel, item.Title, entry.ProgressPercent))

		options := []string{toggleLabel, "Mute", "Like", "Save", "Share"}
		if idx >= 0 && idx+1 < len(items) {
			options = append(options, "Next")
		}
		if idx > 0 {
			options = append(options, "Previous")
		}
		options = append(options, "Replay", "Back", "New Search")

		choice, err := menu(options)
		if err != nil {
			return err
		}

		switch choice {
		case "Pause", "Resume":
			if err := m.sessions.Play(keyFor(item), item.FileURL, item.Title, item.Kind); err != nil {
				fail(err.Error())
			}
		case "Mute":
			k := keyFor(item)
			muted := m.store.Entry(k).IsMuted
			if err := m.sessions.SetMuted(k, !muted); err == nil {
				m.store.ToggleMute(k)
			}
		case "Like":
			if err := m.coordinator.ToggleLike(item.ID, item.Kind); err != nil {
				fail("Like failed - rolled back")
			}
		case "Save":
			if err := m.coordinator.ToggleSave(item.ID, item.Kind); err != nil {
				fail("Save failed - rolled back")
			}
		case "Share":
			if err := m.coordinator.Share(item.ID, item.Kind); err != nil {
				fail("Share failed - rolled back")
			}
		case "Next":
			m.saveProgress(item)
			m.selectedItem = items[idx+1]
			return m.handlePlaybackState()
		case "Previous":
			m.saveProgress(item)
			m.selectedItem = items[idx-1]
			return m.handlePlaybackState()
		case "Replay":
			_ = m.sessions.Dispose(keyFor(item))
			return m.handlePlaybackState()
		case "Back":
			m.saveProgress(item)
			m.sessions.PauseAll()
			m.previousState()
			return nil
		case "New Search":
			m.saveProgress(item)
			m.sessions.PauseAll()
			m.newState(mediaSearchState)
			return nil
		case quitOption:
			m.saveProgress(item)
			m.newState(quitState)
			return nil
		}
	}
}

func (m *mini) saveProgress(item *content.Item) {
	if !viper.GetBool(key.HistorySaveOnView) {
		return
	}
	entry := m.store.Entry(keyFor(item))
	_ = viewed.Save(item, entry.ProgressPercent)
}

func (m *mini) handleHistorySelectState() error {
	saved, err := viewed.Get()
	if err != nil {
		return err
	}

	entries := lo.Values(saved)

	title("History Results >>")
	choice, err := menu(lo.Map(entries, func(e *viewed.SavedItem, _ int) string {
		return e.String()
	}))
	if err != nil {
		return err
	}

	if choice == quitOption {
		m.newState(quitState)
		return nil
	}

	selected, _ := lo.Find(entries, func(e *viewed.SavedItem) bool {
		return e.String() == choice
	})

	defaultProviders := provider.Builtins()
	customProviders := provider.Customs()

	var providers = make([]*provider.Provider, 0)
	providers = append(providers, defaultProviders...)
	providers = append(providers, customProviders...)

	p, ok := lo.Find(providers, func(p *provider.Provider) bool {
		return p.ID == selected.SourceID
	})
	if !ok {
		return fmt.Errorf("provider %s not found (was used for %s)", selected.SourceID, selected.Title)
	}

	erase := progress("Initializing Source..")
	s, err := p.CreateSource()
	if err != nil {
		return err
	}
	m.selectedSource = s
	erase()

	item := &content.Item{
		ID:      selected.ContentID,
		Title:   selected.Title,
		Kind:    selected.Kind,
		FileURL: selected.FileURL,
		Source:  s,
	}

	if !item.Kind.Playable() {
		return open.Start(item.FileURL)
	}

	m.query = "history"
	m.cachedItems[m.query] = []*content.Item{item}
	m.selectedItem = item

	m.newState(playbackState)
	return nil
}
