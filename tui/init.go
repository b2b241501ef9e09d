// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"

	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/realtime"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Init initializes the terminal user interface, triggering initial data loads and background subscriptions.
func (b *statefulBubble) Init() tea.Cmd {
	var cmds []tea.Cmd

	// Optional push channel for stat-change hints. Purely additive: when it
	// cannot connect the UI keeps updating stats from direct API responses.
	if viper.GetBool(key.RealtimeEnable) {
		ctx, cancel := context.WithCancel(context.Background())
		b.realtimeCancel = cancel
		b.realtimeEvents = realtime.NewSubscriber().Subscribe(ctx)
		cmds = append(cmds, b.waitForRealtime())
	}

	// Auto-load sources if DefaultSources config is set
	if names := viper.GetStringSlice(key.DefaultSources); b.state != historyState && len(names) != 0 {
		var providers []*provider.Provider

		for _, name := range names {
			p, ok := provider.Get(name)
			if !ok {
				b.raiseError(fmt.Errorf("provider %s not found", name))
				return nil
			}

			providers = append(providers, p)
		}

		// If exactly one source is loaded, inject it into the results list title
		if len(providers) == 1 {
			b.itemsC.Title = fmt.Sprintf("Search Results - %s", providers[0].Name)
		}

		b.setState(loadingState)
		cmds = append(cmds, b.startLoading(), b.loadSources(providers), b.waitForSourcesLoaded(), provider.UpdateScrapers())
		return tea.Batch(cmds...)
	}

	cmds = append(cmds, textinput.Blink, b.loadProviders(), provider.UpdateScrapers())
	return tea.Batch(cmds...)
}
