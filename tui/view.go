// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/jevah-cli/jevah/color"
	"github.com/jevah-cli/jevah/icon"
	"github.com/jevah-cli/jevah/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case historyState:
		output = b.viewHistory()
	case sourcesState:
		output = b.viewSources()
	case searchState:
		output = b.viewSearch()
	case itemsState:
		output = b.viewItems()
	case playState:
		output = b.viewPlay()
	case postPlayState:
		output = b.viewPostPlay()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewSources() string {
	return listExtraPaddingStyle.Render(b.sourcesC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Media"),
		"",
		b.inputC.View(),
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewItems() string {
	return listExtraPaddingStyle.Render(b.itemsC.View())
}

func (b *statefulBubble) viewPostPlay() string {
	return listExtraPaddingStyle.Render(b.postPlayC.View())
}

func (b *statefulBubble) viewPlay() string {
	var (
		itemTitle string
		statusRow string
		barRow    string
	)

	item := b.currentPlayingItem
	if item != nil {
		itemTitle = item.Title

		entry := b.playbackStore.Entry(keyFor(item))

		stateIcon := icon.Get(icon.Pause)
		if entry.IsPlaying {
			stateIcon = icon.Get(icon.Play)
		}

		var flags []string
		flags = append(flags, stateIcon)
		if entry.IsMuted {
			flags = append(flags, icon.Get(icon.Mute))
		}
		if s, ok := b.statsCache.Get(item.ID).Get(); ok {
			flags = append(flags, fmt.Sprintf("%s %d", icon.Get(icon.Like), s.Likes))
			if s.User.Liked {
				flags = append(flags, style.Fg(style.Red)("liked"))
			}
			if s.User.Saved {
				flags = append(flags, style.Fg(style.Yellow)("saved"))
			}
		}
		statusRow = strings.Join(flags, "  ")

		barRow = b.progressC.ViewAs(entry.ProgressPercent / 100)
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Now Playing"),
			"",
			style.Truncate(b.width)(fmt.Sprintf(icon.Get(icon.Progress)+" %s", style.Fg(color.Purple)(itemTitle))),
			"",
			style.Truncate(b.width)(statusRow),
			"",
			barRow,
		},
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
