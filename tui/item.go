// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/icon"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/stats"
	"github.com/jevah-cli/jevah/style"
	"github.com/jevah-cli/jevah/viewed"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool

	// stats is the hydrated engagement snapshot for content items.
	// Populated asynchronously after search results arrive.
	stats *stats.ContentStats
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case *content.Item:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
	case *provider.Provider:
		return icon.Get(icon.Search)
	default:
		return ""
	}
}

func kindIcon(k content.Kind) string {
	switch k {
	case content.Video:
		return icon.Get(icon.Video)
	case content.Audio:
		return icon.Get(icon.Audio)
	case content.Ebook:
		return icon.Get(icon.Ebook)
	case content.Sermon:
		return icon.Get(icon.Sermon)
	default:
		return ""
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *content.Item:
		var sb = strings.Builder{}
		if ic := kindIcon(e.Kind); ic != "" {
			sb.WriteString(ic)
			sb.WriteString(" ")
		}
		sb.WriteString(e.Title)
		title = sb.String()
	case *viewed.SavedItem:
		title = e.Title
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the multi-line secondary metadata for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *content.Item:
		var parts []string

		if e.Uploader != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(e.Uploader))
		}

		if e.Duration > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(formatDuration(e.Duration)))
		}

		if s := t.stats; s != nil {
			if s.Views > 0 {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(fmt.Sprintf("%s %d", icon.Get(icon.Views), s.Views)))
			}

			likes := fmt.Sprintf("%s %d", icon.Get(icon.Like), s.Likes)
			if s.User.Liked {
				likes = lipgloss.NewStyle().Foreground(style.Red).Render(likes)
			} else {
				likes = lipgloss.NewStyle().Foreground(style.FaintColor).Render(likes)
			}
			parts = append(parts, likes)

			if s.User.Saved {
				parts = append(parts, lipgloss.NewStyle().Foreground(style.Yellow).Render(icon.Get(icon.Save)+" saved"))
			}
		}

		if viper.GetBool(key.TUIShowURLs) {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(e.FileURL))
		}

		description = strings.Join(parts, " • ")
	case *viewed.SavedItem:
		completionThreshold := float64(viper.GetInt(key.PlaybackCompletionPercentage))
		if completionThreshold <= 0 {
			completionThreshold = 80.0
		}
		progressStr := ""
		if e.ViewedPercentage > 0 && e.ViewedPercentage < completionThreshold {
			progressStr = lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf(" (%.0f%%)", e.ViewedPercentage))
		} else if e.ViewedPercentage >= completionThreshold {
			progressStr = lipgloss.NewStyle().Foreground(style.Green).Render(" (Viewed)")
		}
		description = fmt.Sprintf("%s%s %s", kindIcon(e.Kind), progressStr, style.Faint(e.SourceID))
	case *provider.Provider:
		sb := strings.Builder{}
		if e.IsCustom {
			sb.WriteString("Lua Extension")
		} else {
			sb.WriteString("Built-in Provider")
		}

		if e.UsesHeadless {
			sb.WriteString(" (Requires Headless Chrome)")
		}

		description = sb.String()
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *content.Item:
		if e.Uploader != "" {
			return e.Title + " " + e.Uploader
		}
		return e.Title
	case *viewed.SavedItem:
		return e.Title
	case *provider.Provider:
		return e.Name
	case string:
		return e
	default:
		return ""
	}
}

func formatDuration(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
