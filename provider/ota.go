// Package provider manages the built-in catalog and custom Lua providers.
package provider

import (
	"path/filepath"

	"github.com/jevah-cli/jevah/internal/scraper"
	"github.com/jevah-cli/jevah/where"
	tea "github.com/charmbracelet/bubbletea"
)

// RepoRawURL is the base URL the shared Lua helper scripts are fetched from.
const RepoRawURL = "https://raw.githubusercontent.com/jevah-cli/jevah/main/config/sources/"

// ScraperUpdatedMsg is dispatched to the Bubbletea event loop when OTA updates complete successfully.
type ScraperUpdatedMsg = scraper.ScraperUpdatedMsg

// sharedScripts are the non-provider helper scripts every Lua source may require.
var sharedScripts = []string{"common.lua"}

// UpdateScrapers checks the shared Lua scripts for over-the-air updates in the
// background. Each script is fetched, hashed and atomically swapped only when
// the remote content differs.
func UpdateScrapers() tea.Cmd {
	var cmds []tea.Cmd
	for _, file := range sharedScripts {
		cmds = append(cmds, scraper.UpdateScraper(RepoRawURL+file, filepath.Join(where.Sources(), file)))
	}
	return tea.Batch(cmds...)
}
