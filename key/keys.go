// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 22

// Lookup Source Identifiers - these keys manage the registration and selection of content lookup sources.
const (
	DefaultSources = "sources.default"
)

// Backend API - these keys govern communication with the Jevah REST backend.
const (
	APIBaseURL = "api.url"
)

// Realtime Channel - these keys configure the optional push-style stat-change hint stream.
const (
	RealtimeEnable = "realtime.enable"
)

// Playback Coordination - these keys maintain the state and configuration for media playback.
const (
	PlaybackAutoplay             = "playback.autoplay"
	PlaybackCompletionPercentage = "playback.completion_percentage"
	Player                       = "playback.player"
)

// History Tracking - these keys configure the persistence of media consumption state.
const (
	HistorySaveOnView = "history.save_on_view"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Minimalist (Mini) Mode - these keys configure the specialized lightweight interface.
const (
	MiniSearchLimit = "mini.search_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
	TUIPlayOnEnter        = "tui.play_on_enter"
)

// Account Integration - these keys manage authentication and view reporting against the user's account.
const (
	AccountMarkViewedOnPlay = "account.mark_viewed_on_play"
)

// Background Synchronization - these keys govern deferred replay of failed interaction records.
const (
	SyncRetryFailed = "sync.retry_failed"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
