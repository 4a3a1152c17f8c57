package config

import "time"

// Default configuration constants
const (
	defaultZoomPercent  = 100
	defaultFontSize     = 16 // CSS pixels
	defaultMinFontSize  = 8
	defaultFetchTimeout = 30 * time.Second
	defaultMaxItems     = 20 // history listing
)

// defaultZoomLevels mirrors the usual browser zoom ladder.
func defaultZoomLevels() []int {
	return []int{25, 33, 50, 67, 75, 90, 100, 110, 125, 150, 175, 200, 250, 300, 400, 500}
}

// DefaultConfig returns the default configuration values for skiff.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Backend:      BackendWebKit,
			Headless:     true,
			FetchTimeout: defaultFetchTimeout,
		},
		Zoom: ZoomConfig{
			Levels:   defaultZoomLevels(),
			Default:  defaultZoomPercent,
			TextOnly: false,
		},
		Search: SearchConfig{
			IgnoreCase:  "smart",
			Incremental: true,
			WrapAround:  true,
		},
		URL: URLConfig{
			SearchEngines: DefaultSearchEngines(),
			AutoSearch:    "naive",
			OpenBaseURL:   false,
		},
		Content: ContentConfig{
			JavaScript: true,
			Images:     true,
			Mute:       false,
		},
		Fonts: FontsConfig{
			DefaultSize: defaultFontSize,
			MinimumSize: defaultMinFontSize,
		},
		Tabs: TabsConfig{
			FaviconsShow: "always",
			PinnedFrozen: true,
		},
		Inspector: InspectorConfig{
			DefaultPosition: "right",
		},
		History: HistoryConfig{
			MaxItems: defaultMaxItems,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultSearchEngines returns the built-in search engine templates.
// The "{}" placeholder receives the percent-encoded query.
func DefaultSearchEngines() map[string]string {
	return map[string]string{
		"DEFAULT": "https://duckduckgo.com/?q={}",
		"g":       "https://www.google.com/search?q={}",
		"gh":      "https://github.com/search?q={}",
		"w":       "https://en.wikipedia.org/wiki/Special:Search?search={}",
		"yt":      "https://www.youtube.com/results?search_query={}",
		"go":      "https://pkg.go.dev/search?q={}",
		"mdn":     "https://developer.mozilla.org/en-US/search?q={}",
	}
}
