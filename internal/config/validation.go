package config

import (
	"fmt"
	"strings"
)

// validateConfig performs validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	switch config.Engine.Backend {
	case BackendWebKit, BackendChromium, BackendLite:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("engine.backend must be one of: webkit, chromium, lite (got: %s)", config.Engine.Backend))
	}

	if config.Zoom.Default <= 0 {
		validationErrors = append(validationErrors, "zoom.default must be positive")
	}
	for i, level := range config.Zoom.Levels {
		if level <= 0 {
			validationErrors = append(validationErrors, "zoom.levels entries must be positive")
			break
		}
		if i > 0 && level <= config.Zoom.Levels[i-1] {
			validationErrors = append(validationErrors, "zoom.levels must be strictly ascending")
			break
		}
	}

	switch config.Search.IgnoreCase {
	case "smart", "always", "never":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("search.ignore_case must be one of: smart, always, never (got: %s)", config.Search.IgnoreCase))
	}

	switch config.URL.AutoSearch {
	case "naive", "schemeless", "never":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("url.auto_search must be one of: naive, schemeless, never (got: %s)", config.URL.AutoSearch))
	}

	if tmpl, ok := config.URL.SearchEngines["DEFAULT"]; !ok || tmpl == "" {
		validationErrors = append(validationErrors, "url.search_engines must define a DEFAULT engine")
	} else if !strings.Contains(tmpl, "{") {
		validationErrors = append(validationErrors, "url.search_engines DEFAULT must contain a {} placeholder for the query")
	}

	if config.Fonts.DefaultSize < 1 || config.Fonts.DefaultSize > 72 {
		validationErrors = append(validationErrors, "fonts.default_size must be between 1 and 72")
	}
	if config.Fonts.MinimumSize < 0 || config.Fonts.MinimumSize > config.Fonts.DefaultSize {
		validationErrors = append(validationErrors, "fonts.minimum_size must be between 0 and fonts.default_size")
	}

	switch config.Tabs.FaviconsShow {
	case "always", "never", "pinned":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("tabs.favicons_show must be one of: always, never, pinned (got: %s)", config.Tabs.FaviconsShow))
	}

	switch config.Inspector.DefaultPosition {
	case "right", "left", "top", "bottom", "window":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("inspector.default_position must be one of: right, left, top, bottom, window (got: %s)", config.Inspector.DefaultPosition))
	}

	if config.History.MaxItems < 0 {
		validationErrors = append(validationErrors, "history.max_items must be non-negative")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}
