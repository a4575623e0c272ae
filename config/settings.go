// Package config defines the plugin settings persisted with the icon map
// and the runtime configuration file for the iconica CLI.
package config

import (
	"regexp"
	"strings"
)

// Icon sizes per surface (px).
const (
	ExplorerIconSize = 17
	TabIconSize      = 16
	TitleIconSize    = 48
)

// RecentsCapacity bounds each recents list.
const RecentsCapacity = 30

// DefaultCacheSize bounds the remote glyph cache.
const DefaultCacheSize = 2000

// Settings holds the user-facing plugin settings. They are persisted as
// part of the plugin data document alongside the icon map.
type Settings struct {
	// EnableInlineIcons turns on :shortcode: resolution in note content.
	EnableInlineIcons bool `json:"enableInlineIcons"`
	// InlineIconSize is the pixel size of inline icons.
	InlineIconSize int `json:"inlineIconSize"`
	// InlineIconPrefix is the shortcode prefix for library icons,
	// e.g. "ci" for :ci-NAME:. Alphanumeric and hyphen only.
	InlineIconPrefix string `json:"inlineIconPrefix"`

	// Per-surface toggles.
	ShowInExplorer bool `json:"showInExplorer"`
	ShowInTabs     bool `json:"showInTabs"`
	ShowInTitle    bool `json:"showInTitle"`

	// IconSetPrefixes is a comma-separated list of preferred remote icon
	// sets, tried for random picks and suggested first in search.
	IconSetPrefixes string `json:"iconSetPrefixes"`

	// MaxCacheSize caps the remote glyph cache (0 means the default).
	MaxCacheSize int `json:"maxCacheSize"`

	// RecentEmojis and RecentIcons are most-recent-first, deduplicated,
	// capped at RecentsCapacity.
	RecentEmojis []string `json:"recentEmojis"`
	RecentIcons  []string `json:"recentIcons"`
}

// DefaultSettings returns the settings applied on first run and merged
// under any persisted values.
func DefaultSettings() Settings {
	return Settings{
		EnableInlineIcons: false,
		InlineIconSize:    20,
		InlineIconPrefix:  "ci",
		ShowInExplorer:    true,
		ShowInTabs:        true,
		ShowInTitle:       true,
		IconSetPrefixes:   "lucide,mdi,ph,tabler",
		MaxCacheSize:      DefaultCacheSize,
	}
}

var prefixStripRe = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// SanitizePrefix reduces a shortcode prefix to alphanumeric characters and
// hyphens. An empty result falls back to the default prefix.
func SanitizePrefix(s string) string {
	s = prefixStripRe.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s == "" {
		return DefaultSettings().InlineIconPrefix
	}
	return s
}

// PreferredPrefixes parses the comma-separated icon set list, trimming
// whitespace and dropping empty entries.
func (s Settings) PreferredPrefixes() []string {
	var out []string
	for _, p := range strings.Split(s.IconSetPrefixes, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CacheSize returns the configured glyph cache capacity.
func (s Settings) CacheSize() int {
	if s.MaxCacheSize > 0 {
		return s.MaxCacheSize
	}
	return DefaultCacheSize
}
