// Package icon defines the icon reference value types shared by every
// surface and store in the plugin core.
package icon

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies where an icon reference resolves.
type Kind string

const (
	// Emoji references hold the emoji character itself.
	Emoji Kind = "emoji"
	// Glyph references hold a composite "prefix:name" id resolved
	// against the remote icon-set service.
	Glyph Kind = "glyph"
	// Asset references hold a library asset id resolved against the
	// workspace icon library.
	Asset Kind = "asset"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Ref is a single icon assignment value.
type Ref struct {
	Kind  Kind   `json:"type"`
	Value string `json:"value"`
	// Color optionally overrides the render color for glyph references.
	Color string `json:"color,omitempty"`
}

// Validate reports whether the reference is well-formed: a known kind,
// a non-empty value, and (when present) a valid hex color.
func (r Ref) Validate() error {
	switch r.Kind {
	case Emoji, Glyph, Asset:
	default:
		return fmt.Errorf("unknown icon kind %q", r.Kind)
	}
	if r.Value == "" {
		return fmt.Errorf("icon reference has empty value")
	}
	if r.Kind == Glyph {
		if _, _, err := SplitGlyphID(r.Value); err != nil {
			return err
		}
	}
	if r.Color != "" && !hexColorRe.MatchString(r.Color) {
		return fmt.Errorf("invalid hex color %q", r.Color)
	}
	return nil
}

// SplitGlyphID splits a composite "prefix:name" glyph id.
func SplitGlyphID(id string) (prefix, name string, err error) {
	prefix, name, ok := strings.Cut(id, ":")
	if !ok || prefix == "" || name == "" {
		return "", "", fmt.Errorf("malformed glyph id %q", id)
	}
	return prefix, name, nil
}

// GlyphID joins a set prefix and glyph name into a composite id.
func GlyphID(prefix, name string) string {
	return prefix + ":" + name
}
