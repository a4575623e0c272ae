package surfaces

import (
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/remote"
)

// Attribute conventions a host adapter must follow on the nodes it hands
// out. Renderers locate rows and default decorations by these attributes
// rather than by host-specific structure.
const (
	// PathAttr carries the workspace-relative path on an explorer row.
	PathAttr = "data-path"
	// TypeAttr distinguishes explorer rows: "file" or "folder".
	TypeAttr = "data-type"
	// RoleAttr marks well-known child elements inside a row.
	RoleAttr = "data-role"

	RoleCollapse  = "collapse-indicator"
	RoleTreeIcon  = "tree-icon"
	RoleTitleText = "inline-title"

	// HiddenAttr hides a host-provided default decoration instead of
	// removing it, so disabling the renderer can restore it.
	HiddenAttr = "data-icon-hidden"
)

// Leaf is one open document pane: its path and the header element that
// holds the pane's icon.
type Leaf struct {
	Path   string
	IconEl *dom.Node
}

// Host is the adapter surface a concrete editor integration implements.
// All methods are called from the goroutine driving the engine; returned
// nodes stay owned by the host and are mutated in place.
type Host interface {
	// ExplorerItem returns the explorer row for a path, or nil when the
	// row is not currently rendered.
	ExplorerItem(path string) *dom.Node
	// ExplorerItems returns every currently rendered explorer row.
	ExplorerItems() []*dom.Node
	// OpenLeaves lists the open panes in display order.
	OpenLeaves() []Leaf
	// ActivePath returns the path of the focused document, or "".
	ActivePath() string
	// TitleEl returns the inline-title element of the focused document,
	// or nil when no document is focused.
	TitleEl() *dom.Node
}

// GlyphSource supplies remote glyphs to renderers. Cached must not
// block; Fetch resolves the glyph in the background and invokes done
// once, from any goroutine, whether or not the fetch succeeded.
type GlyphSource interface {
	Cached(id string) (remote.Glyph, bool)
	Fetch(id string, done func())
}
