package surfaces

import (
	"github.com/iconica/core/config"
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/state"
)

// Tabs decorates the header icon of each open pane. The host's default
// tab glyph is hidden while an assignment exists and restored when the
// assignment is removed or the renderer is disabled.
type Tabs struct {
	host    Host
	store   *state.Store
	factory *nodeFactory
	enabled bool
}

func NewTabs(host Host, store *state.Store, factory *nodeFactory) *Tabs {
	return &Tabs{host: host, store: store, factory: factory}
}

func (t *Tabs) Enable() {
	t.enabled = true
	t.ApplyAll()
}

func (t *Tabs) Disable() {
	t.enabled = false
	for _, leaf := range t.host.OpenLeaves() {
		removeInjected(leaf.IconEl)
		restoreDefaults(leaf.IconEl)
	}
}

// ApplyAll reconciles every open pane. Idempotent.
func (t *Tabs) ApplyAll() {
	if !t.enabled {
		return
	}
	for _, leaf := range t.host.OpenLeaves() {
		t.applyLeaf(leaf)
	}
}

// Refresh reconciles the panes showing the given path.
func (t *Tabs) Refresh(path string) {
	if !t.enabled {
		return
	}
	for _, leaf := range t.host.OpenLeaves() {
		if leaf.Path == path {
			t.applyLeaf(leaf)
		}
	}
}

func (t *Tabs) applyLeaf(leaf Leaf) {
	if leaf.IconEl == nil {
		return
	}
	removeInjected(leaf.IconEl)

	ref, ok := t.store.Icon(leaf.Path)
	if !ok {
		restoreDefaults(leaf.IconEl)
		return
	}
	node := t.factory.node(ref, config.TabIconSize)
	if node == nil {
		restoreDefaults(leaf.IconEl)
		return
	}
	hideDefaults(leaf.IconEl)
	leaf.IconEl.Prepend(node)
}

// hideDefaults hides the host's own children of an icon container.
func hideDefaults(container *dom.Node) {
	for _, child := range container.Children {
		if !child.IsText() && !ownMarker(child) {
			child.SetAttr(HiddenAttr, "true")
		}
	}
}

func restoreDefaults(container *dom.Node) {
	if container == nil {
		return
	}
	for _, child := range container.Children {
		if !child.IsText() {
			child.RemoveAttr(HiddenAttr)
		}
	}
}
