package surfaces

import (
	"github.com/iconica/core/config"
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/state"
)

// Explorer decorates file-tree rows. Folder rows get the icon inserted
// after the collapse indicator, which stays visible so the folder can
// still be toggled. File rows get the icon prepended and the host's
// default tree icon hidden, not removed, so disabling restores it.
type Explorer struct {
	host    Host
	store   *state.Store
	factory *nodeFactory
	enabled bool
}

func NewExplorer(host Host, store *state.Store, factory *nodeFactory) *Explorer {
	return &Explorer{host: host, store: store, factory: factory}
}

// Enable turns the renderer on and decorates every visible row.
func (e *Explorer) Enable() {
	e.enabled = true
	e.ApplyAll()
}

// Disable removes every injected icon and restores default decorations.
func (e *Explorer) Disable() {
	e.enabled = false
	for _, row := range e.host.ExplorerItems() {
		e.clearRow(row)
	}
}

// ApplyAll reconciles every visible row against the assignment map. It
// is idempotent: re-running it on an already decorated tree leaves a
// single icon per assigned row.
func (e *Explorer) ApplyAll() {
	if !e.enabled {
		return
	}
	for _, row := range e.host.ExplorerItems() {
		e.applyRow(row)
	}
}

// Refresh reconciles the single row for a path, if it is rendered.
func (e *Explorer) Refresh(path string) {
	if !e.enabled {
		return
	}
	if row := e.host.ExplorerItem(path); row != nil {
		e.applyRow(row)
	}
}

func (e *Explorer) applyRow(row *dom.Node) {
	if row == nil {
		return
	}
	path := row.Attr(PathAttr)
	if path == "" {
		return
	}
	ref, ok := e.store.Icon(path)
	if !ok {
		e.clearRow(row)
		return
	}

	removeInjected(row)
	node := e.factory.node(ref, config.ExplorerIconSize)
	if node == nil {
		e.restoreDefault(row)
		return
	}

	if row.Attr(TypeAttr) == "folder" {
		if collapse := childByRole(row, RoleCollapse); collapse != nil {
			row.InsertAfter(node, collapse)
		} else {
			row.Prepend(node)
		}
		return
	}

	row.Prepend(node)
	if def := childByRole(row, RoleTreeIcon); def != nil {
		def.SetAttr(HiddenAttr, "true")
	}
}

func (e *Explorer) clearRow(row *dom.Node) {
	if row == nil {
		return
	}
	removeInjected(row)
	e.restoreDefault(row)
}

func (e *Explorer) restoreDefault(row *dom.Node) {
	if def := childByRole(row, RoleTreeIcon); def != nil {
		def.RemoveAttr(HiddenAttr)
	}
}

func childByRole(row *dom.Node, role string) *dom.Node {
	for _, child := range row.Children {
		if !child.IsText() && child.Attr(RoleAttr) == role {
			return child
		}
	}
	return nil
}
