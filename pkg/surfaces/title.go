package surfaces

import (
	"github.com/iconica/core/config"
	"github.com/iconica/core/state"
)

// Title decorates the inline title of the focused document with a large
// icon. The icon doubles as the affordance for changing the assignment:
// the host adapter routes clicks on it to Click.
type Title struct {
	host    Host
	store   *state.Store
	factory *nodeFactory
	enabled bool

	// OnOpenPicker is invoked with the active path when the title icon
	// is clicked. Nil disables the affordance.
	OnOpenPicker func(path string)
}

func NewTitle(host Host, store *state.Store, factory *nodeFactory) *Title {
	return &Title{host: host, store: store, factory: factory}
}

func (t *Title) Enable() {
	t.enabled = true
	t.ApplyAll()
}

func (t *Title) Disable() {
	t.enabled = false
	removeInjected(t.host.TitleEl())
}

// ApplyAll reconciles the active document's title. Only the focused
// document carries a title icon; there is nothing to do for background
// panes.
func (t *Title) ApplyAll() {
	if !t.enabled {
		return
	}
	el := t.host.TitleEl()
	if el == nil {
		return
	}
	removeInjected(el)

	path := t.host.ActivePath()
	if path == "" {
		return
	}
	ref, ok := t.store.Icon(path)
	if !ok {
		return
	}
	node := t.factory.node(ref, config.TitleIconSize)
	if node == nil {
		return
	}
	el.Prepend(node)
}

// Refresh reconciles the title when it shows the given path.
func (t *Title) Refresh(path string) {
	if t.enabled && t.host.ActivePath() == path {
		t.ApplyAll()
	}
}

// Click reports a click on the title icon.
func (t *Title) Click() {
	if !t.enabled || t.OnOpenPicker == nil {
		return
	}
	if path := t.host.ActivePath(); path != "" {
		t.OnOpenPicker(path)
	}
}
