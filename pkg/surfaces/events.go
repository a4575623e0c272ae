// Package surfaces keeps the explorer, tab and title render surfaces
// consistent with the assignment map as the host reports layout churn,
// renames, deletes and theme switches.
package surfaces

import "sync"

// EventKind identifies a host application event.
type EventKind string

const (
	// LayoutChange fires when the host re-renders its layout.
	LayoutChange EventKind = "layout-change"
	// ActiveLeafChange fires when the focused document changes.
	ActiveLeafChange EventKind = "active-leaf-change"
	// Rename fires when a vault file or folder is moved.
	Rename EventKind = "rename"
	// Delete fires when a vault file or folder is removed.
	Delete EventKind = "delete"
	// ThemeChange fires when the host switches between light and dark.
	ThemeChange EventKind = "theme-change"
)

// Event carries the payload for one host event.
type Event struct {
	Kind EventKind
	// Path is the affected vault path (rename target, deleted path, or
	// active document).
	Path string
	// OldPath is the pre-rename path for Rename events.
	OldPath string
	// Dark reports the new theme for ThemeChange events.
	Dark bool
}

// Bus is a minimal observer registry. Subscribing returns an unsubscribe
// handle; handles are gathered at enable() and released at disable().
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[EventKind]map[int]func(Event)
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind]map[int]func(Event))}
}

// Subscribe registers a handler for an event kind and returns its
// unsubscribe function. Unsubscribing twice is safe.
func (b *Bus) Subscribe(kind EventKind, fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[kind] == nil {
		b.handlers[kind] = make(map[int]func(Event))
	}
	id := b.nextID
	b.nextID++
	b.handlers[kind][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[kind], id)
	}
}

// Emit delivers an event to every handler subscribed to its kind.
func (b *Bus) Emit(e Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.handlers[e.Kind]))
	for _, fn := range b.handlers[e.Kind] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
