package surfaces

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iconica/core/config"
	"github.com/iconica/core/logging"
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/remote"
	"github.com/iconica/core/state"
)

// glyphResolver adapts the remote client to the GlyphSource renderers
// consume. Fetch resolves in the background; the done callback runs on
// the fetch goroutine, so renderers must route it through a scheduler
// rather than touching the tree directly.
type glyphResolver struct {
	client *remote.Client
}

func (r *glyphResolver) Cached(id string) (remote.Glyph, bool) {
	return r.client.Cached(id)
}

func (r *glyphResolver) Fetch(id string, done func()) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		r.client.FetchOne(ctx, id)
		done()
	}()
}

// Engine ties the assignment store, the icon library and the remote
// client to the three surface renderers, and reconciles them on host
// events. All methods are driven from the host's main goroutine; only
// the debounced observer crosses goroutines.
type Engine struct {
	store    *state.Store
	library  *library.Store
	host     Host
	bus      *Bus
	observer *Observer
	log      *logrus.Entry

	Explorer *Explorer
	Tabs     *Tabs
	Title    *Title

	dark   bool
	unsubs []func()
}

// NewEngine wires the renderers together. Call Start to subscribe to
// host events and perform the initial apply.
func NewEngine(store *state.Store, lib *library.Store, client *remote.Client, host Host, bus *Bus, debounce time.Duration) *Engine {
	e := &Engine{
		store:   store,
		library: lib,
		host:    host,
		bus:     bus,
		log:     logging.NewLogger("surfaces"),
	}
	e.observer = NewObserver(debounce, e.ApplyAll)

	factory := &nodeFactory{
		library: lib,
		glyphs:  &glyphResolver{client: client},
		theme:   e.theme,
		refresh: e.observer.Schedule,
	}
	e.Explorer = NewExplorer(host, store, factory)
	e.Tabs = NewTabs(host, store, factory)
	e.Title = NewTitle(host, store, factory)
	return e
}

func (e *Engine) theme() library.Theme {
	if e.dark {
		return library.Dark
	}
	return library.Light
}

// Start applies the persisted surface toggles, decorates the current
// tree and subscribes to host events.
func (e *Engine) Start() {
	e.applyToggles(e.store.Settings())

	e.unsubs = append(e.unsubs,
		e.bus.Subscribe(LayoutChange, func(Event) { e.observer.Schedule() }),
		e.bus.Subscribe(ActiveLeafChange, func(Event) {
			e.Tabs.ApplyAll()
			e.Title.ApplyAll()
		}),
		e.bus.Subscribe(Rename, func(ev Event) { e.handleRename(ev.OldPath, ev.Path) }),
		e.bus.Subscribe(Delete, func(ev Event) { e.handleDelete(ev.Path) }),
		e.bus.Subscribe(ThemeChange, func(ev Event) {
			e.dark = ev.Dark
			e.ApplyAll()
		}),
	)
}

// Stop unsubscribes from the bus and cancels any pending apply.
func (e *Engine) Stop() {
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
	e.observer.Stop()
}

// NodesAdded forwards freshly rendered host nodes to the debounced
// observer. Nodes the renderers injected themselves are ignored there.
func (e *Engine) NodesAdded(nodes ...*dom.Node) {
	e.observer.NodesAdded(nodes...)
}

// ApplyAll reconciles every enabled surface against current state.
func (e *Engine) ApplyAll() {
	e.Explorer.ApplyAll()
	e.Tabs.ApplyAll()
	e.Title.ApplyAll()
}

func (e *Engine) refreshPath(path string) {
	e.Explorer.Refresh(path)
	e.Tabs.Refresh(path)
	e.Title.Refresh(path)
}

// SetIcon assigns an icon to a path, persists it and refreshes the
// surfaces showing that path.
func (e *Engine) SetIcon(path string, ref icon.Ref) error {
	if err := e.store.SetIcon(path, ref); err != nil {
		return err
	}
	e.refreshPath(path)
	return nil
}

// RemoveIcon clears a path's assignment and restores default
// decorations on the surfaces showing it.
func (e *Engine) RemoveIcon(path string) error {
	if err := e.store.RemoveIcon(path); err != nil {
		return err
	}
	e.refreshPath(path)
	return nil
}

// RemoveAsset deletes a library asset. With cascade, every assignment
// referencing the asset is removed as well; without it, assignments are
// left in place and render nothing until reassigned.
func (e *Engine) RemoveAsset(id string, cascade bool) error {
	if cascade {
		if err := e.store.RemoveAssetReferences(id); err != nil {
			return err
		}
	}
	if err := e.library.Remove(id); err != nil {
		return err
	}
	e.ApplyAll()
	return nil
}

// UpdateSettings persists new settings and re-applies the per-surface
// toggles.
func (e *Engine) UpdateSettings(settings config.Settings) error {
	if err := e.store.UpdateSettings(settings); err != nil {
		return err
	}
	e.applyToggles(e.store.Settings())
	return nil
}

func (e *Engine) applyToggles(settings config.Settings) {
	toggle(e.Explorer, settings.ShowInExplorer)
	toggle(e.Tabs, settings.ShowInTabs)
	toggle(e.Title, settings.ShowInTitle)
}

type surface interface {
	Enable()
	Disable()
}

func toggle(s surface, on bool) {
	if on {
		s.Enable()
	} else {
		s.Disable()
	}
}

func (e *Engine) handleRename(oldPath, newPath string) {
	if err := e.store.RenamePath(oldPath, newPath); err != nil {
		e.log.WithError(err).Warn("failed to persist rename")
	}
	e.refreshPath(oldPath)
	e.refreshPath(newPath)
}

func (e *Engine) handleDelete(path string) {
	if err := e.store.DeletePath(path); err != nil {
		e.log.WithError(err).Warn("failed to persist delete")
	}
	e.refreshPath(path)
}
