// Package vaultwatch bridges filesystem changes under a vault directory
// to the surface engine's event bus. It is the standalone stand-in for
// the host application's own vault events: structural churn becomes
// layout-change events, removals become delete events so assignments for
// vanished paths are cleaned up, and a rename followed by a create of
// the same base name is paired into a rename event so the assignment
// moves with the file.
package vaultwatch

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/iconica/core/logging"
	"github.com/iconica/core/pkg/surfaces"
)

// Watcher recursively watches a vault and emits host events.
type Watcher struct {
	watcher    *fsnotify.Watcher
	bus        *surfaces.Bus
	root       string
	debounceMs int
	lastChange time.Time
	mu         sync.Mutex
	// pending holds vanished paths awaiting a matching create, keyed
	// by base name.
	pending map[string]*pendingRename
	logger  *logrus.Entry
}

type pendingRename struct {
	oldRel string
	timer  *time.Timer
}

// NewWatcher creates a watcher over the vault root. Every existing
// subdirectory is registered up front; directories created later are
// added as their create events arrive. Dot-directories (the host's own
// metadata) are skipped.
func NewWatcher(root string, bus *surfaces.Bus, debounceMs int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger("vault-watcher")

	if debounceMs <= 0 {
		debounceMs = 100
	}
	w := &Watcher{
		watcher:    fsw,
		bus:        bus,
		root:       root,
		debounceMs: debounceMs,
		pending:    make(map[string]*pendingRename),
		logger:     logger,
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start processes events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	rel := w.relPath(event.Name)
	if rel == "" || strings.HasPrefix(rel, ".") {
		return
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.WithError(err).Warnf("failed to watch new directory %s", rel)
			}
		}
		if old, ok := w.takePending(path.Base(rel)); ok {
			w.bus.Emit(surfaces.Event{Kind: surfaces.Rename, OldPath: old, Path: rel})
		}
		w.scheduleLayoutChange()

	case event.Op&fsnotify.Remove != 0:
		w.bus.Emit(surfaces.Event{Kind: surfaces.Delete, Path: rel})
		w.scheduleLayoutChange()

	case event.Op&fsnotify.Rename != 0:
		// The old path has vanished. Hold it until a create with the
		// same base name arrives; a move inside the vault then becomes
		// one rename event instead of a delete.
		w.holdForRename(rel)
		w.scheduleLayoutChange()
	}
}

func (w *Watcher) renameWindow() time.Duration {
	return 5 * time.Duration(w.debounceMs) * time.Millisecond
}

func (w *Watcher) holdForRename(oldRel string) {
	base := path.Base(oldRel)
	w.mu.Lock()
	defer w.mu.Unlock()
	if prev, ok := w.pending[base]; ok {
		prev.timer.Stop()
	}
	p := &pendingRename{oldRel: oldRel}
	p.timer = time.AfterFunc(w.renameWindow(), func() { w.expirePending(base, oldRel) })
	w.pending[base] = p
}

func (w *Watcher) takePending(base string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pending[base]
	if !ok {
		return "", false
	}
	p.timer.Stop()
	delete(w.pending, base)
	return p.oldRel, true
}

// expirePending reports a vanished path with no matching create. The
// assignment stays in place rather than being guessed away; the user is
// told which stale path to clean up.
func (w *Watcher) expirePending(base, oldRel string) {
	w.mu.Lock()
	p, ok := w.pending[base]
	if ok && p.oldRel == oldRel {
		delete(w.pending, base)
	} else {
		ok = false
	}
	w.mu.Unlock()

	if ok {
		w.logger.Warnf("%s vanished without a matching create; its icon assignment is kept", oldRel)
	}
}

// scheduleLayoutChange emits a layout-change event, leading-edge
// debounced so a burst of file operations produces one re-render.
func (w *Watcher) scheduleLayoutChange() {
	w.mu.Lock()
	elapsed := time.Since(w.lastChange)
	if elapsed < time.Duration(w.debounceMs)*time.Millisecond {
		w.mu.Unlock()
		return
	}
	w.lastChange = time.Now()
	w.mu.Unlock()

	w.bus.Emit(surfaces.Event{Kind: surfaces.LayoutChange})
}

func (w *Watcher) relPath(abs string) string {
	rel, err := filepath.Rel(w.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
