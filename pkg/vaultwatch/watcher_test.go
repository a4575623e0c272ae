package vaultwatch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconica/core/pkg/surfaces"
	"github.com/iconica/core/testutil"
)

type eventLog struct {
	mu     sync.Mutex
	events []surfaces.Event
}

func (l *eventLog) add(e surfaces.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []surfaces.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]surfaces.Event(nil), l.events...)
}

func (l *eventLog) waitFor(t *testing.T, match func(surfaces.Event) bool) surfaces.Event {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, e := range l.snapshot() {
			if match(e) {
				return e
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected event never arrived")
	return surfaces.Event{}
}

func startWatcher(t *testing.T, root string) (*eventLog, *surfaces.Bus) {
	t.Helper()
	bus := surfaces.NewBus()
	log := &eventLog{}
	bus.Subscribe(surfaces.Delete, log.add)
	bus.Subscribe(surfaces.Rename, log.add)
	bus.Subscribe(surfaces.LayoutChange, log.add)

	w, err := NewWatcher(root, bus, 10)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Start(ctx)

	// Give the watch registration a moment before mutating the tree.
	time.Sleep(50 * time.Millisecond)
	return log, bus
}

func TestCreateEmitsLayoutChange(t *testing.T) {
	root := t.TempDir()
	log, _ := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "note.md"), []byte("x"), 0644))

	log.waitFor(t, func(e surfaces.Event) bool { return e.Kind == surfaces.LayoutChange })
}

func TestRemoveEmitsDeleteWithRelativePath(t *testing.T) {
	root := testutil.TempVault(t, "sub/note.md")

	log, _ := startWatcher(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "sub", "note.md")))

	e := log.waitFor(t, func(e surfaces.Event) bool { return e.Kind == surfaces.Delete })
	assert.Equal(t, "sub/note.md", e.Path)
}

func TestMoveAcrossDirectoriesPairsIntoRename(t *testing.T) {
	root := testutil.TempVault(t, "notes/a.md", "archive/keep.md")
	log, _ := startWatcher(t, root)

	require.NoError(t, os.Rename(
		filepath.Join(root, "notes", "a.md"),
		filepath.Join(root, "archive", "a.md"),
	))

	e := log.waitFor(t, func(e surfaces.Event) bool { return e.Kind == surfaces.Rename })
	assert.Equal(t, "notes/a.md", e.OldPath)
	assert.Equal(t, "archive/a.md", e.Path)

	for _, ev := range log.snapshot() {
		assert.NotEqual(t, surfaces.Delete, ev.Kind,
			"a paired move must not surface as a delete")
	}
}

func TestVanishWithoutMatchingCreateIsNotADelete(t *testing.T) {
	root := testutil.TempVault(t, "a.md")
	log, _ := startWatcher(t, root)

	// An in-place rename changes the base name, so the vanished path has
	// no exact-name match. It is reported, never turned into a delete.
	require.NoError(t, os.Rename(filepath.Join(root, "a.md"), filepath.Join(root, "b.md")))

	log.waitFor(t, func(e surfaces.Event) bool { return e.Kind == surfaces.LayoutChange })
	time.Sleep(300 * time.Millisecond)

	for _, ev := range log.snapshot() {
		assert.NotEqual(t, surfaces.Delete, ev.Kind)
		assert.NotEqual(t, surfaces.Rename, ev.Kind)
	}
}

func TestNewDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()
	log, _ := startWatcher(t, root)

	sub := filepath.Join(root, "projects")
	require.NoError(t, os.Mkdir(sub, 0755))
	log.waitFor(t, func(e surfaces.Event) bool { return e.Kind == surfaces.LayoutChange })

	// Wait out the registration of the new directory, then verify a
	// removal inside it is seen.
	time.Sleep(100 * time.Millisecond)
	inner := filepath.Join(sub, "inner.md")
	require.NoError(t, os.WriteFile(inner, []byte("x"), 0644))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.Remove(inner))

	e := log.waitFor(t, func(e surfaces.Event) bool {
		return e.Kind == surfaces.Delete && e.Path == "projects/inner.md"
	})
	assert.Equal(t, surfaces.Delete, e.Kind)
}
