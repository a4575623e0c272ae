package surfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/remote"
	"github.com/iconica/core/state"
)

type testHost struct {
	rows    []*dom.Node
	leaves  []Leaf
	active  string
	titleEl *dom.Node
}

func (h *testHost) ExplorerItem(path string) *dom.Node {
	for _, row := range h.rows {
		if row.Attr(PathAttr) == path {
			return row
		}
	}
	return nil
}

func (h *testHost) ExplorerItems() []*dom.Node { return h.rows }
func (h *testHost) OpenLeaves() []Leaf         { return h.leaves }
func (h *testHost) ActivePath() string         { return h.active }
func (h *testHost) TitleEl() *dom.Node         { return h.titleEl }

func newRow(path, kind string) *dom.Node {
	row := dom.NewElement("div")
	row.SetAttr(PathAttr, path)
	row.SetAttr(TypeAttr, kind)
	role := RoleTreeIcon
	if kind == "folder" {
		role = RoleCollapse
	}
	def := dom.NewElement("div")
	def.SetAttr(RoleAttr, role)
	row.Append(def)
	return row
}

func newLeaf(path string) Leaf {
	el := dom.NewElement("div")
	def := dom.NewElement("svg")
	el.Append(def)
	return Leaf{Path: path, IconEl: el}
}

func newTestEngine(t *testing.T, host *testHost, hosts []string) (*Engine, *state.Store, *library.Store, *remote.Client) {
	t.Helper()
	dir := t.TempDir()

	store := state.NewStore(dir)
	require.NoError(t, store.Load())

	lib := library.NewStore(dir)
	require.NoError(t, lib.Load())

	if hosts == nil {
		hosts = []string{"http://127.0.0.1:0"}
	}
	client := remote.NewClient(hosts, 16)

	e := NewEngine(store, lib, client, host, NewBus(), 5*time.Millisecond)
	e.Start()
	t.Cleanup(e.Stop)
	return e, store, lib, client
}

func markers(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, child := range n.Children {
		if ownMarker(child) {
			out = append(out, child)
		}
	}
	return out
}

func TestApplyAllIsIdempotent(t *testing.T) {
	row := newRow("notes/a.md", "file")
	host := &testHost{rows: []*dom.Node{row}}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("notes/a.md", icon.Ref{Kind: icon.Emoji, Value: "🔥"}))

	e.ApplyAll()
	e.ApplyAll()

	injected := markers(row)
	require.Len(t, injected, 1, "double apply must not duplicate icons")
	assert.Equal(t, "🔥", injected[0].TextContent())
	assert.Equal(t, "true", childByRole(row, RoleTreeIcon).Attr(HiddenAttr),
		"default file icon should be hidden while an assignment exists")
}

func TestFolderRowKeepsCollapseIndicator(t *testing.T) {
	row := newRow("projects", "folder")
	host := &testHost{rows: []*dom.Node{row}}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("projects", icon.Ref{Kind: icon.Emoji, Value: "📁"}))
	e.ApplyAll()

	collapse := childByRole(row, RoleCollapse)
	require.NotNil(t, collapse)
	assert.Empty(t, collapse.Attr(HiddenAttr), "collapse indicator must stay visible")

	// Icon sits immediately after the collapse indicator.
	require.Len(t, row.Children, 2)
	assert.Same(t, collapse, row.Children[0])
	assert.True(t, ownMarker(row.Children[1]))
}

func TestDisableRestoresDefaults(t *testing.T) {
	row := newRow("notes/a.md", "file")
	leaf := newLeaf("notes/a.md")
	host := &testHost{rows: []*dom.Node{row}, leaves: []Leaf{leaf}}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("notes/a.md", icon.Ref{Kind: icon.Emoji, Value: "🔥"}))
	e.ApplyAll()
	require.Len(t, markers(row), 1)
	require.Len(t, markers(leaf.IconEl), 1)

	e.Explorer.Disable()
	e.Tabs.Disable()

	assert.Empty(t, markers(row))
	assert.Empty(t, childByRole(row, RoleTreeIcon).Attr(HiddenAttr))
	assert.Empty(t, markers(leaf.IconEl))
	assert.Empty(t, leaf.IconEl.Children[0].Attr(HiddenAttr))

	// Disabling twice is safe.
	e.Explorer.Disable()
}

func TestUnassignedRowIsLeftAlone(t *testing.T) {
	row := newRow("notes/plain.md", "file")
	host := &testHost{rows: []*dom.Node{row}}
	e, _, _, _ := newTestEngine(t, host, nil)

	e.ApplyAll()

	assert.Empty(t, markers(row))
	assert.Empty(t, childByRole(row, RoleTreeIcon).Attr(HiddenAttr))
}

func TestRenameMovesAssignment(t *testing.T) {
	oldRow := newRow("old.md", "file")
	dstRow := newRow("new.md", "file")
	host := &testHost{rows: []*dom.Node{oldRow, dstRow}}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("old.md", icon.Ref{Kind: icon.Emoji, Value: "⭐"}))
	e.ApplyAll()
	require.Len(t, markers(oldRow), 1)

	e.bus.Emit(Event{Kind: Rename, OldPath: "old.md", Path: "new.md"})

	_, ok := store.Icon("old.md")
	assert.False(t, ok, "assignment must move, not copy")
	ref, ok := store.Icon("new.md")
	require.True(t, ok)
	assert.Equal(t, "⭐", ref.Value)

	assert.Empty(t, markers(oldRow))
	assert.Len(t, markers(dstRow), 1)
}

func TestDeleteClearsAssignment(t *testing.T) {
	row := newRow("gone.md", "file")
	host := &testHost{rows: []*dom.Node{row}}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("gone.md", icon.Ref{Kind: icon.Emoji, Value: "🔥"}))
	e.ApplyAll()

	e.bus.Emit(Event{Kind: Delete, Path: "gone.md"})

	_, ok := store.Icon("gone.md")
	assert.False(t, ok)
	assert.Empty(t, markers(row))
}

func TestRemoveAssetCascadePolicy(t *testing.T) {
	for _, cascade := range []bool{true, false} {
		name := "no-cascade"
		if cascade {
			name = "cascade"
		}
		t.Run(name, func(t *testing.T) {
			row := newRow("doc.md", "file")
			host := &testHost{rows: []*dom.Node{row}}
			e, store, lib, _ := newTestEngine(t, host, nil)

			require.NoError(t, lib.Add(library.Asset{ID: "custom-1", Name: "logo", Path: "icons/custom-1.png"}))
			require.NoError(t, store.SetIcon("doc.md", icon.Ref{Kind: icon.Asset, Value: "custom-1"}))
			e.ApplyAll()
			require.Len(t, markers(row), 1)

			require.NoError(t, e.RemoveAsset("custom-1", cascade))

			_, ok := store.Icon("doc.md")
			assert.Equal(t, !cascade, ok, "without cascade the assignment stays on disk")
			// Either way the surface no longer shows the asset.
			assert.Empty(t, markers(row))
		})
	}
}

func TestThemeChangeSwitchesAssetVariant(t *testing.T) {
	row := newRow("doc.md", "file")
	host := &testHost{rows: []*dom.Node{row}}
	e, store, lib, _ := newTestEngine(t, host, nil)

	require.NoError(t, lib.Add(library.Asset{
		ID:        "custom-2",
		Name:      "logo",
		LightPath: "icons/custom-2-light.png",
		DarkPath:  "icons/custom-2-dark.png",
	}))
	require.NoError(t, store.SetIcon("doc.md", icon.Ref{Kind: icon.Asset, Value: "custom-2"}))

	e.ApplyAll()
	img := markers(row)[0].ChildByTag("img")
	require.NotNil(t, img)
	assert.Contains(t, img.Attr("src"), "custom-2-light.png")

	e.bus.Emit(Event{Kind: ThemeChange, Dark: true})

	img = markers(row)[0].ChildByTag("img")
	require.NotNil(t, img)
	assert.Contains(t, img.Attr("src"), "custom-2-dark.png")
}

func TestGlyphResolvesAsynchronously(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/lucide.json") {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"prefix": "lucide",
			"icons": map[string]interface{}{
				"star": map[string]interface{}{"body": `<path d="M0 0h24v24H0z"/>`},
			},
			"width":  24,
			"height": 24,
		})
	}))
	defer server.Close()

	row := newRow("doc.md", "file")
	host := &testHost{rows: []*dom.Node{row}}
	e, store, _, client := newTestEngine(t, host, []string{server.URL})

	require.NoError(t, store.SetIcon("doc.md", icon.Ref{Kind: icon.Glyph, Value: "lucide:star"}))
	e.ApplyAll()

	// First pass injects a placeholder and kicks off the fetch.
	require.Len(t, markers(row), 1)
	assert.Equal(t, "true", markers(row)[0].Attr(PendingAttr))

	// Wait for the background fetch to land in the cache, give the
	// debounced re-apply time to run, then stop it before inspecting.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := client.Cached("lucide:star"); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	e.observer.Stop()

	require.Len(t, markers(row), 1)
	wrapper := markers(row)[0]
	require.Empty(t, wrapper.Attr(PendingAttr), "placeholder should be replaced once the glyph arrives")
	svg := wrapper.ChildByTag("svg")
	require.NotNil(t, svg)
	assert.Equal(t, "0 0 24 24", svg.Attr("viewBox"))
}

func TestTitleDecoratesOnlyActiveDocument(t *testing.T) {
	titleEl := dom.NewElement("div")
	titleEl.SetAttr(RoleAttr, RoleTitleText)
	host := &testHost{active: "a.md", titleEl: titleEl}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("a.md", icon.Ref{Kind: icon.Emoji, Value: "📘"}))
	require.NoError(t, store.SetIcon("b.md", icon.Ref{Kind: icon.Emoji, Value: "📕"}))

	e.ApplyAll()
	require.Len(t, markers(titleEl), 1)
	assert.Equal(t, "📘", markers(titleEl)[0].TextContent())

	// Background paths never touch the title.
	e.Title.Refresh("b.md")
	assert.Equal(t, "📘", markers(titleEl)[0].TextContent())

	// Focus change re-renders for the new document.
	host.active = "b.md"
	e.bus.Emit(Event{Kind: ActiveLeafChange, Path: "b.md"})
	require.Len(t, markers(titleEl), 1)
	assert.Equal(t, "📕", markers(titleEl)[0].TextContent())
}

func TestTitleClickOpensPicker(t *testing.T) {
	titleEl := dom.NewElement("div")
	host := &testHost{active: "a.md", titleEl: titleEl}
	e, _, _, _ := newTestEngine(t, host, nil)

	var got string
	e.Title.OnOpenPicker = func(path string) { got = path }
	e.Title.Click()

	assert.Equal(t, "a.md", got)
}

func TestLayoutChangeSchedulesDebouncedApply(t *testing.T) {
	row := newRow("doc.md", "file")
	host := &testHost{rows: []*dom.Node{row}}
	e, store, _, _ := newTestEngine(t, host, nil)

	require.NoError(t, store.SetIcon("doc.md", icon.Ref{Kind: icon.Emoji, Value: "🔥"}))

	// The row is not decorated yet; a layout event picks it up after the
	// debounce window.
	e.bus.Emit(Event{Kind: LayoutChange})

	time.Sleep(50 * time.Millisecond)
	e.observer.Stop()
	assert.Len(t, markers(row), 1)
}
