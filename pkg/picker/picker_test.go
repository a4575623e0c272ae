package picker

import (
	"context"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/remote"
	"github.com/iconica/core/state"
	"github.com/iconica/core/testutil"
)

func newTestSession(t *testing.T, hosts []string) (*Session, *state.Store, *library.Store) {
	t.Helper()
	dir := t.TempDir()

	store := state.NewStore(dir)
	require.NoError(t, store.Load())
	lib := library.NewStore(dir)
	require.NoError(t, lib.Load())

	if hosts == nil {
		hosts = []string{"http://127.0.0.1:0"}
	}
	s := NewSession("notes/a.md", store, lib, remote.NewClient(hosts, 16), emoji.Default())
	s.debounce = 10 * time.Millisecond
	return s, store, lib
}

func TestSearchDebouncesKeystrokes(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			hits.Add(1)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"icons": []string{"lucide:fire", "mdi:fire"},
				"total": 2,
			})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	s, _, lib := newTestSession(t, []string{server.URL})
	require.NoError(t, lib.Add(library.Asset{ID: "custom-1", Name: "fireplace", Path: "icons/custom-1.png"}))

	results := make(chan Results, 4)
	s.OnResults = func(r Results) { results <- r }

	s.Search("f")
	s.Search("fi")
	s.Search("fire")

	select {
	case r := <-results:
		assert.Equal(t, "fire", r.Query)
		assert.Equal(t, []string{"lucide:fire", "mdi:fire"}, r.Glyphs)
		assert.NotEmpty(t, r.Emoji)
		require.Len(t, r.Assets, 1)
		assert.Equal(t, "custom-1", r.Assets[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no results delivered")
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), hits.Load(), "keystroke burst should reach the service once")
	assert.Empty(t, results)
}

func TestExactlyOneOutcomePerSession(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	var outcomes []Outcome
	s.OnDone = func(o Outcome) { outcomes = append(outcomes, o) }

	ref, ok := s.SelectEmoji("🔥")
	require.True(t, ok)
	assert.Equal(t, icon.Ref{Kind: icon.Emoji, Value: "🔥"}, ref)

	assert.False(t, s.Remove())
	assert.False(t, s.Cancel())
	_, ok = s.SelectGlyph("lucide:star")
	assert.False(t, ok)

	require.Len(t, outcomes, 1)
	assert.Equal(t, ActionSelect, outcomes[0].Action)
	assert.Equal(t, "notes/a.md", outcomes[0].Path)
}

func TestSelectionsRecordRecents(t *testing.T) {
	s, store, _ := newTestSession(t, nil)
	_, ok := s.SelectEmoji("🔥")
	require.True(t, ok)
	assert.Equal(t, []string{"🔥"}, store.Settings().RecentEmojis)

	s2 := NewSession("b.md", store, library.NewStore(t.TempDir()), remote.NewClient(nil, 1), emoji.Default())
	_, ok = s2.SelectGlyph("lucide:star")
	require.True(t, ok)
	assert.Equal(t, []string{"lucide:star"}, store.Settings().RecentIcons)
}

func TestRandomEmojiConsumesSession(t *testing.T) {
	s, store, _ := newTestSession(t, nil)

	ref, ok := s.RandomEmoji()
	require.True(t, ok)
	assert.Equal(t, icon.Emoji, ref.Kind)
	assert.NotEmpty(t, ref.Value)
	assert.Equal(t, []string{ref.Value}, store.Settings().RecentEmojis)

	assert.False(t, s.Cancel())
}

func TestRandomGlyphUsesPreferredSets(t *testing.T) {
	server := testutil.FakeIconService(t, map[string]testutil.FakeGlyph{
		"lucide:anchor": {Body: `<path d="M1 1"/>`},
	})

	s, store, _ := newTestSession(t, []string{server.URL})
	settings := store.Settings()
	settings.IconSetPrefixes = "lucide"
	require.NoError(t, store.UpdateSettings(settings))

	ref, ok := s.RandomGlyph(context.Background())
	require.True(t, ok)
	assert.Equal(t, icon.Ref{Kind: icon.Glyph, Value: "lucide:anchor"}, ref)
	assert.Equal(t, []string{"lucide:anchor"}, store.Settings().RecentIcons)
}

func TestRandomGlyphFailureKeepsSessionOpen(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	_, ok := s.RandomGlyph(context.Background())
	assert.False(t, ok)

	// The failed pick must not count as the session outcome.
	assert.True(t, s.Cancel())
}

func TestSelectAssetRequiresKnownID(t *testing.T) {
	s, _, lib := newTestSession(t, nil)

	_, ok := s.SelectAsset("ghost")
	assert.False(t, ok, "unknown asset must not close the session")

	require.NoError(t, lib.Add(library.Asset{ID: "custom-1", Name: "logo", Path: "icons/custom-1.png"}))
	ref, ok := s.SelectAsset("custom-1")
	require.True(t, ok)
	assert.Equal(t, icon.Asset, ref.Kind)
}

func TestUploadIngestsAndSelects(t *testing.T) {
	s, _, lib := newTestSession(t, nil)

	data := testutil.SolidPNG(t, 32, 32, color.NRGBA{R: 20, G: 20, B: 20, A: 255})

	ref, err := s.Upload("My Logo.png", "image/png", data)
	require.NoError(t, err)
	assert.Equal(t, icon.Asset, ref.Kind)

	a, ok := lib.GetByID(ref.Value)
	require.True(t, ok)
	assert.Equal(t, "My Logo", a.Name)

	for _, theme := range []library.Theme{library.Light, library.Dark} {
		path, ok := lib.AssetPath(ref.Value, theme)
		require.True(t, ok)
		_, err := os.Stat(path)
		assert.NoError(t, err, "%s variant file must exist", theme)
	}
}

func TestFailedUploadLeavesSessionOpen(t *testing.T) {
	s, _, lib := newTestSession(t, nil)

	_, err := s.Upload("broken.png", "image/png", []byte("junk"))
	require.Error(t, err)
	assert.Empty(t, lib.GetAll(), "nothing may be added on a failed ingest")

	// The session is still usable after the failure.
	assert.True(t, s.Cancel())
}
