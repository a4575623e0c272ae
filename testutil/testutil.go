// Package testutil holds shared helpers for exercising the icon stores,
// the remote client and the image pipeline in tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempVault creates a vault directory populated with the given relative
// file paths. Parent directories are created as needed.
func TempVault(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, rel := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte("test note\n"), 0644))
	}
	return dir
}

// FakeGlyph is one glyph served by the fake icon service.
type FakeGlyph struct {
	Body   string `json:"body"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// FakeIconService runs an in-process icon service host. glyphs maps
// "prefix:name" ids to their definitions; every id also matches any
// search query it contains.
func FakeIconService(t *testing.T, glyphs map[string]FakeGlyph) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search":
			query := r.URL.Query().Get("query")
			var ids []string
			for id := range glyphs {
				if strings.Contains(id, query) {
					ids = append(ids, id)
				}
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"icons": ids,
				"total": len(ids),
			})

		case strings.HasSuffix(r.URL.Path, ".json"):
			prefix := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".json")
			found := map[string]FakeGlyph{}
			var notFound []string
			for _, name := range strings.Split(r.URL.Query().Get("icons"), ",") {
				if g, ok := glyphs[prefix+":"+name]; ok {
					found[name] = g
				} else if name != "" {
					notFound = append(notFound, name)
				}
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"prefix":    prefix,
				"icons":     found,
				"width":     24,
				"height":    24,
				"not_found": notFound,
			})

		case r.URL.Path == "/collection":
			prefix := r.URL.Query().Get("prefix")
			var uncategorized []string
			for id := range glyphs {
				if strings.HasPrefix(id, prefix+":") {
					uncategorized = append(uncategorized, strings.TrimPrefix(id, prefix+":"))
				}
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"prefix":        prefix,
				"uncategorized": uncategorized,
			})

		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// SolidPNG encodes a w×h PNG filled with one color.
func SolidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
