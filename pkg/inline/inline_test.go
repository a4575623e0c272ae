package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconica/core/config"
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/surfaces"
)

func newTestResolver(t *testing.T, assets ...library.Asset) (*Resolver, *library.Store) {
	t.Helper()
	lib := library.NewStore(t.TempDir())
	require.NoError(t, lib.Load())
	if len(assets) > 0 {
		require.NoError(t, lib.AddBatch(assets))
	}
	return NewResolver(lib, emoji.Default(), "ci"), lib
}

func TestResolutionPrecedence(t *testing.T) {
	r, _ := newTestResolver(t,
		library.Asset{ID: "abc", Name: "xyz", Path: "icons/abc.png"},
	)

	// Exact id wins.
	ref, ok := r.ResolveLibrary("abc")
	require.True(t, ok)
	assert.Equal(t, icon.Ref{Kind: icon.Asset, Value: "abc"}, ref)

	// Display name falls back to the owning asset's id.
	ref, ok = r.ResolveLibrary("xyz")
	require.True(t, ok)
	assert.Equal(t, "abc", ref.Value)

	_, ok = r.ResolveLibrary("nope")
	assert.False(t, ok)
}

func TestNameMatchUsesStorageOrder(t *testing.T) {
	r, _ := newTestResolver(t,
		library.Asset{ID: "custom-1", Name: "logo", Path: "icons/custom-1.png"},
		library.Asset{ID: "custom-2", Name: "logo", Path: "icons/custom-2.png"},
	)

	ref, ok := r.ResolveLibrary("logo")
	require.True(t, ok)
	assert.Equal(t, "custom-1", ref.Value, "first stored asset wins a name collision")
}

func TestScanPrefixedAndBareForms(t *testing.T) {
	r, _ := newTestResolver(t,
		library.Asset{ID: "abc", Name: "xyz", Path: "icons/abc.png"},
	)

	text := "see :ci-abc: and :fire: but not :ci-missing: or :nonsense:"
	matches := r.Scan(text)
	require.Len(t, matches, 2)

	assert.True(t, matches[0].Prefixed)
	assert.Equal(t, "abc", matches[0].Token)
	assert.Equal(t, icon.Asset, matches[0].Ref.Kind)
	assert.Equal(t, ":ci-abc:", text[matches[0].Start:matches[0].End])

	assert.False(t, matches[1].Prefixed)
	assert.Equal(t, "fire", matches[1].Token)
	assert.Equal(t, icon.Emoji, matches[1].Ref.Kind)
	assert.Equal(t, ":fire:", text[matches[1].Start:matches[1].End])
}

func TestBareFormNeverResolvesLibrary(t *testing.T) {
	r, _ := newTestResolver(t,
		library.Asset{ID: "abc", Name: "xyz", Path: "icons/abc.png"},
	)

	// Without the prefix, a library token is not a shortcode.
	assert.Empty(t, r.Scan("plain :abc: here"))
}

func TestScanSanitizesPrefix(t *testing.T) {
	lib := library.NewStore(t.TempDir())
	require.NoError(t, lib.Load())
	r := NewResolver(lib, emoji.Default(), "c!i")

	assert.Equal(t, "ci", r.Prefix())
}

func TestProcessTreePreservesSurroundingText(t *testing.T) {
	r, _ := newTestResolver(t,
		library.Asset{ID: "abc", Name: "xyz", Path: "icons/abc.png"},
	)
	renderer := NewRenderer(r, 20, func() library.Theme { return library.Light })

	p := dom.NewElement("p")
	p.Append(dom.NewText("before :ci-abc: middle :fire: after"))

	renderer.ProcessTree(p)

	require.Len(t, p.Children, 5)
	assert.Equal(t, "before ", p.Children[0].Text)
	assert.Equal(t, "true", p.Children[1].Attr(surfaces.MarkerAttr))
	assert.NotNil(t, p.Children[1].ChildByTag("img"))
	assert.Equal(t, " middle ", p.Children[2].Text)
	assert.Equal(t, "true", p.Children[3].Attr(surfaces.MarkerAttr))
	assert.Equal(t, " after", p.Children[4].Text)
}

func TestProcessTreeLeavesUnresolvableLiteral(t *testing.T) {
	r, _ := newTestResolver(t)
	renderer := NewRenderer(r, 20, func() library.Theme { return library.Light })

	p := dom.NewElement("p")
	p.Append(dom.NewText("keep :ci-ghost: as is"))

	renderer.ProcessTree(p)

	require.Len(t, p.Children, 1)
	assert.Equal(t, "keep :ci-ghost: as is", p.Children[0].Text)
}

func TestProcessTreeIsIdempotent(t *testing.T) {
	r, _ := newTestResolver(t)
	renderer := NewRenderer(r, 20, func() library.Theme { return library.Light })

	p := dom.NewElement("p")
	p.Append(dom.NewText("a :fire: b"))

	renderer.ProcessTree(p)
	first := len(p.Children)
	renderer.ProcessTree(p)

	assert.Equal(t, first, len(p.Children))
	assert.Equal(t, 3, first)
}

func TestNewFromSettingsHonorsToggleAndSize(t *testing.T) {
	lib := library.NewStore(t.TempDir())
	require.NoError(t, lib.Load())

	settings := config.DefaultSettings()
	settings.EnableInlineIcons = false
	_, renderer := NewFromSettings(lib, emoji.Default(), settings,
		func() library.Theme { return library.Light })
	assert.False(t, renderer.Enabled())

	root := dom.NewElement("p")
	root.Append(dom.NewText("a :fire: b"))
	renderer.ProcessTree(root)
	require.Len(t, root.Children, 1, "disabled pass must leave the tree untouched")
	assert.True(t, root.Children[0].IsText())

	settings.EnableInlineIcons = true
	settings.InlineIconSize = 32
	_, renderer = NewFromSettings(lib, emoji.Default(), settings,
		func() library.Theme { return library.Light })
	require.True(t, renderer.Enabled())

	renderer.ProcessTree(root)
	span := root.Find(func(n *dom.Node) bool {
		return !n.IsText() && n.Attr(surfaces.MarkerAttr) != ""
	})
	require.NotNil(t, span)
	assert.Equal(t, "font-size:32px", span.Attr("style"))
}

func TestDecorateRangeReportsSpans(t *testing.T) {
	r, _ := newTestResolver(t)

	spans := r.DecorateRange("x :fire: y :star: z")
	require.Len(t, spans, 2)
	assert.Less(t, spans[0].End, spans[1].Start)
}

func TestSuggestFiltersAndCaps(t *testing.T) {
	assets := make([]library.Asset, 0, 25)
	for i := 0; i < 25; i++ {
		assets = append(assets, library.Asset{
			ID:   "custom-" + string(rune('a'+i)),
			Name: "logo",
			Path: "icons/x.png",
		})
	}
	assets = append(assets, library.Asset{ID: "special", Name: "rocket ship", Path: "icons/s.png"})
	r, _ := newTestResolver(t, assets...)

	all := r.Suggest("")
	assert.Len(t, all, 20, "blank partial is capped")

	byName := r.Suggest("rocket")
	require.Len(t, byName, 1)
	assert.Equal(t, ":ci-special:", byName[0].Replacement)

	byID := r.Suggest("SPECIAL")
	require.Len(t, byID, 1, "matching is case-insensitive")

	assert.Empty(t, r.Suggest("zzz-none"))
}
