package surfaces

import (
	"fmt"

	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/remote"
)

// PendingAttr marks an icon wrapper whose glyph is still being fetched.
// A later apply pass replaces it once the glyph lands in the cache.
const PendingAttr = "data-pending"

// nodeFactory builds the injected icon elements shared by all renderers.
type nodeFactory struct {
	library *library.Store
	glyphs  GlyphSource
	theme   func() library.Theme
	// refresh is invoked after an async glyph fetch completes so the
	// owning renderer can re-apply and swap out pending placeholders.
	refresh func()
}

// node builds the wrapper element for a reference at the given pixel
// size. It returns nil when the reference cannot be rendered, such as an
// asset id no longer present in the catalog.
func (f *nodeFactory) node(ref icon.Ref, size int) *dom.Node {
	wrap := dom.NewElement("span")
	wrap.SetAttr(MarkerAttr, "true")

	switch ref.Kind {
	case icon.Emoji:
		wrap.SetAttr("style", fmt.Sprintf("font-size:%dpx", size))
		wrap.Append(dom.NewText(ref.Value))
		return wrap

	case icon.Glyph:
		g, ok := f.glyphs.Cached(ref.Value)
		if !ok {
			wrap.SetAttr(PendingAttr, "true")
			f.glyphs.Fetch(ref.Value, f.refresh)
			return wrap
		}
		svg, err := remote.RenderGlyph(g, size, ref.Color)
		if err != nil {
			return nil
		}
		wrap.Append(svg)
		return wrap

	case icon.Asset:
		src, ok := f.library.AssetURL(ref.Value, f.theme())
		if !ok {
			return nil
		}
		img := dom.NewElement("img")
		img.SetAttr("src", src)
		img.SetAttr("width", fmt.Sprint(size))
		img.SetAttr("height", fmt.Sprint(size))
		if a, ok := f.library.GetByID(ref.Value); ok {
			img.SetAttr("alt", a.Name)
		}
		wrap.Append(img)
		return wrap
	}
	return nil
}

// ownMarker reports whether a node is an icon wrapper injected by a
// renderer.
func ownMarker(n *dom.Node) bool {
	if n == nil || n.IsText() {
		return false
	}
	return n.Attr(MarkerAttr) != ""
}

// removeInjected strips previously injected wrappers that are direct
// children of parent. Returns true when anything was removed.
func removeInjected(parent *dom.Node) bool {
	if parent == nil {
		return false
	}
	removed := false
	for _, child := range append([]*dom.Node(nil), parent.Children...) {
		if ownMarker(child) {
			child.Remove()
			removed = true
		}
	}
	return removed
}
