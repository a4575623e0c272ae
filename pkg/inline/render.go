package inline

import (
	"fmt"

	"github.com/iconica/core/config"
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/surfaces"
)

// Renderer is the static rendering pass: it rewrites shortcodes inside
// already rendered output, replacing each resolved span with an icon
// node while preserving the surrounding text byte for byte.
type Renderer struct {
	resolver *Resolver
	size     int
	theme    func() library.Theme
	enabled  bool
}

// NewRenderer builds the static pass. size is the inline icon pixel
// size from settings; theme selects the asset variant at render time.
func NewRenderer(resolver *Resolver, size int, theme func() library.Theme) *Renderer {
	return &Renderer{resolver: resolver, size: size, theme: theme, enabled: true}
}

// NewFromSettings wires the resolver and static pass from the persisted
// settings: shortcode prefix, icon pixel size and the master inline
// toggle. With the toggle off the renderer leaves every tree untouched.
func NewFromSettings(lib *library.Store, idx *emoji.Index, s config.Settings, theme func() library.Theme) (*Resolver, *Renderer) {
	resolver := NewResolver(lib, idx, s.InlineIconPrefix)
	renderer := NewRenderer(resolver, s.InlineIconSize, theme)
	renderer.enabled = s.EnableInlineIcons
	return resolver, renderer
}

// Enabled reports whether the settings toggle allows rendering.
func (r *Renderer) Enabled() bool { return r.enabled }

// ProcessTree walks every text node under root and substitutes resolved
// shortcodes in place. Nodes the pass itself produced are skipped, so
// running it twice over the same tree is a no-op.
func (r *Renderer) ProcessTree(root *dom.Node) {
	if root == nil || !r.enabled {
		return
	}
	texts := root.FindAll(func(n *dom.Node) bool {
		return n.IsText() && !insideOwn(n)
	})
	for _, t := range texts {
		r.processText(t)
	}
}

func (r *Renderer) processText(t *dom.Node) {
	parent := t.Parent
	if parent == nil {
		return
	}
	matches := r.resolver.Scan(t.Text)
	if len(matches) == 0 {
		return
	}

	var parts []*dom.Node
	last := 0
	for _, m := range matches {
		node := r.iconNode(m.Ref)
		if node == nil {
			continue
		}
		if m.Start > last {
			parts = append(parts, dom.NewText(t.Text[last:m.Start]))
		}
		parts = append(parts, node)
		last = m.End
	}
	if last == 0 {
		return
	}
	if last < len(t.Text) {
		parts = append(parts, dom.NewText(t.Text[last:]))
	}
	parent.ReplaceChild(t, parts...)
}

func (r *Renderer) iconNode(ref icon.Ref) *dom.Node {
	wrap := dom.NewElement("span")
	wrap.SetAttr(surfaces.MarkerAttr, "true")

	switch ref.Kind {
	case icon.Emoji:
		wrap.SetAttr("style", fmt.Sprintf("font-size:%dpx", r.size))
		wrap.Append(dom.NewText(ref.Value))
		return wrap
	case icon.Asset:
		src, ok := r.resolver.library.AssetURL(ref.Value, r.theme())
		if !ok {
			return nil
		}
		img := dom.NewElement("img")
		img.SetAttr("src", src)
		img.SetAttr("width", fmt.Sprint(r.size))
		img.SetAttr("height", fmt.Sprint(r.size))
		wrap.Append(img)
		return wrap
	}
	return nil
}

func insideOwn(n *dom.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if !cur.IsText() && cur.Attr(surfaces.MarkerAttr) != "" {
			return true
		}
	}
	return false
}
