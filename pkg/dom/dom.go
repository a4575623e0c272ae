// Package dom models the host application's render target as a plain
// element tree. The host adapter materializes rows, tabs and titles into
// this tree; the surface renderers inject and remove icon nodes in it.
package dom

// Node is one element or text node.
type Node struct {
	// Tag is the element name; empty for text nodes.
	Tag      string
	Text     string
	Attrs    map[string]string
	Children []*Node
	Parent   *Node
}

// NewElement creates an element node.
func NewElement(tag string) *Node {
	return &Node{Tag: tag, Attrs: make(map[string]string)}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Text: text}
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the attribute value, or "".
func (n *Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.Attrs, key)
}

// Append adds children to the end of n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Prepend inserts a child at the front of n.
func (n *Node) Prepend(child *Node) {
	child.Parent = n
	n.Children = append([]*Node{child}, n.Children...)
}

// InsertAfter inserts child immediately after ref among n's children.
// Falls back to append when ref is not a child of n.
func (n *Node) InsertAfter(child, ref *Node) {
	child.Parent = n
	for i, c := range n.Children {
		if c == ref {
			n.Children = append(n.Children[:i+1], append([]*Node{child}, n.Children[i+1:]...)...)
			return
		}
	}
	n.Children = append(n.Children, child)
}

// Remove detaches n from its parent. Safe to call on detached nodes.
func (n *Node) Remove() {
	p := n.Parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// ReplaceChild substitutes old with the given replacement nodes, keeping
// their position. No-op when old is not a child of n.
func (n *Node) ReplaceChild(old *Node, replacements ...*Node) {
	for i, c := range n.Children {
		if c == old {
			for _, r := range replacements {
				r.Parent = n
			}
			tail := append([]*Node{}, n.Children[i+1:]...)
			n.Children = append(n.Children[:i], append(replacements, tail...)...)
			old.Parent = nil
			return
		}
	}
}

// Find returns the first node in the subtree (including n) matching the
// predicate, depth first.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in the subtree matching the predicate.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	if match(n) {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(match)...)
	}
	return out
}

// FindByAttr returns the first node in the subtree with the given
// attribute value.
func (n *Node) FindByAttr(key, value string) *Node {
	return n.Find(func(node *Node) bool {
		return node.Attr(key) == value
	})
}

// ChildByTag returns the first direct child with the given tag.
func (n *Node) ChildByTag(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// TextContent concatenates the text of the subtree.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}
