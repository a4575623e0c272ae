package remote

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/iconica/core/pkg/dom"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Elements never allowed in a glyph fragment.
var disallowedElements = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
	"embed":         true,
	"object":        true,
}

// RenderGlyph builds a displayable SVG element from a glyph's raw body
// fragment. The fragment originates from a network response, so it is
// parsed structurally and re-attached node by node; it is never injected
// as raw markup. Color defaults to "currentColor" (inherit).
func RenderGlyph(g Glyph, size int, color string) (*dom.Node, error) {
	if color == "" {
		color = "currentColor"
	}

	svg := dom.NewElement("svg")
	svg.SetAttr("xmlns", svgNamespace)
	svg.SetAttr("width", fmt.Sprint(size))
	svg.SetAttr("height", fmt.Sprint(size))
	svg.SetAttr("viewBox", fmt.Sprintf("0 0 %d %d", g.Width, g.Height))
	svg.SetAttr("fill", color)

	children, err := parseFragment(g.Body)
	if err != nil {
		return nil, fmt.Errorf("parse glyph fragment: %w", err)
	}
	svg.Append(children...)
	return svg, nil
}

// parseFragment decodes an SVG body fragment into element nodes, dropping
// unsafe elements and attributes.
func parseFragment(body string) ([]*dom.Node, error) {
	decoder := xml.NewDecoder(strings.NewReader("<svg>" + body + "</svg>"))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose

	root := dom.NewElement("svg")
	stack := []*dom.Node{root}
	skipDepth := 0
	wrapperSeen := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !wrapperSeen {
				// The synthetic <svg> wrapper around the fragment.
				wrapperSeen = true
				continue
			}
			name := strings.ToLower(t.Name.Local)
			if skipDepth > 0 || disallowedElements[name] {
				skipDepth++
				continue
			}
			el := dom.NewElement(name)
			for _, attr := range t.Attr {
				if unsafeAttr(attr) {
					continue
				}
				el.SetAttr(attrName(attr.Name), attr.Value)
			}
			stack[len(stack)-1].Append(el)
			stack = append(stack, el)
		case xml.EndElement:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if skipDepth > 0 {
				continue
			}
			if text := string(t); strings.TrimSpace(text) != "" {
				stack[len(stack)-1].Append(dom.NewText(text))
			}
		}
	}

	return root.Children, nil
}

func attrName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

// unsafeAttr reports whether an attribute could carry executable content:
// event handlers and script-scheme references.
func unsafeAttr(attr xml.Attr) bool {
	local := strings.ToLower(attr.Name.Local)
	if strings.HasPrefix(local, "on") {
		return true
	}
	if local == "href" {
		value := strings.ToLower(strings.TrimSpace(attr.Value))
		return strings.HasPrefix(value, "javascript:") || strings.HasPrefix(value, "data:")
	}
	return false
}
