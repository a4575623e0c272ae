// Package inline resolves icon shortcodes embedded in note text. Two
// forms exist: the prefixed form `:<prefix>-<token>:` resolving against
// the icon library (exact id first, then display name in storage order),
// and the bare form `:<token>:` resolving purely through the emoji
// index. Tokens that resolve to nothing stay literal text.
package inline

import (
	"regexp"
	"strings"

	"github.com/iconica/core/config"
	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/library"
)

// Match is one resolved shortcode occurrence inside a text run.
type Match struct {
	// Start and End are byte offsets of the full `:...:` span.
	Start int
	End   int
	// Token is the inner token with the prefix stripped.
	Token string
	// Prefixed reports the library form as opposed to the bare emoji
	// form.
	Prefixed bool
	Ref      icon.Ref
}

// Resolver turns shortcode tokens into icon references.
type Resolver struct {
	library *library.Store
	emoji   *emoji.Index
	prefix  string
	scanRe  *regexp.Regexp
}

// NewResolver builds a resolver for the configured shortcode prefix. The
// prefix is sanitized the same way settings persistence does, so a stale
// or hand-edited value cannot break the scan pattern.
func NewResolver(lib *library.Store, idx *emoji.Index, prefix string) *Resolver {
	prefix = config.SanitizePrefix(prefix)
	return &Resolver{
		library: lib,
		emoji:   idx,
		prefix:  prefix,
		scanRe:  regexp.MustCompile(`:([A-Za-z0-9_+-]+):`),
	}
}

// Prefix returns the sanitized prefix in effect.
func (r *Resolver) Prefix() string { return r.prefix }

// ResolveLibrary resolves a prefixed token: exact asset id, then first
// asset whose display name matches, in storage order.
func (r *Resolver) ResolveLibrary(token string) (icon.Ref, bool) {
	if a, ok := r.library.GetByID(token); ok {
		return icon.Ref{Kind: icon.Asset, Value: a.ID}, true
	}
	for _, a := range r.library.GetAll() {
		if a.Name == token {
			return icon.Ref{Kind: icon.Asset, Value: a.ID}, true
		}
	}
	return icon.Ref{}, false
}

// ResolveEmoji resolves a bare token through the emoji index.
func (r *Resolver) ResolveEmoji(token string) (icon.Ref, bool) {
	if e, ok := r.emoji.ResolveShortcode(token); ok {
		return icon.Ref{Kind: icon.Emoji, Value: e.Character}, true
	}
	return icon.Ref{}, false
}

// Scan finds every resolvable shortcode in text, left to right and
// non-overlapping. Unresolvable candidates are omitted so callers leave
// the corresponding span untouched.
func (r *Resolver) Scan(text string) []Match {
	var out []Match
	for _, loc := range r.scanRe.FindAllStringSubmatchIndex(text, -1) {
		inner := text[loc[2]:loc[3]]
		m := Match{Start: loc[0], End: loc[1], Token: inner}
		if stripped, ok := strings.CutPrefix(inner, r.prefix+"-"); ok {
			m.Token = stripped
			m.Prefixed = true
			if ref, ok := r.ResolveLibrary(stripped); ok {
				m.Ref = ref
				out = append(out, m)
			}
			continue
		}
		if ref, ok := r.ResolveEmoji(inner); ok {
			m.Ref = ref
			out = append(out, m)
		}
	}
	return out
}

// DecorateRange is the live-editing pass: it reports the spans inside
// the visible text that an editor should cover with non-editable icon
// widgets. It is Scan under a name matching its use.
func (r *Resolver) DecorateRange(visible string) []Match {
	return r.Scan(visible)
}
