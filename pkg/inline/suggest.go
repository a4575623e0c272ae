package inline

import (
	"strings"

	"github.com/iconica/core/pkg/library"
)

const suggestLimit = 20

// Suggestion is one completion for a partially typed prefixed
// shortcode.
type Suggestion struct {
	Asset library.Asset
	// Replacement is the full shortcode to insert, id-form so it stays
	// stable across renames.
	Replacement string
}

// Suggest completes a partially typed `:<prefix>-` shortcode. partial is
// the text after the prefix separator; a blank partial lists the library
// front. Matching is case-insensitive over asset ids and names, capped
// at a screenful.
func (r *Resolver) Suggest(partial string) []Suggestion {
	needle := strings.ToLower(strings.TrimSpace(partial))

	var out []Suggestion
	for _, a := range r.library.GetAll() {
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.ID), needle) &&
			!strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		out = append(out, Suggestion{
			Asset:       a,
			Replacement: ":" + r.prefix + "-" + a.ID + ":",
		})
		if len(out) == suggestLimit {
			break
		}
	}
	return out
}
