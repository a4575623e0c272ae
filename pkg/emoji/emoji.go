// Package emoji provides a static emoji index built once at startup from a
// bundled dataset, with category grouping, search and shortcode resolution.
package emoji

import (
	_ "embed"
	"encoding/json"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed data/emoji.json
var datasetJSON []byte

// Dataset group ids follow the Unicode CLDR grouping:
// 0 = Smileys & Emotion, 1 = People & Body, 2 = Component,
// 3 = Animals & Nature, 4 = Food & Drink, 5 = Travel & Places,
// 6 = Activities, 7 = Objects, 8 = Symbols, 9 = Flags
var groupCategories = map[int]string{
	0: "smileys-emotion",
	1: "people-body",
	3: "animals-nature",
	4: "food-drink",
	5: "travel-places",
	6: "activities",
	7: "objects",
	8: "symbols",
	9: "flags",
}

const componentGroup = 2

// Entry is one emoji, immutable after the index is built.
type Entry struct {
	Character string
	Label     string
	Tags      []string
	Category  string
	Order     int
}

// Index is the read-only emoji catalog shared by all consumers.
type Index struct {
	all        []Entry
	byCategory map[string][]Entry
	shortcodes map[string]Entry
}

type rawEntry struct {
	Emoji string   `json:"emoji"`
	Label string   `json:"label"`
	Tags  []string `json:"tags"`
	Group *int     `json:"group"`
	Order int      `json:"order"`
}

var (
	defaultIndex *Index
	buildOnce    sync.Once
)

// Default returns the process-wide index, built once from the bundled
// dataset and never mutated afterwards.
func Default() *Index {
	buildOnce.Do(func() {
		defaultIndex = buildIndex(datasetJSON)
	})
	return defaultIndex
}

func buildIndex(data []byte) *Index {
	var raw []rawEntry
	// The dataset ships with the binary; a decode failure is a build
	// defect and surfaces as an empty index rather than a crash.
	_ = json.Unmarshal(data, &raw)

	idx := &Index{
		byCategory: make(map[string][]Entry),
		shortcodes: make(map[string]Entry),
	}

	for _, r := range raw {
		if r.Group == nil || *r.Group == componentGroup || r.Emoji == "" {
			continue
		}
		category, ok := groupCategories[*r.Group]
		if !ok {
			category = "symbols"
		}
		idx.all = append(idx.all, Entry{
			Character: r.Emoji,
			Label:     r.Label,
			Tags:      r.Tags,
			Category:  category,
			Order:     r.Order,
		})
	}

	sort.SliceStable(idx.all, func(i, j int) bool {
		return idx.all[i].Order < idx.all[j].Order
	})

	for _, e := range idx.all {
		idx.byCategory[e.Category] = append(idx.byCategory[e.Category], e)
		if code := NormalizeShortcode(e.Label); code != "" {
			if _, exists := idx.shortcodes[code]; !exists {
				idx.shortcodes[code] = e
			}
		}
	}
	return idx
}

// All returns every entry in dataset display order.
func (idx *Index) All() []Entry {
	return idx.all
}

// ByCategory returns entries grouped by category, preserving display
// order within each group.
func (idx *Index) ByCategory() map[string][]Entry {
	return idx.byCategory
}

// Search matches every whitespace-separated term against label and tags,
// case-insensitively. A blank query returns all entries.
func (idx *Index) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return idx.all
	}
	terms := strings.Fields(q)

	var out []Entry
	for _, e := range idx.all {
		haystack := strings.ToLower(e.Label + " " + strings.Join(e.Tags, " "))
		matched := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

// Random returns a random entry.
func (idx *Index) Random() (Entry, bool) {
	if len(idx.all) == 0 {
		return Entry{}, false
	}
	return idx.all[rand.Intn(len(idx.all))], true
}

var nonWordRe = regexp.MustCompile(`[^\w]`)

// NormalizeShortcode reduces a human label to a shortcode lookup key:
// lowercase, spaces to underscores, non-word characters stripped.
func NormalizeShortcode(label string) string {
	code := strings.ToLower(strings.TrimSpace(label))
	code = strings.Join(strings.Fields(code), "_")
	return nonWordRe.ReplaceAllString(code, "")
}

// Aliases maps common shortcodes to the label-derived key they stand for.
var aliases = map[string]string{
	"smile":    "grinning_face",
	"heart":    "red_heart",
	"thumbsup": "thumbs_up",
	"star":     "star",
	"fire":     "fire",
	"check":    "check_mark",
	"warning":  "warning",
}

// ResolveShortcode resolves a shortcode to an entry, trying the normalized
// code first and the alias table second.
func (idx *Index) ResolveShortcode(code string) (Entry, bool) {
	key := NormalizeShortcode(code)
	if e, ok := idx.shortcodes[key]; ok {
		return e, true
	}
	if aliased, ok := aliases[key]; ok {
		if e, ok := idx.shortcodes[aliased]; ok {
			return e, true
		}
	}
	return Entry{}, false
}
