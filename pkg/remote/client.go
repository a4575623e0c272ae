// Package remote is a read-only client for the multi-host icon-set
// service, with host fallback and a bounded in-memory glyph cache.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iconica/core/errors"
	"github.com/iconica/core/logging"
	"github.com/iconica/core/pkg/icon"
)

// Glyph is a parsed vector icon definition from the remote service.
type Glyph struct {
	Prefix string
	Name   string
	// ID is the composite "prefix:name" identifier.
	ID string
	// Body is the raw SVG inner markup. Treat as untrusted; render only
	// through RenderGlyph.
	Body   string
	Width  int
	Height int
}

const defaultViewBox = 24

// Client queries the icon-set service hosts in fixed priority order.
type Client struct {
	hosts []string
	http  *http.Client
	cache *glyphCache
	log   *logrus.Entry
}

// NewClient creates a client for the given host list and cache capacity.
func NewClient(hosts []string, cacheSize int) *Client {
	return &Client{
		hosts: hosts,
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: newGlyphCache(cacheSize),
		log:   logging.NewLogger("remote"),
	}
}

// fetchWithFallback tries each host in order and returns the first
// successful response body. Network errors and non-success statuses both
// advance to the next host.
func (c *Client) fetchWithFallback(ctx context.Context, path string) ([]byte, error) {
	for _, host := range c.hosts {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+path, nil)
		if err != nil {
			continue
		}
		resp, err := c.http.Do(req)
		if err != nil {
			c.log.WithError(err).Debugf("host %s failed, trying next", host)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			c.log.Debugf("host %s returned status %d", host, resp.StatusCode)
			continue
		}
		return body, nil
	}
	return nil, errors.AllHostsFailed(path)
}

type searchResponse struct {
	Icons []string `json:"icons"`
	Total int      `json:"total"`
}

// Search returns glyph ids matching a free-text query. A blank query
// returns no results without contacting the service.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 64
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", fmt.Sprint(limit))

	body, err := c.fetchWithFallback(ctx, "/search?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return parsed.Icons, nil
}

type dataResponse struct {
	Prefix string `json:"prefix"`
	Icons  map[string]struct {
		Body   string `json:"body"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"icons"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	NotFound []string `json:"not_found"`
}

// FetchBatch resolves glyphs for the given composite ids: cache hits are
// returned directly, misses are grouped by set prefix and fetched with one
// request per distinct prefix. Unknown ids are omitted from the result;
// a prefix whose request fails on every host degrades to absence rather
// than an error.
func (c *Client) FetchBatch(ctx context.Context, ids []string) []Glyph {
	if len(ids) == 0 {
		return nil
	}

	grouped := make(map[string][]string)
	for _, id := range ids {
		prefix, name, err := icon.SplitGlyphID(id)
		if err != nil {
			continue
		}
		if _, ok := c.cache.get(id); ok {
			continue
		}
		grouped[prefix] = append(grouped[prefix], name)
	}

	var results []Glyph
	for prefix, names := range grouped {
		path := fmt.Sprintf("/%s.json?icons=%s", prefix, strings.Join(names, ","))
		body, err := c.fetchWithFallback(ctx, path)
		if err != nil {
			c.log.WithError(err).Warnf("glyph fetch failed for set %s", prefix)
			continue
		}

		var parsed dataResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			c.log.WithError(err).Warnf("malformed glyph data for set %s", prefix)
			continue
		}

		for name, data := range parsed.Icons {
			g := Glyph{
				Prefix: prefix,
				Name:   name,
				ID:     icon.GlyphID(prefix, name),
				Body:   data.Body,
				Width:  firstPositive(data.Width, parsed.Width, defaultViewBox),
				Height: firstPositive(data.Height, parsed.Height, defaultViewBox),
			}
			c.cache.put(g)
			results = append(results, g)
		}
	}

	// Include prior cache hits for the requested ids.
	seen := make(map[string]bool, len(results))
	for _, g := range results {
		seen[g.ID] = true
	}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if g, ok := c.cache.get(id); ok {
			results = append(results, g)
			seen[id] = true
		}
	}
	return results
}

// FetchOne resolves a single glyph from cache or the service.
func (c *Client) FetchOne(ctx context.Context, id string) (Glyph, bool) {
	if g, ok := c.cache.get(id); ok {
		return g, true
	}
	for _, g := range c.FetchBatch(ctx, []string{id}) {
		if g.ID == id {
			return g, true
		}
	}
	return Glyph{}, false
}

type collectionResponse struct {
	Uncategorized []string            `json:"uncategorized"`
	Categories    map[string][]string `json:"categories"`
}

// RandomGlyph picks a random glyph id from one of the preferred sets.
func (c *Client) RandomGlyph(ctx context.Context, prefixes []string) (string, bool) {
	if len(prefixes) == 0 {
		return "", false
	}
	prefix := prefixes[rand.Intn(len(prefixes))]

	body, err := c.fetchWithFallback(ctx, "/collection?prefix="+url.QueryEscape(prefix))
	if err != nil {
		return "", false
	}

	var parsed collectionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false
	}

	names := parsed.Uncategorized
	if len(names) == 0 {
		for _, list := range parsed.Categories {
			names = list
			break
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return icon.GlyphID(prefix, names[rand.Intn(len(names))]), true
}

// Cached returns a glyph from the cache without contacting the service.
func (c *Client) Cached(id string) (Glyph, bool) {
	return c.cache.get(id)
}

// CacheLen reports the number of cached glyphs.
func (c *Client) CacheLen() int {
	return c.cache.len()
}

// ClearCache empties the glyph cache.
func (c *Client) ClearCache() {
	c.cache.clear()
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
