// Package picker is the headless selection flow behind the icon picker
// UI: debounced search over the three icon sources, recents recording,
// upload, and a single terminal outcome per session.
package picker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iconica/core/logging"
	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/icon"
	"github.com/iconica/core/pkg/ingest"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/remote"
	"github.com/iconica/core/state"
)

// Action is how a session ended.
type Action string

const (
	ActionSelect Action = "select"
	ActionRemove Action = "remove"
	ActionCancel Action = "cancel"
)

// Outcome is the single terminal result of a session. Ref is set only
// for ActionSelect.
type Outcome struct {
	Action Action
	Path   string
	Ref    icon.Ref
}

// Results is one delivery of search results across the sources.
type Results struct {
	Query  string
	Emoji  []emoji.Entry
	Glyphs []string
	Assets []library.Asset
}

const (
	searchDebounce   = 150 * time.Millisecond
	remoteSearchCap  = 64
	remoteSearchTime = 10 * time.Second
)

// Session drives one pick for one target path. Exactly one of the
// Select/Remove/Cancel calls takes effect; later calls are ignored.
type Session struct {
	mu       sync.Mutex
	path     string
	store    *state.Store
	library  *library.Store
	client   *remote.Client
	emoji    *emoji.Index
	log      *logrus.Entry
	debounce time.Duration
	timer    *time.Timer
	done     bool

	// OnResults receives debounced search results. Delivery happens on a
	// background goroutine once the remote query returns.
	OnResults func(Results)
	// OnDone receives the terminal outcome.
	OnDone func(Outcome)
}

// NewSession opens a picker session for a path.
func NewSession(path string, store *state.Store, lib *library.Store, client *remote.Client, idx *emoji.Index) *Session {
	return &Session{
		path:     path,
		store:    store,
		library:  lib,
		client:   client,
		emoji:    idx,
		log:      logging.NewLogger("picker"),
		debounce: searchDebounce,
	}
}

// Path returns the target path the session was opened for.
func (s *Session) Path() string { return s.path }

// Search schedules a debounced query across all three sources. Rapid
// keystrokes collapse into one lookup; the remote source is only
// contacted after the debounce window closes.
func (s *Session) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.runSearch(query) })
}

func (s *Session) runSearch(query string) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	res := Results{
		Query:  query,
		Emoji:  s.emoji.Search(query),
		Assets: s.library.Search(query),
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteSearchTime)
	defer cancel()
	glyphs, err := s.client.Search(ctx, query, remoteSearchCap)
	if err != nil {
		s.log.WithError(err).Debug("remote search failed")
	}
	res.Glyphs = glyphs

	s.mu.Lock()
	deliver := s.OnResults
	stale := s.done
	s.mu.Unlock()
	if deliver != nil && !stale {
		deliver(res)
	}
}

// SelectEmoji ends the session with an emoji assignment and records it
// in the emoji recents.
func (s *Session) SelectEmoji(character string) (icon.Ref, bool) {
	ref := icon.Ref{Kind: icon.Emoji, Value: character}
	if !s.finish(Outcome{Action: ActionSelect, Path: s.path, Ref: ref}) {
		return icon.Ref{}, false
	}
	if err := s.store.AddRecent(state.RecentEmoji, character); err != nil {
		s.log.WithError(err).Warn("failed to record recent emoji")
	}
	return ref, true
}

// SelectGlyph ends the session with a remote glyph assignment and
// records it in the icon recents.
func (s *Session) SelectGlyph(id string) (icon.Ref, bool) {
	ref := icon.Ref{Kind: icon.Glyph, Value: id}
	if !s.finish(Outcome{Action: ActionSelect, Path: s.path, Ref: ref}) {
		return icon.Ref{}, false
	}
	if err := s.store.AddRecent(state.RecentGlyph, id); err != nil {
		s.log.WithError(err).Warn("failed to record recent glyph")
	}
	return ref, true
}

// SelectAsset ends the session with a library asset assignment.
func (s *Session) SelectAsset(id string) (icon.Ref, bool) {
	if _, ok := s.library.GetByID(id); !ok {
		return icon.Ref{}, false
	}
	ref := icon.Ref{Kind: icon.Asset, Value: id}
	if !s.finish(Outcome{Action: ActionSelect, Path: s.path, Ref: ref}) {
		return icon.Ref{}, false
	}
	return ref, true
}

// RandomEmoji ends the session with a random emoji from the index.
func (s *Session) RandomEmoji() (icon.Ref, bool) {
	e, ok := s.emoji.Random()
	if !ok {
		return icon.Ref{}, false
	}
	return s.SelectEmoji(e.Character)
}

// RandomGlyph ends the session with a random glyph drawn from the
// preferred icon sets. Fails without consuming the session when no
// host can serve the pick.
func (s *Session) RandomGlyph(ctx context.Context) (icon.Ref, bool) {
	id, ok := s.client.RandomGlyph(ctx, s.store.Settings().PreferredPrefixes())
	if !ok {
		return icon.Ref{}, false
	}
	return s.SelectGlyph(id)
}

// Upload ingests an image file into the library and ends the session
// with the new asset selected. Nothing is added to the library when
// processing fails, and the session stays open for another attempt.
func (s *Session) Upload(filename, mimeType string, data []byte) (icon.Ref, error) {
	asset, err := s.ingestToLibrary(filename, mimeType, data)
	if err != nil {
		return icon.Ref{}, err
	}
	ref := icon.Ref{Kind: icon.Asset, Value: asset.ID}
	if !s.finish(Outcome{Action: ActionSelect, Path: s.path, Ref: ref}) {
		return icon.Ref{}, nil
	}
	return ref, nil
}

func (s *Session) ingestToLibrary(filename, mimeType string, data []byte) (library.Asset, error) {
	id := library.NewAssetID()
	name := library.DisplayName(filename)

	if ingest.ClassifyFormat(filename, mimeType) == ingest.Vector {
		vec, err := ingest.IngestVector(data)
		if err != nil {
			return library.Asset{}, err
		}
		return s.library.StoreProcessed(id, name, "svg", vec.Data, vec.Data)
	}

	res, err := ingest.IngestRaster(data, 64)
	if err != nil {
		return library.Asset{}, err
	}
	return s.library.StoreProcessed(id, name, "png", res.LightData, res.DarkData)
}

// Remove ends the session asking for the path's assignment to be
// cleared.
func (s *Session) Remove() bool {
	return s.finish(Outcome{Action: ActionRemove, Path: s.path})
}

// Cancel ends the session with no effect.
func (s *Session) Cancel() bool {
	return s.finish(Outcome{Action: ActionCancel, Path: s.path})
}

func (s *Session) finish(o Outcome) bool {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return false
	}
	s.done = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	deliver := s.OnDone
	s.mu.Unlock()

	if deliver != nil {
		deliver(o)
	}
	return true
}
