// Package state persists the plugin data document: user settings plus the
// path-to-icon assignment map. Every mutation is written through to disk.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iconica/core/config"
	"github.com/iconica/core/errors"
	"github.com/iconica/core/pkg/icon"
)

// DataFile is the persisted document filename inside the data directory.
const DataFile = "data.json"

// Data is the persisted plugin document.
type Data struct {
	Settings config.Settings     `json:"settings"`
	IconMap  map[string]icon.Ref `json:"iconMap"`
}

// Store owns the plugin data document for one data directory.
type Store struct {
	dir  string
	data Data
}

// NewStore creates a store rooted at dir. Call Load before use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, DataFile)
}

// Load reads the data document. A missing or corrupt file yields defaults
// with an empty icon map; load never fails on bad persisted content.
func (s *Store) Load() error {
	s.data = Data{
		Settings: config.DefaultSettings(),
		IconMap:  make(map[string]icon.Ref),
	}

	raw, err := os.ReadFile(s.path())
	if err != nil {
		return nil
	}

	var loaded Data
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil
	}

	// Merge persisted settings over the defaults so fields added after the
	// document was written keep their default values.
	merged := config.DefaultSettings()
	mergeSettings(&merged, raw)
	s.data.Settings = merged
	if loaded.IconMap != nil {
		s.data.IconMap = loaded.IconMap
	}
	return nil
}

// mergeSettings overlays only the settings keys present in the raw document.
func mergeSettings(dst *config.Settings, raw []byte) {
	var doc struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Settings == nil {
		return
	}
	_ = json.Unmarshal(doc.Settings, dst)
}

// Save writes the document. Write failures are propagated so the UI layer
// can surface them.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.StateWriteFailed(s.path(), err)
	}

	data, err := json.MarshalIndent(s.data, "", "\t")
	if err != nil {
		return fmt.Errorf("marshal plugin data: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return errors.StateWriteFailed(s.path(), err)
	}
	return nil
}

// Settings returns the current settings.
func (s *Store) Settings() config.Settings {
	return s.data.Settings
}

// UpdateSettings replaces the settings, sanitizing the shortcode prefix,
// and persists.
func (s *Store) UpdateSettings(settings config.Settings) error {
	settings.InlineIconPrefix = config.SanitizePrefix(settings.InlineIconPrefix)
	s.data.Settings = settings
	return s.Save()
}

// Icon returns the assignment for a vault path, if any.
func (s *Store) Icon(path string) (icon.Ref, bool) {
	ref, ok := s.data.IconMap[path]
	return ref, ok
}

// IconMap returns a snapshot copy of all assignments.
func (s *Store) IconMap() map[string]icon.Ref {
	out := make(map[string]icon.Ref, len(s.data.IconMap))
	for k, v := range s.data.IconMap {
		out[k] = v
	}
	return out
}

// SetIcon assigns an icon to a vault path and persists.
func (s *Store) SetIcon(path string, ref icon.Ref) error {
	if err := ref.Validate(); err != nil {
		return errors.InvalidReference(ref.Value, err)
	}
	s.data.IconMap[path] = ref
	return s.Save()
}

// RemoveIcon clears the assignment for a path and persists. Removing an
// unassigned path is a no-op that still reports persistence errors.
func (s *Store) RemoveIcon(path string) error {
	delete(s.data.IconMap, path)
	return s.Save()
}

// RenamePath moves an assignment from oldPath to newPath. The old key is
// deleted, never duplicated. No-op when oldPath has no assignment.
func (s *Store) RenamePath(oldPath, newPath string) error {
	ref, ok := s.data.IconMap[oldPath]
	if !ok {
		return nil
	}
	delete(s.data.IconMap, oldPath)
	s.data.IconMap[newPath] = ref
	return s.Save()
}

// DeletePath removes the assignment for a deleted file. No-op when the
// path has no assignment.
func (s *Store) DeletePath(path string) error {
	if _, ok := s.data.IconMap[path]; !ok {
		return nil
	}
	delete(s.data.IconMap, path)
	return s.Save()
}

// RemoveAssetReferences clears every assignment whose value references the
// given library asset id. Used by the cascade removal policy.
func (s *Store) RemoveAssetReferences(id string) error {
	changed := false
	for path, ref := range s.data.IconMap {
		if ref.Kind == icon.Asset && ref.Value == id {
			delete(s.data.IconMap, path)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.Save()
}

// RecentKind selects which recents list AddRecent updates.
type RecentKind string

const (
	RecentEmoji RecentKind = "emoji"
	RecentGlyph RecentKind = "glyph"
)

// AddRecent records a value as most recently used: an existing entry moves
// to the front rather than duplicating, and the oldest entry is evicted
// past capacity.
func (s *Store) AddRecent(kind RecentKind, value string) error {
	list := s.data.Settings.RecentEmojis
	if kind == RecentGlyph {
		list = s.data.Settings.RecentIcons
	}

	for i, v := range list {
		if v == value {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	list = append([]string{value}, list...)
	if len(list) > config.RecentsCapacity {
		list = list[:config.RecentsCapacity]
	}

	if kind == RecentGlyph {
		s.data.Settings.RecentIcons = list
	} else {
		s.data.Settings.RecentEmojis = list
	}
	return s.Save()
}
