// Package library manages the workspace custom icon library: image assets
// on disk plus a JSON catalog describing them.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iconica/core/errors"
)

const (
	// CatalogFile is the catalog filename inside the data directory.
	CatalogFile = "icon-library.json"
	// IconsDir is the asset subdirectory inside the data directory.
	IconsDir = "icons"
	// defaultExt applies to catalog entries created before vector support.
	defaultExt = "png"
)

// Theme selects a light or dark asset variant.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Format distinguishes raster from vector assets.
type Format string

const (
	Raster Format = "raster"
	Vector Format = "vector"
)

// Asset is one catalog entry. An asset either has a single neutral Path or
// a LightPath/DarkPath theme pair, all relative to the data directory.
type Asset struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Path      string   `json:"path,omitempty"`
	LightPath string   `json:"lightPath,omitempty"`
	DarkPath  string   `json:"darkPath,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	Tags      []string `json:"tags,omitempty"`
	// Ext is the asset file extension ("png" or "svg"). Entries written
	// before vector support have no ext and resolve as png.
	Ext string `json:"ext,omitempty"`
}

// Format reports whether the asset is raster or vector.
func (a Asset) Format() Format {
	if strings.EqualFold(a.Ext, "svg") {
		return Vector
	}
	return Raster
}

type catalog struct {
	Icons []Asset `json:"icons"`
}

// Store owns the catalog and asset files under one data directory.
type Store struct {
	dir     string
	catalog catalog
}

// NewStore creates a library store rooted at dir. Call Load before use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) catalogPath() string {
	return filepath.Join(s.dir, CatalogFile)
}

// Load reads the catalog. A missing or malformed catalog is equivalent to
// an empty library and never fails.
func (s *Store) Load() error {
	s.catalog = catalog{Icons: []Asset{}}

	raw, err := os.ReadFile(s.catalogPath())
	if err != nil {
		return nil
	}

	var loaded catalog
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil
	}
	if loaded.Icons != nil {
		s.catalog = loaded
	}
	return nil
}

// Save writes the catalog, propagating write failures.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.LibraryWriteFailed(s.catalogPath(), err)
	}

	data, err := json.MarshalIndent(s.catalog, "", "\t")
	if err != nil {
		return fmt.Errorf("marshal icon library: %w", err)
	}

	if err := os.WriteFile(s.catalogPath(), data, 0644); err != nil {
		return errors.LibraryWriteFailed(s.catalogPath(), err)
	}
	return nil
}

// GetAll returns all catalog entries in stored order.
func (s *Store) GetAll() []Asset {
	return s.catalog.Icons
}

// GetByID returns the entry for id, if present.
func (s *Store) GetByID(id string) (Asset, bool) {
	for _, a := range s.catalog.Icons {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Search filters entries by case-insensitive substring match over name and
// tags. A blank query returns all entries unfiltered, in stored order.
func (s *Store) Search(query string) []Asset {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.catalog.Icons
	}

	var out []Asset
	for _, a := range s.catalog.Icons {
		if strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
			continue
		}
		for _, tag := range a.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Add appends one entry and persists.
func (s *Store) Add(a Asset) error {
	s.catalog.Icons = append(s.catalog.Icons, a)
	return s.Save()
}

// AddBatch appends entries and persists exactly once regardless of batch
// size. An empty batch still persists once for uniform behavior.
func (s *Store) AddBatch(assets []Asset) error {
	s.catalog.Icons = append(s.catalog.Icons, assets...)
	return s.Save()
}

// Remove deletes the entry and its backing files, then persists. File
// deletion is best-effort. Unknown ids are a no-op.
func (s *Store) Remove(id string) error {
	a, ok := s.GetByID(id)
	if !ok {
		return nil
	}

	for _, rel := range a.assetRelPaths() {
		// File may already be gone; that is not an error.
		_ = os.Remove(filepath.Join(s.dir, rel))
	}

	icons := s.catalog.Icons[:0]
	for _, entry := range s.catalog.Icons {
		if entry.ID != id {
			icons = append(icons, entry)
		}
	}
	s.catalog.Icons = icons
	return s.Save()
}

// Rename updates an entry's display name and persists. Unknown ids are a
// no-op.
func (s *Store) Rename(id, newName string) error {
	for i := range s.catalog.Icons {
		if s.catalog.Icons[i].ID == id {
			s.catalog.Icons[i].Name = newName
			return s.Save()
		}
	}
	return nil
}

// assetRelPaths returns the relative file paths backing an asset, deriving
// the default layout when the entry predates explicit paths.
func (a Asset) assetRelPaths() []string {
	var out []string
	if a.Path != "" {
		out = append(out, a.Path)
	}
	if a.LightPath != "" {
		out = append(out, a.LightPath)
	}
	if a.DarkPath != "" {
		out = append(out, a.DarkPath)
	}
	if len(out) == 0 {
		out = append(out, filepath.Join(IconsDir, a.ID+"."+a.ext()))
	}
	return out
}

func (a Asset) ext() string {
	if a.Ext != "" {
		return a.Ext
	}
	return defaultExt
}

// AssetPath returns the absolute file path for an asset, preferring the
// requested theme variant when the asset has one.
func (s *Store) AssetPath(id string, theme Theme) (string, bool) {
	a, ok := s.GetByID(id)
	if !ok {
		return "", false
	}

	rel := a.Path
	switch {
	case theme == Dark && a.DarkPath != "":
		rel = a.DarkPath
	case a.LightPath != "":
		rel = a.LightPath
	}
	if rel == "" {
		rel = filepath.Join(IconsDir, a.ID+"."+a.ext())
	}
	return filepath.Join(s.dir, rel), true
}

// AssetURL returns a displayable resource locator for an asset.
func (s *Store) AssetURL(id string, theme Theme) (string, bool) {
	path, ok := s.AssetPath(id, theme)
	if !ok {
		return "", false
	}
	return "file://" + filepath.ToSlash(path), true
}

// StoreProcessed writes a light/dark asset pair and registers the catalog
// entry in one step. Nothing is persisted unless every file write succeeds,
// and partially written files are cleaned up on failure.
func (s *Store) StoreProcessed(id, name, ext string, lightData, darkData []byte) (Asset, error) {
	iconsDir := filepath.Join(s.dir, IconsDir)
	if err := os.MkdirAll(iconsDir, 0755); err != nil {
		return Asset{}, errors.AssetWriteFailed(iconsDir, err)
	}

	lightRel := filepath.Join(IconsDir, id+"-light."+ext)
	darkRel := filepath.Join(IconsDir, id+"-dark."+ext)

	lightAbs := filepath.Join(s.dir, lightRel)
	if err := os.WriteFile(lightAbs, lightData, 0644); err != nil {
		return Asset{}, errors.AssetWriteFailed(lightAbs, err)
	}
	darkAbs := filepath.Join(s.dir, darkRel)
	if err := os.WriteFile(darkAbs, darkData, 0644); err != nil {
		_ = os.Remove(lightAbs)
		return Asset{}, errors.AssetWriteFailed(darkAbs, err)
	}

	a := Asset{
		ID:        id,
		Name:      name,
		LightPath: lightRel,
		DarkPath:  darkRel,
		CreatedAt: nowMillis(),
		Ext:       ext,
	}
	if err := s.Add(a); err != nil {
		_ = os.Remove(lightAbs)
		_ = os.Remove(darkAbs)
		return Asset{}, err
	}
	return a, nil
}
