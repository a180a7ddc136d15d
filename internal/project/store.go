// Package project persists the calculator's state as JSON documents: four
// independently keyed blobs under the config directory, plus the
// configuration and single-recipe interchange files used for export and
// import.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jfaundez/bakecalc/internal/model"
)

// DefaultConfigDir returns the default directory for application state.
// On all platforms this is ~/.bakecalc/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".bakecalc")
}

// Store reads and writes the four state blobs inside one directory. Each
// mutating operation rewrites its blob in full; there is no incremental
// diffing.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// writeBlob marshals v and rewrites the named file, creating missing parent
// directories.
func (s *Store) writeBlob(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0644)
}

// readBlob unmarshals the named file into v. Returns (false, nil) when the
// file does not exist.
func (s *Store) readBlob(name string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// LoadConfig reads the configuration blob. If the file does not exist, it
// returns DefaultConfig with no error.
func (s *Store) LoadConfig() (model.Config, error) {
	var cfg model.Config
	found, err := s.readBlob("config.json", &cfg)
	if err != nil {
		return model.Config{}, err
	}
	if !found {
		return model.DefaultConfig(), nil
	}
	cfg.Normalize()
	return cfg, nil
}

// SaveConfig rewrites the configuration blob.
func (s *Store) SaveConfig(cfg model.Config) error {
	return s.writeBlob("config.json", cfg)
}

// LoadCustomIngredients reads the custom-ingredient blob; a missing file
// yields an empty list.
func (s *Store) LoadCustomIngredients() ([]model.IngredientDefinition, error) {
	var customs []model.IngredientDefinition
	found, err := s.readBlob("custom_ingredients.json", &customs)
	if err != nil {
		return nil, err
	}
	if !found || customs == nil {
		return []model.IngredientDefinition{}, nil
	}
	return customs, nil
}

// SaveCustomIngredients rewrites the custom-ingredient blob.
func (s *Store) SaveCustomIngredients(customs []model.IngredientDefinition) error {
	if customs == nil {
		customs = []model.IngredientDefinition{}
	}
	return s.writeBlob("custom_ingredients.json", customs)
}

// LoadExtraItems reads the extra-item blob; a missing file yields an empty
// ledger.
func (s *Store) LoadExtraItems() (model.ExtraLedger, error) {
	var extras model.ExtraLedger
	found, err := s.readBlob("extra_items.json", &extras)
	if err != nil {
		return nil, err
	}
	if !found || extras == nil {
		return model.NewExtraLedger(), nil
	}
	return extras, nil
}

// SaveExtraItems rewrites the extra-item blob.
func (s *Store) SaveExtraItems(extras model.ExtraLedger) error {
	if extras == nil {
		extras = model.NewExtraLedger()
	}
	return s.writeBlob("extra_items.json", extras)
}

// LoadHistory reads the recipe history blob; a missing file yields an
// empty history.
func (s *Store) LoadHistory() ([]model.Recipe, error) {
	var history []model.Recipe
	found, err := s.readBlob("history.json", &history)
	if err != nil {
		return nil, err
	}
	if !found || history == nil {
		return []model.Recipe{}, nil
	}
	return history, nil
}

// SaveHistory rewrites the recipe history blob.
func (s *Store) SaveHistory(history []model.Recipe) error {
	if history == nil {
		history = []model.Recipe{}
	}
	return s.writeBlob("history.json", history)
}
