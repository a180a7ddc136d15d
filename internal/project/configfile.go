package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfaundez/bakecalc/internal/model"
)

// ConfigDocument is the full-configuration interchange file: the
// configuration blob plus the custom ingredient list, stamped with the
// export date.
type ConfigDocument struct {
	Config            model.Config                 `json:"config"`
	CustomIngredients []model.IngredientDefinition `json:"custom_ingredients"`
	ProfitMargin      float64                      `json:"profit_margin"`
	ExportDate        string                       `json:"export_date"`
}

// ConfigExportFileName returns the suggested file name for a configuration
// export, e.g. "bakecalc-config-2026-08-29.json".
func ConfigExportFileName(t time.Time) string {
	return fmt.Sprintf("bakecalc-config-%s.json", t.Format("2006-01-02"))
}

// ExportConfigFile writes a configuration document to the given path,
// creating missing parent directories.
func ExportConfigFile(path string, cfg model.Config, customs []model.IngredientDefinition) error {
	doc := ConfigDocument{
		Config:            cfg,
		CustomIngredients: customs,
		ProfitMargin:      cfg.ProfitMargin,
		ExportDate:        time.Now().UTC().Format(time.RFC3339),
	}
	if doc.CustomIngredients == nil {
		doc.CustomIngredients = []model.IngredientDefinition{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// ImportConfigFile reads and validates a configuration document. A
// document without built-in ingredients or a fuel configuration is
// rejected with a FormatError; nothing is applied by this function, the
// caller decides what to do with the returned document.
func ImportConfigFile(path string) (ConfigDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigDocument{}, fmt.Errorf("failed to read configuration file: %w", err)
	}
	var doc ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ConfigDocument{}, &model.FormatError{Msg: "file is not a valid configuration document", Err: err}
	}
	if len(doc.Config.BuiltIns) == 0 {
		return ConfigDocument{}, model.Formatf("configuration document has no ingredients")
	}
	if doc.Config.Fuel == (model.FuelConfig{}) {
		return ConfigDocument{}, model.Formatf("configuration document has no fuel configuration")
	}
	if doc.CustomIngredients == nil {
		doc.CustomIngredients = []model.IngredientDefinition{}
	}
	doc.Config.Normalize()
	if doc.ProfitMargin > 0 {
		doc.Config.ProfitMargin = doc.ProfitMargin
	}
	return doc, nil
}
