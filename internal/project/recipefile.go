package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfaundez/bakecalc/internal/model"
)

// RecipeFileName returns the suggested file name for a recipe export, with
// spaces replaced so the name stays filesystem-friendly,
// e.g. "recipe-Chocolate-Cake.json".
func RecipeFileName(name string) string {
	return fmt.Sprintf("recipe-%s.json", strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// WriteRecipeFile serializes one recipe to the given path, creating
// missing parent directories.
func WriteRecipeFile(path string, rec model.Recipe) error {
	data, err := model.EncodeRecipe(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// ReadRecipeFile reads and validates a single-recipe document. The decoded
// record keeps its original id and date; the repository assigns fresh ones
// when it is inserted.
func ReadRecipeFile(path string) (model.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to read recipe file: %w", err)
	}
	return model.DecodeRecipe(data)
}
