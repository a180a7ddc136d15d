package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jfaundez/bakecalc/internal/model"
)

// buildTestRecipe creates a realistic recipe and summary for testing.
func buildTestRecipe() (model.Recipe, model.Summary) {
	sel := model.NewSelection()
	sel.SetQuantity("flour", 500)
	sel.SetQuantity("sugar", 200)

	fuel := model.FuelLedger{{ID: 1, Hours: 1, Minutes: 30, TemperatureC: 180, ConsumedKg: 0.3, Cost: 400}}

	extras := model.NewExtraLedger()
	extras.Add("Box", 500, 2)

	cat := model.DefaultCatalog()
	sum := model.ComputeSummary(cat, sel, fuel, extras, 2.5)
	rec := model.NewRecipe("Chocolate Sponge Cake", sum.GrandTotal, sel, fuel, extras)
	return rec, sum
}

func TestExportCostSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost-sheet.pdf")
	rec, sum := buildTestRecipe()

	if err := ExportCostSheet(path, rec, sum); err != nil {
		t.Fatalf("ExportCostSheet failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected PDF on disk: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PDF")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("output does not look like a PDF")
	}
}

func TestExportCostSheetRejectsEmptySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	rec, _ := buildTestRecipe()

	if err := ExportCostSheet(path, rec, model.Summary{}); err == nil {
		t.Error("expected error for a summary with no line items")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty summary")
	}
}

func TestExportCostSheetLegacyRecipe(t *testing.T) {
	// A restored legacy record carries name-based selection rows; the QR
	// payload must still serialize.
	path := filepath.Join(t.TempDir(), "legacy.pdf")
	rec := model.Recipe{
		ID:        42,
		Name:      "Old cake",
		Date:      "01-02-2020",
		TotalCost: 1000,
		Selection: model.SelectionSnapshot{Legacy: []model.LegacySelectionRow{{Name: "Flour", Quantity: 500}}},
	}
	sum := model.Summary{
		Items:          []model.LineItem{{Label: "Flour", QuantityDisplay: "500 g", Cost: 750}},
		GrandTotal:     750,
		ProfitMargin:   2.5,
		SuggestedPrice: 1875,
	}

	if err := ExportCostSheet(path, rec, sum); err != nil {
		t.Fatalf("ExportCostSheet failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected PDF on disk: %v", err)
	}
}
