package model

import (
	"strings"
	"testing"
)

func TestDefaultCatalogBuiltIns(t *testing.T) {
	cat := DefaultCatalog()

	if len(cat.BuiltIns) != 8 {
		t.Fatalf("expected 8 built-in ingredients, got %d", len(cat.BuiltIns))
	}
	if cat.Customs == nil {
		t.Error("Customs should be an empty slice, not nil")
	}

	flour, ok := cat.Find("flour")
	if !ok {
		t.Fatal("expected flour in default catalog")
	}
	if flour.UnitPrice != 1500 || flour.ReferenceQty != 1000 || flour.Unit != "g" {
		t.Errorf("unexpected flour definition: %+v", flour)
	}

	eggs, ok := cat.Find("eggs")
	if !ok {
		t.Fatal("expected eggs in default catalog")
	}
	if eggs.Unit != "unit" || eggs.ReferenceQty != 10 {
		t.Errorf("unexpected eggs definition: %+v", eggs)
	}
}

func TestFindSearchesBuiltInsBeforeCustoms(t *testing.T) {
	cat := DefaultCatalog()
	cat.Customs = append(cat.Customs, IngredientDefinition{
		ID: "custom_1", Name: "Flour", UnitPrice: 9999, ReferenceQty: 1, Unit: "g",
	})

	id, ok := cat.FindByName("Flour")
	if !ok {
		t.Fatal("expected Flour to resolve")
	}
	if id != "flour" {
		t.Errorf("expected built-in flour to win, got %s", id)
	}
}

func TestUpsertBuiltIn(t *testing.T) {
	cat := DefaultCatalog()

	if err := cat.UpsertBuiltIn("flour", 1800, 1000, "g"); err != nil {
		t.Fatalf("UpsertBuiltIn failed: %v", err)
	}
	flour, _ := cat.Find("flour")
	if flour.UnitPrice != 1800 {
		t.Errorf("expected updated price 1800, got %g", flour.UnitPrice)
	}

	if err := cat.UpsertBuiltIn("flour", -1, 1000, "g"); err == nil {
		t.Error("expected error for negative price")
	}
	if err := cat.UpsertBuiltIn("flour", 1800, 0, "g"); err == nil {
		t.Error("expected error for zero reference quantity")
	}
	if err := cat.UpsertBuiltIn("flour", 1800, 1000, "  "); err == nil {
		t.Error("expected error for blank unit")
	}
	if err := cat.UpsertBuiltIn("nope", 1800, 1000, "g"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestAddCustomAssignsFreshIDs(t *testing.T) {
	cat := DefaultCatalog()

	a, err := cat.AddCustom("Chocolate chips", 3000, 250, "g")
	if err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}
	b, err := cat.AddCustom("Vanilla extract", 4500, 100, "ml")
	if err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}

	if !strings.HasPrefix(a.ID, "custom_") {
		t.Errorf("expected custom_ prefix, got %s", a.ID)
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both %s", a.ID)
	}
	if len(cat.Customs) != 2 {
		t.Errorf("expected 2 customs, got %d", len(cat.Customs))
	}
	if cat.Customs[0].Name != "Chocolate chips" || cat.Customs[1].Name != "Vanilla extract" {
		t.Error("customs should keep insertion order")
	}
}

func TestAddCustomValidation(t *testing.T) {
	cat := DefaultCatalog()

	if _, err := cat.AddCustom("  ", 3000, 250, "g"); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := cat.AddCustom("Chips", 0, 250, "g"); err == nil {
		t.Error("expected error for zero price")
	}
	if _, err := cat.AddCustom("Chips", 3000, -5, "g"); err == nil {
		t.Error("expected error for negative reference quantity")
	}
	if len(cat.Customs) != 0 {
		t.Errorf("rejected adds must not mutate the catalog, got %d customs", len(cat.Customs))
	}
}

func TestUpdateAndRemoveCustom(t *testing.T) {
	cat := DefaultCatalog()
	def, _ := cat.AddCustom("Chips", 3000, 250, "g")

	if err := cat.UpdateCustom(def.ID, 3500, 250, "g"); err != nil {
		t.Fatalf("UpdateCustom failed: %v", err)
	}
	got, _ := cat.Find(def.ID)
	if got.UnitPrice != 3500 {
		t.Errorf("expected updated price 3500, got %g", got.UnitPrice)
	}

	if err := cat.UpdateCustom("missing", 3500, 250, "g"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	cat.RemoveCustom(def.ID)
	if _, ok := cat.Find(def.ID); ok {
		t.Error("expected custom to be gone after RemoveCustom")
	}
	cat.RemoveCustom(def.ID) // no-op on unknown id
}

func TestCatalogCloneIsDeep(t *testing.T) {
	cat := DefaultCatalog()
	cat.AddCustom("Chips", 3000, 250, "g")

	clone := cat.Clone()
	clone.BuiltIns[0].UnitPrice = 1
	clone.Customs[0].UnitPrice = 1

	if cat.BuiltIns[0].UnitPrice == 1 || cat.Customs[0].UnitPrice == 1 {
		t.Error("mutating the clone must not affect the original")
	}
}

func TestPriceDisplay(t *testing.T) {
	flour := IngredientDefinition{UnitPrice: 1500, ReferenceQty: 1000, Unit: "g"}
	if got := flour.PriceDisplay(); got != "$1.500/1000g" {
		t.Errorf("expected $1.500/1000g, got %s", got)
	}
	eggs := IngredientDefinition{UnitPrice: 2000, ReferenceQty: 10, Unit: "unit"}
	if got := eggs.PriceDisplay(); got != "$2.000/unit" {
		t.Errorf("expected $2.000/unit, got %s", got)
	}
}
