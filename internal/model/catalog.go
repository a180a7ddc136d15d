package model

import (
	"fmt"
	"strings"
)

// IngredientDefinition describes one priced ingredient. UnitPrice is the
// price of ReferenceQty units, so the cost of a chosen quantity scales
// proportionally: cost = quantity / ReferenceQty * UnitPrice.
type IngredientDefinition struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	ReferenceQty float64 `json:"reference_qty"`
	Unit         string  `json:"unit"`
}

// PriceDisplay returns the price/reference label shown next to an
// ingredient, e.g. "$1.500/1000g" or "$2.000/unit".
func (d IngredientDefinition) PriceDisplay() string {
	if d.Unit == "unit" {
		return fmt.Sprintf("%s/unit", FormatCLP(d.UnitPrice))
	}
	return fmt.Sprintf("%s/%g%s", FormatCLP(d.UnitPrice), d.ReferenceQty, d.Unit)
}

// Catalog holds the built-in ingredient set plus user-created custom
// ingredients. Built-ins keep a fixed identity set: their price fields are
// editable but entries are never added or removed. Customs keep insertion
// order.
type Catalog struct {
	BuiltIns []IngredientDefinition `json:"built_ins"`
	Customs  []IngredientDefinition `json:"customs"`
}

// DefaultCatalog returns the built-in ingredient set the application ships
// with. Prices are in Chilean pesos.
func DefaultCatalog() Catalog {
	return Catalog{
		BuiltIns: []IngredientDefinition{
			{ID: "flour", Name: "Flour", UnitPrice: 1500, ReferenceQty: 1000, Unit: "g"},
			{ID: "sugar", Name: "Sugar", UnitPrice: 1200, ReferenceQty: 1000, Unit: "g"},
			{ID: "eggs", Name: "Eggs", UnitPrice: 2000, ReferenceQty: 10, Unit: "unit"},
			{ID: "butter", Name: "Butter", UnitPrice: 3500, ReferenceQty: 500, Unit: "g"},
			{ID: "milk", Name: "Milk", UnitPrice: 1000, ReferenceQty: 1000, Unit: "ml"},
			{ID: "yeast", Name: "Yeast", UnitPrice: 800, ReferenceQty: 100, Unit: "g"},
			{ID: "oil", Name: "Oil", UnitPrice: 2000, ReferenceQty: 1000, Unit: "ml"},
			{ID: "salt", Name: "Salt", UnitPrice: 500, ReferenceQty: 1000, Unit: "g"},
		},
		Customs: []IngredientDefinition{},
	}
}

// Find resolves an ingredient id, searching built-ins before customs.
func (c *Catalog) Find(id string) (IngredientDefinition, bool) {
	for _, d := range c.BuiltIns {
		if d.ID == id {
			return d, true
		}
	}
	for _, d := range c.Customs {
		if d.ID == id {
			return d, true
		}
	}
	return IngredientDefinition{}, false
}

// FindByName returns the id of the first ingredient with the given name,
// built-ins searched before customs. Used when resolving legacy recipe
// snapshots that recorded names instead of ids.
func (c *Catalog) FindByName(name string) (string, bool) {
	for _, d := range c.BuiltIns {
		if d.Name == name {
			return d.ID, true
		}
	}
	for _, d := range c.Customs {
		if d.Name == name {
			return d.ID, true
		}
	}
	return "", false
}

// UpsertBuiltIn overwrites the price fields of an existing built-in entry.
func (c *Catalog) UpsertBuiltIn(id string, unitPrice, referenceQty float64, unit string) error {
	if unitPrice < 0 {
		return Validationf("unit price must not be negative")
	}
	if referenceQty <= 0 {
		return Validationf("reference quantity must be positive")
	}
	if strings.TrimSpace(unit) == "" {
		return Validationf("unit is required")
	}
	for i := range c.BuiltIns {
		if c.BuiltIns[i].ID == id {
			c.BuiltIns[i].UnitPrice = unitPrice
			c.BuiltIns[i].ReferenceQty = referenceQty
			c.BuiltIns[i].Unit = unit
			return nil
		}
	}
	return ErrNotFound
}

// AddCustom creates a new custom ingredient under a fresh session-unique id.
func (c *Catalog) AddCustom(name string, unitPrice, referenceQty float64, unit string) (IngredientDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return IngredientDefinition{}, Validationf("ingredient name is required")
	}
	if unitPrice <= 0 {
		return IngredientDefinition{}, Validationf("unit price must be positive")
	}
	if referenceQty <= 0 {
		return IngredientDefinition{}, Validationf("reference quantity must be positive")
	}
	def := IngredientDefinition{
		ID:           fmt.Sprintf("custom_%d", NextID()),
		Name:         name,
		UnitPrice:    unitPrice,
		ReferenceQty: referenceQty,
		Unit:         unit,
	}
	c.Customs = append(c.Customs, def)
	return def, nil
}

// UpdateCustom overwrites the price fields of an existing custom entry.
func (c *Catalog) UpdateCustom(id string, unitPrice, referenceQty float64, unit string) error {
	if unitPrice <= 0 {
		return Validationf("unit price must be positive")
	}
	if referenceQty <= 0 {
		return Validationf("reference quantity must be positive")
	}
	for i := range c.Customs {
		if c.Customs[i].ID == id {
			c.Customs[i].UnitPrice = unitPrice
			c.Customs[i].ReferenceQty = referenceQty
			c.Customs[i].Unit = unit
			return nil
		}
	}
	return ErrNotFound
}

// RemoveCustom deletes a custom entry. Unknown ids are a no-op.
func (c *Catalog) RemoveCustom(id string) {
	for i := range c.Customs {
		if c.Customs[i].ID == id {
			c.Customs = append(c.Customs[:i], c.Customs[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() Catalog {
	out := Catalog{
		BuiltIns: make([]IngredientDefinition, len(c.BuiltIns)),
		Customs:  make([]IngredientDefinition, len(c.Customs)),
	}
	copy(out.BuiltIns, c.BuiltIns)
	copy(out.Customs, c.Customs)
	return out
}
