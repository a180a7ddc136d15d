package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// MaxHistory bounds the recipe history; the least-recently-inserted record
// is evicted once it is exceeded.
const MaxHistory = 10

// DateLayout is the dd-mm-yyyy display format recipes are stamped with.
const DateLayout = "02-01-2006"

// LegacySelectionRow is the older array-shaped selection snapshot entry,
// which recorded ingredient names instead of ids.
type LegacySelectionRow struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// SelectionSnapshot is the selection portion of a persisted recipe. Two
// historical shapes exist on disk: the canonical id->quantity map and an
// older array of {name, quantity} rows. The union lives only at this JSON
// boundary; Resolve normalizes to the canonical map before anything else
// touches it.
type SelectionSnapshot struct {
	Quantities Selection
	Legacy     []LegacySelectionRow
}

// Present reports whether the snapshot carried either shape. A missing
// selection key decodes to a non-present snapshot, which import rejects.
func (s SelectionSnapshot) Present() bool {
	return s.Quantities != nil || s.Legacy != nil
}

// Resolve produces the canonical id->quantity map. Legacy rows are
// re-resolved by name against the current catalog, built-ins before
// customs, first match wins; rows whose name no longer resolves are
// dropped.
func (s SelectionSnapshot) Resolve(cat Catalog) Selection {
	if s.Quantities != nil {
		return s.Quantities.Clone()
	}
	out := NewSelection()
	for _, row := range s.Legacy {
		if id, ok := cat.FindByName(row.Name); ok {
			out.SetQuantity(id, row.Quantity)
		}
	}
	return out
}

// MarshalJSON always writes the canonical map shape. Legacy rows survive
// re-serialization untouched so a loaded historical record round-trips.
func (s SelectionSnapshot) MarshalJSON() ([]byte, error) {
	if s.Quantities == nil && s.Legacy != nil {
		return json.Marshal(s.Legacy)
	}
	if s.Quantities == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Quantities)
}

// UnmarshalJSON accepts both historical shapes.
func (s *SelectionSnapshot) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = SelectionSnapshot{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []LegacySelectionRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return err
		}
		if rows == nil {
			rows = []LegacySelectionRow{}
		}
		*s = SelectionSnapshot{Legacy: rows}
		return nil
	}
	var m Selection
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	if m == nil {
		m = NewSelection()
	}
	*s = SelectionSnapshot{Quantities: m}
	return nil
}

// Recipe is a named, timestamped snapshot of the full working cost state.
// Records are immutable after creation; re-saving creates a new record.
type Recipe struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Date       string            `json:"date"`
	TotalCost  float64           `json:"total"`
	Selection  SelectionSnapshot `json:"selection"`
	FuelEvents FuelLedger        `json:"fuel_events"`
	ExtraItems ExtraLedger       `json:"extra_items"`
}

// NewRecipe builds a snapshot record from deep copies of the working state.
func NewRecipe(name string, total float64, sel Selection, fuel FuelLedger, extras ExtraLedger) Recipe {
	return Recipe{
		ID:         NextID(),
		Name:       name,
		Date:       time.Now().Format(DateLayout),
		TotalCost:  total,
		Selection:  SelectionSnapshot{Quantities: sel.Clone()},
		FuelEvents: fuel.Clone(),
		ExtraItems: extras.Clone(),
	}
}

// Clone returns an independent copy of the record.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Selection.Quantities != nil {
		out.Selection.Quantities = r.Selection.Quantities.Clone()
	}
	if r.Selection.Legacy != nil {
		out.Selection.Legacy = append([]LegacySelectionRow(nil), r.Selection.Legacy...)
	}
	out.FuelEvents = r.FuelEvents.Clone()
	if r.ExtraItems != nil {
		out.ExtraItems = r.ExtraItems.Clone()
	}
	return out
}

// DecodeRecipe deserializes and validates a single-recipe interchange
// document. The blob must carry at minimum a non-empty name, a positive
// total, and a selection object; anything else is a FormatError.
func DecodeRecipe(data []byte) (Recipe, error) {
	var rec Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return Recipe{}, &FormatError{Msg: "file is not a valid recipe document", Err: err}
	}
	if strings.TrimSpace(rec.Name) == "" {
		return Recipe{}, Formatf("recipe document is missing a name")
	}
	if rec.TotalCost <= 0 {
		return Recipe{}, Formatf("recipe document is missing a positive total")
	}
	if !rec.Selection.Present() {
		return Recipe{}, Formatf("recipe document is missing its selection")
	}
	if rec.ExtraItems == nil {
		rec.ExtraItems = NewExtraLedger()
	}
	return rec, nil
}

// EncodeRecipe serializes a recipe to the interchange format.
func EncodeRecipe(rec Recipe) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}
