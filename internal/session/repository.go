package session

import (
	"strings"
	"time"

	"github.com/jfaundez/bakecalc/internal/model"
)

// SaveRecipe snapshots the current working state into a new history record.
// The name must be non-empty and the current grand total non-zero; both are
// user-correctable conditions, not system failures. The new record is
// inserted at the head and the tail is evicted beyond MaxHistory.
func (s *Session) SaveRecipe(name string) (model.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Recipe{}, model.Validationf("enter a name for the recipe")
	}
	if s.summary.GrandTotal == 0 {
		return model.Recipe{}, model.Validationf("there is nothing to save yet")
	}

	rec := model.NewRecipe(name, s.summary.GrandTotal, s.Selection, s.FuelLedger, s.Extras)
	s.insertRecord(rec)
	s.persistHistory()
	return rec, nil
}

// RestoreRecipe replaces the working selection, fuel ledger, and extra
// ledger with deep copies from the record — a complete overwrite, never a
// merge — then recomputes. Legacy name-based selection snapshots are
// resolved against the current catalog. Returns ErrNotFound when the id
// does not match any record.
func (s *Session) RestoreRecipe(id int64) error {
	rec, ok := s.findRecord(id)
	if !ok {
		return model.ErrNotFound
	}
	s.RecipeName = rec.Name
	s.Selection = rec.Selection.Resolve(s.Catalog)
	s.FuelLedger = rec.FuelEvents.Clone()
	if rec.ExtraItems != nil {
		s.Extras = rec.ExtraItems.Clone()
	} else {
		s.Extras = model.NewExtraLedger()
	}
	s.persistExtras()
	s.recompute()
	return nil
}

// DeleteRecipe removes a record from the history. Unknown ids are a no-op.
func (s *Session) DeleteRecipe(id int64) {
	for i, rec := range s.History {
		if rec.ID == id {
			s.History = append(s.History[:i], s.History[i+1:]...)
			s.persistHistory()
			return
		}
	}
}

// ExportRecipe returns an independent copy of a record for serialization.
func (s *Session) ExportRecipe(id int64) (model.Recipe, error) {
	rec, ok := s.findRecord(id)
	if !ok {
		return model.Recipe{}, model.ErrNotFound
	}
	return rec.Clone(), nil
}

// ImportRecipe decodes a single-recipe document and inserts it into the
// history under a fresh id and the current date, so an imported record can
// never collide with an existing one. Malformed documents fail with a
// FormatError and leave the history untouched.
func (s *Session) ImportRecipe(data []byte) (model.Recipe, error) {
	rec, err := model.DecodeRecipe(data)
	if err != nil {
		return model.Recipe{}, err
	}
	rec.ID = model.NextID()
	rec.Date = time.Now().Format(model.DateLayout)
	s.insertRecord(rec)
	s.persistHistory()
	return rec, nil
}

func (s *Session) findRecord(id int64) (model.Recipe, bool) {
	for _, rec := range s.History {
		if rec.ID == id {
			return rec, true
		}
	}
	return model.Recipe{}, false
}

func (s *Session) insertRecord(rec model.Recipe) {
	s.History = append([]model.Recipe{rec}, s.History...)
	if len(s.History) > model.MaxHistory {
		s.History = s.History[:model.MaxHistory]
	}
}
