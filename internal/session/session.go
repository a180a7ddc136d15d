// Package session owns the process-wide mutable working state of the
// calculator: the catalog, the current selection, the fuel and extra-item
// ledgers, the profit margin, and the recipe history. Every mutating
// operation runs to completion, rewrites the affected persisted blobs in
// full, and eagerly recomputes the cost summary. Execution is
// single-threaded and run-to-completion; the session carries no locking.
package session

import (
	"strings"
	"time"

	"github.com/jfaundez/bakecalc/internal/model"
)

// Store persists the four independently keyed state blobs. Load methods
// report absence as a default value with a nil error; corruption and I/O
// failures come back as errors and the session falls back to defaults,
// keeping in-memory state authoritative for the rest of the run.
type Store interface {
	LoadConfig() (model.Config, error)
	SaveConfig(model.Config) error
	LoadCustomIngredients() ([]model.IngredientDefinition, error)
	SaveCustomIngredients([]model.IngredientDefinition) error
	LoadExtraItems() (model.ExtraLedger, error)
	SaveExtraItems(model.ExtraLedger) error
	LoadHistory() ([]model.Recipe, error)
	SaveHistory([]model.Recipe) error
}

// Notifier receives non-blocking notices the session cannot act on itself.
type Notifier interface {
	PersistFailed(err error)
}

type noopNotifier struct{}

func (noopNotifier) PersistFailed(error) {}

// Session is the single mutable working set behind the UI.
type Session struct {
	store    Store
	notifier Notifier

	Catalog      model.Catalog
	Selection    model.Selection
	FuelConfig   model.FuelConfig
	FuelLedger   model.FuelLedger
	Extras       model.ExtraLedger
	History      []model.Recipe
	ProfitMargin float64
	RecipeName   string

	summary model.Summary
	pending map[string]func()
}

// New loads persisted state through the store, falling back to built-in
// defaults for any blob that is absent or unreadable. The returned error,
// when non-nil, is informational: the session is always usable.
func New(store Store, notifier Notifier) (*Session, error) {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	s := &Session{
		store:     store,
		notifier:  notifier,
		Selection: model.NewSelection(),
		Extras:    model.NewExtraLedger(),
		pending:   map[string]func(){},
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	cfg, err := store.LoadConfig()
	if err != nil {
		keep(err)
		cfg = model.DefaultConfig()
	}
	cfg.Normalize()
	s.Catalog = model.Catalog{BuiltIns: cfg.BuiltIns, Customs: []model.IngredientDefinition{}}
	s.FuelConfig = cfg.Fuel
	s.ProfitMargin = cfg.ProfitMargin

	customs, err := store.LoadCustomIngredients()
	if err != nil {
		keep(err)
	} else if customs != nil {
		s.Catalog.Customs = customs
	}

	extras, err := store.LoadExtraItems()
	if err != nil {
		keep(err)
	} else if extras != nil {
		s.Extras = extras
	}

	history, err := store.LoadHistory()
	if err != nil {
		keep(err)
	} else if history != nil {
		s.History = history
	}

	s.recompute()
	return s, firstErr
}

// SetNotifier replaces the persistence-failure notifier. Passing nil
// restores the silent default. The UI calls this once it exists, since
// the session is constructed before any window is available.
func (s *Session) SetNotifier(n Notifier) {
	if n == nil {
		n = noopNotifier{}
	}
	s.notifier = n
}

// Summary returns the breakdown computed after the last mutation.
func (s *Session) Summary() model.Summary {
	return s.summary
}

func (s *Session) recompute() {
	s.summary = model.ComputeSummary(s.Catalog, s.Selection, s.FuelLedger, s.Extras, s.ProfitMargin)
}

func (s *Session) persist(err error) {
	if err != nil {
		s.notifier.PersistFailed(err)
	}
}

func (s *Session) persistConfig() {
	s.persist(s.store.SaveConfig(model.Config{
		BuiltIns:     s.Catalog.BuiltIns,
		Fuel:         s.FuelConfig,
		ProfitMargin: s.ProfitMargin,
		LastUpdate:   time.Now().Format("2006-01-02"),
	}))
}

func (s *Session) persistCustoms() {
	s.persist(s.store.SaveCustomIngredients(s.Catalog.Customs))
}

func (s *Session) persistExtras() {
	s.persist(s.store.SaveExtraItems(s.Extras))
}

func (s *Session) persistHistory() {
	s.persist(s.store.SaveHistory(s.History))
}

// ─── Catalog operations ────────────────────────────────────

// UpsertBuiltIn overwrites the price fields of a built-in ingredient.
func (s *Session) UpsertBuiltIn(id string, unitPrice, referenceQty float64, unit string) error {
	if err := s.Catalog.UpsertBuiltIn(id, unitPrice, referenceQty, unit); err != nil {
		return err
	}
	s.persistConfig()
	s.recompute()
	return nil
}

// AddCustomIngredient creates a custom catalog entry.
func (s *Session) AddCustomIngredient(name string, unitPrice, referenceQty float64, unit string) (model.IngredientDefinition, error) {
	def, err := s.Catalog.AddCustom(name, unitPrice, referenceQty, unit)
	if err != nil {
		return model.IngredientDefinition{}, err
	}
	s.persistCustoms()
	s.recompute()
	return def, nil
}

// UpdateCustomIngredient overwrites the price fields of a custom entry.
func (s *Session) UpdateCustomIngredient(id string, unitPrice, referenceQty float64, unit string) error {
	if err := s.Catalog.UpdateCustom(id, unitPrice, referenceQty, unit); err != nil {
		return err
	}
	s.persistCustoms()
	s.recompute()
	return nil
}

// RemoveCustomIngredient deletes a custom entry and cascades the deletion
// to any selection entry referencing it. Unknown ids are a no-op.
func (s *Session) RemoveCustomIngredient(id string) {
	s.Catalog.RemoveCustom(id)
	delete(s.Selection, id)
	s.persistCustoms()
	s.recompute()
}

// ─── Selection operations ──────────────────────────────────

// SetIngredientQuantity applies the single selection rule: positive
// quantities select, everything else deselects.
func (s *Session) SetIngredientQuantity(id string, quantity float64) {
	s.Selection.SetQuantity(id, quantity)
	s.recompute()
}

// ─── Fuel operations ───────────────────────────────────────

// SetFuelConfig replaces the cylinder configuration.
func (s *Session) SetFuelConfig(cfg model.FuelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.FuelConfig = cfg
	s.persistConfig()
	s.recompute()
	return nil
}

// AddFuelUsage records one heating session priced from the current
// cylinder configuration.
func (s *Session) AddFuelUsage(hours, minutes, temperatureC float64) (model.FuelUsage, error) {
	usage, err := s.FuelLedger.Add(s.FuelConfig, hours, minutes, temperatureC)
	if err != nil {
		return model.FuelUsage{}, err
	}
	s.recompute()
	return usage, nil
}

// RemoveFuelUsage deletes one heating event. Unknown ids are a no-op.
func (s *Session) RemoveFuelUsage(id int64) {
	s.FuelLedger.Remove(id)
	s.recompute()
}

// ─── Extra-item operations ─────────────────────────────────

// AddExtraItem stores a new miscellaneous line item.
func (s *Session) AddExtraItem(name string, unitPrice float64, quantity int) (model.ExtraLineItem, error) {
	item, err := s.Extras.Add(name, unitPrice, quantity)
	if err != nil {
		return model.ExtraLineItem{}, err
	}
	s.persistExtras()
	s.recompute()
	return item, nil
}

// EditExtraItem replaces the fields of an existing item in place.
func (s *Session) EditExtraItem(id, name string, unitPrice float64, quantity int) error {
	if err := s.Extras.Edit(id, name, unitPrice, quantity); err != nil {
		return err
	}
	s.persistExtras()
	s.recompute()
	return nil
}

// RemoveExtraItem deletes an item. Unknown ids are a no-op.
func (s *Session) RemoveExtraItem(id string) {
	s.Extras.Remove(id)
	s.persistExtras()
	s.recompute()
}

// ─── Misc working-state operations ─────────────────────────

// SetProfitMargin replaces the sale-price multiplier.
func (s *Session) SetProfitMargin(margin float64) error {
	if margin <= 0 {
		return model.Validationf("profit margin must be positive")
	}
	s.ProfitMargin = margin
	s.persistConfig()
	s.recompute()
	return nil
}

// ApplyImportedConfig replaces the catalog, fuel configuration, and profit
// margin from a validated configuration document, then persists both
// affected blobs.
func (s *Session) ApplyImportedConfig(cfg model.Config, customs []model.IngredientDefinition) error {
	if err := cfg.Fuel.Validate(); err != nil {
		return err
	}
	if cfg.ProfitMargin <= 0 {
		return model.Validationf("profit margin must be positive")
	}
	if customs == nil {
		customs = []model.IngredientDefinition{}
	}
	s.Catalog = model.Catalog{BuiltIns: cfg.BuiltIns, Customs: customs}
	s.FuelConfig = cfg.Fuel
	s.ProfitMargin = cfg.ProfitMargin
	s.persistConfig()
	s.persistCustoms()
	s.recompute()
	return nil
}

// SetRecipeName sets the working recipe name used by the next save.
func (s *Session) SetRecipeName(name string) {
	s.RecipeName = strings.TrimSpace(name)
}

// ResetWorkingState clears the name, selection, and both ledgers to start
// a new recipe. The catalog, configuration, and history are untouched.
func (s *Session) ResetWorkingState() {
	s.RecipeName = ""
	s.Selection.Clear()
	s.FuelLedger = nil
	s.Extras = model.NewExtraLedger()
	s.persistExtras()
	s.recompute()
}
