package session

import (
	"errors"
	"testing"

	"github.com/jfaundez/bakecalc/internal/model"
)

// memStore keeps the four blobs in memory so tests can inspect exactly
// what the session persisted.
type memStore struct {
	config    *model.Config
	customs   []model.IngredientDefinition
	extras    model.ExtraLedger
	history   []model.Recipe
	saveErr   error
	saveCalls int
}

func (m *memStore) LoadConfig() (model.Config, error) {
	if m.config == nil {
		return model.DefaultConfig(), nil
	}
	return *m.config, nil
}

func (m *memStore) SaveConfig(cfg model.Config) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.config = &cfg
	return nil
}

func (m *memStore) LoadCustomIngredients() ([]model.IngredientDefinition, error) {
	return m.customs, nil
}

func (m *memStore) SaveCustomIngredients(customs []model.IngredientDefinition) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.customs = customs
	return nil
}

func (m *memStore) LoadExtraItems() (model.ExtraLedger, error) {
	return m.extras, nil
}

func (m *memStore) SaveExtraItems(extras model.ExtraLedger) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.extras = extras
	return nil
}

func (m *memStore) LoadHistory() ([]model.Recipe, error) {
	return m.history, nil
}

func (m *memStore) SaveHistory(history []model.Recipe) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.history = history
	return nil
}

type recordingNotifier struct {
	errs []error
}

func (n *recordingNotifier) PersistFailed(err error) {
	n.errs = append(n.errs, err)
}

func newTestSession(t *testing.T) (*Session, *memStore) {
	t.Helper()
	store := &memStore{}
	sess, err := New(store, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return sess, store
}

func TestNewStartsFromDefaults(t *testing.T) {
	sess, _ := newTestSession(t)

	if len(sess.Catalog.BuiltIns) != 8 {
		t.Errorf("expected 8 built-ins, got %d", len(sess.Catalog.BuiltIns))
	}
	if sess.ProfitMargin != model.DefaultProfitMargin {
		t.Errorf("expected default profit margin, got %g", sess.ProfitMargin)
	}
	if sess.FuelConfig != model.DefaultFuelConfig() {
		t.Errorf("unexpected fuel config: %+v", sess.FuelConfig)
	}
	if sess.Summary().GrandTotal != 0 {
		t.Errorf("expected empty summary, got total %g", sess.Summary().GrandTotal)
	}
}

func TestSetIngredientQuantityRecomputes(t *testing.T) {
	sess, _ := newTestSession(t)

	sess.SetIngredientQuantity("flour", 500)
	if got := sess.Summary().GrandTotal; got != 750 {
		t.Errorf("expected total 750, got %g", got)
	}

	sess.SetIngredientQuantity("flour", 0)
	if got := sess.Summary().GrandTotal; got != 0 {
		t.Errorf("deselection must drop the line, got %g", got)
	}
}

func TestUpsertBuiltInPersistsConfigAndReprices(t *testing.T) {
	sess, store := newTestSession(t)
	sess.SetIngredientQuantity("flour", 1000)

	if err := sess.UpsertBuiltIn("flour", 3000, 1000, "g"); err != nil {
		t.Fatalf("UpsertBuiltIn failed: %v", err)
	}
	if got := sess.Summary().GrandTotal; got != 3000 {
		t.Errorf("expected repriced total 3000, got %g", got)
	}
	if store.config == nil {
		t.Fatal("expected config blob to be persisted")
	}
	flour := store.config.BuiltIns[0]
	if flour.UnitPrice != 3000 {
		t.Errorf("persisted config missing price update: %+v", flour)
	}
}

func TestCustomIngredientLifecycle(t *testing.T) {
	sess, store := newTestSession(t)

	def, err := sess.AddCustomIngredient("Chips", 3000, 250, "g")
	if err != nil {
		t.Fatalf("AddCustomIngredient failed: %v", err)
	}
	if len(store.customs) != 1 {
		t.Fatalf("expected customs blob persisted, got %d", len(store.customs))
	}

	sess.SetIngredientQuantity(def.ID, 250)
	if got := sess.Summary().GrandTotal; got != 3000 {
		t.Errorf("expected total 3000, got %g", got)
	}

	// Removing the definition cascades to the selection.
	sess.RemoveCustomIngredient(def.ID)
	if _, ok := sess.Selection[def.ID]; ok {
		t.Error("selection entry must be removed with its definition")
	}
	if got := sess.Summary().GrandTotal; got != 0 {
		t.Errorf("expected total 0 after cascade, got %g", got)
	}
	if len(store.customs) != 0 {
		t.Errorf("expected customs blob emptied, got %d", len(store.customs))
	}
}

func TestFuelUsageLifecycle(t *testing.T) {
	sess, _ := newTestSession(t)

	usage, err := sess.AddFuelUsage(1, 30, 180)
	if err != nil {
		t.Fatalf("AddFuelUsage failed: %v", err)
	}
	if got := sess.Summary().GrandTotal; got != usage.Cost {
		t.Errorf("expected total %g, got %g", usage.Cost, got)
	}

	sess.RemoveFuelUsage(usage.ID)
	if got := sess.Summary().GrandTotal; got != 0 {
		t.Errorf("expected total 0 after removal, got %g", got)
	}
}

func TestSetFuelConfigValidates(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SetFuelConfig(model.FuelConfig{}); err == nil {
		t.Error("expected validation error for zero config")
	}

	cfg := model.FuelConfig{CylinderPrice: 25000, CylinderMassKg: 11, BurnRateFactor: 0.25}
	if err := sess.SetFuelConfig(cfg); err != nil {
		t.Fatalf("SetFuelConfig failed: %v", err)
	}
	if store.config == nil || store.config.Fuel != cfg {
		t.Error("expected new fuel config persisted")
	}
}

func TestExtraItemLifecycle(t *testing.T) {
	sess, store := newTestSession(t)

	item, err := sess.AddExtraItem("Box", 500, 2)
	if err != nil {
		t.Fatalf("AddExtraItem failed: %v", err)
	}
	if got := sess.Summary().GrandTotal; got != 1000 {
		t.Errorf("expected total 1000, got %g", got)
	}

	if err := sess.EditExtraItem(item.ID, "Box", 500, 4); err != nil {
		t.Fatalf("EditExtraItem failed: %v", err)
	}
	if got := sess.Summary().GrandTotal; got != 2000 {
		t.Errorf("expected total 2000 after edit, got %g", got)
	}
	if store.extras[item.ID].Quantity != 4 {
		t.Error("expected edited item persisted")
	}

	sess.RemoveExtraItem(item.ID)
	if got := sess.Summary().GrandTotal; got != 0 {
		t.Errorf("expected total 0 after removal, got %g", got)
	}
}

func TestSetProfitMargin(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.SetIngredientQuantity("flour", 1000)

	if err := sess.SetProfitMargin(3); err != nil {
		t.Fatalf("SetProfitMargin failed: %v", err)
	}
	if got := sess.Summary().SuggestedPrice; got != 4500 {
		t.Errorf("expected suggested price 4500, got %g", got)
	}
	if err := sess.SetProfitMargin(0); err == nil {
		t.Error("expected validation error for zero margin")
	}
	if sess.ProfitMargin != 3 {
		t.Error("rejected margin must leave the old value")
	}
}

func TestResetWorkingStateKeepsConfigAndHistory(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.SetRecipeName("Cake")
	sess.SetIngredientQuantity("flour", 500)
	sess.AddFuelUsage(1, 0, 180)
	sess.AddExtraItem("Box", 500, 1)
	sess.SaveRecipe("Cake")

	sess.ResetWorkingState()

	if sess.RecipeName != "" || len(sess.Selection) != 0 || len(sess.FuelLedger) != 0 || len(sess.Extras) != 0 {
		t.Error("expected an empty working state")
	}
	if len(sess.History) != 1 {
		t.Errorf("history must survive a reset, got %d records", len(sess.History))
	}
	if sess.ProfitMargin != model.DefaultProfitMargin {
		t.Error("profit margin must survive a reset")
	}
}

func TestPersistFailureNotifiesAndKeepsState(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	notifier := &recordingNotifier{}
	sess, err := New(store, notifier)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	item, err := sess.AddExtraItem("Box", 500, 2)
	if err != nil {
		t.Fatalf("AddExtraItem must not fail on persist errors: %v", err)
	}
	if len(notifier.errs) != 1 {
		t.Fatalf("expected 1 persist-failure notice, got %d", len(notifier.errs))
	}
	if _, ok := sess.Extras[item.ID]; !ok {
		t.Error("in-memory state stays authoritative on persist failure")
	}
}
