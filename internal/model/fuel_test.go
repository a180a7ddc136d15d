package model

import (
	"math"
	"testing"
)

func TestFuelLedgerAddDerivesConsumptionAndCost(t *testing.T) {
	cfg := DefaultFuelConfig()
	var ledger FuelLedger

	// 1h30 at the 180 °C reference: 0.20 * 1.0 * 1.5 = 0.3 kg,
	// cost = 0.3/15 * 20000 = 400.
	usage, err := ledger.Add(cfg, 1, 30, 180)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if math.Abs(usage.ConsumedKg-0.3) > 1e-9 {
		t.Errorf("expected 0.3 kg consumed, got %g", usage.ConsumedKg)
	}
	if math.Abs(usage.Cost-400) > 1e-9 {
		t.Errorf("expected cost 400, got %g", usage.Cost)
	}
	if usage.ID == 0 {
		t.Error("expected a non-zero id")
	}
	if len(ledger) != 1 {
		t.Fatalf("expected 1 event, got %d", len(ledger))
	}
}

func TestFuelLedgerAddScalesWithTemperature(t *testing.T) {
	cfg := DefaultFuelConfig()
	var ledger FuelLedger

	// 90 °C is half the reference temperature, so half the burn rate.
	usage, err := ledger.Add(cfg, 2, 0, 90)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if math.Abs(usage.ConsumedKg-0.2) > 1e-9 {
		t.Errorf("expected 0.2 kg consumed, got %g", usage.ConsumedKg)
	}
}

func TestFuelLedgerAddValidation(t *testing.T) {
	cfg := DefaultFuelConfig()
	var ledger FuelLedger

	cases := []struct {
		name                  string
		hours, minutes, tempC float64
	}{
		{"zero duration", 0, 0, 180},
		{"negative hours", -1, 0, 180},
		{"negative minutes", 0, -5, 180},
		{"temperature below range", 1, 0, -10},
		{"temperature above range", 1, 0, 301},
	}
	for _, tc := range cases {
		if _, err := ledger.Add(cfg, tc.hours, tc.minutes, tc.tempC); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
	if len(ledger) != 0 {
		t.Errorf("rejected adds must not append events, got %d", len(ledger))
	}
}

func TestFuelLedgerRemoveAndTotals(t *testing.T) {
	cfg := DefaultFuelConfig()
	var ledger FuelLedger

	a, _ := ledger.Add(cfg, 1, 0, 180)
	b, _ := ledger.Add(cfg, 0, 30, 180)

	wantCost := a.Cost + b.Cost
	if math.Abs(ledger.TotalCost()-wantCost) > 1e-9 {
		t.Errorf("expected total cost %g, got %g", wantCost, ledger.TotalCost())
	}
	wantMass := a.ConsumedKg + b.ConsumedKg
	if math.Abs(ledger.TotalMass()-wantMass) > 1e-9 {
		t.Errorf("expected total mass %g, got %g", wantMass, ledger.TotalMass())
	}

	ledger.Remove(a.ID)
	if len(ledger) != 1 || ledger[0].ID != b.ID {
		t.Errorf("expected only event %d to remain", b.ID)
	}
	ledger.Remove(999) // unknown id is a no-op
	if len(ledger) != 1 {
		t.Errorf("unknown id removal must be a no-op, got %d events", len(ledger))
	}
}

func TestFuelUsageImmutableAfterConfigChange(t *testing.T) {
	cfg := DefaultFuelConfig()
	var ledger FuelLedger
	usage, _ := ledger.Add(cfg, 1, 0, 180)

	// New events use the new cylinder, old events keep their derived cost.
	cfg.CylinderPrice = 40000
	if ledger[0].Cost != usage.Cost {
		t.Error("stored event cost must not change with the config")
	}
	newer, _ := ledger.Add(cfg, 1, 0, 180)
	if math.Abs(newer.Cost-2*usage.Cost) > 1e-9 {
		t.Errorf("expected doubled cost for doubled cylinder price, got %g", newer.Cost)
	}
}

func TestFuelConfigValidate(t *testing.T) {
	if err := DefaultFuelConfig().Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
	bad := []FuelConfig{
		{CylinderPrice: 0, CylinderMassKg: 15, BurnRateFactor: 0.2},
		{CylinderPrice: 20000, CylinderMassKg: -1, BurnRateFactor: 0.2},
		{CylinderPrice: 20000, CylinderMassKg: 15, BurnRateFactor: 0},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
