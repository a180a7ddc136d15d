package model

// ReferenceTempC is the oven temperature at which the burn rate factor is
// calibrated. Consumption scales linearly with temperature relative to it.
const ReferenceTempC = 180.0

// FuelConfig describes the gas cylinder the oven runs on.
type FuelConfig struct {
	CylinderPrice  float64 `json:"cylinder_price"`
	CylinderMassKg float64 `json:"cylinder_mass_kg"`
	BurnRateFactor float64 `json:"burn_rate_factor"` // kg consumed per hour at ReferenceTempC
}

// DefaultFuelConfig returns the shipped cylinder configuration:
// a 15 kg cylinder at $20.000 burning 0.20 kg/h at 180 °C.
func DefaultFuelConfig() FuelConfig {
	return FuelConfig{
		CylinderPrice:  20000,
		CylinderMassKg: 15,
		BurnRateFactor: 0.20,
	}
}

// Validate checks that all cylinder fields are positive.
func (c FuelConfig) Validate() error {
	if c.CylinderPrice <= 0 {
		return Validationf("cylinder price must be positive")
	}
	if c.CylinderMassKg <= 0 {
		return Validationf("cylinder mass must be positive")
	}
	if c.BurnRateFactor <= 0 {
		return Validationf("burn rate factor must be positive")
	}
	return nil
}

// FuelUsage is one discrete heating session. ConsumedKg and Cost are derived
// at creation time and never change; an event is immutable except for
// deletion.
type FuelUsage struct {
	ID           int64   `json:"id"`
	Hours        float64 `json:"hours"`
	Minutes      float64 `json:"minutes"`
	TemperatureC float64 `json:"temperature_c"`
	ConsumedKg   float64 `json:"consumed_kg"`
	Cost         float64 `json:"cost"`
}

// FuelLedger is the ordered list of heating events. Insertion order is
// chronological; the aggregate cost does not depend on it.
type FuelLedger []FuelUsage

// Add validates the inputs, derives the consumed mass and cost from the
// cylinder config, and appends a new event:
//
//	timeHours  = hours + minutes/60
//	consumedKg = burnRate * (temperature / 180) * timeHours
//	cost       = consumedKg / cylinderMass * cylinderPrice
func (l *FuelLedger) Add(cfg FuelConfig, hours, minutes, temperatureC float64) (FuelUsage, error) {
	if temperatureC < 0 || temperatureC > 300 {
		return FuelUsage{}, Validationf("temperature must be between 0 and 300 °C")
	}
	if hours < 0 || minutes < 0 {
		return FuelUsage{}, Validationf("hours and minutes must not be negative")
	}
	if hours == 0 && minutes == 0 {
		return FuelUsage{}, Validationf("enter at least hours or minutes")
	}

	timeHours := hours + minutes/60
	tempFactor := temperatureC / ReferenceTempC
	consumedKg := cfg.BurnRateFactor * tempFactor * timeHours

	usage := FuelUsage{
		ID:           NextID(),
		Hours:        hours,
		Minutes:      minutes,
		TemperatureC: temperatureC,
		ConsumedKg:   consumedKg,
		Cost:         consumedKg / cfg.CylinderMassKg * cfg.CylinderPrice,
	}
	*l = append(*l, usage)
	return usage, nil
}

// Remove filters out the event with the given id. Unknown ids are a no-op.
func (l *FuelLedger) Remove(id int64) {
	out := (*l)[:0]
	for _, u := range *l {
		if u.ID != id {
			out = append(out, u)
		}
	}
	*l = out
}

// TotalCost sums the cost of all events.
func (l FuelLedger) TotalCost() float64 {
	var total float64
	for _, u := range l {
		total += u.Cost
	}
	return total
}

// TotalMass sums the consumed fuel mass of all events, in kg.
func (l FuelLedger) TotalMass() float64 {
	var total float64
	for _, u := range l {
		total += u.ConsumedKg
	}
	return total
}

// Clone returns an independent copy.
func (l FuelLedger) Clone() FuelLedger {
	out := make(FuelLedger, len(l))
	copy(out, l)
	return out
}
