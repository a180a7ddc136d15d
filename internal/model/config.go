package model

// DefaultProfitMargin is the multiplier applied to total cost when the user
// has not chosen one.
const DefaultProfitMargin = 2.5

// Config is the persisted configuration blob: built-in ingredient prices,
// the fuel cylinder setup, the profit margin, and the date of the last
// mutation that rewrote it.
type Config struct {
	BuiltIns     []IngredientDefinition `json:"built_ins"`
	Fuel         FuelConfig             `json:"fuel"`
	ProfitMargin float64                `json:"profit_margin"`
	LastUpdate   string                 `json:"last_update"`
}

// DefaultConfig returns the configuration the application starts with when
// nothing has been persisted yet.
func DefaultConfig() Config {
	return Config{
		BuiltIns:     DefaultCatalog().BuiltIns,
		Fuel:         DefaultFuelConfig(),
		ProfitMargin: DefaultProfitMargin,
	}
}

// Normalize fills in zero-valued fields from the defaults so a sparse or
// older persisted document still yields a usable configuration.
func (c *Config) Normalize() {
	if len(c.BuiltIns) == 0 {
		c.BuiltIns = DefaultCatalog().BuiltIns
	}
	if c.Fuel == (FuelConfig{}) {
		c.Fuel = DefaultFuelConfig()
	}
	if c.ProfitMargin <= 0 {
		c.ProfitMargin = DefaultProfitMargin
	}
}
