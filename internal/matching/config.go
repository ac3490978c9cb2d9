package matching

// Default thresholds and bounds for one matching round. They mirror the
// product rules: a 10% rent overage and 10% area shortfall are tolerated,
// the landlord sees at most 25 candidates and may pick at most 10.
const (
	DefaultRentTolerance  = 0.10
	DefaultAreaTolerance  = 0.10
	DefaultShortlistSize  = 25
	DefaultSelectionCap   = 10
	DefaultBaseScore      = 60
	DefaultMaxConcurrency = 8
)

// Config carries the tunable thresholds of the ranking engine.
type Config struct {
	// RentTolerance is the allowed fraction above the seeker's budget.
	RentTolerance float64 `mapstructure:"rent-tolerance"`
	// AreaTolerance is the allowed fraction below the seeker's minimum area.
	AreaTolerance float64 `mapstructure:"area-tolerance"`
	// ShortlistSize bounds the ranked output.
	ShortlistSize int `mapstructure:"shortlist-size"`
	// SelectionCap bounds the landlord's confirmed choice.
	SelectionCap int `mapstructure:"selection-cap"`
	// BaseScore is the score granted for passing all hard rules.
	BaseScore int `mapstructure:"base-score"`
	// MaxConcurrency bounds the scoring fan-out.
	MaxConcurrency int `mapstructure:"max-concurrency"`
}

// withDefaults fills unset values so a zero Config behaves like production.
func (c Config) withDefaults() Config {
	if c.RentTolerance <= 0 {
		c.RentTolerance = DefaultRentTolerance
	}
	if c.AreaTolerance <= 0 {
		c.AreaTolerance = DefaultAreaTolerance
	}
	if c.ShortlistSize <= 0 {
		c.ShortlistSize = DefaultShortlistSize
	}
	if c.SelectionCap <= 0 {
		c.SelectionCap = DefaultSelectionCap
	}
	if c.BaseScore <= 0 {
		c.BaseScore = DefaultBaseScore
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	return c
}
