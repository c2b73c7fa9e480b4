package game

import "errors"

// Configuration validation errors, surfaced before a game starts.
var (
	ErrCostRange    = errors.New("minimum production cost exceeds maximum")
	ErrRounds       = errors.New("number of rounds must be at least 1")
	ErrStartingCash = errors.New("starting cash must not be negative")
	ErrInventory    = errors.New("starting inventory must not be negative")
	ErrCostPositive = errors.New("production costs must be positive")
	ErrBaseDemand   = errors.New("base demand must not be negative")
	ErrMinPrice     = errors.New("minimum price must not be negative")
)

// Configuration holds the knobs for one game. Immutable once a session
// starts.
type Configuration struct {
	Rounds            int     `json:"rounds" yaml:"rounds"`
	StartingCash      float64 `json:"starting_cash" yaml:"starting_cash"`
	StartingInventory int     `json:"starting_inventory" yaml:"starting_inventory"`
	MinCost           int     `json:"min_cost" yaml:"min_cost"`
	MaxCost           int     `json:"max_cost" yaml:"max_cost"`
	BaseDemand        float64 `json:"base_demand" yaml:"base_demand"`
	DemandCoeff       float64 `json:"demand_coeff" yaml:"demand_coeff"`
	MinPrice          float64 `json:"min_price" yaml:"min_price"`
}

// DefaultConfiguration returns the standard five-day game.
func DefaultConfiguration() Configuration {
	return Configuration{
		Rounds:            5,
		StartingCash:      200,
		StartingInventory: 0,
		MinCost:           8,
		MaxCost:           18,
		BaseDemand:        60,
		DemandCoeff:       -2,
		MinPrice:          10,
	}
}

// Validate reports the first configuration problem found, or nil.
func (c Configuration) Validate() error {
	switch {
	case c.Rounds < 1:
		return ErrRounds
	case c.StartingCash < 0:
		return ErrStartingCash
	case c.StartingInventory < 0:
		return ErrInventory
	case c.MinCost < 1 || c.MaxCost < 1:
		return ErrCostPositive
	case c.MinCost > c.MaxCost:
		return ErrCostRange
	case c.BaseDemand < 0:
		return ErrBaseDemand
	case c.MinPrice < 0:
		return ErrMinPrice
	}
	return nil
}
