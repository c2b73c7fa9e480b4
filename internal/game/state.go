package game

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseUnconfigured Phase = iota
	PhaseActive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the full session record for one running game: cash, inventory,
// the day counter, today's cost and scenario draws, and the round history.
// Owned by exactly one Session and mutated only through it.
type State struct {
	Config         Configuration `json:"config"`
	Cash           float64       `json:"cash"`
	Inventory      int           `json:"inventory"`
	Round          int           `json:"round"`
	ProductionCost int           `json:"production_cost"`
	Scenario       Scenario      `json:"scenario"`
	History        []Record      `json:"history"`
	Phase          Phase         `json:"-"`
}

// Record captures one completed round. Append-only: history entries are
// never reordered or rewritten.
type Record struct {
	Round            int     `json:"round"`
	Scenario         string  `json:"scenario"`
	ProductionCost   int     `json:"production_cost"`
	Produced         int     `json:"produced"`
	Price            float64 `json:"price"`
	Demand           int     `json:"demand"`
	Sales            int     `json:"sales"`
	Revenue          float64 `json:"revenue"`
	Spent            float64 `json:"spent"`
	COGS             float64 `json:"cogs"`
	RoundProfit      float64 `json:"round_profit"`
	CashAfter        float64 `json:"cash_after"`
	InventoryAfter   int     `json:"inventory_after"`
	InventoryValue   float64 `json:"inventory_value"`
	InventoryCost    float64 `json:"inventory_cost"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// Totals are the running sums across all recorded rounds.
type Totals struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalSpent       float64 `json:"total_spent"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// Summary is the end-of-game income statement. TotalValueCreated values
// carried inventory at cost basis, not at the last asking price: realized
// cash profit plus what the unsold toys cost to make.
type Summary struct {
	StartingCash      float64 `json:"starting_cash"`
	FinalCash         float64 `json:"final_cash"`
	CashProfit        float64 `json:"cash_profit"`
	InventoryOnHand   int     `json:"inventory_on_hand"`
	InventoryValue    float64 `json:"inventory_value"`
	InventoryCost     float64 `json:"inventory_cost"`
	TotalValueCreated float64 `json:"total_value_created"`
	Verdict           string  `json:"verdict"`
}
