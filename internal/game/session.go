package game

import (
	"fmt"

	"github.com/talgya/toyshop/internal/entropy"
)

// Session owns one running game from start to finish. It is the only
// mutator of its State. Not safe for concurrent use: a game is one player
// taking one turn at a time, and the host serializes access.
//
// Lifecycle: Start → Active(1..n) → Finished. ResolveRound on a finished
// session, or with inputs outside the documented preconditions, is a bug
// in the host and panics rather than degrading into silent clamping.
type Session struct {
	rng   entropy.Source
	state State
}

// Start validates the configuration, draws day one's production cost and
// scenario, and returns an active session. rng may be nil, in which case
// the process-wide crypto source is used.
func Start(cfg Configuration, rng entropy.Source) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	if rng == nil {
		rng = entropy.Default()
	}
	s := &Session{
		rng: rng,
		state: State{
			Config:    cfg,
			Cash:      cfg.StartingCash,
			Inventory: cfg.StartingInventory,
			Round:     1,
			Phase:     PhaseActive,
		},
	}
	s.drawDay()
	return s, nil
}

// drawDay redraws today's unit production cost and demand scenario.
func (s *Session) drawDay() {
	cfg := s.state.Config
	s.state.ProductionCost = entropy.IntBetween(s.rng, cfg.MinCost, cfg.MaxCost)
	s.state.Scenario = Catalog[entropy.PickIndex(s.rng, len(Catalog))]
}

// State returns a copy of the session state. The history slice is cloned
// so callers cannot reach back into the session.
func (s *Session) State() State {
	st := s.state
	st.History = append([]Record(nil), s.state.History...)
	return st
}

// Finished reports whether all rounds have been played.
func (s *Session) Finished() bool { return s.state.Phase == PhaseFinished }

// Reset abandons the game and discards all state. The session returns to
// the unconfigured phase and cannot resolve further rounds.
func (s *Session) Reset() {
	s.state = State{}
}

// MaxProduce returns the largest affordable production quantity today:
// floor(cash / production cost), never negative.
func (s *Session) MaxProduce() int {
	if s.state.ProductionCost <= 0 || s.state.Cash <= 0 {
		return 0
	}
	return int(s.state.Cash) / s.state.ProductionCost
}

// EstimateDemand previews customer demand at a candidate price under
// today's scenario. Read-only, and exactly the computation ResolveRound
// will make for the same price.
func (s *Session) EstimateDemand(price float64) int {
	cfg := s.state.Config
	return Demand(cfg.BaseDemand, cfg.DemandCoeff, price, s.state.Scenario.Multiplier)
}

// AverageCost returns the weighted-average cost of inventory produced so
// far, falling back to today's production cost before anything has been
// produced. Shown to the player alongside the demand estimate.
func (s *Session) AverageCost() float64 {
	return AverageInventoryCost(s.state.History, 0, 0, s.state.ProductionCost)
}

// ResolveRound plays one day: produce, price, sell, settle. produceQty
// must be in [0, MaxProduce()] and price at least the configured minimum;
// the host clamps inputs before calling. Returns the appended Record.
//
// Panics if the session is not active or the preconditions are violated.
func (s *Session) ResolveRound(produceQty int, price float64) Record {
	st := &s.state
	if st.Phase != PhaseActive {
		panic(fmt.Sprintf("game: ResolveRound on %s session", st.Phase))
	}
	if produceQty < 0 || produceQty > s.MaxProduce() {
		panic(fmt.Sprintf("game: produce quantity %d outside [0, %d]", produceQty, s.MaxProduce()))
	}
	if price < st.Config.MinPrice {
		panic(fmt.Sprintf("game: price %.2f below minimum %.2f", price, st.Config.MinPrice))
	}

	rec := ResolveRound(st, produceQty, price, st.Scenario)
	if st.Round > st.Config.Rounds {
		st.Phase = PhaseFinished
	} else {
		s.drawDay()
	}
	return rec
}

// Totals sums revenue, spend, and profit across the recorded history.
func (s *Session) Totals() Totals {
	var t Totals
	for _, r := range s.state.History {
		t.TotalRevenue += r.Revenue
		t.TotalSpent += r.Spent
	}
	if n := len(s.state.History); n > 0 {
		t.CumulativeProfit = s.state.History[n-1].CumulativeProfit
	}
	return t
}

// Summary builds the income statement: realized cash profit, carried
// inventory at both the last asking price and at cost basis, and total
// value created (cash profit plus inventory at cost).
func (s *Session) Summary() Summary {
	st := s.state
	profit := st.Cash - st.Config.StartingCash

	var invValue float64
	if n := len(st.History); n > 0 {
		invValue = float64(st.Inventory) * st.History[n-1].Price
	}
	invCost := float64(st.Inventory) * s.AverageCost()

	verdict := "break even"
	switch {
	case profit > 0:
		verdict = "profit"
	case profit < 0:
		verdict = "loss"
	}

	return Summary{
		StartingCash:      st.Config.StartingCash,
		FinalCash:         st.Cash,
		CashProfit:        profit,
		InventoryOnHand:   st.Inventory,
		InventoryValue:    invValue,
		InventoryCost:     invCost,
		TotalValueCreated: profit + invCost,
		Verdict:           verdict,
	}
}
