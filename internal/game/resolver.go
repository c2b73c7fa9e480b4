package game

// ResolveRound applies one day's transaction to st under the given
// scenario: production (cash out, toys in), demand and sales bounded by
// the shelf, revenue, weighted-average COGS, and settlement. It appends
// the Record to the history and advances the round counter.
//
// Inputs are not re-validated here; callers clamp produceQty and price
// before invoking (see Session.ResolveRound). Sales never exceed
// inventory, so inventory stays non-negative by construction.
func ResolveRound(st *State, produceQty int, price float64, sc Scenario) Record {
	// Production: cash out, toys in.
	spent := float64(produceQty * st.ProductionCost)
	st.Cash -= spent
	st.Inventory += produceQty

	// Sales, bounded by what is on the shelf.
	demand := Demand(st.Config.BaseDemand, st.Config.DemandCoeff, price, sc.Multiplier)
	sales := demand
	if sales > st.Inventory {
		sales = st.Inventory
	}
	revenue := float64(sales) * price

	// Cost the sold units at the weighted average including today's batch.
	avgCost := AverageInventoryCost(st.History, produceQty, spent, st.ProductionCost)
	cogs := float64(sales) * avgCost

	st.Cash += revenue
	st.Inventory -= sales

	roundProfit := revenue - cogs
	cumulative := roundProfit
	for _, r := range st.History {
		cumulative += r.RoundProfit
	}

	rec := Record{
		Round:            st.Round,
		Scenario:         sc.Name,
		ProductionCost:   st.ProductionCost,
		Produced:         produceQty,
		Price:            price,
		Demand:           demand,
		Sales:            sales,
		Revenue:          revenue,
		Spent:            spent,
		COGS:             cogs,
		RoundProfit:      roundProfit,
		CashAfter:        st.Cash,
		InventoryAfter:   st.Inventory,
		InventoryValue:   float64(st.Inventory) * price,
		InventoryCost:    float64(st.Inventory) * avgCost,
		CumulativeProfit: cumulative,
	}
	st.History = append(st.History, rec)
	st.Round++
	return rec
}
