package shopkeeper

import "fmt"

// Plan is one day's decision: how many toys to make and what to charge.
type Plan struct {
	ProduceQty     int
	Price          float64
	ExpectedDemand int
	Rationale      string
}

// priceProbeSpan is how far above the minimum price the strategy probes.
const priceProbeSpan = 40

// Decide picks today's plan by probing demand estimates at candidate
// prices and scoring each by expected profit: expected sales at the
// candidate price, minus the production cost of restocking up to that
// demand. estimate is typically Client.Estimate curried with the game ID.
func Decide(view GameView, estimate func(price float64) (Estimate, error)) (Plan, error) {
	best := Plan{Price: view.MinPrice}
	bestScore := -1.0

	for offset := 0; offset <= priceProbeSpan; offset++ {
		price := view.MinPrice + float64(offset)

		est, err := estimate(price)
		if err != nil {
			return Plan{}, fmt.Errorf("estimate at %.0f: %w", price, err)
		}
		if est.ExpectedDemand == 0 {
			// Demand has hit zero; higher prices only get worse.
			break
		}

		// Restock up to expected demand, bounded by what cash allows.
		qty := est.ExpectedDemand - view.Inventory
		if qty < 0 {
			qty = 0
		}
		if qty > view.MaxProduce {
			qty = view.MaxProduce
		}

		sellable := est.ExpectedDemand
		if stock := view.Inventory + qty; sellable > stock {
			sellable = stock
		}

		score := float64(sellable)*price - float64(qty*view.ProductionCost)
		if score > bestScore {
			bestScore = score
			best = Plan{
				ProduceQty:     qty,
				Price:          price,
				ExpectedDemand: est.ExpectedDemand,
				Rationale: fmt.Sprintf("expect %d buyers at $%.0f, restock %d at $%d/unit",
					est.ExpectedDemand, price, qty, view.ProductionCost),
			}
		}
	}

	if bestScore < 0 {
		// Nothing sells at any probed price. Sit the day out at minimum price.
		best.Rationale = "no demand at any probed price; producing nothing"
	}
	return best, nil
}
