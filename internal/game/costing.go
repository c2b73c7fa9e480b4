package game

// AverageInventoryCost returns the weighted-average production cost across
// every unit ever produced: cumulative spend divided by cumulative units,
// over the recorded history plus the in-progress round's production
// (extraProduced units for extraSpent). When nothing has ever been
// produced the current day's unit cost stands in, so early rounds and the
// division by zero are both covered.
//
// Derived entirely from history; calling it repeatedly within a round
// cannot drift.
func AverageInventoryCost(history []Record, extraProduced int, extraSpent float64, productionCost int) float64 {
	produced := extraProduced
	spent := extraSpent
	for _, r := range history {
		produced += r.Produced
		spent += r.Spent
	}
	if produced == 0 {
		return float64(productionCost)
	}
	return spent / float64(produced)
}
