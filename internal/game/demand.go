package game

// Demand returns the number of customers willing to buy at the given price.
// The scenario multiplier scales the price coefficient, and the result is
// clamped at zero before truncating toward zero. Pure: the same inputs
// always produce the same count, so a display estimate and the in-round
// computation agree exactly.
func Demand(baseDemand, coeff, price, multiplier float64) int {
	d := baseDemand + coeff*multiplier*price
	if d < 0 {
		return 0
	}
	return int(d)
}
