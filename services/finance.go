package services

import "github.com/taller3d/printshop-api/models"

// Financial aggregates for the dashboard header. All of these are pure
// functions over the snapshot: no state, no side effects, and the result
// does not depend on the order of the input.

// TotalSold returns the sum of all order prices
func TotalSold(orders []models.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.TotalPrice
	}
	return total
}

// TotalCollected returns the sum of all deposits already taken
func TotalCollected(orders []models.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Deposit
	}
	return total
}

// Outstanding returns the money still to collect across all orders
func Outstanding(orders []models.Order) float64 {
	return TotalSold(orders) - TotalCollected(orders)
}

// Debt returns the balance left on one order. Negative when the client
// over-paid; that is displayed, not rejected.
func Debt(o models.Order) float64 {
	return o.TotalPrice - o.Deposit
}

// PercentPaid returns the payment progress of one order as a percentage.
// Zero-priced orders report 0. Over-payment can push this past 100; it
// is deliberately not clamped.
func PercentPaid(o models.Order) float64 {
	if o.TotalPrice <= 0 {
		return 0
	}
	return o.Deposit / o.TotalPrice * 100
}
