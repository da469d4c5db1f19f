package services

import (
	"math"
	"time"

	"github.com/taller3d/printshop-api/models"
)

// UrgencyWindowDays is how close a delivery date has to be before an
// unfinished order is flagged urgent
const UrgencyWindowDays = 2

// FarFutureDays is the sentinel day count for orders with no delivery
// date. It only exists so date sorting can push them past everything
// else; it is never shown to anyone.
const FarFutureDays = math.MaxInt32

// Urgency is the delivery-pressure signal for one order
type Urgency struct {
	IsUrgent      bool
	DaysRemaining int
}

// ClassifyUrgency derives the urgency signal from an order's delivery
// date and status against a reference clock. The clock is truncated to
// its calendar date first, so the time of day never changes the count.
// A Ready order is never urgent, and neither is one without a date.
func ClassifyUrgency(date *models.Date, status models.Status, now time.Time) Urgency {
	if date == nil {
		return Urgency{IsUrgent: false, DaysRemaining: FarFutureDays}
	}
	days := date.DaysUntil(now)
	urgent := status != models.StatusReady && days <= UrgencyWindowDays
	return Urgency{IsUrgent: urgent, DaysRemaining: days}
}
