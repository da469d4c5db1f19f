package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taller3d/printshop-api/models"
)

func TestClassifyUrgency(t *testing.T) {
	now := time.Date(2026, time.June, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     *models.Date
		status   models.Status
		urgent   bool
		days     int
	}{
		{"due today and in process", datePtr(2026, time.June, 10), models.StatusInProcess, true, 0},
		{"due tomorrow", datePtr(2026, time.June, 11), models.StatusReceived, true, 1},
		{"due in two days", datePtr(2026, time.June, 12), models.StatusReceived, true, 2},
		{"due in three days", datePtr(2026, time.June, 13), models.StatusReceived, false, 3},
		{"overdue", datePtr(2026, time.June, 8), models.StatusInProcess, true, -2},
		{"ready is never urgent", datePtr(2026, time.June, 10), models.StatusReady, false, 0},
		{"ready overdue is still not urgent", datePtr(2026, time.June, 1), models.StatusReady, false, -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ClassifyUrgency(tt.date, tt.status, now)
			assert.Equal(t, tt.urgent, u.IsUrgent)
			assert.Equal(t, tt.days, u.DaysRemaining)
		})
	}
}

func TestClassifyUrgencyWithoutDate(t *testing.T) {
	u := ClassifyUrgency(nil, models.StatusReceived, time.Now())
	assert.False(t, u.IsUrgent)
	assert.Equal(t, FarFutureDays, u.DaysRemaining)
}

func TestClassifyUrgencyIgnoresTimeOfDay(t *testing.T) {
	date := datePtr(2026, time.June, 12)

	// The same calendar day must classify identically at 00:01 and 23:59
	morning := time.Date(2026, time.June, 10, 0, 1, 0, 0, time.UTC)
	night := time.Date(2026, time.June, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t,
		ClassifyUrgency(date, models.StatusReceived, morning),
		ClassifyUrgency(date, models.StatusReceived, night))
}
