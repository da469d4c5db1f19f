package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taller3d/printshop-api/models"
	"github.com/taller3d/printshop-api/services"
)

// DashboardController serves the aggregate metrics shown in the
// dashboard header
type DashboardController struct {
	store *services.OrderStore
}

// NewDashboardController creates the controller over the given store
func NewDashboardController(store *services.OrderStore) *DashboardController {
	return &DashboardController{store: store}
}

// GetDashboard handles GET /api/v1/dashboard - money totals, order
// counts per status and the urgent-order count, all derived from the
// current snapshot
func (ctl *DashboardController) GetDashboard(c *gin.Context) {
	orders := ctl.store.Snapshot()
	now := time.Now()

	counts := gin.H{
		"received":   0,
		"in_process": 0,
		"ready":      0,
	}
	urgent := 0
	for _, o := range orders {
		switch o.Status {
		case models.StatusReceived:
			counts["received"] = counts["received"].(int) + 1
		case models.StatusInProcess:
			counts["in_process"] = counts["in_process"].(int) + 1
		case models.StatusReady:
			counts["ready"] = counts["ready"].(int) + 1
		}
		if services.ClassifyUrgency(o.DeliveryDate, o.Status, now).IsUrgent {
			urgent++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_sold":      services.TotalSold(orders),
			"total_collected": services.TotalCollected(orders),
			"outstanding":     services.Outstanding(orders),
			"order_count":     len(orders),
			"status_counts":   counts,
			"urgent_count":    urgent,
			"configured":      ctl.store.Configured(),
			"connected":       ctl.store.Connected(),
		},
	})
}
