package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taller3d/printshop-api/models"
	"github.com/taller3d/printshop-api/services"
)

// OrderController serves the order lifecycle endpoints. It holds the
// store as an injected dependency so tests can run it against a fake
// backend.
type OrderController struct {
	store *services.OrderStore
}

// NewOrderController creates the controller over the given store
func NewOrderController(store *services.OrderStore) *OrderController {
	return &OrderController{store: store}
}

// OrderRequest represents the request body for creating or editing an
// order. Price and deposit are the raw text from the form inputs; the
// store coerces them with "parse as a number, default 0 on failure".
type OrderRequest struct {
	Name         string `json:"name"`
	Client       string `json:"client"`
	TotalPrice   string `json:"total_price"`
	Deposit      string `json:"deposit"`
	DeliveryDate string `json:"delivery_date"`
	Description  string `json:"description"`
}

func (r OrderRequest) draft() services.OrderDraft {
	return services.OrderDraft{
		Name:         r.Name,
		Client:       r.Client,
		TotalPrice:   r.TotalPrice,
		Deposit:      r.Deposit,
		DeliveryDate: r.DeliveryDate,
		Description:  r.Description,
	}
}

// OrderView is one order as the dashboard renders it: the stored fields
// plus the derived payment and urgency signals
type OrderView struct {
	models.Order
	Debt        float64 `json:"debt"`
	PercentPaid float64 `json:"percent_paid"`
	IsUrgent    bool    `json:"is_urgent"`
}

func newOrderView(o models.Order, now time.Time) OrderView {
	urgency := services.ClassifyUrgency(o.DeliveryDate, o.Status, now)
	return OrderView{
		Order:       o,
		Debt:        services.Debt(o),
		PercentPaid: services.PercentPaid(o),
		IsUrgent:    urgency.IsUrgent,
	}
}

// ListOrders handles GET /api/v1/orders - the filtered, sorted view of
// the snapshot. The store is reloaded first so the view reflects the
// backend; when that round trip fails the previous snapshot is served
// and the connected flag tells the dashboard to offer a retry.
func (ctl *OrderController) ListOrders(c *gin.Context) {
	if ctl.store.Configured() {
		if err := ctl.store.Load(c.Request.Context()); err != nil {
			log.Printf("Reload before listing failed: %v", err)
		}
	}

	query := services.Query{
		Status: c.DefaultQuery("status", services.StatusFilterAll),
		Search: c.Query("q"),
		Sort:   services.SortKey(c.Query("sort")),
		Dir:    services.SortDir(c.DefaultQuery("dir", string(services.SortAsc))),
	}

	orders := services.ApplyQuery(ctl.store.Snapshot(), query)
	now := time.Now()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders":     views,
			"configured": ctl.store.Configured(),
			"connected":  ctl.store.Connected(),
		},
	})
}

// CreateOrder handles POST /api/v1/orders - takes in a new job
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if err := ctl.store.Create(c.Request.Context(), req.draft()); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    snapshotViews(ctl.store),
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - full-field edit
func (ctl *OrderController) UpdateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if err := ctl.store.Update(c.Request.Context(), c.Param("id"), req.draft()); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshotViews(ctl.store),
	})
}

// SetStatusRequest represents the request body for a status change
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetOrderStatus handles PATCH /api/v1/orders/:id/status - assigns any
// of the three statuses; the forward progression is a UI convention,
// not a rule
func (ctl *OrderController) SetOrderStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
				"details": err.Error(),
			},
		})
		return
	}

	if err := ctl.store.SetStatus(c.Request.Context(), c.Param("id"), models.Status(req.Status)); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshotViews(ctl.store),
	})
}

// PayOrder handles POST /api/v1/orders/:id/pay - settles the balance in
// full by raising the deposit to the total price
func (ctl *OrderController) PayOrder(c *gin.Context) {
	if err := ctl.store.MarkPaid(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshotViews(ctl.store),
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - removes a job. The
// caller must confirm explicitly; without confirm=true nothing reaches
// the backend.
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFIRMATION_REQUIRED",
				"message": "Deleting an order requires confirm=true",
			},
		})
		return
	}

	if err := ctl.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshotViews(ctl.store),
	})
}

// Reload handles POST /api/v1/reload - the header refresh button
func (ctl *OrderController) Reload(c *gin.Context) {
	if err := ctl.store.Load(c.Request.Context()); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshotViews(ctl.store),
	})
}

// snapshotViews renders the current snapshot the way ListOrders does,
// so every mutation response carries the state its trailing reload saw
func snapshotViews(store *services.OrderStore) gin.H {
	now := time.Now()
	snapshot := store.Snapshot()
	views := make([]OrderView, 0, len(snapshot))
	for _, o := range snapshot {
		views = append(views, newOrderView(o, now))
	}
	return gin.H{
		"orders":     views,
		"configured": store.Configured(),
		"connected":  store.Connected(),
	}
}

// respondStoreError maps the store's error taxonomy onto HTTP codes.
// Backend messages pass through verbatim; nothing is retried here.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_CONFIGURED",
				"message": "No persistence backend is configured",
			},
		})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
	case errors.Is(err, services.ErrConnectivity):
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONNECTIVITY_ERROR",
				"message": err.Error(),
			},
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BACKEND_ERROR",
				"message": err.Error(),
			},
		})
	}
}
