package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taller3d/printshop-api/config"
	"github.com/taller3d/printshop-api/controllers"
	"github.com/taller3d/printshop-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting print shop dashboard API...")

	cfg := config.Load()

	persistence := buildPersistence(cfg)
	store := services.NewOrderStore(persistence)

	if store.Configured() {
		if err := store.Load(context.Background()); err != nil {
			// The dashboard still serves; it just reports disconnected
			// until a manual reload succeeds
			log.Printf("Initial load failed: %v", err)
		} else {
			log.Printf("Loaded %d orders", len(store.Snapshot()))
		}
	} else {
		log.Println("No persistence backend configured; dashboard runs in read-only 'not configured' mode")
	}

	storage, err := services.NewS3Service(cfg)
	if err != nil {
		log.Printf("File storage unavailable: %v", err)
	} else if storage == nil {
		log.Println("File storage not configured; design-file attachments disabled")
	}

	router := setupRouter(store, storage)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildPersistence picks the backend from configuration: a direct
// database connection wins, then the Supabase REST API, then none at
// all (the degraded "not configured" state).
func buildPersistence(cfg *config.Config) services.Persistence {
	if cfg.HasDatabase() {
		persistence, err := services.NewGormPersistence(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Database connection failed: %v", err)
			return nil
		}
		log.Println("Using direct database persistence")
		return persistence
	}

	if cfg.HasSupabase() {
		persistence, err := services.NewSupabasePersistence(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			log.Printf("Supabase client setup failed: %v", err)
			return nil
		}
		log.Println("Using Supabase REST persistence")
		return persistence
	}

	return nil
}

// setupRouter wires the API routes. Split out from main so tests can
// drive the full router against a fake backend.
func setupRouter(store *services.OrderStore, storage services.FileStorage) *gin.Engine {
	router := gin.Default()

	// The dashboard frontend is served from elsewhere
	router.Use(cors.Default())

	orderController := controllers.NewOrderController(store)
	dashboardController := controllers.NewDashboardController(store)
	uploadController := controllers.NewUploadController(store, storage)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/dashboard", dashboardController.GetDashboard)
		v1.POST("/reload", orderController.Reload)

		v1.GET("/orders", orderController.ListOrders)
		v1.POST("/orders", orderController.CreateOrder)
		v1.PUT("/orders/:id", orderController.UpdateOrder)
		v1.PATCH("/orders/:id/status", orderController.SetOrderStatus)
		v1.POST("/orders/:id/pay", orderController.PayOrder)
		v1.DELETE("/orders/:id", orderController.DeleteOrder)

		v1.POST("/orders/:id/file", uploadController.AttachFile)
		v1.GET("/orders/:id/file", uploadController.GetFile)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Print shop dashboard API is running",
	})
}
