package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/stayparse/reservation-import/config"
	"github.com/stayparse/reservation-import/handler"
	"github.com/stayparse/reservation-import/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	sessions := service.NewSessionRegistry()
	importService := service.NewImportService(pdfProcessor, sessions, cfg)

	// Initialize handler layer
	importHandler := handler.NewImportHandler(importService)
	previewHandler := handler.NewPreviewHandler(importService)
	applyHandler := handler.NewApplyHandler(importService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Reservation PDF Import",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		reservations := api.Group("/reservations")
		{
			reservations.POST("/import", importHandler.Import)
			reservations.POST("/preview", previewHandler.Preview)
			reservations.POST("/apply", applyHandler.Apply)
		}
	}

	// Start server
	log.Printf("Starting Reservation PDF Import Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
