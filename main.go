package main

import (
	"log"

	"github.com/Aashish23092/carrier-bill-analyzer/client"
	"github.com/Aashish23092/carrier-bill-analyzer/config"
	"github.com/Aashish23092/carrier-bill-analyzer/handler"
	"github.com/Aashish23092/carrier-bill-analyzer/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize PDF processor and QR encoder
	pdfProcessor := service.NewPDFProcessor()
	qrEncoder := client.NewQREncoder(cfg.QRSize, cfg.QRVersion, cfg.QRMargin)

	// Initialize service layer
	billService, err := service.NewBillService(pdfProcessor, qrEncoder, cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize handler layer
	billHandler := handler.NewBillHandler(billService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Carrier Bill Analyzer",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		bills := api.Group("/bills")
		{
			bills.POST("/analyze", billHandler.Analyze)
			bills.POST("/summary.png", billHandler.SummaryImage)
			bills.POST("/export.csv", billHandler.ExportCSV)
		}
	}

	// Start server
	log.Printf("Starting Carrier Bill Analyzer on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
