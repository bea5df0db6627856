package main

import (
	"fmt"
	"log"
	"os"

	"finsim/internal/api/handlers"
	"finsim/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// The market data file is server-side configuration; requests reference
	// it implicitly through market-backed funds.
	marketDataPath := os.Getenv("MARKET_DATA")
	if marketDataPath != "" {
		if _, err := os.Stat(marketDataPath); err != nil {
			log.Printf("Market data file not readable at %s: %v", marketDataPath, err)
		} else {
			log.Printf("Market data file: %s", marketDataPath)
		}
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.Recovery())

	simulateHandler := handlers.NewSimulateHandler()
	marketDataHandler := handlers.NewMarketDataHandler(marketDataPath)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/models", handlers.ListModelTypes)
		api.GET("/marketdata", marketDataHandler.GetInfo)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
