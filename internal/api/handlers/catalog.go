package handlers

import (
	"net/http"

	"finsim/internal/api/models"
	"finsim/internal/config"

	"github.com/gin-gonic/gin"
)

// ListModelTypes handles GET /api/v1/models
func ListModelTypes(c *gin.Context) {
	types := []models.ModelTypeInfo{
		{
			Type:        config.TypeJob,
			Kind:        "income",
			Description: "Salary growing by a fixed annual rate",
			Parameters: []models.ParameterInfo{
				{Name: "salary", Type: "float", Description: "Starting annual salary"},
				{Name: "rate", Type: "float", Description: "Annual raise rate", Default: 0.0},
				{Name: "start", Type: "float", Description: "Year the job starts", Default: 0.0},
				{Name: "duration", Type: "float", Description: "Working years; 0 = unbounded", Default: 0.0},
			},
		},
		{
			Type:        config.TypeSpending,
			Kind:        "expense",
			Description: "Recurring spending with linear or exponential drift",
			Parameters: []models.ParameterInfo{
				{Name: "annual", Type: "float", Description: "Starting annual spending"},
				{Name: "rate", Type: "float", Description: "Drift per year", Default: 0.0},
				{Name: "exponential", Type: "bool", Description: "Compound the drift instead of adding it", Default: false},
			},
		},
		{
			Type:        config.TypeCost,
			Kind:        "expense",
			Description: "Fixed total amortized over a window, with optional down payment and closing cost",
			Parameters: []models.ParameterInfo{
				{Name: "total", Type: "float", Description: "Total amount to amortize"},
				{Name: "down", Type: "float", Description: "Down payment at the window start", Default: 0.0},
				{Name: "close", Type: "float", Description: "Closing cost at the window end", Default: 0.0},
				{Name: "start", Type: "float", Description: "Year the cost starts", Default: 0.0},
				{Name: "duration", Type: "float", Description: "Amortization window in years (required)"},
			},
		},
		{
			Type:        config.TypeFixed,
			Kind:        "fund",
			Description: "Account compounding continuously at a fixed annual rate",
			Parameters: []models.ParameterInfo{
				{Name: "amount", Type: "float", Description: "Starting balance"},
				{Name: "rate", Type: "float", Description: "Annual return rate"},
				{Name: "limit", Type: "float", Description: "Annual contribution cap; 0 = unlimited", Default: 0.0},
			},
		},
		{
			Type:        config.TypeMarket,
			Kind:        "fund",
			Description: "Account tracking the historical market series from a randomized starting point",
			Parameters: []models.ParameterInfo{
				{Name: "amount", Type: "float", Description: "Starting balance"},
				{Name: "limit", Type: "float", Description: "Annual contribution cap; 0 = unlimited", Default: 0.0},
			},
		},
	}
	c.JSON(http.StatusOK, gin.H{"models": types})
}
