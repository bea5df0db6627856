package handlers

import (
	"net/http"

	"finsim/internal/api/models"
	"finsim/internal/marketdata"

	"github.com/gin-gonic/gin"
)

// MarketDataHandler serves information about the server's market data file.
type MarketDataHandler struct {
	path string
}

func NewMarketDataHandler(path string) *MarketDataHandler {
	return &MarketDataHandler{path: path}
}

// GetInfo handles GET /api/v1/marketdata
func (h *MarketDataHandler) GetInfo(c *gin.Context) {
	if h.path == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_MARKET_DATA",
				Message: "no market data file configured on this server",
			},
		})
		return
	}

	src, err := marketdata.Shared(h.path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MARKET_DATA_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.MarketDataInfo{
		Path:           h.path,
		Samples:        src.Len(),
		Years:          src.Years(),
		WrapMultiplier: src.WrapMultiplier(),
	})
}
