package handlers

import (
	"math"
	"net/http"

	"finsim/internal/analysis"
	"finsim/internal/api/models"
	"finsim/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct{}

func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg := req.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	portfolio, params, err := cfg.Build()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MARKET_DATA_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	result, err := sim.New(params, portfolio).Run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, buildResponse(result, req.Options.IncludeRuns))
}

func buildResponse(result *sim.Result, includeRuns bool) models.SimulateResponse {
	dist := analysis.Summarize(result.Runs)

	resp := models.SimulateResponse{
		Status: "completed",
		Summary: models.SimulationSummary{
			Runs:             dist.Runs,
			Bankruptcies:     dist.Bankruptcies,
			SolventRate:      dist.SolventRate,
			MeanFinal:        dist.MeanFinal,
			MedianFinal:      dist.MedianFinal,
			P05Final:         dist.P05Final,
			P95Final:         dist.P95Final,
			Retired:          dist.Retired,
			MedianRetirement: optionalFloat(dist.MedianRetirement),
		},
	}

	if includeRuns {
		resp.Runs = make([]models.RunRow, len(result.Runs))
		for i, r := range result.Runs {
			resp.Runs[i] = models.RunRow{
				Run:             r.Run,
				OffsetPercent:   r.OffsetPercent,
				FinalValue:      r.FinalValue,
				Status:          r.Status(),
				RetirementValue: optionalFloat(r.RetirementValue),
			}
		}
	}
	return resp
}

// optionalFloat maps the NaN sentinel to a JSON null.
func optionalFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
