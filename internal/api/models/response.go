package models

// SimulateResponse represents the response from a simulation batch
type SimulateResponse struct {
	Status  string            `json:"status"`
	Summary SimulationSummary `json:"summary"`
	Runs    []RunRow          `json:"runs,omitempty"`
}

// SimulationSummary contains the outcome distribution across all runs
type SimulationSummary struct {
	Runs         int     `json:"runs"`
	Bankruptcies int     `json:"bankruptcies"`
	SolventRate  float64 `json:"solvent_rate"`

	MeanFinal   float64 `json:"mean_final"`
	MedianFinal float64 `json:"median_final"`
	P05Final    float64 `json:"p05_final"`
	P95Final    float64 `json:"p95_final"`

	Retired          int      `json:"retired"`
	MedianRetirement *float64 `json:"median_retirement,omitempty"`
}

// RunRow represents one Monte Carlo run's terminal outcome
type RunRow struct {
	Run           int     `json:"run"`
	OffsetPercent float64 `json:"offset_percent"`
	FinalValue    float64 `json:"final_value"`
	Status        string  `json:"status"` // "bankrupt" or "okay"
	// RetirementValue is null when income never stopped during the run
	RetirementValue *float64 `json:"retirement_value"`
}

// ModelTypeInfo describes a configurable model type
type ModelTypeInfo struct {
	Type        string          `json:"type"`
	Kind        string          `json:"kind"` // "income", "expense", "fund"
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes one model parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "bool"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// MarketDataInfo describes the loaded market data file
type MarketDataInfo struct {
	Path           string  `json:"path"`
	Samples        int     `json:"samples"`
	Years          float64 `json:"years"`
	WrapMultiplier float64 `json:"wrap_multiplier"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
