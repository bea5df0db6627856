package models

import "finsim/internal/config"

// SimulateRequest carries an inline configuration; the shapes mirror the
// YAML config file.
type SimulateRequest struct {
	Config  config.Config   `json:"config"`
	Options SimulateOptions `json:"options"`
}

// SimulateOptions controls what the response includes
type SimulateOptions struct {
	// IncludeRuns adds the per-run rows to the response
	IncludeRuns bool `json:"include_runs"`
}
