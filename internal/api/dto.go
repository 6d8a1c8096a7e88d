package api

import (
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/insights"
)

// SimulationRequest is the body of POST /api/simulations.
type SimulationRequest struct {
	domain.SimulationParams
	PostalCode string `json:"postalCode,omitempty"`
}

// SimulationResponse carries the result together with its usage record ID.
type SimulationResponse struct {
	ID     string                `json:"id"`
	Result domain.PensionResult  `json:"result"`
	Group  insights.PensionGroup `json:"group"`
	Fact   string                `json:"fact"`
}

// FactResponse wraps a single fact.
type FactResponse struct {
	Fact string `json:"fact"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
