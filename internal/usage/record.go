// Package usage keeps the log of simulations people ran: one Record per
// calculation, a Store to persist them and the admin-side Filter.
package usage

import (
	"context"
	"time"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
)

// Record is a write-once summary of one simulation
type Record struct {
	ID                string          `json:"id"`
	Timestamp         time.Time       `json:"timestamp"`
	ExpectedPension   decimal.Decimal `json:"expectedPension"`
	Age               int             `json:"age"`
	Gender            domain.Gender   `json:"gender"`
	GrossSalary       decimal.Decimal `json:"grossSalary"`
	IncludedSickLeave bool            `json:"includedSickLeave"`
	AccountBalance    decimal.Decimal `json:"accountBalance"`
	SubAccountBalance decimal.Decimal `json:"subAccountBalance"`
	NominalPension    int64           `json:"nominalPension"`
	RealPension       int64           `json:"realPension"`
	PostalCode        string          `json:"postalCode,omitempty"`
}

// NewRecord builds the log entry for params and the result they produced.
func NewRecord(id string, at time.Time, params domain.SimulationParams, result domain.PensionResult, postalCode string) Record {
	return Record{
		ID:                id,
		Timestamp:         at.UTC(),
		ExpectedPension:   params.ExpectedPension,
		Age:               params.Age,
		Gender:            params.Gender,
		GrossSalary:       params.GrossSalary,
		IncludedSickLeave: params.IncludeSickLeave,
		AccountBalance:    params.AccountBalance,
		SubAccountBalance: params.SubAccountBalance,
		NominalPension:    result.NominalPension,
		RealPension:       result.RealPension,
		PostalCode:        postalCode,
	}
}

// Store persists usage records. Records are append-only.
type Store interface {
	Append(ctx context.Context, rec Record) error
	// List returns every record in insertion order.
	List(ctx context.Context) ([]Record, error)
	Close() error
}
