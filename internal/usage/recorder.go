package usage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/emerytura/internal/calculation"
	"github.com/rgehrsitz/emerytura/internal/domain"
)

// Recorder runs simulations and logs each one to a Store. A failing store is
// logged and never fails the simulation.
type Recorder struct {
	Engine  *calculation.CalculationEngine
	Options calculation.Options
	Store   Store
	Logger  calculation.Logger
	Now     func() time.Time
	NewID   func() string

	mu      sync.Mutex
	history []domain.SimulationParams
}

// NewRecorder wires a recorder with a wall clock and random UUIDs.
func NewRecorder(engine *calculation.CalculationEngine, store Store) *Recorder {
	return &Recorder{
		Engine: engine,
		Store:  store,
		Logger: calculation.NopLogger{},
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

// Run calculates params, appends the usage record and returns both.
func (r *Recorder) Run(ctx context.Context, params domain.SimulationParams, postalCode string) (domain.PensionResult, Record) {
	result := r.Engine.Calculate(params, r.Options)

	r.mu.Lock()
	r.history = append(r.history, params)
	r.mu.Unlock()

	rec := NewRecord(r.NewID(), r.Now(), params, result, postalCode)
	if r.Store != nil {
		if err := r.Store.Append(ctx, rec); err != nil {
			r.Logger.Warnf("failed to track usage %s: %v", rec.ID, err)
		}
	}
	return result, rec
}

// History returns the parameters of every simulation run by this recorder.
func (r *Recorder) History() []domain.SimulationParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SimulationParams(nil), r.history...)
}
