package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/emerytura/internal/domain"
)

var (
	// ErrUnknownGender is returned when no rules exist for the requested gender.
	ErrUnknownGender = errors.New("unknown gender")
	// ErrInvalidYearRange is returned for working periods the engine refuses to project.
	ErrInvalidYearRange = errors.New("invalid year range")
	// ErrCalculationPanic wraps a runtime fault recovered inside the engine.
	ErrCalculationPanic = errors.New("pension calculation fault")
)

// maxProjectionYears bounds the working period so a corrupted input cannot
// allocate an unbounded wage path. Delayed and extended projections are checked
// too, so a span within MaxExtraYears of the bound fails as a whole. Validated
// input spans at most 105 years.
const maxProjectionYears = 200

// Options tunes a single top-level calculation
type Options struct {
	// SkipDelay omits the delay-benefit search. The years-needed search still
	// runs whenever ExpectedPension is set.
	SkipDelay bool
	// BaseYear is the "current year" used for real values. Zero means the
	// engine clock's year at call time.
	BaseYear int
}

// CalculationEngine projects pension results from simulation parameters.
// It holds no mutable state after construction and is safe for concurrent use.
type CalculationEngine struct {
	Assumptions domain.Assumptions
	Logger      Logger
	Now         func() time.Time
	Debug       bool // Log intermediate figures at debug level
}

// NewCalculationEngine creates an engine with the default assumptions
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithAssumptions(domain.DefaultAssumptions())
}

// NewCalculationEngineWithAssumptions creates an engine with custom constants
func NewCalculationEngineWithAssumptions(assumptions domain.Assumptions) *CalculationEngine {
	return &CalculationEngine{
		Assumptions: assumptions,
		Logger:      NopLogger{},
		Now:         time.Now,
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// CurrentYear returns the calendar year of the engine clock.
func (ce *CalculationEngine) CurrentYear() int {
	if ce.Now == nil {
		return time.Now().Year()
	}
	return ce.Now().Year()
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Calculate runs a full simulation. It never fails: any fault is logged and
// mapped to domain.EmptyPensionResult.
func (ce *CalculationEngine) Calculate(params domain.SimulationParams, opts Options) domain.PensionResult {
	result, err := ce.TryCalculate(params, opts)
	if err != nil {
		ce.logger().Errorf("calculate pension: %v", err)
		return domain.EmptyPensionResult()
	}
	return result
}

// TryCalculate is Calculate with the fault surfaced instead of swallowed.
// On error the returned result is the empty result.
func (ce *CalculationEngine) TryCalculate(params domain.SimulationParams, opts Options) (result domain.PensionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.EmptyPensionResult()
			err = fmt.Errorf("%w: %v", ErrCalculationPanic, r)
		}
	}()

	if err := ce.Assumptions.Validate(); err != nil {
		return domain.EmptyPensionResult(), fmt.Errorf("invalid assumptions: %w", err)
	}

	baseYear := opts.BaseYear
	if baseYear == 0 {
		baseYear = ce.CurrentYear()
	}

	result, err = ce.project(params, baseYear)
	if err != nil {
		return domain.EmptyPensionResult(), err
	}

	if !opts.SkipDelay {
		benefits, err := ce.CalculateDelayBenefits(params, ce.Assumptions.DelayOffsets, baseYear)
		if err != nil {
			return domain.EmptyPensionResult(), fmt.Errorf("delay benefits: %w", err)
		}
		result.DelayBenefits = benefits
	}

	if !params.ExpectedPension.IsZero() {
		years, err := ce.CalculateYearsForExpectedPension(params, params.ExpectedPension, baseYear)
		if err != nil {
			return domain.EmptyPensionResult(), fmt.Errorf("years for expected pension: %w", err)
		}
		result.YearsNeededForExpected = &years
	}

	return result, nil
}

// project is the skip-delay core: a single pass with no searches. The search
// helpers only ever call project, so the recursion depth is fixed at one.
func (ce *CalculationEngine) project(params domain.SimulationParams, baseYear int) (domain.PensionResult, error) {
	rule, ok := ce.Assumptions.Rule(params.Gender)
	if !ok {
		return domain.PensionResult{}, fmt.Errorf("%w: %q", ErrUnknownGender, params.Gender)
	}
	if params.EndYear-params.StartYear >= maxProjectionYears {
		return domain.PensionResult{}, fmt.Errorf("%w: %d-%d spans more than %d years",
			ErrInvalidYearRange, params.StartYear, params.EndYear, maxProjectionYears)
	}

	yearsWorked := params.YearsWorked()
	wages := ce.IndexWages(params.GrossSalary, params.WorkingYears())

	accrual := ce.accrue(wages, params.AccountBalance, params.SubAccountBalance)

	retirementYear := params.EndYear
	months := divisionMonths(rule)
	nominal := ce.annuitize(accrual.total, months)

	result := domain.PensionResult{DelayBenefits: []domain.DelayBenefit{}}

	if params.IncludeSickLeave {
		without := nominal
		with, err := ce.ApplySickLeaveReduction(nominal, params.Gender, yearsWorked)
		if err != nil {
			return domain.PensionResult{}, err
		}
		result.PensionWithoutSickLeave = &without
		result.PensionWithSickLeave = &with
		nominal = with
	}

	finalSalary := params.GrossSalary
	if n := len(wages); n > 0 && !wages[n-1].IsZero() {
		finalSalary = wages[n-1]
	}

	result.NominalPension = nominal
	result.RealPension = ce.CalculateRealPension(nominal, retirementYear, baseYear)
	result.ReplacementRate = CalculateReplacementRate(nominal, finalSalary)
	result.AveragePensionInRetirementYear = ce.AveragePensionForYear(retirementYear, baseYear)
	result.Breakdown = &domain.Breakdown{
		YearsWorked:        yearsWorked,
		RetirementYear:     retirementYear,
		BaseYear:           baseYear,
		RetirementAge:      rule.RetirementAge,
		DivisionMonths:     months,
		Contributions:      accrual.contributions,
		MainAccountShare:   accrual.mainAccount,
		SubAccountShare:    accrual.subAccount,
		TotalCapital:       accrual.total,
		FinalIndexedSalary: finalSalary,
	}

	if ce.Debug {
		ce.logger().Debugf("projection %d-%d (%s): capital=%s months=%d nominal=%d real=%d",
			params.StartYear, params.EndYear, params.Gender, accrual.total.StringFixed(2), months,
			result.NominalPension, result.RealPension)
	}

	return result, nil
}
