package cva

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/meenmo/cvalib/shortrate"
)

var (
	// ErrValidation marks malformed or out-of-range input. The caller can
	// recover by correcting the offending parameter.
	ErrValidation = errors.New("invalid input")

	// ErrComputation marks a numerical failure (NaN/Inf or a degenerate
	// sample) during simulation or valuation. It should not occur for valid
	// input and is never silently coerced to zero.
	ErrComputation = errors.New("computation failed")
)

// SwapContract describes a plain-vanilla fixed-for-floating interest rate
// swap. All valuation is from the fixed-receiver perspective (receive fixed,
// pay floating); the position convention is fixed throughout.
type SwapContract struct {
	Notional      float64 // currency units
	FixedRate     float64 // decimal annual (0.025 == 2.5%)
	MaturityYears float64
}

// Validate reports whether the contract can be priced.
func (c SwapContract) Validate() error {
	if !isFinite(c.Notional) || c.Notional <= 0 {
		return fmt.Errorf("cva: notional must be positive, got %v: %w", c.Notional, ErrValidation)
	}
	if !isFinite(c.FixedRate) {
		return fmt.Errorf("cva: fixed rate must be finite: %w", ErrValidation)
	}
	if !isFinite(c.MaturityYears) || c.MaturityYears < 0 {
		return fmt.Errorf("cva: maturity must be non-negative, got %v: %w", c.MaturityYears, ErrValidation)
	}
	return nil
}

// CreditProfile describes the counterparty's default risk.
type CreditProfile struct {
	Spread   float64 // continuously-compounded hazard rate, decimal (0.015 == 150bp)
	Recovery float64 // recovery rate in [0, 1]
}

// Validate reports whether the credit parameters are usable.
func (p CreditProfile) Validate() error {
	if !isFinite(p.Spread) || p.Spread < 0 {
		return fmt.Errorf("cva: counterparty spread must be non-negative, got %v: %w", p.Spread, ErrValidation)
	}
	if !isFinite(p.Recovery) || p.Recovery < 0 || p.Recovery > 1 {
		return fmt.Errorf("cva: recovery rate must be in [0,1], got %v: %w", p.Recovery, ErrValidation)
	}
	return nil
}

// SimulationConfig controls the Monte Carlo run. The time grid is always
// monthly (shortrate.StepsPerYear); the step count follows from the contract
// maturity.
type SimulationConfig struct {
	NumPaths int
	Seed     uint64

	// RiskFreeRate is the flat rate used to discount the CVA leg. It is a
	// static assumption, not derived from the simulated paths.
	RiskFreeRate float64

	Model shortrate.Params
}

// Validate reports whether the configuration can drive a simulation.
func (c SimulationConfig) Validate() error {
	if c.NumPaths <= 0 {
		return fmt.Errorf("cva: simulation count must be positive, got %d: %w", c.NumPaths, ErrValidation)
	}
	if !isFinite(c.RiskFreeRate) {
		return fmt.Errorf("cva: risk-free rate must be finite: %w", ErrValidation)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("cva: %v: %w", err, ErrValidation)
	}
	return nil
}

// ExposureProfile holds the exposure curves, aligned to the analysis time
// grid. EPE/ENE are means across paths of the positive/negative part of the
// swap value; EPE95/ENE5 are the 95th/5th percentile tails.
type ExposureProfile struct {
	EPE   []float64
	ENE   []float64
	EPE95 []float64
	ENE5  []float64
}

// AnalysisResult is the complete output of one CVA analysis run and the only
// object exposed to presentation surfaces. Matrices are written once by the
// pipeline and must be treated as read-only.
type AnalysisResult struct {
	// TimeGrid has timeSteps+1 points spaced at 1/12 year, starting at 0.
	TimeGrid []float64

	// Rates is the simulated short-rate matrix, [paths x steps+1].
	Rates *mat.Dense

	// Values is the path-wise swap mark-to-market matrix, same shape as Rates,
	// from the fixed-receiver perspective.
	Values *mat.Dense

	Profile ExposureProfile
	CVA     float64

	// Input echoes for report and chart consumers.
	Contract SwapContract
	Credit   CreditProfile
	Config   SimulationConfig
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
