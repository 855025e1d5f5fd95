// Package cva prices counterparty credit risk on a vanilla interest rate swap
// by Monte Carlo: simulate short-rate paths, revalue the swap along each path,
// reduce to exposure profiles, and integrate expected positive exposure
// against the counterparty's default probabilities.
//
// The pipeline is three stateless transforms chained once per request:
//
//	shortrate.Simulate -> SwapValues -> Exposures -> IntegrateCVA
//
// Analyze runs the whole chain and either returns a complete AnalysisResult
// or an error; no partial results are ever returned.
package cva

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/meenmo/cvalib/shortrate"
)

// TimeSteps returns the number of monthly steps for a maturity in years.
// Fractional months are truncated.
func TimeSteps(maturityYears float64) int {
	return int(maturityYears * shortrate.StepsPerYear)
}

// TimeGrid returns steps+1 year-fraction points spaced at 1/12, starting at 0.
func TimeGrid(steps int) []float64 {
	grid := make([]float64, steps+1)
	for i := range grid {
		grid[i] = float64(i) * shortrate.Dt
	}
	return grid
}

// Analyze runs a full CVA analysis for one swap against one counterparty.
//
// All inputs are validated before any simulation work begins; validation
// failures wrap ErrValidation. Numerical failures in any stage (NaN/Inf in a
// matrix, curve, or the CVA scalar) wrap ErrComputation.
func Analyze(contract SwapContract, credit CreditProfile, cfg SimulationConfig) (*AnalysisResult, error) {
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if err := credit.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := TimeSteps(contract.MaturityYears)
	grid := TimeGrid(steps)

	rates, err := shortrate.Simulate(cfg.Model, cfg.NumPaths, steps, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("cva: simulate: %v: %w", err, ErrValidation)
	}
	if !matFinite(rates) {
		return nil, fmt.Errorf("cva: rate simulation produced NaN/Inf: %w", ErrComputation)
	}

	values := SwapValues(rates, contract)
	if !matFinite(values) {
		return nil, fmt.Errorf("cva: swap revaluation produced NaN/Inf: %w", ErrComputation)
	}

	profile, err := Exposures(values)
	if err != nil {
		return nil, err
	}
	for _, curve := range [][]float64{profile.EPE, profile.ENE, profile.EPE95, profile.ENE5} {
		if !sliceFinite(curve) {
			return nil, fmt.Errorf("cva: exposure aggregation produced NaN/Inf: %w", ErrComputation)
		}
	}

	cvaValue := IntegrateCVA(profile.EPE, grid, credit, cfg.RiskFreeRate)
	if !isFinite(cvaValue) {
		return nil, fmt.Errorf("cva: integration produced NaN/Inf: %w", ErrComputation)
	}

	return &AnalysisResult{
		TimeGrid: grid,
		Rates:    rates,
		Values:   values,
		Profile:  profile,
		CVA:      cvaValue,
		Contract: contract,
		Credit:   credit,
		Config:   cfg,
	}, nil
}

func matFinite(m *mat.Dense) bool {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		if !sliceFinite(m.RawRowView(i)[:cols]) {
			return false
		}
	}
	return true
}

func sliceFinite(xs []float64) bool {
	for _, v := range xs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
