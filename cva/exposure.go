package cva

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/meenmo/cvalib/shortrate"
)

// SwapValues revalues the swap at every (path, time-step) pair of the
// simulated rate matrix and returns the mark-to-market matrix, fixed-receiver
// perspective.
//
// Valuation model:
//   - every remaining cash flow as of step t is discounted flat at the path's
//     current short rate r(p,t), not off a bootstrapped curve
//   - the floating payment for a future period uses the simulated short rate
//     one step before the payment date as the realized reset
//
// The per-path cost is O(steps^2), which is retained deliberately; only the
// path dimension runs on workers.
func SwapValues(rates *mat.Dense, contract SwapContract) *mat.Dense {
	paths, cols := rates.Dims()
	values := mat.NewDense(paths, cols, nil)

	if paths < serialThreshold {
		for p := 0; p < paths; p++ {
			revaluePath(rates.RawRowView(p), values.RawRowView(p), contract)
		}
		return values
	}

	var wg sync.WaitGroup
	wg.Add(paths)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for p := 0; p < paths; p++ {
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			revaluePath(rates.RawRowView(idx), values.RawRowView(idx), contract)
		}(p)
	}
	wg.Wait()

	return values
}

const serialThreshold = 256

func revaluePath(rateRow, valueRow []float64, contract SwapContract) {
	steps := len(rateRow) - 1
	for t := 0; t <= steps; t++ {
		remaining := contract.MaturityYears - float64(t)*shortrate.Dt
		if remaining <= 0 {
			// Matured: no remaining cash flows, value stays zero.
			continue
		}

		fixedPV := 0.0
		floatPV := 0.0
		for future := t + 1; future <= steps; future++ {
			timeToPayment := float64(future-t) * shortrate.Dt
			df := math.Exp(-rateRow[t] * timeToPayment)

			fixedPV += contract.Notional * contract.FixedRate * shortrate.Dt * df
			floatPV += contract.Notional * rateRow[future-1] * shortrate.Dt * df
		}
		valueRow[t] = fixedPV - floatPV
	}
}

// Exposures reduces a swap value matrix to exposure curves, one point per
// time step. For each step the positive/negative parts max(v,0)/min(v,0) are
// taken across paths; EPE/ENE are their means and EPE95/ENE5 their 95th/5th
// percentiles.
func Exposures(values *mat.Dense) (ExposureProfile, error) {
	paths, cols := values.Dims()
	if paths == 0 || cols == 0 {
		return ExposureProfile{}, fmt.Errorf("cva: exposure aggregation on empty value matrix: %w", ErrComputation)
	}

	profile := ExposureProfile{
		EPE:   make([]float64, cols),
		ENE:   make([]float64, cols),
		EPE95: make([]float64, cols),
		ENE5:  make([]float64, cols),
	}

	positive := make([]float64, paths)
	negative := make([]float64, paths)
	for t := 0; t < cols; t++ {
		for p := 0; p < paths; p++ {
			v := values.At(p, t)
			positive[p] = math.Max(v, 0)
			negative[p] = math.Min(v, 0)
		}
		profile.EPE[t] = stat.Mean(positive, nil)
		profile.ENE[t] = stat.Mean(negative, nil)
		profile.EPE95[t] = percentile(positive, 95)
		profile.ENE5[t] = percentile(negative, 5)
	}

	return profile, nil
}

// percentile computes the q-th percentile (0..100) with linear interpolation
// between order statistics: rank = q/100*(n-1), interpolated between the
// bracketing sorted samples. A single-sample slice returns that sample.
//
// The method is fixed for reproducibility; gonum's stat.Quantile kinds use a
// different interpolation convention, so this is implemented directly.
func percentile(xs []float64, q float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
