// Package shortrate simulates short-term interest rate paths under a
// mean-reverting Gaussian (Vasicek-style) diffusion on a fixed monthly grid.
package shortrate

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// StepsPerYear is the time-step granularity of the simulation grid.
const StepsPerYear = 12

// Dt is the year fraction of a single simulation step.
const Dt = 1.0 / StepsPerYear

// Params defines the short-rate model:
//
//	r(t) = r(t-1) + Kappa*(Theta - r(t-1))*Dt + Volatility*sqrt(Dt)*Z
//
// with Z a standard normal variate, independent across paths and steps.
// Rates are decimals (0.03 == 3%). Negative simulated rates are permitted.
type Params struct {
	InitialRate float64
	Volatility  float64
	Kappa       float64 // mean reversion speed
	Theta       float64 // long-run mean
}

// Validate reports whether the model parameters are usable.
func (p Params) Validate() error {
	if p.Volatility < 0 {
		return fmt.Errorf("shortrate: volatility must be non-negative, got %v", p.Volatility)
	}
	for _, v := range [...]float64{p.InitialRate, p.Volatility, p.Kappa, p.Theta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("shortrate: model parameters must be finite")
		}
	}
	return nil
}

// serialThreshold is the path count below which worker goroutines are not worth
// spawning.
const serialThreshold = 256

// Simulate generates paths independent short-rate trajectories over steps
// monthly intervals and returns them as a [paths x steps+1] matrix. Column 0
// holds the initial rate for every path.
//
// Each path draws from its own random stream derived from seed, so results are
// identical for a given seed regardless of how many workers run the paths.
func Simulate(p Params, paths, steps int, seed uint64) (*mat.Dense, error) {
	if paths <= 0 {
		return nil, fmt.Errorf("shortrate: path count must be positive, got %d", paths)
	}
	if steps < 0 {
		return nil, fmt.Errorf("shortrate: step count must be non-negative, got %d", steps)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rates := mat.NewDense(paths, steps+1, nil)

	if paths < serialThreshold {
		for i := 0; i < paths; i++ {
			simulatePath(p, rates.RawRowView(i), pathSeed(seed, i))
		}
		return rates, nil
	}

	var wg sync.WaitGroup
	wg.Add(paths)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := 0; i < paths; i++ {
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			simulatePath(p, rates.RawRowView(idx), pathSeed(seed, idx))
		}(i)
	}
	wg.Wait()

	return rates, nil
}

// pathSeed derives a per-path stream seed so paths stay independent of worker
// scheduling.
func pathSeed(seed uint64, path int) uint64 {
	return seed ^ (0x9E3779B97F4A7C15 * (uint64(path) + 1))
}

func simulatePath(p Params, row []float64, seed uint64) {
	z := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	sqrtDt := math.Sqrt(Dt)

	row[0] = p.InitialRate
	for t := 1; t < len(row); t++ {
		prev := row[t-1]
		row[t] = prev + p.Kappa*(p.Theta-prev)*Dt + p.Volatility*sqrtDt*z.Rand()
	}
}
