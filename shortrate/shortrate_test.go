package shortrate_test

import (
	"math"
	"testing"

	"github.com/meenmo/cvalib/shortrate"
)

func TestSimulate_ShapeAndInitialColumn(t *testing.T) {
	t.Parallel()

	p := shortrate.Params{InitialRate: 0.03, Volatility: 0.01, Kappa: 0.1, Theta: 0.03}
	rates, err := shortrate.Simulate(p, 50, 24, 7)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	rows, cols := rates.Dims()
	if rows != 50 || cols != 25 {
		t.Fatalf("shape mismatch: got [%d x %d], want [50 x 25]", rows, cols)
	}
	for i := 0; i < rows; i++ {
		if rates.At(i, 0) != 0.03 {
			t.Fatalf("path %d column 0 = %v, want initial rate 0.03", i, rates.At(i, 0))
		}
	}
}

func TestSimulate_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	p := shortrate.Params{InitialRate: 0.025, Volatility: 0.012, Kappa: 0.15, Theta: 0.03}

	// Cross the worker threshold so parallel generation is exercised too.
	a, err := shortrate.Simulate(p, 300, 60, 42)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	b, err := shortrate.Simulate(p, 300, 60, 42)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if a.At(i, j) != b.At(i, j) {
				t.Fatalf("runs differ at [%d,%d]: %v vs %v", i, j, a.At(i, j), b.At(i, j))
			}
		}
	}

	c, err := shortrate.Simulate(p, 300, 60, 43)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	same := true
	for i := 0; i < rows && same; i++ {
		for j := 1; j < cols; j++ {
			if a.At(i, j) != c.At(i, j) {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical paths")
	}
}

func TestSimulate_ZeroVolatilityFollowsMeanReversion(t *testing.T) {
	t.Parallel()

	p := shortrate.Params{InitialRate: 0.01, Volatility: 0, Kappa: 0.2, Theta: 0.04}
	rates, err := shortrate.Simulate(p, 3, 36, 1)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	want := p.InitialRate
	for t2 := 1; t2 <= 36; t2++ {
		want = want + p.Kappa*(p.Theta-want)*shortrate.Dt
		for i := 0; i < 3; i++ {
			if math.Abs(rates.At(i, t2)-want) > 1e-15 {
				t.Fatalf("path %d step %d = %.18f, want %.18f", i, t2, rates.At(i, t2), want)
			}
		}
	}

	// The deterministic path pulls toward the long-run mean.
	if rates.At(0, 36) <= p.InitialRate || rates.At(0, 36) >= p.Theta {
		t.Fatalf("rate at 3y = %v, want strictly between %v and %v", rates.At(0, 36), p.InitialRate, p.Theta)
	}
}

func TestSimulate_ZeroSteps(t *testing.T) {
	t.Parallel()

	p := shortrate.Params{InitialRate: 0.03, Volatility: 0.01, Kappa: 0.1, Theta: 0.03}
	rates, err := shortrate.Simulate(p, 4, 0, 5)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	rows, cols := rates.Dims()
	if rows != 4 || cols != 1 {
		t.Fatalf("shape mismatch: got [%d x %d], want [4 x 1]", rows, cols)
	}
}

func TestSimulate_InvalidInputs(t *testing.T) {
	t.Parallel()

	valid := shortrate.Params{InitialRate: 0.03, Volatility: 0.01, Kappa: 0.1, Theta: 0.03}

	if _, err := shortrate.Simulate(valid, 0, 12, 1); err == nil {
		t.Fatal("expected error for zero paths")
	}
	if _, err := shortrate.Simulate(valid, -5, 12, 1); err == nil {
		t.Fatal("expected error for negative paths")
	}
	if _, err := shortrate.Simulate(valid, 10, -1, 1); err == nil {
		t.Fatal("expected error for negative steps")
	}

	negVol := valid
	negVol.Volatility = -0.01
	if _, err := shortrate.Simulate(negVol, 10, 12, 1); err == nil {
		t.Fatal("expected error for negative volatility")
	}

	nanTheta := valid
	nanTheta.Theta = math.NaN()
	if _, err := shortrate.Simulate(nanTheta, 10, 12, 1); err == nil {
		t.Fatal("expected error for NaN theta")
	}
}
