// Package scenario loads CVA analysis books from YAML. A book is a list of
// named analyses in desk units (notional in millions, rates in percent,
// spreads in bp); Inputs converts each entry to the engine's decimal types,
// so the core never sees display units.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/cvalib/cva"
	"github.com/meenmo/cvalib/shortrate"
)

// Defaults applied to omitted (zero) fields.
const (
	DefaultSimulations    = 1000
	DefaultSeed           = 42
	DefaultInitialRatePct = 3.0
	DefaultVolatilityPct  = 1.0
	DefaultKappa          = 0.1
	DefaultThetaPct       = 3.0
	DefaultRiskFreePct    = 3.0
)

// Book is a batch of analyses to run.
type Book struct {
	Analyses []Analysis `yaml:"analyses"`
}

// Analysis is one swap/counterparty entry in desk units. Zero-valued model
// and simulation fields take the package defaults.
type Analysis struct {
	Name         string `yaml:"name"`
	Counterparty string `yaml:"counterparty"`

	NotionalMM    float64 `yaml:"notional_mm"`
	FixedRatePct  float64 `yaml:"fixed_rate_pct"`
	MaturityYears float64 `yaml:"maturity_years"`

	SpreadBP    float64 `yaml:"spread_bp"`
	RecoveryPct float64 `yaml:"recovery_pct"`

	Simulations    int     `yaml:"simulations"`
	Seed           uint64  `yaml:"seed"`
	InitialRatePct float64 `yaml:"initial_rate_pct"`
	VolatilityPct  float64 `yaml:"volatility_pct"`
	Kappa          float64 `yaml:"kappa"`
	ThetaPct       float64 `yaml:"theta_pct"`
	RiskFreePct    float64 `yaml:"risk_free_pct"`
}

// Load reads a book from path.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var book Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal %s: %w", path, err)
	}
	if len(book.Analyses) == 0 {
		return nil, fmt.Errorf("scenario: %s contains no analyses", path)
	}
	return &book, nil
}

// Inputs converts the entry to engine inputs, applying defaults and unit
// conversions (millions to currency units, percent and bp to decimals).
func (a Analysis) Inputs() (cva.SwapContract, cva.CreditProfile, cva.SimulationConfig) {
	sims := a.Simulations
	if sims == 0 {
		sims = DefaultSimulations
	}
	seed := a.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	initial := a.InitialRatePct
	if initial == 0 {
		initial = DefaultInitialRatePct
	}
	vol := a.VolatilityPct
	if vol == 0 {
		vol = DefaultVolatilityPct
	}
	kappa := a.Kappa
	if kappa == 0 {
		kappa = DefaultKappa
	}
	theta := a.ThetaPct
	if theta == 0 {
		theta = DefaultThetaPct
	}
	riskFree := a.RiskFreePct
	if riskFree == 0 {
		riskFree = DefaultRiskFreePct
	}

	contract := cva.SwapContract{
		Notional:      a.NotionalMM * 1e6,
		FixedRate:     a.FixedRatePct / 100,
		MaturityYears: a.MaturityYears,
	}
	credit := cva.CreditProfile{
		Spread:   a.SpreadBP * 1e-4,
		Recovery: a.RecoveryPct / 100,
	}
	cfg := cva.SimulationConfig{
		NumPaths:     sims,
		Seed:         seed,
		RiskFreeRate: riskFree / 100,
		Model: shortrate.Params{
			InitialRate: initial / 100,
			Volatility:  vol / 100,
			Kappa:       kappa,
			Theta:       theta / 100,
		},
	}
	return contract, credit, cfg
}
