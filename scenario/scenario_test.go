package scenario_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/meenmo/cvalib/scenario"
)

const bookYAML = `analyses:
  - name: abc-5y-receiver
    counterparty: ABC Corporation
    notional_mm: 100
    fixed_rate_pct: 2.5
    maturity_years: 5
    spread_bp: 150
    recovery_pct: 40
    simulations: 2000
    seed: 7
  - name: nordbank-2y
    counterparty: Nordbank AG
    notional_mm: 25
    fixed_rate_pct: 3.1
    maturity_years: 2
    spread_bp: 60
    recovery_pct: 45
`

func writeBook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	book, err := scenario.Load(writeBook(t, bookYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(book.Analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(book.Analyses))
	}
	if book.Analyses[0].Name != "abc-5y-receiver" || book.Analyses[1].Counterparty != "Nordbank AG" {
		t.Fatalf("unexpected entries: %+v", book.Analyses)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	if _, err := scenario.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := scenario.Load(writeBook(t, "analyses: [")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if _, err := scenario.Load(writeBook(t, "analyses: []")); err == nil {
		t.Fatal("expected error for empty book")
	}
}

func TestInputs_UnitConversions(t *testing.T) {
	t.Parallel()

	book, err := scenario.Load(writeBook(t, bookYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	contract, credit, cfg := book.Analyses[0].Inputs()

	if contract.Notional != 100e6 {
		t.Fatalf("notional = %v, want 1e8", contract.Notional)
	}
	if math.Abs(contract.FixedRate-0.025) > 1e-15 {
		t.Fatalf("fixed rate = %v, want 0.025", contract.FixedRate)
	}
	if math.Abs(credit.Spread-0.015) > 1e-15 {
		t.Fatalf("spread = %v, want 0.015", credit.Spread)
	}
	if math.Abs(credit.Recovery-0.40) > 1e-15 {
		t.Fatalf("recovery = %v, want 0.40", credit.Recovery)
	}
	if cfg.NumPaths != 2000 || cfg.Seed != 7 {
		t.Fatalf("explicit simulation fields not honored: %+v", cfg)
	}
}

func TestInputs_Defaults(t *testing.T) {
	t.Parallel()

	a := scenario.Analysis{
		Counterparty:  "ABC Corporation",
		NotionalMM:    100,
		FixedRatePct:  2.5,
		MaturityYears: 5,
		SpreadBP:      150,
		RecoveryPct:   40,
	}

	_, _, cfg := a.Inputs()
	if cfg.NumPaths != scenario.DefaultSimulations {
		t.Fatalf("paths = %d, want default %d", cfg.NumPaths, scenario.DefaultSimulations)
	}
	if cfg.Seed != scenario.DefaultSeed {
		t.Fatalf("seed = %d, want default %d", cfg.Seed, scenario.DefaultSeed)
	}
	if math.Abs(cfg.Model.InitialRate-0.03) > 1e-15 ||
		math.Abs(cfg.Model.Volatility-0.01) > 1e-15 ||
		math.Abs(cfg.Model.Kappa-0.1) > 1e-15 ||
		math.Abs(cfg.Model.Theta-0.03) > 1e-15 {
		t.Fatalf("model defaults not applied: %+v", cfg.Model)
	}
	if math.Abs(cfg.RiskFreeRate-0.03) > 1e-15 {
		t.Fatalf("risk-free default not applied: %v", cfg.RiskFreeRate)
	}
}
