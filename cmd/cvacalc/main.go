// Command cvacalc prices counterparty CVA for a vanilla interest rate swap.
//
// Single-trade mode reads a JSON request from stdin (or -input) and writes a
// JSON result to stdout. Batch mode (-book) runs every analysis in a YAML
// book and writes one JSON result per line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/cvalib/cva"
	"github.com/meenmo/cvalib/report"
	"github.com/meenmo/cvalib/scenario"
)

// PricingInput is the JSON request schema.
//
// Conventions (matching the interactive form):
// - notional is in millions
// - rates are in percent (2.5 means 2.50%)
// - counterparty spread is in bp
// Omitted simulation/model fields take the scenario package defaults.
type PricingInput struct {
	Counterparty string `json:"counterparty"`

	NotionalMM    float64 `json:"notional_mm"`
	FixedRatePct  float64 `json:"fixed_rate_pct"`
	MaturityYears float64 `json:"maturity_years"`

	SpreadBP    float64 `json:"spread_bp"`
	RecoveryPct float64 `json:"recovery_pct"`

	Simulations    int     `json:"simulations"`
	Seed           uint64  `json:"seed"`
	InitialRatePct float64 `json:"initial_rate_pct"`
	VolatilityPct  float64 `json:"volatility_pct"`
	Kappa          float64 `json:"kappa"`
	ThetaPct       float64 `json:"theta_pct"`
	RiskFreePct    float64 `json:"risk_free_pct"`
}

type PricingOutput struct {
	Name         string `json:"name,omitempty"`
	Counterparty string `json:"counterparty,omitempty"`

	CVA    float64 `json:"cva"`
	CVABps float64 `json:"cva_bps"`

	MaxEPE float64 `json:"max_epe"`
	AvgEPE float64 `json:"avg_epe"`
	MaxENE float64 `json:"max_ene"`
	AvgENE float64 `json:"avg_ene"`

	TimeGrid []float64 `json:"time_grid"`
	EPE      []float64 `json:"epe"`
	ENE      []float64 `json:"ene"`
	EPE95    []float64 `json:"epe_95"`
	ENE5     []float64 `json:"ene_5"`

	Error string `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cvacalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	bookPath := fs.String("book", "", "YAML scenario book; runs every analysis in it")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	if strings.TrimSpace(*bookPath) != "" {
		return runBook(*bookPath, stdout)
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if f, ok := stdin.(*os.File); ok {
			if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				usage(stderr)
				return 2
			}
		}
	}

	inputBytes, err := readInput(stdin, path)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}

	var input PricingInput
	if err := json.Unmarshal(inputBytes, &input); err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	output, err := calculate("", input.Counterparty, input.analysis())
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cvacalc < input.json")
	fmt.Fprintln(w, "  cvacalc -input /path/to/input.json")
	fmt.Fprintln(w, "  cvacalc -book /path/to/book.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read swap/counterparty parameters, run the Monte Carlo CVA analysis,")
	fmt.Fprintln(w, "output JSON to stdout (one line per analysis in book mode).")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	output := PricingOutput{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}

// analysis maps the JSON request onto a scenario entry so both entry points
// share defaults and unit conversions.
func (in PricingInput) analysis() scenario.Analysis {
	return scenario.Analysis{
		Counterparty:   in.Counterparty,
		NotionalMM:     in.NotionalMM,
		FixedRatePct:   in.FixedRatePct,
		MaturityYears:  in.MaturityYears,
		SpreadBP:       in.SpreadBP,
		RecoveryPct:    in.RecoveryPct,
		Simulations:    in.Simulations,
		Seed:           in.Seed,
		InitialRatePct: in.InitialRatePct,
		VolatilityPct:  in.VolatilityPct,
		Kappa:          in.Kappa,
		ThetaPct:       in.ThetaPct,
		RiskFreePct:    in.RiskFreePct,
	}
}

func runBook(path string, stdout io.Writer) int {
	book, err := scenario.Load(path)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	exit := 0
	for _, a := range book.Analyses {
		output, err := calculate(a.Name, a.Counterparty, a)
		if err != nil {
			out := PricingOutput{Name: a.Name, Counterparty: a.Counterparty, Error: err.Error()}
			outputBytes, _ := json.Marshal(out)
			fmt.Fprintln(stdout, string(outputBytes))
			exit = 1
			continue
		}
		outputBytes, _ := json.Marshal(output)
		fmt.Fprintln(stdout, string(outputBytes))
	}
	return exit
}

func calculate(name, counterparty string, a scenario.Analysis) (*PricingOutput, error) {
	contract, credit, cfg := a.Inputs()

	res, err := cva.Analyze(contract, credit, cfg)
	if err != nil {
		return nil, err
	}

	s := report.Summarize(res)
	return &PricingOutput{
		Name:         name,
		Counterparty: counterparty,
		CVA:          s.CVA,
		CVABps:       s.CVABps,
		MaxEPE:       s.MaxEPE,
		AvgEPE:       s.AvgEPE,
		MaxENE:       s.MaxENE,
		AvgENE:       s.AvgENE,
		TimeGrid:     res.TimeGrid,
		EPE:          res.Profile.EPE,
		ENE:          res.Profile.ENE,
		EPE95:        res.Profile.EPE95,
		ENE5:         res.Profile.ENE5,
	}, nil
}
