package main

import (
	"fmt"
	"os"

	"github.com/meenmo/cvalib/cva"
	"github.com/meenmo/cvalib/marketdata"
	"github.com/meenmo/cvalib/report"
	"github.com/meenmo/cvalib/shortrate"
)

func main() {
	contract := cva.SwapContract{
		Notional:      100_000_000,
		FixedRate:     0.025,
		MaturityYears: 5,
	}

	feed := marketdata.DefaultCreditFeed()
	cp, err := feed.Counterparty("ABC Corporation")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := cva.SimulationConfig{
		NumPaths:     1000,
		Seed:         42,
		RiskFreeRate: 0.03,
		Model: shortrate.Params{
			InitialRate: 0.03,
			Volatility:  0.01,
			Kappa:       0.1,
			Theta:       0.03,
		},
	}

	res, err := cva.Analyze(contract, cp.Profile(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := report.Write(os.Stdout, cp.Name, res); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
