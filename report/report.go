// Package report renders AnalysisResult values for display. It performs no
// numerical work beyond summary statistics over curves the engine already
// produced.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/meenmo/cvalib/cva"
)

// Summary holds the headline figures of an analysis run.
type Summary struct {
	CVA    float64
	CVABps float64 // CVA as bp of notional

	MaxEPE float64
	AvgEPE float64
	MaxENE float64 // largest exposure against us, reported as a magnitude
	AvgENE float64
}

// Summarize reduces an analysis result to its headline figures.
func Summarize(res *cva.AnalysisResult) Summary {
	epe := res.Profile.EPE
	ene := res.Profile.ENE
	return Summary{
		CVA:    res.CVA,
		CVABps: res.CVA / res.Contract.Notional * 1e4,
		MaxEPE: floats.Max(epe),
		AvgEPE: stat.Mean(epe, nil),
		MaxENE: -floats.Min(ene),
		AvgENE: -stat.Mean(ene, nil),
	}
}

// Write renders the full text report for one counterparty analysis.
func Write(w io.Writer, counterparty string, res *cva.AnalysisResult) error {
	s := Summarize(res)
	rule := strings.Repeat("-", 40)

	var b strings.Builder
	fmt.Fprintln(&b, strings.Repeat("=", 40))
	fmt.Fprintln(&b, "CVA CALCULATION RESULTS")
	fmt.Fprintln(&b, strings.Repeat("=", 40))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Counterparty: %s\n", counterparty)
	fmt.Fprintf(&b, "Calculation Date: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SWAP DETAILS:")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Notional: %.0f\n", res.Contract.Notional)
	fmt.Fprintf(&b, "Fixed Rate: %.2f%%\n", res.Contract.FixedRate*100)
	fmt.Fprintf(&b, "Maturity: %g years\n", res.Contract.MaturityYears)
	fmt.Fprintln(&b, "Position: Receive Fixed, Pay Floating")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "CREDIT PARAMETERS:")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Counterparty Spread: %.0f bps\n", res.Credit.Spread*1e4)
	fmt.Fprintf(&b, "Recovery Rate: %.0f%%\n", res.Credit.Recovery*100)
	fmt.Fprintf(&b, "Simulations: %d\n", res.Config.NumPaths)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "CVA RESULTS:")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "CVA: %.2f\n", s.CVA)
	fmt.Fprintf(&b, "CVA (bps of notional): %.1f bps\n", s.CVABps)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "EXPOSURE STATISTICS:")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Maximum EPE: %.2f\n", s.MaxEPE)
	fmt.Fprintf(&b, "Average EPE: %.2f\n", s.AvgEPE)
	fmt.Fprintf(&b, "Maximum ENE: %.2f\n", s.MaxENE)
	fmt.Fprintf(&b, "Average ENE: %.2f\n", s.AvgENE)

	_, err := io.WriteString(w, b.String())
	return err
}

// DefaultSamplePaths is the number of swap value paths chart consumers show.
const DefaultSamplePaths = 20

// SamplePaths copies the first n rows of the swap value matrix for chart
// rendering. Fewer rows are returned when the run had fewer paths.
func SamplePaths(res *cva.AnalysisResult, n int) [][]float64 {
	rows, cols := res.Values.Dims()
	if n > rows {
		n = rows
	}
	if n < 0 {
		n = 0
	}
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, cols)
		copy(row, res.Values.RawRowView(i))
		out[i] = row
	}
	return out
}
