// Command cvatui is an interactive terminal front end for the CVA engine:
// a parameter form in desk units, a text report, and a terminal chart of the
// exposure profile.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meenmo/cvalib/cva"
	"github.com/meenmo/cvalib/report"
	"github.com/meenmo/cvalib/scenario"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(26)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	epeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	eneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

type field struct {
	label   string
	initial string
}

// Form fields in display order, prefilled with the scenario package defaults.
var fields = []field{
	{"Counterparty", "ABC Corporation"},
	{"Notional (millions)", "100"},
	{"Fixed Rate (%)", "2.5"},
	{"Maturity (years)", "5"},
	{"Counterparty Spread (bps)", "150"},
	{"Recovery Rate (%)", "40"},
	{"Simulations", "1000"},
	{"Seed", "42"},
}

type resultMsg struct {
	counterparty string
	res          *cva.AnalysisResult
	err          error
}

type model struct {
	inputs []textinput.Model
	idx    int

	running bool
	formErr string

	counterparty string
	res          *cva.AnalysisResult
}

func newModel() model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.label
		ti.SetValue(f.initial)
		ti.CharLimit = 64
		inputs[i] = ti
	}
	m := model{inputs: inputs}
	m.inputs[0].Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.running = false
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.counterparty = msg.counterparty
		m.res = msg.res
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

		// Results screen: q quits, e returns to the form.
		if m.res != nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "e":
				m.res = nil
				m.formErr = ""
			}
			return m, nil
		}

		if m.running {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.focus((m.idx + 1) % len(m.inputs))
			return m, textinput.Blink
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus((m.idx + len(m.inputs) - 1) % len(m.inputs))
			return m, textinput.Blink
		case tea.KeyEnter:
			if m.idx < len(m.inputs)-1 {
				m.focus(m.idx + 1)
				return m, textinput.Blink
			}
			a, name, err := m.analysis()
			if err != nil {
				m.formErr = err.Error()
				return m, nil
			}
			m.formErr = ""
			m.running = true
			return m, runAnalysis(name, a)
		}
	}

	if m.res == nil && !m.running {
		var cmd tea.Cmd
		m.inputs[m.idx], cmd = m.inputs[m.idx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) focus(idx int) {
	m.inputs[m.idx].Blur()
	m.idx = idx
	m.inputs[m.idx].Focus()
}

// analysis parses the form into a scenario entry.
func (m model) analysis() (scenario.Analysis, string, error) {
	name := strings.TrimSpace(m.inputs[0].Value())

	nums := make([]float64, len(fields))
	for i := 1; i < len(fields); i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[i].Value()), 64)
		if err != nil {
			return scenario.Analysis{}, "", fmt.Errorf("%s: not a number", fields[i].label)
		}
		nums[i] = v
	}
	sims := int(nums[6])
	if nums[7] < 0 || nums[7] != math.Trunc(nums[7]) {
		return scenario.Analysis{}, "", fmt.Errorf("Seed: must be a non-negative integer")
	}

	return scenario.Analysis{
		Counterparty:  name,
		NotionalMM:    nums[1],
		FixedRatePct:  nums[2],
		MaturityYears: nums[3],
		SpreadBP:      nums[4],
		RecoveryPct:   nums[5],
		Simulations:   sims,
		Seed:          uint64(nums[7]),
	}, name, nil
}

func runAnalysis(name string, a scenario.Analysis) tea.Cmd {
	return func() tea.Msg {
		contract, credit, cfg := a.Inputs()
		res, err := cva.Analyze(contract, credit, cfg)
		return resultMsg{counterparty: name, res: res, err: err}
	}
}

func (m model) View() string {
	if m.res != nil {
		return m.resultsView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CVA Calculator — Interest Rate Swap"))
	b.WriteString("\n\n")
	for i, f := range fields {
		b.WriteString(labelStyle.Render(f.label+":") + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")
	if m.running {
		b.WriteString("running simulation...\n")
	} else if m.formErr != "" {
		b.WriteString(errStyle.Render(m.formErr) + "\n")
	}
	b.WriteString(hintStyle.Render("enter: next field / calculate on last · tab: cycle · esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) resultsView() string {
	var b strings.Builder
	if err := report.Write(&b, m.counterparty, m.res); err != nil {
		return errStyle.Render(err.Error())
	}
	b.WriteString("\n\nEXPOSURE PROFILE:\n")
	b.WriteString(renderProfileChart(m.res, 44, 12))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("e: edit parameters · q/esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// renderProfileChart draws EPE and |ENE| as horizontal bars on a downsampled
// time grid.
func renderProfileChart(res *cva.AnalysisResult, width, rows int) string {
	grid := res.TimeGrid
	epe := res.Profile.EPE
	ene := res.Profile.ENE

	stride := 1
	if len(grid) > rows {
		stride = (len(grid) + rows - 1) / rows
	}

	scale := 0.0
	for i := range epe {
		scale = math.Max(scale, math.Max(epe[i], -ene[i]))
	}
	if scale == 0 {
		scale = 1
	}

	var b strings.Builder
	for i := 0; i < len(grid); i += stride {
		epeBar := strings.Repeat("█", int(epe[i]/scale*float64(width)))
		eneBar := strings.Repeat("█", int(-ene[i]/scale*float64(width)))
		fmt.Fprintf(&b, "%5.2fy  %s%s\n",
			grid[i],
			epeStyle.Render(epeBar),
			eneStyle.Render(eneBar),
		)
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("        bars scaled to max exposure %.0f (EPE blue, |ENE| red)", scale)))
	return b.String()
}

func main() {
	if _, err := tea.NewProgram(newModel()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cvatui: %v\n", err)
		os.Exit(1)
	}
}
