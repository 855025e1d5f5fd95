// Package marketdata supplies counterparty credit reference data to the CVA
// surfaces. Quotes follow desk conventions (spreads in bp, recovery in
// percent); conversion to the engine's decimal units happens in Profile.
package marketdata

import (
	"errors"
	"sort"

	"github.com/meenmo/cvalib/cva"
)

// ErrUnknownCounterparty is returned when a feed has no entry for the name.
var ErrUnknownCounterparty = errors.New("unknown counterparty")

// Counterparty is one credit reference entry.
type Counterparty struct {
	Name        string
	SpreadBP    float64 // CDS-style hazard spread, basis points
	RecoveryPct float64 // recovery assumption, percent
}

// Profile converts desk units to the engine's decimal CreditProfile.
func (c Counterparty) Profile() cva.CreditProfile {
	return cva.CreditProfile{
		Spread:   c.SpreadBP * 1e-4,
		Recovery: c.RecoveryPct / 100,
	}
}

// CreditFeed supplies counterparty credit data by name.
type CreditFeed interface {
	Counterparty(name string) (Counterparty, error)
	List() ([]Counterparty, error)
}

// MapCreditFeed is a static map-backed feed for development and testing.
type MapCreditFeed struct {
	byName map[string]Counterparty
}

func NewMapCreditFeed(entries []Counterparty) *MapCreditFeed {
	byName := make(map[string]Counterparty, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	return &MapCreditFeed{byName: byName}
}

func (m *MapCreditFeed) Counterparty(name string) (Counterparty, error) {
	cp, ok := m.byName[name]
	if !ok {
		return Counterparty{}, ErrUnknownCounterparty
	}
	return cp, nil
}

func (m *MapCreditFeed) List() ([]Counterparty, error) {
	out := make([]Counterparty, 0, len(m.byName))
	for _, cp := range m.byName {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DefaultCreditFeed returns the embedded demo book of counterparties.
func DefaultCreditFeed() *MapCreditFeed {
	return NewMapCreditFeed([]Counterparty{
		{Name: "ABC Corporation", SpreadBP: 150, RecoveryPct: 40},
		{Name: "Daehan Industrial", SpreadBP: 95, RecoveryPct: 40},
		{Name: "Meridian Shipping", SpreadBP: 320, RecoveryPct: 25},
		{Name: "Nordbank AG", SpreadBP: 60, RecoveryPct: 45},
	})
}
