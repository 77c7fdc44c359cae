// Package smile builds implied volatility smiles from option quote
// chains.
package smile

import (
	"fmt"
	"sort"

	"github.com/contactkeval/implied-vol/internal/logger"
	"github.com/contactkeval/implied-vol/internal/pricing"
	"github.com/contactkeval/implied-vol/internal/quotes"
)

// Point is one solved strike on the smile.
type Point struct {
	Strike      float64 `json:"strike"`
	Expiry      float64 `json:"expiry_years"`
	Type        string  `json:"type"`
	MarketPrice float64 `json:"market_price"`
	ImpliedVol  float64 `json:"implied_vol"`
}

// Smile is the solved chain for one underlying.
type Smile struct {
	Underlying string  `json:"underlying"`
	Points     []Point `json:"points"`
	Skipped    int     `json:"skipped"` // quotes the solver could not fit
}

// Build pulls the quote chain for an underlying and solves implied vol
// per quote. Quotes with no market-consistent vol are counted and
// skipped rather than failing the run; only a source failure is an
// error.
func Build(src quotes.Source, underlying string, epsilon float64) (*Smile, error) {
	chain, err := src.Quotes(underlying)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes for %s: %w", underlying, err)
	}

	sm := &Smile{Underlying: underlying}
	for _, q := range chain {
		vol, err := pricing.ImpliedVolatility(q.Type, q.Spot, q.Strike, q.Expiry, q.Rate, q.Carry, q.Price, epsilon)
		if err != nil {
			logger.Debugf("skipping %s %v strike=%.2f price=%.4f: %v",
				q.Underlying, q.Type, q.Strike, q.Price, err)
			sm.Skipped++
			continue
		}
		sm.Points = append(sm.Points, Point{
			Strike:      q.Strike,
			Expiry:      q.Expiry,
			Type:        q.Type.String(),
			MarketPrice: q.Price,
			ImpliedVol:  vol,
		})
	}

	sort.Slice(sm.Points, func(i, j int) bool {
		if sm.Points[i].Strike != sm.Points[j].Strike {
			return sm.Points[i].Strike < sm.Points[j].Strike
		}
		return sm.Points[i].Type < sm.Points[j].Type
	})

	logger.Infof("%s: solved %d quotes, skipped %d", underlying, len(sm.Points), sm.Skipped)
	return sm, nil
}
