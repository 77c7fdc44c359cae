package quotes

import (
	"fmt"

	"github.com/contactkeval/implied-vol/internal/pricing"
)

// synthSource generates a deterministic quote chain by pricing strikes
// across a parabolic vol smile. Because the quotes are produced by the
// same pricing formula the solver inverts, a batch run over this
// source round-trips the smile exactly.
type synthSource struct {
	spot   float64
	expiry float64
	rate   float64
	carry  float64

	atmVol float64 // vol at the money
	skew   float64 // curvature of the smile in moneyness

	secondary Source
}

// NewSyntheticSource convenience constructor with typical equity-ish
// defaults.
func NewSyntheticSource() Source {
	return &synthSource{
		spot:   100,
		expiry: 0.5,
		rate:   0.05,
		carry:  0.05,
		atmVol: 0.20,
		skew:   0.50,
	}
}

func (synthSrc *synthSource) Secondary() Source {
	return synthSrc.secondary
}

// SmileVol returns the generating vol at a strike: a parabola in
// moneyness, floored at the ATM level.
func (synthSrc *synthSource) SmileVol(strike float64) float64 {
	m := strike/synthSrc.spot - 1
	return synthSrc.atmVol + synthSrc.skew*m*m
}

func (synthSrc *synthSource) Quotes(underlying string) ([]Quote, error) {
	if synthSrc.secondary != nil {
		return synthSrc.secondary.Quotes(underlying)
	}

	var out []Quote
	// Strikes from 70% to 130% of spot in 5% steps, both sides quoted.
	for pct := 70; pct <= 130; pct += 5 {
		strike := synthSrc.spot * float64(pct) / 100
		v := synthSrc.SmileVol(strike)

		for _, typ := range []pricing.OptionType{pricing.Call, pricing.Put} {
			price, err := pricing.Price(typ, synthSrc.spot, strike, synthSrc.expiry, synthSrc.rate, synthSrc.carry, v)
			if err != nil {
				return nil, fmt.Errorf("generating %v quote at strike %.2f: %w", typ, strike, err)
			}
			out = append(out, Quote{
				Underlying: underlying,
				Type:       typ,
				Spot:       synthSrc.spot,
				Strike:     strike,
				Expiry:     synthSrc.expiry,
				Rate:       synthSrc.rate,
				Carry:      synthSrc.carry,
				Price:      price,
			})
		}
	}
	return out, nil
}
