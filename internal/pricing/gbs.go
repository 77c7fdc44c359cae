// Package pricing implements the generalized Black-Scholes model for
// European options and a Newton-Raphson implied volatility solver.
//
// The formulas follow Haug, "The Complete Guide to Option Pricing
// Formulas": the cost-of-carry parameter b folds the classic model
// variants into one equation (b=r Black-Scholes 73, b=r-q Merton 73
// with dividend yield q, b=0 Black 76 futures, b=r-rf Garman-Kohlhagen
// FX).
//
// All functions are pure: float64 in, float64 out, no state. Degenerate
// inputs (t <= 0, v <= 0) are not guarded against; they propagate
// NaN/Inf per IEEE-754, matching the mathematical domain of the
// closed-form formulas.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidOptionType reports an OptionType outside {Call, Put}.
	ErrInvalidOptionType = errors.New("invalid option type")

	// ErrNoConvergence reports that the implied volatility iteration
	// stopped improving before reaching the requested tolerance.
	ErrNoConvergence = errors.New("implied vol did not converge")
)

// OptionType selects the call or put branch of the pricing formula.
type OptionType int

const (
	Call OptionType = iota
	Put
)

// String returns "call" or "put", or a debug form for stray values.
func (typ OptionType) String() string {
	switch typ {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("OptionType(%d)", int(typ))
}

// ParseOptionType converts the usual spellings ("call", "c", "put",
// "p", any case) to an OptionType.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOptionType, s)
}

// Price returns the generalized Black-Scholes value of a European
// option.
//
// Parameters:
//   - typ: Call or Put
//   - s: underlying price
//   - x: strike price
//   - t: time to expiry in years
//   - r: risk-free rate
//   - b: cost of carry (see package doc for the model variants)
//   - v: volatility of the underlying
//
// Returns ErrInvalidOptionType for any typ outside {Call, Put}.
func Price(typ OptionType, s, x, t, r, b, v float64) (float64, error) {
	d1 := (math.Log(s/x) + (b+v*v/2)*t) / (v * math.Sqrt(t))
	d2 := d1 - v*math.Sqrt(t)

	switch typ {
	case Call:
		return s*math.Exp((b-r)*t)*CumulativeProbability(d1) -
			x*math.Exp(-r*t)*CumulativeProbability(d2), nil
	case Put:
		return x*math.Exp(-r*t)*CumulativeProbability(-d2) -
			s*math.Exp((b-r)*t)*CumulativeProbability(-d1), nil
	}
	return 0, ErrInvalidOptionType
}

// Vega returns the sensitivity of the option price to volatility,
// ∂Price/∂v. Under Black-Scholes vega is identical for calls and puts,
// so there is no side parameter.
func Vega(s, x, t, r, b, v float64) float64 {
	d1 := (math.Log(s/x) + (b+v*v/2)*t) / (v * math.Sqrt(t))
	return s * math.Exp((b-r)*t) * Density(d1) * math.Sqrt(t)
}

// ImpliedVolatility solves for the volatility that reprices the option
// to the observed market price cm, within epsilon, by Newton-Raphson
// iteration (Haug pg. 454).
//
// The iteration is seeded with the Manaster-Koehler estimate and runs
// while the price error is at least epsilon and has not worsened since
// the previous step. There is no iteration cap: a degenerate step
// (zero vega) drives the candidate vol to NaN, which fails the loop
// comparison on the next pass and terminates the iteration.
//
// Returns ErrNoConvergence when the error stopped improving before
// reaching epsilon; a partially-converged vol is never returned.
func ImpliedVolatility(typ OptionType, s, x, t, r, b, cm, epsilon float64) (float64, error) {
	// Manaster and Koehler seed value.
	vi := math.Sqrt(math.Abs(math.Log(s/x)+r*t) * 2 / t)

	ci, err := Price(typ, s, x, t, r, b, vi)
	if err != nil {
		return 0, err
	}
	vegai := Vega(s, x, t, r, b, vi)
	minDiff := math.Abs(cm - ci)

	for math.Abs(cm-ci) >= epsilon && math.Abs(cm-ci) <= minDiff {
		vi -= (ci - cm) / vegai
		ci, _ = Price(typ, s, x, t, r, b, vi)
		vegai = Vega(s, x, t, r, b, vi)
		minDiff = math.Abs(cm - ci)
	}

	if math.Abs(cm-ci) < epsilon {
		return vi, nil
	}
	return 0, ErrNoConvergence
}
