// Package quotes supplies option quote chains to the implied vol
// solver.
//
// Sources implement a common interface with optional secondary
// fallback chaining, so a local file source can defer to an HTTP
// source, which can defer to a synthetic one.
package quotes

import (
	"github.com/contactkeval/implied-vol/internal/pricing"
)

// Quote is one observed option price together with the market and
// model parameters needed to invert it.
type Quote struct {
	Underlying string
	Type       pricing.OptionType
	Spot       float64 // underlying price
	Strike     float64
	Expiry     float64 // time to expiry in years
	Rate       float64 // risk-free rate
	Carry      float64 // cost of carry
	Price      float64 // observed market price
}

// Source supplies option quote chains.
type Source interface {
	// Secondary returns the configured fallback Source, if any.
	Secondary() Source

	// Quotes returns the quote chain for an underlying.
	Quotes(underlying string) ([]Quote, error)
}
