// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigmath

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/KaznacheevM/bigmath/accuracy"
	"github.com/KaznacheevM/bigmath/approx"
	"github.com/KaznacheevM/bigmath/dec"
	"github.com/KaznacheevM/bigmath/series"
)

// Rounding selects how the final digit of a result is resolved.
type Rounding = string

// The supported rounding modes.
const (
	RoundUp       Rounding = apd.RoundUp
	RoundDown     Rounding = apd.RoundDown
	RoundCeiling  Rounding = apd.RoundCeiling
	RoundFloor    Rounding = apd.RoundFloor
	RoundHalfUp   Rounding = apd.RoundHalfUp
	RoundHalfDown Rounding = apd.RoundHalfDown
	RoundHalfEven Rounding = apd.RoundHalfEven
)

// A Context bundles a significant-digit precision with a rounding mode
// and evaluates the transcendental functions under them. The zero Context
// is not usable; construct one with New.
type Context struct {
	prec     int
	rounding Rounding
	factory  approx.Factory
}

// Option configures a Context.
type Option func(*Context)

// WithAccumulator selects the series accumulation strategy, sequential or
// parallel. Results are byte-identical across strategies.
func WithAccumulator(acc series.Accumulator) Option {
	return func(c *Context) { c.factory = approx.NewFactory(approx.WithAccumulator(acc)) }
}

// New returns a Context computing prec significant digits under the given
// rounding mode.
func New(prec int, rounding Rounding, opts ...Option) *Context {
	c := &Context{prec: prec, rounding: rounding, factory: approx.NewFactory()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Prec returns the context's significant-digit precision.
func (c *Context) Prec() int { return c.prec }

// Rounding returns the context's rounding mode.
func (c *Context) Rounding() Rounding { return c.rounding }

// Ln returns the natural logarithm of x; x must be positive.
func (c *Context) Ln(x *apd.Decimal) (*apd.Decimal, error) {
	a, err := c.factory.Ln(x)
	if err != nil {
		return nil, err
	}
	return c.approximate(a)
}

// Log10 returns the common logarithm of x; x must be positive.
func (c *Context) Log10(x *apd.Decimal) (*apd.Decimal, error) {
	a, err := c.factory.Log10(x)
	if err != nil {
		return nil, err
	}
	return c.approximate(a)
}

// Log returns the base-b logarithm of x; b must be positive and not one,
// x must be positive.
func (c *Context) Log(base, x *apd.Decimal) (*apd.Decimal, error) {
	a, err := c.factory.Log(base, x)
	if err != nil {
		return nil, err
	}
	return c.approximate(a)
}

// Exp returns e raised to the power x.
func (c *Context) Exp(x *apd.Decimal) (*apd.Decimal, error) {
	a, err := c.factory.Exp(x)
	if err != nil {
		return nil, err
	}
	return c.approximate(a)
}

// E returns the Euler number.
func (c *Context) E() (*apd.Decimal, error) {
	return c.approximate(c.factory.Euler())
}

// approximate turns the context's significant precision into a positional
// accuracy using the approximator's own order estimate, then asks for the
// value at that position.
func (c *Context) approximate(a approx.Approximator) (*apd.Decimal, error) {
	order, err := a.OrderComputer().Compute()
	if err != nil {
		return nil, err
	}
	if order == dec.OrderOfZero {
		// The result is exactly zero at every precision.
		if _, err := accuracy.PositionForPrecision(c.prec, 0); err != nil {
			return nil, err
		}
		return apd.New(0, 0), nil
	}
	position, err := accuracy.PositionForPrecision(c.prec, order)
	if err != nil {
		return nil, err
	}
	return a.Approximate(position, c.rounding)
}

// Ln returns ln(x) to prec significant digits.
func Ln(x *apd.Decimal, prec int, rounding Rounding) (*apd.Decimal, error) {
	return New(prec, rounding).Ln(x)
}

// Log10 returns log10(x) to prec significant digits.
func Log10(x *apd.Decimal, prec int, rounding Rounding) (*apd.Decimal, error) {
	return New(prec, rounding).Log10(x)
}

// Log returns log_base(x) to prec significant digits.
func Log(base, x *apd.Decimal, prec int, rounding Rounding) (*apd.Decimal, error) {
	return New(prec, rounding).Log(base, x)
}

// Exp returns e^x to prec significant digits.
func Exp(x *apd.Decimal, prec int, rounding Rounding) (*apd.Decimal, error) {
	return New(prec, rounding).Exp(x)
}

// E returns the Euler number to prec significant digits.
func E(prec int, rounding Rounding) (*apd.Decimal, error) {
	return New(prec, rounding).E()
}
