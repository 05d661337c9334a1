// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package approx implements the function approximators: the natural and
// arbitrary-base logarithms, the exponential and the Euler number.
//
// An approximator is bound to its argument at construction and then
// queried for values at a positional accuracy. Its order computer
// estimates the base-10 order of the result by a coarse self-application,
// which callers use to translate significant-digit precision into a
// position before asking for the full-accuracy value.
package approx

import (
	"sync"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"

	"github.com/KaznacheevM/bigmath/accuracy"
	"github.com/KaznacheevM/bigmath/dec"
	"github.com/KaznacheevM/bigmath/series"
)

// ErrDomain reports an argument outside a function's mathematical domain.
var ErrDomain = errors.New("argument outside function domain")

// Approximator produces values of a fixed computation at a requested
// positional accuracy. Implementations are stateless after construction
// except for write-once order caches, so one approximator may serve many
// calls.
type Approximator interface {
	Approximate(position int, mode string) (*apd.Decimal, error)
	OrderComputer() OrderComputer
}

// OrderComputer estimates the base-10 order of an approximator's result.
// The sentinel dec.OrderOfZero reports a result that is exactly zero.
type OrderComputer interface {
	Compute() (int, error)
}

// Factory builds approximators that share an accumulation strategy.
// Sub-approximators (the exponentials inside ln, the logarithms inside
// log) are created through the same factory value.
type Factory struct {
	acc series.Accumulator
}

// Option configures a Factory.
type Option func(*Factory)

// WithAccumulator selects the series accumulation strategy. The result of
// every approximation is independent of this choice.
func WithAccumulator(acc series.Accumulator) Option {
	return func(f *Factory) { f.acc = acc }
}

// NewFactory returns a factory using the parallel accumulator unless an
// option overrides it.
func NewFactory(opts ...Option) Factory {
	f := Factory{acc: series.Parallel{}}
	for _, o := range opts {
		o(&f)
	}
	return f
}

// constantOrder is an OrderComputer with a fixed result.
type constantOrder int

func (c constantOrder) Compute() (int, error) { return int(c), nil }

// computer derives an order the way every non-trivial approximator does:
// take a lower estimate of the order, ask the approximator for a coarse
// value truncated at the position of that estimate's leading digit, and
// read the order off the coarse value.
type computer struct {
	approx Approximator
	lower  func() (int, error)
}

func (c computer) Compute() (int, error) {
	low, err := c.lower()
	if err != nil {
		return 0, err
	}
	if low == dec.OrderOfZero {
		return dec.OrderOfZero, nil
	}
	coarse, err := c.approx.Approximate(accuracy.Positional.LeadingDigitPosition(low), apd.RoundDown)
	if err != nil {
		return 0, err
	}
	return dec.Order(coarse), nil
}

// seriesSum adapts a series to the Approximator interface. Its order
// lower estimate is the order of the first term minus one.
type seriesSum struct {
	s *series.Series
}

func (ss seriesSum) Approximate(position int, mode string) (*apd.Decimal, error) {
	return ss.s.Approximate(position, mode)
}

func (ss seriesSum) OrderComputer() OrderComputer {
	return computer{approx: ss, lower: func() (int, error) {
		first, err := ss.s.FirstTermMinimal()
		if err != nil {
			return 0, err
		}
		order := dec.Order(first)
		if order == dec.OrderOfZero {
			return dec.OrderOfZero, nil
		}
		return order - 1, nil
	}}
}

// lazyInt is a write-once integer cell. The computed value is stable for
// the lifetime of its approximator.
type lazyInt struct {
	once sync.Once
	v    int
	err  error
}

func (l *lazyInt) get(compute func() (int, error)) (int, error) {
	l.once.Do(func() { l.v, l.err = compute() })
	return l.v, l.err
}
