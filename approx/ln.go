// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package approx

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"

	"github.com/KaznacheevM/bigmath/accuracy"
	"github.com/KaznacheevM/bigmath/dec"
	"github.com/KaznacheevM/bigmath/interval"
	"github.com/KaznacheevM/bigmath/search"
	"github.com/KaznacheevM/bigmath/series"
)

// gregoryWindow is the argument range on which the Gregory series loses
// at least one decimal digit per term: ((x-1)/(x+1))^2 <= 1/10 holds on
// the whole of [0.52, 1.92].
func gregoryWindow() interval.Interval {
	iv, err := interval.NewClosed(apd.New(52, -2), apd.New(192, -2))
	if err != nil {
		panic(err)
	}
	return iv
}

// GregoryLn approximates ln(x) by the Gregory series
//
//	ln(x) = 2 * sum_{n>=0} ((x-1)/(x+1))^(2n+1) / (2n+1)
//
// In optimized mode the argument must lie inside the fast-converging
// window and the series uses the decimal-linear negligibility test.
type GregoryLn struct {
	arg *apd.Decimal
	sum seriesSum
}

// GregoryLn returns the inner-tier logarithm approximator.
func (f Factory) GregoryLn(optimized bool, x *apd.Decimal) (*GregoryLn, error) {
	if optimized && !gregoryWindow().Contains(x) {
		return nil, errors.Wrapf(ErrDomain, "ln: argument %s outside window [0.52, 1.92]", x)
	}
	if x.Sign() <= 0 {
		return nil, errors.Wrapf(ErrDomain, "ln: argument %s must be positive", x)
	}
	return &GregoryLn{
		arg: new(apd.Decimal).Set(x),
		sum: seriesSum{series.New(optimized, 0, series.NewGregoryLnTerm(x), f.acc)},
	}, nil
}

// Approximate returns ln(x) with its least significant digit at
// 10^position, rounded according to mode.
func (g *GregoryLn) Approximate(position int, mode string) (*apd.Decimal, error) {
	adjusted, err := accuracy.Positional.Adjust(position)
	if err != nil {
		return nil, err
	}
	sum, err := g.sum.Approximate(adjusted-1, apd.RoundDown)
	if err != nil {
		return nil, err
	}
	doubled := new(apd.Decimal)
	if err := dec.Mul(doubled, sum, apd.New(2, 0)); err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Round(z, doubled, position, mode); err != nil {
		return nil, err
	}
	return z, nil
}

// OrderComputer defers to the series: the doubling cannot move the order
// estimate off by more than the coarse pass already tolerates.
func (g *GregoryLn) OrderComputer() OrderComputer {
	return g.sum.OrderComputer()
}

// Ln approximates the natural logarithm for any x > 0. Arguments outside
// the Gregory window are rescaled by an integral power of e: with s the
// scaling exponent, ln(x) = ln(x*e^s) - s.
type Ln struct {
	factory Factory
	arg     *apd.Decimal
	window  interval.Interval
	scaling lazyInt
}

// Ln returns an approximator for ln(x), x > 0.
func (f Factory) Ln(x *apd.Decimal) (*Ln, error) {
	if x.Sign() <= 0 {
		return nil, errors.Wrapf(ErrDomain, "ln: argument %s must be positive", x)
	}
	return &Ln{factory: f, arg: new(apd.Decimal).Set(x), window: gregoryWindow()}, nil
}

// Approximate returns ln(x) with its least significant digit at
// 10^position, rounded according to mode.
func (l *Ln) Approximate(position int, mode string) (*apd.Decimal, error) {
	adjusted, err := accuracy.Positional.Adjust(position)
	if err != nil {
		return nil, err
	}
	y, err := l.normalize(adjusted)
	if err != nil {
		return nil, err
	}
	// Truncation of the normalized argument can leave it a hair outside
	// the window; the plain negligibility test stays correct there.
	inner, err := l.factory.GregoryLn(l.window.Contains(y), y)
	if err != nil {
		return nil, err
	}
	v, err := inner.Approximate(position, mode)
	if err != nil {
		return nil, err
	}
	s, err := l.scalingExponent()
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Sub(z, v, apd.New(int64(s), 0)); err != nil {
		return nil, err
	}
	if err := dec.Round(z, z, position, mode); err != nil {
		return nil, err
	}
	return z, nil
}

// normalize returns x*e^s truncated one position below the adjusted
// accuracy. The exponential is carried at an accuracy lowered by the
// overestimated order of 2x, padding for the subtraction inside the
// Gregory series. The truncation position is capped at the hundredths so
// that a coarse pass cannot collapse the windowed argument to 0 or 1.
func (l *Ln) normalize(adjusted int) (*apd.Decimal, error) {
	s, err := l.scalingExponent()
	if err != nil {
		return nil, err
	}
	tpos := adjusted - 1
	if tpos > -2 {
		tpos = -2
	}
	y := new(apd.Decimal)
	if s == 0 {
		if err := dec.Round(y, l.arg, tpos, apd.RoundDown); err != nil {
			return nil, err
		}
		return y, nil
	}
	doubled := new(apd.Decimal)
	if err := dec.Mul(doubled, l.arg, apd.New(2, 0)); err != nil {
		return nil, err
	}
	ev, err := l.exp(s, tpos+1-dec.OverestimateOrder(doubled), apd.RoundDown)
	if err != nil {
		return nil, err
	}
	scaled := new(apd.Decimal)
	if err := dec.Mul(scaled, l.arg, ev); err != nil {
		return nil, err
	}
	if err := dec.Round(y, scaled, tpos, apd.RoundDown); err != nil {
		return nil, err
	}
	return y, nil
}

// scalingExponent resolves and memoizes the integer s for which x*e^s
// falls inside the Gregory window.
func (l *Ln) scalingExponent() (int, error) {
	return l.scaling.get(l.computeScalingExponent)
}

func (l *Ln) computeScalingExponent() (int, error) {
	if l.window.Contains(l.arg) {
		return 0, nil
	}
	increasing := l.window.RightOf(l.arg)
	i, err := search.Find(0, increasing, l.probePredicate())
	if err != nil {
		return 0, err
	}
	s := -i
	// The probes round conservatively, so x*e^s may still land above the
	// window; one more factor of 1/e resolves the border.
	ev, err := l.exp(s, -2-dec.OverestimateOrder(l.arg), apd.RoundUp)
	if err != nil {
		return 0, err
	}
	scaled := new(apd.Decimal)
	if err := dec.Mul(scaled, l.arg, ev); err != nil {
		return 0, err
	}
	if l.window.RightOf(scaled) {
		return s - 1, nil
	}
	return s, nil
}

// probePredicate compares the argument against integral exponentials
// computed one position below the argument's own last digit.
func (l *Ln) probePredicate() search.Predicate {
	argPos := int(l.arg.Exponent) - 1
	if l.window.LeftOf(l.arg) {
		return func(i int) (bool, error) {
			ev, err := l.exp(i, argPos, apd.RoundUp)
			if err != nil {
				return false, err
			}
			return l.arg.Cmp(ev) > 0, nil
		}
	}
	return func(i int) (bool, error) {
		ev, err := l.exp(i+1, argPos, apd.RoundDown)
		if err != nil {
			return false, err
		}
		return l.arg.Cmp(ev) < 0, nil
	}
}

func (l *Ln) exp(k, position int, mode string) (*apd.Decimal, error) {
	e, err := l.factory.Exp(apd.New(int64(k), 0))
	if err != nil {
		return nil, err
	}
	return e.Approximate(position, mode)
}

// OrderComputer estimates the order of ln(x): through the Gregory series
// when no rescaling happens, and from the scaling exponent otherwise.
func (l *Ln) OrderComputer() OrderComputer {
	return computer{approx: l, lower: l.orderLowerEstimate}
}

func (l *Ln) orderLowerEstimate() (int, error) {
	s, err := l.scalingExponent()
	if err != nil {
		return 0, err
	}
	if s != 0 {
		return dec.OrderInt(s) - 1, nil
	}
	inner, err := l.factory.GregoryLn(false, l.arg)
	if err != nil {
		return 0, err
	}
	return inner.OrderComputer().Compute()
}
