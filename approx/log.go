// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package approx

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"

	"github.com/KaznacheevM/bigmath/accuracy"
	"github.com/KaznacheevM/bigmath/dec"
)

// Log approximates log_b(x) = ln(x)/ln(b). The orders of both logarithms
// steer the accuracy of numerator and denominator; they are computed once
// per approximator.
type Log struct {
	factory Factory
	base    *apd.Decimal
	arg     *apd.Decimal
	baseLn  *Ln
	argLn   *Ln
	common  bool

	baseOrder lazyInt
	argOrder  lazyInt
}

// Log returns an approximator for log_b(x); b > 0, b != 1, x > 0.
func (f Factory) Log(base, x *apd.Decimal) (*Log, error) {
	if base.Sign() <= 0 {
		return nil, errors.Wrapf(ErrDomain, "log: base %s must be positive", base)
	}
	if base.Cmp(apd.New(1, 0)) == 0 {
		return nil, errors.Wrapf(ErrDomain, "log: base cannot equal one")
	}
	if x.Sign() <= 0 {
		return nil, errors.Wrapf(ErrDomain, "log: argument %s must be positive", x)
	}
	baseLn, err := f.Ln(base)
	if err != nil {
		return nil, err
	}
	argLn, err := f.Ln(x)
	if err != nil {
		return nil, err
	}
	return &Log{
		factory: f,
		base:    new(apd.Decimal).Set(base),
		arg:     new(apd.Decimal).Set(x),
		baseLn:  baseLn,
		argLn:   argLn,
	}, nil
}

// Log10 returns an approximator for the common logarithm. The known order
// of ln(10) lets the denominator accuracy drop one safety term.
func (f Factory) Log10(x *apd.Decimal) (*Log, error) {
	l, err := f.Log(apd.New(10, 0), x)
	if err != nil {
		return nil, err
	}
	l.common = true
	return l, nil
}

// Approximate returns log_b(x) with its least significant digit at
// 10^position, rounded according to mode.
func (l *Log) Approximate(position int, mode string) (*apd.Decimal, error) {
	adjusted, err := accuracy.Positional.Adjust(position)
	if err != nil {
		return nil, err
	}
	argOrder, err := l.argLnOrder()
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if argOrder == dec.OrderOfZero {
		// ln(x) = 0, so log_b(x) = 0 exactly.
		if err := dec.Round(z, apd.New(0, 0), position, mode); err != nil {
			return nil, err
		}
		return z, nil
	}

	numPos, denPos, err := l.operandPositions(adjusted, argOrder)
	if err != nil {
		return nil, err
	}
	num, err := l.argLn.Approximate(numPos, apd.RoundDown)
	if err != nil {
		return nil, err
	}
	den, err := l.baseLn.Approximate(denPos, apd.RoundDown)
	if err != nil {
		return nil, err
	}
	if err := dec.Quo(z, num, den, position, mode); err != nil {
		return nil, err
	}
	return z, nil
}

// operandPositions allocates accuracy between ln(x) and ln(b). The two
// extra positions absorb division round-off plus the subtraction inside
// each logarithm.
func (l *Log) operandPositions(adjusted, argOrder int) (numPos, denPos int, err error) {
	if l.common {
		return adjusted - 2, adjusted - argOrder - 1, nil
	}
	baseOrder, err := l.baseLnOrder()
	if err != nil {
		return 0, 0, err
	}
	return adjusted - baseOrder - 2, adjusted + 2*baseOrder - argOrder - 2, nil
}

func (l *Log) baseLnOrder() (int, error) {
	return l.baseOrder.get(func() (int, error) {
		return l.baseLn.OrderComputer().Compute()
	})
}

func (l *Log) argLnOrder() (int, error) {
	return l.argOrder.get(func() (int, error) {
		return l.argLn.OrderComputer().Compute()
	})
}

// OrderComputer estimates the order of the quotient from the orders of
// the two logarithms.
func (l *Log) OrderComputer() OrderComputer {
	return computer{approx: l, lower: l.orderLowerEstimate}
}

func (l *Log) orderLowerEstimate() (int, error) {
	argOrder, err := l.argLnOrder()
	if err != nil {
		return 0, err
	}
	if argOrder == dec.OrderOfZero {
		return dec.OrderOfZero, nil
	}
	if l.common {
		return argOrder - 1, nil
	}
	baseOrder, err := l.baseLnOrder()
	if err != nil {
		return 0, err
	}
	return argOrder - baseOrder - 1, nil
}
