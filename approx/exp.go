// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package approx

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"

	"github.com/KaznacheevM/bigmath/accuracy"
	"github.com/KaznacheevM/bigmath/dec"
	"github.com/KaznacheevM/bigmath/series"
)

// Exp approximates e^x. The argument is split as x = k + f with
// k = floor(x) and f = x - k in [0, 1); the general case recombines an
// exact integer power of e with the Maclaurin exponential of f.
type Exp struct {
	factory Factory
	arg     *apd.Decimal
	intPart int
	frac    seriesSum
}

// Exp returns an approximator for e^x. The integer part of x must fit a
// 32-bit signed integer.
func (f Factory) Exp(x *apd.Decimal) (*Exp, error) {
	k, err := intPart(x)
	if err != nil {
		return nil, err
	}
	fracArg := new(apd.Decimal)
	if err := dec.Sub(fracArg, x, apd.New(int64(k), 0)); err != nil {
		return nil, err
	}
	return &Exp{
		factory: f,
		arg:     new(apd.Decimal).Set(x),
		intPart: k,
		frac:    seriesSum{series.New(false, 0, series.NewExpTerm(fracArg), f.acc)},
	}, nil
}

func intPart(x *apd.Decimal) (int, error) {
	floor := new(apd.Decimal)
	if err := dec.Round(floor, x, 0, apd.RoundFloor); err != nil {
		return 0, err
	}
	v, err := floor.Int64()
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errors.Errorf("exp: integer part of %s overflows int32", x)
	}
	return int(v), nil
}

// Approximate returns e^x with its least significant digit at
// 10^position, rounded according to mode.
func (e *Exp) Approximate(position int, mode string) (*apd.Decimal, error) {
	one := apd.New(1, 0)
	switch {
	case e.arg.IsZero():
		z := new(apd.Decimal)
		if err := dec.Round(z, one, position, mode); err != nil {
			return nil, err
		}
		return z, nil
	case e.arg.Sign() < 0:
		return e.reciprocal(position, mode)
	case e.arg.Cmp(one) == 0:
		return e.factory.Euler().Approximate(position, mode)
	case e.arg.Cmp(one) < 0:
		return e.frac.Approximate(position, mode)
	}

	adjusted, err := accuracy.Positional.Adjust(position)
	if err != nil {
		return nil, err
	}
	v, err := e.decimal(adjusted)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Round(z, v, position, mode); err != nil {
		return nil, err
	}
	return z, nil
}

// reciprocal computes e^x for negative x as 1/e^(-x), with the inner
// value truncated at the target position and the division applying the
// caller's rounding.
func (e *Exp) reciprocal(position int, mode string) (*apd.Decimal, error) {
	negated := new(apd.Decimal).Neg(e.arg)
	inner, err := e.factory.Exp(negated)
	if err != nil {
		return nil, err
	}
	v, err := inner.Approximate(position, apd.RoundDown)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Quo(z, apd.New(1, 0), v, position, mode); err != nil {
		return nil, err
	}
	return z, nil
}

// decimal computes e^k * exp(f) truncated at the given position. The
// fractional factor is pushed below the target by an overestimate of
// e^(k+1) <= 3^(k+1), so that its error cannot surface through the
// multiplication.
func (e *Exp) decimal(position int) (*apd.Decimal, error) {
	intExp, err := e.integer(position)
	if err != nil {
		return nil, err
	}
	fracPos := position - dec.OverestimateOrderBigInt(pow3(e.intPart+1))
	fracExp, err := e.frac.Approximate(fracPos, apd.RoundDown)
	if err != nil {
		return nil, err
	}
	prod := new(apd.Decimal)
	if err := dec.Mul(prod, intExp, fracExp); err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Round(z, prod, position, apd.RoundDown); err != nil {
		return nil, err
	}
	return z, nil
}

// integer computes e^k truncated at the given position as the exact k-th
// power of e taken at an accuracy that absorbs the power's error
// amplification, again bounded through 3^(k-1).
func (e *Exp) integer(position int) (*apd.Decimal, error) {
	intOrder := dec.OverestimateOrderInt(e.intPart)
	ePos := position - 1 - intOrder - dec.OverestimateOrderBigInt(pow3(e.intPart-1))
	ev, err := e.factory.Euler().Approximate(ePos, apd.RoundDown)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.PowInt(z, ev, e.intPart); err != nil {
		return nil, err
	}
	if err := dec.Round(z, z, position, apd.RoundDown); err != nil {
		return nil, err
	}
	return z, nil
}

// OrderComputer estimates the order of e^x. A zero integer part defers to
// the Maclaurin series; otherwise an integral power below e^k gives a
// cheap lower bound: 2^k for positive k, 4^k for negative k (where
// 4^k < e^k).
func (e *Exp) OrderComputer() OrderComputer {
	if e.intPart == 0 {
		return e.frac.OrderComputer()
	}
	return computer{approx: e, lower: e.orderLowerEstimate}
}

func (e *Exp) orderLowerEstimate() (int, error) {
	if e.intPart == 0 {
		return 0, errors.New("exp: order lower estimate requires a non-zero integer part")
	}
	if e.intPart > 0 {
		return dec.OrderBigInt(pow2(e.intPart)), nil
	}
	recip := new(apd.Decimal)
	p := apd.NewWithBigInt(pow4(-e.intPart), 0)
	if err := dec.QuoSig(recip, apd.New(1, 0), p, 1, apd.RoundDown); err != nil {
		return 0, err
	}
	return dec.Order(recip), nil
}

func pow2(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(n)), nil)
}

func pow4(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(4), big.NewInt(int64(n)), nil)
}

func pow3(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(3), big.NewInt(int64(n)), nil)
}
