// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"

	"github.com/KaznacheevM/bigmath/dec"
)

// NewEulerTerm returns the term generator 1/n! of the Maclaurin series
// for the Euler number.
func NewEulerTerm() Term {
	return fractionalTerm{sign: Positive, ratio: factorialRatio{
		mapper: Identity,
		num: func(int) (*apd.Decimal, error) {
			return apd.New(1, 0), nil
		},
	}}
}

// NewExpTerm returns the term generator x^n/n! of the Maclaurin series
// for e^x.
func NewExpTerm(x *apd.Decimal) Term {
	arg := new(apd.Decimal).Set(x)
	return fractionalTerm{sign: Positive, ratio: factorialRatio{
		mapper: Identity,
		num: func(index int) (*apd.Decimal, error) {
			z := new(apd.Decimal)
			if err := dec.PowInt(z, arg, index); err != nil {
				return nil, err
			}
			return z, nil
		},
	}}
}

// factorialRatio is a ratio whose denominator is the factorial of the
// mapped index.
type factorialRatio struct {
	mapper IndexMapper
	num    func(index int) (*apd.Decimal, error)
}

func (r factorialRatio) numerator(index int) (*apd.Decimal, error) {
	return r.num(index)
}

func (r factorialRatio) denominator(index int) (*apd.Decimal, error) {
	mapped := r.mapper.Map(index)
	if mapped < 0 {
		return nil, errors.Errorf("series: negative factorial index %d", mapped)
	}
	f, err := dec.Factorial(int64(mapped))
	if err != nil {
		return nil, err
	}
	return apd.NewWithBigInt(f, 0), nil
}

// NewGregoryLnTerm returns the term generator of the Gregory logarithm
// series: (x-1)^(2n+1) / ((x+1)^(2n+1) * (2n+1)).
func NewGregoryLnTerm(x *apd.Decimal) Term {
	r := &gregoryRatio{mapper: ShiftedOdd}
	// x-1 and x+1 are exact and immutable; compute them once.
	if err := dec.Sub(&r.argMinusOne, x, apd.New(1, 0)); err != nil {
		r.err = err
	}
	if err := dec.Add(&r.argPlusOne, x, apd.New(1, 0)); err != nil && r.err == nil {
		r.err = err
	}
	return fractionalTerm{sign: Positive, ratio: r}
}

type gregoryRatio struct {
	mapper      IndexMapper
	argMinusOne apd.Decimal
	argPlusOne  apd.Decimal
	err         error
}

func (r *gregoryRatio) numerator(index int) (*apd.Decimal, error) {
	if r.err != nil {
		return nil, r.err
	}
	mapped := r.mapper.Map(index)
	z := new(apd.Decimal)
	if err := dec.PowInt(z, &r.argMinusOne, mapped); err != nil {
		return nil, err
	}
	return z, nil
}

func (r *gregoryRatio) denominator(index int) (*apd.Decimal, error) {
	if r.err != nil {
		return nil, r.err
	}
	mapped := r.mapper.Map(index)
	z := new(apd.Decimal)
	if err := dec.PowInt(z, &r.argPlusOne, mapped); err != nil {
		return nil, err
	}
	if err := dec.Mul(z, z, apd.New(int64(mapped), 0)); err != nil {
		return nil, err
	}
	return z, nil
}
