// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"

	"github.com/KaznacheevM/bigmath/dec"
)

// SignMapper derives the sign of a term from its index.
type SignMapper int

const (
	Positive SignMapper = iota
	Negative
	Alternating
)

// Sign returns +1 or -1 for the term at index.
func (m SignMapper) Sign(index int) int {
	switch m {
	case Negative:
		return -1
	case Alternating:
		if index%2 != 0 {
			return -1
		}
		return 1
	default:
		return 1
	}
}

// IndexMapper transforms a term index before it parameterizes the term.
type IndexMapper int

const (
	Identity IndexMapper = iota
	Double
	ShiftedOdd
)

// Map returns the transformed index: n, 2n or 2n+1.
func (m IndexMapper) Map(index int) int {
	switch m {
	case Double:
		return 2 * index
	case ShiftedOdd:
		return 2*index + 1
	default:
		return index
	}
}

// Term generates the values of a series, one per index.
//
// Approximate returns the term computed to positional accuracy p,
// truncating toward zero, with error at most 10^p. ApproximateMinimal
// returns the term truncated to a single significant digit.
// OverestimateOrder returns an upper bound on the term's order; the bound
// must not loosen between calls with the same index.
type Term interface {
	Approximate(index, position int) (*apd.Decimal, error)
	ApproximateMinimal(index int) (*apd.Decimal, error)
	OverestimateOrder(index int) (int, error)
}

// ratio supplies a term's exact numerator and denominator.
type ratio interface {
	numerator(index int) (*apd.Decimal, error)
	denominator(index int) (*apd.Decimal, error)
}

// fractionalTerm derives every Term operation from an exact ratio: values
// are positional divisions truncated toward zero, and the order bound is
// OverestimateOrder(numerator) - Order(denominator).
type fractionalTerm struct {
	sign SignMapper
	ratio
}

func (t fractionalTerm) Approximate(index, position int) (*apd.Decimal, error) {
	num, den, err := t.parts(index)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Quo(z, num, den, position, apd.RoundDown); err != nil {
		return nil, err
	}
	return t.applySign(index, z), nil
}

func (t fractionalTerm) ApproximateMinimal(index int) (*apd.Decimal, error) {
	num, den, err := t.parts(index)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if num.IsZero() {
		z.Set(num)
		return z, nil
	}
	if err := dec.QuoSig(z, num, den, 1, apd.RoundDown); err != nil {
		return nil, err
	}
	return t.applySign(index, z), nil
}

func (t fractionalTerm) OverestimateOrder(index int) (int, error) {
	num, den, err := t.parts(index)
	if err != nil {
		return 0, err
	}
	if num.IsZero() {
		return dec.OrderOfZero, nil
	}
	return dec.OverestimateOrder(num) - dec.Order(den), nil
}

func (t fractionalTerm) parts(index int) (num, den *apd.Decimal, err error) {
	num, err = t.numerator(index)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "series: numerator of term %d", index)
	}
	den, err = t.denominator(index)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "series: denominator of term %d", index)
	}
	if den.IsZero() {
		return nil, nil, errors.Errorf("series: zero denominator at term %d", index)
	}
	return num, den, nil
}

func (t fractionalTerm) applySign(index int, z *apd.Decimal) *apd.Decimal {
	if t.sign.Sign(index) < 0 && !z.IsZero() {
		z.Negative = !z.Negative
	}
	return z
}
