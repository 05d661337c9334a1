// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package accuracy defines the two precision vocabularies of the module
// and the conversions between them.
//
// A positional accuracy p places the least significant retained digit at
// 10^p; smaller p means more fractional digits. A significant precision P
// counts retained leading digits. Given the order k of a result,
// p = k + 1 - P.
package accuracy

import (
	"math"

	"github.com/pkg/errors"
)

// ErrPrecision reports a significant-digit precision below one.
var ErrPrecision = errors.New("accuracy: precision below one")

// Strategy selects how an accuracy argument is interpreted.
type Strategy int

const (
	// Positional accuracy: the digit position of the least significant
	// retained digit. The numeric core uses this strategy throughout.
	Positional Strategy = iota
	// DecimalPlaces counts digits after the decimal point.
	DecimalPlaces
	// SignificantFigures counts retained leading digits.
	SignificantFigures
)

// adjustment is the safety margin applied before any accumulation so that
// round-off inside a computation cannot reach the retained digits.
const adjustment = 1

// Adjust widens the accuracy by the safety margin: positional accuracies
// move one position down, digit counts grow by one. Overflow of the
// 32-bit accuracy range is a fatal arithmetic error.
func (s Strategy) Adjust(accuracy int) (int, error) {
	if s == Positional {
		return subExact(accuracy, adjustment)
	}
	return addExact(accuracy, adjustment)
}

// LeadingDigitPosition converts a result order into the accuracy, in the
// strategy's vocabulary, that retains exactly the leading digit.
func (s Strategy) LeadingDigitPosition(order int) int {
	switch s {
	case DecimalPlaces:
		return -order
	case SignificantFigures:
		return 1
	default:
		return order
	}
}

// PositionForPrecision converts a significant precision into the position
// of the least significant digit, given the order of the result.
func PositionForPrecision(precision, order int) (int, error) {
	if precision < 1 {
		return 0, errors.Wrapf(ErrPrecision, "converting precision %d", precision)
	}
	return order + 1 - precision, nil
}

// PrecisionForPosition converts a least-digit position back into a
// significant precision, given the order of the result. A result below
// one signals an arithmetic error upstream.
func PrecisionForPosition(position, order int) (int, error) {
	precision := order + 1 - position
	if precision < 1 {
		return 0, errors.Wrapf(ErrPrecision, "position %d with order %d", position, order)
	}
	return precision, nil
}

// PositionForScale converts a decimal scale into a digit position.
func PositionForScale(scale int) int { return -scale }

// ScaleForPosition converts a digit position into a decimal scale.
func ScaleForPosition(position int) int { return -position }

func addExact(a, b int) (int, error) {
	s := a + b
	if s < math.MinInt32 || s > math.MaxInt32 {
		return 0, errors.Errorf("accuracy: adjusting %d overflows int32", a)
	}
	return s, nil
}

func subExact(a, b int) (int, error) {
	return addExact(a, -b)
}
