// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval implements typed real intervals used for domain
// validation. An interval is a pair of bounds and a kind describing which
// sides are open or unbounded; membership is a plain predicate and no
// interval arithmetic is performed.
package interval

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// Kind tags the bound configuration of an interval.
type Kind int

const (
	Closed Kind = iota
	Open
	LeftOpen
	RightOpen
	LeftUnboundedOpen
	RightUnboundedOpen
	LeftUnboundedClosed
	RightUnboundedClosed
	Unbounded
)

// Interval is an immutable interval over decimals. A nil bound stands for
// the corresponding infinity; constructors reject configurations that do
// not match the kind.
type Interval struct {
	kind  Kind
	lower *apd.Decimal
	upper *apd.Decimal
}

// NewClosed returns [lower, upper].
func NewClosed(lower, upper *apd.Decimal) (Interval, error) {
	return newFinite(Closed, lower, upper, false)
}

// NewOpen returns (lower, upper).
func NewOpen(lower, upper *apd.Decimal) (Interval, error) {
	return newFinite(Open, lower, upper, true)
}

// NewLeftOpen returns (lower, upper].
func NewLeftOpen(lower, upper *apd.Decimal) (Interval, error) {
	return newFinite(LeftOpen, lower, upper, true)
}

// NewRightOpen returns [lower, upper).
func NewRightOpen(lower, upper *apd.Decimal) (Interval, error) {
	return newFinite(RightOpen, lower, upper, true)
}

// NewLeftUnboundedOpen returns (-inf, upper).
func NewLeftUnboundedOpen(upper *apd.Decimal) (Interval, error) {
	if upper == nil {
		return Interval{}, errors.New("interval: finite upper bound required")
	}
	return Interval{kind: LeftUnboundedOpen, upper: upper}, nil
}

// NewLeftUnboundedClosed returns (-inf, upper].
func NewLeftUnboundedClosed(upper *apd.Decimal) (Interval, error) {
	if upper == nil {
		return Interval{}, errors.New("interval: finite upper bound required")
	}
	return Interval{kind: LeftUnboundedClosed, upper: upper}, nil
}

// NewRightUnboundedOpen returns (lower, +inf).
func NewRightUnboundedOpen(lower *apd.Decimal) (Interval, error) {
	if lower == nil {
		return Interval{}, errors.New("interval: finite lower bound required")
	}
	return Interval{kind: RightUnboundedOpen, lower: lower}, nil
}

// NewRightUnboundedClosed returns [lower, +inf).
func NewRightUnboundedClosed(lower *apd.Decimal) (Interval, error) {
	if lower == nil {
		return Interval{}, errors.New("interval: finite lower bound required")
	}
	return Interval{kind: RightUnboundedClosed, lower: lower}, nil
}

// NewUnbounded returns (-inf, +inf).
func NewUnbounded() Interval {
	return Interval{kind: Unbounded}
}

func newFinite(kind Kind, lower, upper *apd.Decimal, strict bool) (Interval, error) {
	if lower == nil || upper == nil {
		return Interval{}, errors.New("interval: finite bounds required")
	}
	c := lower.Cmp(upper)
	if c > 0 || (strict && c == 0) {
		return Interval{}, errors.Errorf("interval: bounds %s and %s out of order", lower, upper)
	}
	return Interval{kind: kind, lower: lower, upper: upper}, nil
}

// Positive returns (0, +inf).
func Positive() Interval {
	iv, _ := NewRightUnboundedOpen(apd.New(0, 0))
	return iv
}

// NonNegative returns [0, +inf).
func NonNegative() Interval {
	iv, _ := NewRightUnboundedClosed(apd.New(0, 0))
	return iv
}

// Negative returns (-inf, 0).
func Negative() Interval {
	iv, _ := NewLeftUnboundedOpen(apd.New(0, 0))
	return iv
}

// NonPositive returns (-inf, 0].
func NonPositive() Interval {
	iv, _ := NewLeftUnboundedClosed(apd.New(0, 0))
	return iv
}

// Kind returns the interval's kind tag.
func (iv Interval) Kind() Kind { return iv.kind }

// Lower returns the finite lower bound, or nil when the interval is left
// unbounded.
func (iv Interval) Lower() *apd.Decimal { return iv.lower }

// Upper returns the finite upper bound, or nil when the interval is right
// unbounded.
func (iv Interval) Upper() *apd.Decimal { return iv.upper }

// Contains reports whether x lies inside the interval.
func (iv Interval) Contains(x *apd.Decimal) bool {
	return !iv.LeftOf(x) && !iv.RightOf(x)
}

// LeftOf reports whether x lies strictly left of the interval.
func (iv Interval) LeftOf(x *apd.Decimal) bool {
	if iv.lower == nil {
		return false
	}
	c := x.Cmp(iv.lower)
	if iv.lowerOpen() {
		return c <= 0
	}
	return c < 0
}

// RightOf reports whether x lies strictly right of the interval.
func (iv Interval) RightOf(x *apd.Decimal) bool {
	if iv.upper == nil {
		return false
	}
	c := x.Cmp(iv.upper)
	if iv.upperOpen() {
		return c >= 0
	}
	return c > 0
}

func (iv Interval) lowerOpen() bool {
	switch iv.kind {
	case Open, LeftOpen, RightUnboundedOpen:
		return true
	}
	return false
}

func (iv Interval) upperOpen() bool {
	switch iv.kind {
	case Open, RightOpen, LeftUnboundedOpen:
		return true
	}
	return false
}
