// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package series sums convergent series to a requested positional
// accuracy.
//
// Given a term generator, the engine first solves for the number of terms
// whose partial sum is accurate at the requested position, then for the
// accuracy each term must carry so that accumulated round-off stays below
// the retained digits, and finally hands the range to an accumulator.
package series

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/KaznacheevM/bigmath/accuracy"
	"github.com/KaznacheevM/bigmath/dec"
	"github.com/KaznacheevM/bigmath/search"
)

// Series sums terms of a convergent series.
//
// When optimized is true, the negligibility test assumes the remainder
// shrinks by at least a factor of ten per term, |R_{n+1}| <= |R_n|/10.
// Callers enable it only after their argument reduction has established
// that bound; the plain test charges every accumulated term one unit of
// round-off instead.
type Series struct {
	optimized bool
	minIndex  int
	term      Term
	acc       Accumulator
}

// New returns a series over term starting at minIndex, summed by acc.
func New(optimized bool, minIndex int, term Term, acc Accumulator) *Series {
	return &Series{optimized: optimized, minIndex: minIndex, term: term, acc: acc}
}

// MinIndex returns the index of the first accumulated term.
func (s *Series) MinIndex() int { return s.minIndex }

// Optimized reports whether the fast negligibility test is in use.
func (s *Series) Optimized() bool { return s.optimized }

// Approximate returns the series sum with its least significant digit at
// 10^position, rounded according to mode.
func (s *Series) Approximate(position int, mode string) (*apd.Decimal, error) {
	adjusted, err := accuracy.Positional.Adjust(position)
	if err != nil {
		return nil, err
	}
	count, err := s.requiredTerms(adjusted)
	if err != nil {
		return nil, err
	}
	sum, err := s.acc.Accumulate(s.minIndex, count, termPosition(adjusted, count), s.term)
	if err != nil {
		return nil, err
	}
	z := new(apd.Decimal)
	if err := dec.Round(z, sum, position, mode); err != nil {
		return nil, err
	}
	return z, nil
}

// FirstTermMinimal returns the first accumulated term truncated to one
// significant digit; its order seeds the series order estimate.
func (s *Series) FirstTermMinimal() (*apd.Decimal, error) {
	return s.term.ApproximateMinimal(s.minIndex)
}

// requiredTerms solves for the count of terms that must be accumulated:
// the distance from minIndex to the first index at which terms become
// negligible at the adjusted accuracy.
func (s *Series) requiredTerms(adjusted int) (int, error) {
	n, err := search.Find(s.minIndex, true, s.negligible(adjusted))
	if err != nil {
		return 0, err
	}
	return n - s.minIndex, nil
}

// termPosition derives the per-term accuracy from the adjusted sum
// accuracy: accumulating count truncated terms can contribute up to count
// units of round-off, so each term is pushed below the target by an upper
// bound on that contribution.
func termPosition(adjusted, count int) int {
	if count == 0 {
		return adjusted
	}
	return adjusted - dec.OverestimateOrderInt(count)
}

// negligible builds the predicate deciding whether the term at an index
// no longer affects the retained digits of the partial sum.
func (s *Series) negligible(adjusted int) search.Predicate {
	if s.optimized {
		threshold := adjusted - 1
		return func(i int) (bool, error) {
			order, err := s.term.OverestimateOrder(i)
			if err != nil {
				return false, err
			}
			return order < threshold, nil
		}
	}
	return func(i int) (bool, error) {
		order, err := s.term.OverestimateOrder(i)
		if err != nil {
			return false, err
		}
		return order < termPosition(adjusted, i-s.minIndex), nil
	}
}
