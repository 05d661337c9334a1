// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package search finds the integer threshold of a monotonic predicate.
//
// The predicate must flip exactly once over the integers in the chosen
// direction: for an increasing search it is false below some threshold t
// and true from t upward; for a decreasing search the mirror image. The
// finder brackets t by exponential steps from a starting point, then
// narrows the bracket by binary search.
package search

import (
	"math"

	"github.com/pkg/errors"
)

// Predicate reports whether n satisfies the search condition. It may run
// arbitrary sub-computations; an error aborts the search.
type Predicate func(n int) (bool, error)

// Find returns the threshold of pred: the least satisfying integer for an
// increasing search, the greatest for a decreasing one. The bracket phase
// starts stepping from start; start itself is only examined by the
// narrowing phase. Overflow of the 32-bit step range is a fatal error;
// a predicate that never holds in the search direction therefore ends in
// that overflow error.
func Find(start int, increasing bool, pred Predicate) (int, error) {
	prev := start
	next, err := step(prev, increasing)
	if err != nil {
		return 0, err
	}
	for {
		ok, err := pred(next)
		if err != nil {
			return 0, err
		}
		if ok {
			break
		}
		prev = next
		next, err = step(next, increasing)
		if err != nil {
			return 0, err
		}
	}

	lo, hi := prev, next
	if lo > hi {
		lo, hi = hi, lo
	}
	return threshold(lo, hi, increasing, pred)
}

// step computes the next bracket probe. Probes move away from zero by
// doubling and toward zero by halving, so that a search seeded at zero
// covers either sign without overshooting more than twofold.
func step(prev int, increasing bool) (int, error) {
	switch {
	case prev == 0:
		if increasing {
			return 1, nil
		}
		return -1, nil
	case prev < 0:
		if increasing {
			return prev / 2, nil // rounds toward zero: ceiling for negatives
		}
		return mulExact(prev, 2)
	default:
		if increasing {
			return mulExact(prev, 2)
		}
		return prev / 2, nil
	}
}

// threshold runs the classical binary threshold search over [lo, hi].
func threshold(lo, hi int, increasing bool, pred Predicate) (int, error) {
	result, found := 0, false
	for lo <= hi {
		mid := lo + (hi-lo)/2
		ok, err := pred(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			result, found = mid, true
		}
		if ok == increasing {
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	if !found {
		return 0, errors.New("search: no matching integer inside bracket")
	}
	return result, nil
}

func mulExact(a, b int) (int, error) {
	p := a * b
	if p < math.MinInt32 || p > math.MaxInt32 {
		return 0, errors.Errorf("search: bracket step from %d overflows int32", a)
	}
	return p, nil
}
