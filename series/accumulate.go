// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"math"
	"runtime"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/KaznacheevM/bigmath/dec"
)

// Accumulator sums count terms starting at minIndex, each computed to the
// given positional accuracy. Implementations must produce identical sums
// for identical inputs: terms are truncated values, so their addition
// commutes exactly.
type Accumulator interface {
	Accumulate(minIndex, count, position int, term Term) (*apd.Decimal, error)
}

// Sequential sums terms one after another in index order.
type Sequential struct{}

func (Sequential) Accumulate(minIndex, count, position int, term Term) (*apd.Decimal, error) {
	if err := checkRange(minIndex, count); err != nil {
		return nil, err
	}
	sum := apd.New(0, 0)
	for i := 0; i < count; i++ {
		v, err := term.Approximate(minIndex+i, position)
		if err != nil {
			return nil, errors.Wrapf(err, "series: term %d", minIndex+i)
		}
		if err := dec.Add(sum, sum, v); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// Parallel computes terms on a bounded worker pool sized to the hardware
// parallelism and sums them in completion order. The first failing term
// aborts the call; partial results are discarded.
type Parallel struct{}

func (Parallel) Accumulate(minIndex, count, position int, term Term) (*apd.Decimal, error) {
	if err := checkRange(minIndex, count); err != nil {
		return nil, err
	}
	if count == 0 {
		return apd.New(0, 0), nil
	}

	results := make(chan *apd.Decimal, count)
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < count; i++ {
		index := minIndex + i
		g.Go(func() error {
			v, err := term.Approximate(index, position)
			if err != nil {
				return errors.Wrapf(err, "series: term %d", index)
			}
			results <- v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	sum := apd.New(0, 0)
	for v := range results {
		if err := dec.Add(sum, sum, v); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func checkRange(minIndex, count int) error {
	if count < 0 {
		return errors.Errorf("series: negative term count %d", count)
	}
	greatest := int64(minIndex) + int64(count) - 1
	if greatest > math.MaxInt32 {
		return errors.Errorf("series: greatest term index %d overflows int32", greatest)
	}
	return nil
}
