// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package approx

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/KaznacheevM/bigmath/series"
)

// Euler approximates the Euler number e by its Maclaurin series sum 1/n!.
type Euler struct {
	sum seriesSum
}

// Euler returns an approximator for the constant e.
func (f Factory) Euler() *Euler {
	return &Euler{sum: seriesSum{series.New(false, 0, series.NewEulerTerm(), f.acc)}}
}

// Approximate returns e with its least significant digit at 10^position,
// rounded according to mode.
func (e *Euler) Approximate(position int, mode string) (*apd.Decimal, error) {
	return e.sum.Approximate(position, mode)
}

// OrderComputer returns the constant order of e, which is zero.
func (e *Euler) OrderComputer() OrderComputer {
	return constantOrder(0)
}
