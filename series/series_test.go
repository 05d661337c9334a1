// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"math"
	"testing"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return d
}

func TestSignMapper(t *testing.T) {
	assert.Equal(t, 1, Positive.Sign(0))
	assert.Equal(t, 1, Positive.Sign(7))
	assert.Equal(t, -1, Negative.Sign(0))
	assert.Equal(t, 1, Alternating.Sign(0))
	assert.Equal(t, -1, Alternating.Sign(1))
	assert.Equal(t, 1, Alternating.Sign(2))
}

func TestIndexMapper(t *testing.T) {
	assert.Equal(t, 5, Identity.Map(5))
	assert.Equal(t, 10, Double.Map(5))
	assert.Equal(t, 11, ShiftedOdd.Map(5))
	assert.Equal(t, 1, ShiftedOdd.Map(0))
}

func TestEulerTerm(t *testing.T) {
	term := NewEulerTerm()

	v, err := term.Approximate(3, -6)
	require.NoError(t, err)
	// 1/3! = 0.1666..., truncated.
	assert.Zero(t, v.Cmp(mustParse(t, "0.166666")))

	v, err = term.ApproximateMinimal(3)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "0.1")))

	order, err := term.OverestimateOrder(3)
	require.NoError(t, err)
	assert.Equal(t, 0, order)

	order, err = term.OverestimateOrder(10)
	require.NoError(t, err)
	// 1/10! = 2.75e-7: the overestimate must not sit below -7.
	assert.GreaterOrEqual(t, order, -7)
}

func TestExpTerm(t *testing.T) {
	term := NewExpTerm(mustParse(t, "0.5"))

	v, err := term.Approximate(2, -6)
	require.NoError(t, err)
	// 0.25/2 = 0.125 exactly.
	assert.Zero(t, v.Cmp(mustParse(t, "0.125")))

	v, err = term.Approximate(0, -6)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "1")))
}

func TestExpTermZeroArgument(t *testing.T) {
	term := NewExpTerm(apd.New(0, 0))

	v, err := term.Approximate(0, -6)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "1")), "0^0/0! contributes the unit term")

	v, err = term.Approximate(1, -6)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	order, err := term.OverestimateOrder(1)
	require.NoError(t, err)
	assert.Less(t, order, -1000000, "zero terms report the sentinel order")
}

func TestGregoryLnTerm(t *testing.T) {
	term := NewGregoryLnTerm(mustParse(t, "0.5"))

	// T(0) = (x-1)/((x+1)*1) = -0.5/1.5, truncated toward zero.
	v, err := term.Approximate(0, -5)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "-0.33333")))

	// T(1) = (-0.5)^3/((1.5)^3*3) = -0.125/10.125.
	v, err = term.Approximate(1, -6)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "-0.012345")))
}

func TestSeriesApproximateEuler(t *testing.T) {
	for _, acc := range []Accumulator{Sequential{}, Parallel{}} {
		s := New(false, 0, NewEulerTerm(), acc)
		v, err := s.Approximate(-12, apd.RoundDown)
		require.NoError(t, err)
		assert.Zero(t, v.Cmp(mustParse(t, "2.718281828459")), "accumulator %T", acc)
	}
}

func TestSeriesDeterminism(t *testing.T) {
	seq := New(false, 0, NewEulerTerm(), Sequential{})
	par := New(false, 0, NewEulerTerm(), Parallel{})

	a, err := seq.Approximate(-30, apd.RoundHalfUp)
	require.NoError(t, err)
	b, err := par.Approximate(-30, apd.RoundHalfUp)
	require.NoError(t, err)
	c, err := par.Approximate(-30, apd.RoundHalfUp)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, b.String(), c.String())
}

func TestSeriesFirstTermMinimal(t *testing.T) {
	s := New(false, 0, NewEulerTerm(), Sequential{})
	v, err := s.FirstTermMinimal()
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "1")))
}

// failingTerm reports an error at every index at or above failAt.
type failingTerm struct {
	failAt int
	err    error
}

func (f failingTerm) Approximate(index, position int) (*apd.Decimal, error) {
	if index >= f.failAt {
		return nil, f.err
	}
	return apd.New(1, int32(position)), nil
}

func (f failingTerm) ApproximateMinimal(index int) (*apd.Decimal, error) {
	return f.Approximate(index, 0)
}

func (f failingTerm) OverestimateOrder(index int) (int, error) {
	return -index, nil
}

func TestAccumulatorErrorPropagation(t *testing.T) {
	sentinel := errors.New("term blew up")
	term := failingTerm{failAt: 3, err: sentinel}

	for _, acc := range []Accumulator{Sequential{}, Parallel{}} {
		_, err := acc.Accumulate(0, 8, -5, term)
		require.ErrorIs(t, err, sentinel, "accumulator %T", acc)
	}
}

func TestAccumulatorRangeChecks(t *testing.T) {
	term := NewEulerTerm()
	for _, acc := range []Accumulator{Sequential{}, Parallel{}} {
		v, err := acc.Accumulate(0, 0, -5, term)
		require.NoError(t, err)
		assert.True(t, v.IsZero(), "empty accumulation sums to zero")

		_, err = acc.Accumulate(0, -1, -5, term)
		assert.Error(t, err, "negative count")

		_, err = acc.Accumulate(math.MaxInt32-2, 10, -5, term)
		assert.Error(t, err, "index overflow")
	}
}

func TestOptimizedNeedsFewerTerms(t *testing.T) {
	// On the Gregory window the optimized test stops at the first
	// sub-threshold term; the plain test additionally charges round-off
	// per term, so it can only demand more terms, never fewer.
	arg := mustParse(t, "1.5")
	fast := New(true, 0, NewGregoryLnTerm(arg), Sequential{})
	slow := New(false, 0, NewGregoryLnTerm(arg), Sequential{})

	// Position -20 is solved at the adjusted accuracy -21.
	fastCount, err := fast.requiredTerms(-21)
	require.NoError(t, err)
	slowCount, err := slow.requiredTerms(-21)
	require.NoError(t, err)
	assert.LessOrEqual(t, fastCount, slowCount)

	a, err := fast.Approximate(-20, apd.RoundDown)
	require.NoError(t, err)
	b, err := slow.Approximate(-20, apd.RoundDown)
	require.NoError(t, err)

	// Both sums approximate ln(1.5)/2 = 0.20273255405408219098...
	want := mustParse(t, "0.20273255405408219098")
	assertWithin(t, a, want, "1e-19")
	assertWithin(t, b, want, "1e-19")
	assertWithin(t, a, b, "1e-19")
}

func assertWithin(t *testing.T, got, want *apd.Decimal, bound string) {
	t.Helper()
	ctx := apd.BaseContext
	diff := new(apd.Decimal)
	if _, err := ctx.Sub(diff, got, want); err != nil {
		t.Fatal(err)
	}
	diff.Abs(diff)
	if diff.Cmp(mustParse(t, bound)) > 0 {
		t.Errorf("got %s; want within %s of %s", got, bound, want)
	}
}
