// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package approx_test

import (
	"testing"

	"github.com/cockroachdb/apd/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaznacheevM/bigmath/approx"
	"github.com/KaznacheevM/bigmath/series"
)

func mustParse(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return d
}

func TestEuler(t *testing.T) {
	f := approx.NewFactory()
	e := f.Euler()

	v, err := e.Approximate(-12, apd.RoundDown)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "2.718281828459")))

	order, err := e.OrderComputer().Compute()
	require.NoError(t, err)
	assert.Equal(t, 0, order)
}

func TestExpApproximate(t *testing.T) {
	f := approx.NewFactory()
	for _, test := range []struct {
		arg      string
		position int
		mode     string
		want     string
	}{
		{"0", -5, apd.RoundHalfUp, "1.00000"},
		{"1", -9, apd.RoundHalfUp, "2.718281828"},
		{"0.5", -9, apd.RoundHalfUp, "1.648721271"},
		{"-1", -9, apd.RoundHalfUp, "0.367879441"},
		{"2.3", -9, apd.RoundDown, "9.974182454"},
		{"2.3", -9, apd.RoundHalfUp, "9.974182455"},
		{"10", -5, apd.RoundHalfUp, "22026.46579"},
		{"-2.5", -11, apd.RoundHalfUp, "0.08208499862"},
	} {
		e, err := f.Exp(mustParse(t, test.arg))
		require.NoError(t, err, "exp(%s)", test.arg)
		v, err := e.Approximate(test.position, test.mode)
		require.NoError(t, err, "exp(%s)", test.arg)
		assert.Zero(t, v.Cmp(mustParse(t, test.want)),
			"exp(%s) at %d = %s; want %s", test.arg, test.position, v, test.want)
	}
}

func TestExpOrder(t *testing.T) {
	f := approx.NewFactory()
	for _, test := range []struct {
		arg  string
		want int
	}{
		{"1", 0},
		{"0.5", 0},
		{"2.3", 0},
		{"10", 4},
		{"-1", -1},
		{"-2.5", -2},
		{"7", 3},
	} {
		e, err := f.Exp(mustParse(t, test.arg))
		require.NoError(t, err)
		order, err := e.OrderComputer().Compute()
		require.NoError(t, err)
		assert.Equal(t, test.want, order, "order of exp(%s)", test.arg)
	}
}

func TestGregoryLn(t *testing.T) {
	f := approx.NewFactory()

	g, err := f.GregoryLn(true, mustParse(t, "1.5"))
	require.NoError(t, err)
	v, err := g.Approximate(-10, apd.RoundHalfUp)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "0.4054651081")))

	// Outside the window the optimized construction is rejected...
	_, err = f.GregoryLn(true, mustParse(t, "2.5"))
	require.ErrorIs(t, err, approx.ErrDomain)

	// ...but the plain series still converges there.
	g, err = f.GregoryLn(false, mustParse(t, "2.5"))
	require.NoError(t, err)
	v, err = g.Approximate(-9, apd.RoundHalfUp)
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(mustParse(t, "0.916290732")))

	_, err = f.GregoryLn(false, mustParse(t, "-1"))
	require.ErrorIs(t, err, approx.ErrDomain)
}

func TestLnApproximate(t *testing.T) {
	f := approx.NewFactory()
	for _, test := range []struct {
		arg      string
		position int
		mode     string
		want     string
	}{
		{"2", -10, apd.RoundHalfUp, "0.6931471806"},
		{"2", -12, apd.RoundHalfUp, "0.693147180560"},
		{"10", -9, apd.RoundHalfUp, "2.302585093"},
		{"1.5", -10, apd.RoundHalfUp, "0.4054651081"},
		{"0.3", -9, apd.RoundHalfUp, "-1.203972804"},
		{"0.001", -9, apd.RoundHalfUp, "-6.907755279"},
		{"1", -9, apd.RoundHalfUp, "0"},
	} {
		l, err := f.Ln(mustParse(t, test.arg))
		require.NoError(t, err, "ln(%s)", test.arg)
		v, err := l.Approximate(test.position, test.mode)
		require.NoError(t, err, "ln(%s)", test.arg)
		assert.Zero(t, v.Cmp(mustParse(t, test.want)),
			"ln(%s) at %d = %s; want %s", test.arg, test.position, v, test.want)
	}
}

func TestLnOrder(t *testing.T) {
	f := approx.NewFactory()
	for _, test := range []struct {
		arg  string
		want int
	}{
		{"2", -1},
		{"1.5", -1},
		{"100", 0},
		{"0.001", 0},
		{"1.0000001", -8},
	} {
		l, err := f.Ln(mustParse(t, test.arg))
		require.NoError(t, err)
		order, err := l.OrderComputer().Compute()
		require.NoError(t, err)
		assert.Equal(t, test.want, order, "order of ln(%s)", test.arg)
	}
}

func TestLnDomain(t *testing.T) {
	f := approx.NewFactory()
	for _, arg := range []string{"0", "-1", "-0.0001"} {
		_, err := f.Ln(mustParse(t, arg))
		require.ErrorIs(t, err, approx.ErrDomain, "ln(%s)", arg)
	}
}

func TestLogApproximate(t *testing.T) {
	f := approx.NewFactory()
	for _, test := range []struct {
		base, arg string
		position  int
		want      string
	}{
		{"3", "81", -9, "4.000000000"},
		{"2", "10", -9, "3.321928095"},
		{"0.5", "8", -9, "-3.000000000"},
		{"7", "1", -9, "0"},
	} {
		l, err := f.Log(mustParse(t, test.base), mustParse(t, test.arg))
		require.NoError(t, err, "log_%s(%s)", test.base, test.arg)
		v, err := l.Approximate(test.position, apd.RoundHalfUp)
		require.NoError(t, err, "log_%s(%s)", test.base, test.arg)
		assert.Zero(t, v.Cmp(mustParse(t, test.want)),
			"log_%s(%s) = %s; want %s", test.base, test.arg, v, test.want)
	}
}

func TestLog10Approximate(t *testing.T) {
	f := approx.NewFactory()
	for _, test := range []struct {
		arg      string
		position int
		want     string
	}{
		{"100", -9, "2.000000000"},
		{"2", -10, "0.3010299957"},
	} {
		l, err := f.Log10(mustParse(t, test.arg))
		require.NoError(t, err)
		v, err := l.Approximate(test.position, apd.RoundHalfUp)
		require.NoError(t, err)
		assert.Zero(t, v.Cmp(mustParse(t, test.want)),
			"log10(%s) = %s; want %s", test.arg, v, test.want)
	}
}

func TestLogDomain(t *testing.T) {
	f := approx.NewFactory()
	ten := apd.New(10, 0)

	_, err := f.Log(apd.New(1, 0), ten)
	require.ErrorIs(t, err, approx.ErrDomain, "base one")
	_, err = f.Log(apd.New(-2, 0), ten)
	require.ErrorIs(t, err, approx.ErrDomain, "negative base")
	_, err = f.Log(apd.New(0, 0), ten)
	require.ErrorIs(t, err, approx.ErrDomain, "zero base")
	_, err = f.Log(ten, apd.New(0, 0))
	require.ErrorIs(t, err, approx.ErrDomain, "zero argument")
	_, err = f.Log10(mustParse(t, "-5"))
	require.ErrorIs(t, err, approx.ErrDomain, "negative argument")
}

func TestSequentialAccumulatorMatches(t *testing.T) {
	par := approx.NewFactory()
	seq := approx.NewFactory(approx.WithAccumulator(series.Sequential{}))

	for _, arg := range []string{"2", "7", "0.42"} {
		a, err := par.Ln(mustParse(t, arg))
		require.NoError(t, err)
		b, err := seq.Ln(mustParse(t, arg))
		require.NoError(t, err)

		va, err := a.Approximate(-25, apd.RoundHalfEven)
		require.NoError(t, err)
		vb, err := b.Approximate(-25, apd.RoundHalfEven)
		require.NoError(t, err)
		assert.Equal(t, va.String(), vb.String(), "ln(%s)", arg)
	}
}
