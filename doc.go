// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bigmath computes natural, common and arbitrary-base logarithms,
the exponential function and the Euler number to arbitrary decimal
precision, with every retained digit correctly rounded.

Values are apd decimals (github.com/cockroachdb/apd): a signed
arbitrary-precision coefficient scaled by a power of ten. No native
floating point participates in any numerical path.

The package-level functions take a precision, counted in significant
digits, and a rounding mode:

	x, _, _ := apd.NewFromString("2")
	v, err := bigmath.Ln(x, 10, bigmath.RoundHalfUp) // 0.6931471806

A Context bundles precision and rounding for repeated use:

	ctx := bigmath.New(50, bigmath.RoundHalfEven)
	e, err := ctx.E()
	l, err := ctx.Log10(x)

Internally each function is an approximator that accepts a positional
accuracy: the position of the least significant retained digit. The
facade derives that position from the requested precision and a coarse
estimate of the result's order of magnitude; callers that already know
the position they need can construct approximators directly through
package approx and skip the conversion.

Series terms are summed on a bounded worker pool sized to the hardware
parallelism. Accumulation order does not affect results: two calls with
identical arguments, precision and rounding mode produce byte-identical
decimals, whatever the pool size. The sequential accumulator can be
selected instead via WithAccumulator.

Domain violations (ln or log of a non-positive number, a logarithm base
of one) and overflow of any internal 32-bit quantity surface as errors;
no result is ever silently clamped or approximated beyond its stated
rounding.
*/
package bigmath
