// Copyright 2026 Mikhail Kaznacheev. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dec provides exact positional arithmetic on apd decimals.
//
// The rest of the module manipulates values of the form coefficient×10^exp
// through this package only: exact addition and multiplication, division
// truncated at a given digit position, integer powers and factorials, and
// the base-10 order estimates that drive precision propagation.
package dec

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// OrderOfZero is the order reported for a zero value. Zero has no leading
// digit; the sentinel compares below every finite order and must never be
// consumed as one.
const OrderOfZero = math.MinInt32

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// Order returns the base-10 order of x: the unique k such that
// 10^k <= |x| < 10^(k+1). For x = 0 it returns OrderOfZero.
func Order(x *apd.Decimal) int {
	if x.IsZero() {
		return OrderOfZero
	}
	return int(x.NumDigits()) + int(x.Exponent) - 1
}

// OverestimateOrder returns Order(x) when |x| is an exact power of ten and
// Order(x)+1 otherwise. The result is a safe upper bound: rounding x up
// cannot push it past 10^OverestimateOrder(x).
func OverestimateOrder(x *apd.Decimal) int {
	if x.IsZero() {
		return OrderOfZero
	}
	order := Order(x)
	if isPowerOfTen(&x.Coeff) {
		return order
	}
	return order + 1
}

// OrderBigInt returns the base-10 order of x, or OrderOfZero for x = 0.
func OrderBigInt(x *big.Int) int {
	if x.Sign() == 0 {
		return OrderOfZero
	}
	return digits(x) - 1
}

// OverestimateOrderBigInt is OverestimateOrder for big integers.
func OverestimateOrderBigInt(x *big.Int) int {
	if x.Sign() == 0 {
		return OrderOfZero
	}
	order := OrderBigInt(x)
	abs := new(big.Int).Abs(x)
	if isPowerOfTen(abs) {
		return order
	}
	return order + 1
}

// OrderInt returns the base-10 order of n, or OrderOfZero for n = 0.
func OrderInt(n int) int {
	if n == 0 {
		return OrderOfZero
	}
	if n < 0 {
		n = -n
	}
	order := 0
	for n >= 10 {
		n /= 10
		order++
	}
	return order
}

// OverestimateOrderInt is OverestimateOrder for machine integers.
func OverestimateOrderInt(n int) int {
	if n == 0 {
		return OrderOfZero
	}
	m := n
	if m < 0 {
		m = -m
	}
	order := OrderInt(m)
	if m == pow10Int(order) {
		return order
	}
	return order + 1
}

// isPowerOfTen reports whether the non-negative integer c is 10^k for some
// k >= 0.
func isPowerOfTen(c *big.Int) bool {
	if c.Sign() <= 0 {
		return false
	}
	n := digits(c)
	return c.Cmp(pow10(n-1)) == 0
}

// digits returns the count of decimal digits in |x|; 1 for x = 0.
func digits(x *big.Int) int {
	if x.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(x).Text(10))
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

func pow10Int(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// exact returns a context that performs unrounded arithmetic. A fresh
// context per call keeps condition flags off shared state.
func exact() *apd.Context {
	c := apd.BaseContext
	return &c
}

// Add sets z to the exact sum x+y.
func Add(z, x, y *apd.Decimal) error {
	_, err := exact().Add(z, x, y)
	return errors.Wrap(err, "dec: add")
}

// Sub sets z to the exact difference x-y.
func Sub(z, x, y *apd.Decimal) error {
	_, err := exact().Sub(z, x, y)
	return errors.Wrap(err, "dec: sub")
}

// Mul sets z to the exact product x*y.
func Mul(z, x, y *apd.Decimal) error {
	_, err := exact().Mul(z, x, y)
	return errors.Wrap(err, "dec: mul")
}

// Round sets z to x with its least significant digit at 10^position,
// rounded according to mode.
func Round(z, x *apd.Decimal, position int, mode string) error {
	if position < math.MinInt32 || position > math.MaxInt32 {
		return errors.Errorf("dec: position %d overflows int32", position)
	}
	need := int64(x.NumDigits()) + abs64(int64(x.Exponent)-int64(position)) + 2
	ctx := workContext(uint32(need), mode)
	_, err := ctx.Quantize(z, x, int32(position))
	return errors.Wrapf(err, "dec: rounding %s at position %d", x, position)
}

// RoundSig sets z to x rounded to the given count of significant digits.
func RoundSig(z, x *apd.Decimal, digits int, mode string) error {
	if digits < 1 {
		return errors.Errorf("dec: significant digit count %d below one", digits)
	}
	ctx := workContext(uint32(digits), mode)
	_, err := ctx.Round(z, x)
	return errors.Wrapf(err, "dec: rounding %s to %d digits", x, digits)
}

// Quo sets z to x/y with its least significant digit at 10^position,
// rounded according to mode. The quotient is computed exactly two digits
// below position; a sticky digit preserves inexactness so that every
// rounding mode, including the half modes, resolves correctly.
func Quo(z, x, y *apd.Decimal, position int, mode string) error {
	if y.IsZero() {
		return errors.Errorf("dec: division of %s by zero", x)
	}
	if position < math.MinInt32+2 || position > math.MaxInt32 {
		return errors.Errorf("dec: position %d overflows int32", position)
	}
	if x.IsZero() {
		z.Set(apd.New(0, int32(position)))
		return nil
	}

	work := position - 2
	shift := int(x.Exponent) - int(y.Exponent) - work
	num := new(big.Int).Set(&x.Coeff)
	den := new(big.Int).Set(&y.Coeff)
	if shift > 0 {
		num.Mul(num, pow10(shift))
	} else if shift < 0 {
		den.Mul(den, pow10(-shift))
	}

	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 && new(big.Int).Rem(q, bigTen).Sign() == 0 {
		// Sticky digit: the discarded tail is non-zero, so the digit
		// below the guard pair must not read as exact.
		q.Add(q, bigOne)
	}

	t := apd.NewWithBigInt(q, int32(work))
	t.Negative = x.Negative != y.Negative && !t.IsZero()
	return Round(z, t, position, mode)
}

// QuoSig sets z to x/y rounded to the given count of significant digits.
func QuoSig(z, x, y *apd.Decimal, digits int, mode string) error {
	if digits < 1 {
		return errors.Errorf("dec: significant digit count %d below one", digits)
	}
	if y.IsZero() {
		return errors.Errorf("dec: division of %s by zero", x)
	}
	ctx := workContext(uint32(digits), mode)
	_, err := ctx.Quo(z, x, y)
	return errors.Wrapf(err, "dec: dividing %s by %s", x, y)
}

// PowInt sets z to the exact value of x^n for n >= 0.
func PowInt(z, x *apd.Decimal, n int) error {
	if n < 0 {
		return errors.Errorf("dec: negative exponent %d in exact power", n)
	}
	if n == 0 {
		z.Set(apd.New(1, 0))
		return nil
	}
	exp := int64(x.Exponent) * int64(n)
	if exp < math.MinInt32 || exp > math.MaxInt32 {
		return errors.Errorf("dec: exponent of %s^%d overflows int32", x, n)
	}
	coeff := new(big.Int).Exp(&x.Coeff, big.NewInt(int64(n)), nil)
	negative := x.Negative && n%2 == 1
	z.Set(apd.NewWithBigInt(coeff, int32(exp)))
	z.Negative = negative && !z.IsZero()
	return nil
}

// Factorial returns n! for n >= 0.
func Factorial(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, errors.Errorf("dec: factorial of negative number %d", n)
	}
	if n < 2 {
		return big.NewInt(1), nil
	}
	return new(big.Int).MulRange(1, n), nil
}

func workContext(prec uint32, mode string) *apd.Context {
	return &apd.Context{
		Precision:   prec,
		Rounding:    mode,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Traps:       apd.DefaultTraps,
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
