package mathutil

import "math/bits"

// GCD returns the greatest common divisor of a and b.
// GCD(0, 0) is 0.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReduceRatio divides num and den by their greatest common divisor.
// A zero operand is returned unchanged alongside the other operand.
func ReduceRatio(num, den uint64) (uint64, uint64) {
	g := GCD(num, den)
	if g <= 1 {
		return num, den
	}
	return num / g, den / g
}

// CeilDiv returns ceil(a / b) for b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// LargestPrimeFactor returns the largest prime factor of n.
// It returns n itself for n < 2.
func LargestPrimeFactor(n int) int {
	if n < smallestPrime {
		return n
	}

	largest := 1
	for n%smallestPrime == 0 {
		largest = smallestPrime
		n /= smallestPrime
	}
	for f := 3; f*f <= n; f += 2 {
		for n%f == 0 {
			largest = f
			n /= f
		}
	}
	if n > 1 {
		largest = n
	}
	return largest
}

// MulDiv returns floor(a * b / c) using a 128-bit intermediate product.
// ok is false when c is zero or the quotient does not fit in 64 bits.
func MulDiv(a, b, c uint64) (q uint64, ok bool) {
	if c == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, false
	}
	q, _ = bits.Div64(hi, lo, c)
	return q, true
}
