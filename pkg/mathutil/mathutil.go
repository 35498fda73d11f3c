// Package mathutil provides small scalar helpers shared by the mat and vec
// packages: clamping, numerically-stable hypotenuse, quadratic roots and a
// fast inverse square root.
package mathutil

import "github.com/chewxy/math32"

const magic32 = 0x5F375A86

func SQR(a float32) float32 {
	return a * a
}

func Clamp(a, min, max float32) float32 {
	switch {
	case a > max:
		return max
	case a < min:
		return min
	default:
		return a
	}
}

// Pytag computes (a^2+b^2)^(1/2) without overflow.
func Pytag(a, b float32) float32 {
	absa := math32.Abs(a)
	absb := math32.Abs(b)
	if absa > absb {
		return absa * math32.Sqrt(1.0+SQR(absb/absa))
	}
	if absb > 0 {
		return absb * math32.Sqrt(1.0+SQR(absa/absb))
	}
	return 0
}

// Quad solves a quadratic equation, returning both roots.
func Quad(a, b, c, eps float32) (float32, float32) {
	if a == 0 {
		if b == 0 {
			return 0, 0
		}
		return -c / b, -c / b
	}

	if b == 0 {
		t := -c / a
		if t <= 0 {
			return 0, 0
		}
		t = math32.Sqrt(t)
		return t, -t
	}

	r := -b
	z := b*b - 4*a*c
	if math32.Abs(z) < eps {
		z = 0
	} else if z < 0 {
		return 0, 0
	}
	z = math32.Sqrt(z)
	return (r + z) / (2 * a), (r - z) / (2 * a)
}

// FastISqrt computes an approximate 1/sqrt(x) using the classic bit-hack
// with one Newton iteration.
func FastISqrt(x float32) float32 {
	n2, th := x*0.5, float32(1.5)
	b := math32.Float32bits(x)
	b = magic32 - (b >> 1)
	f := math32.Float32frombits(b)
	f *= th - (n2 * f * f)
	return f
}
