package bmp180

import "math"

// The compensation formulas below follow the data sheet step by step.
// The intermediate names (B5, B6, X1..X3, B3, B4, B7) are the data
// sheet's own; they have no physical meaning. B5 and the B3/B7 steps mix
// float and integer arithmetic: the divisions are real divisions whose
// result is truncated toward zero, not integer floor divisions. Changing
// that silently shifts the output by a few 0.01 hPa.

// computeB5 derives the B5 intermediate from the raw temperature. It is
// required for both temperature and pressure compensation, from a fresh
// temperature sample each time.
func computeB5(c *calibration, rawTemp int) (int, error) {
	x1 := ((rawTemp - int(c.ac6)) * int(c.ac5)) >> 15
	den := x1 + int(c.md)
	if den == 0 {
		return 0, ErrArithmetic
	}
	x2 := float64(int(c.mc)<<11) / float64(den)
	return int(float64(x1) + x2), nil
}

func compensateTemperature(b5 int) float64 {
	t := (b5 + 8) >> 4
	return round(float64(t)/10, 1)
}

func compensatePressure(c *calibration, mode Mode, rawPressure, b5 int) (float64, error) {
	b6 := b5 - 4000
	x1 := (int(c.b2) * ((b6 * b6) >> 12)) >> 11
	x2 := (int(c.ac2) * b6) >> 11
	x3 := x1 + x2
	// B3 keeps its quarter fraction; float64 represents it exactly.
	b3 := (float64((int(c.ac1)*4+x3)<<mode) + 2) / 4

	x1 = (int(c.ac3) * b6) >> 13
	x2 = (int(c.b1) * ((b6 * b6) >> 12)) >> 16
	x3 = (x1 + x2 + 2) >> 2
	b4 := (int(c.ac4) * (x3 + 32768)) >> 15
	if b4 == 0 {
		return 0, ErrArithmetic
	}
	scale := 50000 >> mode
	b7 := (float64(rawPressure) - b3) * float64(scale)

	// On fixed 32 bit arithmetic the two branches avoid overflow for
	// large B7; they are kept to match the reference output bit for bit
	// at the boundary.
	var p int
	if b7 < 0x80000000 {
		p = int(b7 * 2 / float64(b4))
	} else {
		p = int(b7 / float64(b4) * 2)
	}

	x1 = (p >> 8) * (p >> 8)
	x1 = (x1 * 3038) >> 16
	x2 = (-7357 * p) >> 16
	p += (x1 + x2 + 3791) >> 4

	return round(float64(p)/100, 2), nil
}

// AltitudeAt returns the altitude in meters for a compensated pressure
// and a sea level reference pressure, both in hPa, rounded to one
// decimal place.
func AltitudeAt(pressure, sealevel float64) float64 {
	return round(44330.0*(1.0-math.Pow(pressure/sealevel, 0.1903)), 1)
}

// Fahrenheit converts a Celsius temperature to Fahrenheit, rounded to
// one decimal place.
func Fahrenheit(c float64) float64 {
	return round(c*1.8+32.0, 1)
}

// round returns the half away from zero rounded value of x with prec precision.
//
// Special cases are:
// 	Round(±0) = +0
// 	Round(±Inf) = ±Inf
// 	Round(NaN) = NaN
func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}
