package bmp180

import "testing"

// Calibration values from the data sheet worked example.
var datasheetCal = calibration{
	ac1: 408, ac2: -72, ac3: -14383,
	ac4: 32741, ac5: 32757, ac6: 23153,
	b1: 6190, b2: 4,
	mb: -32768, mc: -8711, md: 2868,
}

func TestComputeB5(t *testing.T) {
	cases := []struct {
		rawTemp int
		b5      int
	}{
		{27898, 2399}, // data sheet worked example
		{25000, -1938},
		{26000, -276},
	}

	for _, tc := range cases {
		b5, err := computeB5(&datasheetCal, tc.rawTemp)
		if err != nil {
			t.Fatalf("computeB5(%d): %v", tc.rawTemp, err)
		}
		if b5 != tc.b5 {
			t.Errorf("computeB5(%d) = %d, expected %d", tc.rawTemp, b5, tc.b5)
		}
	}
}

func TestComputeB5DivideByZero(t *testing.T) {
	cal := datasheetCal
	cal.md = 0

	// rawTemp == AC6 makes X1 zero, so X1+MD is zero.
	if _, err := computeB5(&cal, int(cal.ac6)); err != ErrArithmetic {
		t.Errorf("expected ErrArithmetic, got %v", err)
	}
}

func TestCompensateTemperature(t *testing.T) {
	cases := []struct {
		b5   int
		temp float64
	}{
		{2399, 15.0}, // data sheet worked example
		{-1938, -12.1},
	}

	for _, tc := range cases {
		if temp := compensateTemperature(tc.b5); temp != tc.temp {
			t.Errorf("compensateTemperature(%d) = %v, expected %v", tc.b5, temp, tc.temp)
		}
	}
}

func TestCompensatePressure(t *testing.T) {
	cases := []struct {
		mode        Mode
		rawPressure int
		b5          int
		pressure    float64
	}{
		// Data sheet worked example. B5 is the float-division variant
		// (2399); the all-integer data sheet variant (B5=2400) would
		// give 699.64.
		{UltraLowPower, 23843, 2399, 699.62},
		{Standard, 23843, 2399, 344.16},
		{HighRes, 23843, 2399, 166.85},
		{UltraHighRes, 23843, 2399, 78.3},
		// Deeply negative B6; sign must propagate through the
		// arithmetic shifts.
		{UltraLowPower, 23843, -1938, 657.31},
	}

	for _, tc := range cases {
		p, err := compensatePressure(&datasheetCal, tc.mode, tc.rawPressure, tc.b5)
		if err != nil {
			t.Fatalf("compensatePressure(mode %d, %d, %d): %v", tc.mode, tc.rawPressure, tc.b5, err)
		}
		if p != tc.pressure {
			t.Errorf("compensatePressure(mode %d, %d, %d) = %v, expected %v", tc.mode, tc.rawPressure, tc.b5, p, tc.pressure)
		}
	}
}

func TestCompensatePressureDivideByZero(t *testing.T) {
	cal := datasheetCal
	cal.ac4 = 0 // forces B4 to zero

	if _, err := compensatePressure(&cal, UltraLowPower, 23843, 2399); err != ErrArithmetic {
		t.Errorf("expected ErrArithmetic, got %v", err)
	}
}

func TestAltitudeAt(t *testing.T) {
	cases := []struct {
		pressure, sealevel, altitude float64
	}{
		{DefaultSealevelPressure, DefaultSealevelPressure, 0.0},
		{699.62, DefaultSealevelPressure, 3021.9},
		{1013.25, 1013.25, 0.0},
	}

	for _, tc := range cases {
		if alt := AltitudeAt(tc.pressure, tc.sealevel); alt != tc.altitude {
			t.Errorf("AltitudeAt(%v, %v) = %v, expected %v", tc.pressure, tc.sealevel, alt, tc.altitude)
		}
	}
}

func TestFahrenheit(t *testing.T) {
	cases := []struct {
		celsius, fahrenheit float64
	}{
		{0.0, 32.0},
		{100.0, 212.0},
		{15.0, 59.0},
		{-40.0, -40.0},
	}

	for _, tc := range cases {
		if f := Fahrenheit(tc.celsius); f != tc.fahrenheit {
			t.Errorf("Fahrenheit(%v) = %v, expected %v", tc.celsius, f, tc.fahrenheit)
		}
	}
}
