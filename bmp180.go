// Package bmp180 reads temperature and barometric pressure from a Bosch
// BMP180 sensor over I2C, and derives altitude from the compensated
// pressure.
package bmp180

import (
	"errors"
	"fmt"
	"time"

	"github.com/7L2VKS/BMP180/i2c"
)

// Mode is the pressure oversampling setting. Higher modes trade longer
// conversion time for more precision bits in the raw pressure reading.
type Mode int

const (
	UltraLowPower Mode = iota
	Standard
	HighRes
	UltraHighRes
)

const (
	DefaultAddress = 0x77

	// Average sea level pressure in Tokyo, hPa.
	DefaultSealevelPressure = 1013.89
)

const (
	regAC1      = 0xaa // 22 byte calibration block, AC1..MD
	regCtrlMeas = 0xf4
	regOut      = 0xf6

	cmdTemperature = 0x2e
	cmdPressure    = 0x34 // OR'd with mode<<6
)

const temperatureDelay = 5 * time.Millisecond

// Minimum conversion time per oversampling mode, from the data sheet.
// These are hard floors; reading the output register earlier returns an
// unfinished conversion.
var pressureDelay = [...]time.Duration{
	UltraLowPower: 5 * time.Millisecond,
	Standard:      8 * time.Millisecond,
	HighRes:       14 * time.Millisecond,
	UltraHighRes:  26 * time.Millisecond,
}

var (
	// ErrNotInitialized is returned by reads on a driver whose
	// calibration has not been loaded.
	ErrNotInitialized = errors.New("bmp180: calibration not loaded")

	// ErrArithmetic is returned when the calibration and raw values
	// would cause a division by zero in the compensation formula.
	ErrArithmetic = errors.New("bmp180: division by zero in compensation")
)

// BusError wraps a transport failure from the underlying I2C device.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bmp180: %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// BMP180 is a driver instance for one sensor. It is not safe for
// concurrent use; overlapping command/read sequences on the same bus need
// external mutual exclusion.
type BMP180 struct {
	dev     i2c.Device
	address int
	mode    Mode
	cal     calibration
	loaded  bool
	sleep   func(time.Duration)
}

// New loads the factory calibration from the sensor and returns a ready
// driver. The address is usually DefaultAddress. The oversampling mode is
// fixed for the lifetime of the driver.
func New(dev i2c.Device, address int, mode Mode) (*BMP180, error) {
	if mode < UltraLowPower || mode > UltraHighRes {
		return nil, fmt.Errorf("bmp180: invalid oversampling mode %d", int(mode))
	}

	s := &BMP180{dev: dev, address: address, mode: mode, sleep: time.Sleep}
	if err := s.loadCalibration(); err != nil {
		return nil, err
	}
	return s, nil
}

// Temperature reads the compensated temperature in degrees Celsius,
// rounded to one decimal place. The call blocks for the conversion time
// of the sensor.
func (s *BMP180) Temperature() (float64, error) {
	if !s.loaded {
		return 0, ErrNotInitialized
	}
	if err := s.dev.SetAddress(s.address); err != nil {
		return 0, &BusError{Op: "set device address", Err: err}
	}

	ut, err := s.rawTemperature()
	if err != nil {
		return 0, err
	}
	b5, err := computeB5(&s.cal, ut)
	if err != nil {
		return 0, err
	}
	return compensateTemperature(b5), nil
}

// Pressure reads the compensated atmospheric pressure in hPa, rounded to
// two decimal places. A fresh temperature sample is taken as part of each
// pressure read, as the compensation requires; the call blocks for both
// conversion times.
func (s *BMP180) Pressure() (float64, error) {
	if !s.loaded {
		return 0, ErrNotInitialized
	}
	if err := s.dev.SetAddress(s.address); err != nil {
		return 0, &BusError{Op: "set device address", Err: err}
	}

	up, err := s.rawPressure()
	if err != nil {
		return 0, err
	}
	ut, err := s.rawTemperature()
	if err != nil {
		return 0, err
	}
	b5, err := computeB5(&s.cal, ut)
	if err != nil {
		return 0, err
	}
	return compensatePressure(&s.cal, s.mode, up, b5)
}

// Altitude reads the pressure and returns the altitude in meters above
// the given sea level reference pressure (hPa), rounded to one decimal
// place.
func (s *BMP180) Altitude(sealevel float64) (float64, error) {
	p, err := s.Pressure()
	if err != nil {
		return 0, err
	}
	return AltitudeAt(p, sealevel), nil
}

// Close releases the underlying bus device.
func (s *BMP180) Close() error {
	return s.dev.Close()
}

func (s *BMP180) rawTemperature() (int, error) {
	if err := s.dev.WriteByteData(regCtrlMeas, cmdTemperature); err != nil {
		return 0, &BusError{Op: "request temperature conversion", Err: err}
	}
	s.sleep(temperatureDelay)

	r := i2c.NewReader(s.dev)
	ut := r.Unsigned(regOut, regOut+1)
	if err := r.Error(); err != nil {
		return 0, &BusError{Op: "read temperature data", Err: err}
	}
	return ut, nil
}

func (s *BMP180) rawPressure() (int, error) {
	cmd := uint8(cmdPressure | int(s.mode)<<6)
	if err := s.dev.WriteByteData(regCtrlMeas, cmd); err != nil {
		return 0, &BusError{Op: "request pressure conversion", Err: err}
	}
	s.sleep(pressureDelay[s.mode])

	r := i2c.NewReader(s.dev)
	up := r.Unsigned(regOut, regOut+1, regOut+2)
	if err := r.Error(); err != nil {
		return 0, &BusError{Op: "read pressure data", Err: err}
	}
	return up >> (8 - int(s.mode)), nil
}
