package bmp180

import "github.com/7L2VKS/BMP180/i2c"

// Factory calibration coefficients, read once from EEPROM at
// construction and immutable afterwards. Widths and signedness per the
// data sheet.
type calibration struct {
	ac1, ac2, ac3 int16
	ac4, ac5, ac6 uint16
	b1, b2        int16
	mb, mc, md    int16
}

const (
	regAC2 = regAC1 + 2
	regAC3 = regAC1 + 4
	regAC4 = regAC1 + 6
	regAC5 = regAC1 + 8
	regAC6 = regAC1 + 10
	regB1  = regAC1 + 12
	regB2  = regAC1 + 14
	regMB  = regAC1 + 16
	regMC  = regAC1 + 18
	regMD  = regAC1 + 20
)

func (s *BMP180) loadCalibration() error {
	if err := s.dev.SetAddress(s.address); err != nil {
		return &BusError{Op: "set device address", Err: err}
	}

	r := i2c.NewReader(s.dev)

	var c calibration
	c.ac1 = int16(r.Signed(regAC1, regAC1+1))
	c.ac2 = int16(r.Signed(regAC2, regAC2+1))
	c.ac3 = int16(r.Signed(regAC3, regAC3+1))
	c.ac4 = uint16(r.Unsigned(regAC4, regAC4+1))
	c.ac5 = uint16(r.Unsigned(regAC5, regAC5+1))
	c.ac6 = uint16(r.Unsigned(regAC6, regAC6+1))
	c.b1 = int16(r.Signed(regB1, regB1+1))
	c.b2 = int16(r.Signed(regB2, regB2+1))
	c.mb = int16(r.Signed(regMB, regMB+1))
	c.mc = int16(r.Signed(regMC, regMC+1))
	c.md = int16(r.Signed(regMD, regMD+1))

	if err := r.Error(); err != nil {
		return &BusError{Op: "read calibration data", Err: err}
	}

	s.cal = c
	s.loaded = true
	return nil
}
