// Package max6675 provides a driver for the MAX6675 K-type thermocouple
// amplifier. The part is read-only over SPI: each transaction clocks out one
// 16-bit frame holding a 12-bit temperature in 0.25 C steps plus an
// open-thermocouple flag. A conversion runs continuously while CS is high;
// reading more often than ~220 ms returns the previous conversion.
package max6675

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Frame layout.
const (
	openBit  = 1 << 2 // thermocouple input open
	idBit    = 1 << 1 // always 0 on a real part
	tempMask = 0x7FF8 // 12 bits, D14..D3
)

// CelsiusPerLSB is the temperature resolution of the part.
const CelsiusPerLSB = 0.25

// Errors returned by the driver.
var (
	ErrOpenCircuit = errors.New("max6675: thermocouple open")
	ErrProtocol    = errors.New("max6675: bad frame")
)

// ChipSelect drives the active-low CS line. Kept as an interface so hosts
// can substitute a recorder; on RP2040 wrap a machine.Pin.
type ChipSelect interface {
	Low()
	High()
}

// Device wraps an SPI connection to a MAX6675. The bus must already be
// configured (mode 0, <= 4.3 MHz).
type Device struct {
	bus drivers.SPI
	cs  ChipSelect

	buf [2]byte // reuse buffer to avoid allocations
	raw uint16  // last raw frame
}

// New creates a new MAX6675 connection. CS must idle high.
func New(bus drivers.SPI, cs ChipSelect) Device {
	cs.High()
	return Device{bus: bus, cs: cs}
}

// Raw clocks out one frame and returns it unparsed.
func (d *Device) Raw() (uint16, error) {
	d.cs.Low()
	err := d.bus.Tx(nil, d.buf[:])
	d.cs.High()
	if err != nil {
		return 0, err
	}
	d.raw = uint16(d.buf[0])<<8 | uint16(d.buf[1])
	return d.raw, nil
}

// ReadTemperature returns the latest conversion in degrees C. It satisfies
// the controller's probe contract.
func (d *Device) ReadTemperature() (float64, error) {
	raw, err := d.Raw()
	if err != nil {
		return 0, err
	}
	if raw&idBit != 0 {
		return 0, ErrProtocol
	}
	if raw&openBit != 0 {
		return 0, ErrOpenCircuit
	}
	return float64((raw&tempMask)>>3) * CelsiusPerLSB, nil
}
