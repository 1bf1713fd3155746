package max6675

import (
	"errors"
	"testing"
)

// fakeSPI hands back a fixed frame on every transaction.
type fakeSPI struct {
	frame uint16
	err   error
}

func (s *fakeSPI) Tx(w, r []byte) error {
	if s.err != nil {
		return s.err
	}
	if len(r) >= 2 {
		r[0] = byte(s.frame >> 8)
		r[1] = byte(s.frame)
	}
	return nil
}

func (s *fakeSPI) Transfer(b byte) (byte, error) { return 0, s.err }

// fakeCS tracks CS transitions.
type fakeCS struct {
	level   bool // true = high
	strobes int
}

func (c *fakeCS) Low()  { c.level = false }
func (c *fakeCS) High() { c.level = true; c.strobes++ }

// frame builds a raw MAX6675 frame from quarter-degree counts.
func frame(quarters uint16, open bool) uint16 {
	f := quarters << 3
	if open {
		f |= openBit
	}
	return f
}

func TestReadTemperature(t *testing.T) {
	cases := []struct {
		quarters uint16
		want     float64
	}{
		{0, 0},
		{1, 0.25},
		{100 * 4, 100},
		{1023 * 4, 1023},
	}
	for _, c := range cases {
		spi := &fakeSPI{frame: frame(c.quarters, false)}
		cs := &fakeCS{}
		d := New(spi, cs)
		got, err := d.ReadTemperature()
		if err != nil {
			t.Fatalf("%d: %v", c.quarters, err)
		}
		if got != c.want {
			t.Errorf("%d quarters = %v, want %v", c.quarters, got, c.want)
		}
		if !cs.level {
			t.Error("cs left low after transaction")
		}
	}
}

func TestOpenThermocouple(t *testing.T) {
	spi := &fakeSPI{frame: frame(100, true)}
	cs := &fakeCS{}
	d := New(spi, cs)
	if _, err := d.ReadTemperature(); !errors.Is(err, ErrOpenCircuit) {
		t.Fatalf("err = %v", err)
	}
}

func TestBadFrame(t *testing.T) {
	spi := &fakeSPI{frame: frame(100, false) | idBit}
	cs := &fakeCS{}
	d := New(spi, cs)
	if _, err := d.ReadTemperature(); !errors.Is(err, ErrProtocol) {
		t.Fatalf("err = %v", err)
	}
}

func TestBusError(t *testing.T) {
	busErr := errors.New("spi: bus fault")
	spi := &fakeSPI{err: busErr}
	cs := &fakeCS{}
	d := New(spi, cs)
	if _, err := d.ReadTemperature(); !errors.Is(err, busErr) {
		t.Fatalf("err = %v", err)
	}
	if !cs.level {
		t.Fatal("cs left low after failed transaction")
	}
}
