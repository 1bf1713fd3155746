package controller

import (
	"math"

	"tempfin-go/x/mathx"
)

// Sensor defaults.
const (
	SensorSamples            = 20  // samples per reading period
	SensorSampleVarianceMax  = 1.1 // std devs from the mean to reject a sample
	SensorReadingVarianceMax = 20  // reject the whole reading above this std dev
	SensorDisconnectedTemp   = 400 // readings above this mean the thermocouple is open
	SensorNoPowerTemp        = -2  // readings below this mean the amplifier is unpowered

	AbsoluteZero = -273.15
	LessThanZero = -274 // a value the thermocouple cannot output
)

// Sensor states.
const (
	SensorOff uint8 = iota
	SensorNoData
	SensorError
	SensorHasData
)

// Sensor codes (more information about the state).
const (
	SensorIdle uint8 = iota
	SensorTakingReading
	SensorErrBadReadings
	SensorErrDisconnected
	SensorErrNoPower
)

// Probe supplies one raw temperature sample in degrees C. On RP2040 this is
// the thermocouple amplifier driver; hosts install a simulation.
type Probe interface {
	ReadTemperature() (float64, error)
}

// Sensor accumulates a sample array per reading period and condenses it to
// a high-confidence temperature, using the sample standard deviation to
// drop outliers or reject the reading outright. Each reading period must be
// requested explicitly with StartReading; it does not free-run.
type Sensor struct {
	State uint8
	Code  uint8

	Temperature        float64 // latest accepted reading
	StdDev             float64
	SampleVarianceMax  float64
	ReadingVarianceMax float64
	DisconnectTemp     float64
	NoPowerTemp        float64

	probe     Probe
	sampleIdx int
	samples   int
	sample    [SensorSamples]float64
}

func (s *Sensor) Init(probe Probe) {
	*s = Sensor{
		probe:              probe,
		Temperature:        AbsoluteZero,
		SampleVarianceMax:  SensorSampleVarianceMax,
		ReadingVarianceMax: SensorReadingVarianceMax,
		DisconnectTemp:     SensorDisconnectedTemp,
		NoPowerTemp:        SensorNoPowerTemp,
	}
}

func (s *Sensor) On()  { s.State = SensorNoData }
func (s *Sensor) Off() { s.State = SensorOff }

// StartReading begins a new sample period.
func (s *Sensor) StartReading() {
	s.sampleIdx = 0
	s.Code = SensorTakingReading
}

// GetTemperature returns the latest reading, or LessThanZero if there is no
// valid data to hand out.
func (s *Sensor) GetTemperature() float64 {
	if s.State == SensorHasData {
		return s.Temperature
	}
	return LessThanZero
}

// Tick takes one sample; on the last sample of the period it condenses the
// array into a reading. Called on the fast sampling cadence.
func (s *Sensor) Tick() {
	if s.State == SensorOff || s.Code != SensorTakingReading {
		return
	}
	v, err := s.probe.ReadTemperature()
	if err != nil {
		v = LessThanZero
	}
	s.sample[s.sampleIdx] = v
	if s.sampleIdx++; s.sampleIdx < SensorSamples {
		return
	}

	var mean float64
	s.StdDev = stdDev(s.sample[:], &mean)
	if s.StdDev > s.ReadingVarianceMax {
		s.State = SensorError
		s.Code = SensorErrBadReadings
		return
	}

	// drop the outliers and re-average what's left
	s.samples = 0
	s.Temperature = 0
	for i := 0; i < SensorSamples; i++ {
		if mathx.AbsF(s.sample[i]-mean) < s.SampleVarianceMax*s.StdDev {
			s.Temperature += s.sample[i]
			s.samples++
		}
	}
	if s.samples == 0 { // degenerate: zero deviation keeps every sample out
		s.Temperature = mean
	} else {
		s.Temperature /= float64(s.samples)
	}
	s.State = SensorHasData
	s.Code = SensorIdle

	switch {
	case s.Temperature > s.DisconnectTemp:
		s.State = SensorError
		s.Code = SensorErrDisconnected
	case s.Temperature < s.NoPowerTemp:
		s.State = SensorError
		s.Code = SensorErrNoPower
	}
}

func stdDev(v []float64, mean *float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	*mean = sum / float64(len(v))

	var sq float64
	for _, x := range v {
		d := x - *mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(v)))
}
