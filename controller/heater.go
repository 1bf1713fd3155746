package controller

import "tempfin-go/x/mathx"

// Heater defaults.
const (
	HeaterTickSeconds       = 0.1 // heater control cadence
	HeaterHysteresis        = 10  // successive at-temp readings before declaring regulation
	HeaterAmbientTemp       = 40  // not heating if readings stay below this
	HeaterOverheatTemp      = 300 // hard cutoff
	HeaterAmbientTimeout    = 90  // seconds to get above ambient
	HeaterRegulationRange   = 3   // +/- degrees considered in regulation
	HeaterRegulationTimeout = 300 // seconds to come to temperature
	HeaterBadReadingMax     = 5   // successive bad readings before shutdown

	PWMFrequency = 1000 // heater drive frequency, Hz
)

// Heater states.
const (
	HeaterOff uint8 = iota
	HeaterShutdown
	HeaterHeating
	HeaterRegulated
)

// Heater codes (more information about the state).
const (
	HeaterOK uint8 = iota
	HeaterAmbientTimedOut    // failed to get past ambient temperature
	HeaterRegulationTimedOut // heated but never reached regulation
	HeaterOverheated
	HeaterSensorError
)

// PWM drives the heater element. Hosts install a no-op or a recorder.
type PWM interface {
	On(freqHz, duty float64)
	Off()
	SetDuty(percent float64)
}

// Heater runs the 100 ms control cycle: read the sensor, trap overheat and
// bad readings, run the PID, and track the regulation hysteresis. Exported
// fields are registry targets.
type Heater struct {
	State uint8
	Code  uint8

	Temperature       float64
	Setpoint          float64
	Hysteresis        uint8 // at-temp hysteresis register, pegged 0..HeaterHysteresis
	AmbientTemp       float64
	OverheatTemp      float64
	AmbientTimeout    float64
	RegulationRange   float64
	RegulationTimeout float64
	BadReadingMax     uint8

	badReadingCount uint8
	regulationTimer float64

	sensor *Sensor
	pid    *PID
	pwm    PWM
}

func (h *Heater) Init(sensor *Sensor, pid *PID, pwm PWM) {
	*h = Heater{
		RegulationRange:   HeaterRegulationRange,
		AmbientTimeout:    HeaterAmbientTimeout,
		RegulationTimeout: HeaterRegulationTimeout,
		AmbientTemp:       HeaterAmbientTemp,
		OverheatTemp:      HeaterOverheatTemp,
		BadReadingMax:     HeaterBadReadingMax,
		sensor:            sensor,
		pid:               pid,
		pwm:               pwm,
	}
}

// On starts a heating cycle toward setpoint. No action if already heating.
func (h *Heater) On(setpoint float64) {
	if h.State == HeaterHeating || h.State == HeaterRegulated {
		return
	}
	h.sensor.On()
	h.sensor.StartReading()
	h.pid.Reset()
	h.pwm.On(PWMFrequency, 0) // duty will come from the PID loop

	h.Setpoint = setpoint
	h.Hysteresis = 0
	h.badReadingCount = 0
	h.regulationTimer = 0
	h.State = HeaterHeating
}

func (h *Heater) Off(state, code uint8) {
	h.pwm.Off()
	h.sensor.Off()
	h.State = state
	h.Code = code
}

// Tick runs one 100 ms control interval.
func (h *Heater) Tick() {
	if h.State == HeaterOff || h.State == HeaterShutdown {
		return
	}
	h.Temperature = h.sensor.GetTemperature()

	if h.Temperature > h.OverheatTemp {
		h.Off(HeaterShutdown, HeaterOverheated)
		return
	}
	h.sensor.StartReading() // reading for the next interval

	if h.Temperature < AbsoluteZero {
		if h.badReadingCount++; h.badReadingCount > h.BadReadingMax {
			h.Off(HeaterShutdown, HeaterSensorError)
			println("Info: heater sensor error shutdown")
		}
		return
	}
	h.badReadingCount = 0

	h.pwm.SetDuty(h.pid.Calculate(h.Setpoint, h.Temperature))

	if h.State == HeaterHeating {
		h.regulationTimer += HeaterTickSeconds

		if h.Temperature < h.AmbientTemp && h.regulationTimer > h.AmbientTimeout {
			h.Off(HeaterShutdown, HeaterAmbientTimedOut)
			println("Info: heater ambient error shutdown")
			return
		}
		if h.Temperature < h.Setpoint && h.regulationTimer > h.RegulationTimeout {
			h.Off(HeaterShutdown, HeaterRegulationTimedOut)
			println("Info: heater timeout error shutdown")
			return
		}
	}

	// The hysteresis register increments while at temperature and decrements
	// while out, pegged at both ends; crossing the top enters regulation,
	// hitting the bottom restarts the heating timers.
	if mathx.AbsF(h.pid.Error) <= h.RegulationRange {
		if h.Hysteresis < HeaterHysteresis {
			h.Hysteresis++
		}
		if h.Hysteresis == HeaterHysteresis {
			h.State = HeaterRegulated
		}
	} else {
		if h.Hysteresis > 0 {
			h.Hysteresis--
		}
		if h.Hysteresis == 0 {
			h.regulationTimer = 0
			h.State = HeaterHeating
		}
	}
}
