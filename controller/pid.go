package controller

import "tempfin-go/x/mathx"

// PID default tuning. Deliberately hot gains: the integral is pre-loaded on
// reset to shorten the first heat-up.
const (
	PIDKp = 5.00
	PIDKi = 0.1
	PIDKd = 0.5

	PIDMaxOutput       = 100 // saturation filter max, PWM percent
	PIDMinOutput       = 0
	PIDEpsilon         = 0.1 // error term precision
	PIDInitialIntegral = 200
)

// PID states.
const (
	PIDOff uint8 = iota
	PIDOn
)

// PID is the heater's control loop. All fields are exported so the config
// registry can bind gain and limit targets directly.
type PID struct {
	State     uint8
	Kp        float64
	Ki        float64
	Kd        float64
	OutputMax float64 // saturation filter max
	OutputMin float64 // saturation filter min

	Output     float64 // also used for anti-windup on the integral term
	Error      float64
	PrevError  float64
	Integral   float64
	Derivative float64

	dt float64
}

func (p *PID) Init(dt float64) {
	*p = PID{
		Kp:        PIDKp,
		Ki:        PIDKi,
		Kd:        PIDKd,
		OutputMax: PIDMaxOutput,
		OutputMin: PIDMinOutput,
		State:     PIDOn,
		dt:        dt,
	}
}

// Reset prepares the loop for a cold start of a heating cycle.
func (p *PID) Reset() {
	p.Output = 0
	p.Integral = PIDInitialIntegral
	p.PrevError = 0
}

// Calculate advances the loop one interval and returns the new output in
// PWM percent.
func (p *PID) Calculate(setpoint, temperature float64) float64 {
	if p.State == PIDOff {
		return p.OutputMin
	}
	p.Error = setpoint - temperature

	// integrate only outside the epsilon band, with anti-windup
	if mathx.AbsF(p.Error) > PIDEpsilon && p.Output < p.OutputMax {
		p.Integral += p.Error * p.dt
	}
	p.Derivative = (p.Error - p.PrevError) / p.dt
	p.Output = mathx.Clamp(p.Kp*p.Error+p.Ki*p.Integral+p.Kd*p.Derivative, p.OutputMin, p.OutputMax)
	p.PrevError = p.Error

	return p.Output
}
