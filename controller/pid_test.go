package controller

import "testing"

func TestPIDColdStart(t *testing.T) {
	var p PID
	p.Init(HeaterTickSeconds)
	if p.State != PIDOn || p.Kp != PIDKp || p.OutputMax != PIDMaxOutput {
		t.Fatalf("init: %+v", p)
	}
	p.Reset()
	if p.Integral != PIDInitialIntegral || p.Output != 0 || p.PrevError != 0 {
		t.Fatalf("reset: %+v", p)
	}
}

func TestPIDSaturation(t *testing.T) {
	var p PID
	p.Init(HeaterTickSeconds)
	p.Reset()

	out := p.Calculate(160, 25)
	if out != PIDMaxOutput {
		t.Fatalf("large error must saturate: out = %v", out)
	}
	if p.Error != 135 || p.PrevError != 135 {
		t.Fatalf("error terms: %+v", p)
	}
}

func TestPIDAntiWindup(t *testing.T) {
	var p PID
	p.Init(HeaterTickSeconds)
	p.Reset()

	p.Calculate(160, 25)
	integral := p.Integral
	// output is pinned at max; the integral must not keep growing
	p.Calculate(160, 25)
	if p.Integral != integral {
		t.Fatalf("integral grew while saturated: %v -> %v", integral, p.Integral)
	}
}

func TestPIDEpsilonBand(t *testing.T) {
	var p PID
	p.Init(HeaterTickSeconds)
	p.Reset()
	p.Calculate(160, 100)
	integral := p.Integral

	// inside the epsilon band the integral holds still
	p.Output = 0
	p.Calculate(160, 160)
	if p.Integral != integral {
		t.Fatalf("integral moved inside epsilon band: %v -> %v", integral, p.Integral)
	}
}

func TestPIDOffReturnsMin(t *testing.T) {
	var p PID
	p.Init(HeaterTickSeconds)
	p.State = PIDOff
	if out := p.Calculate(160, 25); out != PIDMinOutput {
		t.Fatalf("off output = %v", out)
	}
}

func TestPIDLowerClamp(t *testing.T) {
	var p PID
	p.Init(HeaterTickSeconds)
	p.Reset()
	p.Calculate(160, 25)

	// a hard overshoot drives the raw output negative; it must clamp to min
	if out := p.Calculate(160, 400); out != PIDMinOutput {
		t.Fatalf("overshoot output = %v", out)
	}
}
