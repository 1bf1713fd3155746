package controller

import "testing"

func TestControllerTickCadence(t *testing.T) {
	probe := constProbe(160)
	pwm := &recordPWM{}
	var c Controller
	c.Init(probe, pwm)
	c.On(160)

	// one control interval: the sensor completes its reading well before
	// the heater runs
	ticks := int(HeaterTickSeconds / SensorTickSeconds)
	for i := 0; i < ticks; i++ {
		c.Tick()
	}
	if c.Sensor.State != SensorHasData {
		t.Fatalf("sensor state %d after one interval", c.Sensor.State)
	}
	if c.Heater.Temperature != 160 {
		t.Fatalf("heater temperature %v", c.Heater.Temperature)
	}
}

func TestControllerReachesRegulation(t *testing.T) {
	probe := constProbe(160)
	pwm := &recordPWM{}
	var c Controller
	c.Init(probe, pwm)
	c.On(160)

	interval := int(HeaterTickSeconds / SensorTickSeconds)
	for i := 0; i < interval*(HeaterHysteresis+2); i++ {
		c.Tick()
	}
	if c.Heater.State != HeaterRegulated {
		t.Fatalf("state %d hysteresis %d", c.Heater.State, c.Heater.Hysteresis)
	}
}

func TestControllerOff(t *testing.T) {
	probe := constProbe(160)
	pwm := &recordPWM{}
	var c Controller
	c.Init(probe, pwm)
	c.On(160)
	c.Off()

	if c.Heater.State != HeaterOff || c.Heater.Code != HeaterOK {
		t.Fatalf("state %d code %d", c.Heater.State, c.Heater.Code)
	}
	if pwm.offCalls == 0 {
		t.Fatal("pwm left on")
	}
}
