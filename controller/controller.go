// Package controller implements the temperature control plant: a sampling
// sensor, a PID loop and the heater state machine that sequences them.
package controller

// SensorTickSeconds is the fast sampling cadence. A full reading takes
// SensorSamples ticks, which must complete well inside one heater interval.
const SensorTickSeconds = 0.001

// heaterTickDivisor runs the heater once per HeaterTickSeconds of sensor ticks.
const heaterTickDivisor = int(HeaterTickSeconds / SensorTickSeconds)

// Controller owns the plant. Tick is driven on the fast cadence; the heater
// control interval is derived from it.
type Controller struct {
	Sensor Sensor
	PID    PID
	Heater Heater

	tick int
}

func (c *Controller) Init(probe Probe, pwm PWM) {
	c.Sensor.Init(probe)
	c.PID.Init(HeaterTickSeconds)
	c.Heater.Init(&c.Sensor, &c.PID, pwm)
	c.tick = 0
}

// Tick advances the plant by one sensor interval. The sensor samples every
// call; the heater runs once per control interval.
func (c *Controller) Tick() {
	c.Sensor.Tick()
	if c.tick++; c.tick >= heaterTickDivisor {
		c.tick = 0
		c.Heater.Tick()
	}
}

// On starts a heating cycle toward setpoint.
func (c *Controller) On(setpoint float64) { c.Heater.On(setpoint) }

// Off shuts the plant down without recording a fault.
func (c *Controller) Off() { c.Heater.Off(HeaterOff, HeaterOK) }
