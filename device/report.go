package device

import (
	"io"

	"tempfin-go/controller"
	"tempfin-go/x/fmtx"
)

var heaterStateLabel = [...]string{
	controller.HeaterOff:       "  Off",
	controller.HeaterShutdown:  "  Shutdown",
	controller.HeaterHeating:   "  Heating",
	controller.HeaterRegulated: "  REGULATED",
}

var sensorCodeLabel = [...]string{
	controller.SensorIdle:            "",
	controller.SensorTakingReading:   "  Taking Reading",
	controller.SensorErrBadReadings:  "  Bad Reading",
	controller.SensorErrDisconnected: "  Disconnected",
	controller.SensorErrNoPower:      "  No Power",
}

// Initialized prints the cold-start banner.
func Initialized(w io.Writer) {
	io.WriteString(w, "\nDevice Initialized\n")
}

// Readout prints the one-line operator view of the plant.
func (d *Device) Readout(w io.Writer) {
	s := &d.Controller.Sensor
	p := &d.Controller.PID
	h := &d.Controller.Heater

	fmtx.Fprintf(w, "Temp:%1.3f  PWM:%1.3f  StdDev:%1.3f  Err:%1.3f  I:%1.3f",
		s.Temperature, p.Output, s.StdDev, p.Error, p.Integral)
	if int(h.State) < len(heaterStateLabel) {
		io.WriteString(w, heaterStateLabel[h.State])
	}
	if s.State == controller.SensorError && int(s.Code) < len(sensorCodeLabel) {
		io.WriteString(w, sensorCodeLabel[s.Code])
	}
	io.WriteString(w, "\n")
}
