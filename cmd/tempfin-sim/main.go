//go:build !rp2040

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"tempfin-go/config"
	"tempfin-go/controller"
	"tempfin-go/device"
	"tempfin-go/nvm"
	"tempfin-go/serial"
)

// simPlant is a first-order thermal model for host runs: it stands in for
// both the thermocouple probe and the heater PWM. Full drive settles about
// 250 C over ambient, so ordinary setpoints are reachable.
type simPlant struct {
	Temperature float64
	ambient     float64
	duty        float64
	on          bool
}

func (p *simPlant) ReadTemperature() (float64, error) { return p.Temperature, nil }

func (p *simPlant) On(freqHz, duty float64) { p.on = true; p.duty = duty }
func (p *simPlant) Off()                    { p.on = false; p.duty = 0 }
func (p *simPlant) SetDuty(percent float64) { p.duty = percent }

func (p *simPlant) step(dt float64) {
	drive := 0.0
	if p.on {
		drive = p.duty
	}
	p.Temperature += (drive*0.05 - (p.Temperature-p.ambient)*0.02) * dt
}

func main() {
	var store nvm.Store
	if f, err := nvm.OpenFile("tempfin.nvm", 64); err == nil {
		store = f
	} else {
		println("Info: nvm file unavailable, settings will not persist:", err.Error())
		store = nvm.NewMemory(64)
	}

	plant := &simPlant{Temperature: 25, ambient: 25}
	d := device.New(store, plant, plant)
	d.Init(os.Stdout)

	lines := make(chan []byte)
	go func() {
		defer close(lines)
		r := serial.NewLineReader(&serial.IOPort{R: os.Stdin, W: os.Stdout}, config.MaxLineLen)
		for {
			line, err := r.ReadLine(context.Background())
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				println("Info: read error:", err.Error())
				continue
			}
			lines <- append([]byte(nil), line...)
		}
	}()

	tick := time.NewTicker(time.Duration(controller.SensorTickSeconds * float64(time.Second)))
	defer tick.Stop()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			d.ProcessLine(line, os.Stdout)
		case <-tick.C:
			plant.step(controller.SensorTickSeconds)
			d.Tick()
		}
	}
}
