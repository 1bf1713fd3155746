//go:build rp2040

package main

import (
	"context"
	"errors"
	"machine"
	"time"

	"tempfin-go/config"
	"tempfin-go/controller"
	"tempfin-go/device"
	"tempfin-go/drivers/max6675"
	"tempfin-go/nvm"
	"tempfin-go/serial"
	"tempfin-go/x/mathx"
	"tempfin-go/x/timex"
)

// Board wiring for the Pico build: MAX6675 on SPI0, heater drive on a
// PWM-capable pin, console on UART0.
const (
	heaterPin = machine.GP15
	csPin     = machine.GP17

	uartBaud = 115200
	spiFreq  = 1_000_000
)

type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(ch uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	}
	return nil
}

// heaterPWM adapts one RP2040 PWM channel to the controller's drive
// interface. The heater owns its slice, so reconfiguring the period on
// every On is safe.
type heaterPWM struct {
	pin  machine.Pin
	ctrl pwmCtrl
	ch   uint8
	top  uint32
	on   bool
}

func newHeaterPWM(pin machine.Pin) (*heaterPWM, error) {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil, err
	}
	ctrl := pwmGroupBySlice(slice)
	if ctrl == nil {
		return nil, errors.New("pwm: no controller for pin")
	}
	return &heaterPWM{pin: pin, ctrl: ctrl}, nil
}

func (p *heaterPWM) On(freqHz, duty float64) {
	hz := uint32(mathx.Max(freqHz, 1))
	if err := p.ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(hz)}); err != nil {
		return
	}
	ch, err := p.ctrl.Channel(p.pin)
	if err != nil {
		return
	}
	p.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	p.ch = ch
	p.top = p.ctrl.Top()
	p.on = true
	p.SetDuty(duty)
}

func (p *heaterPWM) Off() {
	if p.on {
		p.ctrl.Set(p.ch, 0)
	}
	p.on = false
}

func (p *heaterPWM) SetDuty(percent float64) {
	if !p.on || p.top == 0 {
		return
	}
	percent = mathx.Clamp(percent, 0, 100)
	p.ctrl.Set(p.ch, uint32(float64(p.top)*percent/100))
}

// chipSelect drives the MAX6675 CS line, active low.
type chipSelect struct{ pin machine.Pin }

func (c chipSelect) Low()  { c.pin.Low() }
func (c chipSelect) High() { c.pin.High() }

func main() {
	time.Sleep(2 * time.Second)

	port, err := serial.OpenUART("uart0", uartBaud, machine.UART0_TX_PIN, machine.UART0_RX_PIN)
	if err != nil {
		for {
			println("uart0 unavailable:", err.Error())
			time.Sleep(time.Second)
		}
	}

	if err := machine.SPI0.Configure(machine.SPIConfig{Frequency: spiFreq}); err != nil {
		for {
			println("spi0 unavailable:", err.Error())
			time.Sleep(time.Second)
		}
	}
	cs := csPin
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	probe := max6675.New(machine.SPI0, chipSelect{pin: cs})

	pwm, err := newHeaterPWM(heaterPin)
	if err != nil {
		for {
			println("pwm unavailable:", err.Error())
			time.Sleep(time.Second)
		}
	}

	d := device.New(nvm.NewMemory(64), &probe, pwm)
	d.Init(port)

	lines := make(chan []byte, 1)
	go func() {
		r := serial.NewLineReader(port, config.MaxLineLen)
		for {
			line, err := r.ReadLine(context.Background())
			if err != nil {
				continue
			}
			lines <- append([]byte(nil), line...)
		}
	}()

	tick := time.NewTicker(time.Duration(controller.SensorTickSeconds * float64(time.Second)))
	for {
		select {
		case line := <-lines:
			d.ProcessLine(line, port)
		case <-tick.C:
			d.Tick()
		}
	}
}
