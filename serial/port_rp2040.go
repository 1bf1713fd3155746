//go:build rp2040

package serial

import (
	"context"
	"errors"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// UARTPort adapts uartx to the Port contract.
type UARTPort struct{ u *uartx.UART }

// OpenUART configures one of the RP2040 UART blocks. Zero baud falls back
// to the uartx default.
func OpenUART(id string, baud uint32, tx, rx machine.Pin) (*UARTPort, error) {
	var hw *uartx.UART
	switch id {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errors.New("serial: unknown uart " + id)
	}
	if err := hw.Configure(uartx.UARTConfig{BaudRate: baud, TX: tx, RX: rx}); err != nil {
		return nil, err
	}
	return &UARTPort{u: hw}, nil
}

func (p *UARTPort) Write(b []byte) (int, error) { return p.u.Write(b) }

func (p *UARTPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	return p.u.RecvSomeContext(ctx, buf)
}

func (p *UARTPort) SetBaudRate(br uint32) { p.u.SetBaudRate(br) }
