// Package device assembles the firmware: the compiled registry binding the
// control plant to the wire, the per-line dispatcher with comm-mode
// latching, and the operator readout.
package device

import (
	"io"

	"tempfin-go/config"
	"tempfin-go/controller"
	"tempfin-go/nvm"
	"tempfin-go/status"
	"tempfin-go/x/fmtx"
)

// Device is one temperature controller instance: the plant, the request
// context and the identity values the registry binds.
type Device struct {
	Controller controller.Controller
	Runner     *config.Runner

	FwBuild   float64
	FwVersion float64
	HwVersion float64

	out [config.OutBufLen]byte
}

func New(store nvm.Store, probe controller.Probe, pwm controller.PWM) *Device {
	d := &Device{}
	d.Controller.Init(probe, pwm)
	d.Runner = config.NewRunner(d.newRegistry(), store)
	return d
}

// Init runs the cold-start sweep: table defaults first, then stored values
// on top, then the banner.
func (d *Device) Init(w io.Writer) {
	d.Runner.ApplyDefaults()
	d.Runner.RestoreNVM()
	Initialized(w)
}

// Tick advances the plant by one sensor interval.
func (d *Device) Tick() { d.Controller.Tick() }

// ProcessLine dispatches one input line. A leading '{' latches JSON mode
// and always writes a response with a status footer; '?' prints the
// operator readout; anything else latches text mode, where errors are
// echoed in plain text.
func (d *Device) ProcessLine(line []byte, w io.Writer) status.Code {
	for len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		line = line[1:]
	}
	if len(line) == 0 || line[0] == '\r' || line[0] == '\n' {
		return status.OK
	}

	switch line[0] {
	case '{':
		d.Runner.Mode = config.ModeJSON
		sc := d.Runner.ParseExecuteJSON(line)
		w.Write(d.Runner.SerializeResponse(sc, d.out[:0]))
		return sc
	case '?':
		d.Readout(w)
		return status.OK
	default:
		d.Runner.Mode = config.ModeText
		sc := d.Runner.ParseExecuteText(line, w)
		if sc != status.OK {
			fmtx.Fprintf(w, "error: %s\n", sc.String())
		}
		return sc
	}
}
