package device

import "tempfin-go/config"

// Firmware identity. These ride the wire as plain numbers, so they are
// doubles rather than strings.
const (
	BuildNumber     = 7.03
	VersionNumber   = 0.1
	HardwareVersion = 0.1
)

// System group format strings, used only for text-mode readouts.
const (
	fmtFV = "[fv]  firmware version%16.2f\n"
	fmtFB = "[fb]  firmware build%18.2f\n"
	fmtHV = "[hv]  hardware version%16.2f\n"

	fmtUI8 = "%d\n"    // generic for uint8 values
	fmtDbl = "%1.3f\n" // generic for float values
)

const fIdent = config.FlagInitialize | config.FlagPersist | config.FlagNoStrip

// newRegistry compiles the application table. Ordering rules: where tokens
// overlap as prefixes the longer one comes first, and the group entries sit
// at the tail after every single-valued entry.
func (d *Device) newRegistry() *config.Registry {
	h := &d.Controller.Heater
	s := &d.Controller.Sensor
	p := &d.Controller.PID

	entries := []config.Entry{
		// system identity - fb must be first
		{Group: "sys", Token: "fb", Flags: fIdent, Format: fmtFB, Kind: config.KindFloat, Target: &d.FwBuild, Def: BuildNumber},
		{Group: "sys", Token: "fv", Flags: fIdent, Format: fmtFV, Kind: config.KindFloat, Target: &d.FwVersion, Def: VersionNumber},
		{Group: "sys", Token: "hv", Flags: fIdent, Format: fmtHV, Kind: config.KindFloat, Target: &d.HwVersion, Def: HardwareVersion},

		// heater
		{Group: "h1", Token: "h1st", Format: fmtUI8, Kind: config.KindUint8, Target: &h.State},
		{Group: "h1", Token: "h1tmp", Format: fmtDbl, Kind: config.KindFloat, Target: &h.Temperature},
		{Group: "h1", Token: "h1set", Format: fmtDbl, Kind: config.KindFloat, Target: &h.Setpoint},
		{Group: "h1", Token: "h1hys", Format: fmtUI8, Kind: config.KindUint8, Target: &h.Hysteresis},
		{Group: "h1", Token: "h1amb", Format: fmtDbl, Kind: config.KindFloat, Target: &h.AmbientTemp},
		{Group: "h1", Token: "h1ovr", Format: fmtDbl, Kind: config.KindFloat, Target: &h.OverheatTemp},
		{Group: "h1", Token: "h1ato", Format: fmtDbl, Kind: config.KindFloat, Target: &h.AmbientTimeout},
		{Group: "h1", Token: "h1reg", Format: fmtDbl, Kind: config.KindFloat, Target: &h.RegulationRange},
		{Group: "h1", Token: "h1rto", Format: fmtDbl, Kind: config.KindFloat, Target: &h.RegulationTimeout},
		{Group: "h1", Token: "h1bad", Format: fmtUI8, Kind: config.KindUint8, Target: &h.BadReadingMax},

		// sensor
		{Group: "s1", Token: "s1st", Format: fmtUI8, Kind: config.KindUint8, Target: &s.State},
		{Group: "s1", Token: "s1tmp", Format: fmtDbl, Kind: config.KindFloat, Target: &s.Temperature},
		{Group: "s1", Token: "s1svm", Format: fmtDbl, Kind: config.KindFloat, Target: &s.SampleVarianceMax},
		{Group: "s1", Token: "s1rvm", Format: fmtDbl, Kind: config.KindFloat, Target: &s.ReadingVarianceMax},

		// pid
		{Group: "p1", Token: "p1kp", Format: fmtDbl, Kind: config.KindFloat, Target: &p.Kp},
		{Group: "p1", Token: "p1ki", Format: fmtDbl, Kind: config.KindFloat, Target: &p.Ki},
		{Group: "p1", Token: "p1kd", Format: fmtDbl, Kind: config.KindFloat, Target: &p.Kd},
		{Group: "p1", Token: "p1smx", Format: fmtDbl, Kind: config.KindFloat, Target: &p.OutputMax},
		{Group: "p1", Token: "p1smn", Format: fmtDbl, Kind: config.KindFloat, Target: &p.OutputMin},

		// group lookups - must follow the single-valued entries
		{Token: "sys", Kind: config.KindGroup},
		{Token: "h1", Kind: config.KindGroup},
		{Token: "s1", Kind: config.KindGroup},
		{Token: "p1", Kind: config.KindGroup},
	}
	return config.NewRegistry(entries, 4, 0)
}
