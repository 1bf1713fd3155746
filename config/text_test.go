package config

import (
	"bytes"
	"strings"
	"testing"

	"tempfin-go/status"
)

func TestTextGetSingle(t *testing.T) {
	p, r := newTestRunner(nil)
	r.Mode = ModeText
	p.fwVersion = 0.1

	var out bytes.Buffer
	if sc := r.ParseExecuteText([]byte("$fv"), &out); sc != status.OK {
		t.Fatalf("status %v", sc)
	}
	want := "[fv]  firmware version            0.10\n"
	if out.String() != want {
		t.Fatalf("out %q, want %q", out.String(), want)
	}
}

func TestTextSetSingle(t *testing.T) {
	for _, line := range []string{"$h1set=160", "$h1set 160", "$h1set:160", "$h1set|160", "h1set=160"} {
		p, r := newTestRunner(nil)
		r.Mode = ModeText

		var out bytes.Buffer
		if sc := r.ParseExecuteText([]byte(line), &out); sc != status.OK {
			t.Fatalf("%q: status %v", line, sc)
		}
		if p.setpoint != 160 {
			t.Fatalf("%q: setpoint = %v", line, p.setpoint)
		}
		if out.String() != "160.000\n" {
			t.Fatalf("%q: out %q", line, out.String())
		}
	}
}

func TestTextCaseFold(t *testing.T) {
	p, r := newTestRunner(nil)
	r.Mode = ModeText

	var out bytes.Buffer
	if sc := r.ParseExecuteText([]byte("$H1SET=120\r\n"), &out); sc != status.OK {
		t.Fatalf("status %v", sc)
	}
	if p.setpoint != 120 {
		t.Fatalf("setpoint = %v", p.setpoint)
	}
}

func TestTextGetGroup(t *testing.T) {
	p, r := newTestRunner(nil)
	r.Mode = ModeText
	p.state = 1
	p.setpoint = 160
	p.hyst = 3

	var out bytes.Buffer
	if sc := r.ParseExecuteText([]byte("$h1"), &out); sc != status.OK {
		t.Fatalf("status %v", sc)
	}
	want := "1\n160.000\n3\n"
	if out.String() != want {
		t.Fatalf("out %q, want %q", out.String(), want)
	}
}

func TestTextGroupSetRejected(t *testing.T) {
	_, r := newTestRunner(nil)
	r.Mode = ModeText

	var out bytes.Buffer
	if sc := r.ParseExecuteText([]byte("$h1=2"), &out); sc != status.UnrecognizedCommand {
		t.Fatalf("status %v, want UnrecognizedCommand", sc)
	}
	if out.Len() != 0 {
		t.Fatalf("no output expected on error, got %q", out.String())
	}
}

func TestTextUnknownToken(t *testing.T) {
	_, r := newTestRunner(nil)
	r.Mode = ModeText

	var out bytes.Buffer
	if sc := r.ParseExecuteText([]byte("$bogus=1"), &out); sc != status.UnrecognizedCommand {
		t.Fatalf("status %v", sc)
	}
}

func TestTextOverlongLine(t *testing.T) {
	_, r := newTestRunner(nil)
	r.Mode = ModeText

	var out bytes.Buffer
	line := "$" + strings.Repeat("a", MaxLineLen+8)
	if sc := r.ParseExecuteText([]byte(line), &out); sc != status.InputExceedsMaxLen {
		t.Fatalf("status %v", sc)
	}
}

func TestTextInlineLayouts(t *testing.T) {
	_, r := newTestRunner(nil)
	l := &r.List
	l.Reset()
	l.AddInteger("st", 1)
	l.AddFloat("set", 160)

	var pairs bytes.Buffer
	r.PrintInlinePairs(&pairs)
	if pairs.String() != "st:1,set:160.000\n" {
		t.Fatalf("pairs %q", pairs.String())
	}

	var vals bytes.Buffer
	r.PrintInlineValues(&vals)
	if vals.String() != "1,160.000\n" {
		t.Fatalf("values %q", vals.String())
	}
}
