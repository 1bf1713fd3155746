// Package serial provides the byte transport under the wire protocol:
// a small port contract and a bounded line assembler. The protocol layer
// never touches a port directly; it consumes whole lines.
package serial

import (
	"context"
	"io"

	"tempfin-go/status"
)

// Port is a byte-oriented serial endpoint. RecvSomeContext returns at
// least one byte or blocks until the context ends.
type Port interface {
	io.Writer
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// LineReader assembles newline-terminated lines from a Port into a fixed
// buffer. CR is ignored. A line longer than the buffer is consumed to its
// newline and reported as an error rather than handed over truncated.
type LineReader struct {
	port Port
	line []byte
	buf  [64]byte
	pend []byte // unconsumed tail of the last receive
	over bool
}

func NewLineReader(port Port, maxLine int) *LineReader {
	if maxLine < 16 {
		maxLine = 16
	}
	return &LineReader{port: port, line: make([]byte, 0, maxLine)}
}

// ReadLine blocks until one complete line is available and returns it.
// The returned slice is valid until the next call.
func (r *LineReader) ReadLine(ctx context.Context) ([]byte, error) {
	for {
		for len(r.pend) > 0 {
			b := r.pend[0]
			r.pend = r.pend[1:]
			switch b {
			case '\n':
				line := r.line
				over := r.over
				r.line = r.line[:0]
				r.over = false
				if over {
					return nil, &status.E{C: status.NoBufferSpace, Op: "serial: line"}
				}
				return line, nil
			case '\r':
				// ignore
			default:
				if len(r.line) < cap(r.line) {
					r.line = append(r.line, b)
				} else {
					r.over = true
				}
			}
		}
		n, err := r.port.RecvSomeContext(ctx, r.buf[:])
		if n > 0 {
			r.pend = r.buf[:n]
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// IOPort adapts a plain reader/writer pair (stdin/stdout on hosts) to the
// Port contract. The context is not honored mid-read; host reads block.
type IOPort struct {
	R io.Reader
	W io.Writer
}

func (p *IOPort) Write(b []byte) (int, error) { return p.W.Write(b) }

func (p *IOPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.R.Read(buf)
}
