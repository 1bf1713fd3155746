package serial

import (
	"context"
	"errors"
	"io"
	"testing"

	"tempfin-go/status"
)

// chunkPort replays scripted receive chunks.
type chunkPort struct {
	chunks [][]byte
	i      int
}

func (p *chunkPort) Write(b []byte) (int, error) { return len(b), nil }

func (p *chunkPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if p.i >= len(p.chunks) {
		return 0, io.EOF
	}
	n := copy(buf, p.chunks[p.i])
	p.i++
	return n, nil
}

func TestReadLineAcrossChunks(t *testing.T) {
	port := &chunkPort{chunks: [][]byte{
		[]byte(`{"fv"`),
		[]byte(":null}\r\n$h1"),
		[]byte("set=160\n"),
	}}
	r := NewLineReader(port, 64)

	line, err := r.ReadLine(context.Background())
	if err != nil || string(line) != `{"fv":null}` {
		t.Fatalf("line 1: %q %v", line, err)
	}
	line, err = r.ReadLine(context.Background())
	if err != nil || string(line) != "$h1set=160" {
		t.Fatalf("line 2: %q %v", line, err)
	}
	if _, err = r.ReadLine(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("eof: %v", err)
	}
}

func TestReadLineEmptyLines(t *testing.T) {
	port := &chunkPort{chunks: [][]byte{[]byte("\n\r\nok\n")}}
	r := NewLineReader(port, 64)

	for i := 0; i < 2; i++ {
		line, err := r.ReadLine(context.Background())
		if err != nil || len(line) != 0 {
			t.Fatalf("blank %d: %q %v", i, line, err)
		}
	}
	line, err := r.ReadLine(context.Background())
	if err != nil || string(line) != "ok" {
		t.Fatalf("line: %q %v", line, err)
	}
}

func TestReadLineOverflow(t *testing.T) {
	long := make([]byte, 40)
	for i := range long {
		long[i] = 'a'
	}
	port := &chunkPort{chunks: [][]byte{long, []byte("tail\nnext\n")}}
	r := NewLineReader(port, 16)

	_, err := r.ReadLine(context.Background())
	if status.Of(err) != status.NoBufferSpace {
		t.Fatalf("overflow: %v", err)
	}
	// the reader recovers on the following line
	line, err := r.ReadLine(context.Background())
	if err != nil || string(line) != "next" {
		t.Fatalf("recovery: %q %v", line, err)
	}
}

func TestIOPortContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &IOPort{R: nil, W: nil}
	if _, err := p.RecvSomeContext(ctx, make([]byte, 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled read: %v", err)
	}
}
