//go:build !rp2040

package fmtx

import (
	"fmt"
	"io"
)

// Host builds delegate straight to fmt. Signature parity with the MCU side.

func Sprintf(format string, a ...any) string                    { return fmt.Sprintf(format, a...) }
func Fprintf(w io.Writer, format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
