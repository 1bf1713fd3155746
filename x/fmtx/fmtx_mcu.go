//go:build rp2040

package fmtx

import (
	"io"

	"tempfin-go/x/conv"
)

// Minimal formatter for MCU builds. Supports the verbs the registry format
// strings actually use: %d, %f, %s, with optional width and precision
// (e.g. "%16.2f", "%1.0f"). Unknown verbs are emitted literally.

func Sprintf(format string, a ...any) string {
	var b []byte
	b = appendf(b, format, a...)
	return string(b)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var b []byte
	b = appendf(b, format, a...)
	return w.Write(b)
}

func appendf(b []byte, format string, a ...any) []byte {
	arg := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b = append(b, c)
			continue
		}
		i++
		if i >= len(format) {
			b = append(b, '%')
			break
		}
		if format[i] == '%' {
			b = append(b, '%')
			continue
		}
		// width[.precision]
		width, prec := 0, -1
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i < len(format) && format[i] == '.' {
			i++
			prec = 0
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				prec = prec*10 + int(format[i]-'0')
				i++
			}
		}
		if i >= len(format) {
			break
		}
		var frag []byte
		var tmp [32]byte
		switch format[i] {
		case 'd':
			frag = conv.Itoa(tmp[:20], toInt(next(a, &arg)))
		case 'f':
			if prec < 0 {
				prec = 6
			}
			frag = conv.Ftoa(tmp[:], toFloat(next(a, &arg)), prec)
		case 's':
			if s, ok := next(a, &arg).(string); ok {
				frag = []byte(s)
			}
		default:
			b = append(b, '%', format[i])
			continue
		}
		for pad := width - len(frag); pad > 0; pad-- {
			b = append(b, ' ')
		}
		b = append(b, frag...)
	}
	return b
}

func next(a []any, arg *int) any {
	if *arg >= len(a) {
		return nil
	}
	v := a[*arg]
	*arg++
	return v
}

func toInt(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int64:
		return x
	case uint8:
		return int64(x)
	case uint32:
		return int64(x)
	case float64:
		return int64(x)
	}
	return 0
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case uint8:
		return float64(x)
	}
	return 0
}
