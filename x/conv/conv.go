package conv

// Itoa writes the base-10 representation of n into buf and returns the used
// slice. buf should be length >= 20 for int64. Negative numbers supported.
// No allocations; no fmt/strconv dependency.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-n)
	} else {
		u = uint64(n)
	}
	if u == 0 {
		i--
		buf[i] = '0'
	} else {
		for u > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (u % 10))
			u /= 10
		}
	}
	if neg && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// Ftoa writes f in plain decimal notation with prec fractional digits into
// buf and returns the used slice. Rounds half away from zero. prec is
// clamped to 0..9. buf should be length >= 32. No exponent form; values too
// large for an int64 integer part return "0".
//
// This is sufficient for protocol output (fixed-precision temperatures,
// gains, versions); it is not a general strconv replacement.
func Ftoa(buf []byte, f float64, prec int) []byte {
	if len(buf) < 32 {
		return buf[:0]
	}
	if prec < 0 {
		prec = 0
	}
	if prec > 9 {
		prec = 9
	}
	neg := f < 0
	if neg {
		f = -f
	}
	if f > 9.2e18 || f != f { // out of int64 range or NaN
		buf[0] = '0'
		return buf[:1]
	}

	// Scale, round, then split into integer and fraction.
	pow := int64(1)
	for i := 0; i < prec; i++ {
		pow *= 10
	}
	scaled := int64(f*float64(pow) + 0.5)
	ip := scaled / pow
	fp := scaled % pow

	w := 0
	if neg && (ip != 0 || fp != 0) {
		buf[w] = '-'
		w++
	}
	var tmp [20]byte
	s := Itoa(tmp[:], ip)
	w += copy(buf[w:], s)
	if prec > 0 {
		buf[w] = '.'
		w++
		// zero-pad the fraction to prec digits
		div := pow / 10
		for div > 0 {
			buf[w] = byte('0' + (fp/div)%10)
			w++
			div /= 10
		}
	}
	return buf[:w]
}
