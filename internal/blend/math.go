package blend

// div255Exact divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
//
// This is Alvy Ray Smith's formula. It gives floor(x/255) for every
// product of two bytes.
func div255Exact(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255Exact multiplies two bytes and divides by 255 exactly.
func mulDiv255Exact(a, b byte) byte {
	return byte(div255Exact(uint16(a) * uint16(b)))
}

// divRound divides n by d rounding half up. d must be non-zero.
func divRound(n, d uint32) uint32 {
	return (n + d/2) / d
}
