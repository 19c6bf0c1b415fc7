package core

// itoa converts an integer to a string without using fmt package
func itoa(n int) string {
	if n < 0 {
		return "-" + Utoa(uint32(-n))
	}
	return Utoa(uint32(n))
}

// Utoa converts an unsigned integer to a string without using fmt package
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// hex8 formats the low byte of v as two hex digits, used for register dumps
func hex8(v uint32) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[(v>>4)&0xF], digits[v&0xF]})
}
