package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const infinity = "Infinity"

// FormatNumber converts n to the shortest decimal string that parses back to n.
// Values at or above 1e21, or below 1e-6, are written in exponent form.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return infinity
	case math.IsInf(n, -1):
		return "-" + infinity
	case n == 0:
		// Covers negative zero as well
		return "0"
	}

	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(n, 'e', -1, 64))
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv puts in front of short exponents ("e-07" -> "e-7")
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}

// ParseNumber reads the longest numeric prefix of s.
// Anything without a numeric prefix, including the empty string, is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)

	unsigned, negative := s, false
	if len(unsigned) > 0 && (unsigned[0] == '-' || unsigned[0] == '+') {
		negative = unsigned[0] == '-'
		unsigned = unsigned[1:]
	}
	if strings.HasPrefix(unsigned, infinity) {
		if negative {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	end := 0
	for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
		end++
	}
	for ; end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v
		}
	}
	return math.NaN()
}
