package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// FormatAmount renders a monetary amount with thousands separators and
// two decimal places, e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteString(fracPart)
	return b.String()
}
