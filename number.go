package l10n

import (
	"math"
	"strconv"
	"strings"
)

// FormatShortNumber abbreviates n with one "K" per thousand step ("1.5K",
// "12K"); two steps render as "M" ("3.2M"). The second result is the value
// the abbreviation stands for, saturated at math.MaxInt.
func FormatShortNumber(n int) (string, int) {
	steps, lastDec := 0, 0
	for n/1000 > 0 {
		steps++
		lastDec = (n % 1000) / 100
		n /= 1000
	}

	rounded := expandShort(n, lastDec, steps)

	suffix := strings.Repeat("K", steps)
	if steps == 2 {
		suffix = "M"
	}

	var b strings.Builder
	b.WriteString(strconv.Itoa(n))
	if lastDec != 0 && steps > 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(lastDec))
	}
	b.WriteString(suffix)
	return b.String(), rounded
}

// expandShort computes (n + lastDec/10) * 1000^steps, saturating at
// math.MaxInt.
func expandShort(n, lastDec, steps int) int {
	unit := 1
	for i := 0; i < steps; i++ {
		if unit > math.MaxInt/1000 {
			return math.MaxInt
		}
		unit *= 1000
	}
	if n > math.MaxInt/unit {
		return math.MaxInt
	}
	whole := n * unit
	frac := lastDec * (unit / 10)
	if whole > math.MaxInt-frac {
		return math.MaxInt
	}
	return whole + frac
}
