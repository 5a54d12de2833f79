package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePostal = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{1,9}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/category/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// MaxLineQty caps a single line quantity.
const MaxLineQty = 50

func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxLineQty {
		return MaxLineQty // clamp to avoid abuse
	}
	return n
}

// LineQty reports whether a checkout line quantity is acceptable as-is.
// Unlike Qty it never reshapes the value: an out-of-range quantity is a
// rejection, so what gets committed is exactly what was asked for.
func LineQty(n int) bool {
	return n >= 1 && n <= MaxLineQty
}

// PostalCode accepts common ZIP/postal formats.
func PostalCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePostal.MatchString(s)
}

// Text validates a free-form postal field: non-empty after trim, bounded.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > max {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 64
}
