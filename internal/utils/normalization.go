package utils

import "strings"

// NormalizeScore maps the 0-100 scale returned by the scoring model onto the
// 0-1 scale the aggregate consumer expects, clamping out-of-range values.
func NormalizeScore(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 1
	}
	return raw / 100
}

// NormalizePhone strips formatting characters, keeping digits and a leading +.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i, c := range raw {
		if c == '+' && i == 0 || c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// IsE164 reports whether the number looks like +<country code><digits>.
func IsE164(phone string) bool {
	if len(phone) < 9 || len(phone) > 16 || phone[0] != '+' {
		return false
	}
	for _, c := range phone[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
