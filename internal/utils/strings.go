package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeCode uppercases and trims a coupon or scan code.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
