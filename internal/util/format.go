package util

import "time"

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// FormatDateTime formats t in local time as "2006-01-02 15:04".
func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
