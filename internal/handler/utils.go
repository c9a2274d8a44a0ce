package handler

// TruncateText truncates s to at most max Unicode code points, appending
// "..." as a truncation marker. The limit counts code points rather than
// bytes so multi-byte summaries are never cut mid-character; the marker is
// appended on top of the limit.
func TruncateText(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
