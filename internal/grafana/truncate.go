package grafana

// TruncateLine shortens a log line to at most maxPerLine characters,
// appending "..." when anything was cut. A maxPerLine of zero or less
// disables truncation. Re-truncating at the same or a larger threshold
// yields the same string, so truncation applied in the gateway and again in
// a formatter is harmless.
func TruncateLine(line string, maxPerLine int) string {
	if maxPerLine <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= maxPerLine {
		return line
	}
	return string(runes[:maxPerLine]) + "..."
}
