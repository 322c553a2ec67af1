package grafana

import (
	"regexp"
	"strconv"
	"time"
)

var relativeTimeRegexp = regexp.MustCompile(`^now-(\d+)([smhdwMy])$`)

// unitSeconds maps Grafana relative-time units to seconds. Months and years
// use fixed 30/365-day approximations; this is part of the observable
// contract, not a shortcut to fix with calendar arithmetic.
var unitSeconds = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 7 * 86400,
	"M": 30 * 86400,
	"y": 365 * 86400,
}

// datetimeLayouts are tried in order when an expression is neither relative
// nor numeric. Naive datetimes (no offset) are interpreted as UTC.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// NormalizeTime converts a time expression into a string of nanoseconds since
// the Unix epoch. It accepts "now", relative expressions like "now-5m"
// (units: s, m, h, d, w, M, y), all-digit Unix timestamps (seconds when 10
// digits or fewer, nanoseconds otherwise), and RFC3339/ISO-8601 datetimes.
// It is total: anything unparseable, including an unrecognized relative
// unit, falls back to the current time.
func NormalizeTime(expr string) string {
	now := time.Now()

	if expr == "" || expr == "now" {
		return strconv.FormatInt(now.UnixNano(), 10)
	}

	if m := relativeTimeRegexp.FindStringSubmatch(expr); m != nil {
		if amount, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			offset := amount * unitSeconds[m[2]] * int64(time.Second)
			return strconv.FormatInt(now.UnixNano()-offset, 10)
		}
	}

	if isAllDigits(expr) {
		if len(expr) > 10 {
			// Already nanoseconds.
			return expr
		}
		if secs, err := strconv.ParseInt(expr, 10, 64); err == nil {
			return strconv.FormatInt(secs*int64(time.Second), 10)
		}
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, expr); err == nil {
			return strconv.FormatInt(t.UnixNano(), 10)
		}
	}

	return strconv.FormatInt(now.UnixNano(), 10)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
