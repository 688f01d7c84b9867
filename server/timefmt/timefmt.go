// Package timefmt normalizes and formats the compact 24-hour time strings
// ("0930", "1415") used throughout extracted timetables.
package timefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizeTime reduces a raw time token to a zero-padded 4-digit 24-hour
// string. Non-digit characters are stripped first; a 3-digit remainder gets a
// single leading zero, longer remainders are truncated to the first 4 digits,
// and shorter ones are left-padded. Empty input stays empty.
func NormalizeTime(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}
	if len(digits) == 3 {
		return "0" + digits
	}
	if len(digits) >= 4 {
		return digits[:4]
	}
	return strings.Repeat("0", 4-len(digits)) + digits
}

// FormatTime renders a 3-4 digit time token in "h:mm AM/PM" form. Values that
// do not reduce to 3 or 4 digits are returned unchanged so already-formatted
// or malformed strings pass through.
func FormatTime(raw string) string {
	if raw == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) < 3 || len(digits) > 4 {
		return raw
	}

	padded := NormalizeTime(digits)
	hours, err := strconv.Atoi(padded[:2])
	if err != nil {
		return raw
	}
	minutes, err := strconv.Atoi(padded[2:4])
	if err != nil {
		return raw
	}

	// time.Date normalizes out-of-range hour/minute values the same way the
	// dashboard's clock widget did, so "2575" still renders instead of erroring.
	t := time.Date(2000, time.January, 1, hours, minutes, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// FormatTimeRange joins the formatted start and end with " - ". When only one
// side is formattable that side is returned alone; when neither is, the result
// is empty.
func FormatTimeRange(start, end string) string {
	formattedStart := FormatTime(start)
	formattedEnd := FormatTime(end)

	if formattedStart != "" && formattedEnd != "" {
		return formattedStart + " - " + formattedEnd
	}
	if formattedStart != "" {
		return formattedStart
	}
	return formattedEnd
}

// CompareTimeRange orders two "start-end" strings by their normalized start
// time. Identical starts fall back to plain lexicographic comparison of the
// full strings so the ordering stays deterministic.
func CompareTimeRange(a, b string) int {
	aStart, _, _ := strings.Cut(a, "-")
	bStart, _, _ := strings.Cut(b, "-")
	normalizedA := NormalizeTime(aStart)
	normalizedB := NormalizeTime(bStart)
	if normalizedA == normalizedB {
		return strings.Compare(a, b)
	}
	return strings.Compare(normalizedA, normalizedB)
}
