package draft

import "strings"

// DefaultDayOrder is the left-to-right column order tabular timetable text is
// zipped against. It must stay in sync with the day list the vision prompt
// instructs the model with, which is why callers can inject their own order.
var DefaultDayOrder = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// DayLabels maps day codes to their full names for presentation layers.
var DayLabels = map[string]string{
	"MON": "Monday",
	"TUE": "Tuesday",
	"WED": "Wednesday",
	"THU": "Thursday",
	"FRI": "Friday",
	"SAT": "Saturday",
	"SUN": "Sunday",
}

// DayIndex returns the position of a day code within the Monday-first week,
// or -1 for unrecognized codes.
func DayIndex(day string) int {
	for i, code := range DefaultDayOrder {
		if code == strings.ToUpper(strings.TrimSpace(day)) {
			return i
		}
	}
	return -1
}

// normalizeDay uppercases a day token and checks membership in the day-code
// domain. Anything unrecognized becomes empty, which marks the entry as
// unscheduled and lets the content filter drop it.
func normalizeDay(value string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if _, ok := DayLabels[upper]; ok {
		return upper
	}
	return ""
}
