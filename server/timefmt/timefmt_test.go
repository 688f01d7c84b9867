package timefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "three digits get a leading zero", input: "930", expected: "0930"},
		{name: "four digits pass through", input: "1415", expected: "1415"},
		{name: "longer input truncates to four digits", input: "14153", expected: "1415"},
		{name: "non-digits are stripped first", input: "9:30", expected: "0930"},
		{name: "short input pads on the left", input: "45", expected: "0045"},
		{name: "single digit", input: "7", expected: "0007"},
		{name: "empty stays empty", input: "", expected: ""},
		{name: "only non-digits stays empty", input: "noon", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTime(tt.input))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "morning", input: "0930", expected: "9:30 AM"},
		{name: "afternoon", input: "1415", expected: "2:15 PM"},
		{name: "midnight", input: "0000", expected: "12:00 AM"},
		{name: "noon", input: "1200", expected: "12:00 PM"},
		{name: "three digit input", input: "930", expected: "9:30 AM"},
		{name: "out of range values normalize instead of erroring", input: "2575", expected: "2:15 AM"},
		{name: "too short passes through unchanged", input: "45", expected: "45"},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTime(tt.input))
		})
	}
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "9:30 AM - 10:30 AM", FormatTimeRange("0930", "1030"))
	assert.Equal(t, "9:30 AM", FormatTimeRange("0930", ""))
	assert.Equal(t, "10:30 AM", FormatTimeRange("", "1030"))
	assert.Equal(t, "", FormatTimeRange("", ""))
}

func TestCompareTimeRange(t *testing.T) {
	assert.Negative(t, CompareTimeRange("0900-1000", "1100-1200"))
	assert.Positive(t, CompareTimeRange("1100-1200", "0900-1000"))
	assert.Equal(t, 0, CompareTimeRange("0900-1000", "0900-1000"))
	// Same start falls back to full-string comparison.
	assert.Negative(t, CompareTimeRange("0900-1000", "0900-1100"))
	// Comparison happens on normalized starts.
	assert.Negative(t, CompareTimeRange("930-1030", "1100-1200"))
}
