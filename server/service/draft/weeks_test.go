package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWeeks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
	}{
		{name: "range plus single", input: "Wk 1-3, 5", expected: []int{1, 2, 3, 5}},
		{name: "case insensitive token", input: "lecture wk 2,4", expected: []int{2, 4}},
		{name: "embedded in other text", input: "CS101 (LT1) Wk 7-9 tutorial", expected: []int{7, 8, 9}},
		{name: "duplicates collapse and sort", input: "Wk 3, 1, 3", expected: []int{1, 3}},
		{name: "multiple tokens merge", input: "Wk 1-2 and Wk 4", expected: []int{1, 2, 4}},
		{name: "inverted range is skipped", input: "Wk 5-3", expected: nil},
		{name: "dangling range is skipped", input: "Wk 4-", expected: nil},
		{name: "no token means no restriction", input: "CS101 Lecture", expected: nil},
		{name: "empty input", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractWeeks(tt.input))
		})
	}
}

func TestNormalizeWeeks(t *testing.T) {
	tests := []struct {
		name     string
		input    []any
		expected []int
	}{
		{name: "drops non-positive and fractional values", input: []any{float64(0), float64(-1), 2.5, float64(3)}, expected: []int{3}},
		{name: "accepts numeric strings", input: []any{"2", " 4 ", float64(1)}, expected: []int{1, 2, 4}},
		{name: "sorts and dedupes", input: []any{float64(9), float64(1), float64(9)}, expected: []int{1, 9}},
		{name: "non-numeric values are dropped", input: []any{"abc", true, nil, float64(6)}, expected: []int{6}},
		{name: "nothing valid means absent", input: []any{"abc", float64(-2)}, expected: nil},
		{name: "empty list means absent", input: []any{}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeWeeks(tt.input))
		})
	}
}
