package draft

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	weekTokenRe = regexp.MustCompile(`(?i)Wk\s*([0-9,\-\s]+)`)
	weekJunkRe  = regexp.MustCompile(`[^\d,\-\s]`)
	weekSplitRe = regexp.MustCompile(`[\s,]+`)
)

// ExtractWeeks scans free text for "Wk 1-4, 6" style annotations and returns
// the sorted, deduplicated positive week numbers they denote. A nil result
// means no week restriction was found, which callers treat as "applies every
// week" - it is distinct from an empty set and is never returned as one.
func ExtractWeeks(text string) []int {
	seen := map[int]struct{}{}

	for _, match := range weekTokenRe.FindAllStringSubmatch(text, -1) {
		segment := weekJunkRe.ReplaceAllString(match[1], " ")
		for _, token := range weekSplitRe.Split(segment, -1) {
			if token == "" {
				continue
			}
			if strings.Contains(token, "-") {
				parts := strings.Split(token, "-")
				start, startErr := strconv.Atoi(parts[0])
				end, endErr := strconv.Atoi(parts[1])
				// Malformed ranges are skipped, not errors.
				if startErr != nil || endErr != nil || end < start {
					continue
				}
				for w := start; w <= end; w++ {
					seen[w] = struct{}{}
				}
			} else if w, err := strconv.Atoi(token); err == nil {
				seen[w] = struct{}{}
			}
		}
	}

	return sortedPositiveWeeks(seen)
}

// NormalizeWeeks coerces an already-structured list of week-like values (as
// decoded from JSON) into the same sorted, deduplicated positive-integer form.
// Non-integer and non-positive values are dropped; nil signals absence.
func NormalizeWeeks(values []any) []int {
	seen := map[int]struct{}{}
	for _, value := range values {
		if w, ok := toWeekNumber(value); ok {
			seen[w] = struct{}{}
		}
	}
	return sortedPositiveWeeks(seen)
}

func toWeekNumber(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		w, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return w, true
	default:
		return 0, false
	}
}

func sortedPositiveWeeks(seen map[int]struct{}) []int {
	weeks := make([]int, 0, len(seen))
	for w := range seen {
		if w > 0 {
			weeks = append(weeks, w)
		}
	}
	if len(weeks) == 0 {
		return nil
	}
	sort.Ints(weeks)
	return weeks
}
