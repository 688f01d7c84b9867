// Package draft turns raw timetable text extracted by the vision model into
// structured class entries. Two input shapes are accepted: the JSON object the
// extraction prompt asks for, and the loosely tabular plain text older OCR
// backends produce. Parsing is pure and never fails; malformed input degrades
// to an empty or partial result.
package draft

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/studyzen/studyzen/server/timefmt"
)

var (
	timeRangeRe = regexp.MustCompile(`(?i)(\d{3,4})\s*to\s*(\d{3,4})`)
	courseRe    = regexp.MustCompile(`[A-Z]{2}\d{3,4}[A-Z]?`)
	locationRe  = regexp.MustCompile(`\((.*?)\)`)
	spaceRunRe  = regexp.MustCompile(`\s{2,}`)
	lineSplitRe = regexp.MustCompile(`\r?\n`)
	wsRunRe     = regexp.MustCompile(`\s+`)
)

// footerMarkers flag legend/footer lines below the timetable grid that must
// not be mistaken for data rows.
var footerMarkers = []string{"Academic Year", "Index", "Course", "Title", "Status"}

// Parser converts raw extracted text into an ordered sequence of chunks.
type Parser struct {
	dayOrder []string
}

// NewParser creates a parser that zips tabular columns against the given day
// order. Passing nil uses DefaultDayOrder. The order is injected rather than
// hard-coded so it can be kept in sync with the extraction prompt and tested
// independently.
func NewParser(dayOrder []string) *Parser {
	if len(dayOrder) == 0 {
		dayOrder = DefaultDayOrder
	}
	return &Parser{dayOrder: append([]string(nil), dayOrder...)}
}

// DayOrder returns the column order the parser assigns tabular columns to.
func (p *Parser) DayOrder() []string {
	return append([]string(nil), p.dayOrder...)
}

// Parse converts raw extracted text into chunks using the default day order.
func Parse(raw string) []Chunk {
	return NewParser(nil).Parse(raw)
}

// Parse tries the structured JSON shape first and falls back to tabular plain
// text. The result preserves input order: array order for JSON, row-then-day
// order for tabular text.
func (p *Parser) Parse(raw string) []Chunk {
	if raw == "" {
		return nil
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if chunks, ok := p.parseJSON(trimmed); ok {
			return chunks
		}
	}

	return p.parseTabular(raw)
}

// parseJSON accepts either a top-level array of entry objects or an object
// with a "schedule" array field. A decode failure or shape mismatch reports
// !ok so the caller can fall back to tabular parsing instead of erroring.
func (p *Parser) parseJSON(trimmed string) ([]Chunk, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, false
	}

	var schedule []any
	switch v := parsed.(type) {
	case []any:
		schedule = v
	case map[string]any:
		arr, ok := v["schedule"].([]any)
		if !ok {
			return nil, false
		}
		schedule = arr
	default:
		return nil, false
	}

	chunks := make([]Chunk, 0, len(schedule))
	for _, raw := range schedule {
		entry, _ := raw.(map[string]any)

		notes := normalizeMultiline(stringValue(entry["notes"]))
		classType := normalizeSingleLine(stringValue(entry["type"]))
		text := notes
		if text == "" {
			text = classType
		}

		weeks := normalizeWeekField(entry["weeks"])
		if weeks == nil {
			weeks = ExtractWeeks(stringValue(entry["notes"]))
		}
		if weeks == nil {
			weeks = ExtractWeeks(stringValue(entry["text"]))
		}

		chunk := Chunk{
			Day:      normalizeDay(stringValue(entry["day"])),
			Start:    timefmt.NormalizeTime(stringValue(entry["start"])),
			End:      timefmt.NormalizeTime(stringValue(entry["end"])),
			Course:   normalizeSingleLine(stringValue(entry["course"])),
			Location: normalizeSingleLine(stringValue(entry["location"])),
			Text:     text,
			Type:     classType,
			Notes:    notes,
			Weeks:    weeks,
		}

		if chunk.Day != "" && chunk.Start != "" && chunk.End != "" && chunk.hasContent() {
			chunks = append(chunks, chunk)
		}
	}

	return chunks, true
}

// parseTabular handles the legacy OCR layout: a day-code header line followed
// by rows of "<start> to <end>" plus per-day columns separated by runs of two
// or more spaces.
func (p *Parser) parseTabular(raw string) []Chunk {
	lines := lineSplitRe.Split(raw, -1)
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	headerIndex := -1
	for i, line := range lines {
		upper := strings.ToUpper(line)
		for code := range DayLabels {
			if strings.Contains(upper, code) {
				headerIndex = i
				break
			}
		}
		if headerIndex != -1 {
			break
		}
	}
	if headerIndex == -1 {
		return nil
	}

	var chunks []Chunk
	for _, line := range lines[headerIndex+1:] {
		if line == "" || hasFooterMarker(line) {
			continue
		}

		match := timeRangeRe.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}
		start := timefmt.NormalizeTime(line[match[2]:match[3]])
		end := timefmt.NormalizeTime(line[match[4]:match[5]])

		content := strings.TrimSpace(line[match[1]:])
		if content == "" {
			// Keep the grid aligned with a placeholder per day; the content
			// filter below drops them.
			for _, day := range p.dayOrder {
				chunks = append(chunks, Chunk{Day: day, Start: start, End: end})
			}
			continue
		}

		columns := splitColumns(content)
		for idx, day := range p.dayOrder {
			var column string
			if idx < len(columns) {
				column = columns[idx]
			}
			if column == "" {
				chunks = append(chunks, Chunk{Day: day, Start: start, End: end})
				continue
			}

			chunk := Chunk{
				Day:    day,
				Start:  start,
				End:    end,
				Course: courseRe.FindString(column),
				Text:   column,
				Weeks:  ExtractWeeks(column),
			}
			if loc := locationRe.FindStringSubmatch(column); loc != nil {
				chunk.Location = loc[1]
			}
			chunks = append(chunks, chunk)
		}
	}

	kept := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.hasContent() {
			kept = append(kept, chunk)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func hasFooterMarker(line string) bool {
	for _, marker := range footerMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func splitColumns(content string) []string {
	var columns []string
	for _, column := range spaceRunRe.Split(content, -1) {
		if column != "" {
			columns = append(columns, column)
		}
	}
	return columns
}

// stringValue renders a loosely-typed JSON value as a string. Numbers are
// accepted where the contract nominally expects strings (day and time fields
// often arrive as bare numbers from the model).
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func normalizeWeekField(value any) []int {
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	return NormalizeWeeks(arr)
}

func normalizeSingleLine(value string) string {
	return strings.TrimSpace(wsRunRe.ReplaceAllString(value, " "))
}

func normalizeMultiline(value string) string {
	var kept []string
	for _, line := range lineSplitRe.Split(value, -1) {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
