package draft

import "strings"

// Chunk is one parsed timetable slot: a class on a given day between two
// compact 24-hour times. It is the unit the dashboard renders and the shape
// persisted inside the schedule envelope, so the JSON field names are part of
// the external contract.
type Chunk struct {
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Course   string `json:"course"`
	Location string `json:"location"`
	Text     string `json:"text"`
	Type     string `json:"type,omitempty"`
	Notes    string `json:"notes,omitempty"`
	// Weeks restricts the entry to specific recurrence weeks. nil means the
	// entry applies every week.
	Weeks []int `json:"weeks,omitempty"`
}

// hasContent reports whether the chunk carries anything worth keeping.
// Structurally valid but content-empty slots (the placeholders emitted to keep
// tabular columns aligned) are discarded by the parser, never stored.
func (c Chunk) hasContent() bool {
	return strings.TrimSpace(c.Course) != "" ||
		strings.TrimSpace(c.Location) != "" ||
		strings.TrimSpace(c.Text) != ""
}
