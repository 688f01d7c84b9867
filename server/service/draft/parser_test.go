package draft

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Run("bare array of entries", func(t *testing.T) {
		raw := `[
			{"day": "MON", "start": "0930", "end": "1030", "course": "CS101", "location": "LT1"},
			{"day": "tue", "start": "1100", "end": "1200", "course": "MA201"}
		]`

		chunks := Parse(raw)
		require.Len(t, chunks, 2)
		assert.Equal(t, "MON", chunks[0].Day)
		assert.Equal(t, "0930", chunks[0].Start)
		assert.Equal(t, "1030", chunks[0].End)
		assert.Equal(t, "CS101", chunks[0].Course)
		assert.Equal(t, "LT1", chunks[0].Location)
		assert.Nil(t, chunks[0].Weeks)
		assert.Equal(t, "TUE", chunks[1].Day)
	})

	t.Run("object with schedule field", func(t *testing.T) {
		raw := `{"schedule": [{"day": "WED", "start": "1400", "end": "1500", "course": "PH301"}]}`

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "WED", chunks[0].Day)
		assert.Equal(t, "PH301", chunks[0].Course)
	})

	t.Run("numeric time values are coerced", func(t *testing.T) {
		raw := `[{"day": "FRI", "start": 930, "end": 1030, "course": "CS101"}]`

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "0930", chunks[0].Start)
		assert.Equal(t, "1030", chunks[0].End)
	})

	t.Run("structured weeks win over notes annotations", func(t *testing.T) {
		raw := `[{"day": "MON", "start": "0900", "end": "1000", "course": "CS101", "weeks": [4, 2], "notes": "Wk 7-9"}]`

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, []int{2, 4}, chunks[0].Weeks)
	})

	t.Run("weeks fall back to notes then text", func(t *testing.T) {
		raw := `[
			{"day": "MON", "start": "0900", "end": "1000", "course": "CS101", "notes": "Wk 1-2"},
			{"day": "TUE", "start": "0900", "end": "1000", "course": "CS101", "text": "Lecture Wk 3"}
		]`

		chunks := Parse(raw)
		require.Len(t, chunks, 2)
		assert.Equal(t, []int{1, 2}, chunks[0].Weeks)
		assert.Equal(t, []int{3}, chunks[1].Weeks)
	})

	t.Run("invalid weeks values are dropped", func(t *testing.T) {
		raw := `[{"day": "MON", "start": "0900", "end": "1000", "course": "CS101", "weeks": [0, -1, 2.5, 3]}]`

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, []int{3}, chunks[0].Weeks)
	})

	t.Run("text derives from notes then type", func(t *testing.T) {
		raw := `[
			{"day": "MON", "start": "0900", "end": "1000", "course": "CS101", "type": "Lecture", "notes": " bring  laptop \n\n second line "},
			{"day": "TUE", "start": "0900", "end": "1000", "course": "CS101", "type": "Tutorial"}
		]`

		chunks := Parse(raw)
		require.Len(t, chunks, 2)
		assert.Equal(t, "bring  laptop\nsecond line", chunks[0].Notes)
		assert.Equal(t, chunks[0].Notes, chunks[0].Text)
		assert.Equal(t, "Lecture", chunks[0].Type)
		assert.Equal(t, "Tutorial", chunks[1].Text)
	})

	t.Run("entries without day or times are dropped", func(t *testing.T) {
		raw := `[
			{"day": "", "start": "0900", "end": "1000", "course": "CS101"},
			{"day": "SOMEDAY", "start": "0900", "end": "1000", "course": "CS101"},
			{"day": "MON", "start": "", "end": "1000", "course": "CS101"},
			{"day": "MON", "start": "0900", "end": "1000", "course": "", "text": ""},
			{"day": "MON", "start": "0900", "end": "1000", "course": "CS101"}
		]`

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "MON", chunks[0].Day)
	})

	t.Run("empty array parses to no chunks without tabular fallback", func(t *testing.T) {
		assert.Empty(t, Parse(`[]`))
		assert.Empty(t, Parse(`{"schedule": []}`))
	})
}

func TestParseTabular(t *testing.T) {
	t.Run("single column row", func(t *testing.T) {
		raw := "MON  TUE  WED  THU  FRI  SAT  SUN\n0900 to 1000  CS101 (Room A)"

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "MON", chunks[0].Day)
		assert.Equal(t, "0900", chunks[0].Start)
		assert.Equal(t, "1000", chunks[0].End)
		assert.Equal(t, "CS101", chunks[0].Course)
		assert.Equal(t, "Room A", chunks[0].Location)
		assert.Equal(t, "CS101 (Room A)", chunks[0].Text)
	})

	t.Run("columns zip against day order", func(t *testing.T) {
		raw := "MON  TUE\n930 to 1030  CS101 (LT1)  MA201 (LT2) Wk 1-2"

		chunks := Parse(raw)
		require.Len(t, chunks, 2)
		assert.Equal(t, "MON", chunks[0].Day)
		assert.Equal(t, "0930", chunks[0].Start)
		assert.Equal(t, "CS101", chunks[0].Course)
		assert.Equal(t, "TUE", chunks[1].Day)
		assert.Equal(t, "MA201", chunks[1].Course)
		assert.Equal(t, []int{1, 2}, chunks[1].Weeks)
	})

	t.Run("row without content is dropped", func(t *testing.T) {
		raw := "MON  TUE\n0900 to 1000\n1100 to 1200  CS101"

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "1100", chunks[0].Start)
	})

	t.Run("footer lines below the grid are skipped", func(t *testing.T) {
		raw := "MON  TUE\n0900 to 1000  CS101\nAcademic Year 2025 0900 to 1000  XX999"

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "CS101", chunks[0].Course)
	})

	t.Run("no header line yields nothing", func(t *testing.T) {
		assert.Empty(t, Parse("0900 to 1000  CS101"))
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, Parse(""))
		assert.Empty(t, Parse("   \n  "))
	})

	t.Run("malformed JSON falls back to tabular", func(t *testing.T) {
		raw := "{not json}\nMON  TUE\n0900 to 1000  CS101"

		chunks := Parse(raw)
		require.Len(t, chunks, 1)
		assert.Equal(t, "CS101", chunks[0].Course)
	})
}

func TestParserDayOrder(t *testing.T) {
	p := NewParser([]string{"SAT", "SUN"})
	chunks := p.Parse("SAT  SUN\n0900 to 1000  CS101  MA201")
	require.Len(t, chunks, 2)
	assert.Equal(t, "SAT", chunks[0].Day)
	assert.Equal(t, "SUN", chunks[1].Day)

	assert.Equal(t, DefaultDayOrder, NewParser(nil).DayOrder())
}

func TestParseRoundTrip(t *testing.T) {
	// Parsing the JSON serialization of a parse result reproduces it.
	raw := `[{"day": "MON", "start": "0930", "end": "1030", "course": "CS101", "location": "LT1", "type": "Lecture", "weeks": [1, 2]}]`
	first := Parse(raw)
	require.Len(t, first, 1)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	assert.Equal(t, first, Parse(string(encoded)))
}
