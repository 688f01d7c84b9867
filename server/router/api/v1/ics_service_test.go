package v1

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyzen/studyzen/server/service/week"
	"github.com/studyzen/studyzen/store"
)

func TestExportScheduleICS(t *testing.T) {
	extensionID := uuid.NewString()

	seed := func(mock *mockStore) {
		mock.schedules[extensionID] = &store.Schedule{
			ExtensionID: extensionID,
			UID:         "abc123",
			Payload: `[` +
				`{"day":"MON","start":"0900","end":"1000","course":"CS101","location":"Room A","text":"CS101","weeks":[2]},` +
				`{"day":"TUE","start":"1100","end":"1230","course":"MA201","text":"MA201","weeks":[3]},` +
				`{"day":"WED","start":"1400","end":"1500","course":"PH301","text":"PH301"}` +
				`]`,
		}
		mock.selections[extensionID] = &store.WeekSelection{
			ExtensionID: extensionID,
			Week:        2,
			SetAtTs:     week.StartOfWeek(testTime).Unix(),
		}
	}

	// anchorMonday is the concrete Monday the stored selection's week number
	// maps to, in the zone the handler reads the anchor back in.
	anchorMonday := func(mock *mockStore) time.Time {
		return week.StartOfWeek(mock.selections[extensionID].SetAt())
	}

	dtstart := func(day time.Time, hours, minutes int) string {
		at := time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location())
		return "DTSTART:" + at.UTC().Format("20060102T150405Z")
	}

	t.Run("requires identity", func(t *testing.T) {
		s := newTestService(newMockStore())
		rec := invoke(t, s, http.MethodGet, "/api/v1/schedule/ics", "", s.ExportScheduleICS)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no stored schedule is not found", func(t *testing.T) {
		s := newTestService(newMockStore())
		rec := invoke(t, s, http.MethodGet, "/api/v1/schedule/ics?extensionId="+extensionID, "", s.ExportScheduleICS)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("exports the selected week", func(t *testing.T) {
		mock := newMockStore()
		seed(mock)
		s := newTestService(mock)

		rec := invoke(t, s, http.MethodGet, "/api/v1/schedule/ics?extensionId="+extensionID, "", s.ExportScheduleICS)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get(echo.HeaderContentType))

		body := rec.Body.String()
		// Week 2: the week-2 entry and the unrestricted entry; not week 3.
		assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
		assert.Contains(t, body, "SUMMARY:CS101")
		assert.Contains(t, body, "SUMMARY:PH301")
		assert.NotContains(t, body, "MA201")
		assert.Contains(t, body, "LOCATION:Room A")
		assert.Contains(t, body, "abc123-wk2-")

		// The selection says week 2 and its anchor is this calendar week, so
		// the Monday class lands on the anchor Monday at 09:00.
		assert.Contains(t, body, dtstart(anchorMonday(mock), 9, 0))
	})

	t.Run("week query maps onto the anchor week", func(t *testing.T) {
		mock := newMockStore()
		seed(mock)
		s := newTestService(mock)

		rec := invoke(t, s, http.MethodGet, "/api/v1/schedule/ics?extensionId="+extensionID+"&week=3", "", s.ExportScheduleICS)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
		assert.Contains(t, body, "SUMMARY:MA201")
		assert.NotContains(t, body, "CS101")

		// Week 3 is one week past the anchored week 2, so the Tuesday class
		// lands on anchor Monday + 8 days at 11:00.
		tuesday := anchorMonday(mock).AddDate(0, 0, 8)
		assert.Contains(t, body, dtstart(tuesday, 11, 0))
	})

	t.Run("entries with unusable fields are skipped", func(t *testing.T) {
		mock := newMockStore()
		mock.schedules[extensionID] = &store.Schedule{
			ExtensionID: extensionID,
			UID:         "abc123",
			Payload: `[` +
				`{"day":"NOPE","start":"0900","end":"1000","course":"CS101","text":"CS101"},` +
				`{"day":"MON","start":"9","end":"1000","course":"CS101","text":"CS101"},` +
				`{"day":"MON","start":"0900","end":"1000","course":"PH301","text":"PH301"}` +
				`]`,
		}
		s := newTestService(mock)

		rec := invoke(t, s, http.MethodGet, "/api/v1/schedule/ics?extensionId="+extensionID, "", s.ExportScheduleICS)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, strings.Count(rec.Body.String(), "BEGIN:VEVENT"))
		assert.Contains(t, rec.Body.String(), "SUMMARY:PH301")
	})
}
