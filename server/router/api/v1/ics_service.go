package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"github.com/studyzen/studyzen/server/service/draft"
	"github.com/studyzen/studyzen/server/service/week"
	"github.com/studyzen/studyzen/store"
)

// ExportScheduleICS renders the entries visible in one week as an iCalendar
// file, placing each class into the concrete calendar week the selection's
// anchor maps that week number to.
// GET /api/v1/schedule/ics
func (s *APIV1Service) ExportScheduleICS(c echo.Context) error {
	extensionID, ok := s.Identity.Resolve(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "extensionId query parameter is required"})
	}

	ctx := c.Request().Context()
	now := s.now()

	record, err := s.Store.GetSchedule(ctx, &store.FindSchedule{ExtensionID: &extensionID})
	if err != nil {
		slog.Error("failed to fetch schedule for export", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to fetch schedule"})
	}
	if record == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no schedule stored"})
	}

	entries, err := record.Entries()
	if err != nil {
		slog.Error("stored schedule payload is corrupt", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to read schedule"})
	}

	state := week.Default(now)
	if selection, err := s.Store.GetWeekSelection(ctx, &store.FindWeekSelection{ExtensionID: &extensionID}); err == nil && selection != nil {
		state = week.Advance(week.FromParts(selection.Week, selection.SetAt(), now), now)
	}

	weekNum := state.Week
	if v, err := strconv.Atoi(c.QueryParam("week")); err == nil && v > 0 {
		weekNum = v
	}

	// Map the requested week number onto a concrete Monday relative to the
	// selection's anchor week.
	monday := state.SetAt.AddDate(0, 0, (weekNum-state.Week)*7)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//StudyZen//Timetable//EN")

	for i, entry := range week.FilterByWeek(entries, weekNum) {
		dayIdx := draft.DayIndex(entry.Day)
		if dayIdx < 0 {
			continue
		}
		start, okStart := clockOn(monday.AddDate(0, 0, dayIdx), entry.Start)
		end, okEnd := clockOn(monday.AddDate(0, 0, dayIdx), entry.End)
		if !okStart || !okEnd {
			continue
		}

		summary := entry.Course
		if summary == "" {
			summary = entry.Text
		}

		event := cal.AddEvent(fmt.Sprintf("%s-wk%d-%d@studyzen", record.UID, weekNum, i))
		event.SetSummary(summary)
		event.SetStartAt(start)
		event.SetEndAt(end)
		if entry.Location != "" {
			event.SetLocation(entry.Location)
		}
		if entry.Notes != "" {
			event.SetDescription(entry.Notes)
		}
	}

	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

// clockOn combines a date with a 4-digit time-of-day string.
func clockOn(day time.Time, hhmm string) (time.Time, bool) {
	if len(hhmm) != 4 {
		return time.Time{}, false
	}
	hours, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return time.Time{}, false
	}
	minutes, err := strconv.Atoi(hhmm[2:])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location()), true
}
