package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/studyzen/studyzen/server/service/draft"
	"github.com/studyzen/studyzen/server/service/week"
	"github.com/studyzen/studyzen/store"
)

// ParseScheduleRequest is the payload for the parse-only endpoint.
type ParseScheduleRequest struct {
	RawText string `json:"rawText"`
}

// ParseScheduleResponse carries the parsed class entries.
type ParseScheduleResponse struct {
	Schedule []draft.Chunk `json:"schedule"`
}

// PersistScheduleRequest is the write form of the schedule envelope. Schedule
// may be a JSON array or a JSON-encoded string containing one.
type PersistScheduleRequest struct {
	ExtensionID string          `json:"extensionId"`
	RawText     string          `json:"rawText"`
	Schedule    json.RawMessage `json:"schedule"`
}

// PersistedScheduleResponse is the read form of the schedule envelope. All
// fields are null for installs with nothing stored.
type PersistedScheduleResponse struct {
	Schedule  json.RawMessage `json:"schedule"`
	RawText   *string         `json:"rawText"`
	UpdatedAt *string         `json:"updatedAt"`
}

// ParseSchedule runs the draft parser over raw extracted text. Parsing never
// fails; unusable input yields an empty schedule.
// POST /api/v1/schedule/parse
func (s *APIV1Service) ParseSchedule(c echo.Context) error {
	var req ParseScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	chunks := s.Parser.Parse(req.RawText)
	if chunks == nil {
		chunks = []draft.Chunk{}
	}
	return c.JSON(http.StatusOK, ParseScheduleResponse{Schedule: chunks})
}

// GetSchedule returns the stored schedule envelope for an install. An unknown
// extension ID is the null envelope, not an error.
// GET /api/v1/schedule
func (s *APIV1Service) GetSchedule(c echo.Context) error {
	extensionID, ok := s.Identity.Resolve(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "extensionId query parameter is required"})
	}

	record, err := s.Store.GetSchedule(c.Request().Context(), &store.FindSchedule{ExtensionID: &extensionID})
	if err != nil {
		slog.Error("failed to fetch schedule", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to fetch schedule"})
	}
	if record == nil {
		return c.JSON(http.StatusOK, PersistedScheduleResponse{})
	}

	updatedAt := formatTimestamp(record.UpdatedTs)
	return c.JSON(http.StatusOK, PersistedScheduleResponse{
		Schedule:  json.RawMessage(record.Payload),
		RawText:   &record.RawText,
		UpdatedAt: &updatedAt,
	})
}

// PersistSchedule stores a freshly extracted schedule, replacing any prior
// one for the install. When the currently selected week has no entries in the
// new data but other weeks do, the selection is re-pinned to the earliest
// week present.
// POST /api/v1/schedule
func (s *APIV1Service) PersistSchedule(c echo.Context) error {
	var req PersistScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if !identityValid(req.ExtensionID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid extensionId is required"})
	}
	if strings.TrimSpace(req.RawText) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rawText is required"})
	}

	entries, err := decodeScheduleField(req.Schedule)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	payload, err := store.EncodePayload(entries)
	if err != nil {
		slog.Error("failed to encode schedule payload", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to persist schedule"})
	}

	ctx := c.Request().Context()
	if _, err := s.Store.UpsertSchedule(ctx, &store.UpsertSchedule{
		UID:         shortuuid.New(),
		ExtensionID: req.ExtensionID,
		RawText:     req.RawText,
		Payload:     payload,
	}); err != nil {
		slog.Error("failed to persist schedule", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to persist schedule"})
	}

	s.repinWeekSelection(c, req.ExtensionID, entries)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// DeleteSchedule removes all stored data for an install.
// DELETE /api/v1/schedule
func (s *APIV1Service) DeleteSchedule(c echo.Context) error {
	extensionID, ok := s.Identity.Resolve(c)
	if !ok {
		var req PersistScheduleRequest
		if err := c.Bind(&req); err == nil && identityValid(req.ExtensionID) {
			extensionID = req.ExtensionID
			ok = true
		}
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "extensionId is required for deletion"})
	}

	ctx := c.Request().Context()
	if err := s.Store.DeleteSchedule(ctx, &store.DeleteSchedule{ExtensionID: extensionID}); err != nil {
		slog.Error("failed to delete schedule", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to delete schedule"})
	}
	if err := s.Store.DeleteWeekSelection(ctx, &store.DeleteWeekSelection{ExtensionID: extensionID}); err != nil {
		slog.Error("failed to delete week selection", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// repinWeekSelection moves the stored selection to the earliest week present
// in a new schedule when the current week would otherwise show nothing.
// Failures here never fail the upload.
func (s *APIV1Service) repinWeekSelection(c echo.Context, extensionID string, entries []draft.Chunk) {
	ctx := c.Request().Context()
	now := s.now()

	selection, err := s.Store.GetWeekSelection(ctx, &store.FindWeekSelection{ExtensionID: &extensionID})
	if err != nil {
		slog.Error("failed to load week selection for repin", "error", err)
		return
	}

	state := week.Default(now)
	if selection != nil {
		state = week.Advance(week.FromParts(selection.Week, selection.SetAt(), now), now)
	}

	repinned := week.Repin(state, entries, now)
	if selection != nil && repinned.Week == selection.Week && repinned.SetAt.Unix() == selection.SetAtTs {
		return
	}

	if _, err := s.Store.UpsertWeekSelection(ctx, &store.UpsertWeekSelection{
		ExtensionID: extensionID,
		Week:        repinned.Week,
		SetAtTs:     repinned.SetAt.Unix(),
	}); err != nil {
		slog.Error("failed to repin week selection", "error", err)
	}
}

// decodeScheduleField accepts the schedule either as a JSON array or as a
// JSON string wrapping one, matching what older clients send.
func decodeScheduleField(raw json.RawMessage) ([]draft.Chunk, error) {
	if len(raw) == 0 {
		return nil, errSchedRequired
	}

	data := []byte(raw)
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, errSchedInvalid
		}
		data = []byte(inner)
	}

	var entries []draft.Chunk
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errSchedInvalid
	}
	if entries == nil {
		return nil, errSchedRequired
	}
	return entries, nil
}
