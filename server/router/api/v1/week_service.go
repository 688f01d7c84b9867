package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyzen/studyzen/server/service/week"
	"github.com/studyzen/studyzen/store"
)

// SetWeekRequest pins the selected week for an install.
type SetWeekRequest struct {
	ExtensionID string `json:"extensionId"`
	Week        int    `json:"week"`
}

// GetWeek returns the install's current week selection, rolled forward over
// any week boundaries that passed since it was last stored. The stored row is
// refreshed whenever the advance changed it, so the persisted pair is never
// stale truth.
// GET /api/v1/week
func (s *APIV1Service) GetWeek(c echo.Context) error {
	extensionID := s.Identity.ResolveOrNew(c)
	ctx := c.Request().Context()
	now := s.now()

	selection, err := s.Store.GetWeekSelection(ctx, &store.FindWeekSelection{ExtensionID: &extensionID})
	if err != nil {
		slog.Error("failed to fetch week selection", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to fetch week selection"})
	}

	state := week.Default(now)
	if selection != nil {
		state = week.FromParts(selection.Week, selection.SetAt(), now)
	}
	advanced := week.Advance(state, now)

	if selection == nil || advanced.Week != selection.Week || advanced.SetAt.Unix() != selection.SetAtTs {
		if _, err := s.Store.UpsertWeekSelection(ctx, &store.UpsertWeekSelection{
			ExtensionID: extensionID,
			Week:        advanced.Week,
			SetAtTs:     advanced.SetAt.Unix(),
		}); err != nil {
			slog.Error("failed to persist advanced week selection", "error", err)
		}
	}

	return c.JSON(http.StatusOK, advanced)
}

// SetWeek pins the selection to an explicit week, re-anchoring the automatic
// advance baseline to the current week start. Non-positive weeks fall back
// to 1.
// PUT /api/v1/week
func (s *APIV1Service) SetWeek(c echo.Context) error {
	var req SetWeekRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	extensionID := req.ExtensionID
	if !identityValid(extensionID) {
		var ok bool
		extensionID, ok = s.Identity.Resolve(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid extensionId is required"})
		}
	}

	state := week.Set(req.Week, s.now())
	if _, err := s.Store.UpsertWeekSelection(c.Request().Context(), &store.UpsertWeekSelection{
		ExtensionID: extensionID,
		Week:        state.Week,
		SetAtTs:     state.SetAt.Unix(),
	}); err != nil {
		slog.Error("failed to persist week selection", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to persist week selection"})
	}

	return c.JSON(http.StatusOK, state)
}
