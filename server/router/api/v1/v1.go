// Package v1 exposes the extension REST API: vision extraction, schedule
// parsing and persistence, week selection, and calendar export.
package v1

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyzen/studyzen/internal/profile"
	"github.com/studyzen/studyzen/plugin/vision"
	"github.com/studyzen/studyzen/server/identity"
	"github.com/studyzen/studyzen/server/middleware"
	"github.com/studyzen/studyzen/server/service/draft"
	"github.com/studyzen/studyzen/store"
)

// Store is the slice of the store layer the API handlers need.
type Store interface {
	UpsertSchedule(ctx context.Context, upsert *store.UpsertSchedule) (*store.Schedule, error)
	GetSchedule(ctx context.Context, find *store.FindSchedule) (*store.Schedule, error)
	DeleteSchedule(ctx context.Context, delete *store.DeleteSchedule) error
	UpsertWeekSelection(ctx context.Context, upsert *store.UpsertWeekSelection) (*store.WeekSelection, error)
	GetWeekSelection(ctx context.Context, find *store.FindWeekSelection) (*store.WeekSelection, error)
	DeleteWeekSelection(ctx context.Context, delete *store.DeleteWeekSelection) error
}

// APIV1Service wires the REST handlers for the extension API.
type APIV1Service struct {
	Profile  *profile.Profile
	Store    Store
	Vision   *vision.Client // nil when extraction is not configured
	Parser   *draft.Parser
	Identity *identity.Resolver

	extractLimiter *middleware.RateLimiter
	now            func() time.Time
}

// NewAPIV1Service creates the API service. visionClient may be nil when
// extraction is disabled; the extract endpoint then responds 503.
func NewAPIV1Service(profile *profile.Profile, store Store, visionClient *vision.Client) *APIV1Service {
	return &APIV1Service{
		Profile:  profile,
		Store:    store,
		Vision:   visionClient,
		Parser:   draft.NewParser(nil),
		Identity: identity.NewResolver(),

		// Vision calls are the expensive path; everything else is cheap.
		extractLimiter: middleware.NewRateLimiter(10*time.Second, 3),
		now:            time.Now,
	}
}

// RegisterRoutes registers the REST routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/extract", s.ExtractText, s.extractLimiter.Middleware(s.extractRateKey))

	g.POST("/schedule/parse", s.ParseSchedule)
	g.GET("/schedule", s.GetSchedule)
	g.POST("/schedule", s.PersistSchedule)
	g.DELETE("/schedule", s.DeleteSchedule)
	g.GET("/schedule/ics", s.ExportScheduleICS)

	g.GET("/week", s.GetWeek)
	g.PUT("/week", s.SetWeek)
}
