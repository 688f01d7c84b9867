// Package server assembles the HTTP server: routes, middleware, the vision
// client, and the background week roll runner.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/studyzen/studyzen/internal/profile"
	"github.com/studyzen/studyzen/plugin/vision"
	"github.com/studyzen/studyzen/internal/observability"
	apiv1 "github.com/studyzen/studyzen/server/router/api/v1"
	"github.com/studyzen/studyzen/server/runner/weekroll"
	"github.com/studyzen/studyzen/store"
)

// Server is the StudyZen HTTP server.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

// NewServer creates the server and registers all routes.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(observability.RequestLogger())
	// The extension front end is served from a browser-extension origin, so
	// the API must answer cross-origin requests with credentials.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc:  func(origin string) (bool, error) { return true, nil },
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, "X-Extension-ID"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}

	var visionClient *vision.Client
	if profile.IsVisionEnabled() {
		cfg := vision.DefaultConfig()
		cfg.APIKey = profile.VisionAPIKey
		if profile.VisionBaseURL != "" {
			cfg.BaseURL = profile.VisionBaseURL
		}
		if profile.VisionModel != "" {
			cfg.Model = profile.VisionModel
		}
		visionClient = vision.NewClient(cfg)
		slog.Info("vision extraction enabled", "model", cfg.Model)
	} else {
		slog.Info("vision extraction disabled, POST /api/v1/extract will respond 503")
	}

	apiService := apiv1.NewAPIV1Service(profile, store, visionClient)
	apiService.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": profile.Version})
	})

	return s, nil
}

// Start launches the HTTP listener and the background runners. It returns
// once the listener is up or failed to bind; runners stop when ctx is
// canceled.
func (s *Server) Start(ctx context.Context) error {
	go weekroll.NewRunner(s.Store).Run(ctx)

	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	errCh := make(chan error, 1)
	go func() {
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		slog.Info("server started", "address", address, "mode", s.Profile.Mode)
		return nil
	}
}

// Shutdown gracefully stops the HTTP server and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shut down")
}
