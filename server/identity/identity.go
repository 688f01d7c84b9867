// Package identity resolves the per-install extension ID from a request.
// Identity is best-effort: an ordered list of lookup strategies is tried and
// the first one producing a valid UUID wins; none is authoritative. When every
// strategy misses, a fresh UUID v4 is issued and handed back to the client via
// cookie so later requests stay stable.
package identity

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderName is the request header carrying the extension ID.
	HeaderName = "X-Extension-ID"
	// QueryParam is the query parameter carrying the extension ID.
	QueryParam = "extensionId"
	// CookieName is the fallback cookie carrying the extension ID.
	CookieName = "studyzen_extension_id"

	cookieMaxAge = 365 * 24 * time.Hour
)

// Strategy attempts one source of the extension identity. ok is false when
// the source has no candidate at all; candidates still go through UUID
// validation before winning.
type Strategy func(c echo.Context) (id string, ok bool)

// Resolver resolves the extension ID through an ordered strategy chain.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a resolver with the given strategies in priority order.
// Passing none installs the default header, query parameter, cookie chain.
func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{strategies: strategies}
}

// DefaultStrategies returns the shipped lookup chain.
func DefaultStrategies() []Strategy {
	return []Strategy{FromHeader, FromQuery, FromCookie}
}

// FromHeader reads the extension ID from the X-Extension-ID header.
func FromHeader(c echo.Context) (string, bool) {
	id := c.Request().Header.Get(HeaderName)
	return id, id != ""
}

// FromQuery reads the extension ID from the extensionId query parameter.
func FromQuery(c echo.Context) (string, bool) {
	id := c.QueryParam(QueryParam)
	return id, id != ""
}

// FromCookie reads the extension ID from the identity cookie.
func FromCookie(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Resolve returns the first strategy result that is a valid UUID.
func (r *Resolver) Resolve(c echo.Context) (string, bool) {
	for _, strategy := range r.strategies {
		if id, ok := strategy(c); ok && IsValid(id) {
			return id, true
		}
	}
	return "", false
}

// ResolveOrNew resolves the extension ID or issues a fresh UUID v4, setting
// the identity cookie so subsequent requests resolve to the same install.
func (r *Resolver) ResolveOrNew(c echo.Context) string {
	if id, ok := r.Resolve(c); ok {
		return id
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// IsValid reports whether id is a well-formed UUID. Any RFC 4122 version is
// accepted on lookup; only generation is pinned to v4.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}
