package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, configure func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestResolvePriority(t *testing.T) {
	headerID := uuid.NewString()
	queryID := uuid.NewString()
	cookieID := uuid.NewString()

	t.Run("header wins over query and cookie", func(t *testing.T) {
		c, _ := newContext(t, func(req *http.Request) {
			req.Header.Set(HeaderName, headerID)
			req.URL.RawQuery = QueryParam + "=" + queryID
			req.AddCookie(&http.Cookie{Name: CookieName, Value: cookieID})
		})

		id, ok := NewResolver().Resolve(c)
		require.True(t, ok)
		assert.Equal(t, headerID, id)
	})

	t.Run("query wins over cookie", func(t *testing.T) {
		c, _ := newContext(t, func(req *http.Request) {
			req.URL.RawQuery = QueryParam + "=" + queryID
			req.AddCookie(&http.Cookie{Name: CookieName, Value: cookieID})
		})

		id, ok := NewResolver().Resolve(c)
		require.True(t, ok)
		assert.Equal(t, queryID, id)
	})

	t.Run("cookie is the last resort", func(t *testing.T) {
		c, _ := newContext(t, func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: cookieID})
		})

		id, ok := NewResolver().Resolve(c)
		require.True(t, ok)
		assert.Equal(t, cookieID, id)
	})

	t.Run("invalid candidate falls through to the next strategy", func(t *testing.T) {
		c, _ := newContext(t, func(req *http.Request) {
			req.Header.Set(HeaderName, "not-a-uuid")
			req.URL.RawQuery = QueryParam + "=" + queryID
		})

		id, ok := NewResolver().Resolve(c)
		require.True(t, ok)
		assert.Equal(t, queryID, id)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		c, _ := newContext(t, nil)
		_, ok := NewResolver().Resolve(c)
		assert.False(t, ok)
	})
}

func TestResolveOrNew(t *testing.T) {
	t.Run("existing identity is reused without a cookie", func(t *testing.T) {
		id := uuid.NewString()
		c, rec := newContext(t, func(req *http.Request) {
			req.Header.Set(HeaderName, id)
		})

		assert.Equal(t, id, NewResolver().ResolveOrNew(c))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("fresh identity is issued and pinned via cookie", func(t *testing.T) {
		c, rec := newContext(t, nil)

		id := NewResolver().ResolveOrNew(c)
		require.True(t, IsValid(id))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(uuid.NewString()))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("not-a-uuid"))
	// URN form parses but is not the canonical 36-char shape.
	assert.False(t, IsValid("urn:uuid:"+uuid.NewString()))
}
