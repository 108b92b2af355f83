package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-console/internal/config"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuth(t *testing.T) {
	e := echo.New()
	g := e.Group("", SessionAuth("secret"))
	g.GET("/home", func(c echo.Context) error { return c.String(http.StatusOK, Operator(c)) })
	g.POST("/rooms", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

	tok, err := utils.NewSessionToken("secret", "admin", 5)
	require.NoError(t, err)

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token})
		rec := serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", rec.Body.String())
	})
	t.Run("page without cookie redirects", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/home?x=1", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?next=%2Fhome%3Fx%3D1", rec.Header().Get("Location"))
	})
	t.Run("bad cookie on post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rooms", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "junk"})
		rec := serve(e, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOperatorDefault(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "guest", Operator(c))
}

func TestRequestLogger_CorrelationID(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())
	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = utils.CorrelationID(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "down")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(utils.HeaderCorrelationID, "given")
	rec := serve(e, req)
	assert.Equal(t, "given", seen)
	assert.Equal(t, "given", rec.Header().Get(utils.HeaderCorrelationID))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Regexp(t, "^gen_", seen)
	assert.Equal(t, seen, rec.Header().Get(utils.HeaderCorrelationID))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNewTokenBucket_DisabledPassesThrough(t *testing.T) {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodPost, "/login", nil)).Code)
	}
}

func TestRateHelpers(t *testing.T) {
	assert.Equal(t, "rl:ip:1.2.3.4:route:POST /login", rateKey("rl", "1.2.3.4", "POST", "/login"))
	assert.Equal(t, "rl:ip:unknown:route:POST /login", rateKey("rl", "", "POST", "/login"))
	assert.Equal(t, 2, retryAfterSeconds(1500))
	assert.Equal(t, 0, retryAfterSeconds(-10))
	assert.Equal(t, int64(7), asInt64("7"))
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(0), asInt64(nil))
}
