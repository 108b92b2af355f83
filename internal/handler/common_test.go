package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/service"
	"github.com/iliyamo/cinema-admin-console/internal/session"
)

func TestRedirectNotice(t *testing.T) {
	cases := []struct {
		target, notice, want string
	}{
		{"/rooms", "Room deleted.", "/rooms?notice=Room+deleted."},
		{"/rooms/2?date=2025-03-14", "Saved & done", "/rooms/2?date=2025-03-14&notice=Saved+%26+done"},
		{"/home", "", "/home"},
	}
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		require.NoError(t, redirectNotice(c, tc.target, tc.notice))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, tc.want, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/rooms/2", safeNext("/rooms/2"))
	assert.Equal(t, "/home", safeNext(""))
	assert.Equal(t, "/home", safeNext("https://example.com/"))
	assert.Equal(t, "/home", safeNext("//example.com"))
}

func TestBackendError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrRoomNotFound, http.StatusNotFound},
		{&repository.APIError{Status: http.StatusNotFound}, http.StatusNotFound},
		{fmt.Errorf("load: %w", session.ErrSessionNotFound), http.StatusGone},
		{service.ErrInvalidCapacity, http.StatusUnprocessableEntity},
		{&repository.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{errors.New("dial tcp: refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		var he *echo.HTTPError
		require.ErrorAs(t, backendError(tc.err, "room"), &he)
		assert.Equal(t, tc.code, he.Code, tc.err.Error())
		assert.ErrorIs(t, he.Internal, tc.err)
	}
}

func TestCheckMessages(t *testing.T) {
	errs := check(&customerInput{Name: "Al", Email: "no-at-sign", Phone: "12345", Seats: 0})
	assert.Equal(t, fieldErrors{
		"name":  "Name must be at least 3 characters.",
		"email": "Enter a valid email address.",
		"phone": "Phone must have exactly 10 digits.",
		"seats": "Number of seats must be greater than 0.",
	}, errs)

	assert.Nil(t, check(&customerInput{Name: "Ada", Email: "ada@example.com", Seats: 1}))
	assert.Equal(t, fieldErrors{"name": "Name is required."}, check(&roomInput{Capacity: 1, BreakTime: 1}))
}
