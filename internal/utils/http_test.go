package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	c, rec := newContext()

	err := SuccessResponse(c, http.StatusCreated, "Trip requested", map[string]interface{}{"id": "trip-1"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "Trip requested", response.Message)
	assert.Equal(t, map[string]interface{}{"id": "trip-1"}, response.Data)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name           string
		call           func(c echo.Context) error
		expectedStatus int
		expectedError  string
	}{
		{"bad request", func(c echo.Context) error { return BadRequestResponse(c, "invalid body") }, http.StatusBadRequest, "invalid body"},
		{"unauthorized default", func(c echo.Context) error { return UnauthorizedResponse(c, "") }, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden custom", func(c echo.Context) error { return ForbiddenResponse(c, "drivers only") }, http.StatusForbidden, "drivers only"},
		{"not found default", func(c echo.Context) error { return NotFoundResponse(c, "") }, http.StatusNotFound, "Resource not found"},
		{"internal default", func(c echo.Context) error { return InternalServerErrorResponse(c, "") }, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, tt.call(c))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, tt.expectedStatus, response.Code)
		})
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{models.ErrInvalidCoordinate, http.StatusBadRequest},
		{fmt.Errorf("pickup: %w", models.ErrInvalidRequest), http.StatusBadRequest},
		{models.ErrTripNotFound, http.StatusNotFound},
		{models.ErrDriverNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrInsufficientBalance, http.StatusPaymentRequired},
		{fmt.Errorf("offer o-1: %w", models.ErrTripUnavailable), http.StatusConflict},
		{models.ErrOfferNoLongerValid, http.StatusConflict},
		{models.ErrTripNotInProgress, http.StatusConflict},
		{models.ErrInvalidTransition, http.StatusConflict},
		{models.ErrDriverBusy, http.StatusConflict},
		{models.ErrDispatchInProgress, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFromError(tt.err))
		})
	}
}

func TestDomainErrorResponse(t *testing.T) {
	t.Run("mapped error is echoed", func(t *testing.T) {
		c, rec := newContext()

		require.NoError(t, DomainErrorResponse(c, models.ErrTripUnavailable))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "trip no longer available")
	})

	t.Run("unmapped error is hidden", func(t *testing.T) {
		c, rec := newContext()

		require.NoError(t, DomainErrorResponse(c, errors.New("pq: password authentication failed")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}
