package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/match/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHandler_FindCandidates(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(*mocks.MockMatchUC)
		expectedStatus int
	}{
		{
			name:  "Success",
			query: "lat=34.526&lng=69.1777&service_type=car&radius_km=5&limit=3",
			mockSetup: func(mockUC *mocks.MockMatchUC) {
				mockUC.EXPECT().FindCandidates(gomock.Any(), models.CandidateQuery{
					Pickup:      models.Location{Latitude: 34.526, Longitude: 69.1777},
					ServiceType: models.ServiceCar,
					RadiusKm:    5,
					Limit:       3,
				}).Return([]*models.DriverCandidateScore{{DriverID: "driver-1", Score: 0.9}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing latitude",
			query:          "lng=69.1777",
			mockSetup:      func(*mocks.MockMatchUC) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad limit",
			query:          "lat=1&lng=2&limit=many",
			mockSetup:      func(*mocks.MockMatchUC) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Invalid coordinate",
			query: "lat=95&lng=2",
			mockSetup: func(mockUC *mocks.MockMatchUC) {
				mockUC.EXPECT().FindCandidates(gomock.Any(), gomock.Any()).Return(nil, models.ErrInvalidCoordinate)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Roster unavailable",
			query: "lat=1&lng=2",
			mockSetup: func(mockUC *mocks.MockMatchUC) {
				mockUC.EXPECT().FindCandidates(gomock.Any(), gomock.Any()).Return(nil, errors.New("roster: circuit breaker is open"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockMatchUC(ctrl)
			tt.mockSetup(mockUC)
			handler := NewMatchHandler(mockUC)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/match/candidates?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// Act
			err := handler.FindCandidates(c)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestMatchHandler_UpsertDriverProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockMatchUC(ctrl)
	handler := NewMatchHandler(mockUC)

	mockUC.EXPECT().UpsertDriverProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, profile *models.DriverProfile) error {
			assert.Equal(t, "driver-7", profile.DriverID)
			assert.Equal(t, 4.6, profile.Rating)
			assert.Equal(t, models.ServicePremium, profile.ServiceType)
			return nil
		})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/drivers/driver-7/profile",
		strings.NewReader(`{"rating":4.6,"service_type":"premium"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("driver-7")

	require.NoError(t, handler.UpsertDriverProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestMatchHandler_GetDriverProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockMatchUC(ctrl)
	mockUC.EXPECT().GetDriverProfile(gomock.Any(), "ghost").Return(nil, models.ErrDriverNotFound)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	require.NoError(t, NewMatchHandler(mockUC).GetDriverProfile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
