package nats

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/location/mocks"
	"github.com/stretchr/testify/assert"
)

func TestHandleDriverLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockLocationUC(ctrl)
	handler := NewLocationHandler(mockUC, nil)

	mockUC.EXPECT().
		UpdateDriverLocation(gomock.Any(), "driver-1", models.Location{Latitude: -6.175392, Longitude: 106.827153}, gomock.Nil()).
		Return(nil)

	err := handler.HandleDriverLocation([]byte(`{"user_id":"driver-1","location":{"latitude":-6.175392,"longitude":106.827153}}`))

	assert.NoError(t, err)
}

func TestHandleObserverLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockLocationUC(ctrl)
	handler := NewLocationHandler(mockUC, nil)

	mockUC.EXPECT().
		UpdateObserverLocation(gomock.Any(), "rider-1", models.Location{Latitude: 1, Longitude: 2}).
		Return(models.ErrInvalidCoordinate)

	err := handler.HandleObserverLocation([]byte(`{"user_id":"rider-1","location":{"latitude":1,"longitude":2}}`))

	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}

func TestHandleDriverLocation_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewLocationHandler(mocks.NewMockLocationUC(ctrl), nil)

	err := handler.HandleDriverLocation([]byte(`not json`))

	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}
