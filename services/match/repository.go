package match

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/dispatch/services/match MatchRepo,RosterRepo

// MatchRepo defines access to the driver profiles used for scoring
type MatchRepo interface {
	GetDriverProfiles(ctx context.Context, driverIDs []string) (map[string]*models.DriverProfile, error)
	GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error)
	UpsertDriverProfile(ctx context.Context, profile *models.DriverProfile) error
}

// RosterRepo is the read side of the live driver roster
type RosterRepo interface {
	FindOnlineDrivers(ctx context.Context, bbox models.BoundingBox) ([]*models.DriverLocationRecord, error)
}
