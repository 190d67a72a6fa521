package match

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/dispatch/services/match MatchUC

// MatchUC defines the interface for candidate search and driver profiles
type MatchUC interface {
	FindCandidates(ctx context.Context, query models.CandidateQuery) ([]*models.DriverCandidateScore, error)
	GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error)
	UpsertDriverProfile(ctx context.Context, profile *models.DriverProfile) error
}
