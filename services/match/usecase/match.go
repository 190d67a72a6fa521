package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/dispatch/internal/pkg/circuitbreaker"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/match"
)

// MatchUC implements match.MatchUC
type MatchUC struct {
	cfg     models.MatchConfig
	repo    match.MatchRepo
	roster  match.RosterRepo
	breaker *circuitbreaker.CircuitBreaker
}

// NewMatchUC creates a new match use case. A nil breaker gets the default
// roster breaker.
func NewMatchUC(cfg *models.Config, repo match.MatchRepo, roster match.RosterRepo, breaker *circuitbreaker.CircuitBreaker) *MatchUC {
	if breaker == nil {
		breaker = circuitbreaker.New(circuitbreaker.DefaultConfig("roster"), nil)
	}
	return &MatchUC{
		cfg:     cfg.Match,
		repo:    repo,
		roster:  roster,
		breaker: breaker,
	}
}

// FindCandidates returns online drivers within the query radius of the
// pickup, scored and ranked. No candidates is an empty slice and a nil
// error; a roster failure is returned as an error.
func (uc *MatchUC) FindCandidates(ctx context.Context, query models.CandidateQuery) ([]*models.DriverCandidateScore, error) {
	if err := query.Pickup.Validate(); err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	if query.RadiusKm < 0 || query.Limit < 0 {
		return nil, fmt.Errorf("%w: radius and limit must not be negative", models.ErrInvalidRequest)
	}
	if err := uc.cfg.Scoring.Validate(); err != nil {
		return nil, err
	}

	radiusKm := query.RadiusKm
	if radiusKm == 0 {
		radiusKm = uc.cfg.SearchRadiusKm
	}

	start := time.Now()
	defer metrics.ObserveSince(metrics.MatchLatency, start)

	bbox := utils.BoundingBoxAround(query.Pickup, radiusKm)
	records, err := circuitbreaker.Call(ctx, uc.breaker, func(ctx context.Context) ([]*models.DriverLocationRecord, error) {
		return uc.roster.FindOnlineDrivers(ctx, bbox)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query driver roster: %w", err)
	}

	excluded := make(map[string]struct{}, len(query.Exclude))
	for _, id := range query.Exclude {
		excluded[id] = struct{}{}
	}

	inputs := make([]ScoreInput, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if _, skip := excluded[record.DriverID]; skip {
			continue
		}
		distance := utils.HaversineKm(query.Pickup, record.Location)
		if distance > radiusKm {
			continue
		}
		inputs = append(inputs, ScoreInput{
			DriverID:   record.DriverID,
			Location:   record.Location,
			DistanceKm: distance,
		})
		ids = append(ids, record.DriverID)
	}

	if len(inputs) == 0 {
		metrics.CandidatesFound.Observe(0)
		logger.DebugCtx(ctx, "No candidates in radius",
			logger.Float64("radius_km", radiusKm),
			logger.Int("roster_hits", len(records)))
		return []*models.DriverCandidateScore{}, nil
	}

	profiles, err := uc.repo.GetDriverProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load driver profiles: %w", err)
	}

	candidates := make([]*models.DriverCandidateScore, 0, len(inputs))
	for _, in := range inputs {
		profile := profiles[in.DriverID]
		in.AcceptanceRate = profile.AcceptanceRate(uc.cfg.DefaultAcceptanceRate)
		if profile != nil {
			in.Rating = profile.Rating
			in.ServiceType = profile.ServiceType
		}
		candidates = append(candidates, ScoreCandidate(in, query.ServiceType, radiusKm, uc.cfg.AvgSpeedKmh, uc.cfg.Scoring))
	}
	RankCandidates(candidates)

	if query.Limit > 0 && len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}
	metrics.CandidatesFound.Observe(float64(len(candidates)))

	logger.DebugCtx(ctx, "Candidates ranked",
		logger.Int("count", len(candidates)),
		logger.String("top", candidates[0].DriverID),
		logger.Float64("top_score", candidates[0].Score))
	return candidates, nil
}

// GetDriverProfile returns a driver's matching attributes
func (uc *MatchUC) GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	if driverID == "" {
		return nil, fmt.Errorf("%w: driver_id is required", models.ErrInvalidRequest)
	}
	return uc.repo.GetDriverProfile(ctx, driverID)
}

// UpsertDriverProfile sets rating and service tier of a driver
func (uc *MatchUC) UpsertDriverProfile(ctx context.Context, profile *models.DriverProfile) error {
	if profile == nil || profile.DriverID == "" {
		return fmt.Errorf("%w: driver_id is required", models.ErrInvalidRequest)
	}
	if profile.Rating < 0 || profile.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between 0 and %.0f", models.ErrInvalidRequest, MaxRating)
	}
	if profile.ServiceType == "" {
		profile.ServiceType = models.ServiceBike
	}
	profile.UpdatedAt = models.Now()

	if err := uc.repo.UpsertDriverProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to upsert driver profile: %w", err)
	}
	logger.InfoCtx(ctx, "Driver profile updated",
		logger.DriverID(profile.DriverID),
		logger.Float64("rating", profile.Rating),
		logger.String("service_type", string(profile.ServiceType)))
	return nil
}
