package usecase

import (
	"math"
	"sort"

	"github.com/piresc/dispatch/internal/pkg/models"
)

// MaxRating is the top of the driver rating scale
const MaxRating = 5.0

// ScoreInput is what the matcher knows about one driver before scoring
type ScoreInput struct {
	DriverID       string
	Location       models.Location
	DistanceKm     float64
	Rating         float64
	AcceptanceRate float64
	ServiceType    models.ServiceType
}

// ETAMinutes converts a straight-line distance into minutes at avgSpeedKmh.
// It is monotonic in distance, which is all scoring relies on.
func ETAMinutes(distanceKm, avgSpeedKmh float64) float64 {
	if avgSpeedKmh <= 0 {
		return 0
	}
	return distanceKm / avgSpeedKmh * 60
}

// ScoreCandidate computes the composite score of one driver.
// The ETA component is 1 at the pickup and 0 at the edge of radiusKm.
func ScoreCandidate(in ScoreInput, requested models.ServiceType, radiusKm, avgSpeedKmh float64, cfg models.ScoringConfig) *models.DriverCandidateScore {
	eta := ETAMinutes(in.DistanceKm, avgSpeedKmh)

	etaComponent := 1.0
	if radiusKm > 0 {
		etaComponent = clamp(1-in.DistanceKm/radiusKm, 0, 1)
	}
	ratingComponent := clamp(in.Rating, 0, MaxRating) / MaxRating
	acceptanceComponent := clamp(in.AcceptanceRate, 0, 1)

	score := cfg.ETAWeight*etaComponent +
		cfg.RatingWeight*ratingComponent +
		cfg.AcceptanceWeight*acceptanceComponent

	serviceMatch := requested != "" && in.ServiceType == requested
	if serviceMatch {
		score += cfg.ServiceBonus
	}

	return &models.DriverCandidateScore{
		DriverID:       in.DriverID,
		Location:       in.Location,
		DistanceKm:     in.DistanceKm,
		ETAMinutes:     eta,
		Rating:         in.Rating,
		AcceptanceRate: acceptanceComponent,
		ServiceType:    in.ServiceType,
		ServiceMatch:   serviceMatch,
		Score:          score,
	}
}

// RankCandidates orders candidates by score descending, then distance
// ascending, then driver ID so equal inputs always rank the same way
func RankCandidates(candidates []*models.DriverCandidateScore) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		return a.DriverID < b.DriverID
	})
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
