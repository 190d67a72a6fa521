package models

import (
	"math"
	"time"
)

// ServiceType is the vehicle tier a rider asks for or a driver offers
type ServiceType string

const (
	ServiceBike    ServiceType = "bike"
	ServiceCar     ServiceType = "car"
	ServicePremium ServiceType = "premium"
)

// DriverProfile holds the matching attributes of a driver
type DriverProfile struct {
	DriverID       string      `json:"driver_id" db:"id"`
	Rating         float64     `json:"rating" db:"rating"`
	ServiceType    ServiceType `json:"service_type" db:"service_type"`
	OffersReceived int         `json:"offers_received" db:"offers_received"`
	OffersAccepted int         `json:"offers_accepted" db:"offers_accepted"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// AcceptanceRate is accepted offers over offers received, or defaultRate
// when the driver has no history.
func (p *DriverProfile) AcceptanceRate(defaultRate float64) float64 {
	if p == nil || p.OffersReceived <= 0 {
		return defaultRate
	}
	rate := float64(p.OffersAccepted) / float64(p.OffersReceived)
	return math.Min(1, math.Max(0, rate))
}

// DriverCandidateScore is a scored driver for one dispatch attempt. Never cached.
type DriverCandidateScore struct {
	DriverID       string      `json:"driver_id"`
	Location       Location    `json:"location"`
	DistanceKm     float64     `json:"distance_km"`
	ETAMinutes     float64     `json:"eta_minutes"`
	Rating         float64     `json:"rating"`
	AcceptanceRate float64     `json:"acceptance_rate"`
	ServiceType    ServiceType `json:"service_type"`
	ServiceMatch   bool        `json:"service_match"`
	Score          float64     `json:"score"`
}

// ScoringConfig are the operator-tunable coefficients of candidate scoring
type ScoringConfig struct {
	ETAWeight        float64 `json:"eta_weight"`
	RatingWeight     float64 `json:"rating_weight"`
	AcceptanceWeight float64 `json:"acceptance_weight"`
	ServiceBonus     float64 `json:"service_bonus"`
}

// ScoringWeightTotal is the fixed sum the three weights must add up to
const ScoringWeightTotal = 1.0

// Validate checks that weights are non-negative and sum to ScoringWeightTotal
func (c ScoringConfig) Validate() error {
	if c.ETAWeight < 0 || c.RatingWeight < 0 || c.AcceptanceWeight < 0 || c.ServiceBonus < 0 {
		return ErrInvalidScoringConfig
	}
	sum := c.ETAWeight + c.RatingWeight + c.AcceptanceWeight
	if math.Abs(sum-ScoringWeightTotal) > 1e-9 {
		return ErrInvalidScoringConfig
	}
	return nil
}

// CandidateQuery parameterises a candidate search
type CandidateQuery struct {
	Pickup      Location    `json:"pickup"`
	ServiceType ServiceType `json:"service_type"`
	RadiusKm    float64     `json:"radius_km"`
	Limit       int         `json:"limit"`
	Exclude     []string    `json:"exclude,omitempty"`
}
