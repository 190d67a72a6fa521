package models

import (
	"database/sql"
	"time"
)

// OfferStatus is the lifecycle state of a single driver offer
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "PENDING"
	OfferStatusSent      OfferStatus = "SENT"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusExpired   OfferStatus = "EXPIRED"
	OfferStatusCancelled OfferStatus = "CANCELLED"
)

// Open reports whether the offer can still be answered
func (s OfferStatus) Open() bool {
	return s == OfferStatusPending || s == OfferStatusSent
}

// OfferReason explains why an offer ended CANCELLED or EXPIRED
type OfferReason string

const (
	OfferReasonNone            OfferReason = ""
	OfferReasonDeliveryFailed  OfferReason = "delivery_failed"
	OfferReasonTripUnavailable OfferReason = "trip_unavailable"
	OfferReasonSiblingAccepted OfferReason = "sibling_accepted"
	OfferReasonTripCancelled   OfferReason = "trip_cancelled"
	OfferReasonExpired         OfferReason = "expired"
)

// OfferDecision is a driver's answer to an offer
type OfferDecision string

const (
	DecisionAccept OfferDecision = "ACCEPT"
	DecisionReject OfferDecision = "REJECT"
)

// Valid reports whether d is ACCEPT or REJECT
func (d OfferDecision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// Offer is one driver's invitation to accept one trip
type Offer struct {
	ID          string      `json:"id" db:"id"`
	TripID      string      `json:"trip_id" db:"trip_id"`
	DriverID    string      `json:"driver_id" db:"driver_id"`
	Round       int         `json:"round" db:"round"`
	Rank        int         `json:"rank" db:"rank"`
	Score       float64     `json:"score" db:"score"`
	Status      OfferStatus `json:"status" db:"status"`
	Reason      OfferReason `json:"reason,omitempty" db:"reason"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	SentAt      *time.Time  `json:"sent_at,omitempty" db:"sent_at"`
	RespondedAt *time.Time  `json:"responded_at,omitempty" db:"responded_at"`
	ExpiresAt   time.Time   `json:"expires_at" db:"expires_at"`
}

// OfferDTO flattens an Offer for database scans
type OfferDTO struct {
	ID          string         `db:"id"`
	TripID      string         `db:"trip_id"`
	DriverID    string         `db:"driver_id"`
	Round       int            `db:"round"`
	Rank        int            `db:"rank"`
	Score       float64        `db:"score"`
	Status      string         `db:"status"`
	Reason      sql.NullString `db:"reason"`
	CreatedAt   time.Time      `db:"created_at"`
	SentAt      sql.NullTime   `db:"sent_at"`
	RespondedAt sql.NullTime   `db:"responded_at"`
	ExpiresAt   time.Time      `db:"expires_at"`
}

// ToOffer converts the row into an Offer
func (d *OfferDTO) ToOffer() *Offer {
	return &Offer{
		ID:          d.ID,
		TripID:      d.TripID,
		DriverID:    d.DriverID,
		Round:       d.Round,
		Rank:        d.Rank,
		Score:       d.Score,
		Status:      OfferStatus(d.Status),
		Reason:      OfferReason(d.Reason.String),
		CreatedAt:   d.CreatedAt,
		SentAt:      nullTime(d.SentAt),
		RespondedAt: nullTime(d.RespondedAt),
		ExpiresAt:   d.ExpiresAt,
	}
}

// OfferPayload is what a driver receives when an offer is delivered
type OfferPayload struct {
	OfferID     string      `json:"offer_id"`
	TripID      string      `json:"trip_id"`
	Pickup      Location    `json:"pickup"`
	Drop        Location    `json:"drop"`
	Fare        float64     `json:"fare"`
	ServiceType ServiceType `json:"service_type"`
	DistanceKm  float64     `json:"distance_km"`
	ETAMinutes  float64     `json:"eta_minutes"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// OfferResponse is the inbound shape of an offer answer
type OfferResponse struct {
	OfferID  string        `json:"offer_id"`
	DriverID string        `json:"driver_id"`
	Decision OfferDecision `json:"decision"`
}

// OfferClosed tells a driver their offer is no longer actionable
type OfferClosed struct {
	OfferID string      `json:"offer_id"`
	TripID  string      `json:"trip_id"`
	Status  OfferStatus `json:"status"`
	Reason  OfferReason `json:"reason"`
	Message string      `json:"message"`
}

// AcceptResult is the outcome of a winning accept
type AcceptResult struct {
	Offer     *Offer   `json:"offer"`
	Trip      *Trip    `json:"trip"`
	Cancelled []*Offer `json:"cancelled"`
}
