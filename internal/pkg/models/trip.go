package models

import (
	"database/sql"
	"time"
)

// TripStatus represents the current status of a trip
type TripStatus string

const (
	TripStatusRequested  TripStatus = "REQUESTED"
	TripStatusAccepted   TripStatus = "ACCEPTED"
	TripStatusArrived    TripStatus = "ARRIVED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are possible
func (s TripStatus) Terminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// Engaged reports whether the assigned driver is still tied to the trip
func (s TripStatus) Engaged() bool {
	return s == TripStatusAccepted || s == TripStatusArrived || s == TripStatusInProgress
}

// Trip represents a ride from request to a terminal state
type Trip struct {
	ID           string      `json:"id"`
	RiderID      string      `json:"rider_id"`
	DriverID     *string     `json:"driver_id,omitempty"`
	Pickup       Location    `json:"pickup"`
	Drop         Location    `json:"drop"`
	ServiceType  ServiceType `json:"service_type"`
	Fare         float64     `json:"fare"`
	Status       TripStatus  `json:"status"`
	CancelReason string      `json:"cancel_reason,omitempty"`
	RequestedAt  time.Time   `json:"requested_at"`
	AcceptedAt   *time.Time  `json:"accepted_at,omitempty"`
	ArrivedAt    *time.Time  `json:"arrived_at,omitempty"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AssignedDriver returns the driver ID or an empty string
func (t *Trip) AssignedDriver() string {
	if t == nil || t.DriverID == nil {
		return ""
	}
	return *t.DriverID
}

// CancelResult is what a cancel changed. From is the status the cancel
// replaced.
type CancelResult struct {
	Trip      *Trip      `json:"trip"`
	From      TripStatus `json:"from"`
	Cancelled []*Offer   `json:"cancelled"`
}

// TripRequest is the rider-facing trip intake payload
type TripRequest struct {
	RiderID     string      `json:"rider_id"`
	Pickup      Location    `json:"pickup"`
	Drop        Location    `json:"drop"`
	Fare        float64     `json:"fare"`
	ServiceType ServiceType `json:"service_type"`
}

// TripDTO flattens a Trip for database scans
type TripDTO struct {
	ID           string         `db:"id"`
	RiderID      string         `db:"rider_id"`
	DriverID     sql.NullString `db:"driver_id"`
	PickupLat    float64        `db:"pickup_lat"`
	PickupLng    float64        `db:"pickup_lng"`
	DropLat      float64        `db:"drop_lat"`
	DropLng      float64        `db:"drop_lng"`
	ServiceType  string         `db:"service_type"`
	Fare         float64        `db:"fare"`
	Status       string         `db:"status"`
	CancelReason sql.NullString `db:"cancel_reason"`
	RequestedAt  time.Time      `db:"requested_at"`
	AcceptedAt   sql.NullTime   `db:"accepted_at"`
	ArrivedAt    sql.NullTime   `db:"arrived_at"`
	StartedAt    sql.NullTime   `db:"started_at"`
	CompletedAt  sql.NullTime   `db:"completed_at"`
	CancelledAt  sql.NullTime   `db:"cancelled_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// ToTrip converts the row into a Trip
func (d *TripDTO) ToTrip() *Trip {
	trip := &Trip{
		ID:           d.ID,
		RiderID:      d.RiderID,
		Pickup:       Location{Latitude: d.PickupLat, Longitude: d.PickupLng},
		Drop:         Location{Latitude: d.DropLat, Longitude: d.DropLng},
		ServiceType:  ServiceType(d.ServiceType),
		Fare:         d.Fare,
		Status:       TripStatus(d.Status),
		CancelReason: d.CancelReason.String,
		RequestedAt:  d.RequestedAt,
		AcceptedAt:   nullTime(d.AcceptedAt),
		ArrivedAt:    nullTime(d.ArrivedAt),
		StartedAt:    nullTime(d.StartedAt),
		CompletedAt:  nullTime(d.CompletedAt),
		CancelledAt:  nullTime(d.CancelledAt),
		UpdatedAt:    d.UpdatedAt,
	}
	if d.DriverID.Valid {
		driverID := d.DriverID.String
		trip.DriverID = &driverID
	}
	return trip
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// TripCompleted is published once a trip is completed and settled
type TripCompleted struct {
	Trip    *Trip          `json:"trip"`
	Entries []*LedgerEntry `json:"entries"`
}
