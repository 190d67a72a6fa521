package models

import "time"

// DispatchStatus is the final result of dispatching a trip
type DispatchStatus string

const (
	DispatchAssigned     DispatchStatus = "ASSIGNED"
	DispatchNoCandidates DispatchStatus = "NO_CANDIDATES"
	DispatchNoDriver     DispatchStatus = "NO_DRIVER"
	DispatchCancelled    DispatchStatus = "CANCELLED"
)

// DispatchParams controls a single dispatch round
type DispatchParams struct {
	TopN    int
	Timeout time.Duration
	Round   int
}

// RoundResult summarises one dispatch round
type RoundResult struct {
	TripID    string     `json:"trip_id"`
	Round     int        `json:"round"`
	Offers    []*Offer   `json:"offers"`
	Delivered int        `json:"delivered"`
	Expired   int        `json:"expired"`
	DriverID  string     `json:"driver_id,omitempty"`
	OfferID   string     `json:"offer_id,omitempty"`
	Status    TripStatus `json:"status"`
}

// Assigned reports whether the round ended with a driver
func (r *RoundResult) Assigned() bool {
	return r != nil && r.DriverID != ""
}

// DispatchOutcome is the typed no-capacity/assignment result of a trip
type DispatchOutcome struct {
	TripID   string         `json:"trip_id"`
	Status   DispatchStatus `json:"status"`
	DriverID string         `json:"driver_id,omitempty"`
	OfferID  string         `json:"offer_id,omitempty"`
	Rounds   int            `json:"rounds"`
}

// TripStatusEvent is pushed to parties and published on the bus on every transition
type TripStatusEvent struct {
	TripID   string     `json:"trip_id"`
	RiderID  string     `json:"rider_id"`
	DriverID string     `json:"driver_id,omitempty"`
	From     TripStatus `json:"from"`
	Status   TripStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	At       time.Time  `json:"at"`
}
