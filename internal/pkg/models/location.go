package models

import (
	"math"
	"time"
)

// Location represents a geographical coordinate in degrees
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Validate rejects coordinates outside the WGS84 range
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return ErrInvalidCoordinate
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return ErrInvalidCoordinate
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// BoundingBox is a lat/lng rectangle. MinLng > MaxLng means the box
// crosses the antimeridian.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// CrossesAntimeridian reports whether the box wraps around longitude 180
func (b BoundingBox) CrossesAntimeridian() bool {
	return b.MinLng > b.MaxLng
}

// Contains reports whether the location lies inside the box (edges included)
func (b BoundingBox) Contains(l Location) bool {
	if l.Latitude < b.MinLat || l.Latitude > b.MaxLat {
		return false
	}
	if b.CrossesAntimeridian() {
		return l.Longitude >= b.MinLng || l.Longitude <= b.MaxLng
	}
	return l.Longitude >= b.MinLng && l.Longitude <= b.MaxLng
}

// Center returns the midpoint of the box, honouring antimeridian wrap
func (b BoundingBox) Center() Location {
	lat := (b.MinLat + b.MaxLat) / 2
	if !b.CrossesAntimeridian() {
		return Location{Latitude: lat, Longitude: (b.MinLng + b.MaxLng) / 2}
	}
	lng := (b.MinLng + b.MaxLng + 360) / 2
	if lng > 180 {
		lng -= 360
	}
	return Location{Latitude: lat, Longitude: lng}
}

// DriverAvailability is the roster state of a driver
type DriverAvailability string

const (
	DriverOnline  DriverAvailability = "ONLINE"
	DriverBusy    DriverAvailability = "BUSY"
	DriverOffline DriverAvailability = "OFFLINE"
)

// DriverLocationRecord is the latest known position of an online driver
type DriverLocationRecord struct {
	DriverID  string    `json:"driver_id"`
	Location  Location  `json:"location"`
	Heading   *float64  `json:"heading,omitempty"`
	Tile      string    `json:"tile"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ObserverWatch is the tile a rider or trip observer is subscribed to
type ObserverWatch struct {
	ObserverID string    `json:"observer_id"`
	Location   Location  `json:"location"`
	Tile       string    `json:"tile"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DriverPosition is the payload pushed to observers near a driver
type DriverPosition struct {
	DriverID  string    `json:"driver_id"`
	Location  Location  `json:"location"`
	Heading   *float64  `json:"heading,omitempty"`
	Tile      string    `json:"tile"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationEvent is the inbound shape of driver and observer location events
type LocationEvent struct {
	UserID   string   `json:"user_id"`
	Location Location `json:"location"`
	Heading  *float64 `json:"heading,omitempty"`
}
