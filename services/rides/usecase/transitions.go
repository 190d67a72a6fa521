package usecase

import (
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/models"
)

// party is who may drive a transition
type party int

const (
	partyDriver party = iota
	partyRiderOrAdmin
)

type transition struct {
	from []models.TripStatus
	by   party
}

// transitions lists the moves made through the lifecycle API. REQUESTED to
// ACCEPTED happens only through an accepted offer.
var transitions = map[models.TripStatus]transition{
	models.TripStatusArrived:    {from: []models.TripStatus{models.TripStatusAccepted}, by: partyDriver},
	models.TripStatusInProgress: {from: []models.TripStatus{models.TripStatusArrived}, by: partyDriver},
	models.TripStatusCompleted:  {from: []models.TripStatus{models.TripStatusInProgress}, by: partyDriver},
	models.TripStatusCancelled: {
		from: []models.TripStatus{models.TripStatusRequested, models.TripStatusAccepted, models.TripStatusArrived},
		by:   partyRiderOrAdmin,
	},
}

// authorize checks that actor is the party allowed to move trip to target
func authorize(actor models.Actor, trip *models.Trip, to models.TripStatus) error {
	t := transitions[to]
	switch t.by {
	case partyDriver:
		if actor.Role == models.RoleDriver && actor.UserID != "" && actor.UserID == trip.AssignedDriver() {
			return nil
		}
	case partyRiderOrAdmin:
		if actor.Role == models.RoleAdmin {
			return nil
		}
		if actor.Role == models.RoleRider && actor.UserID == trip.RiderID {
			return nil
		}
	}
	return fmt.Errorf("%s %s cannot move trip %s to %s: %w", actor.Role, actor.UserID, trip.ID, to, models.ErrForbidden)
}

// allowed checks the current status against the table
func allowed(trip *models.Trip, to models.TripStatus) error {
	for _, from := range transitions[to].from {
		if trip.Status == from {
			return nil
		}
	}
	if to == models.TripStatusCompleted {
		return fmt.Errorf("trip %s is %s: %w", trip.ID, trip.Status, models.ErrTripNotInProgress)
	}
	return fmt.Errorf("trip %s is %s, cannot move to %s: %w", trip.ID, trip.Status, to, models.ErrInvalidTransition)
}
