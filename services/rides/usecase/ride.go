package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/rides"
)

// RideUC implements rides.RideUC
type RideUC struct {
	repo       rides.RideRepo
	gw         rides.RideGW
	notifier   rides.Notifier
	dispatcher rides.Dispatcher
	roster     rides.Roster
}

// NewRideUC creates a new ride use case
func NewRideUC(
	repo rides.RideRepo,
	gw rides.RideGW,
	notifier rides.Notifier,
	dispatcher rides.Dispatcher,
	roster rides.Roster,
) *RideUC {
	return &RideUC{
		repo:       repo,
		gw:         gw,
		notifier:   notifier,
		dispatcher: dispatcher,
		roster:     roster,
	}
}

// RequestTrip creates a REQUESTED trip and starts dispatching it
func (uc *RideUC) RequestTrip(ctx context.Context, actor models.Actor, req models.TripRequest) (*models.Trip, error) {
	riderID := req.RiderID
	switch actor.Role {
	case models.RoleRider:
		riderID = actor.UserID
	case models.RoleAdmin:
		if riderID == "" {
			return nil, fmt.Errorf("%w: rider_id is required", models.ErrInvalidRequest)
		}
	default:
		return nil, fmt.Errorf("%s cannot request trips: %w", actor.Role, models.ErrForbidden)
	}
	if riderID == "" {
		return nil, fmt.Errorf("%w: rider_id is required", models.ErrInvalidRequest)
	}
	if err := req.Pickup.Validate(); err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	if err := req.Drop.Validate(); err != nil {
		return nil, fmt.Errorf("drop: %w", err)
	}
	if req.Fare <= 0 {
		return nil, fmt.Errorf("%w: fare must be positive", models.ErrInvalidRequest)
	}
	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = models.ServiceBike
	}

	now := models.Now()
	trip := &models.Trip{
		ID:          uuid.NewString(),
		RiderID:     riderID,
		Pickup:      req.Pickup,
		Drop:        req.Drop,
		ServiceType: serviceType,
		Fare:        req.Fare,
		Status:      models.TripStatusRequested,
		RequestedAt: now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	metrics.TripTransitions.WithLabelValues(string(models.TripStatusRequested)).Inc()
	logger.InfoCtx(ctx, "Trip requested",
		logger.TripID(trip.ID),
		logger.String("rider_id", riderID),
		logger.String("service_type", string(serviceType)))

	if err := uc.gw.PublishTripRequested(ctx, trip); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip request", logger.TripID(trip.ID), logger.Err(err))
	}
	if err := uc.dispatcher.StartDispatch(trip); err != nil {
		logger.WarnCtx(ctx, "Dispatch not started", logger.TripID(trip.ID), logger.Err(err))
	}
	return trip, nil
}

// GetTrip returns a trip visible to actor
func (uc *RideUC) GetTrip(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error) {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role == models.RoleAdmin:
	case actor.Role == models.RoleRider && actor.UserID == trip.RiderID:
	case actor.Role == models.RoleDriver && actor.UserID != "" && actor.UserID == trip.AssignedDriver():
	default:
		return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrForbidden)
	}
	return trip, nil
}

// MarkArrived moves ACCEPTED to ARRIVED
func (uc *RideUC) MarkArrived(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error) {
	return uc.transition(ctx, actor, tripID, models.TripStatusArrived)
}

// StartTrip moves ARRIVED to IN_PROGRESS
func (uc *RideUC) StartTrip(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error) {
	return uc.transition(ctx, actor, tripID, models.TripStatusInProgress)
}

func (uc *RideUC) transition(ctx context.Context, actor models.Actor, tripID string, to models.TripStatus) (*models.Trip, error) {
	current, err := uc.check(ctx, actor, tripID, to)
	if err != nil {
		return nil, err
	}

	trip, err := uc.repo.TransitionTrip(ctx, tripID, transitions[to].from, to, models.Now())
	if err != nil {
		return nil, err
	}
	uc.announce(ctx, trip, current.Status, "")
	return trip, nil
}

// check loads the trip and validates actor and status for the move
func (uc *RideUC) check(ctx context.Context, actor models.Actor, tripID string, to models.TripStatus) (*models.Trip, error) {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, trip, to); err != nil {
		return nil, err
	}
	if err := allowed(trip, to); err != nil {
		return nil, err
	}
	return trip, nil
}

// CancelTrip cancels a trip that has not started. Open offers are closed
// with it and an assigned driver goes back ONLINE.
func (uc *RideUC) CancelTrip(ctx context.Context, actor models.Actor, tripID string, reason string) (*models.Trip, error) {
	if _, err := uc.check(ctx, actor, tripID, models.TripStatusCancelled); err != nil {
		return nil, err
	}

	result, err := uc.repo.CancelTrip(ctx, tripID, transitions[models.TripStatusCancelled].from, reason, models.Now())
	if err != nil {
		return nil, err
	}
	trip := result.Trip
	uc.dispatcher.AbortDispatch(tripID)

	for _, o := range result.Cancelled {
		metrics.OffersTotal.WithLabelValues("cancelled").Inc()
		closed := models.OfferClosed{
			OfferID: o.ID,
			TripID:  o.TripID,
			Status:  o.Status,
			Reason:  o.Reason,
			Message: "trip cancelled",
		}
		if err := uc.notifier.Notify(ctx, o.DriverID, constants.EventOfferClosed, closed); err != nil {
			logger.DebugCtx(ctx, "Driver not told offer closed", logger.OfferID(o.ID), logger.Err(err))
		}
	}
	uc.releaseDriver(ctx, trip)

	uc.announce(ctx, trip, result.From, reason)
	return trip, nil
}

// CompleteTrip completes an IN_PROGRESS trip and settles its fare. When the
// rider cannot pay nothing changes and models.ErrInsufficientBalance is
// returned.
func (uc *RideUC) CompleteTrip(ctx context.Context, actor models.Actor, tripID string) (*models.TripCompleted, error) {
	if _, err := uc.check(ctx, actor, tripID, models.TripStatusCompleted); err != nil {
		return nil, err
	}

	trip, entries, err := uc.repo.CompleteTrip(ctx, tripID, models.Now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientBalance):
			metrics.Settlements.WithLabelValues("insufficient_balance").Inc()
			logger.WarnCtx(ctx, "Settlement refused", logger.TripID(tripID), logger.Err(err))
		case errors.Is(err, models.ErrTripNotInProgress):
		default:
			metrics.Settlements.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.Settlements.WithLabelValues("settled").Inc()
	logger.InfoCtx(ctx, "Trip settled",
		logger.TripID(trip.ID),
		logger.DriverID(trip.AssignedDriver()),
		logger.Float64("fare", trip.Fare))

	uc.releaseDriver(ctx, trip)
	uc.announce(ctx, trip, models.TripStatusInProgress, "")

	completed := &models.TripCompleted{Trip: trip, Entries: entries}
	if err := uc.gw.PublishTripCompleted(ctx, completed); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip completion", logger.TripID(trip.ID), logger.Err(err))
	}
	return completed, nil
}

// RedispatchTrip restarts dispatch for a trip still waiting for a driver
func (uc *RideUC) RedispatchTrip(ctx context.Context, actor models.Actor, tripID string) error {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && !(actor.Role == models.RoleRider && actor.UserID == trip.RiderID) {
		return fmt.Errorf("trip %s: %w", tripID, models.ErrForbidden)
	}
	if trip.Status != models.TripStatusRequested {
		return fmt.Errorf("trip %s is %s: %w", tripID, trip.Status, models.ErrInvalidTransition)
	}
	return uc.dispatcher.StartDispatch(trip)
}

func (uc *RideUC) releaseDriver(ctx context.Context, trip *models.Trip) {
	driverID := trip.AssignedDriver()
	if driverID == "" {
		return
	}
	if err := uc.roster.SetDriverAvailability(ctx, driverID, models.DriverOnline); err != nil {
		logger.WarnCtx(ctx, "Failed to release driver", logger.DriverID(driverID), logger.Err(err))
	}
}

// announce tells both parties and the bus about a transition
func (uc *RideUC) announce(ctx context.Context, trip *models.Trip, from models.TripStatus, reason string) {
	metrics.TripTransitions.WithLabelValues(string(trip.Status)).Inc()
	logger.InfoCtx(ctx, "Trip status changed",
		logger.TripID(trip.ID),
		logger.String("from", string(from)),
		logger.String("to", string(trip.Status)))

	event := &models.TripStatusEvent{
		TripID:   trip.ID,
		RiderID:  trip.RiderID,
		DriverID: trip.AssignedDriver(),
		From:     from,
		Status:   trip.Status,
		Reason:   reason,
		At:       trip.UpdatedAt,
	}
	for _, userID := range []string{trip.RiderID, event.DriverID} {
		if userID == "" {
			continue
		}
		if err := uc.notifier.Notify(ctx, userID, constants.EventTripStatus, event); err != nil {
			logger.DebugCtx(ctx, "Party not told of status change", logger.TripID(trip.ID), logger.Err(err))
		}
	}
	if err := uc.gw.PublishTripStatus(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip status", logger.TripID(trip.ID), logger.Err(err))
	}
}
