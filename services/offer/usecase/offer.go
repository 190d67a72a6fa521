package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/offer"
)

var errDispatcherClosed = errors.New("dispatcher is shut down")

// OfferUC implements offer.OfferUC
type OfferUC struct {
	cfg      *models.Config
	repo     offer.OfferRepo
	gw       offer.OfferGW
	notifier offer.Notifier
	roster   offer.Roster
	matcher  offer.Matcher
	waiters  *roundWaiters

	mu      sync.Mutex
	active  map[string]context.CancelFunc
	closed  bool
	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// NewOfferUC creates a new offer use case
func NewOfferUC(
	cfg *models.Config,
	repo offer.OfferRepo,
	gw offer.OfferGW,
	notifier offer.Notifier,
	roster offer.Roster,
	matcher offer.Matcher,
) *OfferUC {
	baseCtx, stop := context.WithCancel(context.Background())
	return &OfferUC{
		cfg:      cfg,
		repo:     repo,
		gw:       gw,
		notifier: notifier,
		roster:   roster,
		matcher:  matcher,
		waiters:  newRoundWaiters(),
		active:   make(map[string]context.CancelFunc),
		baseCtx:  baseCtx,
		stop:     stop,
	}
}

// Respond applies a driver's answer. Losing the accept race returns
// models.ErrTripUnavailable; answering a closed offer returns
// models.ErrOfferNoLongerValid.
func (uc *OfferUC) Respond(ctx context.Context, offerID, driverID string, decision models.OfferDecision) (*models.Offer, error) {
	if offerID == "" || driverID == "" {
		return nil, fmt.Errorf("%w: offer_id and driver_id are required", models.ErrInvalidRequest)
	}
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: decision must be ACCEPT or REJECT", models.ErrInvalidRequest)
	}

	now := models.Now()
	if decision == models.DecisionReject {
		rejected, err := uc.repo.RejectOffer(ctx, offerID, driverID, now)
		if err != nil {
			return nil, uc.responseError(ctx, offerID, driverID, err)
		}
		metrics.OffersTotal.WithLabelValues("rejected").Inc()
		logger.InfoCtx(ctx, "Offer rejected",
			logger.OfferID(offerID),
			logger.TripID(rejected.TripID),
			logger.DriverID(driverID))
		uc.waiters.signal(rejected.TripID)
		return rejected, nil
	}

	result, err := uc.repo.AcceptOffer(ctx, offerID, driverID, now)
	if err != nil {
		return nil, uc.responseError(ctx, offerID, driverID, err)
	}
	uc.onAccepted(ctx, result)
	return result.Offer, nil
}

func (uc *OfferUC) responseError(ctx context.Context, offerID, driverID string, err error) error {
	switch {
	case errors.Is(err, models.ErrTripUnavailable):
		metrics.AcceptRacesLost.Inc()
		logger.InfoCtx(ctx, "Accept lost to another driver",
			logger.OfferID(offerID),
			logger.DriverID(driverID))
	case errors.Is(err, models.ErrOfferNoLongerValid):
		logger.InfoCtx(ctx, "Answer to a closed offer",
			logger.OfferID(offerID),
			logger.DriverID(driverID),
			logger.Err(err))
	}
	return err
}

// onAccepted runs the side effects of a winning accept. None of them can
// undo the assignment.
func (uc *OfferUC) onAccepted(ctx context.Context, result *models.AcceptResult) {
	trip := result.Trip
	driverID := trip.AssignedDriver()

	metrics.OffersTotal.WithLabelValues("accepted").Inc()
	metrics.TripTransitions.WithLabelValues(string(models.TripStatusAccepted)).Inc()
	logger.InfoCtx(ctx, "Trip assigned",
		logger.TripID(trip.ID),
		logger.OfferID(result.Offer.ID),
		logger.DriverID(driverID),
		logger.Int("cancelled_offers", len(result.Cancelled)))

	uc.holdDriver(ctx, trip.ID, driverID)

	for _, lost := range result.Cancelled {
		metrics.OffersTotal.WithLabelValues("cancelled").Inc()
		uc.notifyClosed(ctx, lost, "trip no longer available")
	}

	event := &models.TripStatusEvent{
		TripID:   trip.ID,
		RiderID:  trip.RiderID,
		DriverID: driverID,
		From:     models.TripStatusRequested,
		Status:   models.TripStatusAccepted,
		At:       trip.UpdatedAt,
	}
	if err := uc.notifier.Notify(ctx, trip.RiderID, constants.EventTripStatus, event); err != nil {
		logger.DebugCtx(ctx, "Rider not told of assignment", logger.TripID(trip.ID), logger.Err(err))
	}
	if err := uc.gw.PublishTripStatus(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip status", logger.TripID(trip.ID), logger.Err(err))
	}

	uc.waiters.signal(trip.ID)
}

// holdDriver marks the winner BUSY. The trip is read again after the write:
// a cancel or completion that committed in between has already released
// the driver, so the BUSY write is undone.
func (uc *OfferUC) holdDriver(ctx context.Context, tripID, driverID string) {
	if err := uc.roster.SetDriverAvailability(ctx, driverID, models.DriverBusy); err != nil {
		logger.WarnCtx(ctx, "Failed to mark driver busy", logger.DriverID(driverID), logger.Err(err))
		return
	}

	current, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to recheck assigned trip", logger.TripID(tripID), logger.Err(err))
		return
	}
	if current.Status.Engaged() && current.AssignedDriver() == driverID {
		return
	}

	logger.InfoCtx(ctx, "Trip ended before driver was held, releasing",
		logger.TripID(tripID),
		logger.DriverID(driverID),
		logger.String("status", string(current.Status)))
	if err := uc.roster.SetDriverAvailability(ctx, driverID, models.DriverOnline); err != nil {
		logger.WarnCtx(ctx, "Failed to release driver", logger.DriverID(driverID), logger.Err(err))
	}
}

func (uc *OfferUC) notifyClosed(ctx context.Context, o *models.Offer, message string) {
	closed := models.OfferClosed{
		OfferID: o.ID,
		TripID:  o.TripID,
		Status:  o.Status,
		Reason:  o.Reason,
		Message: message,
	}
	if err := uc.notifier.Notify(ctx, o.DriverID, constants.EventOfferClosed, closed); err != nil {
		logger.DebugCtx(ctx, "Driver not told offer closed",
			logger.OfferID(o.ID),
			logger.DriverID(o.DriverID),
			logger.Err(err))
	}
}

// ListOffers returns every offer made for a trip
func (uc *OfferUC) ListOffers(ctx context.Context, tripID string) ([]*models.Offer, error) {
	if _, err := uc.repo.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return uc.repo.ListOffersByTrip(ctx, tripID)
}

// StartDispatch runs DispatchTrip in the background. A trip has at most one
// running dispatch.
func (uc *OfferUC) StartDispatch(trip *models.Trip) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed {
		return errDispatcherClosed
	}
	if _, ok := uc.active[trip.ID]; ok {
		return fmt.Errorf("trip %s: %w", trip.ID, models.ErrDispatchInProgress)
	}

	ctx, cancel := context.WithCancel(uc.baseCtx)
	uc.active[trip.ID] = cancel
	uc.wg.Add(1)

	go func() {
		defer uc.wg.Done()
		defer uc.release(trip.ID)

		if _, err := uc.DispatchTrip(ctx, trip.ID); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Dispatch failed", logger.TripID(trip.ID), logger.Err(err))
		}
	}()
	return nil
}

func (uc *OfferUC) release(tripID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if cancel, ok := uc.active[tripID]; ok {
		cancel()
		delete(uc.active, tripID)
	}
}

// AbortDispatch stops the running dispatch of a trip, if any
func (uc *OfferUC) AbortDispatch(tripID string) {
	uc.mu.Lock()
	cancel, ok := uc.active[tripID]
	uc.mu.Unlock()
	if ok {
		cancel()
	}
}

// Close stops every running dispatch and waits for them to clean up
func (uc *OfferUC) Close() {
	uc.mu.Lock()
	uc.closed = true
	uc.mu.Unlock()

	uc.stop()
	uc.wg.Wait()
}
