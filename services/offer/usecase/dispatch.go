package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTopN      = 3
	defaultTimeout   = 15 * time.Second
	defaultMaxRounds = 1
)

func (uc *OfferUC) withDefaults(params models.DispatchParams) models.DispatchParams {
	if params.TopN <= 0 {
		params.TopN = uc.cfg.Dispatch.TopN
	}
	if params.TopN <= 0 {
		params.TopN = defaultTopN
	}
	if params.Timeout <= 0 {
		params.Timeout = uc.cfg.Dispatch.Timeout
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultTimeout
	}
	if params.Round <= 0 {
		params.Round = 1
	}
	return params
}

// Dispatch runs one round: the top params.TopN candidates get an offer at
// the same time and share one deadline. The round ends when an offer is
// accepted, every offer is answered, the deadline passes or ctx is done.
// Offers still open at the end are expired.
func (uc *OfferUC) Dispatch(ctx context.Context, trip *models.Trip, candidates []*models.DriverCandidateScore, params models.DispatchParams) (*models.RoundResult, error) {
	if trip == nil {
		return nil, fmt.Errorf("%w: trip is required", models.ErrInvalidRequest)
	}
	if trip.Status != models.TripStatusRequested {
		return nil, fmt.Errorf("trip %s is %s: %w", trip.ID, trip.Status, models.ErrTripUnavailable)
	}

	params = uc.withDefaults(params)
	result := &models.RoundResult{TripID: trip.ID, Round: params.Round, Status: trip.Status}

	n := min(params.TopN, len(candidates))
	if n == 0 {
		return result, nil
	}
	candidates = candidates[:n]

	wake, release := uc.waiters.register(trip.ID)
	defer release()

	now := models.Now()
	offers := make([]*models.Offer, n)
	for i, c := range candidates {
		offers[i] = &models.Offer{
			ID:        uuid.NewString(),
			TripID:    trip.ID,
			DriverID:  c.DriverID,
			Round:     params.Round,
			Rank:      i + 1,
			Score:     c.Score,
			Status:    models.OfferStatusPending,
			CreatedAt: now,
			ExpiresAt: now.Add(params.Timeout),
		}
	}
	if err := uc.repo.CreateOffers(ctx, offers); err != nil {
		return nil, fmt.Errorf("failed to create offers: %w", err)
	}
	result.Offers = offers

	logger.InfoCtx(ctx, "Dispatch round started",
		logger.TripID(trip.ID),
		logger.Int("round", params.Round),
		logger.Int("offers", n),
		logger.Duration("timeout", params.Timeout))

	result.Delivered = uc.deliver(ctx, trip, offers, candidates)
	if result.Delivered > 0 {
		uc.await(ctx, trip.ID, params.Round, wake, offers[0].ExpiresAt)
	}

	// the round is over even when ctx was cancelled
	cleanup := context.WithoutCancel(ctx)

	expired, err := uc.repo.ExpireRoundOffers(cleanup, trip.ID, params.Round, models.Now())
	if err != nil {
		logger.WarnCtx(ctx, "Failed to expire round offers", logger.TripID(trip.ID), logger.Err(err))
	}
	result.Expired = len(expired)
	for _, o := range expired {
		metrics.OffersTotal.WithLabelValues("expired").Inc()
		uc.notifyClosed(cleanup, o, "offer expired")
	}

	latest, err := uc.repo.GetTrip(cleanup, trip.ID)
	if err != nil {
		return nil, err
	}
	result.Status = latest.Status
	if latest.Status != models.TripStatusRequested && latest.Status != models.TripStatusCancelled {
		for _, o := range offers {
			if o.DriverID == latest.AssignedDriver() {
				result.DriverID = o.DriverID
				result.OfferID = o.ID
			}
		}
	}

	logger.InfoCtx(ctx, "Dispatch round finished",
		logger.TripID(trip.ID),
		logger.Int("round", params.Round),
		logger.Int("delivered", result.Delivered),
		logger.Int("expired", result.Expired),
		logger.String("trip_status", string(result.Status)))
	return result, nil
}

// deliver pushes every offer in parallel. An offer that cannot be delivered
// is cancelled so it never blocks the round.
func (uc *OfferUC) deliver(ctx context.Context, trip *models.Trip, offers []*models.Offer, candidates []*models.DriverCandidateScore) int {
	var delivered atomic.Int32

	g := new(errgroup.Group)
	if uc.cfg.Dispatch.Concurrency > 0 {
		g.SetLimit(uc.cfg.Dispatch.Concurrency)
	}

	for i := range offers {
		o, c := offers[i], candidates[i]
		g.Go(func() error {
			payload := models.OfferPayload{
				OfferID:     o.ID,
				TripID:      trip.ID,
				Pickup:      trip.Pickup,
				Drop:        trip.Drop,
				Fare:        trip.Fare,
				ServiceType: trip.ServiceType,
				DistanceKm:  c.DistanceKm,
				ETAMinutes:  c.ETAMinutes,
				ExpiresAt:   o.ExpiresAt,
			}

			if err := uc.notifier.Notify(ctx, o.DriverID, constants.EventOfferNew, payload); err != nil {
				metrics.OffersTotal.WithLabelValues("delivery_failed").Inc()
				logger.WarnCtx(ctx, "Offer not delivered",
					logger.OfferID(o.ID),
					logger.DriverID(o.DriverID),
					logger.Err(err))
				if err := uc.repo.MarkOfferCancelled(ctx, o.ID, models.OfferReasonDeliveryFailed, models.Now()); err != nil {
					logger.WarnCtx(ctx, "Failed to cancel undelivered offer", logger.OfferID(o.ID), logger.Err(err))
				}
				o.Status = models.OfferStatusCancelled
				o.Reason = models.OfferReasonDeliveryFailed
				return nil
			}

			sentAt := models.Now()
			if err := uc.repo.MarkOfferSent(ctx, o.ID, o.DriverID, sentAt); err != nil {
				logger.WarnCtx(ctx, "Failed to record offer delivery", logger.OfferID(o.ID), logger.Err(err))
			}
			metrics.OffersTotal.WithLabelValues("sent").Inc()
			o.Status = models.OfferStatusSent
			o.SentAt = &sentAt
			delivered.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(delivered.Load())
}

// await blocks until the round can end
func (uc *OfferUC) await(ctx context.Context, tripID string, round int, wake <-chan struct{}, deadline time.Time) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case <-wake:
			if uc.roundSettled(ctx, tripID, round) {
				return
			}
		}
	}
}

// roundSettled reports whether the trip left REQUESTED or no offer of the
// round is still open
func (uc *OfferUC) roundSettled(ctx context.Context, tripID string, round int) bool {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read trip during round", logger.TripID(tripID), logger.Err(err))
		return false
	}
	if trip.Status != models.TripStatusRequested {
		return true
	}

	offers, err := uc.repo.ListOffersByTrip(ctx, tripID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read offers during round", logger.TripID(tripID), logger.Err(err))
		return false
	}
	for _, o := range offers {
		if o.Round == round && o.Status.Open() {
			return false
		}
	}
	return true
}

// DispatchTrip runs rounds until a driver accepts, the trip leaves
// REQUESTED, nobody is left to ask or the configured rounds run out.
// A trip nobody took stays REQUESTED so it can be dispatched again.
func (uc *OfferUC) DispatchTrip(ctx context.Context, tripID string) (*models.DispatchOutcome, error) {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	outcome := &models.DispatchOutcome{TripID: tripID}
	if trip.Status != models.TripStatusRequested {
		settled(outcome, trip)
		return outcome, nil
	}

	maxRounds := uc.cfg.Dispatch.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	params := uc.withDefaults(models.DispatchParams{})

	var offered []string
	for round := 1; round <= maxRounds && outcome.Status == ""; round++ {
		candidates, err := uc.matcher.FindCandidates(ctx, models.CandidateQuery{
			Pickup:      trip.Pickup,
			ServiceType: trip.ServiceType,
			Limit:       params.TopN,
			Exclude:     offered,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find candidates: %w", err)
		}
		if len(candidates) == 0 {
			outcome.Status = models.DispatchNoDriver
			if round == 1 {
				outcome.Status = models.DispatchNoCandidates
			}
			break
		}

		params.Round = round
		result, err := uc.Dispatch(ctx, trip, candidates, params)
		if err != nil {
			return nil, err
		}
		outcome.Rounds = round
		for _, o := range result.Offers {
			offered = append(offered, o.DriverID)
		}

		switch {
		case result.Assigned():
			outcome.Status = models.DispatchAssigned
			outcome.DriverID = result.DriverID
			outcome.OfferID = result.OfferID
		case result.Status != models.TripStatusRequested:
			latest, err := uc.repo.GetTrip(context.WithoutCancel(ctx), tripID)
			if err != nil {
				return nil, err
			}
			settled(outcome, latest)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		}
	}
	if outcome.Status == "" {
		outcome.Status = models.DispatchNoDriver
	}

	uc.finish(ctx, trip, outcome)
	return outcome, nil
}

func settled(outcome *models.DispatchOutcome, trip *models.Trip) {
	if trip.Status == models.TripStatusCancelled {
		outcome.Status = models.DispatchCancelled
		return
	}
	outcome.Status = models.DispatchAssigned
	outcome.DriverID = trip.AssignedDriver()
}

func (uc *OfferUC) finish(ctx context.Context, trip *models.Trip, outcome *models.DispatchOutcome) {
	metrics.DispatchOutcomes.WithLabelValues(string(outcome.Status)).Inc()
	metrics.DispatchRounds.Observe(float64(outcome.Rounds))
	logger.InfoCtx(ctx, "Dispatch finished",
		logger.TripID(trip.ID),
		logger.String("outcome", string(outcome.Status)),
		logger.Int("rounds", outcome.Rounds),
		logger.DriverID(outcome.DriverID))

	if outcome.Status != models.DispatchNoCandidates && outcome.Status != models.DispatchNoDriver {
		return
	}

	ctx = context.WithoutCancel(ctx)
	if err := uc.notifier.Notify(ctx, trip.RiderID, constants.EventTripNoDriver, outcome); err != nil {
		logger.DebugCtx(ctx, "Rider not told of failed dispatch", logger.TripID(trip.ID), logger.Err(err))
	}
	if err := uc.gw.PublishDispatchFailed(ctx, outcome); err != nil {
		logger.WarnCtx(ctx, "Failed to publish dispatch failure", logger.TripID(trip.ID), logger.Err(err))
	}
}
