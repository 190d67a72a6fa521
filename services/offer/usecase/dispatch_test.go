package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(ids ...string) []*models.DriverCandidateScore {
	out := make([]*models.DriverCandidateScore, 0, len(ids))
	for i, id := range ids {
		out = append(out, &models.DriverCandidateScore{
			DriverID:   id,
			DistanceKm: float64(i + 1),
			ETAMinutes: float64(2 * (i + 1)),
			Score:      1 - float64(i)/10,
		})
	}
	return out
}

func TestDispatch_ExpiresUnansweredOffers(t *testing.T) {
	// Arrange: three candidates, top two get offers, one push fails
	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().
		CreateOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, offers []*models.Offer) error {
			require.Len(t, offers, 2)
			assert.Equal(t, "driver-1", offers[0].DriverID)
			assert.Equal(t, 1, offers[0].Rank)
			assert.Equal(t, 2, offers[1].Rank)
			assert.Equal(t, offers[0].ExpiresAt, offers[1].ExpiresAt, "one shared deadline")
			return nil
		})
	f.notifier.EXPECT().
		Notify(gomock.Any(), "driver-1", constants.EventOfferNew, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, data interface{}) error {
			payload, ok := data.(models.OfferPayload)
			require.True(t, ok)
			assert.Equal(t, "trip-1", payload.TripID)
			assert.Equal(t, 1.0, payload.DistanceKm)
			return nil
		})
	f.notifier.EXPECT().
		Notify(gomock.Any(), "driver-2", constants.EventOfferNew, gomock.Any()).
		Return(models.ErrClientNotConnected)
	f.repo.EXPECT().MarkOfferSent(gomock.Any(), gomock.Any(), "driver-1", gomock.Any()).Return(nil)
	f.repo.EXPECT().MarkOfferCancelled(gomock.Any(), gomock.Any(), models.OfferReasonDeliveryFailed, gomock.Any()).Return(nil)
	f.repo.EXPECT().
		ExpireRoundOffers(gomock.Any(), "trip-1", 1, gomock.Any()).
		Return([]*models.Offer{{ID: "offer-a", TripID: "trip-1", DriverID: "driver-1",
			Status: models.OfferStatusExpired, Reason: models.OfferReasonExpired}}, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), "driver-1", constants.EventOfferClosed, gomock.Any()).Return(nil)
	f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(requestedTrip(), nil)

	// Act
	start := time.Now()
	result, err := f.uc.Dispatch(ctx, requestedTrip(), candidates("driver-1", "driver-2", "driver-3"), models.DispatchParams{})

	// Assert
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Len(t, result.Offers, 2)
	assert.Equal(t, 1, result.Delivered)
	assert.Equal(t, 1, result.Expired)
	assert.False(t, result.Assigned())
	assert.Equal(t, models.TripStatusRequested, result.Status)
}

func TestDispatch_EndsAsSoonAsAccepted(t *testing.T) {
	// Arrange: a long deadline the round must not wait out
	f := newFixture(t)

	f.repo.EXPECT().CreateOffers(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), constants.EventOfferNew, gomock.Any()).Return(nil).Times(2)
	f.repo.EXPECT().
		MarkOfferSent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, time.Time) error {
			f.uc.waiters.signal("trip-1")
			return nil
		}).
		Times(2)
	f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(acceptedTrip("driver-2"), nil).MinTimes(2)
	f.repo.EXPECT().ExpireRoundOffers(gomock.Any(), "trip-1", 1, gomock.Any()).Return(nil, nil)

	// Act
	start := time.Now()
	result, err := f.uc.Dispatch(context.Background(), requestedTrip(), candidates("driver-1", "driver-2"),
		models.DispatchParams{Timeout: 5 * time.Second})

	// Assert
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, result.Assigned())
	assert.Equal(t, "driver-2", result.DriverID)
	assert.Equal(t, result.Offers[1].ID, result.OfferID)
	assert.Equal(t, models.TripStatusAccepted, result.Status)
}

func TestDispatch_TripNotRequested(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Dispatch(context.Background(), acceptedTrip("driver-1"), candidates("driver-2"), models.DispatchParams{})

	assert.ErrorIs(t, err, models.ErrTripUnavailable)
}

func TestDispatch_NoCandidates(t *testing.T) {
	f := newFixture(t)

	result, err := f.uc.Dispatch(context.Background(), requestedTrip(), nil, models.DispatchParams{})

	require.NoError(t, err)
	assert.Empty(t, result.Offers)
	assert.False(t, result.Assigned())
}

func TestDispatch_CreateOffersError(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().CreateOffers(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := f.uc.Dispatch(context.Background(), requestedTrip(), candidates("driver-1"), models.DispatchParams{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create offers")
}

func TestDispatchTrip_NoCandidates(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(requestedTrip(), nil)
	f.matcher.EXPECT().
		FindCandidates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query models.CandidateQuery) ([]*models.DriverCandidateScore, error) {
			assert.Equal(t, models.ServiceBike, query.ServiceType)
			assert.Equal(t, 2, query.Limit)
			assert.Empty(t, query.Exclude)
			return []*models.DriverCandidateScore{}, nil
		})
	f.notifier.EXPECT().Notify(gomock.Any(), "rider-1", constants.EventTripNoDriver, gomock.Any()).Return(nil)
	f.gw.EXPECT().PublishDispatchFailed(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	outcome, err := f.uc.DispatchTrip(context.Background(), "trip-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.DispatchNoCandidates, outcome.Status)
	assert.Equal(t, 0, outcome.Rounds)
}

func TestDispatchTrip_NoDriverAfterRounds(t *testing.T) {
	// Arrange: the only driver cannot be reached, the next round finds nobody new
	f := newFixture(t)
	var searches int32

	f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(requestedTrip(), nil).Times(2)
	f.matcher.EXPECT().
		FindCandidates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query models.CandidateQuery) ([]*models.DriverCandidateScore, error) {
			if atomic.AddInt32(&searches, 1) == 1 {
				return candidates("driver-1"), nil
			}
			assert.Equal(t, []string{"driver-1"}, query.Exclude)
			return nil, nil
		}).
		Times(2)
	f.repo.EXPECT().CreateOffers(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any(), "driver-1", constants.EventOfferNew, gomock.Any()).Return(models.ErrClientNotConnected)
	f.repo.EXPECT().MarkOfferCancelled(gomock.Any(), gomock.Any(), models.OfferReasonDeliveryFailed, gomock.Any()).Return(nil)
	f.repo.EXPECT().ExpireRoundOffers(gomock.Any(), "trip-1", 1, gomock.Any()).Return(nil, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), "rider-1", constants.EventTripNoDriver, gomock.Any()).Return(nil)
	f.gw.EXPECT().
		PublishDispatchFailed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, outcome *models.DispatchOutcome) error {
			assert.Equal(t, models.DispatchNoDriver, outcome.Status)
			return nil
		})

	// Act
	outcome, err := f.uc.DispatchTrip(context.Background(), "trip-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.DispatchNoDriver, outcome.Status)
	assert.Equal(t, 1, outcome.Rounds)
}

func TestDispatchTrip_AlreadySettled(t *testing.T) {
	t.Run("assigned", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(acceptedTrip("driver-1"), nil)

		outcome, err := f.uc.DispatchTrip(context.Background(), "trip-1")

		require.NoError(t, err)
		assert.Equal(t, models.DispatchAssigned, outcome.Status)
		assert.Equal(t, "driver-1", outcome.DriverID)
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t)
		trip := requestedTrip()
		trip.Status = models.TripStatusCancelled
		f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(trip, nil)

		outcome, err := f.uc.DispatchTrip(context.Background(), "trip-1")

		require.NoError(t, err)
		assert.Equal(t, models.DispatchCancelled, outcome.Status)
	})
}

func TestDispatchTrip_MatcherError(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetTrip(gomock.Any(), "trip-1").Return(requestedTrip(), nil)
	f.matcher.EXPECT().FindCandidates(gomock.Any(), gomock.Any()).Return(nil, errors.New("roster: circuit breaker is open"))

	_, err := f.uc.DispatchTrip(context.Background(), "trip-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find candidates")
}
