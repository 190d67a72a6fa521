package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/piresc/dispatch/internal/pkg/database"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, interface{}) error { return nil }

type memBus struct {
	mu        sync.Mutex
	statuses  []models.TripStatus
	completed int
}

func (b *memBus) PublishTripRequested(context.Context, *models.Trip) error { return nil }

func (b *memBus) PublishTripStatus(_ context.Context, event *models.TripStatusEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses = append(b.statuses, event.Status)
	return nil
}

func (b *memBus) PublishTripCompleted(context.Context, *models.TripCompleted) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.completed++
	return nil
}

type idleDispatcher struct {
	mu      sync.Mutex
	started []string
	aborted []string
}

func (d *idleDispatcher) StartDispatch(trip *models.Trip) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = append(d.started, trip.ID)
	return nil
}

func (d *idleDispatcher) AbortDispatch(tripID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.aborted = append(d.aborted, tripID)
}

type lifecycle struct {
	store      *database.MemoryStore
	bus        *memBus
	dispatcher *idleDispatcher
	uc         *RideUC
}

func newLifecycle() *lifecycle {
	l := &lifecycle{store: database.NewMemoryStore(), bus: &memBus{}, dispatcher: &idleDispatcher{}}
	l.uc = NewRideUC(l.store, l.bus, nopNotifier{}, l.dispatcher, l.store)
	return l
}

// assign plays the accepted offer that dispatch would produce
func (l *lifecycle) assign(t *testing.T, trip *models.Trip, driverID string) {
	t.Helper()
	ctx := context.Background()
	now := models.Now()
	require.NoError(t, l.store.CreateOffers(ctx, []*models.Offer{{
		ID: "offer-" + driverID, TripID: trip.ID, DriverID: driverID, Round: 1, Rank: 1,
		Status: models.OfferStatusSent, CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	}}))
	_, err := l.store.AcceptOffer(ctx, "offer-"+driverID, driverID, now)
	require.NoError(t, err)
	require.NoError(t, l.store.SetDriverAvailability(ctx, driverID, models.DriverBusy))
}

func (l *lifecycle) requestAndStart(t *testing.T, fare float64) *models.Trip {
	t.Helper()
	ctx := context.Background()
	trip, err := l.uc.RequestTrip(ctx, rider, models.TripRequest{
		Pickup: models.Location{Latitude: 34.526, Longitude: 69.1777},
		Drop:   models.Location{Latitude: 34.54, Longitude: 69.19},
		Fare:   fare,
	})
	require.NoError(t, err)
	l.assign(t, trip, "driver-1")

	_, err = l.uc.MarkArrived(ctx, driver, trip.ID)
	require.NoError(t, err)
	_, err = l.uc.StartTrip(ctx, driver, trip.ID)
	require.NoError(t, err)
	return trip
}

func TestLifecycle_CompleteSettlesAndFreesDriver(t *testing.T) {
	// Arrange
	l := newLifecycle()
	ctx := context.Background()
	_, err := l.store.TopUp(ctx, "rider-1", 100000)
	require.NoError(t, err)
	trip := l.requestAndStart(t, 25000)

	// Act
	completed, err := l.uc.CompleteTrip(ctx, driver, trip.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, completed.Trip.Status)
	require.Len(t, completed.Entries, 2)

	riderWallet, err := l.store.GetWallet(ctx, "rider-1")
	require.NoError(t, err)
	driverWallet, err := l.store.GetWallet(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, 75000.0, riderWallet.Balance)
	assert.Equal(t, 25000.0, driverWallet.Balance)

	availability, err := l.store.GetDriverAvailability(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, models.DriverOnline, availability)

	assert.Equal(t, []string{trip.ID}, l.dispatcher.started)
	assert.Equal(t, []models.TripStatus{models.TripStatusArrived, models.TripStatusInProgress, models.TripStatusCompleted}, l.bus.statuses)
	assert.Equal(t, 1, l.bus.completed)
}

func TestLifecycle_UnpaidTripStaysInProgress(t *testing.T) {
	// Arrange
	l := newLifecycle()
	ctx := context.Background()
	_, err := l.store.TopUp(ctx, "rider-1", 1000)
	require.NoError(t, err)
	trip := l.requestAndStart(t, 25000)

	// Act
	_, err = l.uc.CompleteTrip(ctx, driver, trip.ID)

	// Assert
	assert.ErrorIs(t, err, models.ErrInsufficientBalance)
	current, err := l.uc.GetTrip(ctx, rider, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusInProgress, current.Status)
	wallet, err := l.store.GetWallet(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, wallet.Balance)

	// a top-up lets the driver complete the same trip
	_, err = l.store.TopUp(ctx, "rider-1", 30000)
	require.NoError(t, err)
	_, err = l.uc.CompleteTrip(ctx, driver, trip.ID)
	require.NoError(t, err)
}

func TestLifecycle_ConcurrentCompletesSettleOnce(t *testing.T) {
	l := newLifecycle()
	ctx := context.Background()
	_, err := l.store.TopUp(ctx, "rider-1", 100000)
	require.NoError(t, err)
	trip := l.requestAndStart(t, 25000)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.uc.CompleteTrip(ctx, driver, trip.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, models.ErrTripNotInProgress):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 5, rejected)
	wallet, err := l.store.GetWallet(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, 75000.0, wallet.Balance)
}

func TestLifecycle_CancelAfterAcceptReleasesDriver(t *testing.T) {
	l := newLifecycle()
	ctx := context.Background()
	trip, err := l.uc.RequestTrip(ctx, rider, models.TripRequest{
		Pickup: models.Location{Latitude: 34.526, Longitude: 69.1777},
		Drop:   models.Location{Latitude: 34.54, Longitude: 69.19},
		Fare:   25000,
	})
	require.NoError(t, err)
	l.assign(t, trip, "driver-1")

	cancelled, err := l.uc.CancelTrip(ctx, rider, trip.ID, "plans changed")

	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCancelled, cancelled.Status)
	availability, err := l.store.GetDriverAvailability(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, models.DriverOnline, availability)
	assert.Equal(t, []string{trip.ID}, l.dispatcher.aborted)

	_, err = l.uc.MarkArrived(ctx, driver, trip.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}
