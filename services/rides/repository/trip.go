package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/database"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	billingrepo "github.com/piresc/dispatch/services/billing/repository"
)

// RideRepo stores trips in Postgres
type RideRepo struct {
	db *sqlx.DB
}

// NewRideRepository creates a new ride repository
func NewRideRepository(db *sqlx.DB) *RideRepo {
	return &RideRepo{db: db}
}

// timestampColumn is the column stamped when a trip enters status
var timestampColumn = map[models.TripStatus]string{
	models.TripStatusAccepted:   "accepted_at",
	models.TripStatusArrived:    "arrived_at",
	models.TripStatusInProgress: "started_at",
	models.TripStatusCompleted:  "completed_at",
	models.TripStatusCancelled:  "cancelled_at",
}

// CreateTrip inserts a new trip
func (r *RideRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "trips", "INSERT")()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trips (id, rider_id, pickup_lat, pickup_lng, drop_lat, drop_lng,
			service_type, fare, status, requested_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		trip.ID, trip.RiderID,
		trip.Pickup.Latitude, trip.Pickup.Longitude,
		trip.Drop.Latitude, trip.Drop.Longitude,
		string(trip.ServiceType), trip.Fare, string(trip.Status),
		trip.RequestedAt, trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip returns a trip by ID
func (r *RideRepo) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "trips", "SELECT")()
	return getTrip(ctx, r.db, tripID)
}

// TransitionTrip moves a trip to status to when it is currently in from
func (r *RideRepo) TransitionTrip(ctx context.Context, tripID string, from []models.TripStatus, to models.TripStatus, at time.Time) (*models.Trip, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "trips", "UPDATE")()

	column, ok := timestampColumn[to]
	if !ok {
		return nil, fmt.Errorf("%w: no transition into %s", models.ErrInvalidTransition, to)
	}

	var row models.TripDTO
	err := r.db.GetContext(ctx, &row, fmt.Sprintf(`
		UPDATE trips SET status = $1, %s = $2, updated_at = $2
		WHERE id = $3 AND status = ANY($4)
		RETURNING %s`, column, database.TripColumns),
		string(to), at, tripID, pq.Array(statusStrings(from)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.rejected(ctx, r.db, tripID, to, models.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return row.ToTrip(), nil
}

// CancelTrip cancels the trip and its open offers together. The trip row is
// locked first so the status it replaces is the one reported.
func (r *RideRepo) CancelTrip(ctx context.Context, tripID string, from []models.TripStatus, reason string, at time.Time) (*models.CancelResult, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "trips", "CANCEL")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previous string
	err = tx.GetContext(ctx, &previous, `SELECT status FROM trips WHERE id = $1 FOR UPDATE`, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip: %w", err)
	}

	var row models.TripDTO
	err = tx.GetContext(ctx, &row, `
		UPDATE trips SET status = 'CANCELLED', cancel_reason = NULLIF($1, ''), cancelled_at = $2, updated_at = $2
		WHERE id = $3 AND status = ANY($4)
		RETURNING `+database.TripColumns,
		reason, at, tripID, pq.Array(statusStrings(from)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.rejected(ctx, tx, tripID, models.TripStatusCancelled, models.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel trip: %w", err)
	}

	var offers []models.OfferDTO
	err = tx.SelectContext(ctx, &offers, `
		UPDATE offers SET status = 'CANCELLED', reason = $1, responded_at = $2
		WHERE trip_id = $3 AND status IN ('PENDING', 'SENT')
		RETURNING `+database.OfferColumns,
		string(models.OfferReasonTripCancelled), at, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel open offers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancel: %w", err)
	}

	cancelled := make([]*models.Offer, 0, len(offers))
	for i := range offers {
		cancelled = append(cancelled, offers[i].ToOffer())
	}
	return &models.CancelResult{
		Trip:      row.ToTrip(),
		From:      models.TripStatus(previous),
		Cancelled: cancelled,
	}, nil
}

// CompleteTrip completes an IN_PROGRESS trip and settles its fare in one
// transaction. If the rider cannot pay, the trip stays IN_PROGRESS.
func (r *RideRepo) CompleteTrip(ctx context.Context, tripID string, at time.Time) (*models.Trip, []*models.LedgerEntry, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "trips", "COMPLETE")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row models.TripDTO
	err = tx.GetContext(ctx, &row, `
		UPDATE trips SET status = 'COMPLETED', completed_at = $1, updated_at = $1
		WHERE id = $2 AND status = 'IN_PROGRESS'
		RETURNING `+database.TripColumns, at, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, r.rejected(ctx, tx, tripID, models.TripStatusCompleted, models.ErrTripNotInProgress)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete trip: %w", err)
	}
	trip := row.ToTrip()

	entries, err := billingrepo.SettleTx(ctx, tx, &models.Settlement{
		TripID:   trip.ID,
		RiderID:  trip.RiderID,
		DriverID: trip.AssignedDriver(),
		Amount:   trip.Fare,
	}, at)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit completion: %w", err)
	}
	return trip, entries, nil
}

// rejected explains a compare-and-set that matched no row
func (r *RideRepo) rejected(ctx context.Context, q sqlx.QueryerContext, tripID string, to models.TripStatus, sentinel error) error {
	current, err := getTrip(ctx, q, tripID)
	if err != nil {
		return err
	}
	return fmt.Errorf("trip %s is %s, cannot move to %s: %w", tripID, current.Status, to, sentinel)
}

func getTrip(ctx context.Context, q sqlx.QueryerContext, tripID string) (*models.Trip, error) {
	var row models.TripDTO
	err := sqlx.GetContext(ctx, q, &row, `SELECT `+database.TripColumns+` FROM trips WHERE id = $1`, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return row.ToTrip(), nil
}

func statusStrings(statuses []models.TripStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
