package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/database"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
)

// OfferRepo stores offers in Postgres. Every transaction that touches both
// a trip and its offers locks the trip row first.
type OfferRepo struct {
	db *sqlx.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *sqlx.DB) *OfferRepo {
	return &OfferRepo{db: db}
}

const selectOffer = `SELECT ` + database.OfferColumns + ` FROM offers`

// GetTrip returns the current row of a trip
func (r *OfferRepo) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "trips", "SELECT")()

	var row models.TripDTO
	err := r.db.GetContext(ctx, &row, `SELECT `+database.TripColumns+` FROM trips WHERE id = $1`, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return row.ToTrip(), nil
}

// CreateOffers inserts one round of offers atomically
func (r *OfferRepo) CreateOffers(ctx context.Context, offers []*models.Offer) error {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "INSERT")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, offer := range offers {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO offers (id, trip_id, driver_id, round, rank, score, status, reason,
				created_at, sent_at, responded_at, expires_at)
			VALUES (:id, :trip_id, :driver_id, :round, :rank, :score, :status, NULLIF(:reason, ''),
				:created_at, :sent_at, :responded_at, :expires_at)`, offer)
		if err != nil {
			return fmt.Errorf("failed to insert offer for driver %s: %w", offer.DriverID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit offers: %w", err)
	}
	return nil
}

// MarkOfferSent records delivery and counts the offer against the driver.
// An offer answered before this runs keeps its status.
func (r *OfferRepo) MarkOfferSent(ctx context.Context, offerID, driverID string, sentAt time.Time) error {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "UPDATE")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE offers
		SET sent_at = $1, status = CASE WHEN status = 'PENDING' THEN 'SENT' ELSE status END
		WHERE id = $2`, sentAt, offerID)
	if err != nil {
		return fmt.Errorf("failed to mark offer sent: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO drivers (id, offers_received, updated_at) VALUES ($1, 1, $2)
		ON CONFLICT (id) DO UPDATE
		SET offers_received = drivers.offers_received + 1, updated_at = EXCLUDED.updated_at`,
		driverID, sentAt)
	if err != nil {
		return fmt.Errorf("failed to count offer for driver: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit offer delivery: %w", err)
	}
	return nil
}

// MarkOfferCancelled closes an open offer; a closed one is left alone
func (r *OfferRepo) MarkOfferCancelled(ctx context.Context, offerID string, reason models.OfferReason, at time.Time) error {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "UPDATE")()

	_, err := r.db.ExecContext(ctx, `
		UPDATE offers SET status = 'CANCELLED', reason = $1, responded_at = $2
		WHERE id = $3 AND status IN ('PENDING', 'SENT')`, string(reason), at, offerID)
	if err != nil {
		return fmt.Errorf("failed to cancel offer: %w", err)
	}
	return nil
}

// GetOffer returns one offer
func (r *OfferRepo) GetOffer(ctx context.Context, offerID string) (*models.Offer, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "SELECT")()
	return getOffer(ctx, r.db, selectOffer+` WHERE id = $1`, offerID)
}

// ListOffersByTrip returns every offer of a trip by round and rank
func (r *OfferRepo) ListOffersByTrip(ctx context.Context, tripID string) ([]*models.Offer, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "SELECT")()

	var rows []models.OfferDTO
	err := r.db.SelectContext(ctx, &rows, selectOffer+` WHERE trip_id = $1 ORDER BY round, rank`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return toOffers(rows), nil
}

// AcceptOffer resolves one accept against the trip row. The trip is locked
// before the offer, so of several concurrent accepts exactly one sees the
// trip REQUESTED; the others are told it is gone.
func (r *OfferRepo) AcceptOffer(ctx context.Context, offerID, driverID string, now time.Time) (*models.AcceptResult, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "ACCEPT")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	offer, err := getOffer(ctx, tx, selectOffer+` WHERE id = $1`, offerID)
	if err != nil {
		return nil, err
	}
	if offer.DriverID != driverID {
		return nil, fmt.Errorf("offer %s belongs to another driver: %w", offerID, models.ErrForbidden)
	}

	var tripStatus string
	err = tx.GetContext(ctx, &tripStatus, `SELECT status FROM trips WHERE id = $1 FOR UPDATE`, offer.TripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", offer.TripID, models.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip: %w", err)
	}

	offer, err = getOffer(ctx, tx, selectOffer+` WHERE id = $1 FOR UPDATE`, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.Status.Open() {
		return nil, closedOfferError(ctx, tx, offer, now)
	}
	if now.After(offer.ExpiresAt) {
		if err := closeOffer(ctx, tx, offerID, models.OfferStatusExpired, models.OfferReasonExpired, now); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("offer %s expired: %w", offerID, models.ErrOfferNoLongerValid)
	}

	var row models.TripDTO
	if models.TripStatus(tripStatus) == models.TripStatusRequested {
		err = tx.GetContext(ctx, &row, `
			UPDATE trips SET status = 'ACCEPTED', driver_id = $1, accepted_at = $2, updated_at = $2
			WHERE id = $3 AND status = 'REQUESTED'
			RETURNING `+database.TripColumns, driverID, now, offer.TripID)
	} else {
		err = sql.ErrNoRows
	}
	if errors.Is(err, sql.ErrNoRows) {
		if err := closeOffer(ctx, tx, offerID, models.OfferStatusCancelled, models.OfferReasonTripUnavailable, now); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("trip %s: %w", offer.TripID, models.ErrTripUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign trip: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE offers SET status = 'ACCEPTED', responded_at = $1 WHERE id = $2`, now, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to accept offer: %w", err)
	}

	var siblings []models.OfferDTO
	err = tx.SelectContext(ctx, &siblings, `
		UPDATE offers SET status = 'CANCELLED', reason = $1
		WHERE trip_id = $2 AND id <> $3 AND status IN ('PENDING', 'SENT')
		RETURNING `+database.OfferColumns,
		string(models.OfferReasonSiblingAccepted), offer.TripID, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel sibling offers: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO drivers (id, offers_accepted, updated_at) VALUES ($1, 1, $2)
		ON CONFLICT (id) DO UPDATE
		SET offers_accepted = drivers.offers_accepted + 1, updated_at = EXCLUDED.updated_at`,
		driverID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count accepted offer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit accept: %w", err)
	}

	offer.Status = models.OfferStatusAccepted
	offer.RespondedAt = &now
	return &models.AcceptResult{
		Offer:     offer,
		Trip:      row.ToTrip(),
		Cancelled: toOffers(siblings),
	}, nil
}

// closedOfferError maps an offer that is no longer open to the error its
// driver should see. A loser of the accept race is told the trip is gone.
func closedOfferError(ctx context.Context, tx *sqlx.Tx, offer *models.Offer, now time.Time) error {
	if offer.Status != models.OfferStatusCancelled {
		return fmt.Errorf("offer %s is %s: %w", offer.ID, offer.Status, models.ErrOfferNoLongerValid)
	}

	switch offer.Reason {
	case models.OfferReasonSiblingAccepted:
		_, err := tx.ExecContext(ctx,
			`UPDATE offers SET reason = $1, responded_at = $2 WHERE id = $3`,
			string(models.OfferReasonTripUnavailable), now, offer.ID)
		if err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit offer: %w", err)
		}
		return fmt.Errorf("trip %s: %w", offer.TripID, models.ErrTripUnavailable)
	case models.OfferReasonTripCancelled, models.OfferReasonTripUnavailable:
		return fmt.Errorf("trip %s: %w", offer.TripID, models.ErrTripUnavailable)
	}
	return fmt.Errorf("offer %s is %s: %w", offer.ID, offer.Status, models.ErrOfferNoLongerValid)
}

// closeOffer writes a terminal status and commits tx
func closeOffer(ctx context.Context, tx *sqlx.Tx, offerID string, status models.OfferStatus, reason models.OfferReason, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE offers SET status = $1, reason = $2, responded_at = $3 WHERE id = $4`,
		string(status), string(reason), now, offerID)
	if err != nil {
		return fmt.Errorf("failed to close offer: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit offer: %w", err)
	}
	return nil
}

// RejectOffer records a driver's refusal
func (r *OfferRepo) RejectOffer(ctx context.Context, offerID, driverID string, now time.Time) (*models.Offer, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "REJECT")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	offer, err := getOffer(ctx, tx, selectOffer+` WHERE id = $1 FOR UPDATE`, offerID)
	if err != nil {
		return nil, err
	}
	if offer.DriverID != driverID {
		return nil, fmt.Errorf("offer %s belongs to another driver: %w", offerID, models.ErrForbidden)
	}
	if !offer.Status.Open() {
		return nil, fmt.Errorf("offer %s is %s: %w", offerID, offer.Status, models.ErrOfferNoLongerValid)
	}
	if now.After(offer.ExpiresAt) {
		if err := closeOffer(ctx, tx, offerID, models.OfferStatusExpired, models.OfferReasonExpired, now); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("offer %s expired: %w", offerID, models.ErrOfferNoLongerValid)
	}

	offer, err = getOffer(ctx, tx, `
		UPDATE offers SET status = 'REJECTED', responded_at = $1 WHERE id = $2
		RETURNING `+database.OfferColumns, now, offerID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reject: %w", err)
	}
	return offer, nil
}

// ExpireRoundOffers closes every still-open offer of one round
func (r *OfferRepo) ExpireRoundOffers(ctx context.Context, tripID string, round int, now time.Time) ([]*models.Offer, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "offers", "EXPIRE")()

	var rows []models.OfferDTO
	err := r.db.SelectContext(ctx, &rows, `
		UPDATE offers SET status = 'EXPIRED', reason = $1, responded_at = $2
		WHERE trip_id = $3 AND round = $4 AND status IN ('PENDING', 'SENT')
		RETURNING `+database.OfferColumns,
		string(models.OfferReasonExpired), now, tripID, round)
	if err != nil {
		return nil, fmt.Errorf("failed to expire offers: %w", err)
	}
	return toOffers(rows), nil
}

func getOffer(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (*models.Offer, error) {
	var row models.OfferDTO
	err := sqlx.GetContext(ctx, q, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return row.ToOffer(), nil
}

func toOffers(rows []models.OfferDTO) []*models.Offer {
	offers := make([]*models.Offer, 0, len(rows))
	for i := range rows {
		offers = append(offers, rows[i].ToOffer())
	}
	return offers
}
