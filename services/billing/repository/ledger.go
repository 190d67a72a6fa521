package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
)

// BillingRepo keeps wallets and the ledger in Postgres
type BillingRepo struct {
	db *sqlx.DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *sqlx.DB) *BillingRepo {
	return &BillingRepo{db: db}
}

// Settle runs SettleTx in its own transaction
func (r *BillingRepo) Settle(ctx context.Context, settlement *models.Settlement) ([]*models.LedgerEntry, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "wallets", "SETTLE")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entries, err := SettleTx(ctx, tx, settlement, models.Now())
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return entries, nil
}

// SettleTx debits the rider and credits the driver inside tx. The rider's
// wallet row stays locked until tx ends, so concurrent settlements against
// one wallet are applied one at a time. Nothing is written when the
// balance does not cover the amount.
func SettleTx(ctx context.Context, tx *sqlx.Tx, s *models.Settlement, now time.Time) ([]*models.LedgerEntry, error) {
	var balance float64
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE`, s.RiderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rider %s has no wallet: %w", s.RiderID, models.ErrInsufficientBalance)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock rider wallet: %w", err)
	}
	if balance < s.Amount {
		return nil, fmt.Errorf("rider %s balance %.2f below %.2f: %w", s.RiderID, balance, s.Amount, models.ErrInsufficientBalance)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance - $1, updated_at = $2 WHERE user_id = $3`,
		s.Amount, now, s.RiderID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit rider: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = wallets.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at`,
		s.DriverID, s.Amount, now)
	if err != nil {
		return nil, fmt.Errorf("failed to credit driver: %w", err)
	}

	var tripID *string
	if s.TripID != "" {
		tripID = &s.TripID
	}
	entries := []*models.LedgerEntry{
		{ID: uuid.NewString(), TripID: tripID, UserID: s.RiderID, Kind: models.LedgerDebit, Amount: s.Amount, CreatedAt: now},
		{ID: uuid.NewString(), TripID: tripID, UserID: s.DriverID, Kind: models.LedgerCredit, Amount: s.Amount, CreatedAt: now},
	}
	for _, entry := range entries {
		if err := insertEntry(ctx, tx, entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func insertEntry(ctx context.Context, tx *sqlx.Tx, entry *models.LedgerEntry) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO ledger_entries (id, trip_id, user_id, kind, amount, created_at)
		VALUES (:id, :trip_id, :user_id, :kind, :amount, :created_at)`, entry)
	if err != nil {
		return fmt.Errorf("failed to write %s ledger entry: %w", entry.Kind, err)
	}
	return nil
}

// GetWallet returns a user's balance
func (r *BillingRepo) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "wallets", "SELECT")()

	var wallet models.Wallet
	err := r.db.GetContext(ctx, &wallet, `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrWalletNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// TopUp adds amount to a wallet, creating it when missing
func (r *BillingRepo) TopUp(ctx context.Context, userID string, amount float64) (*models.Wallet, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "wallets", "TOPUP")()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := models.Now()
	var wallet models.Wallet
	err = tx.GetContext(ctx, &wallet, `
		INSERT INTO wallets (user_id, balance, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = wallets.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
		RETURNING user_id, balance, updated_at`, userID, amount, now)
	if err != nil {
		return nil, fmt.Errorf("failed to top up wallet: %w", err)
	}

	entry := &models.LedgerEntry{ID: uuid.NewString(), UserID: userID, Kind: models.LedgerTopUp, Amount: amount, CreatedAt: now}
	if err := insertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit top up: %w", err)
	}
	return &wallet, nil
}

// ListEntries returns a user's newest ledger entries first
func (r *BillingRepo) ListEntries(ctx context.Context, userID string, limit int) ([]*models.LedgerEntry, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "ledger_entries", "SELECT")()

	entries := []*models.LedgerEntry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, trip_id, user_id, kind, amount, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}
