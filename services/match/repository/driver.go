package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
)

// DriverRepo reads and writes driver profiles in Postgres
type DriverRepo struct {
	db *sqlx.DB
}

// NewDriverRepository creates a new driver profile repository
func NewDriverRepository(db *sqlx.DB) *DriverRepo {
	return &DriverRepo{db: db}
}

const selectDriver = `
	SELECT id, rating, service_type, offers_received, offers_accepted, updated_at
	FROM drivers`

// GetDriverProfiles loads the profiles of driverIDs keyed by ID. Drivers
// without a row are absent from the map.
func (r *DriverRepo) GetDriverProfiles(ctx context.Context, driverIDs []string) (map[string]*models.DriverProfile, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "drivers", "SELECT")()

	profiles := make(map[string]*models.DriverProfile, len(driverIDs))
	if len(driverIDs) == 0 {
		return profiles, nil
	}

	var rows []models.DriverProfile
	if err := r.db.SelectContext(ctx, &rows, selectDriver+` WHERE id = ANY($1)`, pq.Array(driverIDs)); err != nil {
		return nil, fmt.Errorf("failed to get driver profiles: %w", err)
	}
	for i := range rows {
		profiles[rows[i].DriverID] = &rows[i]
	}
	return profiles, nil
}

// GetDriverProfile loads a single profile
func (r *DriverRepo) GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "drivers", "SELECT")()

	var profile models.DriverProfile
	err := r.db.GetContext(ctx, &profile, selectDriver+` WHERE id = $1`, driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("driver %s: %w", driverID, models.ErrDriverNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver profile: %w", err)
	}
	return &profile, nil
}

// UpsertDriverProfile sets rating and service type. Offer counters are
// owned by the offer repository and left untouched on conflict.
func (r *DriverRepo) UpsertDriverProfile(ctx context.Context, profile *models.DriverProfile) error {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastorePostgres, "drivers", "UPSERT")()

	query := `
		INSERT INTO drivers (id, rating, service_type, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET rating = EXCLUDED.rating, service_type = EXCLUDED.service_type, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, profile.DriverID, profile.Rating, profile.ServiceType, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert driver profile: %w", err)
	}
	return nil
}
