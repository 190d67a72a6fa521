package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/database"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/utils"
)

// LocationRepo keeps the driver roster in Redis:
// a GEO set of positions, a hash per driver with the exact record,
// a set of drivers free to take offers and a status key per driver.
type LocationRepo struct {
	redisClient *database.RedisClient
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(redisClient *database.RedisClient) *LocationRepo {
	return &LocationRepo{
		redisClient: redisClient,
	}
}

// StoreDriverLocation writes the driver's position to the GEO set and its
// record hash. The hash expires after ttl so a silent driver drops out of
// matching.
func (r *LocationRepo) StoreDriverLocation(ctx context.Context, record *models.DriverLocationRecord, ttl time.Duration) error {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastoreRedis, constants.KeyDriverGeo, "GEOADD")()

	err := r.redisClient.GeoAdd(ctx, constants.KeyDriverGeo,
		record.Location.Longitude, record.Location.Latitude, record.DriverID)
	if err != nil {
		return fmt.Errorf("failed to add driver to geo set: %w", err)
	}

	values := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(record.Location.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(record.Location.Longitude, 'f', -1, 64),
		constants.FieldTile:      record.Tile,
		constants.FieldTimestamp: strconv.FormatInt(record.UpdatedAt.UnixMilli(), 10),
	}
	if record.Heading != nil {
		values[constants.FieldHeading] = strconv.FormatFloat(*record.Heading, 'f', -1, 64)
	}

	key := fmt.Sprintf(constants.KeyDriverLocation, record.DriverID)
	if err := r.redisClient.HSetWithTTL(ctx, key, ttl, values); err != nil {
		return fmt.Errorf("failed to store driver location: %w", err)
	}
	return nil
}

// RemoveDriverLocation deletes the driver's position
func (r *LocationRepo) RemoveDriverLocation(ctx context.Context, driverID string) error {
	if err := r.redisClient.GeoRemove(ctx, constants.KeyDriverGeo, driverID); err != nil {
		return fmt.Errorf("failed to remove driver from geo set: %w", err)
	}
	if err := r.redisClient.Delete(ctx, fmt.Sprintf(constants.KeyDriverLocation, driverID)); err != nil {
		return fmt.Errorf("failed to delete driver location: %w", err)
	}
	return nil
}

// GetDriverAvailability returns the stored status or "" when none is set
func (r *LocationRepo) GetDriverAvailability(ctx context.Context, driverID string) (models.DriverAvailability, error) {
	status, err := r.redisClient.Get(ctx, fmt.Sprintf(constants.KeyDriverStatus, driverID))
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get driver status: %w", err)
	}
	return models.DriverAvailability(status), nil
}

// SetDriverAvailability stores the status; only ONLINE drivers are in the
// available set
func (r *LocationRepo) SetDriverAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error {
	if err := r.redisClient.Set(ctx, fmt.Sprintf(constants.KeyDriverStatus, driverID), string(availability), 0); err != nil {
		return fmt.Errorf("failed to set driver status: %w", err)
	}

	var err error
	if availability == models.DriverOnline {
		err = r.redisClient.SAdd(ctx, constants.KeyAvailableDrivers, driverID)
	} else {
		err = r.redisClient.SRem(ctx, constants.KeyAvailableDrivers, driverID)
	}
	if err != nil {
		return fmt.Errorf("failed to update available drivers: %w", err)
	}
	return nil
}

// JoinRoster sets ONLINE with SETNX so a status written meanwhile wins
func (r *LocationRepo) JoinRoster(ctx context.Context, driverID string) (bool, error) {
	joined, err := r.redisClient.SetNX(ctx, fmt.Sprintf(constants.KeyDriverStatus, driverID), string(models.DriverOnline), 0)
	if err != nil {
		return false, fmt.Errorf("failed to set driver status: %w", err)
	}
	if !joined {
		return false, nil
	}
	if err := r.redisClient.SAdd(ctx, constants.KeyAvailableDrivers, driverID); err != nil {
		return false, fmt.Errorf("failed to update available drivers: %w", err)
	}
	return true, nil
}

// ClearDriverAvailability forgets the driver's status entirely
func (r *LocationRepo) ClearDriverAvailability(ctx context.Context, driverID string) error {
	if err := r.redisClient.SRem(ctx, constants.KeyAvailableDrivers, driverID); err != nil {
		return fmt.Errorf("failed to update available drivers: %w", err)
	}
	if err := r.redisClient.Delete(ctx, fmt.Sprintf(constants.KeyDriverStatus, driverID)); err != nil {
		return fmt.Errorf("failed to delete driver status: %w", err)
	}
	return nil
}

// FindOnlineDrivers searches the circle around bbox, keeps members that are
// available and still have a live record, then trims to the box itself.
// Availability and records of all hits are read in one pipeline.
func (r *LocationRepo) FindOnlineDrivers(ctx context.Context, bbox models.BoundingBox) ([]*models.DriverLocationRecord, error) {
	defer nrpkg.DatastoreSegment(ctx, newrelic.DatastoreRedis, constants.KeyDriverGeo, "GEORADIUS")()

	center := bbox.Center()
	hits, err := r.redisClient.GeoRadius(ctx, constants.KeyDriverGeo,
		center.Longitude, center.Latitude, utils.CircumscribedRadiusKm(bbox))
	if err != nil {
		return nil, fmt.Errorf("failed to query geo set: %w", err)
	}
	if len(hits) == 0 {
		return []*models.DriverLocationRecord{}, nil
	}

	pipe := r.redisClient.Pipeline()
	available := make([]*redis.BoolCmd, len(hits))
	locations := make([]*redis.StringStringMapCmd, len(hits))
	for i, hit := range hits {
		available[i] = pipe.SIsMember(ctx, constants.KeyAvailableDrivers, hit.Name)
		locations[i] = pipe.HGetAll(ctx, fmt.Sprintf(constants.KeyDriverLocation, hit.Name))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read driver roster: %w", err)
	}

	records := make([]*models.DriverLocationRecord, 0, len(hits))
	for i, hit := range hits {
		if !available[i].Val() {
			continue
		}
		fields := locations[i].Val()
		if len(fields) == 0 {
			// expired record, driver went silent
			continue
		}

		record, err := parseRecord(hit.Name, fields)
		if err != nil {
			return nil, err
		}
		if !bbox.Contains(record.Location) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRecord(driverID string, fields map[string]string) (*models.DriverLocationRecord, error) {
	lat, err := strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude for driver %s: %w", driverID, err)
	}
	lng, err := strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude for driver %s: %w", driverID, err)
	}

	record := &models.DriverLocationRecord{
		DriverID: driverID,
		Location: models.Location{Latitude: lat, Longitude: lng},
		Tile:     fields[constants.FieldTile],
	}
	if ts, err := strconv.ParseInt(fields[constants.FieldTimestamp], 10, 64); err == nil {
		record.UpdatedAt = time.UnixMilli(ts).UTC()
	}
	if raw, ok := fields[constants.FieldHeading]; ok {
		if heading, err := strconv.ParseFloat(raw, 64); err == nil {
			record.Heading = &heading
		}
	}
	return record, nil
}
