package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/database"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a new miniredis server and a repository connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *LocationRepo) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewLocationRepository(&database.RedisClient{Client: client})
}

func record(driverID string, loc models.Location) *models.DriverLocationRecord {
	return &models.DriverLocationRecord{
		DriverID:  driverID,
		Location:  loc,
		Tile:      utils.EncodeTile(loc, 6),
		UpdatedAt: time.UnixMilli(1700000000000).UTC(),
	}
}

// Kabul, with drivers spread over a few kilometres
var (
	pickup  = models.Location{Latitude: 34.5260, Longitude: 69.1777}
	nearby  = models.Location{Latitude: 34.5290, Longitude: 69.1800}
	further = models.Location{Latitude: 34.5500, Longitude: 69.2000}
	distant = models.Location{Latitude: 34.8000, Longitude: 69.5000}
)

func TestStoreDriverLocation(t *testing.T) {
	// Arrange
	mr, repo := setupMiniredis(t)
	ctx := context.Background()
	heading := 45.5
	rec := record("driver-1", nearby)
	rec.Heading = &heading

	// Act
	err := repo.StoreDriverLocation(ctx, rec, time.Minute)

	// Assert
	require.NoError(t, err)
	key := fmt.Sprintf(constants.KeyDriverLocation, "driver-1")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, "34.529", mr.HGet(key, constants.FieldLatitude))
	assert.Equal(t, "45.5", mr.HGet(key, constants.FieldHeading))
	assert.Equal(t, rec.Tile, mr.HGet(key, constants.FieldTile))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestStoreDriverLocation_RedisError(t *testing.T) {
	mr, repo := setupMiniredis(t)
	mr.Close()

	err := repo.StoreDriverLocation(context.Background(), record("driver-1", nearby), time.Minute)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add driver to geo set")
}

func TestDriverAvailability(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()

	status, err := repo.GetDriverAvailability(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, models.DriverAvailability(""), status)

	require.NoError(t, repo.SetDriverAvailability(ctx, "driver-1", models.DriverOnline))
	status, err = repo.GetDriverAvailability(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, models.DriverOnline, status)
	assert.True(t, isMember(t, mr, "driver-1"))

	require.NoError(t, repo.SetDriverAvailability(ctx, "driver-1", models.DriverBusy))
	assert.False(t, isMember(t, mr, "driver-1"))

	require.NoError(t, repo.ClearDriverAvailability(ctx, "driver-1"))
	status, err = repo.GetDriverAvailability(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, models.DriverAvailability(""), status)
}

func TestJoinRoster(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()

	joined, err := repo.JoinRoster(ctx, "driver-1")
	require.NoError(t, err)
	assert.True(t, joined)
	assert.True(t, isMember(t, mr, "driver-1"))

	require.NoError(t, repo.SetDriverAvailability(ctx, "driver-1", models.DriverOffline))
	joined, err = repo.JoinRoster(ctx, "driver-1")
	require.NoError(t, err)
	assert.False(t, joined, "an existing status is never overwritten")

	status, err := repo.GetDriverAvailability(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, models.DriverOffline, status)
	assert.False(t, isMember(t, mr, "driver-1"))
}

func isMember(t *testing.T, mr *miniredis.Miniredis, driverID string) bool {
	t.Helper()
	ok, err := mr.SIsMember(constants.KeyAvailableDrivers, driverID)
	if err != nil {
		return false
	}
	return ok
}

func TestFindOnlineDrivers(t *testing.T) {
	// Arrange
	mr, repo := setupMiniredis(t)
	ctx := context.Background()

	for id, loc := range map[string]models.Location{
		"online-near": nearby, "online-further": further, "online-distant": distant,
		"busy-near": nearby, "expired-near": nearby,
	} {
		require.NoError(t, repo.StoreDriverLocation(ctx, record(id, loc), time.Minute))
	}
	require.NoError(t, repo.SetDriverAvailability(ctx, "online-near", models.DriverOnline))
	require.NoError(t, repo.SetDriverAvailability(ctx, "online-further", models.DriverOnline))
	require.NoError(t, repo.SetDriverAvailability(ctx, "online-distant", models.DriverOnline))
	require.NoError(t, repo.SetDriverAvailability(ctx, "busy-near", models.DriverBusy))
	require.NoError(t, repo.SetDriverAvailability(ctx, "expired-near", models.DriverOnline))
	mr.Del(fmt.Sprintf(constants.KeyDriverLocation, "expired-near"))

	// Act
	records, err := repo.FindOnlineDrivers(ctx, utils.BoundingBoxAround(pickup, 5))

	// Assert
	require.NoError(t, err)
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.DriverID)
	}
	assert.ElementsMatch(t, []string{"online-near", "online-further"}, ids)
	for _, r := range records {
		if r.DriverID == "online-near" {
			assert.Equal(t, nearby, r.Location, "exact coordinate comes from the record hash")
			assert.Equal(t, time.UnixMilli(1700000000000).UTC(), r.UpdatedAt)
		}
	}
}

// roundTrips counts commands and pipelines sent to Redis
type roundTrips struct {
	commands  int
	pipelines int
	queued    int
}

func (h *roundTrips) BeforeProcess(ctx context.Context, _ redis.Cmder) (context.Context, error) {
	h.commands++
	return ctx, nil
}

func (h *roundTrips) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *roundTrips) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	h.pipelines++
	h.queued += len(cmds)
	return ctx, nil
}

func (h *roundTrips) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func TestFindOnlineDrivers_SingleRosterRoundTrip(t *testing.T) {
	// Arrange
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewLocationRepository(&database.RedisClient{Client: client})
	ctx := context.Background()

	for _, id := range []string{"driver-1", "driver-2", "driver-3"} {
		require.NoError(t, repo.StoreDriverLocation(ctx, record(id, nearby), time.Minute))
		require.NoError(t, repo.SetDriverAvailability(ctx, id, models.DriverOnline))
	}
	hook := &roundTrips{}
	client.AddHook(hook)

	// Act
	records, err := repo.FindOnlineDrivers(ctx, utils.BoundingBoxAround(pickup, 5))

	// Assert
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 1, hook.commands, "only the geo query goes alone")
	assert.Equal(t, 1, hook.pipelines)
	assert.Equal(t, 6, hook.queued)
}

func TestFindOnlineDrivers_NoHits(t *testing.T) {
	_, repo := setupMiniredis(t)

	records, err := repo.FindOnlineDrivers(context.Background(), utils.BoundingBoxAround(pickup, 5))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFindOnlineDrivers_TTLExpiry(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()
	require.NoError(t, repo.StoreDriverLocation(ctx, record("driver-1", nearby), time.Minute))
	require.NoError(t, repo.SetDriverAvailability(ctx, "driver-1", models.DriverOnline))

	mr.FastForward(2 * time.Minute)

	records, err := repo.FindOnlineDrivers(ctx, utils.BoundingBoxAround(pickup, 5))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRemoveDriverLocation(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()
	require.NoError(t, repo.StoreDriverLocation(ctx, record("driver-1", nearby), time.Minute))
	require.NoError(t, repo.SetDriverAvailability(ctx, "driver-1", models.DriverOnline))

	require.NoError(t, repo.RemoveDriverLocation(ctx, "driver-1"))

	assert.False(t, mr.Exists(fmt.Sprintf(constants.KeyDriverLocation, "driver-1")))
	records, err := repo.FindOnlineDrivers(ctx, utils.BoundingBoxAround(pickup, 5))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRecord_InvalidLatitude(t *testing.T) {
	_, err := parseRecord("driver-1", map[string]string{constants.FieldLatitude: "north"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid latitude")
}
