package usecase

import (
	"testing"
	"time"

	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork    = models.Location{Latitude: 40.7128, Longitude: -74.0060}
	oneBlock   = models.Location{Latitude: 40.7138, Longitude: -74.0050}
	losAngeles = models.Location{Latitude: 34.0522, Longitude: -118.2437}
	london     = models.Location{Latitude: 51.5074, Longitude: -0.1278}
)

func TestDirectory_UpsertDriver_FreshJoin(t *testing.T) {
	d := NewDirectory(6, 10)
	now := time.Now()

	record, moved := d.UpsertDriver("driver-1", newYork, nil, now)

	assert.True(t, moved)
	assert.Equal(t, utils.EncodeTile(newYork, 6), record.Tile)
	assert.Equal(t, []string{"driver-1"}, d.DriversIn([]string{record.Tile}))

	got, ok := d.Driver("driver-1")
	require.True(t, ok)
	assert.Equal(t, newYork, got.Location)
	assert.Equal(t, now, got.UpdatedAt)
}

func TestDirectory_UpsertDriver_MovementThreshold(t *testing.T) {
	// Arrange: a point just across a tile edge, a few metres away
	tile := utils.EncodeTile(newYork, 6)
	center := utils.DecodeTile(tile)
	neighbors := utils.Neighborhood(tile)
	east := utils.DecodeTile(neighbors[3])
	edgeLng := (center.Longitude + east.Longitude) / 2
	inside := models.Location{Latitude: center.Latitude, Longitude: edgeLng - 0.00002}
	across := models.Location{Latitude: center.Latitude, Longitude: edgeLng + 0.00002}
	require.NotEqual(t, utils.EncodeTile(inside, 6), utils.EncodeTile(across, 6))

	d := NewDirectory(6, 10)
	d.UpsertDriver("driver-1", inside, nil, time.Now())

	// Act: crossing the edge by ~3m stays in the old room
	record, moved := d.UpsertDriver("driver-1", across, nil, time.Now())

	// Assert
	assert.False(t, moved)
	assert.Equal(t, utils.EncodeTile(inside, 6), record.Tile)
	assert.Equal(t, across, record.Location, "coordinate is always refreshed")

	// moving well past the threshold changes rooms
	far := models.Location{Latitude: center.Latitude, Longitude: edgeLng + 0.001}
	record, moved = d.UpsertDriver("driver-1", far, nil, time.Now())
	assert.True(t, moved)
	assert.Equal(t, utils.EncodeTile(far, 6), record.Tile)
	assert.Empty(t, d.DriversIn([]string{utils.EncodeTile(inside, 6)}))
	assert.Equal(t, []string{"driver-1"}, d.DriversIn([]string{record.Tile}))
}

func TestDirectory_UpsertObserver_ReplacesMembership(t *testing.T) {
	d := NewDirectory(6, 10)

	first := d.UpsertObserver("rider-1", newYork, time.Now())
	second := d.UpsertObserver("rider-1", london, time.Now())

	assert.NotEqual(t, first.Tile, second.Tile)
	assert.Empty(t, d.ObserversIn([]string{first.Tile}))
	assert.Equal(t, []string{"rider-1"}, d.ObserversIn([]string{second.Tile}))
}

func TestDirectory_Remove(t *testing.T) {
	d := NewDirectory(6, 10)
	record, _ := d.UpsertDriver("driver-1", newYork, nil, time.Now())
	watch := d.UpsertObserver("rider-1", newYork, time.Now())

	assert.True(t, d.RemoveDriver("driver-1"))
	assert.False(t, d.RemoveDriver("driver-1"))
	assert.True(t, d.RemoveObserver("rider-1"))
	assert.False(t, d.RemoveObserver("rider-1"))

	_, ok := d.Driver("driver-1")
	assert.False(t, ok)
	assert.Empty(t, d.DriversIn([]string{record.Tile}))
	assert.Empty(t, d.ObserversIn([]string{watch.Tile}))
}

func TestDirectory_ObserversIn_SortedAndDeduplicated(t *testing.T) {
	d := NewDirectory(6, 10)
	d.UpsertObserver("rider-b", newYork, time.Now())
	d.UpsertObserver("rider-a", oneBlock, time.Now())
	d.UpsertObserver("rider-c", losAngeles, time.Now())

	tiles := utils.Neighborhood(utils.EncodeTile(newYork, 6))
	tiles = append(tiles, tiles...)

	assert.Equal(t, []string{"rider-a", "rider-b"}, d.ObserversIn(tiles))
}

func TestNewDirectory_DefaultPrecision(t *testing.T) {
	d := NewDirectory(0, 10)
	assert.Equal(t, utils.DefaultTilePrecision, d.Precision())
}
