package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
)

type driverEntry struct {
	record models.DriverLocationRecord
	// anchor is where the driver was when it last changed rooms
	anchor models.Location
}

// Directory keeps the current tile membership of drivers and observers.
// Each tile is a room; a party is in exactly one room at a time.
type Directory struct {
	mu            sync.RWMutex
	precision     uint
	minMovementKm float64

	drivers       map[string]*driverEntry
	observers     map[string]*models.ObserverWatch
	driverRooms   map[string]map[string]struct{}
	observerRooms map[string]map[string]struct{}
}

// NewDirectory creates an empty directory
func NewDirectory(precision uint, minMovementMeters float64) *Directory {
	if precision == 0 {
		precision = utils.DefaultTilePrecision
	}
	return &Directory{
		precision:     precision,
		minMovementKm: minMovementMeters / 1000,
		drivers:       make(map[string]*driverEntry),
		observers:     make(map[string]*models.ObserverWatch),
		driverRooms:   make(map[string]map[string]struct{}),
		observerRooms: make(map[string]map[string]struct{}),
	}
}

// Precision returns the tile length rooms are keyed by
func (d *Directory) Precision() uint {
	return d.precision
}

// UpsertDriver records the latest position of a driver. The room only
// changes when the tile differs and the driver has moved at least the
// minimum distance since its last room change. The coordinate is always
// refreshed. moved reports whether the driver joined or changed rooms.
func (d *Directory) UpsertDriver(driverID string, location models.Location, heading *float64, at time.Time) (record models.DriverLocationRecord, moved bool) {
	tile := utils.EncodeTile(location, d.precision)

	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.drivers[driverID]
	if !ok {
		entry = &driverEntry{
			record: models.DriverLocationRecord{DriverID: driverID, Tile: tile},
			anchor: location,
		}
		d.drivers[driverID] = entry
		join(d.driverRooms, tile, driverID)
		moved = true
	} else if tile != entry.record.Tile && utils.HaversineKm(entry.anchor, location) >= d.minMovementKm {
		leave(d.driverRooms, entry.record.Tile, driverID)
		join(d.driverRooms, tile, driverID)
		entry.record.Tile = tile
		entry.anchor = location
		moved = true
	}

	entry.record.Location = location
	entry.record.Heading = heading
	entry.record.UpdatedAt = at

	return entry.record, moved
}

// UpsertObserver replaces the observer's room with the tile of location
func (d *Directory) UpsertObserver(observerID string, location models.Location, at time.Time) models.ObserverWatch {
	tile := utils.EncodeTile(location, d.precision)

	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.observers[observerID]; ok {
		leave(d.observerRooms, prev.Tile, observerID)
	}
	watch := &models.ObserverWatch{
		ObserverID: observerID,
		Location:   location,
		Tile:       tile,
		UpdatedAt:  at,
	}
	d.observers[observerID] = watch
	join(d.observerRooms, tile, observerID)

	return *watch
}

// RemoveDriver drops a driver and reports whether it was present
func (d *Directory) RemoveDriver(driverID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.drivers[driverID]
	if !ok {
		return false
	}
	leave(d.driverRooms, entry.record.Tile, driverID)
	delete(d.drivers, driverID)
	return true
}

// RemoveObserver drops an observer and reports whether it was present
func (d *Directory) RemoveObserver(observerID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	watch, ok := d.observers[observerID]
	if !ok {
		return false
	}
	leave(d.observerRooms, watch.Tile, observerID)
	delete(d.observers, observerID)
	return true
}

// Driver returns the latest record of a driver
func (d *Directory) Driver(driverID string) (models.DriverLocationRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entry, ok := d.drivers[driverID]
	if !ok {
		return models.DriverLocationRecord{}, false
	}
	return entry.record, true
}

// Observer returns the current watch of an observer
func (d *Directory) Observer(observerID string) (models.ObserverWatch, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	watch, ok := d.observers[observerID]
	if !ok {
		return models.ObserverWatch{}, false
	}
	return *watch, true
}

// ObserversIn lists, sorted, the observers whose room is one of tiles
func (d *Directory) ObserversIn(tiles []string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return members(d.observerRooms, tiles)
}

// DriversIn lists, sorted, the drivers whose room is one of tiles
func (d *Directory) DriversIn(tiles []string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return members(d.driverRooms, tiles)
}

func join(rooms map[string]map[string]struct{}, tile, id string) {
	room, ok := rooms[tile]
	if !ok {
		room = make(map[string]struct{})
		rooms[tile] = room
	}
	room[id] = struct{}{}
}

func leave(rooms map[string]map[string]struct{}, tile, id string) {
	room, ok := rooms[tile]
	if !ok {
		return
	}
	delete(room, id)
	if len(room) == 0 {
		delete(rooms, tile)
	}
}

func members(rooms map[string]map[string]struct{}, tiles []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tile := range tiles {
		for id := range rooms[tile] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
