package utils

import (
	"math"
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/dispatch/internal/pkg/models"
)

const (
	// EarthRadiusKm is the mean earth radius used for great-circle distances
	EarthRadiusKm = 6371.0

	// DefaultTilePrecision gives tiles of roughly 1.2km x 0.6km
	DefaultTilePrecision uint = 6

	minTilePrecision uint = 1
	maxTilePrecision uint = 12

	// bboxPadding widens derived boxes so float error never shrinks them
	bboxPadding = 1e-6
)

const tileAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// EncodeTile converts a location to a geohash tile of the given length.
// Precision is clamped to [1,12].
func EncodeTile(location models.Location, precision uint) string {
	if precision < minTilePrecision {
		precision = minTilePrecision
	}
	if precision > maxTilePrecision {
		precision = maxTilePrecision
	}
	lat, lng := normalize(location.Latitude, location.Longitude)
	return geohash.EncodeWithPrecision(lat, lng, precision)
}

// DecodeTile returns the centre point of a tile
func DecodeTile(tile string) models.Location {
	lat, lng := geohash.DecodeCenter(tile)
	return models.Location{Latitude: lat, Longitude: lng}
}

// ValidTile reports whether tile is a non-empty geohash of supported length
func ValidTile(tile string) bool {
	if len(tile) < int(minTilePrecision) || len(tile) > int(maxTilePrecision) {
		return false
	}
	for _, r := range tile {
		if !strings.ContainsRune(tileAlphabet, r) {
			return false
		}
	}
	return true
}

// Neighborhood returns exactly 9 tiles: the origin first, then N, NE, E, SE,
// S, SW, W, NW. Longitude wraps at the antimeridian; latitude clamps at the
// poles, so a polar tile may list itself (or a sibling) more than once.
func Neighborhood(tile string) []string {
	precision := uint(len(tile))
	box := geohash.BoundingBox(tile)
	lat, lng := box.Center()
	latStep := box.MaxLat - box.MinLat
	lngStep := box.MaxLng - box.MinLng

	offsets := [8][2]float64{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}

	tiles := make([]string, 0, 9)
	tiles = append(tiles, tile)
	for _, off := range offsets {
		nLat := clampLat(lat+off[0]*latStep, latStep)
		nLng := wrapLng(lng + off[1]*lngStep)
		tiles = append(tiles, geohash.EncodeWithPrecision(nLat, nLng, precision))
	}
	return tiles
}

// TileSet turns a tile slice into a membership set
func TileSet(tiles []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tiles))
	for _, t := range tiles {
		set[t] = struct{}{}
	}
	return set
}

// HaversineKm returns the great-circle distance between two points in kilometers
func HaversineKm(a, b models.Location) float64 {
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLat := lat2 - lat1
	dLng := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// BoundingBoxAround returns a box that contains every point within radiusKm
// of center. The box is never smaller than the circle.
func BoundingBoxAround(center models.Location, radiusKm float64) models.BoundingBox {
	if radiusKm < 0 {
		radiusKm = 0
	}
	ang := radiusKm/EarthRadiusKm*(1+bboxPadding) + bboxPadding*1e-3
	lat := toRad(center.Latitude)

	minLat := toDeg(lat - ang)
	maxLat := toDeg(lat + ang)
	if maxLat >= 90 || minLat <= -90 {
		return models.BoundingBox{
			MinLat: math.Max(minLat, -90),
			MaxLat: math.Min(maxLat, 90),
			MinLng: -180,
			MaxLng: 180,
		}
	}

	ratio := math.Sin(ang) / math.Cos(lat)
	if ratio >= 1 {
		return models.BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLng: -180, MaxLng: 180}
	}
	dLng := toDeg(math.Asin(ratio))
	minLng := center.Longitude - dLng
	maxLng := center.Longitude + dLng
	if minLng < -180 {
		minLng += 360
	}
	if maxLng > 180 {
		maxLng -= 360
	}
	return models.BoundingBox{MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng}
}

// CircumscribedRadiusKm is the distance from the box centre to its farthest
// corner, i.e. the radius of a circle that covers the whole box.
func CircumscribedRadiusKm(box models.BoundingBox) float64 {
	if box.MinLng == -180 && box.MaxLng == 180 {
		return math.Pi * EarthRadiusKm
	}
	center := box.Center()
	corners := []models.Location{
		{Latitude: box.MinLat, Longitude: box.MinLng},
		{Latitude: box.MinLat, Longitude: box.MaxLng},
		{Latitude: box.MaxLat, Longitude: box.MinLng},
		{Latitude: box.MaxLat, Longitude: box.MaxLng},
	}
	var radius float64
	for _, c := range corners {
		radius = math.Max(radius, HaversineKm(center, c))
	}
	return radius
}

func normalize(lat, lng float64) (float64, float64) {
	if lat >= 90 {
		lat = math.Nextafter(90, 0)
	}
	if lat < -90 {
		lat = -90
	}
	return lat, wrapLng(lng)
}

func clampLat(lat, step float64) float64 {
	if lat >= 90 {
		return 90 - step/2
	}
	if lat <= -90 {
		return -90 + step/2
	}
	return lat
}

func wrapLng(lng float64) float64 {
	for lng >= 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
