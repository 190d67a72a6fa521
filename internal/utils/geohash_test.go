package utils

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomLocation(r *rand.Rand) models.Location {
	return models.Location{
		Latitude:  r.Float64()*180 - 90,
		Longitude: r.Float64()*360 - 180,
	}
}

func TestEncodeTile_PrefixProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		loc := randomLocation(r)
		for p1 := uint(1); p1 < 12; p1++ {
			for p2 := p1 + 1; p2 <= 12; p2++ {
				short := EncodeTile(loc, p1)
				long := EncodeTile(loc, p2)
				require.True(t, strings.HasPrefix(long, short),
					"encode(%v,%d)=%s must start with encode(%v,%d)=%s", loc, p2, long, loc, p1, short)
			}
		}
	}
}

func TestEncodeTile_Idempotent(t *testing.T) {
	loc := models.Location{Latitude: 34.5260, Longitude: 69.1777}

	first := EncodeTile(loc, 6)
	second := EncodeTile(loc, 6)

	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
	assert.True(t, ValidTile(first))
}

func TestEncodeTile_PrecisionClamped(t *testing.T) {
	loc := models.Location{Latitude: -6.175392, Longitude: 106.827153}

	assert.Len(t, EncodeTile(loc, 0), 1)
	assert.Len(t, EncodeTile(loc, 20), 12)
}

func TestEncodeTile_Edges(t *testing.T) {
	tests := []struct {
		name string
		loc  models.Location
	}{
		{name: "north pole", loc: models.Location{Latitude: 90, Longitude: 0}},
		{name: "south pole", loc: models.Location{Latitude: -90, Longitude: 0}},
		{name: "antimeridian east", loc: models.Location{Latitude: 0, Longitude: 180}},
		{name: "antimeridian west", loc: models.Location{Latitude: 0, Longitude: -180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := EncodeTile(tt.loc, 6)
			assert.True(t, ValidTile(tile), tile)

			center := DecodeTile(tile)
			assert.Less(t, HaversineKm(center, tt.loc), 2.0)
		})
	}

	// 180 and -180 are the same meridian
	assert.Equal(t,
		EncodeTile(models.Location{Latitude: 10, Longitude: 180}, 7),
		EncodeTile(models.Location{Latitude: 10, Longitude: -180}, 7))
}

func TestNeighborhood_Completeness(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		tile := EncodeTile(randomLocation(r), uint(1+r.Intn(9)))

		hood := Neighborhood(tile)

		require.Len(t, hood, 9)
		assert.Equal(t, tile, hood[0])
		assert.Contains(t, hood, tile)
		for _, n := range hood {
			assert.Len(t, n, len(tile))
		}
	}
}

func TestNeighborhood_MatchesLibraryAwayFromEdges(t *testing.T) {
	tile := EncodeTile(models.Location{Latitude: -6.175392, Longitude: 106.827153}, 6)

	hood := Neighborhood(tile)

	assert.Equal(t, geohash.Neighbors(tile), hood[1:])
	assert.Len(t, TileSet(hood), 9, "interior neighbourhood has no duplicates")
}

func TestNeighborhood_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		loc      models.Location
		distinct int
	}{
		{name: "north pole clamps", loc: models.Location{Latitude: 90, Longitude: 10}, distinct: 6},
		{name: "south pole clamps", loc: models.Location{Latitude: -90, Longitude: 10}, distinct: 6},
		{name: "antimeridian wraps", loc: models.Location{Latitude: 0.5, Longitude: 179.999}, distinct: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := EncodeTile(tt.loc, 5)

			var hood []string
			assert.NotPanics(t, func() { hood = Neighborhood(tile) })

			require.Len(t, hood, 9)
			assert.Contains(t, hood, tile)
			assert.Len(t, TileSet(hood), tt.distinct)
		})
	}
}

func TestNeighborhood_AntimeridianNeighbourIsOnOtherSide(t *testing.T) {
	east := EncodeTile(models.Location{Latitude: 0.5, Longitude: 179.99}, 5)
	west := EncodeTile(models.Location{Latitude: 0.5, Longitude: -179.99}, 5)

	assert.Contains(t, Neighborhood(east), west)
	assert.Contains(t, Neighborhood(west), east)
}

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      models.Location
		expected  float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         models.Location{Latitude: -6.175392, Longitude: 106.827153},
			b:         models.Location{Latitude: -6.175392, Longitude: 106.827153},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "Jakarta to Bandung",
			a:         models.Location{Latitude: -6.175392, Longitude: 106.827153},
			b:         models.Location{Latitude: -6.914744, Longitude: 107.609810},
			expected:  120,
			tolerance: 10,
		},
		{
			name:      "cross 180th meridian",
			a:         models.Location{Latitude: 0, Longitude: 179},
			b:         models.Location{Latitude: 0, Longitude: -179},
			expected:  222.4,
			tolerance: 1,
		},
		{
			name:      "pole to pole",
			a:         models.Location{Latitude: 90, Longitude: 0},
			b:         models.Location{Latitude: -90, Longitude: 0},
			expected:  math.Pi * EarthRadiusKm,
			tolerance: 0.01,
		},
		{
			name:      "New York to Los Angeles",
			a:         models.Location{Latitude: 40.7128, Longitude: -74.0060},
			b:         models.Location{Latitude: 34.0522, Longitude: -118.2437},
			expected:  3936,
			tolerance: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HaversineKm(tt.a, tt.b), tt.tolerance)
		})
	}
}

// destination returns the point reached by travelling distKm from origin on bearing (degrees)
func destination(origin models.Location, distKm, bearing float64) models.Location {
	delta := distKm / EarthRadiusKm
	theta := toRad(bearing)
	phi1 := toRad(origin.Latitude)
	lambda1 := toRad(origin.Longitude)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	return models.Location{Latitude: toDeg(phi2), Longitude: wrapLng(toDeg(lambda2))}
}

func TestBoundingBoxAround_IsSupersetOfCircle(t *testing.T) {
	centers := []models.Location{
		{Latitude: 34.5260, Longitude: 69.1777},
		{Latitude: -6.175392, Longitude: 106.827153},
		{Latitude: 64.1466, Longitude: -21.9426},
		{Latitude: 0.2, Longitude: 179.98},
		{Latitude: -33.8688, Longitude: -179.99},
	}
	radii := []float64{0.5, 5, 25, 300}

	for _, c := range centers {
		for _, radius := range radii {
			box := BoundingBoxAround(c, radius)
			for bearing := 0.0; bearing < 360; bearing += 1 {
				p := destination(c, radius, bearing)
				require.True(t, box.Contains(p),
					"center %v radius %.1f bearing %.0f point %v outside %+v", c, radius, bearing, p, box)
			}
			assert.True(t, box.Contains(c))
		}
	}
}

func TestBoundingBoxAround_PolarAndAntimeridian(t *testing.T) {
	t.Run("pole inside radius spans all longitudes", func(t *testing.T) {
		box := BoundingBoxAround(models.Location{Latitude: 89.99, Longitude: 12}, 5)

		assert.Equal(t, -180.0, box.MinLng)
		assert.Equal(t, 180.0, box.MaxLng)
		assert.Equal(t, 90.0, box.MaxLat)
	})

	t.Run("box crosses antimeridian", func(t *testing.T) {
		box := BoundingBoxAround(models.Location{Latitude: 0, Longitude: 179.99}, 5)

		assert.True(t, box.CrossesAntimeridian())
		assert.True(t, box.Contains(models.Location{Latitude: 0, Longitude: -179.99}))
		assert.False(t, box.Contains(models.Location{Latitude: 0, Longitude: 0}))
	})
}

func TestCircumscribedRadiusKm(t *testing.T) {
	center := models.Location{Latitude: 34.5260, Longitude: 69.1777}
	box := BoundingBoxAround(center, 5)

	radius := CircumscribedRadiusKm(box)

	assert.GreaterOrEqual(t, radius, 5.0)
	assert.Less(t, radius, 5*math.Sqrt2+0.1)
}

func BenchmarkNeighborhood(b *testing.B) {
	tile := EncodeTile(models.Location{Latitude: -6.175392, Longitude: 106.827153}, 6)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Neighborhood(tile)
	}
}

func BenchmarkHaversineKm(b *testing.B) {
	p1 := models.Location{Latitude: -6.175392, Longitude: 106.827153}
	p2 := models.Location{Latitude: -6.914744, Longitude: 107.609810}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		HaversineKm(p1, p2)
	}
}
