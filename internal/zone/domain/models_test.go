package domain

import (
	"testing"

	"github.com/smallbiznis/geotoll/internal/geo"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func float64Ptr(v float64) *float64 { return &v }

func circleZone(lat, lng, radius float64) *Zone {
	return &Zone{
		Name:         "circle",
		CenterLat:    float64Ptr(lat),
		CenterLng:    float64Ptr(lng),
		RadiusMeters: float64Ptr(radius),
	}
}

func polygonZone(vertices ...geo.Point) *Zone {
	return &Zone{
		Name:          "polygon",
		PolygonPoints: datatypes.NewJSONSlice(vertices),
	}
}

func TestContainsCircle(t *testing.T) {
	zone := circleZone(52.52, 13.405, 100)

	assert.True(t, zone.Contains(geo.Point{Lat: 52.52, Lng: 13.405}))
	assert.True(t, zone.Contains(geo.Point{Lat: 52.5205, Lng: 13.405}))  // ~56 m north
	assert.False(t, zone.Contains(geo.Point{Lat: 52.5220, Lng: 13.405})) // ~222 m north
}

func TestContainsPolygon(t *testing.T) {
	zone := polygonZone(
		geo.Point{Lat: 0, Lng: 0},
		geo.Point{Lat: 0, Lng: 10},
		geo.Point{Lat: 10, Lng: 10},
		geo.Point{Lat: 10, Lng: 0},
	)

	assert.True(t, zone.Contains(geo.Point{Lat: 5, Lng: 5}))
	assert.False(t, zone.Contains(geo.Point{Lat: 15, Lng: 5}))
}

func TestContainsUnionSemantics(t *testing.T) {
	// Circle around (50,50), polygon around the origin. Either match wins.
	zone := circleZone(50, 50, 1000)
	zone.PolygonPoints = datatypes.NewJSONSlice([]geo.Point{
		{Lat: -1, Lng: -1},
		{Lat: -1, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: -1},
	})

	assert.True(t, zone.Contains(geo.Point{Lat: 50, Lng: 50}))
	assert.True(t, zone.Contains(geo.Point{Lat: 0, Lng: 0}))
	assert.False(t, zone.Contains(geo.Point{Lat: 25, Lng: 25}))
}

func TestContainsNoDescriptor(t *testing.T) {
	zone := &Zone{Name: "bare"}

	assert.False(t, zone.HasGeofence())
	assert.False(t, zone.Contains(geo.Point{Lat: 0, Lng: 0}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		zone    *Zone
		wantErr error
	}{
		{"valid circle", circleZone(10, 10, 50), nil},
		{"zero radius ok", circleZone(10, 10, 0), nil},
		{"negative radius", circleZone(10, 10, -5), ErrInvalidRadius},
		{"partial circle", &Zone{Name: "x", CenterLat: float64Ptr(10)}, ErrInvalidCircle},
		{"center out of range", circleZone(95, 10, 50), ErrInvalidCoordinates},
		{"no descriptor ok", &Zone{Name: "bare"}, nil},
		{"missing name", &Zone{}, ErrInvalidName},
		{
			"two-vertex polygon",
			&Zone{Name: "x", PolygonPoints: datatypes.NewJSONSlice([]geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}})},
			ErrInvalidPolygon,
		},
		{
			"polygon vertex out of range",
			polygonZone(geo.Point{Lat: 0, Lng: 0}, geo.Point{Lat: 0, Lng: 181}, geo.Point{Lat: 1, Lng: 1}),
			ErrInvalidCoordinates,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.zone.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
