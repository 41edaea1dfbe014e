package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"origin", Point{0, 0}, true},
		{"north pole", Point{90, 0}, true},
		{"south pole", Point{-90, 0}, true},
		{"date line", Point{0, 180}, true},
		{"lat too high", Point{90.0001, 0}, false},
		{"lat too low", Point{-91, 0}, false},
		{"lng too high", Point{0, 180.5}, false},
		{"lng too low", Point{0, -181}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.Valid())
		})
	}
}

func TestDistance(t *testing.T) {
	// One degree of latitude is about 111.19 km on the 6371 km sphere.
	d := Distance(Point{0, 0}, Point{1, 0})
	assert.InDelta(t, 111195, d, 10)

	// Symmetry and identity.
	assert.Equal(t, Distance(Point{48.85, 2.35}, Point{51.5, -0.12}), Distance(Point{51.5, -0.12}, Point{48.85, 2.35}))
	assert.Zero(t, Distance(Point{48.85, 2.35}, Point{48.85, 2.35}))
}

func TestInCircleBoundaryInclusive(t *testing.T) {
	center := Point{52.52, 13.405}
	target := Point{52.53, 13.405}
	radius := Distance(center, target)

	// Exactly at distance == radius matches; radius+epsilon does not.
	assert.True(t, InCircle(target, center, radius))
	assert.False(t, InCircle(target, center, radius-0.001))
	assert.True(t, InCircle(target, center, radius+0.001))
}

func TestInCircleNegativeRadius(t *testing.T) {
	assert.False(t, InCircle(Point{0, 0}, Point{0, 0}, -1))
}

func TestInPolygonSquare(t *testing.T) {
	square := []Point{
		{0, 0},
		{0, 10},
		{10, 10},
		{10, 0},
	}

	assert.True(t, InPolygon(Point{5, 5}, square))
	assert.False(t, InPolygon(Point{15, 5}, square))
	assert.False(t, InPolygon(Point{-1, -1}, square))
}

func TestInPolygonNonConvex(t *testing.T) {
	// L-shape: the notch at the upper right is outside.
	lshape := []Point{
		{0, 0},
		{0, 10},
		{5, 10},
		{5, 5},
		{10, 5},
		{10, 0},
	}

	assert.True(t, InPolygon(Point{2, 2}, lshape))
	assert.True(t, InPolygon(Point{2, 8}, lshape))
	assert.False(t, InPolygon(Point{8, 8}, lshape))
}

func TestInPolygonBoundaryDeterministic(t *testing.T) {
	square := []Point{
		{0, 0},
		{0, 10},
		{10, 10},
		{10, 0},
	}
	edge := Point{0, 5}

	first := InPolygon(edge, square)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, InPolygon(edge, square))
	}
}

func TestInPolygonDegenerate(t *testing.T) {
	assert.False(t, InPolygon(Point{0, 0}, nil))
	assert.False(t, InPolygon(Point{0, 0}, []Point{{0, 0}, {1, 1}}))
}
