package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphericalDistanceKm(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		want       float64
		delta      float64
	}{
		{name: "same point", lat1: 35.6762, lon1: 139.6503, lat2: 35.6762, lon2: 139.6503, want: 0, delta: 1e-3},
		{name: "shibuya to akihabara", lat1: 35.659494, lon1: 139.700553, lat2: 35.698353, lon2: 139.773114, want: 7.8, delta: 0.3},
		{name: "one degree of longitude on equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 111.19, delta: 0.01},
		{name: "antipodes", lat1: 0, lon1: 0, lat2: 0, lon2: 180, want: math.Pi * earthRadiusKm, delta: 1e-6},
		{name: "pole to pole", lat1: 90, lon1: 0, lat2: -90, lon2: 0, want: math.Pi * earthRadiusKm, delta: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SphericalDistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestSphericalDistanceKm_Symmetric(t *testing.T) {
	a := SphericalDistanceKm(41.385064, 2.173404, 48.856613, 2.352222)
	b := SphericalDistanceKm(48.856613, 2.352222, 41.385064, 2.173404)
	assert.InDelta(t, a, b, 1e-9)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.1))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}

func TestClampRadius(t *testing.T) {
	assert.Equal(t, 1.0, ClampRadius(0, 1, 64))
	assert.Equal(t, 1.0, ClampRadius(-5, 1, 64))
	assert.Equal(t, 1.0, ClampRadius(math.NaN(), 1, 64))
	assert.Equal(t, 10.0, ClampRadius(10, 1, 64))
	assert.Equal(t, 64.0, ClampRadius(500, 1, 64))
}

func TestRoundCoordinate(t *testing.T) {
	assert.Equal(t, 0.123457, RoundCoordinate(0.1234567))
	assert.Equal(t, -33.86882, RoundCoordinate(-33.8688197))
	assert.Equal(t, 139.6503, RoundCoordinate(139.6503))
}
