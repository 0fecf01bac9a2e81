package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	paris  = Point{Lat: 48.8566, Lon: 2.3522}
	london = Point{Lat: 51.5074, Lon: -0.1278}
	berlin = Point{Lat: 52.5200, Lon: 13.4050}
)

func TestCalculateDistance(t *testing.T) {
	// Paris to London is roughly 344 km great-circle.
	d := CalculateDistance(paris, london)
	assert.InDelta(t, 344, d, 5)

	// Paris to Berlin is roughly 878 km.
	d = CalculateDistance(paris, berlin)
	assert.InDelta(t, 878, d, 10)
}

func TestCalculateDistanceZero(t *testing.T) {
	assert.Zero(t, CalculateDistance(paris, paris))
}

func TestCalculateDistanceSymmetric(t *testing.T) {
	assert.InDelta(t, CalculateDistance(paris, london), CalculateDistance(london, paris), 1e-9)
}

func TestIsWithinRadius(t *testing.T) {
	assert.True(t, IsWithinRadius(paris, london, 400))
	assert.False(t, IsWithinRadius(paris, london, 300))
	assert.True(t, IsWithinRadius(paris, paris, 0))
}
