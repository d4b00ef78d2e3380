package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 40.0, -73.0, 40.0, -73.0, 0, 0.001},
		{"half arcminute north", 40.0000, -73.0000, 40.0005, -73.0000, 55.6, 1},
		{"one and a half arcminute north", 40.0000, -73.0000, 40.0015, -73.0000, 166.8, 1},
		{"jakarta to surabaya", -6.2088, 106.8456, -7.2575, 112.7521, 663000, 5000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CalculateHaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.want) > c.tolerance {
				t.Errorf("CalculateHaversineDistance() = %.2f, want %.2f ± %.2f", got, c.want, c.tolerance)
			}
		})
	}
}

func TestCalculateHaversineDistanceSymmetry(t *testing.T) {
	d1 := CalculateHaversineDistance(40.0, -73.0, 40.01, -73.02)
	d2 := CalculateHaversineDistance(40.01, -73.02, 40.0, -73.0)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}
