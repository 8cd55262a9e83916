package maps

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"same point", 25.0330, 121.5654, 25.0330, 121.5654, 0, 0.001},
		{"taipei 101 to taipei main station", 25.0330, 121.5654, 25.0478, 121.5170, 5.2, 0.5},
		{"lisbon to porto", 38.7223, -9.1393, 41.1496, -8.6110, 274, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %.3f, want %.3f ± %.3f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestSortByDistance(t *testing.T) {
	type poi struct {
		name string
		dist float64
	}
	items := []poi{{"c", 3000}, {"a", 100}, {"b", 1500}}

	sortByDistance(items, func(p poi) float64 { return p.dist })

	want := []string{"a", "b", "c"}
	for i, w := range want {
		if items[i].name != w {
			t.Errorf("items[%d] = %s, want %s", i, items[i].name, w)
		}
	}
}

func TestCacheKeyRoundsCoordinates(t *testing.T) {
	if cacheKey(25.03304, 121.56541) != cacheKey(25.03297, 121.56549) {
		t.Error("neighbouring coordinates should share a cache key")
	}
	if cacheKey(25.0, 121.0) == cacheKey(26.0, 121.0) {
		t.Error("distant coordinates must not collide")
	}
}
