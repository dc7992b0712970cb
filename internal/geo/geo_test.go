package geo

import "testing"

func TestInIndia(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{"pune", 18.5204, 73.8567, true},
		{"delhi", 28.6139, 77.2090, true},
		{"outside north-east", 40.0, 100.0, false},
		{"london", 51.5074, -0.1278, false},
		{"south of boundary", 6.4, 80.0, false},
		{"west of boundary", 20.0, 68.0, false},
		{"southern corner", 6.5, 68.1, true},
		{"northern corner", 35.7, 97.4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InIndia(tt.lat, tt.lng); got != tt.want {
				t.Fatalf("InIndia(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	d := HaversineKm(18.5, 73.8, 18.5, 73.8)
	if d < 0 || d > 1e-9 {
		t.Fatalf("zero distance expected ~0, got %v", d)
	}
}

func TestHaversineKm_PuneMumbai(t *testing.T) {
	// Pune to Mumbai is roughly 120 km as the crow flies.
	d := HaversineKm(18.5204, 73.8567, 19.0760, 72.8777)
	if d < 100 || d > 140 {
		t.Fatalf("Pune-Mumbai distance = %v km, want ~120 km", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(18.5204, 73.8567, 28.6139, 77.2090)
	b := HaversineKm(28.6139, 77.2090, 18.5204, 73.8567)
	if diff := a - b; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}
