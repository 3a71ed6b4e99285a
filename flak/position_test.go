package flak

import "testing"

func TestDistanceTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want float64
	}{
		{"same point", Position{0, 0, 0}, Position{0, 0, 0}, 0},
		{"3-4-5 triangle", Position{0, 0, 0}, Position{3, 4, 0}, 5},
		{"z ignored", Position{0, 0, 0}, Position{3, 4, 9999}, 5},
		{"negative coords", Position{-3, -4, 0}, Position{0, 0, 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceTo(tt.b); got != tt.want {
				t.Errorf("DistanceTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDistanceLERadius(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Position
		radius int32
		want   bool
	}{
		{"exact radius", Position{0, 0, 0}, Position{3, 4, 0}, 5, true},
		{"just outside", Position{0, 0, 0}, Position{3, 4, 0}, 4, false},
		{"bbox reject", Position{0, 0, 0}, Position{1000, 0, 0}, 5, false},
		{"well within", Position{0, 0, 0}, Position{1, 1, 0}, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsDistanceLERadius(tt.b, tt.radius); got != tt.want {
				t.Errorf("IsDistanceLERadius() = %v, want %v", got, tt.want)
			}
		})
	}
}
