package core

import "testing"

func TestRay_At(t *testing.T) {
	ray := NewRayAt(NewVec3(0, 0, 0), NewVec3(5, 5, 5), 0.25)

	tests := []struct {
		name string
		t    float64
		want Vec3
	}{
		{"origin", 0, NewVec3(0, 0, 0)},
		{"halfway", 0.5, NewVec3(2.5, 2.5, 2.5)},
		{"behind origin", -1, NewVec3(-5, -5, -5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ray.At(tt.t); got != tt.want {
				t.Errorf("At(%f) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
	if NewRay(ray.Origin, ray.Direction).Time != 0 {
		t.Error("NewRay should sample time zero")
	}
}
