package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(core.Gray(0.9), 1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		result, scattered := glass.Scatter(ray, hit, random)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != glass.Albedo {
			t.Fatalf("Expected attenuation %v, got %v", glass.Albedo, result.Attenuation)
		}

		// Reflection leaves going up, refraction continues down
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	// Schlick gives ~5% reflection at 45 degrees for glass
	if !hasReflection {
		t.Error("Expected to see reflection in at least some cases")
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(core.Gray(1), 1.5)

	// Shallow ray exiting glass into air
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	random := rand.New(rand.NewSource(42))
	expected := rayDirection.Reflect(hit.Normal)
	for i := 0; i < 100; i++ {
		result, scattered := glass.Scatter(ray, hit, random)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name   string
		cosine float64
		ratio  float64
		want   float64
	}{
		{"normal incidence glass", 1.0, 1 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1 / 1.5, 1.0},
		{"matched index head-on", 1.0, 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflectance(tt.cosine, tt.ratio); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Reflectance(%f, %f) = %f, want %f", tt.cosine, tt.ratio, got, tt.want)
			}
		})
	}
}
