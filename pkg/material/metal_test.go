package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.Gray(0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestSpecular_PerfectReflection(t *testing.T) {
	albedo := core.Gray(0.9)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}
	expected := core.NewVec3(0, -1, 1).Normalize()

	tests := []struct {
		name     string
		material Material
	}{
		{"metal without fuzz", NewMetal(albedo, 0)},
		{"mirror", NewMirror(albedo)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scatter, didScatter := tt.material.Scatter(rayIn, hit, random)
			if !didScatter {
				t.Fatal("Expected reflection")
			}
			actual := scatter.Scattered.Direction.Normalize()
			if actual.Subtract(expected).Length() > 1e-10 {
				t.Errorf("Expected %v, got %v", expected, actual)
			}
			if scatter.Attenuation != albedo {
				t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
			}
		})
	}
}

func TestMetal_GrazingFuzzIsAbsorbed(t *testing.T) {
	// Nearly tangent incoming ray with full fuzz: some samples must be pushed below the surface
	metal := NewMetal(core.Gray(0.9), 1.0)
	random := rand.New(rand.NewSource(42))
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, random)
		if !ok {
			absorbed++
			continue
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("accepted scatter %v points into the surface", scatter.Scattered.Direction)
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing rays to be absorbed")
	}
}

func TestPassthroughMaterials(t *testing.T) {
	rayIn := core.NewRayAt(core.NewVec3(0, 2, 0), core.NewVec3(0.3, -1, 0.2), 0.7)
	hit := HitRecord{Point: core.NewVec3(0.1, 0, 0.2), Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	random := rand.New(rand.NewSource(1))

	tests := []struct {
		name        string
		material    Material
		attenuation core.Color
	}{
		{"filter", NewFilter(core.RGB(0.2, 0.4, 0.8), 0.5), core.RGB(0.1, 0.2, 0.4)},
		{"normal", NewNormal(0.5, 1), core.RGB(0.5, 1.0, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scatter, ok := tt.material.Scatter(rayIn, hit, random)
			if !ok {
				t.Fatal("Expected passthrough scatter")
			}
			if scatter.Scattered.Direction != rayIn.Direction {
				t.Errorf("Direction should be unchanged, got %v", scatter.Scattered.Direction)
			}
			if scatter.Scattered.Origin != hit.Point {
				t.Errorf("Origin should be the hit point, got %v", scatter.Scattered.Origin)
			}
			if scatter.Attenuation != tt.attenuation {
				t.Errorf("Expected attenuation %v, got %v", tt.attenuation, scatter.Attenuation)
			}
		})
	}
}

func TestTerminatingMaterials(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := upHit(nil)

	light := NewLight(core.RGB(0.5, 0.5, 0.1), 8)
	for i := 0; i < 100; i++ {
		if _, ok := light.Scatter(ray, hit, random); ok {
			t.Fatal("Light should never scatter")
		}
	}
	if got, want := light.Emit(), light.Albedo.Multiply(light.Intensity); got != want {
		t.Errorf("Expected emission %v, got %v", want, got)
	}
	if got := light.Emit(); got != core.RGB(4, 4, 0.8) {
		t.Errorf("Expected emission (4, 4, 0.8), got %v", got)
	}

	absorber := NewAbsorber()
	if _, ok := absorber.Scatter(ray, hit, random); ok {
		t.Error("Absorber should never scatter")
	}
	if got := absorber.Emit(); got != core.Black() {
		t.Errorf("Absorber should emit black, got %v", got)
	}
}
