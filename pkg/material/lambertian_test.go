package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func upHit(m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1,
		FrontFace: true,
		Material:  m,
	}
}

func TestLambertian_ScattersIntoHemisphere(t *testing.T) {
	albedo := core.RGB(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	random := rand.New(rand.NewSource(42))
	hit := upHit(lambertian)
	ray := core.NewRayAt(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0.3)

	for i := 0; i < 500; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, random)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scatter direction %v points below the surface", scatter.Scattered.Direction)
		}
		if math.Abs(scatter.Scattered.Direction.Length()) > 2+1e-9 {
			t.Fatalf("normal + unit vector cannot exceed length 2, got %v", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Time != ray.Time {
			t.Fatalf("Scattered ray should keep time %f, got %f", ray.Time, scatter.Scattered.Time)
		}
	}
}

func TestLambertian_NeverEmits(t *testing.T) {
	if got := NewLambertian(core.Gray(1)).Emit(); got != core.Black() {
		t.Errorf("Expected black emission, got %v", got)
	}
}

func TestRandom_EveryKind(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			m, err := Random(kind, random)
			if err != nil {
				t.Fatalf("Random(%q) failed: %v", kind, err)
			}
			if m.Kind() != kind {
				t.Errorf("Expected kind %q, got %q", kind, m.Kind())
			}
		})
	}

	if _, err := Random(Kind("plasma"), random); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestRandomDielectric_IndexIsPhysical(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		d := RandomDielectric(random)
		if d.RefractiveIndex < 1.0 || d.RefractiveIndex >= 2.0 {
			t.Fatalf("refractive index %f outside [1, 2)", d.RefractiveIndex)
		}
		if d.Albedo.R < 0.5 || d.Albedo.R >= 1.0 {
			t.Fatalf("albedo %v outside [0.5, 1)", d.Albedo)
		}
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)
	tests := []struct {
		name      string
		direction core.Vec3
		frontFace bool
		normal    core.Vec3
	}{
		{"ray from outside", core.NewVec3(0, 0, -1), true, outward},
		{"ray from inside", core.NewVec3(0, 0, 1), false, outward.Negate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), outward)
			if hit.FrontFace != tt.frontFace {
				t.Errorf("Expected FrontFace=%v, got %v", tt.frontFace, hit.FrontFace)
			}
			if hit.Normal != tt.normal {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
			if hit.Normal.Dot(tt.direction) >= 0 {
				t.Errorf("Normal %v should face against the ray", hit.Normal)
			}
		})
	}
}
