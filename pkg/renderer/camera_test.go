package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	config := CameraConfig{
		LookFrom:     core.NewVec3(3, 2, 1),
		LookAt:       core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		VFov:         45.0,
		AspectRatio:  16.0 / 9.0,
		ShutterClose: 1,
	}
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, rand.New(rand.NewSource(42)))
	want := config.LookAt.Subtract(config.LookFrom).Normalize()
	if diff := cmp.Diff(ray.Direction.Normalize(), want, approx); diff != "" {
		t.Errorf("center ray direction (-got +want):\n%s", diff)
	}
	if ray.Origin != config.LookFrom {
		t.Errorf("Pinhole ray should start at %v, got %v", config.LookFrom, ray.Origin)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig(2.0))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	random := rand.New(rand.NewSource(42))

	// 90 degree vertical fov at focus distance 1: the top edge is at y=1, right edge at x=2
	tests := []struct {
		name string
		s, t float64
		want core.Vec3
	}{
		{"bottom left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"top right", 1, 1, core.NewVec3(2, 1, -1)},
		{"top center", 0.5, 1, core.NewVec3(0, 1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, random)
			if diff := cmp.Diff(ray.Direction, tt.want, approx); diff != "" {
				t.Errorf("unexpected direction (-got +want):\n%s", diff)
			}
		})
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	config := DefaultCameraConfig(1)
	config.ShutterOpen = 0.25
	config.ShutterClose = 0.75
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	random := rand.New(rand.NewSource(42))
	minTime, maxTime := math.Inf(1), math.Inf(-1)
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, random)
		minTime = math.Min(minTime, ray.Time)
		maxTime = math.Max(maxTime, ray.Time)
	}
	if minTime < 0.25 || maxTime > 0.75 {
		t.Errorf("times [%f, %f] escape shutter interval [0.25, 0.75]", minTime, maxTime)
	}
	if maxTime-minTime < 0.4 {
		t.Errorf("times [%f, %f] do not cover the shutter interval", minTime, maxTime)
	}
}

func TestCamera_ApertureJittersOriginButKeepsFocus(t *testing.T) {
	config := DefaultCameraConfig(1)
	config.Aperture = 0.5
	config.FocusDistance = 4
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	random := rand.New(rand.NewSource(42))
	focusPoint := core.NewVec3(0, 0, -4)
	moved := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, random)
		offset := ray.Origin.Subtract(config.LookFrom)
		if offset.Length() > 0.25+1e-12 {
			t.Fatalf("lens offset %v exceeds lens radius", offset)
		}
		if offset.Z != 0 {
			t.Fatalf("lens offset %v should lie in the lens plane", offset)
		}
		if !offset.NearZero() {
			moved = true
		}
		// Every ray through the image center still passes through the focus point
		hitFocus := ray.At(1)
		if diff := cmp.Diff(hitFocus, focusPoint, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Fatalf("ray misses focus point (-got +want):\n%s", diff)
		}
	}
	if !moved {
		t.Error("Expected the lens to move ray origins")
	}
}

func TestNewCamera_Errors(t *testing.T) {
	valid := DefaultCameraConfig(1.5)

	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero view direction", func(c *CameraConfig) { c.LookAt = c.LookFrom }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
		{"zero aspect ratio", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"negative aspect ratio", func(c *CameraConfig) { c.AspectRatio = -1 }},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"straight fov", func(c *CameraConfig) { c.VFov = 180 }},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -0.1 }},
		{"reversed shutter", func(c *CameraConfig) { c.ShutterOpen, c.ShutterClose = 1, 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.modify(&config)
			if _, err := NewCamera(config); err == nil {
				t.Errorf("Expected error for %+v", config)
			}
		})
	}

	if _, err := NewCamera(valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
