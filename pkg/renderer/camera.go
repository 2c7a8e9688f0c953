package renderer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all the parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, zero for a pinhole
	FocusDistance float64   // Distance to the focal plane; <= 0 uses |LookFrom - LookAt|
	ShutterOpen   float64   // Start of the exposure interval
	ShutterClose  float64   // End of the exposure interval
}

// DefaultCameraConfig looks down -Z from the origin with a 90 degree field of view
func DefaultCameraConfig(aspectRatio float64) CameraConfig {
	return CameraConfig{
		LookFrom:     core.NewVec3(0, 0, 0),
		LookAt:       core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		VFov:         90,
		AspectRatio:  aspectRatio,
		ShutterOpen:  0,
		ShutterClose: 1,
	}
}

// Camera generates rays for rendering. It is immutable once built.
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera derives the viewport from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.AspectRatio <= 0 || math.IsNaN(config.AspectRatio) {
		return nil, fmt.Errorf("aspect ratio must be positive, got %v", config.AspectRatio)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %v", config.VFov)
	}
	if config.Aperture < 0 {
		return nil, fmt.Errorf("aperture must not be negative, got %v", config.Aperture)
	}
	if config.ShutterClose < config.ShutterOpen {
		return nil, fmt.Errorf("shutter closes at %v before it opens at %v", config.ShutterClose, config.ShutterOpen)
	}

	view := config.LookFrom.Subtract(config.LookAt)
	if view.NearZero() {
		return nil, errors.New("camera position and target coincide")
	}
	w := view.Normalize()

	side := config.Up.Cross(w)
	if side.NearZero() {
		return nil, fmt.Errorf("up vector %v is parallel to the view direction", config.Up)
	}
	u := side.Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = view.Length()
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	origin := config.LookFrom
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray through image-plane coordinates (s, t), where (0, 0) is the
// bottom-left corner and (1, 1) the top-right. Call it once per sample: each call draws
// a fresh lens offset and shutter time.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := core.RandomFloat(random, c.config.ShutterOpen, c.config.ShutterClose)
	return core.NewRayAt(origin, direction, time)
}
