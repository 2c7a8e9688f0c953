package renderer

import (
	"errors"
	"fmt"
)

// RenderSettings contains the per-scene sampling configuration
type RenderSettings struct {
	SamplesPerPixel int     // Number of jittered rays averaged per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Gamma           float64 // Gamma applied on encode; <= 0 means linear
	ShutterOpen     float64 // Start of the exposure interval
	ShutterClose    float64 // End of the exposure interval
}

// DefaultRenderSettings returns sensible default values
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Gamma:           2,
		ShutterOpen:     0,
		ShutterClose:    1,
	}
}

// Validate reports every setting that would make a render meaningless
func (s RenderSettings) Validate() error {
	var errs []error
	if s.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("samples per pixel must be at least 1, got %d", s.SamplesPerPixel))
	}
	if s.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max depth must be at least 1, got %d", s.MaxDepth))
	}
	if s.ShutterClose < s.ShutterOpen {
		errs = append(errs, fmt.Errorf("shutter closes at %v before it opens at %v", s.ShutterClose, s.ShutterOpen))
	}
	return errors.Join(errs...)
}
