package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Elapsed      time.Duration // Wall time spent in Render
}

// PixelsPerMillisecond returns the throughput, or zero for an instant render
func (s RenderStats) PixelsPerMillisecond() float64 {
	ms := float64(s.Elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / ms
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d samples in %.2fs (%.1f pixels/ms)",
		s.TotalPixels, s.TotalSamples, s.Elapsed.Seconds(), s.PixelsPerMillisecond())
}

// ProgressFunc is told how many scanlines are complete after each one finishes
type ProgressFunc func(rowsDone, totalRows int)
