package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

const tracerName = "github.com/df07/go-pathtracer/pkg/renderer"

// ImageSink receives averaged pixels. Row 0 is the bottom scanline.
type ImageSink interface {
	SetPixel(col, row int, c core.Color)
	Finalize(gamma float64) error
}

// Options tunes how a render is scheduled. The zero value is usable.
type Options struct {
	Workers    int                   // Parallel column chunks per scanline; <= 0 uses runtime.NumCPU
	Seed       int64                 // Base seed for every per-chunk random generator
	Logger     core.Logger           // Progress and summary output; nil discards
	Progress   ProgressFunc          // Called after each completed scanline; may be nil
	Integrator integrator.Integrator // nil uses path tracing against the default sky
}

// Raytracer renders a world through a camera into an ImageSink
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	width      int
	height     int
	settings   RenderSettings
	integrator integrator.Integrator
	workers    int
	seed       int64
	logger     core.Logger
	progress   ProgressFunc
}

// NewRaytracer validates the render inputs and creates a new raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, width, height int, settings RenderSettings, opts Options) (*Raytracer, error) {
	if world == nil {
		return nil, errors.New("world must not be nil")
	}
	if camera == nil {
		return nil, errors.New("camera must not be nil")
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image must be at least 1x1, got %dx%d", width, height)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("while validating render settings: %w", err)
	}

	rt := &Raytracer{
		world:      world,
		camera:     camera,
		width:      width,
		height:     height,
		settings:   settings,
		integrator: opts.Integrator,
		workers:    opts.Workers,
		seed:       opts.Seed,
		logger:     opts.Logger,
		progress:   opts.Progress,
	}
	if rt.integrator == nil {
		rt.integrator = integrator.NewPathTracingIntegrator(integrator.DefaultBackground())
	}
	if rt.workers <= 0 {
		rt.workers = runtime.NumCPU()
	}
	if rt.workers > width {
		rt.workers = width
	}
	if rt.logger == nil {
		rt.logger = core.DiscardLogger()
	}
	return rt, nil
}

// Workers returns the number of column chunks each scanline is split into
func (rt *Raytracer) Workers() int {
	return rt.workers
}

// Render traces every pixel, writes it into sink and finalizes the sink with the
// configured gamma. Scanlines run bottom to top; each is split across workers and
// written to the sink from this goroutine once complete. Cancelling ctx stops the
// render between scanlines; the sink is not finalized in that case.
func (rt *Raytracer) Render(ctx context.Context, sink ImageSink) (RenderStats, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "Render", trace.WithAttributes(
		attribute.Int("width", rt.width),
		attribute.Int("height", rt.height),
		attribute.Int("samples_per_pixel", rt.settings.SamplesPerPixel),
		attribute.Int("max_depth", rt.settings.MaxDepth),
		attribute.Int("workers", rt.workers),
	))
	defer span.End()

	start := time.Now()
	stats := RenderStats{}
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, depth %d, %d workers\n",
		rt.width, rt.height, rt.settings.SamplesPerPixel, rt.settings.MaxDepth, rt.workers)

	scanline := make([]core.Color, rt.width)
	for row := 0; row < rt.height; row++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "render cancelled")
			stats.Elapsed = time.Since(start)
			return stats, err
		}

		if err := rt.renderRow(ctx, tracer, row, scanline); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scanline failed")
			stats.Elapsed = time.Since(start)
			return stats, err
		}

		for col, pixel := range scanline {
			sink.SetPixel(col, row, pixel)
		}
		stats.TotalPixels += rt.width
		stats.TotalSamples += rt.width * rt.settings.SamplesPerPixel

		if rt.progress != nil {
			rt.progress(row+1, rt.height)
		}
	}
	stats.Elapsed = time.Since(start)

	if err := sink.Finalize(rt.settings.Gamma); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "finalize failed")
		return stats, fmt.Errorf("while finalizing image: %w", err)
	}

	rt.logger.Printf("Rendered %s\n", stats)
	return stats, nil
}

// renderRow fills scanline for the given row. Each chunk owns a disjoint column range
// and its own random generator.
func (rt *Raytracer) renderRow(ctx context.Context, tracer trace.Tracer, row int, scanline []core.Color) error {
	_, span := tracer.Start(ctx, "Scanline", trace.WithAttributes(attribute.Int("row", row)))
	defer span.End()

	chunkSize := (rt.width + rt.workers - 1) / rt.workers

	var g errgroup.Group
	g.SetLimit(rt.workers)
	for chunk := 0; chunk*chunkSize < rt.width; chunk++ {
		startCol := chunk * chunkSize
		endCol := min(startCol+chunkSize, rt.width)
		random := rand.New(rand.NewSource(chunkSeed(rt.seed, row, chunk)))

		g.Go(func() error {
			for col := startCol; col < endCol; col++ {
				scanline[col] = rt.RenderPixel(col, row, random)
			}
			return nil
		})
	}
	return g.Wait()
}

// RenderPixel averages SamplesPerPixel jittered samples for one pixel
func (rt *Raytracer) RenderPixel(col, row int, random *rand.Rand) core.Color {
	accum := core.Black()
	for sample := 0; sample < rt.settings.SamplesPerPixel; sample++ {
		u, v := ImagePlane(col, row, random.Float64(), random.Float64(), rt.width, rt.height)
		ray := rt.camera.GetRay(u, v, random)
		accum = accum.Add(rt.integrator.RayColor(ray, rt.world, rt.settings.MaxDepth, random))
	}
	return accum.Multiply(1.0 / float64(rt.settings.SamplesPerPixel))
}

// ImagePlane maps bottom-up pixel (col, row), offset by (du, dv) inside the pixel,
// to the camera's (s, t) coordinates. The last column and row land on 1.
func ImagePlane(col, row int, du, dv float64, width, height int) (float64, float64) {
	u := (float64(col) + du) / float64(max(width-1, 1))
	v := (float64(row) + dv) / float64(max(height-1, 1))
	return u, v
}

// chunkSeed derives an independent seed for one chunk of one row (splitmix64 finalizer)
func chunkSeed(seed int64, row, chunk int) int64 {
	z := uint64(seed) + uint64(row)*0x9E3779B97F4A7C15 + uint64(chunk)*0xBF58476D1CE4E5B9
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
