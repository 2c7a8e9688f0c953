package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/df07/go-pathtracer/pkg/imaging"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// renderOptions holds the render command flags
type renderOptions struct {
	sceneName string
	sceneFile string
	seed      int64
	samples   int
	maxDepth  int
	gamma     float64
	width     int
	height    int
	preset    string
	portrait  bool
	workers   int
	output    string
	format    string
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name (see the scenes command)")
	flags.StringVar(&opts.sceneFile, "scene-file", "", "YAML scene file; overrides --scene")
	flags.Int64Var(&opts.seed, "seed", 1, "Seed for the pixel samplers and randomized scenes")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (default from the scene)")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum bounces per path (default from the scene)")
	flags.Float64Var(&opts.gamma, "gamma", 0, "Gamma applied on encode; 0 or less writes linear values (default from the scene)")
	flags.IntVar(&opts.width, "width", 0, "Image width; alone it keeps the scene aspect ratio")
	flags.IntVar(&opts.height, "height", 0, "Image height; alone it keeps the scene aspect ratio")
	flags.StringVar(&opts.preset, "preset", "", "Resolution preset: hd, qhd, uhd, mobile or mobile/<scale>")
	flags.BoolVar(&opts.portrait, "portrait", false, "Use the portrait orientation of --preset")
	flags.IntVar(&opts.workers, "workers", 0, "Column chunks rendered in parallel per scanline (default NumCPU)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output path (default output/<scene>/render_<timestamp>.<format>)")
	flags.StringVar(&opts.format, "format", "", "Output format, ppm or png (default from the output extension, else png)")
	return cmd
}

// loadScene resolves --scene-file or --scene
func loadScene(opts *renderOptions) (*scene.Scene, error) {
	if opts.sceneFile != "" {
		return scene.Load(opts.sceneFile)
	}
	if opts.sceneName == "" {
		return nil, errors.New("no scene given")
	}
	return scene.ByName(opts.sceneName, opts.seed)
}

// applyOverrides copies explicitly set flags onto the scene
func applyOverrides(cmd *cobra.Command, opts *renderOptions, s *scene.Scene) error {
	flags := cmd.Flags()
	if flags.Changed("samples") {
		s.Settings.SamplesPerPixel = opts.samples
	}
	if flags.Changed("max-depth") {
		s.Settings.MaxDepth = opts.maxDepth
	}
	if flags.Changed("gamma") {
		s.Settings.Gamma = opts.gamma
	}

	size := s.Image
	if opts.preset != "" {
		orientation := imaging.Landscape
		if opts.portrait {
			orientation = imaging.Portrait
		}
		preset, err := imaging.ParsePreset(opts.preset, orientation)
		if err != nil {
			return err
		}
		size = preset
	}
	width, height := size.Width, size.Height
	switch {
	case flags.Changed("width") && flags.Changed("height"):
		width, height = opts.width, opts.height
	case flags.Changed("width"):
		width = opts.width
		height = max(1, int(float64(opts.width)/size.AspectRatio()))
	case flags.Changed("height"):
		height = opts.height
		width = imaging.FromRatio(opts.height, size.AspectRatio()).Width
	}
	if err := s.Resize(width, height); err != nil {
		return err
	}
	return s.Settings.Validate()
}

// outputTarget picks the output path and format
func outputTarget(opts *renderOptions, sceneName string, now time.Time) (string, imaging.Format, error) {
	var format imaging.Format
	if opts.format != "" {
		f, err := imaging.ParseFormat(opts.format)
		if err != nil {
			return "", "", err
		}
		format = f
	}

	path := opts.output
	if path == "" {
		if format == "" {
			format = imaging.FormatPNG
		}
		name := sceneName
		if name == "" {
			name = "scene"
		}
		path = filepath.Join("output", name, fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), format.Extension()))
		return path, format, nil
	}

	if format == "" {
		f, err := imaging.FormatFromPath(path)
		if err != nil {
			return "", "", fmt.Errorf("while inferring format from %q: %w", path, err)
		}
		format = f
	}
	return path, format, nil
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	s, err := loadScene(opts)
	if err != nil {
		return fmt.Errorf("while loading scene: %w", err)
	}
	if err := applyOverrides(cmd, opts, s); err != nil {
		return fmt.Errorf("while applying flags: %w", err)
	}

	path, format, err := outputTarget(opts, s.Name, time.Now())
	if err != nil {
		return err
	}
	sink, err := imaging.NewFileSink(path, format, s.Image.Width, s.Image.Height)
	if err != nil {
		return fmt.Errorf("while creating output: %w", err)
	}

	progressOut := cmd.ErrOrStderr()
	reporter := newProgressReporter(progressOut, isTerminal(progressOut), renderer.VerboseLogger(1), time.Now)

	rt, err := s.NewRaytracer(renderer.Options{
		Workers:  opts.workers,
		Seed:     opts.seed,
		Logger:   renderer.NewGlogLogger(),
		Progress: reporter.Update,
	})
	if err != nil {
		return fmt.Errorf("while preparing render: %w", err)
	}

	glog.Infof("Rendering scene %q at %dx%d, %d samples, depth %d, %d workers",
		s.Name, s.Image.Width, s.Image.Height, s.Settings.SamplesPerPixel, s.Settings.MaxDepth, rt.Workers())
	stats, err := rt.Render(cmd.Context(), sink)
	reporter.Done()
	if err != nil {
		return fmt.Errorf("while rendering %q: %w", s.Name, err)
	}

	glog.Infof("Wrote %s (%s)", path, stats)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
