package scene

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imaging"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a built-in scene name is not registered
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnknownMaterial is returned for a material type tag that is not recognized
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrUnknownShape is returned for a shape tag that is not recognized
	ErrUnknownShape = errors.New("unknown shape")
)

// Shape tags used in scene files
const (
	ShapeSphere       = "sphere"
	ShapeMovingSphere = "moving_sphere"
	ShapeTriangle     = "triangle"
	ShapeMesh         = "mesh"
)

// Descriptor is the serialized form of a scene
type Descriptor struct {
	Name        string             `yaml:"name,omitempty"`
	Description string             `yaml:"description,omitempty"`
	Settings    SettingsDescriptor `yaml:"settings"`
	Image       imaging.Size       `yaml:"image"`
	World       []ShapeDescriptor  `yaml:"world"`
}

// SettingsDescriptor groups render and camera settings
type SettingsDescriptor struct {
	Render RenderDescriptor `yaml:"render"`
	Camera CameraDescriptor `yaml:"camera"`
}

// RenderDescriptor mirrors renderer.RenderSettings
type RenderDescriptor struct {
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	MaxDepth        int     `yaml:"max_depth"`
	Gamma           float64 `yaml:"gamma"`
	ShutterOpen     float64 `yaml:"shutter_open"`
	ShutterClose    float64 `yaml:"shutter_close"`
}

// CameraDescriptor mirrors renderer.CameraConfig. The aspect ratio is not stored;
// it is always derived from the image size.
type CameraDescriptor struct {
	LookFrom      Vector  `yaml:"look_from"`
	LookAt        Vector  `yaml:"look_at"`
	Up            Vector  `yaml:"up"`
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture,omitempty"`
	FocusDistance float64 `yaml:"focus_distance,omitempty"`
}

// ShapeDescriptor is one world entry. Which fields apply depends on Shape.
type ShapeDescriptor struct {
	Shape    string       `yaml:"shape"`
	Center   Vector       `yaml:"center,omitempty"`
	CenterTo *Vector      `yaml:"center_to,omitempty"`
	Radius   float64      `yaml:"radius,omitempty"`
	Vertices []Vector     `yaml:"vertices,omitempty"`
	Path     string       `yaml:"path,omitempty"`
	Scale    float64      `yaml:"scale,omitempty"`
	Rotation *Vector      `yaml:"rotation,omitempty"`
	Offset   Vector       `yaml:"offset,omitempty"`
	Material MaterialSpec `yaml:"material"`
}

// Vector is a point or direction written as a flow sequence [x, y, z]
type Vector core.Vec3

// Vec converts to core.Vec3
func (v Vector) Vec() core.Vec3 { return core.Vec3(v) }

// IsZero lets omitempty drop zero vectors
func (v Vector) IsZero() bool { return v == Vector{} }

// UnmarshalYAML decodes a three element sequence
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	var xyz []float64
	if err := node.Decode(&xyz); err != nil {
		return fmt.Errorf("line %d: vector must be a sequence of numbers: %w", node.Line, err)
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(xyz))
	}
	*v = Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// MarshalYAML encodes the vector as a flow sequence
func (v Vector) MarshalYAML() (interface{}, error) {
	return flowSequence(v.X, v.Y, v.Z), nil
}

// ColorSpec is a linear color written either as [r, g, b] or as an SVG color name
type ColorSpec core.Color

// Color converts to an opaque core.Color
func (c ColorSpec) Color() core.Color { return core.RGB(c.R, c.G, c.B) }

// IsZero lets omitempty drop unset colors
func (c ColorSpec) IsZero() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// UnmarshalYAML accepts "skyblue" style names or a numeric sequence
func (c *ColorSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		named, ok := colornames.Map[strings.ToLower(node.Value)]
		if !ok {
			return fmt.Errorf("line %d: unknown color name %q", node.Line, node.Value)
		}
		*c = ColorSpec(fromRGBA(named))
		return nil
	}

	var rgb []float64
	if err := node.Decode(&rgb); err != nil {
		return fmt.Errorf("line %d: color must be a name or [r, g, b]: %w", node.Line, err)
	}
	if len(rgb) != 3 {
		return fmt.Errorf("line %d: color needs 3 components, got %d", node.Line, len(rgb))
	}
	*c = ColorSpec(core.RGB(rgb[0], rgb[1], rgb[2]))
	return nil
}

// MarshalYAML always writes the numeric form
func (c ColorSpec) MarshalYAML() (interface{}, error) {
	return flowSequence(c.R, c.G, c.B), nil
}

func fromRGBA(c color.RGBA) core.Color {
	return core.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func flowSequence(values ...float64) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(v, 'g', -1, 64),
		})
	}
	return node
}

// Parse decodes a scene descriptor. Unknown keys are rejected.
func Parse(r io.Reader) (*Descriptor, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var d Descriptor
	if err := decoder.Decode(&d); err != nil {
		return nil, fmt.Errorf("while decoding scene: %w", err)
	}
	return &d, nil
}

// Encode writes the descriptor as YAML
func (d *Descriptor) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("while encoding scene: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("while encoding scene: %w", err)
	}
	return nil
}

// Load reads and builds a scene file. Relative mesh paths resolve against the
// file's directory.
func Load(path string) (*Scene, error) {
	d, err := LoadDescriptor(path)
	if err != nil {
		return nil, err
	}
	s, err := d.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("while building %s: %w", path, err)
	}
	return s, nil
}

// LoadDescriptor reads a scene file without building it
func LoadDescriptor(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening scene: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Save writes the descriptor to path, creating parent directories
func (d *Descriptor) Save(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("while creating scene directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating scene file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("while closing %s: %w", path, closeErr)
		}
	}()
	return d.Encode(f)
}

// RenderSettings converts the render block
func (r RenderDescriptor) RenderSettings() renderer.RenderSettings {
	return renderer.RenderSettings{
		SamplesPerPixel: r.SamplesPerPixel,
		MaxDepth:        r.MaxDepth,
		Gamma:           r.Gamma,
		ShutterOpen:     r.ShutterOpen,
		ShutterClose:    r.ShutterClose,
	}
}

// Build validates the descriptor and constructs the world. baseDir resolves
// relative mesh paths.
func (d *Descriptor) Build(baseDir string) (*Scene, error) {
	if d.Image.Width < 1 || d.Image.Height < 1 {
		return nil, fmt.Errorf("image must be at least 1x1, got %dx%d", d.Image.Width, d.Image.Height)
	}
	settings := d.Settings.Render.RenderSettings()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("while validating render settings: %w", err)
	}

	cam := d.Settings.Camera
	s := &Scene{
		Name:        d.Name,
		Description: d.Description,
		Settings:    settings,
		Image:       d.Image,
		World:       geometry.NewWorld(),
		Camera: renderer.CameraConfig{
			LookFrom:      cam.LookFrom.Vec(),
			LookAt:        cam.LookAt.Vec(),
			Up:            cam.Up.Vec(),
			VFov:          cam.VFov,
			AspectRatio:   d.Image.AspectRatio(),
			Aperture:      cam.Aperture,
			FocusDistance: cam.FocusDistance,
			ShutterOpen:   settings.ShutterOpen,
			ShutterClose:  settings.ShutterClose,
		},
	}
	if s.Camera.Up == (core.Vec3{}) {
		s.Camera.Up = core.NewVec3(0, 1, 0)
	}

	for i, entry := range d.World {
		shape, err := entry.build(baseDir, settings)
		if err != nil {
			return nil, fmt.Errorf("while building world entry %d: %w", i, err)
		}
		s.World.Add(shape)
	}
	return s, nil
}

func (sd ShapeDescriptor) build(baseDir string, settings renderer.RenderSettings) (geometry.Shape, error) {
	m, err := sd.Material.Build()
	if err != nil {
		return nil, err
	}

	switch sd.Shape {
	case ShapeSphere:
		return geometry.NewSphere(sd.Center.Vec(), sd.Radius, m), nil
	case ShapeMovingSphere:
		if sd.CenterTo == nil {
			return nil, errors.New("moving_sphere needs center_to")
		}
		return geometry.NewMovingSphere(sd.Center.Vec(), sd.CenterTo.Vec(),
			settings.ShutterOpen, settings.ShutterClose, sd.Radius, m), nil
	case ShapeTriangle:
		if len(sd.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(sd.Vertices))
		}
		return geometry.NewTriangle(sd.Vertices[0].Vec(), sd.Vertices[1].Vec(), sd.Vertices[2].Vec(), m), nil
	case ShapeMesh:
		if sd.Path == "" {
			return nil, errors.New("mesh needs a path")
		}
		path := sd.Path
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		opts := &geometry.TriangleMeshOptions{Scale: sd.Scale, Offset: sd.Offset.Vec()}
		if sd.Rotation != nil {
			rotation := sd.Rotation.Vec()
			opts.Rotation = &rotation
		}
		return loadMesh(path, m, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, sd.Shape)
	}
}
