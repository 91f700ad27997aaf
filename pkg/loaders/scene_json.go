package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Triple is an [x, y, z] or [r, g, b] array in a scene file
type Triple [3]float64

// SceneFile is the JSON form of a scene. Angles are in degrees.
type SceneFile struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Camera      *CameraSpec  `json:"camera,omitempty"`
	MaxDepth    *int         `json:"maxDepth,omitempty"`
	Lights      []LightSpec  `json:"lights"`
	Objects     []ObjectSpec `json:"objects"`
}

// CameraSpec overrides fields of scene.DefaultCameraConfig. From, To and Up must be
// given together.
type CameraSpec struct {
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	FOV    *float64 `json:"fov,omitempty"` // degrees, in (0, 180)
	From   *Triple  `json:"from,omitempty"`
	To     *Triple  `json:"to,omitempty"`
	Up     *Triple  `json:"up,omitempty"`
}

type LightSpec struct {
	Position  Triple `json:"position"`
	Intensity Triple `json:"intensity"`
}

// TransformSpec is one step of a transform chain; steps apply in list order
type TransformSpec struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args"`
}

// MaterialSpec overrides fields of material.Default
type MaterialSpec struct {
	Color      *Triple      `json:"color,omitempty"`
	Ambient    *float64     `json:"ambient,omitempty"`
	Diffuse    *float64     `json:"diffuse,omitempty"`
	Specular   *float64     `json:"specular,omitempty"`
	Shininess  *float64     `json:"shininess,omitempty"`
	Reflective *float64     `json:"reflective,omitempty"`
	Pattern    *PatternSpec `json:"pattern,omitempty"`
}

type PatternSpec struct {
	Type      string          `json:"type"`
	Colors    []Triple        `json:"colors"`
	Transform []TransformSpec `json:"transform,omitempty"`
}

type ObjectSpec struct {
	Type      string          `json:"type"` // "sphere" or "plane"
	Transform []TransformSpec `json:"transform,omitempty"`
	Material  *MaterialSpec   `json:"material,omitempty"`
}

// ParseSceneJSON decodes a scene file. Unknown fields are rejected so that typos
// surface instead of silently falling back to defaults.
func ParseSceneJSON(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file SceneFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}
	return &file, nil
}

// LoadSceneFile reads, parses and builds the scene file at filename. A file without a
// name is named after the file.
func LoadSceneFile(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	parsed, err := ParseSceneJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if parsed.Name == "" {
		base := filepath.Base(filename)
		parsed.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	s, err := parsed.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Build assembles the world and camera described by the file. Every error names the
// JSON path of the offending value.
func (f *SceneFile) Build() (*scene.Scene, error) {
	world := scene.NewWorld()
	if f.MaxDepth != nil {
		if *f.MaxDepth < 0 {
			return nil, fmt.Errorf("maxDepth %d is negative: %w", *f.MaxDepth, core.ErrInvalidArgument)
		}
		world.MaxDepth = *f.MaxDepth
	}

	camera, err := f.Camera.config()
	if err != nil {
		return nil, fmt.Errorf("camera%w", err)
	}

	for i, spec := range f.Lights {
		light, err := lights.NewPointLight(spec.Position.point(), spec.Intensity.color())
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		world.AddLight(light)
	}

	for i, spec := range f.Objects {
		shape, err := spec.build(world.IDs())
		if err != nil {
			return nil, fmt.Errorf("objects[%d]%w", i, err)
		}
		if err := world.Add(shape); err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
	}

	return &scene.Scene{Name: f.Name, World: world, Camera: camera}, nil
}

func (c *CameraSpec) config() (scene.CameraConfig, error) {
	config := scene.DefaultCameraConfig()
	if c == nil {
		return config, nil
	}
	if c.Width < 0 || c.Height < 0 {
		return config, fmt.Errorf(": size %dx%d is negative: %w", c.Width, c.Height, core.ErrInvalidArgument)
	}

	override := scene.CameraConfig{
		Width:  c.Width,
		Height: c.Height,
	}
	if c.FOV != nil {
		if *c.FOV <= 0 || *c.FOV >= 180 {
			return config, fmt.Errorf(".fov: %v degrees is outside (0, 180): %w", *c.FOV, core.ErrInvalidArgument)
		}
		override.FieldOfView = radians(*c.FOV)
	}
	switch {
	case c.From != nil && c.To != nil && c.Up != nil:
		override.From = c.From.point()
		override.To = c.To.point()
		override.Up = c.Up.vector()
	case c.From != nil || c.To != nil || c.Up != nil:
		return config, fmt.Errorf(": from, to and up must be given together: %w", core.ErrInvalidArgument)
	}
	return scene.MergeCameraConfig(config, override), nil
}

// build returns the shape; errors start with the path suffix below objects[i]
func (o ObjectSpec) build(ids *geometry.IDAllocator) (geometry.Shape, error) {
	var shape geometry.Shape
	switch strings.ToLower(o.Type) {
	case "sphere":
		shape = geometry.NewSphere(ids)
	case "plane":
		shape = geometry.NewPlane(ids)
	default:
		return nil, fmt.Errorf(".type: unknown shape %q: %w", o.Type, core.ErrInvalidArgument)
	}

	transform, err := buildTransform(o.Transform)
	if err != nil {
		return nil, fmt.Errorf(".transform%w", err)
	}
	if err := shape.SetTransform(transform); err != nil {
		return nil, fmt.Errorf(".transform: %w", err)
	}

	m, err := o.Material.build()
	if err != nil {
		return nil, fmt.Errorf(".material%w", err)
	}
	shape.SetMaterial(m)
	return shape, nil
}

func (m *MaterialSpec) build() (material.Material, error) {
	result := material.Default()
	if m == nil {
		return result, nil
	}
	if m.Color != nil {
		result.Color = m.Color.color()
	}
	overrides := []struct {
		value *float64
		field *float64
	}{
		{m.Ambient, &result.Ambient},
		{m.Diffuse, &result.Diffuse},
		{m.Specular, &result.Specular},
		{m.Shininess, &result.Shininess},
		{m.Reflective, &result.Reflective},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.field = *o.value
		}
	}
	if err := result.Validate(); err != nil {
		return material.Material{}, fmt.Errorf(": %w", err)
	}

	if m.Pattern != nil {
		p, err := m.Pattern.build()
		if err != nil {
			return material.Material{}, fmt.Errorf(".pattern%w", err)
		}
		result.Pattern = p
	}
	return result, nil
}

func (p *PatternSpec) build() (*material.Pattern, error) {
	kind, err := material.ParsePatternKind(strings.ToLower(p.Type))
	if err != nil {
		return nil, fmt.Errorf(".type: %w", err)
	}
	colors := make([]core.Color, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = c.color()
	}
	pattern, err := material.NewPattern(kind, colors...)
	if err != nil {
		return nil, fmt.Errorf(".colors: %w", err)
	}

	transform, err := buildTransform(p.Transform)
	if err != nil {
		return nil, fmt.Errorf(".transform%w", err)
	}
	if err := pattern.SetTransform(transform); err != nil {
		return nil, fmt.Errorf(".transform: %w", err)
	}
	return pattern, nil
}

// buildTransform composes steps so that steps[0] is applied to the object first
func buildTransform(steps []TransformSpec) (core.Matrix, error) {
	m := core.Identity(4)
	for i, step := range steps {
		args := step.Args
		want := 0
		switch strings.ToLower(step.Op) {
		case "translate":
			want = 3
			if len(args) == want {
				m = m.Translate(args[0], args[1], args[2])
			}
		case "scale":
			if len(args) == 1 {
				m = m.Scale(args[0], args[0], args[0])
				continue
			}
			want = 3
			if len(args) == want {
				m = m.Scale(args[0], args[1], args[2])
			}
		case "rotatex":
			want = 1
			if len(args) == want {
				m = m.RotateX(radians(args[0]))
			}
		case "rotatey":
			want = 1
			if len(args) == want {
				m = m.RotateY(radians(args[0]))
			}
		case "rotatez":
			want = 1
			if len(args) == want {
				m = m.RotateZ(radians(args[0]))
			}
		case "shear":
			want = 6
			if len(args) == want {
				m = m.Shear(args[0], args[1], args[2], args[3], args[4], args[5])
			}
		default:
			return core.Matrix{}, fmt.Errorf("[%d].op: unknown transform %q: %w", i, step.Op, core.ErrInvalidArgument)
		}
		if len(args) != want {
			return core.Matrix{}, fmt.Errorf("[%d].args: %s takes %d arguments, got %d: %w",
				i, step.Op, want, len(args), core.ErrInvalidArgument)
		}
	}
	return m, nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func (t Triple) point() core.Tuple  { return core.Point(t[0], t[1], t[2]) }
func (t Triple) vector() core.Tuple { return core.Vector(t[0], t[1], t[2]) }
func (t Triple) color() core.Color  { return core.NewColor(t[0], t[1], t[2]) }

// validateFilePath validates a file path for security issues
func validateFilePath(filename string) error {
	// Check for empty filename
	if filename == "" {
		return errors.New("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return errors.New("invalid file path: null bytes not allowed")
	}

	// Check for extremely long paths that could cause issues
	if len(filename) > 512 {
		return errors.New("file path too long: maximum 512 characters allowed")
	}

	// Check for directory traversal attempts; a path that climbs out must still land in scenes/
	cleanPath := filepath.ToSlash(filepath.Clean(filename))
	if strings.Contains(cleanPath, "..") && !strings.Contains(cleanPath, "scenes/") {
		return errors.New("invalid file path: directory traversal not allowed")
	}

	// Check file extension (only allow .json files)
	if !strings.EqualFold(filepath.Ext(cleanPath), ".json") {
		return errors.New("invalid file type: only .json files are allowed")
	}

	return nil
}
