// Package config loads the YAML document describing a window, the renderer,
// the camera and the objects of a scene.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/tessera/pkg/math3d"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root document.
type Config struct {
	Window   Window   `yaml:"window"`
	Renderer Renderer `yaml:"renderer"`
	Camera   Camera   `yaml:"camera"`
	Controls Controls `yaml:"controls"`
	Shaders  Shaders  `yaml:"shaders"`
	Objects  []Object `yaml:"objects"`

	// directory of the loaded file; relative paths resolve against it
	dir string
}

// Window configures the native window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// Renderer configures fixed-function state and lighting.
type Renderer struct {
	ClearColor Color `yaml:"clear_color"`
	CullFace   bool  `yaml:"cull_face"`
	DepthTest  bool  `yaml:"depth_test"`
	LightDir   Vec3  `yaml:"light_dir"`
}

// Camera places the camera. LookAt, when set, overrides Rotation.
type Camera struct {
	Position Vec3    `yaml:"position"`
	Rotation Vec3    `yaml:"rotation"`
	LookAt   *Vec3   `yaml:"look_at,omitempty"`
	FOV      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
}

// Controls tunes keyboard movement.
type Controls struct {
	MoveSpeed float64 `yaml:"move_speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
	FPS       int     `yaml:"fps"`
}

// Shaders optionally replace the built-in shaders.
type Shaders struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// Object is one scene entry. Mesh is a built-in primitive name or a path
// to a .glb or .gltf file.
type Object struct {
	Name     string  `yaml:"name"`
	Mesh     string  `yaml:"mesh"`
	Size     float64 `yaml:"size"`
	Position Vec3    `yaml:"position"`
	Rotation Vec3    `yaml:"rotation"`

	// Scale defaults to 1 on every axis when omitted.
	Scale *Vec3  `yaml:"scale,omitempty"`
	Color *Color `yaml:"color,omitempty"`

	// Spin is a rotation rate in degrees per second.
	Spin Vec3 `yaml:"spin"`
}

// Vec3 is written as a three element sequence.
type Vec3 [3]float64

// UnmarshalYAML implements yaml.Unmarshaler for Vec3.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: want 3 components, got %d", value.Line, len(xs))
	}
	copy(v[:], xs)
	return nil
}

// Vec returns v as a math3d vector.
func (v Vec3) Vec() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

// Color is an RGBA color in 0-1, written as three or four components.
// Alpha defaults to 1.
type Color [4]float64

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return err
	}
	switch len(xs) {
	case 3:
		*c = Color{xs[0], xs[1], xs[2], 1}
	case 4:
		*c = Color{xs[0], xs[1], xs[2], xs[3]}
	default:
		return fmt.Errorf("line %d: want 3 or 4 color components, got %d", value.Line, len(xs))
	}
	return nil
}

// Default returns the built-in scene: a magenta cube spinning in front of
// the camera.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:  "tessera",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Renderer: Renderer{
			ClearColor: Color{0.75, 0.85, 0.8, 1},
			CullFace:   true,
			DepthTest:  true,
			LightDir:   Vec3{0.3, -0.8, 0.5},
		},
		Camera: Camera{
			Position: Vec3{0, 1, -5},
			FOV:      0.9,
			Near:     0.1,
			Far:      20000,
		},
		Controls: Controls{
			MoveSpeed: 5,
			TurnSpeed: 90,
			Frequency: 6,
			Damping:   1,
			FPS:       60,
		},
		Objects: []Object{{
			Name: "cube",
			Mesh: "cube",
			Size: 1,
			Spin: Vec3{0, 100, 0},
		}},
	}
}

// Load reads and validates the file at path. Relative mesh and shader
// paths in it resolve against its directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes a document over the defaults and validates it. Unknown
// fields are errors. An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var err error
	bad := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if !validColor(c.Renderer.ClearColor) {
		bad("renderer clear_color %v out of [0,1]", c.Renderer.ClearColor)
	}
	if c.Renderer.LightDir.Vec().LenSq() == 0 {
		bad("renderer light_dir must not be zero")
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= math.Pi {
		bad("camera fov %v must be in (0, pi)", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		bad("camera clip planes near=%v far=%v need 0 < near < far", cam.Near, cam.Far)
	}
	if cam.LookAt != nil && cam.LookAt.Vec() == cam.Position.Vec() {
		bad("camera look_at equals its position")
	}

	ctl := c.Controls
	if ctl.MoveSpeed < 0 || ctl.TurnSpeed < 0 {
		bad("controls speeds must not be negative")
	}
	if ctl.Frequency <= 0 || ctl.Damping < 0 {
		bad("controls spring frequency %v and damping %v are unusable", ctl.Frequency, ctl.Damping)
	}
	if ctl.FPS <= 0 {
		bad("controls fps %d must be positive", ctl.FPS)
	}

	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		bad("shaders need both vertex and fragment, or neither")
	}

	seen := make(map[string]bool, len(c.Objects))
	for i, o := range c.Objects {
		switch {
		case o.Name == "":
			bad("object %d has no name", i)
		case seen[o.Name]:
			bad("object name %q is used twice", o.Name)
		}
		seen[o.Name] = true

		if o.Mesh == "" {
			bad("object %q has no mesh", o.Name)
		}
		if o.Size < 0 {
			bad("object %q size %v is negative", o.Name, o.Size)
		}
		if o.Scale != nil && (o.Scale[0] == 0 || o.Scale[1] == 0 || o.Scale[2] == 0) {
			bad("object %q scale %v has a zero axis", o.Name, *o.Scale)
		}
		if o.Color != nil && !validColor(*o.Color) {
			bad("object %q color %v out of [0,1]", o.Name, *o.Color)
		}
	}
	return err
}

// Resolve returns path relative to the config file's directory.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

func validColor(c Color) bool {
	for _, v := range c {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return false
		}
	}
	return true
}
