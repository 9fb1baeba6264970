package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taigrr/tessera/pkg/control"
	"github.com/taigrr/tessera/pkg/math3d"
	"github.com/taigrr/tessera/pkg/models"
	"github.com/taigrr/tessera/pkg/render"
	"github.com/taigrr/tessera/pkg/scene"
)

// Spin pairs an object with its configured rotation rate.
type Spin struct {
	Object *scene.Object
	Rate   math3d.Vec3
}

// World is everything Build creates from a config.
type World struct {
	Scene  *scene.Scene
	Camera *scene.Camera
	Spins  []Spin
}

// Build creates the scene and camera. Built-in meshes with the same name
// and size are shared between objects; files are loaded once per path.
func (c *Config) Build(loader *models.GLTFLoader) (*World, error) {
	if loader == nil {
		loader = models.NewGLTFLoader()
	}

	w := &World{Scene: scene.New()}
	meshes := make(map[string]*models.Mesh)

	for _, oc := range c.Objects {
		mesh, err := c.mesh(loader, meshes, oc)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", oc.Name, err)
		}

		o := scene.NewMeshObject(oc.Name, mesh)
		o.SetPosition(oc.Position.Vec())
		o.SetRotation(oc.Rotation.Vec())
		if oc.Scale != nil {
			o.SetScale(oc.Scale.Vec())
		}
		if oc.Color != nil {
			o.Material = &models.Material{Name: oc.Name, BaseColor: *oc.Color}
		}
		w.Scene.Add(o)

		if oc.Spin != (Vec3{}) {
			w.Spins = append(w.Spins, Spin{Object: o, Rate: oc.Spin.Vec()})
		}
	}

	cam, err := c.camera()
	if err != nil {
		return nil, err
	}
	w.Camera = cam
	return w, nil
}

func (c *Config) mesh(loader *models.GLTFLoader, cache map[string]*models.Mesh, oc Object) (*models.Mesh, error) {
	size := oc.Size
	if size == 0 {
		size = 1
	}

	if slices.Contains(models.BuiltinNames(), oc.Mesh) {
		key := fmt.Sprintf("%s@%g", oc.Mesh, size)
		if cached, ok := cache[key]; ok {
			return cached, nil
		}
		m, err := models.Builtin(oc.Mesh, size)
		if err != nil {
			return nil, err
		}
		cache[key] = m
		return m, nil
	}

	ext := strings.ToLower(filepath.Ext(oc.Mesh))
	if ext != ".glb" && ext != ".gltf" {
		return nil, fmt.Errorf("%w: mesh %q is neither %s nor a .glb/.gltf file",
			ErrInvalidConfig, oc.Mesh, strings.Join(models.BuiltinNames(), ", "))
	}

	path := c.Resolve(oc.Mesh)
	if cached, ok := cache[path]; ok {
		return cached, nil
	}
	m, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	cache[path] = m
	return m, nil
}

func (c *Config) camera() (*scene.Camera, error) {
	cc := c.Camera
	cam := scene.NewCamera("main")
	if err := cam.SetFOV(cc.FOV); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if err := cam.SetClipPlanes(cc.Near, cc.Far); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if err := cam.SetAspectRatio(float64(c.Window.Width) / float64(c.Window.Height)); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	cam.SetPosition(cc.Position.Vec())
	cam.SetRotation(cc.Rotation.Vec())
	if cc.LookAt != nil {
		cam.LookAt(cc.LookAt.Vec())
	}
	return cam, nil
}

// RenderOptions returns the renderer section as render.Options.
func (c *Config) RenderOptions() render.Options {
	r := c.Renderer
	return render.Options{
		ClearColor: r.ClearColor,
		CullFace:   r.CullFace,
		DepthTest:  r.DepthTest,
		LightDir:   r.LightDir.Vec(),
	}
}

// ControlOptions returns the controls section as control.Options.
func (c *Config) ControlOptions() control.Options {
	ctl := c.Controls
	return control.Options{
		MoveSpeed: ctl.MoveSpeed,
		TurnSpeed: ctl.TurnSpeed,
		Frequency: ctl.Frequency,
		Damping:   ctl.Damping,
		FPS:       ctl.FPS,
	}
}

// ShaderSources returns the configured shader sources, or the built-in
// ones when none are set.
func (c *Config) ShaderSources() (vertex, fragment string, err error) {
	if c.Shaders.Vertex == "" {
		return render.DefaultVertexShader, render.DefaultFragmentShader, nil
	}
	vs, err := os.ReadFile(c.Resolve(c.Shaders.Vertex))
	if err != nil {
		return "", "", fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(c.Resolve(c.Shaders.Fragment))
	if err != nil {
		return "", "", fmt.Errorf("read fragment shader: %w", err)
	}
	return string(vs), string(fs), nil
}
