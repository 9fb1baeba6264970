// Package render draws scenes through a compiled program and presents the
// result in a window, a PNG or the terminal.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/gl"
	"github.com/taigrr/tessera/pkg/gpu"
	"github.com/taigrr/tessera/pkg/logging"
	"github.com/taigrr/tessera/pkg/math3d"
	"github.com/taigrr/tessera/pkg/models"
	"github.com/taigrr/tessera/pkg/scene"
)

// Uniform names the renderer submits.
const (
	UniformView     = "u_view"
	UniformProj     = "u_proj"
	UniformLightDir = "u_lightDir"
	UniformWorld    = "u_world"
	UniformColor    = "u_color"
)

// DefaultColor is used for objects with no material at all.
var DefaultColor = [4]float64{1, 0, 1, 1}

// ErrNoCamera is returned by Render without a camera.
var ErrNoCamera = errors.New("render: no camera")

// Options is the fixed-function state applied by New.
type Options struct {
	ClearColor [4]float64
	// CullFace culls back faces; front faces wind clockwise.
	CullFace  bool
	DepthTest bool
	// LightDir is the direction light travels, in world space.
	LightDir math3d.Vec3
}

// DefaultOptions returns an aqua clear color with depth testing and back
// face culling on.
func DefaultOptions() Options {
	return Options{
		ClearColor: [4]float64{0.75, 0.85, 0.8, 1},
		CullFace:   true,
		DepthTest:  true,
		LightDir:   math3d.V3(0.3, -0.8, 0.5),
	}
}

// Stats counts what the last Render did.
type Stats struct {
	Objects int // objects visited
	Draws   int // draw calls issued
	Skipped int // objects without a mesh
	Built   int // vertex arrays built this frame
	// Offscreen counts drawn objects whose world bounds are entirely
	// outside the view frustum. They are still drawn.
	Offscreen int
}

// Renderer draws a scene's objects, in scene order, with one program.
type Renderer struct {
	ctx     gl.Context
	program *gpu.Program
	opts    Options

	width, height int
	// offscreen framebuffer, nil when drawing to the window
	target *Target

	// meshes this renderer bound, released by Release
	bound []*models.Mesh

	Stats Stats
	log   *zap.Logger
}

// New applies opts to ctx and returns a renderer drawing with program.
func New(ctx gl.Context, program *gpu.Program, opts Options) *Renderer {
	r := &Renderer{
		ctx:     ctx,
		program: program,
		opts:    opts,
		log:     logging.Named("render"),
	}

	if opts.DepthTest {
		ctx.Enable(gl.DEPTH_TEST)
	} else {
		ctx.Disable(gl.DEPTH_TEST)
	}
	ctx.FrontFace(gl.CW)
	if opts.CullFace {
		ctx.Enable(gl.CULL_FACE)
		ctx.CullFace(gl.BACK)
	} else {
		ctx.Disable(gl.CULL_FACE)
	}

	r.log.Info("renderer ready",
		zap.Bool("depth_test", opts.DepthTest),
		zap.Bool("cull_face", opts.CullFace),
		zap.Strings("uniforms", program.Uniforms()),
	)
	return r
}

// Options returns the options the renderer was created with.
func (r *Renderer) Options() Options { return r.opts }

// Size returns the current viewport size.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Resize sets the viewport and resizes the offscreen target, if any.
// Non-positive sizes, as sent for minimized windows, are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	if r.target != nil {
		r.target.Resize(width, height)
	}
	r.ctx.Viewport(0, 0, int32(width), int32(height))
}

// UseOffscreen redirects drawing and Capture to an offscreen target of
// the given size. Calling it again only resizes the target.
func (r *Renderer) UseOffscreen(width, height int) error {
	if r.target == nil {
		t, err := NewTarget(r.ctx, width, height)
		if err != nil {
			return err
		}
		r.target = t
		r.log.Debug("drawing offscreen", zap.Int("width", width), zap.Int("height", height))
	}
	r.Resize(width, height)
	return nil
}

// bindTarget binds the offscreen target when there is one.
func (r *Renderer) bindTarget() {
	if r.target != nil {
		r.target.Bind()
	}
}

// Render draws one frame. Camera uniforms are set once, then each object
// with a mesh gets its world matrix and color and one indexed draw. Meshes
// are bound to the GPU the first time they are drawn.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera) error {
	if cam == nil {
		return ErrNoCamera
	}
	r.Stats = Stats{}
	r.bindTarget()

	c := r.opts.ClearColor
	r.ctx.ClearColor(float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3]))
	r.ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	err := r.program.SetUniforms(gpu.Values{
		UniformView:     gpu.Mat4(cam.ViewMatrix()),
		UniformProj:     gpu.Mat4(cam.ProjectionMatrix()),
		UniformLightDir: gpu.Vec3(r.opts.LightDir.Normalize()),
	})
	if err != nil {
		return fmt.Errorf("render: camera uniforms: %w", err)
	}
	if s == nil {
		return nil
	}

	view := NewFrustum(cam.ViewProjectionMatrix())

	for _, o := range s.Objects() {
		r.Stats.Objects++
		if o.Mesh == nil {
			r.Stats.Skipped++
			continue
		}
		world := o.WorldMatrix()
		if !view.IntersectsAABB(MeshBounds(o.Mesh).Transform(world)) {
			r.Stats.Offscreen++
		}

		b, err := r.binding(o.Mesh)
		if err != nil {
			return fmt.Errorf("render object %q: %w", o.Name(), err)
		}

		err = r.program.SetUniforms(gpu.Values{
			UniformWorld: gpu.Mat4(world),
			UniformColor: gpu.Vec4(ObjectColor(o)),
		})
		if err != nil {
			return fmt.Errorf("render object %q: %w", o.Name(), err)
		}

		r.ctx.BindVertexArray(b.VAO)
		r.ctx.DrawElements(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_SHORT, 0)
		r.Stats.Draws++
	}
	r.ctx.BindVertexArray(0)
	return nil
}

// binding returns the mesh's cached vertex array, building it on first use.
func (r *Renderer) binding(m *models.Mesh) (*models.Binding, error) {
	if b, ok := m.Binding(); ok {
		return b, nil
	}
	b, err := r.program.BuildVertexArray(m)
	if err != nil {
		return nil, err
	}
	if err := m.Bind(b); err != nil {
		return nil, err
	}
	r.bound = append(r.bound, m)
	r.Stats.Built++
	return b, nil
}

// ObjectColor picks the color an object is drawn with: its own material,
// else the mesh's first material, else DefaultColor.
func ObjectColor(o *scene.Object) [4]float64 {
	if o.Material != nil {
		return o.Material.BaseColor
	}
	if o.Mesh != nil {
		if m := o.Mesh.GetMaterial(0); m != nil {
			return m.BaseColor
		}
	}
	return DefaultColor
}

// Capture reads the current viewport back into fb, resizing it to match.
// With an offscreen target the pixels come from the target.
func (r *Renderer) Capture(fb *Framebuffer) {
	w, h := r.width, r.height
	if w <= 0 || h <= 0 {
		return
	}
	fb.Resize(w, h)
	r.bindTarget()

	buf := make([]byte, w*h*4)
	r.ctx.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, buf)

	// GL rows start at the bottom.
	for y := range h {
		row := buf[(h-1-y)*w*4:]
		for x := range w {
			p := row[x*4:]
			fb.Pixels[y*w+x] = color.RGBA{p[0], p[1], p[2], p[3]}
		}
	}
}

// Release deletes the vertex arrays of every mesh this renderer bound and
// the offscreen target.
func (r *Renderer) Release() {
	for _, m := range r.bound {
		m.Release(r.ctx)
	}
	r.bound = nil
	if r.target != nil {
		r.target.Release()
		r.target = nil
	}
}
