package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/tessera/pkg/math3d"
)

// ErrInvalidArgument is wrapped by camera setters given unusable values.
var ErrInvalidArgument = errors.New("invalid argument")

// Camera defaults.
const (
	DefaultFOV  = 0.9 // radians
	DefaultNear = 0.1
	DefaultFar  = 20000
)

// Camera is an Object with a left-handed perspective projection. The view
// matrix comes from the embedded Object; the projection has its own dirty
// flag driven by the projection setters and Resize.
type Camera struct {
	Object

	fov    float64
	aspect float64
	near   float64
	far    float64

	proj      math3d.Mat4
	projDirty bool
}

// NewCamera creates a camera with the default lens and a 16:9 aspect.
func NewCamera(name string) *Camera {
	return &Camera{
		Object:    *NewObject(name),
		fov:       DefaultFOV,
		aspect:    16.0 / 9.0,
		near:      DefaultNear,
		far:       DefaultFar,
		proj:      math3d.Identity(),
		projDirty: true,
	}
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float64 { return c.aspect }

// ClipPlanes returns the near and far clipping distances.
func (c *Camera) ClipPlanes() (near, far float64) { return c.near, c.far }

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) error {
	if !(fov > 0 && fov < math.Pi) {
		return fmt.Errorf("camera %q: fov %v outside (0, pi): %w", c.name, fov, ErrInvalidArgument)
	}
	c.fov = fov
	c.projDirty = true
	return nil
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) error {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return fmt.Errorf("camera %q: aspect %v must be positive: %w", c.name, aspect, ErrInvalidArgument)
	}
	c.aspect = aspect
	c.projDirty = true
	return nil
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) error {
	if !(near > 0) || !(far > near) || math.IsInf(far, 0) {
		return fmt.Errorf("camera %q: clip planes %v..%v need 0 < near < far: %w",
			c.name, near, far, ErrInvalidArgument)
	}
	c.near = near
	c.far = far
	c.projDirty = true
	return nil
}

// Resize updates the aspect ratio from a viewport size. Non-positive sizes,
// such as a minimized window, are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	_ = c.SetAspectRatio(float64(width) / float64(height))
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		// The setters keep every parameter in range, so this cannot fail.
		if p, err := math3d.PerspectiveFovLH(c.fov, c.aspect, c.near, c.far); err == nil {
			c.proj = p
		}
		c.projDirty = false
	}
	return c.proj
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// LookAt rotates the camera to face target, with no roll.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.position).Normalize()
	if dir.LenSq() == 0 {
		return
	}
	// Forward under Rx·Ry is (sin y, -cos y sin x, cos y cos x).
	yaw := math.Asin(math.Max(-1, math.Min(1, dir.X)))
	pitch := math.Atan2(-dir.Y, dir.Z)
	if math.Abs(math.Cos(yaw)) < 1e-9 {
		pitch = 0
	}
	c.SetRotationXYZ(math3d.Degrees(pitch), math3d.Degrees(yaw), 0)
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible); depth is 0 at the near plane
// and 1 at the far plane.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Check if behind camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < 0 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}
