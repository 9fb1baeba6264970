package control

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/tessera/pkg/math3d"
)

// Rotator is anything with an Euler rotation in degrees.
type Rotator interface {
	Rotate(delta math3d.Vec3)
}

// Transformable can be moved along its own axes and rotated.
type Transformable interface {
	Rotator
	TranslateLocal(delta math3d.Vec3)
}

// rest is the speed below which a decaying axis snaps to zero, so an idle
// target stops being marked dirty.
const rest = 1e-4

// Options tune a Controller.
type Options struct {
	MoveSpeed float64 // units per second at full input
	TurnSpeed float64 // degrees per second at full input
	Frequency float64 // spring angular frequency
	Damping   float64 // 1 is critically damped
	FPS       int
}

// DefaultOptions returns a critically damped controller for 60 FPS.
func DefaultOptions() Options {
	return Options{
		MoveSpeed: 5,
		TurnSpeed: 90,
		Frequency: 6,
		Damping:   1,
		FPS:       60,
	}
}

// axis is a velocity chasing a target velocity through a spring.
type axis struct {
	vel   float64
	accel float64 // the spring's own velocity
}

func (a *axis) update(s harmonica.Spring, target float64) float64 {
	a.vel, a.accel = s.Update(a.vel, a.accel, target)
	if target == 0 && math.Abs(a.vel) < rest && math.Abs(a.accel) < rest {
		a.vel, a.accel = 0, 0
	}
	return a.vel
}

// Controller turns Input into smoothed motion. Each frame the linear and
// angular velocities spring toward the input's target and are applied in
// the target's local space.
type Controller struct {
	opts   Options
	spring harmonica.Spring
	dt     float64

	move [3]axis
	turn [3]axis
}

// NewController returns a controller at rest.
func NewController(opts Options) *Controller {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	return &Controller{
		opts:   opts,
		spring: harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, opts.Damping),
		dt:     harmonica.FPS(opts.FPS),
	}
}

// Update advances one frame and moves target. Nothing is applied while the
// controller is at rest.
func (c *Controller) Update(target Transformable, in Input) {
	m := in.Movement.Scale(c.opts.MoveSpeed)
	r := in.Rotation.Scale(c.opts.TurnSpeed)

	move := math3d.V3(
		c.move[0].update(c.spring, m.X),
		c.move[1].update(c.spring, m.Y),
		c.move[2].update(c.spring, m.Z),
	)
	turn := math3d.V3(
		// Positive pitch input looks up; RotateX tips forward down.
		c.turn[0].update(c.spring, -r.X),
		c.turn[1].update(c.spring, r.Y),
		c.turn[2].update(c.spring, r.Z),
	)

	if move != math3d.Zero3() {
		target.TranslateLocal(move.Scale(c.dt))
	}
	if turn != math3d.Zero3() {
		target.Rotate(turn.Scale(c.dt))
	}
}

// Velocity returns the current linear (units/s) and angular (deg/s)
// velocity.
func (c *Controller) Velocity() (move, turn math3d.Vec3) {
	return math3d.V3(c.move[0].vel, c.move[1].vel, c.move[2].vel),
		math3d.V3(c.turn[0].vel, c.turn[1].vel, c.turn[2].vel)
}

// Reset stops all motion.
func (c *Controller) Reset() {
	c.move = [3]axis{}
	c.turn = [3]axis{}
}

// Spinner rotates a target at a constant rate in degrees per second,
// easing in from rest.
type Spinner struct {
	Rate math3d.Vec3

	spring harmonica.Spring
	dt     float64
	axes   [3]axis
}

// NewSpinner returns a spinner for the given rate and frame rate.
func NewSpinner(rate math3d.Vec3, fps int) *Spinner {
	if fps <= 0 {
		fps = DefaultOptions().FPS
	}
	return &Spinner{
		Rate:   rate,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		dt:     harmonica.FPS(fps),
	}
}

// Update advances one frame.
func (s *Spinner) Update(target Rotator) {
	v := math3d.V3(
		s.axes[0].update(s.spring, s.Rate.X),
		s.axes[1].update(s.spring, s.Rate.Y),
		s.axes[2].update(s.spring, s.Rate.Z),
	)
	if v != math3d.Zero3() {
		target.Rotate(v.Scale(s.dt))
	}
}
