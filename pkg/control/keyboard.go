// Package control turns key state into per-frame movement and rotation
// intent and applies it to scene objects with spring-smoothed velocity.
package control

import (
	"maps"
	"slices"
	"strings"

	"github.com/taigrr/tessera/pkg/math3d"
)

// Input is one frame of intent. Movement is in the object's local axes
// (x strafe, y rise, z forward); Rotation holds pitch, yaw and roll rates.
// Components are in [-1, 1].
type Input struct {
	Movement math3d.Vec3
	Rotation math3d.Vec3
}

// IsZero reports whether the input asks for nothing.
func (in Input) IsZero() bool {
	return in.Movement == math3d.Zero3() && in.Rotation == math3d.Zero3()
}

// Axis is one component of an Input.
type Axis int

// Input axes.
const (
	MoveX Axis = iota
	MoveY
	MoveZ
	Pitch
	Yaw
	Roll
)

// Binding maps a key to a signed contribution on one axis.
type Binding struct {
	Axis  Axis
	Value float64
}

// DefaultBindings are W/S forward and back, A/D strafe and the arrows for
// pitch and yaw.
func DefaultBindings() map[string]Binding {
	return map[string]Binding{
		"w":     {MoveZ, 1},
		"s":     {MoveZ, -1},
		"a":     {MoveX, -1},
		"d":     {MoveX, 1},
		"up":    {Pitch, 1},
		"down":  {Pitch, -1},
		"left":  {Yaw, -1},
		"right": {Yaw, 1},
	}
}

// Keyboard tracks which bound keys are held. Key names are lower case;
// letters match regardless of case.
type Keyboard struct {
	bindings map[string]Binding
	held     map[string]bool
}

// NewKeyboard returns a keyboard using bindings, or DefaultBindings when
// bindings is nil.
func NewKeyboard(bindings map[string]Binding) *Keyboard {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	b := make(map[string]Binding, len(bindings))
	for name, v := range bindings {
		b[strings.ToLower(name)] = v
	}
	return &Keyboard{
		bindings: b,
		held:     make(map[string]bool),
	}
}

// Key records a key going down or up. It reports whether the key is bound.
func (k *Keyboard) Key(name string, down bool) bool {
	name = strings.ToLower(name)
	if _, ok := k.bindings[name]; !ok {
		return false
	}
	if down {
		k.held[name] = true
	} else {
		delete(k.held, name)
	}
	return true
}

// Held reports whether name is down.
func (k *Keyboard) Held(name string) bool {
	return k.held[strings.ToLower(name)]
}

// ReleaseAll lifts every key.
func (k *Keyboard) ReleaseAll() {
	clear(k.held)
}

// Names returns the bound key names, sorted.
func (k *Keyboard) Names() []string {
	return slices.Sorted(maps.Keys(k.bindings))
}

// Input sums the held keys per axis. Opposing keys cancel.
func (k *Keyboard) Input() Input {
	var axes [6]float64
	for name := range k.held {
		b := k.bindings[name]
		axes[b.Axis] += b.Value
	}
	for i := range axes {
		axes[i] = max(-1, min(1, axes[i]))
	}
	return Input{
		Movement: math3d.V3(axes[MoveX], axes[MoveY], axes[MoveZ]),
		Rotation: math3d.V3(axes[Pitch], axes[Yaw], axes[Roll]),
	}
}
