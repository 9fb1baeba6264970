package gpu

import (
	"fmt"

	"github.com/taigrr/tessera/pkg/gl"
)

// ShaderCompileError reports a shader stage that failed to compile.
type ShaderCompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("gpu: compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link or validate.
type LinkError struct {
	Log        string
	Validation bool
}

func (e *LinkError) Error() string {
	if e.Validation {
		return "gpu: validate program: " + e.Log
	}
	return "gpu: link program: " + e.Log
}

// UnsupportedUniformTypeError is recorded for active uniforms the program
// cannot set, such as samplers. It never fails Compile.
type UnsupportedUniformTypeError struct {
	Name string
	Type gl.Enum
}

func (e *UnsupportedUniformTypeError) Error() string {
	return fmt.Sprintf("gpu: uniform %q has unsupported type 0x%04X", e.Name, uint32(e.Type))
}

// InvalidArgumentError reports a uniform value that does not fit the
// uniform it was submitted for.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("gpu: uniform %q: %s", e.Name, e.Reason)
}
