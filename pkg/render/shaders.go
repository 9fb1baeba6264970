package render

import (
	_ "embed"
	"fmt"

	"github.com/taigrr/tessera/pkg/gl"
	"github.com/taigrr/tessera/pkg/gpu"
)

// Default Lambert shaders. They read a_position and a_normal and use every
// uniform the renderer submits.
var (
	//go:embed shaders/lambert.vert.glsl
	DefaultVertexShader string
	//go:embed shaders/lambert.frag.glsl
	DefaultFragmentShader string
)

// CompileDefault compiles the built-in shaders.
func CompileDefault(ctx gl.Context) (*gpu.Program, error) {
	p, err := gpu.Compile(ctx, DefaultVertexShader, DefaultFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("default shaders: %w", err)
	}
	return p, nil
}
