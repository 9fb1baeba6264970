// Package gpu compiles shader programs, reflects their active uniforms into
// a typed setter table and builds vertex arrays for meshes.
package gpu

import (
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/gl"
	"github.com/taigrr/tessera/pkg/logging"
)

// Attribute names the vertex array builder binds.
const (
	AttribPosition = "a_position"
	AttribNormal   = "a_normal"
	AttribTexCoord = "a_texCoord"
)

// Program is a linked GPU program and its uniform table. The table is
// built once by Compile and never changes afterwards.
type Program struct {
	ctx    gl.Context
	handle gl.Program

	uniforms    map[string]*Uniform
	unsupported []*UnsupportedUniformTypeError

	// names already reported as missing, so per-frame submissions log once
	reported map[string]struct{}
	log      *zap.Logger
}

// Compile compiles both stages, links and validates them, and reflects the
// program's uniforms.
//
// A stage failure returns *ShaderCompileError, a link or validation failure
// *LinkError. No GL objects are leaked on failure.
func Compile(ctx gl.Context, vertexSrc, fragmentSrc string) (*Program, error) {
	log := logging.Named("gpu")

	vs, err := compileShader(ctx, gl.VERTEX_SHADER, "vertex", vertexSrc)
	if err != nil {
		return nil, err
	}
	defer ctx.DeleteShader(vs)

	fs, err := compileShader(ctx, gl.FRAGMENT_SHADER, "fragment", fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer ctx.DeleteShader(fs)

	handle := ctx.CreateProgram()
	ctx.AttachShader(handle, vs)
	ctx.AttachShader(handle, fs)
	ctx.LinkProgram(handle)
	if ctx.GetProgrami(handle, gl.LINK_STATUS) == 0 {
		linkLog := ctx.GetProgramInfoLog(handle)
		ctx.DeleteProgram(handle)
		return nil, &LinkError{Log: linkLog}
	}

	// Core profiles refuse to validate without a vertex array bound.
	va := ctx.CreateVertexArray()
	ctx.BindVertexArray(va)
	ctx.ValidateProgram(handle)
	ok := ctx.GetProgrami(handle, gl.VALIDATE_STATUS) != 0
	ctx.BindVertexArray(0)
	ctx.DeleteVertexArray(va)
	if !ok {
		validateLog := ctx.GetProgramInfoLog(handle)
		ctx.DeleteProgram(handle)
		return nil, &LinkError{Log: validateLog, Validation: true}
	}

	p := &Program{
		ctx:      ctx,
		handle:   handle,
		uniforms: make(map[string]*Uniform),
		reported: make(map[string]struct{}),
		log:      log,
	}
	p.introspect()

	log.Info("program linked",
		zap.Uint32("program", uint32(handle)),
		zap.Int("uniforms", len(p.uniforms)),
		zap.Int("unsupported", len(p.unsupported)),
	)
	return p, nil
}

func compileShader(ctx gl.Context, typ gl.Enum, stage, src string) (gl.Shader, error) {
	s := ctx.CreateShader(typ)
	ctx.ShaderSource(s, src)
	ctx.CompileShader(s)
	if ctx.GetShaderi(s, gl.COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(s)
		ctx.DeleteShader(s)
		return 0, &ShaderCompileError{Stage: stage, Log: log}
	}
	return s, nil
}

// introspect fills the uniform table from the program's active uniforms.
func (p *Program) introspect() {
	n := p.ctx.GetProgrami(p.handle, gl.ACTIVE_UNIFORMS)
	for i := range n {
		au := p.ctx.GetActiveUniform(p.handle, uint32(i))
		name := strings.TrimSuffix(au.Name, "[0]")

		loc := p.ctx.GetUniformLocation(p.handle, au.Name)
		if loc < 0 {
			// Members of uniform blocks have no location.
			continue
		}

		typ, ok := uniformTypes[au.Type]
		if !ok {
			err := &UnsupportedUniformTypeError{Name: name, Type: au.Type}
			p.unsupported = append(p.unsupported, err)
			p.log.Warn("uniform left unset", zap.Error(err))
			continue
		}

		size := max(au.Size, 1)
		u := &Uniform{
			Name:     name,
			Location: loc,
			Type:     au.Type,
			Size:     size,
			typ:      typ,
		}
		ctx := p.ctx
		u.set = func(v Value) { typ.upload(ctx, loc, v) }
		p.uniforms[name] = u
	}
}

// Handle returns the GL program object.
func (p *Program) Handle() gl.Program { return p.handle }

// Use makes p the current program. Uniform submissions go to the current
// program.
func (p *Program) Use() { p.ctx.UseProgram(p.handle) }

// Uniform looks up a uniform by name; array uniforms are keyed without
// their "[0]" suffix.
func (p *Program) Uniform(name string) (*Uniform, bool) {
	u, ok := p.uniforms[name]
	return u, ok
}

// Uniforms returns the sorted names in the uniform table.
func (p *Program) Uniforms() []string {
	return slices.Sorted(maps.Keys(p.uniforms))
}

// Unsupported returns the active uniforms the program cannot set.
func (p *Program) Unsupported() []*UnsupportedUniformTypeError {
	return p.unsupported
}

// SetUniforms uploads every value whose name is in the uniform table. Names
// the program does not use are skipped with a debug diagnostic, once per
// name. If any known value has the wrong kind or length, nothing is
// uploaded and the *InvalidArgumentError is returned.
func (p *Program) SetUniforms(values Values) error {
	names := slices.Sorted(maps.Keys(values))

	for _, name := range names {
		u, ok := p.uniforms[name]
		if !ok {
			continue
		}
		if err := u.check(values[name]); err != nil {
			return err
		}
	}

	for _, name := range names {
		u, ok := p.uniforms[name]
		if !ok {
			p.reportMissing(name)
			continue
		}
		u.set(values[name])
	}
	return nil
}

// Set uploads a single value. Unknown names behave as in SetUniforms.
func (p *Program) Set(name string, v Value) error {
	u, ok := p.uniforms[name]
	if !ok {
		p.reportMissing(name)
		return nil
	}
	if err := u.check(v); err != nil {
		return err
	}
	u.set(v)
	return nil
}

func (p *Program) reportMissing(name string) {
	if _, seen := p.reported[name]; seen {
		return
	}
	p.reported[name] = struct{}{}
	p.log.Debug("uniform not used by program",
		zap.String("uniform", name),
		zap.Uint32("program", uint32(p.handle)),
	)
}

// Delete releases the GL program.
func (p *Program) Delete() {
	p.ctx.DeleteProgram(p.handle)
}
