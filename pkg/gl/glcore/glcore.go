// Package glcore implements gl.Context on top of OpenGL 4.1 core via go-gl.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	gogl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/taigrr/tessera/pkg/gl"
)

// Context is a gl.Context backed by the current OpenGL context.
type Context struct {
	version  string
	renderer string
}

var _ gl.Context = (*Context)(nil)

// New loads the GL function pointers for the context current on the calling
// thread. A context must already be current (see platform.Open).
func New() (*Context, error) {
	if err := gogl.Init(); err != nil {
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}
	return &Context{
		version:  gogl.GoStr(gogl.GetString(gogl.VERSION)),
		renderer: gogl.GoStr(gogl.GetString(gogl.RENDERER)),
	}, nil
}

// Version returns the GL_VERSION string.
func (c *Context) Version() string { return c.version }

// Renderer returns the GL_RENDERER string.
func (c *Context) Renderer() string { return c.renderer }

// The methods below implement gl.Context. Each one forwards to the GL
// entry point of the same name, converting handles and slices to the
// pointer forms go-gl expects.

// CreateShader creates an empty shader object of the given stage.
func (c *Context) CreateShader(typ gl.Enum) gl.Shader {
	return gl.Shader(gogl.CreateShader(uint32(typ)))
}

// ShaderSource replaces the source of s.
func (c *Context) ShaderSource(s gl.Shader, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	defer free()
	length := int32(len(src))
	gogl.ShaderSource(uint32(s), 1, csrc, &length)
}

// CompileShader compiles s; query COMPILE_STATUS for the result.
func (c *Context) CompileShader(s gl.Shader) { gogl.CompileShader(uint32(s)) }

// GetShaderi returns a shader parameter such as COMPILE_STATUS.
func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	gogl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

// GetShaderInfoLog returns the compile log of s without the trailing NUL.
func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	n := c.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n <= 1 {
		return ""
	}
	buf := make([]uint8, n)
	gogl.GetShaderInfoLog(uint32(s), int32(n), nil, &buf[0])
	return trimLog(buf)
}

// DeleteShader flags s for deletion.
func (c *Context) DeleteShader(s gl.Shader) { gogl.DeleteShader(uint32(s)) }

// CreateProgram creates an empty program object.
func (c *Context) CreateProgram() gl.Program { return gl.Program(gogl.CreateProgram()) }

// AttachShader attaches s to p.
func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	gogl.AttachShader(uint32(p), uint32(s))
}

// Program lifecycle.
func (c *Context) LinkProgram(p gl.Program)     { gogl.LinkProgram(uint32(p)) }
func (c *Context) ValidateProgram(p gl.Program) { gogl.ValidateProgram(uint32(p)) }
func (c *Context) UseProgram(p gl.Program)      { gogl.UseProgram(uint32(p)) }
func (c *Context) DeleteProgram(p gl.Program)   { gogl.DeleteProgram(uint32(p)) }

// GetProgrami returns a program parameter such as LINK_STATUS.
func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	gogl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

// GetProgramInfoLog returns the link or validation log of p.
func (c *Context) GetProgramInfoLog(p gl.Program) string {
	n := c.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n <= 1 {
		return ""
	}
	buf := make([]uint8, n)
	gogl.GetProgramInfoLog(uint32(p), int32(n), nil, &buf[0])
	return trimLog(buf)
}

// GetActiveUniform reflects the uniform at index. Names longer than 255
// bytes are truncated.
func (c *Context) GetActiveUniform(p gl.Program, index uint32) gl.ActiveUniform {
	const maxName = 256
	var (
		length int32
		size   int32
		typ    uint32
		name   [maxName]uint8
	)
	gogl.GetActiveUniform(uint32(p), index, maxName, &length, &size, &typ, &name[0])
	return gl.ActiveUniform{
		Name: string(name[:length]),
		Size: int(size),
		Type: gl.Enum(typ),
	}
}

// GetUniformLocation returns -1 for names that are not active.
func (c *Context) GetUniformLocation(p gl.Program, name string) gl.UniformLocation {
	return gl.UniformLocation(gogl.GetUniformLocation(uint32(p), gogl.Str(name+"\x00")))
}

// GetAttribLocation returns -1 for names that are not active.
func (c *Context) GetAttribLocation(p gl.Program, name string) int32 {
	return gogl.GetAttribLocation(uint32(p), gogl.Str(name+"\x00"))
}

// Uniform uploads. The element count is derived from len(v) and the
// component count of the call; v must not be empty.

func (c *Context) Uniform1fv(loc gl.UniformLocation, v []float32) {
	gogl.Uniform1fv(int32(loc), int32(len(v)), &v[0])
}

func (c *Context) Uniform2fv(loc gl.UniformLocation, v []float32) {
	gogl.Uniform2fv(int32(loc), int32(len(v)/2), &v[0])
}

func (c *Context) Uniform3fv(loc gl.UniformLocation, v []float32) {
	gogl.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
}

func (c *Context) Uniform4fv(loc gl.UniformLocation, v []float32) {
	gogl.Uniform4fv(int32(loc), int32(len(v)/4), &v[0])
}

func (c *Context) Uniform1iv(loc gl.UniformLocation, v []int32) {
	gogl.Uniform1iv(int32(loc), int32(len(v)), &v[0])
}

func (c *Context) Uniform2iv(loc gl.UniformLocation, v []int32) {
	gogl.Uniform2iv(int32(loc), int32(len(v)/2), &v[0])
}

func (c *Context) Uniform3iv(loc gl.UniformLocation, v []int32) {
	gogl.Uniform3iv(int32(loc), int32(len(v)/3), &v[0])
}

func (c *Context) Uniform4iv(loc gl.UniformLocation, v []int32) {
	gogl.Uniform4iv(int32(loc), int32(len(v)/4), &v[0])
}

func (c *Context) Uniform1uiv(loc gl.UniformLocation, v []uint32) {
	gogl.Uniform1uiv(int32(loc), int32(len(v)), &v[0])
}

func (c *Context) Uniform2uiv(loc gl.UniformLocation, v []uint32) {
	gogl.Uniform2uiv(int32(loc), int32(len(v)/2), &v[0])
}

func (c *Context) Uniform3uiv(loc gl.UniformLocation, v []uint32) {
	gogl.Uniform3uiv(int32(loc), int32(len(v)/3), &v[0])
}

func (c *Context) Uniform4uiv(loc gl.UniformLocation, v []uint32) {
	gogl.Uniform4uiv(int32(loc), int32(len(v)/4), &v[0])
}

func (c *Context) UniformMatrix2fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix2fv(int32(loc), int32(len(v)/4), transpose, &v[0])
}

func (c *Context) UniformMatrix3fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix3fv(int32(loc), int32(len(v)/9), transpose, &v[0])
}

func (c *Context) UniformMatrix4fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix4fv(int32(loc), int32(len(v)/16), transpose, &v[0])
}

func (c *Context) UniformMatrix2x3fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix2x3fv(int32(loc), int32(len(v)/6), transpose, &v[0])
}

func (c *Context) UniformMatrix3x2fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix3x2fv(int32(loc), int32(len(v)/6), transpose, &v[0])
}

func (c *Context) UniformMatrix2x4fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix2x4fv(int32(loc), int32(len(v)/8), transpose, &v[0])
}

func (c *Context) UniformMatrix4x2fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix4x2fv(int32(loc), int32(len(v)/8), transpose, &v[0])
}

func (c *Context) UniformMatrix3x4fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix3x4fv(int32(loc), int32(len(v)/12), transpose, &v[0])
}

func (c *Context) UniformMatrix4x3fv(loc gl.UniformLocation, transpose bool, v []float32) {
	gogl.UniformMatrix4x3fv(int32(loc), int32(len(v)/12), transpose, &v[0])
}

// CreateVertexArray generates one vertex array name.
func (c *Context) CreateVertexArray() gl.VertexArray {
	var va uint32
	gogl.GenVertexArrays(1, &va)
	return gl.VertexArray(va)
}

// BindVertexArray binds va; zero unbinds.
func (c *Context) BindVertexArray(va gl.VertexArray) { gogl.BindVertexArray(uint32(va)) }

// DeleteVertexArray deletes va.
func (c *Context) DeleteVertexArray(va gl.VertexArray) {
	h := uint32(va)
	gogl.DeleteVertexArrays(1, &h)
}

// CreateBuffer generates one buffer name.
func (c *Context) CreateBuffer() gl.Buffer {
	var b uint32
	gogl.GenBuffers(1, &b)
	return gl.Buffer(b)
}

// BindBuffer binds b to target.
func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	gogl.BindBuffer(uint32(target), uint32(b))
}

// DeleteBuffer deletes b.
func (c *Context) DeleteBuffer(b gl.Buffer) {
	h := uint32(b)
	gogl.DeleteBuffers(1, &h)
}

// BufferDataFloat32 uploads data to the buffer bound to target.
func (c *Context) BufferDataFloat32(target gl.Enum, data []float32, usage gl.Enum) {
	if len(data) == 0 {
		gogl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gogl.BufferData(uint32(target), len(data)*4, unsafe.Pointer(&data[0]), uint32(usage))
}

// BufferDataUint16 uploads index data to the buffer bound to target.
func (c *Context) BufferDataUint16(target gl.Enum, data []uint16, usage gl.Enum) {
	if len(data) == 0 {
		gogl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gogl.BufferData(uint32(target), len(data)*2, unsafe.Pointer(&data[0]), uint32(usage))
}

// VertexAttribPointer describes attribute index within the bound
// ARRAY_BUFFER; offset is in bytes.
func (c *Context) VertexAttribPointer(index uint32, size int32, typ gl.Enum, normalized bool, stride int32, offset int) {
	gogl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, uintptr(offset))
}

// EnableVertexAttribArray enables attribute index on the bound vertex array.
func (c *Context) EnableVertexAttribArray(index uint32) { gogl.EnableVertexAttribArray(index) }

// Fixed-function state.
func (c *Context) ClearColor(r, g, b, a float32) { gogl.ClearColor(r, g, b, a) }
func (c *Context) Clear(mask gl.Enum)            { gogl.Clear(uint32(mask)) }
func (c *Context) Enable(cap gl.Enum)            { gogl.Enable(uint32(cap)) }
func (c *Context) Disable(cap gl.Enum)           { gogl.Disable(uint32(cap)) }
func (c *Context) FrontFace(mode gl.Enum)        { gogl.FrontFace(uint32(mode)) }
func (c *Context) CullFace(mode gl.Enum)         { gogl.CullFace(uint32(mode)) }

// Viewport sets the viewport rectangle in window pixels.
func (c *Context) Viewport(x, y, width, height int32) { gogl.Viewport(x, y, width, height) }

// DrawElements draws from the bound vertex array; offset is in bytes into
// the element buffer.
func (c *Context) DrawElements(mode gl.Enum, count int32, typ gl.Enum, offset int) {
	gogl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), uintptr(offset))
}

// ReadPixels copies a rectangle of the read framebuffer into dst, which
// must be large enough for width*height pixels of format and typ.
func (c *Context) ReadPixels(x, y, width, height int32, format, typ gl.Enum, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gogl.ReadPixels(x, y, width, height, uint32(format), uint32(typ), unsafe.Pointer(&dst[0]))
}

// CreateFramebuffer generates one framebuffer name.
func (c *Context) CreateFramebuffer() gl.Framebuffer {
	var fb uint32
	gogl.GenFramebuffers(1, &fb)
	return gl.Framebuffer(fb)
}

// BindFramebuffer binds fb to target; zero restores the window's
// framebuffer.
func (c *Context) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	gogl.BindFramebuffer(uint32(target), uint32(fb))
}

// FramebufferRenderbuffer attaches rb to the framebuffer bound to target.
func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb gl.Renderbuffer) {
	gogl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), uint32(rb))
}

// CheckFramebufferStatus returns FRAMEBUFFER_COMPLETE when the framebuffer
// bound to target can be drawn to.
func (c *Context) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(gogl.CheckFramebufferStatus(uint32(target)))
}

// DeleteFramebuffer deletes fb.
func (c *Context) DeleteFramebuffer(fb gl.Framebuffer) {
	h := uint32(fb)
	gogl.DeleteFramebuffers(1, &h)
}

// CreateRenderbuffer generates one renderbuffer name.
func (c *Context) CreateRenderbuffer() gl.Renderbuffer {
	var rb uint32
	gogl.GenRenderbuffers(1, &rb)
	return gl.Renderbuffer(rb)
}

// BindRenderbuffer binds rb to target.
func (c *Context) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	gogl.BindRenderbuffer(uint32(target), uint32(rb))
}

// RenderbufferStorage (re)allocates the renderbuffer bound to target.
func (c *Context) RenderbufferStorage(target, internalFormat gl.Enum, width, height int32) {
	gogl.RenderbufferStorage(uint32(target), uint32(internalFormat), width, height)
}

// DeleteRenderbuffer deletes rb.
func (c *Context) DeleteRenderbuffer(rb gl.Renderbuffer) {
	h := uint32(rb)
	gogl.DeleteRenderbuffers(1, &h)
}

func trimLog(buf []uint8) string {
	return strings.TrimRight(string(buf), "\x00\n ")
}
