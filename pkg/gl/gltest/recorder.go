// Package gltest provides an in-memory gl.Context for tests.
package gltest

import (
	"slices"
	"strings"

	"github.com/taigrr/tessera/pkg/gl"
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

// Recorder implements gl.Context without a GPU. It records every call,
// hands out increasing object handles and keeps enough state (compile and
// link status, uniform values, buffer contents) for assertions.
//
// Configure failures and program reflection by setting the exported fields
// before the code under test runs.
type Recorder struct {
	// CompileErrors maps a shader stage to the info log it fails with.
	CompileErrors map[gl.Enum]string
	// LinkError and ValidateError fail LinkProgram or ValidateProgram.
	LinkError     string
	ValidateError string
	// Uniforms is what GetActiveUniform reports. The location of a uniform
	// is its index unless Locations overrides it.
	Uniforms  []gl.ActiveUniform
	Locations map[string]gl.UniformLocation
	// Attribs maps attribute names to locations; missing names are -1.
	Attribs map[string]int32
	// FramebufferStatus is what CheckFramebufferStatus reports; zero means
	// FRAMEBUFFER_COMPLETE.
	FramebufferStatus gl.Enum

	Calls []Call

	next       uint32
	stages     map[gl.Shader]gl.Enum
	failed     map[gl.Shader]string
	linked     map[gl.Program]bool
	current    gl.Program
	boundVAO   gl.VertexArray
	bound      map[gl.Enum]gl.Buffer
	values     map[gl.UniformLocation]any
	buffers    map[gl.Buffer]any
	enabled    map[gl.Enum]bool
	clearColor [4]float32
	viewport   [4]int32
	pixels     []byte

	framebuffer  gl.Framebuffer
	renderbuffer gl.Renderbuffer
	storage      map[gl.Renderbuffer][3]int32
}

var _ gl.Context = (*Recorder)(nil)

// NewRecorder returns a Recorder with the standard mesh attributes bound
// to locations 0, 1 and 2.
func NewRecorder() *Recorder {
	return &Recorder{
		Attribs: map[string]int32{
			"a_position": 0,
			"a_normal":   1,
			"a_texCoord": 2,
		},
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) init() {
	if r.stages == nil {
		r.stages = make(map[gl.Shader]gl.Enum)
		r.failed = make(map[gl.Shader]string)
		r.linked = make(map[gl.Program]bool)
		r.bound = make(map[gl.Enum]gl.Buffer)
		r.values = make(map[gl.UniformLocation]any)
		r.buffers = make(map[gl.Buffer]any)
		r.enabled = make(map[gl.Enum]bool)
		r.storage = make(map[gl.Renderbuffer][3]int32)
	}
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls named name, in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the sequence of recorded call names.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets recorded calls but keeps GL state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Value returns the last value uploaded to loc, or nil.
func (r *Recorder) Value(loc gl.UniformLocation) any {
	r.init()
	return r.values[loc]
}

// Location resolves a uniform name the way GetUniformLocation does.
func (r *Recorder) Location(name string) gl.UniformLocation {
	if loc, ok := r.Locations[name]; ok {
		return loc
	}
	for i, u := range r.Uniforms {
		if u.Name == name || strings.TrimSuffix(u.Name, "[0]") == name {
			return gl.UniformLocation(i)
		}
	}
	return -1
}

// Floats returns the float data last uploaded to the named uniform.
func (r *Recorder) Floats(name string) []float32 {
	v, _ := r.Value(r.Location(name)).([]float32)
	return v
}

// BufferData returns what was uploaded to b: a []float32 or []uint16.
func (r *Recorder) BufferData(b gl.Buffer) any {
	r.init()
	return r.buffers[b]
}

// Enabled reports whether cap was turned on with Enable.
func (r *Recorder) Enabled(cap gl.Enum) bool {
	r.init()
	return r.enabled[cap]
}

// CurrentProgram returns the program bound by UseProgram.
func (r *Recorder) CurrentProgram() gl.Program { return r.current }

// ClearColorValue returns the last ClearColor arguments.
func (r *Recorder) ClearColorValue() [4]float32 { return r.clearColor }

// ViewportValue returns the last Viewport arguments.
func (r *Recorder) ViewportValue() [4]int32 { return r.viewport }

// BoundFramebuffer returns the framebuffer last bound with BindFramebuffer.
func (r *Recorder) BoundFramebuffer() gl.Framebuffer { return r.framebuffer }

// Storage returns the internal format, width and height last allocated
// for rb.
func (r *Recorder) Storage(rb gl.Renderbuffer) (format gl.Enum, width, height int32) {
	r.init()
	s := r.storage[rb]
	return gl.Enum(s[0]), s[1], s[2]
}

// SetPixels sets the bytes ReadPixels copies out.
func (r *Recorder) SetPixels(p []byte) { r.pixels = p }

func (r *Recorder) CreateShader(typ gl.Enum) gl.Shader {
	r.init()
	s := gl.Shader(r.handle())
	r.stages[s] = typ
	r.record("CreateShader", typ)
	return s
}

func (r *Recorder) ShaderSource(s gl.Shader, src string) { r.record("ShaderSource", s, src) }

func (r *Recorder) CompileShader(s gl.Shader) {
	r.init()
	if log, ok := r.CompileErrors[r.stages[s]]; ok {
		r.failed[s] = log
	}
	r.record("CompileShader", s)
}

func (r *Recorder) GetShaderi(s gl.Shader, pname gl.Enum) int {
	r.init()
	log, failed := r.failed[s]
	switch pname {
	case gl.COMPILE_STATUS:
		if failed {
			return 0
		}
		return 1
	case gl.INFO_LOG_LENGTH:
		if log == "" {
			return 0
		}
		return len(log) + 1
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(s gl.Shader) string {
	r.init()
	return r.failed[s]
}

func (r *Recorder) DeleteShader(s gl.Shader) { r.record("DeleteShader", s) }

func (r *Recorder) CreateProgram() gl.Program {
	p := gl.Program(r.handle())
	r.record("CreateProgram")
	return p
}

func (r *Recorder) AttachShader(p gl.Program, s gl.Shader) { r.record("AttachShader", p, s) }

func (r *Recorder) LinkProgram(p gl.Program) {
	r.init()
	r.linked[p] = r.LinkError == ""
	r.record("LinkProgram", p)
}

func (r *Recorder) ValidateProgram(p gl.Program) { r.record("ValidateProgram", p) }

func (r *Recorder) GetProgrami(p gl.Program, pname gl.Enum) int {
	r.init()
	switch pname {
	case gl.LINK_STATUS:
		if r.linked[p] {
			return 1
		}
		return 0
	case gl.VALIDATE_STATUS:
		if r.ValidateError == "" {
			return 1
		}
		return 0
	case gl.ACTIVE_UNIFORMS:
		return len(r.Uniforms)
	case gl.INFO_LOG_LENGTH:
		return len(r.GetProgramInfoLog(p)) + 1
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(p gl.Program) string {
	r.init()
	if !r.linked[p] {
		return r.LinkError
	}
	return r.ValidateError
}

func (r *Recorder) UseProgram(p gl.Program) {
	r.current = p
	r.record("UseProgram", p)
}

func (r *Recorder) DeleteProgram(p gl.Program) { r.record("DeleteProgram", p) }

func (r *Recorder) GetActiveUniform(_ gl.Program, index uint32) gl.ActiveUniform {
	if int(index) >= len(r.Uniforms) {
		return gl.ActiveUniform{}
	}
	return r.Uniforms[index]
}

func (r *Recorder) GetUniformLocation(_ gl.Program, name string) gl.UniformLocation {
	return r.Location(name)
}

func (r *Recorder) GetAttribLocation(_ gl.Program, name string) int32 {
	if loc, ok := r.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) uniform(name string, loc gl.UniformLocation, v any) {
	r.init()
	r.values[loc] = v
	r.record(name, loc, v)
}

func (r *Recorder) Uniform1fv(loc gl.UniformLocation, v []float32) {
	r.uniform("Uniform1fv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform2fv(loc gl.UniformLocation, v []float32) {
	r.uniform("Uniform2fv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform3fv(loc gl.UniformLocation, v []float32) {
	r.uniform("Uniform3fv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform4fv(loc gl.UniformLocation, v []float32) {
	r.uniform("Uniform4fv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform1iv(loc gl.UniformLocation, v []int32) {
	r.uniform("Uniform1iv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform2iv(loc gl.UniformLocation, v []int32) {
	r.uniform("Uniform2iv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform3iv(loc gl.UniformLocation, v []int32) {
	r.uniform("Uniform3iv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform4iv(loc gl.UniformLocation, v []int32) {
	r.uniform("Uniform4iv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform1uiv(loc gl.UniformLocation, v []uint32) {
	r.uniform("Uniform1uiv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform2uiv(loc gl.UniformLocation, v []uint32) {
	r.uniform("Uniform2uiv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform3uiv(loc gl.UniformLocation, v []uint32) {
	r.uniform("Uniform3uiv", loc, slices.Clone(v))
}

func (r *Recorder) Uniform4uiv(loc gl.UniformLocation, v []uint32) {
	r.uniform("Uniform4uiv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix2fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix2fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix3fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix3fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix4fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix4fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix2x3fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix2x3fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix3x2fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix3x2fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix2x4fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix2x4fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix4x2fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix4x2fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix3x4fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix3x4fv", loc, slices.Clone(v))
}

func (r *Recorder) UniformMatrix4x3fv(loc gl.UniformLocation, _ bool, v []float32) {
	r.uniform("UniformMatrix4x3fv", loc, slices.Clone(v))
}

func (r *Recorder) CreateVertexArray() gl.VertexArray {
	va := gl.VertexArray(r.handle())
	r.record("CreateVertexArray", va)
	return va
}

func (r *Recorder) BindVertexArray(va gl.VertexArray) {
	r.boundVAO = va
	r.record("BindVertexArray", va)
}

func (r *Recorder) DeleteVertexArray(va gl.VertexArray) { r.record("DeleteVertexArray", va) }

func (r *Recorder) CreateBuffer() gl.Buffer {
	b := gl.Buffer(r.handle())
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) BindBuffer(target gl.Enum, b gl.Buffer) {
	r.init()
	r.bound[target] = b
	r.record("BindBuffer", target, b)
}

func (r *Recorder) DeleteBuffer(b gl.Buffer) { r.record("DeleteBuffer", b) }

func (r *Recorder) BufferDataFloat32(target gl.Enum, data []float32, usage gl.Enum) {
	r.init()
	r.buffers[r.bound[target]] = slices.Clone(data)
	r.record("BufferDataFloat32", target, len(data), usage)
}

func (r *Recorder) BufferDataUint16(target gl.Enum, data []uint16, usage gl.Enum) {
	r.init()
	r.buffers[r.bound[target]] = slices.Clone(data)
	r.record("BufferDataUint16", target, len(data), usage)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, typ gl.Enum, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.clearColor = [4]float32{red, green, blue, alpha}
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gl.Enum) { r.record("Clear", mask) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.viewport = [4]int32{x, y, width, height}
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Enable(cap gl.Enum) {
	r.init()
	r.enabled[cap] = true
	r.record("Enable", cap)
}

func (r *Recorder) Disable(cap gl.Enum) {
	r.init()
	r.enabled[cap] = false
	r.record("Disable", cap)
}

func (r *Recorder) FrontFace(mode gl.Enum) { r.record("FrontFace", mode) }
func (r *Recorder) CullFace(mode gl.Enum)  { r.record("CullFace", mode) }

// DrawElements records the bound vertex array as its first argument.
func (r *Recorder) DrawElements(mode gl.Enum, count int32, typ gl.Enum, offset int) {
	r.record("DrawElements", r.boundVAO, mode, count, typ, offset)
}

// ReadPixels records the bound framebuffer as its last argument.
func (r *Recorder) ReadPixels(x, y, width, height int32, format, typ gl.Enum, dst []byte) {
	copy(dst, r.pixels)
	r.record("ReadPixels", x, y, width, height, format, typ, r.framebuffer)
}

func (r *Recorder) CreateFramebuffer() gl.Framebuffer {
	fb := gl.Framebuffer(r.handle())
	r.record("CreateFramebuffer", fb)
	return fb
}

func (r *Recorder) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	r.framebuffer = fb
	r.record("BindFramebuffer", target, fb)
}

func (r *Recorder) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb gl.Renderbuffer) {
	r.record("FramebufferRenderbuffer", target, attachment, rbTarget, rb)
}

func (r *Recorder) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	r.record("CheckFramebufferStatus", target)
	if r.FramebufferStatus != 0 {
		return r.FramebufferStatus
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (r *Recorder) DeleteFramebuffer(fb gl.Framebuffer) {
	if r.framebuffer == fb {
		r.framebuffer = 0
	}
	r.record("DeleteFramebuffer", fb)
}

func (r *Recorder) CreateRenderbuffer() gl.Renderbuffer {
	rb := gl.Renderbuffer(r.handle())
	r.record("CreateRenderbuffer", rb)
	return rb
}

func (r *Recorder) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	r.renderbuffer = rb
	r.record("BindRenderbuffer", target, rb)
}

func (r *Recorder) RenderbufferStorage(target, internalFormat gl.Enum, width, height int32) {
	r.init()
	r.storage[r.renderbuffer] = [3]int32{int32(internalFormat), width, height}
	r.record("RenderbufferStorage", target, internalFormat, width, height)
}

func (r *Recorder) DeleteRenderbuffer(rb gl.Renderbuffer) { r.record("DeleteRenderbuffer", rb) }
