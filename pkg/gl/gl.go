// Package gl defines the subset of the OpenGL API tessera renders through.
//
// The interface is implemented by glcore (go-gl, a real driver) and by
// gltest (an in-memory recorder). All calls must be made from the goroutine
// that owns the context.
package gl

// Enum is a GL enumerant.
type Enum uint32

// Object handles. Zero is never a valid object.
type (
	Shader       uint32
	Program      uint32
	Buffer       uint32
	VertexArray  uint32
	Framebuffer  uint32
	Renderbuffer uint32
)

// UniformLocation is a uniform slot in a linked program. -1 means the
// uniform is inactive.
type UniformLocation int32

// ActiveUniform describes one entry returned by GetActiveUniform.
// Array uniforms report their element count in Size and carry a "[0]"
// suffix in Name.
type ActiveUniform struct {
	Name string
	Size int
	Type Enum
}

// Uniform types.
const (
	FLOAT        Enum = 0x1406
	FLOAT_VEC2   Enum = 0x8B50
	FLOAT_VEC3   Enum = 0x8B51
	FLOAT_VEC4   Enum = 0x8B52
	INT          Enum = 0x1404
	INT_VEC2     Enum = 0x8B53
	INT_VEC3     Enum = 0x8B54
	INT_VEC4     Enum = 0x8B55
	UNSIGNED_INT Enum = 0x1405
	UINT_VEC2    Enum = 0x8DC6
	UINT_VEC3    Enum = 0x8DC7
	UINT_VEC4    Enum = 0x8DC8
	BOOL         Enum = 0x8B56
	BOOL_VEC2    Enum = 0x8B57
	BOOL_VEC3    Enum = 0x8B58
	BOOL_VEC4    Enum = 0x8B59
	FLOAT_MAT2   Enum = 0x8B5A
	FLOAT_MAT3   Enum = 0x8B5B
	FLOAT_MAT4   Enum = 0x8B5C
	FLOAT_MAT2x3 Enum = 0x8B65
	FLOAT_MAT2x4 Enum = 0x8B66
	FLOAT_MAT3x2 Enum = 0x8B67
	FLOAT_MAT3x4 Enum = 0x8B68
	FLOAT_MAT4x2 Enum = 0x8B69
	FLOAT_MAT4x3 Enum = 0x8B6A

	SAMPLER_2D       Enum = 0x8B5E
	SAMPLER_3D       Enum = 0x8B5F
	SAMPLER_CUBE     Enum = 0x8B60
	SAMPLER_2D_ARRAY Enum = 0x8DC1
)

// Shader and program state.
const (
	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	VALIDATE_STATUS Enum = 0x8B83
	INFO_LOG_LENGTH Enum = 0x8B84
	ACTIVE_UNIFORMS Enum = 0x8B86
)

// Buffers and drawing.
const (
	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4
	TRIANGLES            Enum = 0x0004
	UNSIGNED_SHORT       Enum = 0x1403
	UNSIGNED_BYTE        Enum = 0x1401
	RGBA                 Enum = 0x1908
)

// Framebuffer objects.
const (
	FRAMEBUFFER          Enum = 0x8D40
	RENDERBUFFER         Enum = 0x8D41
	COLOR_ATTACHMENT0    Enum = 0x8CE0
	DEPTH_ATTACHMENT     Enum = 0x8D00
	FRAMEBUFFER_COMPLETE Enum = 0x8CD5
	RGBA8                Enum = 0x8058
	DEPTH_COMPONENT24    Enum = 0x81A6
)

// Fixed-function state.
const (
	COLOR_BUFFER_BIT Enum = 0x00004000
	DEPTH_BUFFER_BIT Enum = 0x00000100
	DEPTH_TEST       Enum = 0x0B71
	CULL_FACE        Enum = 0x0B44
	CW               Enum = 0x0900
	CCW              Enum = 0x0901
	BACK             Enum = 0x0405
	FRONT            Enum = 0x0404
)

// Context is the GL surface used by the gpu and render packages.
type Context interface {
	CreateShader(typ Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ValidateProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	GetActiveUniform(p Program, index uint32) ActiveUniform
	GetUniformLocation(p Program, name string) UniformLocation
	GetAttribLocation(p Program, name string) int32

	Uniform1fv(loc UniformLocation, v []float32)
	Uniform2fv(loc UniformLocation, v []float32)
	Uniform3fv(loc UniformLocation, v []float32)
	Uniform4fv(loc UniformLocation, v []float32)
	Uniform1iv(loc UniformLocation, v []int32)
	Uniform2iv(loc UniformLocation, v []int32)
	Uniform3iv(loc UniformLocation, v []int32)
	Uniform4iv(loc UniformLocation, v []int32)
	Uniform1uiv(loc UniformLocation, v []uint32)
	Uniform2uiv(loc UniformLocation, v []uint32)
	Uniform3uiv(loc UniformLocation, v []uint32)
	Uniform4uiv(loc UniformLocation, v []uint32)
	UniformMatrix2fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix3fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix4fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix2x3fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix3x2fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix2x4fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix4x2fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix3x4fv(loc UniformLocation, transpose bool, v []float32)
	UniformMatrix4x3fv(loc UniformLocation, transpose bool, v []float32)

	CreateVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)
	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	DeleteBuffer(b Buffer)
	BufferDataFloat32(target Enum, data []float32, usage Enum)
	BufferDataUint16(target Enum, data []uint16, usage Enum)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(target Enum, fb Framebuffer)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb Renderbuffer)
	CheckFramebufferStatus(target Enum) Enum
	DeleteFramebuffer(fb Framebuffer)
	CreateRenderbuffer() Renderbuffer
	BindRenderbuffer(target Enum, rb Renderbuffer)
	RenderbufferStorage(target, internalFormat Enum, width, height int32)
	DeleteRenderbuffer(rb Renderbuffer)

	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
	Enable(cap Enum)
	Disable(cap Enum)
	FrontFace(mode Enum)
	CullFace(mode Enum)
	DrawElements(mode Enum, count int32, typ Enum, offset int)
	ReadPixels(x, y, width, height int32, format, typ Enum, dst []byte)
}
