package gpu

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/tessera/pkg/gl"
	"github.com/taigrr/tessera/pkg/models"
)

// ErrMissingAttribute is returned when the program does not read a_position.
var ErrMissingAttribute = errors.New("program has no position attribute")

// BuildVertexArray uploads mesh's buffers and binds them to the program's
// attribute locations. It does not cache the result: callers store it with
// mesh.Bind and must not build twice for one mesh.
func (p *Program) BuildVertexArray(mesh *models.Mesh) (*models.Binding, error) {
	if _, bound := mesh.Binding(); bound {
		return nil, fmt.Errorf("build vertex array: mesh %q: %w", mesh.Name, models.ErrAlreadyBound)
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("build vertex array: %w", err)
	}

	posLoc := p.ctx.GetAttribLocation(p.handle, AttribPosition)
	if posLoc < 0 {
		return nil, fmt.Errorf("build vertex array for %q: %w", mesh.Name, ErrMissingAttribute)
	}

	vao := p.ctx.CreateVertexArray()
	p.ctx.BindVertexArray(vao)
	b := &models.Binding{
		VAO:        vao,
		IndexCount: int32(len(mesh.Indices)),
	}

	attrs := []struct {
		name string
		loc  int32
		size int32
		data []float32
	}{
		{AttribPosition, posLoc, 3, mesh.Positions},
		{AttribNormal, p.ctx.GetAttribLocation(p.handle, AttribNormal), 3, mesh.Normals},
		{AttribTexCoord, p.ctx.GetAttribLocation(p.handle, AttribTexCoord), 2, mesh.UVs},
	}
	for _, a := range attrs {
		if a.loc < 0 || len(a.data) == 0 {
			continue
		}
		buf := p.ctx.CreateBuffer()
		p.ctx.BindBuffer(gl.ARRAY_BUFFER, buf)
		p.ctx.BufferDataFloat32(gl.ARRAY_BUFFER, a.data, gl.STATIC_DRAW)
		p.ctx.VertexAttribPointer(uint32(a.loc), a.size, gl.FLOAT, false, 0, 0)
		p.ctx.EnableVertexAttribArray(uint32(a.loc))
		b.Buffers = append(b.Buffers, buf)
	}

	ebo := p.ctx.CreateBuffer()
	p.ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	p.ctx.BufferDataUint16(gl.ELEMENT_ARRAY_BUFFER, mesh.Indices, gl.STATIC_DRAW)
	b.Buffers = append(b.Buffers, ebo)

	// Unbind the vertex array first so it keeps the element buffer.
	p.ctx.BindVertexArray(0)
	p.ctx.BindBuffer(gl.ARRAY_BUFFER, 0)

	p.log.Debug("vertex array built",
		zap.String("mesh", mesh.Name),
		zap.Uint32("vao", uint32(vao)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int32("indices", b.IndexCount),
	)
	return b, nil
}
