package render

import (
	"fmt"

	"github.com/taigrr/tessera/pkg/gl"
)

// Target is an offscreen framebuffer with an RGBA8 color and a 24-bit
// depth renderbuffer. Hidden windows own no pixels, so offscreen modes
// draw and read back through a Target.
type Target struct {
	ctx   gl.Context
	fbo   gl.Framebuffer
	color gl.Renderbuffer
	depth gl.Renderbuffer

	width, height int
}

// NewTarget allocates a complete framebuffer of the given size.
func NewTarget(ctx gl.Context, width, height int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render target %dx%d: size must be positive", width, height)
	}
	t := &Target{
		ctx:   ctx,
		fbo:   ctx.CreateFramebuffer(),
		color: ctx.CreateRenderbuffer(),
		depth: ctx.CreateRenderbuffer(),
	}
	t.allocate(width, height)

	ctx.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	ctx.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.color)
	ctx.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)
	status := ctx.CheckFramebufferStatus(gl.FRAMEBUFFER)
	ctx.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Release()
		return nil, fmt.Errorf("render target %dx%d: framebuffer incomplete (status 0x%X)", width, height, uint32(status))
	}
	return t, nil
}

// Size returns the allocated dimensions.
func (t *Target) Size() (width, height int) { return t.width, t.height }

// Resize reallocates both attachments. Non-positive or unchanged sizes
// are ignored.
func (t *Target) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == t.width && height == t.height) {
		return
	}
	t.allocate(width, height)
}

// Bind makes the target the draw and read framebuffer.
func (t *Target) Bind() { t.ctx.BindFramebuffer(gl.FRAMEBUFFER, t.fbo) }

// Release deletes the framebuffer and its attachments. It is safe to call
// more than once.
func (t *Target) Release() {
	if t.fbo == 0 {
		return
	}
	t.ctx.DeleteFramebuffer(t.fbo)
	t.ctx.DeleteRenderbuffer(t.color)
	t.ctx.DeleteRenderbuffer(t.depth)
	t.fbo, t.color, t.depth = 0, 0, 0
}

func (t *Target) allocate(width, height int) {
	t.width, t.height = width, height
	t.ctx.BindRenderbuffer(gl.RENDERBUFFER, t.color)
	t.ctx.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	t.ctx.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	t.ctx.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	t.ctx.BindRenderbuffer(gl.RENDERBUFFER, 0)
}
