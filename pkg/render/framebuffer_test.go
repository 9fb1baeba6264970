package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	red := color.RGBA{255, 0, 0, 255}

	fb.SetPixel(3, 1, red)
	fb.SetPixel(4, 0, red)
	fb.SetPixel(-1, 0, red)

	if fb.GetPixel(3, 1) != red {
		t.Error("in-bounds pixel not set")
	}
	if fb.GetPixel(4, 0) != (color.RGBA{}) {
		t.Error("out-of-bounds read should be transparent")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Resize(2, 3)
	if fb.Width != 2 || fb.Height != 3 || len(fb.Pixels) != 6 {
		t.Errorf("resized to %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Resize(10, 10)
	if len(fb.Pixels) != 100 {
		t.Errorf("grown framebuffer has %d pixels", len(fb.Pixels))
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	sky := color.RGBA{135, 206, 235, 255}
	fb.Clear(sky)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("image bounds = %v", b)
	}
	if got := color.RGBAModel.Convert(img.At(2, 1)); got != sky {
		t.Errorf("pixel = %v, want %v", got, sky)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDrawHalfBlocks(t *testing.T) {
	top := color.RGBA{255, 0, 0, 255}
	bottom := color.RGBA{0, 0, 255, 255}

	w, h := TerminalSize(2, 1)
	fb := NewFramebuffer(w, h)
	fb.SetPixel(0, 0, top)
	fb.SetPixel(0, 1, bottom)

	scr := uv.NewScreenBuffer(4, 2)
	fb.Draw(scr, uv.Rect(1, 1, 2, 1))

	cell := scr.CellAt(1, 1)
	if cell == nil || cell.Content != "▀" {
		t.Fatalf("cell = %+v, want a half block", cell)
	}
	if cell.Style.Fg != top || cell.Style.Bg != bottom {
		t.Errorf("style fg=%v bg=%v, want %v over %v", cell.Style.Fg, cell.Style.Bg, top, bottom)
	}

	// Transparent pixels leave the terminal's default colors.
	if c := scr.CellAt(2, 1); c.Style.Fg != nil || c.Style.Bg != nil {
		t.Errorf("transparent cell style = %+v", c.Style)
	}
	if c := scr.CellAt(0, 0); c.Content == "▀" {
		t.Error("drawing leaked outside the area")
	}
}
