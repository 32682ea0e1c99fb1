package goview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
)

// Renderer draws one Mesh per frame into an offscreen buffer. When a
// supersampling factor above 1 is configured, rasterization happens at
// the scaled resolution and Image downsamples to the output size.
type Renderer struct {
	Width   int
	Height  int
	SSAA    int
	Context *Context
	Shader  Shader
}

func NewRenderer(width, height, ssaa int, shader Shader) *Renderer {
	if ssaa < 1 {
		ssaa = 1
	}
	return &Renderer{
		Width:   width,
		Height:  height,
		SSAA:    ssaa,
		Context: NewContext(width*ssaa, height*ssaa),
		Shader:  shader,
	}
}

// Draw clears the color and depth buffers and rasterizes the mesh with
// the renderer's shader.
func (r *Renderer) Draw(mesh *Mesh) {
	r.Context.ClearColorBuffer()
	r.Context.ClearDepthBuffer()
	r.Context.DrawMesh(mesh, r.Shader)
}

// Image returns the last frame at output resolution.
func (r *Renderer) Image() image.Image {
	if r.SSAA > 1 {
		return resize.Resize(uint(r.Width), uint(r.Height), r.Context.Image(), resize.Bilinear)
	}
	return r.Context.Image()
}

// WritePNG encodes the last frame to w.
func (r *Renderer) WritePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

// SavePNG writes the last frame to a file.
func (r *Renderer) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("goview: create %s: %w", path, err)
	}
	defer file.Close()
	return png.Encode(file, r.Image())
}
