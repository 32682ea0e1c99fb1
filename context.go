package goview

import (
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type Face int

const (
	_ Face = iota
	FaceCW
	FaceCCW
)

type Cull int

const (
	_ Cull = iota
	CullNone
	CullFront
	CullBack
)

// Context is a software rasterization target: a color buffer, a depth
// buffer, and the state needed to scan-convert clip-space triangles.
// DrawMesh distributes triangles across goroutines; pixel writes are
// guarded by a small array of bucketed locks.
type Context struct {
	Width       int
	Height      int
	ColorBuffer *image.NRGBA
	DepthBuffer []float32
	ClearColor  Color
	FrontFace   Face
	Cull        Cull

	screenMatrix mgl32.Mat4
	locks        []sync.Mutex
}

func NewContext(width, height int) *Context {
	dc := &Context{}
	dc.Width = width
	dc.Height = height
	dc.ColorBuffer = image.NewNRGBA(image.Rect(0, 0, width, height))
	dc.DepthBuffer = make([]float32, width*height)
	dc.ClearColor = Transparent
	dc.FrontFace = FaceCCW
	dc.Cull = CullBack
	dc.screenMatrix = screenMatrix(width, height)
	dc.locks = make([]sync.Mutex, 256)
	dc.ClearDepthBuffer()
	return dc
}

// screenMatrix maps NDC to pixel coordinates with Y pointing down and
// depth mapped to [0, 1].
func screenMatrix(width, height int) mgl32.Mat4 {
	sw := float32(width) / 2
	sh := float32(height) / 2
	return mgl32.Translate3D(sw, sh, 0.5).Mul4(mgl32.Scale3D(sw, -sh, 0.5))
}

func (dc *Context) Image() image.Image {
	return dc.ColorBuffer
}

// ClearColorBufferWith fills the color buffer by replicating one
// prepared row.
func (dc *Context) ClearColorBufferWith(c Color) {
	nrgba := c.NRGBA()
	row := make([]uint8, dc.Width*4)
	for x := 0; x < dc.Width; x++ {
		i := x * 4
		row[i+0] = nrgba.R
		row[i+1] = nrgba.G
		row[i+2] = nrgba.B
		row[i+3] = nrgba.A
	}
	pix := dc.ColorBuffer.Pix
	stride := dc.ColorBuffer.Stride
	for y := 0; y < dc.Height; y++ {
		copy(pix[y*stride:], row)
	}
}

func (dc *Context) ClearColorBuffer() {
	dc.ClearColorBufferWith(dc.ClearColor)
}

func (dc *Context) ClearDepthBuffer() {
	for i := range dc.DepthBuffer {
		dc.DepthBuffer[i] = math.MaxFloat32
	}
}

// DrawMesh rasterizes the mesh's triangle list with the given shader.
// Triangles are striped across logical CPUs; the mesh itself is only
// read, so concurrent workers need no coordination beyond pixel locks.
func (dc *Context) DrawMesh(mesh *Mesh, shader Shader) {
	n := mesh.TriangleCount()
	wn := runtime.NumCPU()
	var wg sync.WaitGroup
	wg.Add(wn)
	for wi := 0; wi < wn; wi++ {
		go func(wi int) {
			defer wg.Done()
			for t := wi; t < n; t += wn {
				dc.DrawTriangle(mesh, t, shader)
			}
		}(wi)
	}
	wg.Wait()
}

// DrawTriangle rasterizes triangle t of the mesh. When the mesh carries
// one normal per vertex those are used; otherwise the face normal is
// derived from the winding.
func (dc *Context) DrawTriangle(mesh *Mesh, t int, shader Shader) {
	i0 := mesh.Indices[3*t]
	i1 := mesh.Indices[3*t+1]
	i2 := mesh.Indices[3*t+2]
	p0 := mesh.Vertices[i0]
	p1 := mesh.Vertices[i1]
	p2 := mesh.Vertices[i2]

	var n0, n1, n2 mgl32.Vec3
	if len(mesh.Normals) == len(mesh.Vertices) {
		n0, n1, n2 = mesh.Normals[i0], mesh.Normals[i1], mesh.Normals[i2]
	} else {
		n := safeNormalize(p1.Sub(p0).Cross(p2.Sub(p0)))
		n0, n1, n2 = n, n, n
	}

	v0 := shader.Vertex(Vertex{Position: p0, Normal: n0})
	v1 := shader.Vertex(Vertex{Position: p1, Normal: n1})
	v2 := shader.Vertex(Vertex{Position: p2, Normal: n2})

	if v0.Outside() || v1.Outside() || v2.Outside() {
		points := clipPolygon(v0.Output, v1.Output, v2.Output)
		if len(points) < 3 {
			return
		}
		c0 := v0.Output.Vec3()
		c1 := v1.Output.Vec3()
		c2 := v2.Output.Vec3()
		for i := 2; i < len(points); i++ {
			a := clippedVertex(v0, v1, v2, barycentric(c0, c1, c2, points[0].Vec3()), points[0])
			b := clippedVertex(v0, v1, v2, barycentric(c0, c1, c2, points[i-1].Vec3()), points[i-1])
			c := clippedVertex(v0, v1, v2, barycentric(c0, c1, c2, points[i].Vec3()), points[i])
			dc.drawClippedTriangle(a, b, c, shader)
		}
		return
	}
	dc.drawClippedTriangle(v0, v1, v2, shader)
}

// clippedVertex rebuilds a vertex at a clipped clip-space point by
// barycentric interpolation of the original corners.
func clippedVertex(v0, v1, v2 Vertex, w mgl32.Vec3, output mgl32.Vec4) Vertex {
	v := blendVertex(v0, v1, v2, w.X(), w.Y(), w.Z())
	v.Output = output
	return v
}

func blendVertex(v0, v1, v2 Vertex, w0, w1, w2 float32) Vertex {
	return Vertex{
		Position: v0.Position.Mul(w0).Add(v1.Position.Mul(w1)).Add(v2.Position.Mul(w2)),
		Normal:   safeNormalize(v0.Normal.Mul(w0).Add(v1.Normal.Mul(w1)).Add(v2.Normal.Mul(w2))),
	}
}

func (dc *Context) drawClippedTriangle(v0, v1, v2 Vertex, shader Shader) {
	ndc0 := v0.Output.Mul(1 / v0.Output.W()).Vec3()
	ndc1 := v1.Output.Mul(1 / v1.Output.W()).Vec3()
	ndc2 := v2.Output.Mul(1 / v2.Output.W()).Vec3()

	if dc.Cull != CullNone {
		area := (ndc1.X()-ndc0.X())*(ndc2.Y()-ndc0.Y()) - (ndc2.X()-ndc0.X())*(ndc1.Y()-ndc0.Y())
		if dc.FrontFace == FaceCW {
			area = -area
		}
		if dc.Cull == CullBack && area <= 0 {
			return
		}
		if dc.Cull == CullFront && area >= 0 {
			return
		}
	}

	s0 := mgl32.TransformCoordinate(ndc0, dc.screenMatrix)
	s1 := mgl32.TransformCoordinate(ndc1, dc.screenMatrix)
	s2 := mgl32.TransformCoordinate(ndc2, dc.screenMatrix)
	dc.rasterize(v0, v1, v2, s0, s1, s2, shader)
}

func edge(a, b, c mgl32.Vec3) float32 {
	return (b.X()-c.X())*(a.Y()-c.Y()) - (b.Y()-c.Y())*(a.X()-c.X())
}

func (dc *Context) rasterize(v0, v1, v2 Vertex, s0, s1, s2 mgl32.Vec3, shader Shader) {
	x0 := clampInt(int(floor32(min(s0.X(), s1.X(), s2.X()))), 0, dc.Width-1)
	x1 := clampInt(int(ceil32(max(s0.X(), s1.X(), s2.X()))), 0, dc.Width-1)
	y0 := clampInt(int(floor32(min(s0.Y(), s1.Y(), s2.Y()))), 0, dc.Height-1)
	y1 := clampInt(int(ceil32(max(s0.Y(), s1.Y(), s2.Y()))), 0, dc.Height-1)

	det := edge(s0, s1, s2)
	if det == 0 {
		return
	}
	ra := 1 / det

	p := mgl32.Vec3{float32(x0) + 0.5, float32(y0) + 0.5, 0}
	w00 := edge(s1, s2, p)
	w01 := edge(s2, s0, p)
	w02 := edge(s0, s1, p)
	a01 := s1.Y() - s0.Y()
	b01 := s0.X() - s1.X()
	a12 := s2.Y() - s1.Y()
	b12 := s1.X() - s2.X()
	a20 := s0.Y() - s2.Y()
	b20 := s2.X() - s0.X()

	r0 := 1 / v0.Output.W()
	r1 := 1 / v1.Output.W()
	r2 := 1 / v2.Output.W()

	stride := dc.Width
	pix := dc.ColorBuffer.Pix

	for y := y0; y <= y1; y++ {
		w0 := w00
		w1 := w01
		w2 := w02
		for x := x0; x <= x1; x++ {
			b0 := w0 * ra
			b1 := w1 * ra
			b2 := w2 * ra

			if b0 >= 0 && b1 >= 0 && b2 >= 0 {
				i := y*stride + x
				z := b0*s0.Z() + b1*s1.Z() + b2*s2.Z()

				// Early depth test without the lock; re-checked below.
				if z <= dc.DepthBuffer[i] {
					// Perspective-correct interpolation weights.
					bx := b0 * r0
					by := b1 * r1
					bz := b2 * r2
					bw := 1 / (bx + by + bz)
					v := blendVertex(v0, v1, v2, bx*bw, by*bw, bz*bw)

					colorVal := shader.Fragment(v)
					if colorVal.A > 0 {
						lock := &dc.locks[(x+y)&255]
						lock.Lock()
						if z <= dc.DepthBuffer[i] {
							dc.DepthBuffer[i] = z
							dc.setPixel(colorVal, pix, i*4)
						}
						lock.Unlock()
					}
				}
			}
			w0 += a12
			w1 += a20
			w2 += a01
		}
		w00 += b12
		w01 += b20
		w02 += b01
	}
}

// setPixel writes one pixel, alpha blending over the existing value for
// translucent fragments.
func (dc *Context) setPixel(c Color, pix []uint8, i int) {
	nrgba := c.NRGBA()
	if c.A < 1 {
		sr, sg, sb, sa := nrgba.RGBA()
		a := (0xffff - sa) * 0x101

		dr := uint32(pix[i+0])
		dg := uint32(pix[i+1])
		db := uint32(pix[i+2])
		da := uint32(pix[i+3])

		pix[i+0] = uint8((dr*a/0xffff + sr) >> 8)
		pix[i+1] = uint8((dg*a/0xffff + sg) >> 8)
		pix[i+2] = uint8((db*a/0xffff + sb) >> 8)
		pix[i+3] = uint8((da*a/0xffff + sa) >> 8)
		return
	}
	pix[i+0] = nrgba.R
	pix[i+1] = nrgba.G
	pix[i+2] = nrgba.B
	pix[i+3] = nrgba.A
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor32(f float32) float32 {
	return float32(math.Floor(float64(f)))
}

func ceil32(f float32) float32 {
	return float32(math.Ceil(float64(f)))
}
