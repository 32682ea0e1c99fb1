package goview

import "github.com/go-gl/mathgl/mgl32"

// clipPlane is one face of the canonical view volume in homogeneous
// coordinates. A point is inside when (p - origin) . normal > 0.
type clipPlane struct {
	origin mgl32.Vec4
	normal mgl32.Vec4
}

var clipPlanes = [...]clipPlane{
	{mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{-1, 0, 0, 1}},  // right
	{mgl32.Vec4{-1, 0, 0, 1}, mgl32.Vec4{1, 0, 0, 1}},  // left
	{mgl32.Vec4{0, 1, 0, 1}, mgl32.Vec4{0, -1, 0, 1}},  // bottom
	{mgl32.Vec4{0, -1, 0, 1}, mgl32.Vec4{0, 1, 0, 1}},  // top
	{mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec4{0, 0, -1, 1}},  // front
	{mgl32.Vec4{0, 0, -1, 1}, mgl32.Vec4{0, 0, 1, 1}},  // back
}

func (p clipPlane) inside(v mgl32.Vec4) bool {
	return v.Sub(p.origin).Dot(p.normal) > 0
}

// intersect returns the point where segment a->b crosses the plane.
func (p clipPlane) intersect(a, b mgl32.Vec4) mgl32.Vec4 {
	u := b.Sub(a)
	w := a.Sub(p.origin)
	d := p.normal.Dot(u)
	n := -p.normal.Dot(w)
	return a.Add(u.Mul(n / d))
}

// clipPolygon runs Sutherland-Hodgman over the six view volume planes.
// A triangle clipped by six planes can gain at most one vertex per
// plane, so nine slots suffice. Scratch space is local, keeping the
// function safe for concurrent triangle processing.
func clipPolygon(p1, p2, p3 mgl32.Vec4) []mgl32.Vec4 {
	var bufA, bufB [9]mgl32.Vec4
	output := append(bufB[:0], p1, p2, p3)
	for _, plane := range clipPlanes {
		input := append(bufA[:0], output...)
		if len(input) == 0 {
			return nil
		}
		output = bufB[:0]
		prev := input[len(input)-1]
		for _, point := range input {
			if plane.inside(point) {
				if !plane.inside(prev) {
					output = append(output, plane.intersect(prev, point))
				}
				output = append(output, point)
			} else if plane.inside(prev) {
				output = append(output, plane.intersect(prev, point))
			}
			prev = point
		}
	}
	return output
}

// barycentric returns the barycentric coordinates of p in the triangle
// (p1, p2, p3).
func barycentric(p1, p2, p3, p mgl32.Vec3) mgl32.Vec3 {
	v0 := p2.Sub(p1)
	v1 := p3.Sub(p1)
	v2 := p.Sub(p1)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	d := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / d
	w := (d00*d21 - d01*d20) / d
	return mgl32.Vec3{1 - v - w, v, w}
}
