package goview

import "github.com/go-gl/mathgl/mgl32"

// Bounds is an axis-aligned bounding box over raw vertex positions.
// It is derived once after a parse and never stored on the Mesh.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// ComputeBounds scans the vertex positions in a single pass. An empty
// slice yields the zero Bounds; callers should treat MaxDimension() == 0
// as a signal to skip scaling.
func ComputeBounds(vertices []mgl32.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v[i])
			b.Max[i] = max(b.Max[i], v[i])
		}
	}
	return b
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the per-axis extents of the box.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxDimension returns the largest per-axis extent.
func (b Bounds) MaxDimension() float32 {
	s := b.Size()
	return max(s.X(), s.Y(), s.Z())
}

// FitScale returns the uniform scale factor that fits the box into a
// 2-unit cube, or 1 for a degenerate box.
func (b Bounds) FitScale() float32 {
	d := b.MaxDimension()
	if d == 0 {
		return 1
	}
	return 2 / d
}

// FitTransform expresses normalization as a transform: center the box
// on the origin, then scale its largest extent to 2. The mesh data is
// never rewritten, so the same Mesh can be refit to a different target
// volume without reparsing.
func (b Bounds) FitTransform() mgl32.Mat4 {
	s := b.FitScale()
	c := b.Center()
	return mgl32.Scale3D(s, s, s).Mul4(mgl32.Translate3D(-c.X(), -c.Y(), -c.Z()))
}
