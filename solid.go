package goview

import "github.com/go-gl/mathgl/mgl32"

// SolidColorShader renders every fragment with one flat color, no
// lighting. Useful for silhouettes and for tests that need predictable
// pixel values.
type SolidColorShader struct {
	Matrix mgl32.Mat4
	Color  Color
}

func NewSolidColorShader(matrix mgl32.Mat4, color Color) *SolidColorShader {
	return &SolidColorShader{Matrix: matrix, Color: color}
}

func (s *SolidColorShader) Vertex(v Vertex) Vertex {
	v.Output = s.Matrix.Mul4x1(v.Position.Vec4(1))
	return v
}

func (s *SolidColorShader) Fragment(Vertex) Color {
	return s.Color
}
