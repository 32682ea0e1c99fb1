package goview

import "github.com/go-gl/mathgl/mgl32"

// ToonShader implements cel shading: the diffuse term is quantized into
// a small set of color bands.
type ToonShader struct {
	Matrix         mgl32.Mat4
	ModelMatrix    mgl32.Mat4
	LightDirection mgl32.Vec3

	// Steps maps brightness thresholds to band colors, ordered by
	// descending threshold. The first step whose threshold the diffuse
	// term reaches wins.
	Steps []ToonStep
}

// ToonStep is one brightness band of a ToonShader.
type ToonStep struct {
	Threshold float32
	Color     Color
}

func NewToonShader(matrix, model mgl32.Mat4, lightDirection mgl32.Vec3) *ToonShader {
	return &ToonShader{
		Matrix:         matrix,
		ModelMatrix:    model,
		LightDirection: safeNormalize(lightDirection),
		Steps: []ToonStep{
			{0.8, HexColor("ffffaa")},
			{0.5, HexColor("ff8844")},
			{0.2, HexColor("a12c00")},
			{0.0, HexColor("4d1100")},
		},
	}
}

func (s *ToonShader) Vertex(v Vertex) Vertex {
	v.Output = s.Matrix.Mul4x1(v.Position.Vec4(1))
	normalMatrix := s.ModelMatrix.Inv().Transpose()
	v.Normal = safeNormalize(normalMatrix.Mul4x1(v.Normal.Vec4(0)).Vec3())
	return v
}

func (s *ToonShader) Fragment(v Vertex) Color {
	diffuse := max(v.Normal.Dot(s.LightDirection), 0)
	for _, step := range s.Steps {
		if diffuse >= step.Threshold {
			return step.Color
		}
	}
	return Black
}
