package goview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh corner flowing through the pipeline.
// Position and Normal are in model space; Output is the clip-space
// position produced by Shader.Vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Output   mgl32.Vec4
}

// Outside reports whether the vertex lies outside the canonical view
// volume in clip space.
func (v Vertex) Outside() bool {
	x, y, z, w := v.Output.X(), v.Output.Y(), v.Output.Z(), v.Output.W()
	return x < -w || x > w || y < -w || y > w || z < -w || z > w
}

// Shader transforms and shades mesh vertices.
type Shader interface {
	Vertex(Vertex) Vertex
	Fragment(Vertex) Color
}

// PhongShader implements Phong shading with a single directional light.
type PhongShader struct {
	Matrix         mgl32.Mat4 // model-view-projection
	ModelMatrix    mgl32.Mat4 // used to transform normals
	LightDirection mgl32.Vec3
	CameraPosition mgl32.Vec3
	ObjectColor    Color
	AmbientColor   Color
	DiffuseColor   Color
	SpecularColor  Color
	SpecularPower  float32
}

// NewPhongShader returns a Phong shader with white specular highlights
// disabled (SpecularPower 0) and a neutral gray object color.
func NewPhongShader(matrix, model mgl32.Mat4, lightDirection, cameraPosition mgl32.Vec3, ambient, diffuse Color) *PhongShader {
	return &PhongShader{
		Matrix:         matrix,
		ModelMatrix:    model,
		LightDirection: lightDirection,
		CameraPosition: cameraPosition,
		ObjectColor:    HexColor("777"),
		AmbientColor:   ambient,
		DiffuseColor:   diffuse,
		SpecularColor:  White,
		SpecularPower:  0,
	}
}

func (s *PhongShader) Vertex(v Vertex) Vertex {
	v.Output = s.Matrix.Mul4x1(v.Position.Vec4(1))
	normalMatrix := s.ModelMatrix.Inv().Transpose()
	v.Normal = safeNormalize(normalMatrix.Mul4x1(v.Normal.Vec4(0)).Vec3())
	return v
}

func (s *PhongShader) Fragment(v Vertex) Color {
	light := s.AmbientColor
	diffuse := max(v.Normal.Dot(s.LightDirection), 0)
	light = light.Add(s.DiffuseColor.MulScalar(diffuse))
	if diffuse > 0 && s.SpecularPower > 0 {
		camera := safeNormalize(s.CameraPosition.Sub(v.Position))
		reflected := reflect(s.LightDirection.Mul(-1), v.Normal)
		specular := max(camera.Dot(reflected), 0)
		if specular > 0 {
			specular = float32(math.Pow(float64(specular), float64(s.SpecularPower)))
			light = light.Add(s.SpecularColor.MulScalar(specular))
		}
	}
	return s.ObjectColor.Mul(light).Min(White).Alpha(s.ObjectColor.A)
}

// reflect mirrors incident vector i about unit normal n.
func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * i.Dot(n)))
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
