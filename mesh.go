package goview

import (
	"fmt"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is the normalized output of every parser: flat vertex positions
// indexed by a 32-bit triangle list. A Mesh is built once per parse and
// never mutated afterwards; normalization to a viewing volume happens at
// transform-build time (see Bounds), not by rewriting vertices.
type Mesh struct {
	// Vertices holds one position per vertex id.
	Vertices []mgl32.Vec3

	// Indices names triangles as consecutive triples of vertex ids.
	// Its length is always a multiple of 3 and every value is a valid
	// index into Vertices.
	Indices []uint32

	// Normals is nil when the source supplied none. The glTF path never
	// populates it; the OBJ path appends vn records in source order.
	Normals []mgl32.Vec3
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the triangle-list invariants: index count divisible by
// three and every index in range. A mesh with zero triangles is valid;
// whether it is renderable is the caller's concern.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("goview: index count %d is not a multiple of 3", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("goview: index %d out of range for %d vertices", idx, len(m.Vertices))
		}
	}
	return nil
}

// Simplify returns a decimated copy of the mesh with roughly
// factor*TriangleCount() triangles, deduplicating shared corners back
// into indexed form. Normals are dropped; the renderer derives face
// normals when a mesh carries none. A factor >= 1 or an empty mesh
// returns the receiver unchanged.
func (m *Mesh) Simplify(factor float64) *Mesh {
	if factor >= 1 || m.TriangleCount() == 0 {
		return m
	}

	triangles := make([]*simplify.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		triangles = append(triangles, simplify.NewTriangle(
			simplifyVector(m.Vertices[m.Indices[i]]),
			simplifyVector(m.Vertices[m.Indices[i+1]]),
			simplifyVector(m.Vertices[m.Indices[i+2]]),
		))
	}

	reduced := simplify.NewMesh(triangles).Simplify(factor)

	out := &Mesh{}
	lookup := make(map[simplify.Vector]uint32)
	for _, t := range reduced.Triangles {
		for _, v := range [3]simplify.Vector{t.V1, t.V2, t.V3} {
			id, ok := lookup[v]
			if !ok {
				id = uint32(len(out.Vertices))
				lookup[v] = id
				out.Vertices = append(out.Vertices, mgl32.Vec3{
					float32(v.X), float32(v.Y), float32(v.Z),
				})
			}
			out.Indices = append(out.Indices, id)
		}
	}

	Logger().Info("mesh simplified",
		"factor", factor,
		"triangles_in", m.TriangleCount(),
		"triangles_out", out.TriangleCount())
	return out
}

func simplifyVector(v mgl32.Vec3) simplify.Vector {
	return simplify.Vector{X: float64(v.X()), Y: float64(v.Y()), Z: float64(v.Z())}
}
