package goview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *Mesh
		wantErr bool
	}{
		{
			name: "valid triangle",
			mesh: &Mesh{
				Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
				Indices:  []uint32{0, 1, 2},
			},
		},
		{
			name: "zero triangles is legal",
			mesh: &Mesh{Vertices: []mgl32.Vec3{{0, 0, 0}}},
		},
		{
			name: "index count not a multiple of 3",
			mesh: &Mesh{
				Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
				Indices:  []uint32{0, 1},
			},
			wantErr: true,
		},
		{
			name: "index out of range",
			mesh: &Mesh{
				Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
				Indices:  []uint32{0, 1, 2},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestMeshSimplify(t *testing.T) {
	mesh, err := LoadOBJ("testdata/cube.obj")
	if err != nil {
		t.Fatal(err)
	}

	if got := mesh.Simplify(1); got != mesh {
		t.Error("factor >= 1 must return the mesh unchanged")
	}

	reduced := mesh.Simplify(0.5)
	if err := reduced.Validate(); err != nil {
		t.Errorf("simplified mesh invalid: %v", err)
	}
	if reduced.TriangleCount() > mesh.TriangleCount() {
		t.Errorf("simplify grew the mesh: %d > %d",
			reduced.TriangleCount(), mesh.TriangleCount())
	}
	if reduced.Normals != nil {
		t.Error("simplify must drop normals")
	}
}

func TestMeshSimplifyEmpty(t *testing.T) {
	empty := &Mesh{}
	if got := empty.Simplify(0.5); got != empty {
		t.Error("empty mesh must be returned unchanged")
	}
}
