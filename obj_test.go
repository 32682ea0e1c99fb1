package goview

import (
	"errors"
	stdreflect "reflect"
	"strings"
	"testing"
)

func TestLoadOBJTriangulation(t *testing.T) {
	const verts = "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 0 2 0\n"

	tests := []struct {
		name        string
		input       string
		wantIndices []uint32
	}{
		{
			name:        "triangle emitted as-is",
			input:       verts + "f 1 2 3\n",
			wantIndices: []uint32{0, 1, 2},
		},
		{
			name:        "quad splits on fixed diagonal",
			input:       verts + "f 1 2 3 4\n",
			wantIndices: []uint32{0, 1, 2, 0, 2, 3},
		},
		{
			name:        "pentagon fans from corner 0",
			input:       verts + "f 1 2 3 4 5\n",
			wantIndices: []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4},
		},
		{
			name:        "position sub-index taken from slash tokens",
			input:       verts + "f 1/7/9 2//3 3/5\n",
			wantIndices: []uint32{0, 1, 2},
		},
		{
			name:        "unresolvable corner dropped, face survives",
			input:       verts + "f 1 x 2 3 4\n",
			wantIndices: []uint32{0, 1, 2, 0, 2, 3},
		},
		{
			name:        "face with fewer than 3 resolvable corners dropped",
			input:       verts + "f 1 x 2\n",
			wantIndices: nil,
		},
		{
			name:        "zero index is unresolvable",
			input:       verts + "f 0 1 2\n",
			wantIndices: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := LoadOBJFromReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("LoadOBJFromReader() error = %v", err)
			}
			if !stdreflect.DeepEqual(mesh.Indices, tt.wantIndices) {
				t.Errorf("Indices = %v, want %v", mesh.Indices, tt.wantIndices)
			}
			if len(mesh.Indices)%3 != 0 {
				t.Errorf("index count %d not a multiple of 3", len(mesh.Indices))
			}
			for _, idx := range mesh.Indices {
				if int(idx) >= len(mesh.Vertices) {
					t.Errorf("index %d out of range for %d vertices", idx, len(mesh.Vertices))
				}
			}
		})
	}
}

func TestLoadOBJVertices(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"o cube",
		"mtllib cube.mtl",
		"v 1.0 2.0 3.0",
		"v 1.0 2.0", // short, skipped
		"vt 0.5 0.5", // unsupported, skipped
		"v -1 -2 -3 1.0", // extra field tolerated
		"s off",
	}, "\n")

	mesh, err := LoadOBJFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadOBJFromReader() error = %v", err)
	}
	if len(mesh.Vertices) != 2 {
		t.Fatalf("got %d vertices, want 2", len(mesh.Vertices))
	}
	if got := mesh.Vertices[0]; got.X() != 1 || got.Y() != 2 || got.Z() != 3 {
		t.Errorf("Vertices[0] = %v", got)
	}
	if got := mesh.Vertices[1]; got.X() != -1 || got.Y() != -2 || got.Z() != -3 {
		t.Errorf("Vertices[1] = %v", got)
	}
}

func TestLoadOBJNormals(t *testing.T) {
	withNormals := "v 0 0 0\nvn 0 1 0\nvn 1 0 0\n"
	mesh, err := LoadOBJFromReader(strings.NewReader(withNormals))
	if err != nil {
		t.Fatalf("LoadOBJFromReader() error = %v", err)
	}
	if len(mesh.Normals) != 2 {
		t.Errorf("got %d normals, want 2", len(mesh.Normals))
	}

	withoutNormals := "v 0 0 0\n"
	mesh, err = LoadOBJFromReader(strings.NewReader(withoutNormals))
	if err != nil {
		t.Fatalf("LoadOBJFromReader() error = %v", err)
	}
	if mesh.Normals != nil {
		t.Errorf("Normals = %v, want nil", mesh.Normals)
	}
}

func TestLoadOBJInvalidComponent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind string
		wantAxis string
	}{
		{"vertex y", "v 1.0 abc 3.0\n", "vertex", "y"},
		{"vertex z", "v 1.0 2.0 3..0\n", "vertex", "z"},
		{"normal x", "vn nope 0 1\n", "normal", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJFromReader(strings.NewReader(tt.input))
			var vce *VertexComponentError
			if !errors.As(err, &vce) {
				t.Fatalf("error = %v, want VertexComponentError", err)
			}
			if vce.Kind != tt.wantKind || vce.Axis != tt.wantAxis {
				t.Errorf("got %s/%s, want %s/%s", vce.Kind, vce.Axis, tt.wantKind, tt.wantAxis)
			}
		})
	}
}

func TestLoadOBJFile(t *testing.T) {
	mesh, err := LoadOBJ("testdata/cube.obj")
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}
	if len(mesh.Vertices) != 8 {
		t.Errorf("got %d vertices, want 8", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("got %d triangles, want 12", mesh.TriangleCount())
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ("testdata/does-not-exist.obj"); err == nil {
		t.Error("expected error for missing file")
	}
}
