package goview

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	stdreflect "reflect"
	"strconv"
	"strings"
	"testing"
)

// writeGLTF lays out a document and its binary buffer as sibling files
// and returns the document path.
func writeGLTF(t *testing.T, doc string, bin []byte) string {
	t.Helper()
	dir := t.TempDir()
	if bin != nil {
		if err := os.WriteFile(filepath.Join(dir, "data.bin"), bin, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "model.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func floatBytes(vals ...float32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

func uint16Bytes(vals ...uint16) []byte {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}

func uint32Bytes(vals ...uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[4*i:], v)
	}
	return b
}

// triangleDoc describes one triangle with positions in bufferView 0 and
// indices of the given componentType in bufferView 1.
const triangleDoc = `{
  "buffers": [{"uri": "data.bin", "byteLength": %LEN%}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": %ILEN%}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 1, "componentType": %CT%, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
}`

func triangleFixture(t *testing.T, componentType string, indexBytes []byte) string {
	t.Helper()
	positions := floatBytes(0, 0, 0, 1, 0, 0, 0, 1, 0)
	bin := append(positions, indexBytes...)
	doc := strings.NewReplacer(
		"%LEN%", strconv.Itoa(len(bin)),
		"%ILEN%", strconv.Itoa(len(indexBytes)),
		"%CT%", componentType,
	).Replace(triangleDoc)
	return writeGLTF(t, doc, bin)
}

func TestLoadGLTFIndexTypes(t *testing.T) {
	tests := []struct {
		name          string
		componentType string
		indexBytes    []byte
	}{
		{"unsigned byte", "5121", []byte{0, 1, 2}},
		{"unsigned short", "5123", uint16Bytes(0, 1, 2)},
		{"unsigned int", "5125", uint32Bytes(0, 1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := LoadGLTF(triangleFixture(t, tt.componentType, tt.indexBytes))
			if err != nil {
				t.Fatalf("LoadGLTF() error = %v", err)
			}
			if want := []uint32{0, 1, 2}; !stdreflect.DeepEqual(mesh.Indices, want) {
				t.Errorf("Indices = %v, want %v", mesh.Indices, want)
			}
			if len(mesh.Vertices) != 3 {
				t.Fatalf("got %d vertices, want 3", len(mesh.Vertices))
			}
			if v := mesh.Vertices[1]; v.X() != 1 || v.Y() != 0 || v.Z() != 0 {
				t.Errorf("Vertices[1] = %v", v)
			}
			if mesh.Normals != nil {
				t.Error("glTF path must not populate normals")
			}
		})
	}
}

func TestLoadGLTFUnsupportedIndexType(t *testing.T) {
	// 5126 is FLOAT, never valid for indices.
	_, err := LoadGLTF(triangleFixture(t, "5126", floatBytes(0, 1, 2)))
	var uite *UnsupportedIndexTypeError
	if !errors.As(err, &uite) {
		t.Fatalf("error = %v, want UnsupportedIndexTypeError", err)
	}
	if uite.ComponentType != 5126 {
		t.Errorf("ComponentType = %d, want 5126", uite.ComponentType)
	}
}

func TestLoadGLTFByteOffsetsCompose(t *testing.T) {
	// Positions preceded by 8 bytes of view padding plus a 4 byte
	// accessor offset: the parser must read at byte 12.
	positions := floatBytes(5, 6, 7)
	bin := append(make([]byte, 12), positions...)
	doc := `{
	  "buffers": [{"uri": "data.bin", "byteLength": 24}],
	  "bufferViews": [{"buffer": 0, "byteOffset": 8, "byteLength": 16}],
	  "accessors": [{"bufferView": 0, "byteOffset": 4, "componentType": 5126, "count": 1, "type": "VEC3"}],
	  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}]
	}`
	mesh, err := LoadGLTF(writeGLTF(t, doc, bin))
	if err != nil {
		t.Fatalf("LoadGLTF() error = %v", err)
	}
	if len(mesh.Vertices) != 1 {
		t.Fatalf("got %d vertices, want 1", len(mesh.Vertices))
	}
	if v := mesh.Vertices[0]; v.X() != 5 || v.Y() != 6 || v.Z() != 7 {
		t.Errorf("Vertices[0] = %v", v)
	}
}

func TestLoadGLTFBufferRange(t *testing.T) {
	// Accessor claims 3 positions but the buffer holds only one.
	doc := `{
	  "buffers": [{"uri": "data.bin", "byteLength": 12}],
	  "bufferViews": [{"buffer": 0, "byteLength": 12}],
	  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
	  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}]
	}`
	_, err := LoadGLTF(writeGLTF(t, doc, floatBytes(0, 0, 0)))
	var bre *BufferRangeError
	if !errors.As(err, &bre) {
		t.Fatalf("error = %v, want BufferRangeError", err)
	}
	if bre.Size != 12 || bre.Need != 36 {
		t.Errorf("range = [%d:+%d) of %d", bre.Offset, bre.Need, bre.Size)
	}
}

func TestLoadGLTFPermissiveEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "no meshes",
			doc:  `{"buffers": [{"uri": "data.bin", "byteLength": 0}]}`,
		},
		{
			name: "no primitives",
			doc:  `{"buffers": [{"uri": "data.bin", "byteLength": 0}], "meshes": [{"primitives": []}]}`,
		},
		{
			name: "primitive without POSITION or indices",
			doc:  `{"buffers": [{"uri": "data.bin", "byteLength": 0}], "meshes": [{"primitives": [{"attributes": {}}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := LoadGLTF(writeGLTF(t, tt.doc, []byte{}))
			if err != nil {
				t.Fatalf("LoadGLTF() error = %v", err)
			}
			if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
				t.Errorf("got %d vertices, %d indices, want empty mesh",
					len(mesh.Vertices), len(mesh.Indices))
			}
		})
	}
}

func TestLoadGLTFDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"buffers": [`},
		{"no buffers", `{"meshes": []}`},
		{"accessor out of range", `{
		  "buffers": [{"uri": "data.bin", "byteLength": 0}],
		  "meshes": [{"primitives": [{"attributes": {"POSITION": 7}}]}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGLTF(writeGLTF(t, tt.doc, []byte{}))
			var de *DocumentError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v, want DocumentError", err)
			}
		})
	}
}

func TestLoadGLTFMissingBuffer(t *testing.T) {
	doc := `{"buffers": [{"uri": "gone.bin", "byteLength": 0}]}`
	_, err := LoadGLTF(writeGLTF(t, doc, nil))
	var bre *BufferReadError
	if !errors.As(err, &bre) {
		t.Fatalf("error = %v, want BufferReadError", err)
	}
	if bre.URI != "gone.bin" {
		t.Errorf("URI = %q, want gone.bin", bre.URI)
	}
}
