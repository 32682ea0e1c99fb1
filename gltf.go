package goview

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
)

// glTF 2.0 componentType values accepted for index accessors.
const (
	componentUnsignedByte  = 5121
	componentUnsignedShort = 5123
	componentUnsignedInt   = 5125
)

// Restricted glTF 2.0 document model. Only the fields this loader
// consumes are declared: the first buffer, the bufferView/accessor
// indirection chain, and the first mesh's first primitive.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
type gltfDocument struct {
	Buffers     []gltfBuffer     `json:"buffers"`
	BufferViews []gltfBufferView `json:"bufferViews"`
	Accessors   []gltfAccessor   `json:"accessors"`
	Meshes      []gltfMesh       `json:"meshes"`
}

type gltfBuffer struct {
	URI        string `json:"uri"`
	ByteLength int    `json:"byteLength"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

type gltfAccessor struct {
	BufferView    int    `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType uint32 `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

type gltfMesh struct {
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
}

// LoadGLTF parses a plain-text glTF 2.0 file. The loader is restricted
// to a single external buffer (resolved as a sibling of the document),
// a single mesh and primitive, the POSITION attribute and one index
// accessor. POSITION is assumed to be tightly packed VEC3 float32; the
// accessor's declared type and componentType are not validated against
// that assumption. A document without a mesh, primitive or POSITION
// attribute yields an empty Mesh rather than an error. Normals are
// never populated on this path.
func LoadGLTF(path string) (*Mesh, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("goview: open %s: %w", path, err)
	}

	var doc gltfDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	if len(doc.Buffers) == 0 {
		return nil, &DocumentError{Path: path, Err: errors.New("no buffers declared")}
	}

	uri := doc.Buffers[0].URI
	buf, err := os.ReadFile(filepath.Join(filepath.Dir(path), uri))
	if err != nil {
		return nil, &BufferReadError{URI: uri, Err: err}
	}

	mesh, err := decodeGLTF(&doc, buf)
	if err != nil {
		return nil, err
	}

	Logger().Info("gltf loaded",
		"vertices", len(mesh.Vertices),
		"indices", len(mesh.Indices),
		"triangles", mesh.TriangleCount())
	return mesh, nil
}

func decodeGLTF(doc *gltfDocument, buf []byte) (*Mesh, error) {
	mesh := &Mesh{}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return mesh, nil
	}
	prim := doc.Meshes[0].Primitives[0]

	if posIdx, ok := prim.Attributes["POSITION"]; ok {
		acc, offset, err := doc.resolveAccessor(posIdx)
		if err != nil {
			return nil, err
		}
		const stride = 12 // 3 little-endian float32 per position
		if err := checkRange(buf, offset, acc.Count*stride); err != nil {
			return nil, err
		}
		mesh.Vertices = make([]mgl32.Vec3, 0, acc.Count)
		for i := 0; i < acc.Count; i++ {
			base := offset + i*stride
			mesh.Vertices = append(mesh.Vertices, mgl32.Vec3{
				math.Float32frombits(binary.LittleEndian.Uint32(buf[base:])),
				math.Float32frombits(binary.LittleEndian.Uint32(buf[base+4:])),
				math.Float32frombits(binary.LittleEndian.Uint32(buf[base+8:])),
			})
		}
	}

	if prim.Indices != nil {
		acc, offset, err := doc.resolveAccessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		var size int
		switch acc.ComponentType {
		case componentUnsignedByte:
			size = 1
		case componentUnsignedShort:
			size = 2
		case componentUnsignedInt:
			size = 4
		default:
			return nil, &UnsupportedIndexTypeError{ComponentType: acc.ComponentType}
		}
		if err := checkRange(buf, offset, acc.Count*size); err != nil {
			return nil, err
		}
		mesh.Indices = make([]uint32, 0, acc.Count)
		for i := 0; i < acc.Count; i++ {
			base := offset + i*size
			switch size {
			case 1:
				mesh.Indices = append(mesh.Indices, uint32(buf[base]))
			case 2:
				mesh.Indices = append(mesh.Indices, uint32(binary.LittleEndian.Uint16(buf[base:])))
			case 4:
				mesh.Indices = append(mesh.Indices, binary.LittleEndian.Uint32(buf[base:]))
			}
		}
	}

	return mesh, nil
}

// resolveAccessor follows the accessor -> bufferView chain and returns
// the accessor together with its base byte offset into the buffer.
// Missing byte offsets decode as zero.
func (doc *gltfDocument) resolveAccessor(i int) (*gltfAccessor, int, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, 0, &DocumentError{Err: fmt.Errorf("accessor %d out of range", i)}
	}
	acc := &doc.Accessors[i]
	if acc.BufferView < 0 || acc.BufferView >= len(doc.BufferViews) {
		return nil, 0, &DocumentError{Err: fmt.Errorf("bufferView %d out of range", acc.BufferView)}
	}
	view := &doc.BufferViews[acc.BufferView]
	return acc, view.ByteOffset + acc.ByteOffset, nil
}

func checkRange(buf []byte, offset, need int) error {
	if offset < 0 || need < 0 || offset+need > len(buf) {
		return &BufferRangeError{Offset: offset, Need: need, Size: len(buf)}
	}
	return nil
}
