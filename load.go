package goview

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a model file and returns its Mesh, selecting a parser by
// file extension: .obj or .gltf, matched case-insensitively. Any other
// extension fails with ErrUnsupportedFormat. Fallback-to-default-asset
// policy belongs to the caller, not here.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
