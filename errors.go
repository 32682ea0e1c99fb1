package goview

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned by Load for paths whose extension is
// neither .obj nor .gltf. Binary .glb containers are not supported.
var ErrUnsupportedFormat = errors.New("goview: unsupported model format (want .obj or .gltf, not .glb)")

// VertexComponentError reports a v or vn record whose numeric field
// could not be parsed. The record kind, the failing axis and the full
// source line are preserved for diagnostics.
type VertexComponentError struct {
	Kind string // "vertex" or "normal"
	Axis string // "x", "y" or "z"
	Line string
}

func (e *VertexComponentError) Error() string {
	return fmt.Sprintf("goview: invalid %s %s in %q", e.Kind, e.Axis, e.Line)
}

// DocumentError reports a glTF document that could not be decoded:
// malformed JSON, a missing buffer declaration, or an accessor or
// bufferView reference outside the declared arrays.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("goview: invalid glTF document: %v", e.Err)
	}
	return fmt.Sprintf("goview: invalid glTF document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// BufferReadError reports a failure to read the external binary buffer
// referenced by a glTF document.
type BufferReadError struct {
	URI string
	Err error
}

func (e *BufferReadError) Error() string {
	return fmt.Sprintf("goview: read glTF buffer %s: %v", e.URI, e.Err)
}

func (e *BufferReadError) Unwrap() error { return e.Err }

// BufferRangeError reports an accessor whose computed byte range falls
// outside the binary buffer.
type BufferRangeError struct {
	Offset int // start of the computed range
	Need   int // bytes required from Offset
	Size   int // actual buffer length
}

func (e *BufferRangeError) Error() string {
	return fmt.Sprintf("goview: glTF accessor range [%d:%d) exceeds buffer size %d",
		e.Offset, e.Offset+e.Need, e.Size)
}

// UnsupportedIndexTypeError reports an index accessor componentType
// outside the accepted set (5121, 5123, 5125).
type UnsupportedIndexTypeError struct {
	ComponentType uint32
}

func (e *UnsupportedIndexTypeError) Error() string {
	return fmt.Sprintf("goview: unsupported glTF index component type %d", e.ComponentType)
}
