package goview

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOBJ parses a Wavefront OBJ file. Only v, vn and f records are
// read; every other record kind is skipped so files using unsupported
// directives (materials, groups, texture coordinates) still load.
func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("goview: open %s: %w", path, err)
	}
	defer file.Close()
	return LoadOBJFromReader(file)
}

// LoadOBJFromBytes parses OBJ data held in memory.
func LoadOBJFromBytes(b []byte) (*Mesh, error) {
	return LoadOBJFromReader(bytes.NewReader(b))
}

// LoadOBJFromReader parses OBJ data line by line. The parser is
// deliberately tolerant: vertex lines with fewer than three components
// are skipped, and face corners whose position index does not parse are
// dropped while the rest of the face survives. A face is triangulated
// only when at least three corners remain, as a fan from corner 0. The
// only hard failures are read errors and non-numeric text inside a
// vertex or normal component.
func LoadOBJFromReader(r io.Reader) (*Mesh, error) {
	var (
		vertices []mgl32.Vec3
		normals  []mgl32.Vec3
		indices  []uint32
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, ok, err := parseComponents(fields[1:], line, "vertex")
			if err != nil {
				return nil, err
			}
			if !ok {
				Logger().Debug("skipping short vertex line", "line", line)
				continue
			}
			vertices = append(vertices, v)
		case "vn":
			v, ok, err := parseComponents(fields[1:], line, "normal")
			if err != nil {
				return nil, err
			}
			if !ok {
				Logger().Debug("skipping short normal line", "line", line)
				continue
			}
			normals = append(normals, v)
		case "f":
			corners := parseFaceCorners(fields[1:])
			if len(corners) < 3 {
				continue
			}
			for i := 1; i < len(corners)-1; i++ {
				indices = append(indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("goview: read obj: %w", err)
	}

	Logger().Info("obj loaded",
		"vertices", len(vertices),
		"indices", len(indices),
		"triangles", len(indices)/3)

	return &Mesh{Vertices: vertices, Indices: indices, Normals: normals}, nil
}

// parseComponents reads the x, y, z fields of a v or vn record. Fewer
// than three fields is not an error, the line is skipped (ok=false).
// A field that is present but not numeric is fatal.
func parseComponents(fields []string, line, kind string) (mgl32.Vec3, bool, error) {
	if len(fields) < 3 {
		return mgl32.Vec3{}, false, nil
	}
	var v mgl32.Vec3
	for i, axis := range [3]string{"x", "y", "z"} {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mgl32.Vec3{}, false, &VertexComponentError{Kind: kind, Axis: axis, Line: line}
		}
		v[i] = float32(f)
	}
	return v, true, nil
}

// parseFaceCorners resolves the position index of each face corner.
// Corner tokens may carry slash-separated sub-indices
// (position/texcoord/normal); only the position is taken. Source
// indices are 1-based, so 0 is as unresolvable as non-numeric text and
// either drops just that corner.
func parseFaceCorners(args []string) []uint32 {
	corners := make([]uint32, 0, len(args))
	for _, arg := range args {
		tok, _, _ := strings.Cut(arg, "/")
		n, err := strconv.ParseUint(tok, 10, 32)
		if err != nil || n == 0 {
			continue
		}
		corners = append(corners, uint32(n-1))
	}
	return corners
}
