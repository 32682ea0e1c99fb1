// Package goview loads 3D model files and prepares them for display.
//
// It reads two on-disk formats, Wavefront OBJ and plain-text glTF 2.0,
// and normalizes both into a single Mesh representation: flat vertex
// positions, a 32-bit triangle index list, and optional normals.
// A bounding-box pass derives the uniform scale and center offset that
// fit any mesh into a 2-unit cube, expressed as a transform so the
// parsed data is never rewritten.
//
//	mesh, err := goview.Load("model.obj")
//	if err != nil {
//	    // handle
//	}
//	bounds := goview.ComputeBounds(mesh.Vertices)
//	mvp := proj.Mul4(view).Mul4(bounds.FitTransform())
//
// The package also carries a small software rasterizer (Context,
// Renderer, the Shader implementations) that consumes a Mesh and a
// transform and produces an image. The viewer binary in cmd/goview
// presents those frames in a window.
//
// Format support is deliberately narrow. OBJ: v, vn and f records only,
// no materials, groups or texture coordinates. glTF: the non-binary
// variant with a single external buffer, a single mesh and primitive,
// and the POSITION attribute plus one index accessor. Binary .glb
// containers are rejected.
package goview
