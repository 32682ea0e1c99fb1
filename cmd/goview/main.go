// Command goview displays Wavefront OBJ and plain-text glTF models in a
// window, auto-fitted into view. With -screenshot it renders a single
// frame to PNG and exits instead.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"os"

	"github.com/bsly86/goview"
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		width      = flag.Int("width", 800, "window width")
		height     = flag.Int("height", 600, "window height")
		ssaa       = flag.Int("ssaa", 2, "supersampling factor")
		ratio      = flag.Float64("simplify", 0, "reduce triangle count to this fraction (0 disables)")
		shaderName = flag.String("shader", "phong", "shader: phong, toon or solid")
		colorHex   = flag.String("color", "777", "base model color (hex)")
		screenshot = flag.String("screenshot", "", "render one frame to this PNG and exit")
		fallback   = flag.String("fallback", "", "model loaded when the requested one fails")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	goview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	path := flag.Arg(0)
	if path == "" && *fallback == "" {
		fmt.Fprintln(os.Stderr, "usage: goview [flags] model.{obj,gltf}")
		flag.PrintDefaults()
		os.Exit(2)
	}

	mesh := loadModel(path, *fallback)
	if err := mesh.Validate(); err != nil {
		fatal(err)
	}
	if *ratio > 0 && *ratio < 1 {
		mesh = mesh.Simplify(*ratio)
	}

	app := &app{
		mesh:     mesh,
		fit:      goview.ComputeBounds(mesh.Vertices).FitTransform(),
		renderer: goview.NewRenderer(*width, *height, *ssaa, nil),
		shader:   *shaderName,
		color:    goview.HexColor(*colorHex),
		width:    *width,
		height:   *height,
		distance: 3,
	}
	app.renderer.Context.ClearColor = goview.HexColor("1e1e23")

	if *screenshot != "" {
		app.renderFrame()
		if err := app.renderer.SavePNG(*screenshot); err != nil {
			fatal(err)
		}
		return
	}

	ebiten.SetWindowTitle("goview - model viewer")
	ebiten.SetWindowSize(*width, *height)
	if err := ebiten.RunGame(app); err != nil {
		fatal(err)
	}
}

// loadModel attempts the requested model and, on any failure, exactly
// one fallback load. Failure of the fallback is fatal.
func loadModel(path, fallback string) *goview.Mesh {
	if path != "" {
		mesh, err := goview.Load(path)
		if err == nil {
			return mesh
		}
		fmt.Fprintf(os.Stderr, "goview: failed to load %s: %v\n", path, err)
		if fallback == "" {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "goview: loading fallback model %s\n", fallback)
	}
	mesh, err := goview.Load(fallback)
	if err != nil {
		fatal(err)
	}
	return mesh
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

type app struct {
	mesh     *goview.Mesh
	fit      mgl.Mat4
	renderer *goview.Renderer
	shader   string
	color    goview.Color
	width    int
	height   int

	yaw      float32
	pitch    float32
	distance float32

	dragging     bool
	dragX, dragY int
}

func (a *app) Layout(outerWidth, outerHeight int) (int, int) {
	return a.width, a.height
}

func (a *app) Update() error {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		if a.dragging {
			a.yaw += float32(cx-a.dragX) / 100
			a.pitch = mgl.Clamp(a.pitch+float32(cy-a.dragY)/100, -math.Pi/2, math.Pi/2)
		}
		a.dragging = true
		a.dragX, a.dragY = cx, cy
	} else {
		a.dragging = false
	}

	if !a.dragging {
		a.yaw += 0.01
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		a.distance = mgl.Clamp(a.distance-float32(wy)*0.2, 1.2, 20)
	}
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.renderFrame()
	switch im := a.renderer.Image().(type) {
	case *image.NRGBA:
		// Frames are fully opaque, so non-premultiplied bytes double
		// as the premultiplied RGBA that WritePixels expects.
		screen.WritePixels(im.Pix)
	default:
		rgba := image.NewRGBA(im.Bounds())
		draw.Draw(rgba, rgba.Bounds(), im, image.Point{}, draw.Src)
		screen.WritePixels(rgba.Pix)
	}
}

func (a *app) renderFrame() {
	a.renderer.Shader = a.buildShader()
	a.renderer.Draw(a.mesh)
}

// buildShader rebuilds the frame's shader from the current camera and
// rotation state. The model transform is rotation over the bounds fit,
// so the mesh data itself is never rewritten.
func (a *app) buildShader() goview.Shader {
	aspect := float32(a.width) / float32(a.height)
	eye := mgl.Vec3{0, 0, a.distance}
	light := mgl.Vec3{0.75, 1, 0.25}.Normalize()

	proj := mgl.Perspective(mgl.DegToRad(45), aspect, 0.1, 100)
	view := mgl.LookAtV(eye, mgl.Vec3{}, mgl.Vec3{0, 1, 0})
	model := mgl.HomogRotate3DX(a.pitch).Mul4(mgl.HomogRotate3DY(a.yaw)).Mul4(a.fit)
	mvp := proj.Mul4(view).Mul4(model)

	switch a.shader {
	case "toon":
		return goview.NewToonShader(mvp, model, light)
	case "solid":
		return goview.NewSolidColorShader(mvp, a.color)
	default:
		shader := goview.NewPhongShader(mvp, model, light, eye,
			goview.HexColor("444"), goview.HexColor("bbb"))
		shader.ObjectColor = a.color
		shader.SpecularPower = 32
		return shader
	}
}
