// Package viewer opens a raylib window and renders a room layout with an
// orbit camera until the window is closed.
package viewer

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/scene"
)

// Window defaults.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	DefaultTitle  = "roomscene"
)

// Options configures the viewer window.
type Options struct {
	Width, Height int32
	FPS           int32
	Title         string
	// HUD draws the layout summary and frame rate in the top-left corner.
	HUD    bool
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Run opens a window, builds the scene for l and renders it until the
// window closes or ctx is canceled. Scene resources are released before the
// window closes on every exit path.
func Run(ctx context.Context, l room.Layout, opts Options) error {
	opts.setDefaults()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("open window")
	}
	rl.SetTargetFPS(opts.FPS)

	backend := NewBackend()
	defer backend.Close()
	asm := scene.NewAssembler(backend, opts.Logger)
	defer asm.Close()

	return scene.With(ctx, asm, l, func(h scene.Handle, g *scene.Graph) error {
		v := newView(g, backend, opts.HUD)
		opts.Logger.Debug("render loop started", "scene", h, "meshes", len(g.Meshes()))
		frames, err := scene.Loop(ctx, window{}, v)
		opts.Logger.Debug("render loop stopped", "frames", frames)
		return err
	})
}

// window adapts the raylib window to scene.Surface.
type window struct{}

func (window) ShouldClose() bool   { return rl.WindowShouldClose() }
func (window) FrameTime() float64 { return float64(rl.GetFrameTime()) }

// view draws one scene graph per frame.
type view struct {
	graph   *scene.Graph
	backend *Backend
	orbit   *scene.Orbit
	camera  rl.Camera3D
	bg      rl.Color
	hud     string
}

func newView(g *scene.Graph, b *Backend, hud bool) *view {
	v := &view{
		graph:   g,
		backend: b,
		orbit:   scene.NewOrbit(g.Camera, g.Controls),
		bg:      toColor(g.Background),
	}
	v.camera = rl.Camera3D{
		Target:     rl.NewVector3(float32(g.Camera.Target.X()), float32(g.Camera.Target.Y()), float32(g.Camera.Target.Z())),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(g.Camera.FOV),
		Projection: rl.CameraPerspective,
	}
	if hud {
		v.hud = fmt.Sprintf("%s scene, %d meshes", g.Variant, len(g.Meshes())-1)
	}
	return v
}

// Frame reads input, advances the orbit camera and draws the scene.
func (v *view) Frame(dt float64) error {
	v.input()
	v.orbit.Update()
	eye := v.orbit.Position()
	v.camera.Position = rl.NewVector3(float32(eye.X()), float32(eye.Y()), float32(eye.Z()))

	rl.BeginDrawing()
	rl.ClearBackground(v.bg)
	rl.BeginMode3D(v.camera)
	v.backend.Draw(v.graph, eye)
	rl.EndMode3D()
	if v.hud != "" {
		rl.DrawText(v.hud, 10, 10, 20, rl.DarkGray)
		rl.DrawFPS(10, 36)
	}
	rl.EndDrawing()
	return nil
}

// input turns a left-button drag into rotation and the wheel into zoom. A
// drag across the full window height turns the camera once around.
func (v *view) input() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		h := float64(rl.GetScreenHeight())
		if h > 0 {
			v.orbit.Rotate(2*math.Pi*float64(d.X)/h, 2*math.Pi*float64(d.Y)/h)
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.orbit.Zoom(float64(wheel))
	}
}
