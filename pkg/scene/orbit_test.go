package scene

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/roomscene/pkg/room"
)

func near(a, b room.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestNewOrbitRoundTrip(t *testing.T) {
	env := room.DefaultEnvironment()
	o := NewOrbit(env.Camera, env.Controls)
	if got := o.Position(); !near(got, env.Camera.Position, 1e-9) {
		t.Errorf("Position() = %v, want %v", got, env.Camera.Position)
	}
	if math.Abs(o.Radius-math.Hypot(15, 25)) > 1e-9 {
		t.Errorf("Radius = %v", o.Radius)
	}
}

func TestOrbitRotateUndamped(t *testing.T) {
	cam := room.Camera{Position: room.Vec3{0, 0, 10}}
	o := NewOrbit(cam, room.Controls{})
	o.Rotate(-math.Pi/2, 0)
	o.Update()
	if got := o.Position(); !near(got, room.Vec3{10, 0, 0}, 1e-9) {
		t.Errorf("Position() = %v, want (10, 0, 0)", got)
	}
	if !o.Settled() {
		t.Error("undamped orbit not settled after one update")
	}
}

func TestOrbitDamping(t *testing.T) {
	cam := room.Camera{Position: room.Vec3{0, 0, 10}}
	o := NewOrbit(cam, room.Controls{Damping: true, DampingFactor: 0.25})
	o.Rotate(-1, 0)

	o.Update()
	if math.Abs(o.Theta-0.25) > 1e-12 {
		t.Errorf("after one frame Theta = %v, want 0.25", o.Theta)
	}
	if o.Settled() {
		t.Error("damped orbit settled after one frame")
	}
	for range 200 {
		o.Update()
	}
	if math.Abs(o.Theta-1) > 1e-9 {
		t.Errorf("converged Theta = %v, want 1", o.Theta)
	}
	if !o.Settled() {
		t.Error("orbit never settled")
	}
}

func TestOrbitPolarClamp(t *testing.T) {
	o := NewOrbit(room.Camera{Position: room.Vec3{0, 5, 5}}, room.Controls{})
	o.Rotate(0, 10)
	o.Update()
	if o.Phi < minPolar || o.Phi > maxPolar {
		t.Errorf("Phi = %v escaped clamp", o.Phi)
	}
}

func TestOrbitZoom(t *testing.T) {
	tests := []struct {
		name  string
		zoom  bool
		steps float64
		want  float64
	}{
		{"in", true, 1, 10 * zoomStep},
		{"out", true, -1, 10 / zoomStep},
		{"disabled", false, 3, 10},
		{"clamped", true, 1000, minRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrbit(room.Camera{Position: room.Vec3{0, 0, 10}}, room.Controls{Zoom: tt.zoom})
			o.Zoom(tt.steps)
			o.Update()
			if math.Abs(o.Radius-tt.want) > 1e-9 {
				t.Errorf("Radius = %v, want %v", o.Radius, tt.want)
			}
		})
	}
}

type fakeSurface struct {
	closeAfter int
	polls      int
}

func (s *fakeSurface) ShouldClose() bool {
	s.polls++
	return s.polls > s.closeAfter
}

func (s *fakeSurface) FrameTime() float64 { return 1.0 / 60 }

func TestLoop(t *testing.T) {
	var dts []float64
	n, err := Loop(context.Background(), &fakeSurface{closeAfter: 3}, FrameFunc(func(dt float64) error {
		dts = append(dts, dt)
		return nil
	}))
	if err != nil || n != 3 || len(dts) != 3 {
		t.Errorf("Loop = %d, %v; frames seen %d", n, err, len(dts))
	}
}

func TestLoopStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n, err := Loop(ctx, &fakeSurface{closeAfter: 100}, FrameFunc(func(float64) error {
		cancel()
		return nil
	}))
	if !errors.Is(err, context.Canceled) || n != 1 {
		t.Errorf("canceled loop = %d, %v", n, err)
	}

	boom := errors.New("boom")
	n, err = Loop(context.Background(), &fakeSurface{closeAfter: 100}, FrameFunc(func(float64) error {
		return boom
	}))
	if !errors.Is(err, boom) || n != 0 {
		t.Errorf("failing loop = %d, %v", n, err)
	}
}
