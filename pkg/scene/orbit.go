package scene

import (
	"math"

	"github.com/matzehuels/roomscene/pkg/room"
)

// Orbit limits.
const (
	minPolar     = 1e-3
	maxPolar     = math.Pi - 1e-3
	zoomStep     = 0.95
	minRadius    = 1.0
	maxRadius    = 500.0
	settledDelta = 1e-6
)

// Orbit is an orbit camera rig: the eye sits on a sphere around Target and
// is steered by rotate and zoom input. With damping enabled, input decays
// over several frames instead of applying at once.
//
// Orbit holds no renderer state. A viewer feeds it input, calls Update once
// per frame, and reads Position.
type Orbit struct {
	Target room.Vec3

	// Radius, Theta and Phi are the eye's spherical coordinates around
	// Target. Theta is measured from +Z toward +X, Phi from +Y.
	Radius float64
	Theta  float64
	Phi    float64

	controls room.Controls

	dTheta, dPhi float64
	scale        float64
}

// NewOrbit places an orbit rig so its eye is at cam.Position looking at
// cam.Target.
func NewOrbit(cam room.Camera, controls room.Controls) *Orbit {
	off := room.Vec3{
		cam.Position.X() - cam.Target.X(),
		cam.Position.Y() - cam.Target.Y(),
		cam.Position.Z() - cam.Target.Z(),
	}
	r := math.Sqrt(off.X()*off.X() + off.Y()*off.Y() + off.Z()*off.Z())
	o := &Orbit{
		Target:   cam.Target,
		Radius:   r,
		controls: controls,
		scale:    1,
	}
	if r > 0 {
		o.Theta = math.Atan2(off.X(), off.Z())
		o.Phi = math.Acos(clamp(off.Y()/r, -1, 1))
	}
	o.Phi = clamp(o.Phi, minPolar, maxPolar)
	return o
}

// Rotate queues a rotation: dTheta around the vertical axis and dPhi toward
// the poles, both in radians.
func (o *Orbit) Rotate(dTheta, dPhi float64) {
	o.dTheta -= dTheta
	o.dPhi -= dPhi
}

// Zoom queues a zoom of steps wheel notches. Positive steps move the eye
// closer. Zoom is ignored when the controls disable it.
func (o *Orbit) Zoom(steps float64) {
	if !o.controls.Zoom || steps == 0 {
		return
	}
	o.scale *= math.Pow(zoomStep, steps)
}

// Update applies queued input. Call it once per frame.
func (o *Orbit) Update() {
	if o.controls.Damping {
		f := o.controls.DampingFactor
		o.Theta += o.dTheta * f
		o.Phi += o.dPhi * f
		o.dTheta *= 1 - f
		o.dPhi *= 1 - f
	} else {
		o.Theta += o.dTheta
		o.Phi += o.dPhi
		o.dTheta, o.dPhi = 0, 0
	}
	o.Phi = clamp(o.Phi, minPolar, maxPolar)

	o.Radius = clamp(o.Radius*o.scale, minRadius, maxRadius)
	o.scale = 1
}

// Settled reports whether no queued motion remains.
func (o *Orbit) Settled() bool {
	return math.Abs(o.dTheta) < settledDelta && math.Abs(o.dPhi) < settledDelta && o.scale == 1
}

// Position returns the eye position.
func (o *Orbit) Position() room.Vec3 {
	s := math.Sin(o.Phi)
	return room.Vec3{
		o.Target.X() + o.Radius*s*math.Sin(o.Theta),
		o.Target.Y() + o.Radius*math.Cos(o.Phi),
		o.Target.Z() + o.Radius*s*math.Cos(o.Theta),
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
