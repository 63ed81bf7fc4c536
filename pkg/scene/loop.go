package scene

import "context"

// Surface is the window a render loop draws into.
type Surface interface {
	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool
	// FrameTime returns the seconds elapsed since the previous frame.
	FrameTime() float64
}

// Frame is one update-and-draw step of a render loop.
type Frame interface {
	Frame(dt float64) error
}

// FrameFunc adapts a function to Frame.
type FrameFunc func(dt float64) error

// Frame calls f(dt).
func (f FrameFunc) Frame(dt float64) error { return f(dt) }

// Loop calls f.Frame once per iteration until the surface closes, ctx is
// done or a frame fails. It returns the number of frames drawn. A closed
// surface is a normal exit; a canceled context returns ctx.Err().
func Loop(ctx context.Context, s Surface, f Frame) (int, error) {
	frames := 0
	for !s.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		if err := f.Frame(s.FrameTime()); err != nil {
			return frames, err
		}
		frames++
	}
	return frames, nil
}
