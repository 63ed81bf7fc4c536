package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomscene/pkg/layout"
	"github.com/matzehuels/roomscene/pkg/observability"
	"github.com/matzehuels/roomscene/pkg/room"
)

// Runner encapsulates pipeline execution with logging and hooks.
// Both the CLI and the server use this to avoid duplicating stage logic.
//
// The Runner is stateless except for the logger. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, draws, err := r.computeLayout(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Fingerprint = Fingerprint(l)
	result.Stats.Objects = l.Len()
	result.Stats.Draws = draws
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"variant", l.Variant,
		"objects", l.Len(),
		"fingerprint", result.Fingerprint,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout validates opts and builds the layout.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (room.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return room.Layout{}, err
	}
	l, _, err := r.computeLayout(ctx, opts)
	return l, err
}

func (r *Runner) computeLayout(ctx context.Context, opts Options) (room.Layout, int, error) {
	if err := ctx.Err(); err != nil {
		return room.Layout{}, 0, err
	}

	count := opts.ObjectCount
	if opts.IsStatic() {
		count = len(opts.Furniture)
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Variant, count)
	start := time.Now()

	opts.Logger.Debug("building layout", "params", opts.String())
	l, draws, err := GenerateLayout(opts)
	hooks.OnLayoutComplete(ctx, opts.Variant, l.Len(), time.Since(start), err)
	if err != nil {
		return room.Layout{}, 0, err
	}

	for _, f := range layout.BelowFloor(l.Furniture) {
		opts.Logger.Warn("furniture extends below the floor", "name", f.Name, "base", f.Base())
	}
	if draws > 0 {
		opts.Logger.Debug("generator draws", "count", draws)
	}
	return l, draws, nil
}

// Render validates render options and generates artifacts for l.
func (r *Runner) Render(ctx context.Context, l room.Layout, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := ValidateGrid(l.Env.Floor, opts.Grid); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := RenderLayout(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	for _, f := range opts.Formats {
		opts.Logger.Debug("rendered artifact", "format", f, "bytes", len(artifacts[f]))
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set. It
// runs before validation so the discard default never shadows the runner.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
