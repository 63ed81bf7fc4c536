package scene

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/observability"
	"github.com/matzehuels/roomscene/pkg/room"
)

// Handle identifies a built scene.
type Handle = uuid.UUID

// Backend acquires and releases renderer resources for a graph.
type Backend interface {
	Load(g *Graph) error
	Unload(g *Graph) error
}

// NopBackend acquires nothing. It is used where a graph is only inspected
// or serialized.
type NopBackend struct{}

func (NopBackend) Load(*Graph) error   { return nil }
func (NopBackend) Unload(*Graph) error { return nil }

// Assembler builds scenes against a Backend and tracks them until disposal.
// It is safe for concurrent use.
type Assembler struct {
	backend Backend
	logger  *log.Logger

	mu   sync.Mutex
	live map[Handle]*Graph
}

// NewAssembler returns an assembler for backend. A nil backend selects
// NopBackend and a nil logger discards output.
func NewAssembler(backend Backend, logger *log.Logger) *Assembler {
	if backend == nil {
		backend = NopBackend{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Assembler{
		backend: backend,
		logger:  logger,
		live:    make(map[Handle]*Graph),
	}
}

// Build assembles l, loads it into the backend and returns its handle.
func (a *Assembler) Build(ctx context.Context, l room.Layout) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	start := time.Now()
	h := uuid.New()

	g, err := Assemble(l)
	if err == nil {
		if lerr := a.backend.Load(g); lerr != nil {
			err = errors.Wrap(errors.ErrCodeInternal, lerr, "load scene")
		}
	}
	observability.Scene().OnSceneBuild(ctx, h.String(), nodeCount(g), time.Since(start), err)
	if err != nil {
		return uuid.Nil, err
	}

	a.mu.Lock()
	a.live[h] = g
	a.mu.Unlock()

	a.logger.Debug("scene built", "handle", h, "variant", l.Variant, "nodes", len(g.Nodes))
	return h, nil
}

// Graph returns the graph of a live scene.
func (a *Assembler) Graph(h Handle) (*Graph, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.live[h]
	return g, ok
}

// Live returns the number of scenes not yet disposed.
func (a *Assembler) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Dispose releases the resources of scene h. Disposing an unknown or
// already disposed handle returns a NOT_FOUND error and has no effect.
func (a *Assembler) Dispose(h Handle) error {
	a.mu.Lock()
	g, ok := a.live[h]
	delete(a.live, h)
	a.mu.Unlock()

	if !ok {
		return errors.New(errors.ErrCodeNotFound, "scene %s not found", h)
	}

	var err error
	if uerr := a.backend.Unload(g); uerr != nil {
		err = errors.Wrap(errors.ErrCodeInternal, uerr, "unload scene %s", h)
	}
	observability.Scene().OnSceneDispose(context.Background(), h.String(), err)
	a.logger.Debug("scene disposed", "handle", h)
	return err
}

// Close disposes every live scene and returns the joined unload errors.
func (a *Assembler) Close() error {
	a.mu.Lock()
	handles := make([]Handle, 0, len(a.live))
	for h := range a.live {
		handles = append(handles, h)
	}
	a.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := a.Dispose(h); err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// With builds l, calls fn with the live scene, and disposes the scene when fn
// returns or panics. A dispose error is returned only if fn succeeded.
func With(ctx context.Context, a *Assembler, l room.Layout, fn func(Handle, *Graph) error) (err error) {
	h, err := a.Build(ctx, l)
	if err != nil {
		return err
	}
	defer func() {
		if derr := a.Dispose(h); derr != nil && err == nil {
			err = fmt.Errorf("dispose scene: %w", derr)
		}
	}()

	g, _ := a.Graph(h)
	return fn(h, g)
}

func nodeCount(g *Graph) int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}
