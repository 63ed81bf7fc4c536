package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/observability"
	"github.com/matzehuels/roomscene/pkg/pipeline"
	"github.com/matzehuels/roomscene/pkg/room"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command that exposes layouts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		lf   layoutFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve floor plans and scene graphs over HTTP",
		Long: `Serve floor plans and scene graphs over HTTP.

Endpoints:
  GET /healthz      liveness check
  GET /layout.json  layout with resolved objects and fingerprint
  GET /plan.svg     top-down floor plan
  GET /plan.txt     character floor plan
  GET /scene.dot    scene graph in Graphviz DOT
  GET /scene.svg    scene graph rendered with Graphviz

Every endpoint except /healthz accepts variant, seed, count, extent and
generator query parameters, which override the flags. /plan.svg also takes
scale, grid and labels; the scene endpoints take detailed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := lf.resolve(cmd, osLookup)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, base)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

// runServe listens on addr until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr string, base pipeline.Options) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newServer(c.newRunner(), c.Logger, base),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving layouts")
	printKeyValue("address", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("defaults", base.String())
	printNewline()
	printInfo("Press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// server holds the handlers' shared state.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	base   pipeline.Options
}

// newServer builds the HTTP router. base supplies every option a request
// does not override.
func newServer(runner *pipeline.Runner, logger *log.Logger, base pipeline.Options) http.Handler {
	s := &server{runner: runner, logger: logger, base: base}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.requestLogger)
	router.Use(middleware.Compress(5))

	router.Get("/healthz", s.handleHealth)
	router.Get("/layout.json", s.handleLayout)
	router.Get("/plan.svg", s.artifactHandler(pipeline.FormatSVG, "image/svg+xml"))
	router.Get("/plan.txt", s.artifactHandler(pipeline.FormatText, "text/plain; charset=utf-8"))
	router.Get("/scene.dot", s.artifactHandler(pipeline.FormatDOT, "text/vnd.graphviz; charset=utf-8"))
	router.Get("/scene.svg", s.artifactHandler(pipeline.FormatGraphSVG, "image/svg+xml"))

	return router
}

// requestLogger tags each request with an ID, attaches a request-scoped
// logger to its context and reports it to the HTTP hooks.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		logger := s.logger.With("request_id", id)
		ctx := withLogger(r.Context(), logger)

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		elapsed := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", elapsed)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.runner.ComputeLayout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := newLayoutResponse(l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// artifactHandler serves one rendered format.
func (s *server) artifactHandler(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.requestOptions(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Layout-Fingerprint", result.Fingerprint)
		w.Write(result.Artifacts[format])
	}
}

// writeError maps err to a status code and a user-facing message.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

// requestOptions overlays the request's query parameters on the base options.
func (s *server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	opts.Logger = loggerFromContext(r.Context())
	if err := applyQuery(&opts, r.URL.Query()); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// applyQuery copies recognized query parameters into opts.
func applyQuery(opts *pipeline.Options, q url.Values) error {
	if v := q.Get("variant"); v != "" {
		opts.Variant = v
	}
	if v := q.Get("generator"); v != "" {
		opts.Generator = v
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return queryError("seed", v, err)
		}
		opts.Seed = n
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return queryError("count", v, err)
		}
		opts.ObjectCount = n
	}
	for name, dst := range map[string]*float64{
		"extent": &opts.HalfExtent,
		"scale":  &opts.Scale,
		"grid":   &opts.Grid,
	} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return queryError(name, v, err)
			}
			*dst = f
		}
	}
	for name, dst := range map[string]*bool{
		"labels":   &opts.Labels,
		"detailed": &opts.Detailed,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return queryError(name, v, err)
			}
			*dst = b
		}
	}
	return nil
}

func queryError(name, value string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s=%q", name, value)
}

// =============================================================================
// JSON Responses
// =============================================================================

type layoutResponse struct {
	Variant     room.Variant     `json:"variant"`
	Seed        *int64           `json:"seed,omitempty"`
	Fingerprint string           `json:"fingerprint"`
	Floor       floorResponse    `json:"floor"`
	Objects     []objectResponse `json:"objects"`
}

type floorResponse struct {
	Width float64    `json:"width"`
	Depth float64    `json:"depth"`
	Color room.Color `json:"color"`
}

type objectResponse struct {
	Index     int        `json:"index"`
	Name      string     `json:"name"`
	Shape     room.Shape `json:"shape"`
	Size      room.Vec3  `json:"size"`
	Color     room.Color `json:"color"`
	Position  room.Vec3  `json:"position"`
	RotationY float64    `json:"rotation_y"`
}

func newLayoutResponse(l room.Layout) (*layoutResponse, error) {
	instances, err := l.Instances()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve layout")
	}
	resp := &layoutResponse{
		Variant:     l.Variant,
		Fingerprint: pipeline.Fingerprint(l),
		Floor:       floorResponse{Width: l.Env.Floor.Width, Depth: l.Env.Floor.Depth, Color: l.Env.Floor.Color},
		Objects:     make([]objectResponse, len(instances)),
	}
	if l.IsRandom() {
		seed := l.Seed
		resp.Seed = &seed
	}
	for i, inst := range instances {
		resp.Objects[i] = objectResponse{
			Index:     inst.Index,
			Name:      inst.Name,
			Shape:     inst.Shape,
			Size:      inst.Size,
			Color:     inst.Color,
			Position:  inst.Position,
			RotationY: inst.RotationY,
		}
	}
	return resp, nil
}
