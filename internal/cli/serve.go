package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scadkit/pkg/cache"
	"github.com/matzehuels/scadkit/pkg/config"
	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/gallery"
	"github.com/matzehuels/scadkit/pkg/observability"
	"github.com/matzehuels/scadkit/pkg/scad"
	"github.com/matzehuels/scadkit/pkg/solid"
)

// serveKeyPrefix scopes the preview server's cache entries so they stay
// apart from plain `scadkit build` entries in a shared backend.
const serveKeyPrefix = "serve:"

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated models over HTTP",
		Long: `Serve starts a small HTTP server that generates models on demand.

Endpoints:
  GET /models               list the models as JSON
  GET /models/{name}.scad   the model's OpenSCAD source
  GET /models/{name}.stl    the model rendered to STL (requires OpenSCAD)

A facets query parameter overrides the configured facet count, e.g.
/models/dice.scad?facets=64.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")

	return cmd
}

func runServe(ctx context.Context, addr, configPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), serveKeyPrefix)
	exporter, store, closeCache := newExporter(ctx, cfg, false, keyer, logger)
	defer closeCache()

	srv := &modelServer{
		cfg:      cfg,
		exporter: exporter,
		store:    store,
		keyer:    keyer,
		ttl:      cfg.CacheTTL(),
		logger:   logger,
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving models", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
	printDetail("Press Ctrl+C to stop")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// modelServer generates models on demand for the HTTP endpoints. Generated
// source is cached in store keyed per model and facet count; store is nil
// when caching is off.
type modelServer struct {
	cfg      config.Config
	exporter *scad.Exporter
	store    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	logger   *log.Logger
}

func (s *modelServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/models", s.handleList)
	r.Get("/models/{name}.scad", s.handleSource)
	r.Get("/models/{name}.stl", s.handleSTL)

	return r
}

// logRequests logs each request at debug level.
func (s *modelServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// modelInfo is the JSON shape of a listed model.
type modelInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	STL         string `json:"stl"`
}

func (s *modelServer) handleList(w http.ResponseWriter, r *http.Request) {
	models := gallery.Models()
	infos := make([]modelInfo, len(models))
	for i, m := range models {
		infos[i] = modelInfo{
			Name:        m.Name,
			Description: m.Description,
			Source:      "/models/" + m.Name + ".scad",
			STL:         "/models/" + m.Name + ".stl",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		s.logger.Warn("encode model list failed", "err", err)
	}
}

func (s *modelServer) handleSource(w http.ResponseWriter, r *http.Request) {
	model, facets, ok := s.resolveModel(w, r)
	if !ok {
		return
	}

	key := s.keyer.ModelKey(model.Name, cache.ModelKeyOpts{Facets: facets})
	if s.store != nil {
		if data, hit, err := s.store.Get(r.Context(), key); err == nil && hit {
			observability.Cache().OnCacheHit(r.Context(), "model")
			writeSource(w, data)
			return
		}
		observability.Cache().OnCacheMiss(r.Context(), "model")
	}

	built, ok := s.buildModel(w, r, model, facets)
	if !ok {
		return
	}
	text := built.String()

	if s.store != nil {
		if err := s.store.Set(r.Context(), key, []byte(text), s.ttl); err != nil {
			s.logger.Warn("model cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(r.Context(), "model", len(text))
		}
	}

	writeSource(w, []byte(text))
}

func (s *modelServer) handleSTL(w http.ResponseWriter, r *http.Request) {
	model, facets, ok := s.resolveModel(w, r)
	if !ok {
		return
	}
	built, ok := s.buildModel(w, r, model, facets)
	if !ok {
		return
	}

	f, err := os.CreateTemp("", "scadkit-*.stl")
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := f.Name()
	_ = f.Close()
	defer os.Remove(out)

	if err := s.exporter.STL(r.Context(), built, out); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "model/stl")
	http.ServeFile(w, r, out)
}

// resolveModel looks up the named model and parses the facets override. It
// writes the error response itself and reports success.
func (s *modelServer) resolveModel(w http.ResponseWriter, r *http.Request) (gallery.Model, int, bool) {
	name := chi.URLParam(r, "name")
	model, err := gallery.Lookup(name)
	if err != nil {
		s.writeError(w, err)
		return gallery.Model{}, 0, false
	}

	facets := s.cfg.Facets
	if q := r.URL.Query().Get("facets"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidArgument, "facets must be a positive integer, got %q", q))
			return gallery.Model{}, 0, false
		}
		facets = n
	}
	return model, facets, true
}

// buildModel builds the model with the given facets, writing the error
// response itself on failure.
func (s *modelServer) buildModel(w http.ResponseWriter, r *http.Request, model gallery.Model, facets int) (*solid.Solid, bool) {
	b := solid.NewBuilder(solid.DefaultSettings().WithFacets(facets))
	built, err := model.Build(b)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return built, true
}

func writeSource(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(data)
}

// writeError maps an error code to an HTTP status and writes a JSON body.
func (s *modelServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeModelNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidArgument, errors.ErrCodeInvalidDimension:
		status = http.StatusBadRequest
	case errors.ErrCodeToolNotFound:
		status = http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	s.logger.Warn("request failed", "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": errors.UserMessage(err)})
}
