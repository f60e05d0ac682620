package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scadkit/pkg/cache"
	"github.com/matzehuels/scadkit/pkg/config"
	"github.com/matzehuels/scadkit/pkg/observability"
	"github.com/matzehuels/scadkit/pkg/scad"
)

func testServer() *modelServer {
	cfg := config.Default()
	return &modelServer{
		cfg:      cfg,
		exporter: scad.NewExporter(),
		keyer:    cache.NewScopedKeyer(cache.NewDefaultKeyer(), serveKeyPrefix),
		ttl:      cfg.CacheTTL(),
		logger:   log.New(io.Discard),
	}
}

func TestServeListModels(t *testing.T) {
	srv := httptest.NewServer(testServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/models")
	if err != nil {
		t.Fatalf("GET /models error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var infos []modelInfo
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(infos) < 5 {
		t.Errorf("listed %d models, want at least 5", len(infos))
	}
	for _, info := range infos {
		if info.Source != "/models/"+info.Name+".scad" {
			t.Errorf("source link = %q for %q", info.Source, info.Name)
		}
	}
}

func TestServeModelSource(t *testing.T) {
	srv := httptest.NewServer(testServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/models/dice.scad")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "difference(){") {
		t.Errorf("body should be rendered OpenSCAD, got %q", buf.String()[:20])
	}
}

func TestServeUnknownModel(t *testing.T) {
	srv := httptest.NewServer(testServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/models/teapot.scad")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeInvalidFacets(t *testing.T) {
	srv := httptest.NewServer(testServer().routes())
	defer srv.Close()

	for _, q := range []string{"zero", "-3", "0"} {
		resp, err := http.Get(srv.URL + "/models/dice.scad?facets=" + q)
		if err != nil {
			t.Fatalf("GET error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("facets=%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestServeFacetsOverride(t *testing.T) {
	srv := httptest.NewServer(testServer().routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/models/pipes.scad?facets=64")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !strings.Contains(buf.String(), "$fn=64") {
		t.Error("facets override should reach the generated source")
	}
}

// cacheSpy counts cache events during a test.
type cacheSpy struct {
	observability.NoopCacheHooks
	hits atomic.Int32
	sets atomic.Int32
}

func (s *cacheSpy) OnCacheHit(ctx context.Context, keyType string)           { s.hits.Add(1) }
func (s *cacheSpy) OnCacheSet(ctx context.Context, keyType string, size int) { s.sets.Add(1) }

func TestServeSourceCached(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	handler := testServer()
	handler.store = store

	spy := &cacheSpy{}
	observability.SetCacheHooks(spy)
	defer observability.Reset()

	srv := httptest.NewServer(handler.routes())
	defer srv.Close()

	get := func() string {
		resp, err := http.Get(srv.URL + "/models/tray.scad")
		if err != nil {
			t.Fatalf("GET error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			t.Fatalf("read error: %v", err)
		}
		return buf.String()
	}

	first := get()
	if spy.sets.Load() != 1 {
		t.Errorf("cache sets after first request = %d, want 1", spy.sets.Load())
	}

	second := get()
	if spy.hits.Load() != 1 {
		t.Errorf("cache hits after second request = %d, want 1", spy.hits.Load())
	}
	if first != second {
		t.Error("cached source should match the freshly generated source")
	}

	// Different facets are a different key, not a hit.
	resp, err := http.Get(srv.URL + "/models/tray.scad?facets=64")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if spy.hits.Load() != 1 {
		t.Errorf("cache hits after facets override = %d, want still 1", spy.hits.Load())
	}
}
