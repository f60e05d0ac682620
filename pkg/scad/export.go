package scad

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/scadkit/pkg/cache"
	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/observability"
	"github.com/matzehuels/scadkit/pkg/solid"
)

// DefaultTimeout bounds a single external tool invocation. Rendering a
// complex model can legitimately take minutes.
const DefaultTimeout = 10 * time.Minute

// DefaultCacheTTL is how long exported artifacts stay cached.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Locations probed for the OpenSCAD binary before falling back to PATH.
var openscadCandidates = []string{
	"/usr/bin/openscad",
	"/usr/local/bin/openscad",
	"/opt/homebrew/bin/openscad",
	"/Applications/OpenSCAD.app/Contents/MacOS/OpenSCAD",
	"C:/Program Files/OpenSCAD/openscad.exe",
	"C:/Program Files (x86)/OpenSCAD/openscad.exe",
}

// Locations probed for the slicer binary before falling back to PATH.
var slicerCandidates = []string{
	"/usr/bin/CuraEngine",
	"/usr/local/bin/CuraEngine",
	"C:/Program Files/Ultimaker Cura 4.4/CuraEngine.exe",
}

// Exporter renders solids to artifacts by invoking OpenSCAD (STL, PNG) and
// a slicer (G-code). Exports are cached by the hash of the generated
// OpenSCAD text and the export options.
type Exporter struct {
	openscad string
	slicer   string
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger
	timeout  time.Duration
	ttl      time.Duration
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithOpenSCADPath pins the OpenSCAD binary instead of probing for it.
func WithOpenSCADPath(path string) ExportOption {
	return func(e *Exporter) { e.openscad = path }
}

// WithSlicerPath pins the slicer binary instead of probing for it.
func WithSlicerPath(path string) ExportOption {
	return func(e *Exporter) { e.slicer = path }
}

// WithCache sets the artifact cache. A nil keyer uses the default keyer.
func WithCache(c cache.Cache, k cache.Keyer) ExportOption {
	return func(e *Exporter) {
		if c != nil {
			e.cache = c
		}
		if k != nil {
			e.keyer = k
		}
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l *log.Logger) ExportOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTimeout bounds a single tool invocation (default 10 minutes).
func WithTimeout(d time.Duration) ExportOption {
	return func(e *Exporter) { e.timeout = d }
}

// WithCacheTTL sets how long exported artifacts stay cached (default 7 days).
func WithCacheTTL(d time.Duration) ExportOption {
	return func(e *Exporter) { e.ttl = d }
}

// NewExporter creates an exporter. Tool binaries are resolved lazily on
// first use, so constructing an exporter never requires OpenSCAD installed.
func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		logger:  log.New(io.Discard),
		timeout: DefaultTimeout,
		ttl:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// STL renders the solid with OpenSCAD and writes the STL to the named file.
// The ".stl" suffix is appended when missing.
func (e *Exporter) STL(ctx context.Context, s *solid.Solid, name string) error {
	if !strings.HasSuffix(name, ".stl") {
		name += ".stl"
	}
	return e.render(ctx, s, name, "stl", nil)
}

// PNG renders the solid with OpenSCAD and writes a preview image to the
// named file. The ".png" suffix is appended when missing.
func (e *Exporter) PNG(ctx context.Context, s *solid.Solid, name string) error {
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}
	return e.render(ctx, s, name, "png", nil)
}

// GCode renders the solid to STL and slices it to G-code in the named file.
// The ".gcode" suffix is appended when missing.
func (e *Exporter) GCode(ctx context.Context, s *solid.Solid, name string) error {
	if !strings.HasSuffix(name, ".gcode") {
		name += ".gcode"
	}

	stl := tempArtifact(".stl")
	defer os.Remove(stl)
	if err := e.STL(ctx, s, stl); err != nil {
		return err
	}

	slicer, err := findTool(e.slicer, slicerCandidates, "CuraEngine")
	if err != nil {
		return err
	}
	return e.run(ctx, slicer, "gcode", name, "slice", "-o", name, "-l", stl)
}

// render writes the solid's OpenSCAD text to a temporary file, runs
// OpenSCAD on it, and caches the produced artifact.
func (e *Exporter) render(ctx context.Context, s *solid.Solid, name, format string, extra []string) error {
	tool, err := findTool(e.openscad, openscadCandidates, "openscad")
	if err != nil {
		return err
	}

	text := s.String()
	key := e.keyer.ArtifactKey(cache.Hash([]byte(text)), cache.ArtifactKeyOpts{
		Format: format,
		Tool:   filepath.Base(tool),
		Args:   strings.Join(extra, " "),
	})

	if data, hit, err := e.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		e.logger.Debug("artifact cache hit", "format", format, "file", name)
		return writeArtifact(name, data)
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	src := tempArtifact(".scad")
	defer os.Remove(src)
	if err := os.WriteFile(src, []byte(text), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", src)
	}

	args := append([]string{src, "-o", name}, extra...)
	if err := e.run(ctx, tool, format, name, args...); err != nil {
		return err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "read rendered %s", name)
	}
	if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
		e.logger.Warn("artifact cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return nil
}

// run invokes an external tool with the exporter's timeout.
func (e *Exporter) run(ctx context.Context, tool, format, out string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Debug("rendering", "tool", tool, "format", format, "file", out)
	observability.Export().OnRenderStart(ctx, filepath.Base(tool), format)
	start := time.Now()

	cmd := exec.CommandContext(ctx, tool, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var size int64
	if fi, statErr := os.Stat(out); statErr == nil {
		size = fi.Size()
	}
	observability.Export().OnRenderComplete(ctx, filepath.Base(tool), format, size, time.Since(start), err)

	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.Wrap(errors.ErrCodeTimeout, err, "%s timed out after %s", filepath.Base(tool), e.timeout)
		}
		return errors.Wrap(errors.ErrCodeExportFailed, err, "%s: %s", filepath.Base(tool), strings.TrimSpace(stderr.String()))
	}
	e.logger.Info("rendered", "format", format, "file", out, "took", time.Since(start))
	return nil
}

// findTool resolves a tool binary: an explicit path wins, then the known
// install locations, then PATH.
func findTool(explicit string, candidates []string, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", errors.New(errors.ErrCodeToolNotFound,
		"%s not found; install it or set its path in the configuration", name)
}

// tempArtifact returns a collision-free temp file path with the suffix.
func tempArtifact(suffix string) string {
	return filepath.Join(os.TempDir(), "scadkit-"+uuid.NewString()+suffix)
}

// writeArtifact writes cached artifact bytes to the destination.
func writeArtifact(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", name)
	}
	return nil
}
