package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scadkit/pkg/cache"
	"github.com/matzehuels/scadkit/pkg/config"
	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/gallery"
	"github.com/matzehuels/scadkit/pkg/observability"
	"github.com/matzehuels/scadkit/pkg/scad"
	"github.com/matzehuels/scadkit/pkg/solid"
)

// newBuildCmd creates the build command.
func newBuildCmd() *cobra.Command {
	var (
		output     string
		format     string
		facets     int
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "build <model>",
		Short: "Build a demo model into OpenSCAD source or a rendered artifact",
		Long: `Build generates the OpenSCAD source for one of the demo models and
optionally renders it with locally installed tools.

Formats:
  scad   OpenSCAD source (no external tools required)
  stl    triangle mesh, rendered with OpenSCAD
  png    preview image, rendered with OpenSCAD
  gcode  printer instructions, sliced from the STL

Examples:
  scadkit build dice
  scadkit build enclosure --format stl -o enclosure.stl
  scadkit build sign --facets 64 --format png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], buildParams{
				output:     output,
				format:     format,
				facets:     facets,
				configPath: configPath,
				noCache:    noCache,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <model>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "scad", "output format: scad, stl, png, gcode")
	cmd.Flags().IntVar(&facets, "facets", 0, "facet count for curved surfaces (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

type buildParams struct {
	output     string
	format     string
	facets     int
	configPath string
	noCache    bool
}

func runBuild(ctx context.Context, name string, p buildParams) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(p.configPath)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	model, err := gallery.Lookup(name)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		printNextStep("List available models", "scadkit models")
		return err
	}

	facets := cfg.Facets
	if p.facets > 0 {
		facets = p.facets
	}

	prog := newProgress(logger)
	observability.Export().OnBuildStart(ctx, model.Name)
	b := solid.NewBuilder(solid.DefaultSettings().WithFacets(facets))
	s, err := model.Build(b)
	if err != nil {
		observability.Export().OnBuildComplete(ctx, model.Name, 0, time.Since(prog.start), err)
		printError("%s", errors.UserMessage(err))
		return err
	}
	observability.Export().OnBuildComplete(ctx, model.Name, len(s.String()), time.Since(prog.start), nil)
	prog.done(fmt.Sprintf("Built %s", model.Name))

	out := p.output
	if out == "" {
		out = model.Name
	}
	if !filepath.IsAbs(out) && cfg.OutputDir != "" && filepath.Dir(out) == "." {
		out = filepath.Join(cfg.OutputDir, out)
	}

	if p.format == "scad" {
		out = scad.EnsureSuffix(out, ".scad")
		if err := scad.Write(s, out); err != nil {
			printError("%s", errors.UserMessage(err))
			return err
		}
		printSuccess("Generated %s", StyleHighlight.Render(model.Name))
		printFile(out)
		printStats(int64(len(s.String())), false)
		return nil
	}

	exporter, _, closeCache := newExporter(ctx, cfg, p.noCache, nil, logger)
	defer closeCache()

	// Track whether the artifact came out of the cache for the stats line.
	tracker := &cacheTracker{}
	observability.SetCacheHooks(tracker)
	defer observability.Reset()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s.%s...", model.Name, p.format))
	spinner.Start()

	switch p.format {
	case "stl":
		if !strings.HasSuffix(out, ".stl") {
			out += ".stl"
		}
		err = exporter.STL(ctx, s, out)
	case "png":
		if !strings.HasSuffix(out, ".png") {
			out += ".png"
		}
		err = exporter.PNG(ctx, s, out)
	case "gcode":
		if !strings.HasSuffix(out, ".gcode") {
			out += ".gcode"
		}
		err = exporter.GCode(ctx, s, out)
	default:
		spinner.Stop()
		return errors.New(errors.ErrCodeInvalidArgument,
			"unknown format %q, expected scad, stl, png, or gcode", p.format)
	}

	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", StyleHighlight.Render(model.Name)))
	printFile(out)
	if fi, statErr := os.Stat(out); statErr == nil {
		printStats(fi.Size(), tracker.hit.Load())
	}
	return nil
}

// cacheTracker records whether any artifact lookup hit the cache.
type cacheTracker struct {
	observability.NoopCacheHooks
	hit atomic.Bool
}

func (t *cacheTracker) OnCacheHit(ctx context.Context, keyType string) {
	t.hit.Store(true)
}

// newExporter builds a scad.Exporter from the configuration. The cache
// backend is returned too (nil when caching is off or unavailable) so
// callers can store their own entries in it; the close function releases it
// and is safe to call always. A nil keyer uses the default keyer.
func newExporter(ctx context.Context, cfg config.Config, noCache bool, keyer cache.Keyer, logger *log.Logger) (*scad.Exporter, cache.Cache, func()) {
	opts := []scad.ExportOption{
		scad.WithOpenSCADPath(cfg.Tools.OpenSCAD),
		scad.WithSlicerPath(cfg.Tools.Slicer),
		scad.WithTimeout(cfg.ToolTimeout()),
		scad.WithCacheTTL(cfg.CacheTTL()),
		scad.WithLogger(logger),
	}

	var store cache.Cache
	closeCache := func() {}
	if cfg.Cache.Enabled && !noCache {
		c, err := openCache(ctx, cfg)
		if err != nil {
			// A broken cache backend degrades to uncached exports.
			logger.Warn("artifact cache unavailable, rendering uncached", "err", err)
		} else {
			store = c
			opts = append(opts, scad.WithCache(c, keyer))
			closeCache = func() { _ = c.Close() }
		}
	}

	return scad.NewExporter(opts...), store, closeCache
}

// openCache opens the configured cache backend: Redis when a URL is set,
// otherwise the file cache. Redis startup is retried with backoff.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if cfg.Cache.RedisURL != "" {
		var c cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			c, err = cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
			return err
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return cache.NewFileCache(cfg.CacheDir())
}
