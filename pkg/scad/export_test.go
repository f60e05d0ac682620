package scad

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/scadkit/pkg/cache"
	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/solid"
)

// fakeTool writes an executable script that copies its input to the -o
// target, standing in for OpenSCAD.
func fakeTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tool script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-openscad")
	script := "#!/bin/sh\ncp \"$1\" \"$3\"\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWriteAppendsSuffix(t *testing.T) {
	dir := t.TempDir()
	s := solid.Raw("cube( 1 );", "")

	if err := Write(s, filepath.Join(dir, "output")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "output.scad"))
	if err != nil {
		t.Fatalf("expected output.scad: %v", err)
	}
	if string(data) != s.String() {
		t.Errorf("file content = %q, want %q", data, s.String())
	}

	// An explicit suffix is kept as-is.
	if err := Write(s, filepath.Join(dir, "explicit.scad")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "explicit.scad")); err != nil {
		t.Errorf("expected explicit.scad: %v", err)
	}
}

func TestEnsureSuffix(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		want   string
	}{
		{"output", ".scad", "output.scad"},
		{"output.scad", ".scad", "output.scad"},
		{"dir.v2/output", ".scad", "dir.v2/output.scad"},
		{"output.stl", ".scad", "output.stl"},
	}
	for _, tt := range tests {
		if got := EnsureSuffix(tt.name, tt.suffix); got != tt.want {
			t.Errorf("EnsureSuffix(%q, %q) = %q, want %q", tt.name, tt.suffix, got, tt.want)
		}
	}
}

func TestExporterSTL(t *testing.T) {
	dir := t.TempDir()
	s := solid.Raw("cube( 1 );", "")
	e := NewExporter(WithOpenSCADPath(fakeTool(t)))

	out := filepath.Join(dir, "part")
	if err := e.STL(context.Background(), s, out); err != nil {
		t.Fatalf("STL error: %v", err)
	}

	// Suffix appended, content produced by the tool from the source text.
	data, err := os.ReadFile(out + ".stl")
	if err != nil {
		t.Fatalf("expected part.stl: %v", err)
	}
	if string(data) != s.String() {
		t.Errorf("artifact = %q, want rendered source %q", data, s.String())
	}
}

func TestExporterCachesArtifacts(t *testing.T) {
	dir := t.TempDir()
	s := solid.Raw("cube( 1 );", "")

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	tool := fakeTool(t)
	e := NewExporter(WithOpenSCADPath(tool), WithCache(c, nil))

	first := filepath.Join(dir, "a.stl")
	if err := e.STL(context.Background(), s, first); err != nil {
		t.Fatalf("first STL error: %v", err)
	}

	// Break the tool; the second export must come from the cache.
	if err := os.WriteFile(tool, []byte("#!/bin/sh\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}
	second := filepath.Join(dir, "b.stl")
	if err := e.STL(context.Background(), s, second); err != nil {
		t.Fatalf("cached STL error: %v", err)
	}
	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != s.String() {
		t.Errorf("cached artifact = %q, want %q", data, s.String())
	}
}

func TestExporterToolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tool script requires a POSIX shell")
	}
	dir := t.TempDir()
	tool := filepath.Join(dir, "broken")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\necho 'render failed' >&2\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}

	e := NewExporter(WithOpenSCADPath(tool))
	err := e.STL(context.Background(), solid.Raw("cube( 1 );", ""), filepath.Join(dir, "out.stl"))
	if err == nil {
		t.Fatal("expected error from failing tool")
	}
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeExportFailed)
	}
}

func TestFindToolNotFound(t *testing.T) {
	_, err := findTool("", nil, "definitely-not-a-real-binary-name")
	if err == nil {
		t.Fatal("expected error for missing tool")
	}
	if !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeToolNotFound)
	}
}

func TestFindToolExplicitWins(t *testing.T) {
	got, err := findTool("/my/openscad", openscadCandidates, "openscad")
	if err != nil {
		t.Fatalf("findTool error: %v", err)
	}
	if got != "/my/openscad" {
		t.Errorf("findTool = %q, want explicit path", got)
	}
}
