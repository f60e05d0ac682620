package scad

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/solid"
)

// Write renders the solid and writes the OpenSCAD text to the named file.
// When the name contains no ".", the ".scad" suffix is appended, so
// "output" and "output.scad" name the same file.
func Write(s *solid.Solid, name string) error {
	path := EnsureSuffix(name, ".scad")
	if err := os.WriteFile(path, []byte(s.String()), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", path)
	}
	return nil
}

// WriteTo renders the solid and writes the OpenSCAD text to w.
func WriteTo(s *solid.Solid, w io.Writer) error {
	if _, err := io.WriteString(w, s.String()); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "write model text")
	}
	return nil
}

// EnsureSuffix appends suffix to name unless the final path element already
// contains a ".".
func EnsureSuffix(name, suffix string) string {
	if strings.Contains(filepath.Base(name), ".") {
		return name
	}
	return name + suffix
}
