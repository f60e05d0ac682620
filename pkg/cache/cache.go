// Package cache provides caching for rendered models and exported artifacts.
//
// Rendering a model to STL means invoking OpenSCAD, which for a non-trivial
// design takes seconds to minutes. The cache keys an artifact by the hash of
// the OpenSCAD source and the export options, so an unchanged design is never
// rendered twice.
//
// Two backends are provided: FileCache for CLI usage and RedisCache for a
// shared preview server. NullCache disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for rendered artifacts and model text.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ModelKeyOpts are the inputs that change a generated model's text.
type ModelKeyOpts struct {
	Facets int    // facet setting the model was built with
	Params string // serialized model parameters
}

// ArtifactKeyOpts are the inputs that change an exported artifact.
type ArtifactKeyOpts struct {
	Format string // output format: "stl", "png", "gcode"
	Tool   string // tool binary that produced the artifact
	Args   string // extra tool arguments
}

// Keyer generates cache keys for the two cacheable stages: generated model
// text, and artifacts exported from that text.
type Keyer interface {
	// ModelKey generates a key for a generated model's OpenSCAD text.
	ModelKey(name string, opts ModelKeyOpts) string

	// ArtifactKey generates a key for an artifact exported from the
	// OpenSCAD source with the given hash.
	ArtifactKey(scadHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator. Keys embed a version so a
// format change invalidates old entries instead of misreading them.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ModelKey generates a key for a generated model's OpenSCAD text.
func (k *DefaultKeyer) ModelKey(name string, opts ModelKeyOpts) string {
	return hashKey("model:v1", name, opts.Facets, opts.Params)
}

// ArtifactKey generates a key for an exported artifact.
func (k *DefaultKeyer) ArtifactKey(scadHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", scadHash, opts.Format, opts.Tool, opts.Args)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
