package config

import "context"

// Loader is the interface for a format-specific area loader.
type Loader interface {
	// Load reads every area file found under paths and merges them, in
	// discovery order, into a single Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
