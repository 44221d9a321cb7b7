// Package config loads the text buffer's tunable defaults from TOML as
// a typed struct decoded with
// github.com/pelletier/go-toml/v2, with a distinct ParseError wrapping
// the underlying decode error for callers that want to report a file
// path alongside it.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// BufferDefaults holds the tunable knobs a TextBuffer is constructed
// with. It intentionally carries nothing about line-ending
// normalization or tab width: this buffer preserves CR/LF verbatim and
// has no rendering concerns.
type BufferDefaults struct {
	// ChunkTargetSize is the largest chunk, in code units, that
	// TextBuffer.ChunksInRange returns; longer chunks are split. Zero
	// leaves the buffer's own default in place.
	ChunkTargetSize uint32 `toml:"chunk_target_size"`

	// DigestAlgorithm is a label a host application can record to detect
	// a config change between persisted digests. TextBuffer.BaseTextDigest
	// does not read it and always uses 64-bit FNV-1a.
	DigestAlgorithm string `toml:"digest_algorithm"`

	// SearchTimeoutMillis bounds how long a single Search/SearchAll call
	// may run before its regular-expression match is abandoned. Zero
	// means no timeout.
	SearchTimeoutMillis int `toml:"search_timeout_millis"`

	// DebugIDs enables assigning a UUID to each layer for diagnostic
	// logging, mirroring WithDebugIDs.
	DebugIDs bool `toml:"debug_ids"`
}

// Default returns the built-in defaults used when no configuration file
// is present.
func Default() BufferDefaults {
	return BufferDefaults{
		ChunkTargetSize:     4096,
		DigestAlgorithm:     "fnv-1a-64",
		SearchTimeoutMillis: 0,
		DebugIDs:            false,
	}
}

// Load reads BufferDefaults from the TOML file at path, falling back to
// Default() values for any field the file omits. A missing file is not
// an error: Default() is returned as-is.
func Load(path string) (BufferDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return BufferDefaults{}, fmt.Errorf("reading buffer config %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads BufferDefaults from an io.Reader of TOML data.
func LoadFromReader(r io.Reader) (BufferDefaults, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return BufferDefaults{}, fmt.Errorf("reading buffer config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (BufferDefaults, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return BufferDefaults{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// ParseError represents a failure to decode a buffer configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
