package buffer

import (
	"time"

	"github.com/wan-qy/superstring/internal/config"
)

// Option is a functional option for configuring a TextBuffer.
type Option func(*TextBuffer)

// WithConfig applies a loaded BufferDefaults, equivalent to passing
// WithChunkTargetSize, WithSearchTimeout, and WithDebugIDs individually.
// Later options in the same New/NewFromString call still take
// precedence over it, since options are applied in the order given.
func WithConfig(cfg config.BufferDefaults) Option {
	return func(b *TextBuffer) {
		if cfg.ChunkTargetSize > 0 {
			b.chunkTargetSize = cfg.ChunkTargetSize
		}
		if cfg.SearchTimeoutMillis > 0 {
			b.searchTimeout = time.Duration(cfg.SearchTimeoutMillis) * time.Millisecond
		}
		if cfg.DebugIDs {
			b.debugIDs = true
		}
	}
}

// WithLogger installs a Logger used to trace coalescence. The default is
// a no-op logger.
func WithLogger(l Logger) Option {
	return func(b *TextBuffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDebugIDs tags every layer with a UUID for log correlation;
// snapshots carry no ID of their own. Off by default: generating and
// storing an ID on every layer is wasted work unless something is
// actually reading the logs.
func WithDebugIDs() Option {
	return func(b *TextBuffer) {
		b.debugIDs = true
	}
}

// WithChunkTargetSize hints the preferred size, in code units, of chunks
// materialised by ChunksInRange. It does not change query results, only
// how finely ChunksInRange's output is split.
func WithChunkTargetSize(size uint32) Option {
	return func(b *TextBuffer) {
		if size > 0 {
			b.chunkTargetSize = size
		}
	}
}

// WithSearchTimeout bounds how long a single Search/SearchAll match may
// run before regexp2 abandons it. Zero (the default) means no timeout.
func WithSearchTimeout(d time.Duration) Option {
	return func(b *TextBuffer) {
		b.searchTimeout = d
	}
}
