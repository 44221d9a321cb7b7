package config

import (
	"strings"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.ChunkTargetSize != 4096 {
		t.Errorf("ChunkTargetSize = %d, want 4096", cfg.ChunkTargetSize)
	}
	if cfg.DigestAlgorithm != "fnv-1a-64" {
		t.Errorf("DigestAlgorithm = %q, want fnv-1a-64", cfg.DigestAlgorithm)
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	r := strings.NewReader(`
chunk_target_size = 8192
debug_ids = true
`)
	cfg, err := LoadFromReader(r)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.ChunkTargetSize != 8192 {
		t.Errorf("ChunkTargetSize = %d, want 8192", cfg.ChunkTargetSize)
	}
	if !cfg.DebugIDs {
		t.Error("DebugIDs = false, want true")
	}
	if cfg.DigestAlgorithm != "fnv-1a-64" {
		t.Errorf("DigestAlgorithm = %q, want default fnv-1a-64 to survive a partial override", cfg.DigestAlgorithm)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/buffer.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing) = %+v, want Default()", cfg)
	}
}

func TestLoadFromReaderRejectsMalformedTOML(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("this is not = = toml"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *ParseError
	if pe, ok := err.(*ParseError); ok {
		perr = pe
	}
	if perr == nil {
		t.Fatalf("error is %T, want *ParseError", err)
	}
}
