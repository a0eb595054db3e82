package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Language != "hu" || cfg.Documents != 2500 || cfg.Zeroes != 4 || cfg.Threads != 10 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if !cfg.Compress {
		t.Fatalf("compression must default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	data := `{"language":"en","documents":500,"threads":4}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "en" || cfg.Documents != 500 || cfg.Threads != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	// Untouched fields keep defaults.
	if cfg.Zeroes != 4 || !cfg.Compress {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "language: en\nzeroes: 6\ncompress: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "en" || cfg.Zeroes != 6 || cfg.Compress {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ZIMDIR_LANGUAGE", "en")
	t.Setenv("ZIMDIR_DOCUMENTS", "100")
	t.Setenv("ZIMDIR_COMPRESS", "false")
	t.Setenv("ZIMDIR_THREADS", "not-a-number")

	cfg := Default()
	FromEnv(&cfg)
	if cfg.Language != "en" || cfg.Documents != 100 || cfg.Compress {
		t.Fatalf("cfg = %+v", cfg)
	}
	// Unparseable values leave the previous setting in place.
	if cfg.Threads != 10 {
		t.Fatalf("threads = %d", cfg.Threads)
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		func() Config { c := Default(); c.Namespace = ""; return c }(),
		func() Config { c := Default(); c.Namespace = "AB"; return c }(),
		func() Config { c := Default(); c.Documents = 0; return c }(),
		func() Config { c := Default(); c.Zeroes = 0; return c }(),
		func() Config { c := Default(); c.Threads = -1; return c }(),
		func() Config { c := Default(); c.QueueDepth = -1; return c }(),
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, c)
		}
	}
}

func TestLanguagePatterns(t *testing.T) {
	p := LanguagePatterns()
	if p["en"] != "(disambiguation)" || p["hu"] != "(egyértelműsítő lap)" {
		t.Fatalf("patterns = %v", p)
	}
	p["en"] = "mutated"
	if LanguagePatterns()["en"] != "(disambiguation)" {
		t.Fatalf("callers must not share state")
	}
}
