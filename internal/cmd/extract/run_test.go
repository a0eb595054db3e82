package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/corpustools/zimdir/internal/archive"
	"github.com/corpustools/zimdir/internal/config"
	"github.com/corpustools/zimdir/internal/exclude"
	"github.com/corpustools/zimdir/pkg/log"
)

func quietLogger() log.Logger {
	return log.NewLogger(log.WithLevel(log.FatalLevel))
}

func buildArchive(t *testing.T, titles []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive")
	arc, err := archive.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer arc.Close()
	for i, title := range titles {
		content := []byte(fmt.Sprintf("<html>%s</html>", title))
		if _, err := arc.Append(context.Background(), title, 'A', false, false, content); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	titles := []string{
		"Budapest",
		"Duna",
		"Pécs (egyértelműsítő lap)",
		"Szeged",
		"Tisza",
	}
	input := buildArchive(t, titles)
	output := filepath.Join(t.TempDir(), "out")

	cfg := config.Default()
	cfg.Documents = 2
	cfg.Threads = 2
	cfg.Compress = false

	err := Run(context.Background(), Options{
		InputFile: input,
		OutputDir: output,
		Config:    cfg,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// 4 kept entries at 2 per file: two artifacts.
	entries, err := os.ReadDir(output)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(entries))
	}
}

func TestRunMissingArguments(t *testing.T) {
	cfg := config.Default()
	if err := Run(context.Background(), Options{OutputDir: "x", Config: cfg, Logger: quietLogger()}); err == nil {
		t.Fatalf("expected error without input file")
	}
	if err := Run(context.Background(), Options{InputFile: "x", Config: cfg, Logger: quietLogger()}); err == nil {
		t.Fatalf("expected error without output dir")
	}
}

func TestRunUnreadableArchiveFailsFast(t *testing.T) {
	cfg := config.Default()
	err := Run(context.Background(), Options{
		InputFile: filepath.Join(t.TempDir(), "nope"),
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Config:    cfg,
		Logger:    quietLogger(),
	})
	if err == nil {
		t.Fatalf("expected open failure")
	}
}

func TestRunBadPattern(t *testing.T) {
	input := buildArchive(t, []string{"Only"})
	cfg := config.Default()
	cfg.Pattern = "("

	err := Run(context.Background(), Options{
		InputFile: input,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Config:    cfg,
		Logger:    quietLogger(),
	})
	if !errors.Is(err, exclude.ErrBadPattern) {
		t.Fatalf("err = %v, want ErrBadPattern", err)
	}
}

func TestRunBadFilter(t *testing.T) {
	input := buildArchive(t, []string{"Only"})
	cfg := config.Default()
	cfg.Filter = "title +"

	err := Run(context.Background(), Options{
		InputFile: input,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Config:    cfg,
		Logger:    quietLogger(),
	})
	if !errors.Is(err, exclude.ErrBadPattern) {
		t.Fatalf("err = %v, want ErrBadPattern", err)
	}
}

func TestRunUnknownLanguage(t *testing.T) {
	input := buildArchive(t, []string{"Only"})
	cfg := config.Default()
	cfg.Language = "xx"

	err := Run(context.Background(), Options{
		InputFile: input,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Config:    cfg,
		Logger:    quietLogger(),
	})
	if !errors.Is(err, exclude.ErrUnknownLanguage) {
		t.Fatalf("err = %v, want ErrUnknownLanguage", err)
	}
}
