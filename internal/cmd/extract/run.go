// Package extract wires configuration, the archive, and the pipeline into
// the zimdir extract command.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/corpustools/zimdir/internal/archive"
	"github.com/corpustools/zimdir/internal/config"
	"github.com/corpustools/zimdir/internal/exclude"
	"github.com/corpustools/zimdir/internal/pipeline"
	"github.com/corpustools/zimdir/pkg/log"
)

// Options holds the fully-resolved settings for one extraction run.
type Options struct {
	// InputFile is the archive path.
	InputFile string
	// OutputDir receives the artifact files.
	OutputDir string
	// Config carries everything else (language, pattern, sizes, threads).
	Config config.Config
	// Logger, when nil, is built from Config.LogLevel/LogFormat.
	Logger log.Logger
}

// Run executes one extraction. It fails fast on an unreadable archive or an
// invalid pattern before starting any goroutines.
func Run(ctx context.Context, opts Options) error {
	if opts.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if opts.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = log.ApplyConfig(&log.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		if err != nil {
			return err
		}
	}

	matcher, err := exclude.ForLanguage(config.LanguagePatterns(), cfg.Language, cfg.Pattern)
	if err != nil {
		return err
	}
	filter, err := pipeline.NewEntryFilter(cfg.Filter)
	if err != nil {
		return err
	}

	arc, err := archive.Open(opts.InputFile)
	if err != nil {
		return err
	}
	defer arc.Close()

	p, err := pipeline.New(pipeline.Options{
		Archive:    arc,
		OutputDir:  opts.OutputDir,
		Namespace:  cfg.Namespace[0],
		BatchSize:  cfg.Documents,
		QueueDepth: cfg.QueueDepth,
		Workers:    cfg.Threads,
		Zeroes:     cfg.Zeroes,
		Compress:   cfg.Compress,
		Exclude:    matcher,
		Filter:     filter,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting extraction",
		log.Str("input", opts.InputFile),
		log.Str("output", opts.OutputDir),
		log.Int("threads", cfg.Threads),
		log.Int("documents", cfg.Documents))

	start := time.Now()
	stats, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("extraction finished",
		log.Uint64("scanned", stats.Scanned),
		log.Uint64("kept", stats.Kept),
		log.Uint64("written", stats.Written),
		log.Uint64("artifacts", stats.Artifacts),
		log.Uint64("content_errors", stats.ContentErrors),
		log.Dur("elapsed", time.Since(start)))
	return nil
}
