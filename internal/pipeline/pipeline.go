package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/corpustools/zimdir/internal/archive"
	"github.com/corpustools/zimdir/internal/exclude"
	"github.com/corpustools/zimdir/internal/sink"
	"github.com/corpustools/zimdir/pkg/log"
)

// Options configures a pipeline run.
type Options struct {
	// Archive is the opened source archive. Each stage constructs its own
	// reader from it; the archive itself is only used as a reader factory.
	Archive *archive.Archive
	// OutputDir receives the artifact files; created if absent.
	OutputDir string
	// Namespace is the content namespace (default 'A').
	Namespace byte
	// BatchSize is the number of kept entries per artifact (default 2500).
	BatchSize int
	// QueueDepth bounds the number of pending batches (default: Workers).
	QueueDepth int
	// Workers is the number of parallel writers (default 10).
	Workers int
	// Zeroes is the artifact filename padding width (default 4).
	Zeroes int
	// Compress gzips artifacts.
	Compress bool
	// Exclude is the compiled title exclusion matcher. Nil keeps everything.
	Exclude *exclude.Matcher
	// Filter is the optional CEL entry filter.
	Filter EntryFilter
	// Logger defaults to a plain console logger.
	Logger log.Logger
}

// Stats aggregates the result of a run.
type Stats struct {
	Scanned       uint64
	Kept          uint64
	Batches       uint64
	Written       uint64
	Artifacts     uint64
	ContentErrors uint64
}

// Pipeline orchestrates one scanner and N workers over a bounded queue.
type Pipeline struct {
	opts Options
}

// New validates and applies defaults to opts.
func New(opts Options) (*Pipeline, error) {
	if opts.Archive == nil {
		return nil, errors.New("pipeline: Options.Archive is required")
	}
	if opts.OutputDir == "" {
		return nil, errors.New("pipeline: Options.OutputDir is required")
	}
	if opts.Workers < 1 {
		opts.Workers = 10
	}
	if opts.QueueDepth < 1 {
		opts.QueueDepth = opts.Workers
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 2500
	}
	if opts.Zeroes < 1 {
		opts.Zeroes = 4
	}
	if opts.Logger == nil {
		opts.Logger = log.NewLogger()
	}
	return &Pipeline{opts: opts}, nil
}

// Run creates the output directory, starts the scanner and the workers, and
// blocks until all of them finish. The first error cancels the shared
// context, which unblocks every Push and Pop; no partial-result cleanup is
// performed.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output dir: %w", err)
	}

	queue := NewQueue(p.opts.QueueDepth)
	sinkOpts := sink.Options{Zeroes: p.opts.Zeroes, Compress: p.opts.Compress}

	var scanStats ScanStats
	var writeStats counters

	g, gctx := errgroup.WithContext(ctx)

	scanReader := p.opts.Archive.NewReader()
	scanner := NewScanner(scanReader, queue, ScannerOptions{
		Namespace: p.opts.Namespace,
		BatchSize: p.opts.BatchSize,
		Exclude:   p.opts.Exclude,
		Filter:    p.opts.Filter,
		Logger:    p.opts.Logger.With(log.Component("scanner")),
	})
	g.Go(func() error {
		defer scanReader.Close()
		st, err := scanner.Run(gctx)
		scanStats = st
		return err
	})

	for i := 1; i <= p.opts.Workers; i++ {
		w := &worker{
			id:     i,
			source: p.opts.Archive.NewReader(),
			queue:  queue,
			dir:    p.opts.OutputDir,
			sink:   sinkOpts,
			logger: p.opts.Logger.With(log.Component("writer")),
			stats:  &writeStats,
		}
		g.Go(func() error { return w.run(gctx) })
	}

	err := g.Wait()
	stats := Stats{
		Scanned:       scanStats.Scanned,
		Kept:          scanStats.Kept,
		Batches:       scanStats.Batches,
		Written:       writeStats.written.Load(),
		Artifacts:     writeStats.artifacts.Load(),
		ContentErrors: writeStats.contentErrors.Load(),
	}
	return stats, err
}
