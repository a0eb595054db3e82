package pipeline

import (
	"context"

	"github.com/corpustools/zimdir/internal/archive"
	"github.com/corpustools/zimdir/internal/exclude"
	"github.com/corpustools/zimdir/pkg/log"
)

// EntrySource yields archive entries in corpus order. Satisfied by
// *archive.Reader.
type EntrySource interface {
	Scan(fn func(archive.Entry) bool) error
}

// ScannerOptions configures the producer side of the pipeline.
type ScannerOptions struct {
	// Namespace is the content namespace; entries outside it are dropped.
	Namespace byte
	// BatchSize is the number of kept ids per batch.
	BatchSize int
	// Exclude drops entries whose title matches. Nil keeps everything.
	Exclude *exclude.Matcher
	// Filter is the optional CEL entry filter.
	Filter EntryFilter
	// Logger defaults to a plain console logger.
	Logger log.Logger
}

// ScanStats summarizes one scanner run.
type ScanStats struct {
	Scanned uint64
	Kept    uint64
	Batches uint64
}

// Scanner walks archive entries, applies the keep checks, and pushes
// fixed-size batches of kept ids into the queue.
type Scanner struct {
	source EntrySource
	queue  *Queue
	opts   ScannerOptions
}

// NewScanner builds a Scanner over source feeding queue.
func NewScanner(source EntrySource, queue *Queue, opts ScannerOptions) *Scanner {
	if opts.Namespace == 0 {
		opts.Namespace = 'A'
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 2500
	}
	if opts.Logger == nil {
		opts.Logger = log.NewLogger()
	}
	return &Scanner{source: source, queue: queue, opts: opts}
}

// Run scans the whole source. It always closes the queue before returning —
// also on error and cancellation — so workers drain and terminate.
func (s *Scanner) Run(ctx context.Context) (ScanStats, error) {
	defer s.queue.Close()

	var stats ScanStats
	var pushErr error
	ids := make([]uint64, 0, s.opts.BatchSize)
	seq := uint64(1)
	logger := s.opts.Logger

	scanErr := s.source.Scan(func(e archive.Entry) bool {
		if ctx.Err() != nil {
			pushErr = ctx.Err()
			return false
		}
		stats.Scanned++
		if !s.keep(e, logger) {
			return true
		}
		stats.Kept++
		if stats.Kept%10000 == 0 {
			logger.Info("scan progress", log.Uint64("kept", stats.Kept), log.Uint64("scanned", stats.Scanned))
		}
		ids = append(ids, e.ID)
		if len(ids) == s.opts.BatchSize {
			if err := s.queue.Push(ctx, Batch{Seq: seq, IDs: ids}); err != nil {
				pushErr = err
				return false
			}
			stats.Batches++
			seq++
			ids = make([]uint64, 0, s.opts.BatchSize)
		}
		return true
	})
	if scanErr != nil {
		return stats, scanErr
	}
	if pushErr != nil {
		return stats, pushErr
	}

	// Flush the final partial batch, if any.
	if len(ids) > 0 {
		if err := s.queue.Push(ctx, Batch{Seq: seq, IDs: ids}); err != nil {
			return stats, err
		}
		stats.Batches++
	}

	logger.Info("scan finished",
		log.Uint64("kept", stats.Kept),
		log.Uint64("scanned", stats.Scanned),
		log.Uint64("batches", stats.Batches),
	)
	return stats, nil
}

// keep applies the four baseline checks and the optional CEL filter, in
// order, logging the first failing reason.
func (s *Scanner) keep(e archive.Entry, logger log.Logger) bool {
	switch {
	case e.Namespace != s.opts.Namespace:
		logger.Debug("dropping entry: wrong namespace", log.Uint64("id", e.ID), log.Str("title", e.Title))
		return false
	case e.Redirect:
		logger.Debug("dropping entry: redirect", log.Uint64("id", e.ID), log.Str("title", e.Title))
		return false
	case e.Deleted:
		logger.Debug("dropping entry: deleted", log.Uint64("id", e.ID), log.Str("title", e.Title))
		return false
	case s.opts.Exclude.Matches(e.Title):
		logger.Debug("dropping entry: excluded title", log.Uint64("id", e.ID), log.Str("title", e.Title))
		return false
	case !s.opts.Filter.Keep(e):
		logger.Debug("dropping entry: filter", log.Uint64("id", e.ID), log.Str("title", e.Title))
		return false
	}
	return true
}
