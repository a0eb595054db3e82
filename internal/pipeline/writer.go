package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/corpustools/zimdir/internal/sink"
	"github.com/corpustools/zimdir/pkg/log"
)

// ContentSource is a worker's private random-access view of the archive.
// Satisfied by *archive.Reader. Implementations are not safe for concurrent
// use; each worker owns exactly one for its whole lifetime.
type ContentSource interface {
	Content(id uint64) ([]byte, error)
	Close() error
}

// counters aggregates writer-side statistics across workers.
type counters struct {
	written       atomic.Uint64
	artifacts     atomic.Uint64
	contentErrors atomic.Uint64
}

// worker drains the queue and writes one artifact per batch.
type worker struct {
	id     int
	source ContentSource
	queue  *Queue
	dir    string
	sink   sink.Options
	logger log.Logger
	stats  *counters
}

// run loops until the queue reports end of stream or the context is
// cancelled. The worker closes its reader on every exit path.
func (w *worker) run(ctx context.Context) error {
	defer w.source.Close()
	for {
		b, ok, err := w.queue.Pop(ctx)
		if err != nil {
			return err
		}
		if !ok {
			w.logger.Debug("no more batches, exiting", log.Int("worker", w.id))
			return nil
		}
		if err := w.writeBatch(b); err != nil {
			return fmt.Errorf("worker %d: %w", w.id, err)
		}
	}
}

// writeBatch writes all of a batch's entries, in order, into the artifact
// named by the batch's sequence number. Content read failures are logged,
// counted, and skipped; artifact I/O failures abort the run.
func (w *worker) writeBatch(b Batch) error {
	art, err := sink.Create(w.dir, b.Seq, w.sink)
	if err != nil {
		return err
	}
	for _, id := range b.IDs {
		content, err := w.source.Content(id)
		if err != nil {
			w.logger.Warn("skipping entry: content read failed",
				log.Int("worker", w.id), log.Uint64("id", id), log.Err(err))
			w.stats.contentErrors.Add(1)
			continue
		}
		if err := art.Append(content); err != nil {
			_ = art.Close()
			return err
		}
		w.stats.written.Add(1)
	}
	if err := art.Close(); err != nil {
		return err
	}
	w.stats.artifacts.Add(1)
	w.logger.Debug("artifact finalized",
		log.Int("worker", w.id), log.Uint64("seq", b.Seq), log.Int("records", len(b.IDs)))
	return nil
}
