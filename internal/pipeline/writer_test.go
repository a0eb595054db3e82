package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/corpustools/zimdir/internal/sink"
	"github.com/corpustools/zimdir/pkg/log"
)

// mapSource is an in-memory ContentSource for worker tests.
type mapSource map[uint64][]byte

func (m mapSource) Content(id uint64) ([]byte, error) {
	c, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("no content for id %d", id)
	}
	return c, nil
}

func (m mapSource) Close() error { return nil }

func quietLogger() log.Logger {
	return log.NewLogger(log.WithLevel(log.FatalLevel), log.WithOutput(log.NewWriterOutput(&bytes.Buffer{})))
}

func newTestWorker(t *testing.T, src ContentSource, q *Queue, dir string) (*worker, *counters) {
	t.Helper()
	stats := &counters{}
	return &worker{
		id:     1,
		source: src,
		queue:  q,
		dir:    dir,
		sink:   sink.Options{Zeroes: 4},
		logger: quietLogger(),
		stats:  stats,
	}, stats
}

func TestWorkerWritesBatchInOrder(t *testing.T) {
	dir := t.TempDir()
	src := mapSource{
		7: []byte("seven"),
		3: []byte("three"),
		9: []byte("nine"),
	}
	q := NewQueue(2)
	_ = q.Push(context.Background(), Batch{Seq: 12, IDs: []uint64{7, 3, 9}})
	q.Close()

	w, stats := newTestWorker(t, src, q, dir)
	if err := w.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	records, err := sink.ReadRecords(filepath.Join(dir, "0012.htmls"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	want := [][]byte{[]byte("seven"), []byte("three"), []byte("nine")}
	if len(records) != len(want) {
		t.Fatalf("records = %d", len(records))
	}
	for i := range want {
		if !bytes.Equal(records[i], want[i]) {
			t.Fatalf("record %d = %q, want %q", i, records[i], want[i])
		}
	}
	if stats.written.Load() != 3 || stats.artifacts.Load() != 1 {
		t.Fatalf("stats: written=%d artifacts=%d", stats.written.Load(), stats.artifacts.Load())
	}
}

func TestWorkerSkipsUnreadableEntries(t *testing.T) {
	dir := t.TempDir()
	src := mapSource{1: []byte("one"), 3: []byte("three")} // id 2 missing
	q := NewQueue(2)
	_ = q.Push(context.Background(), Batch{Seq: 1, IDs: []uint64{1, 2, 3}})
	q.Close()

	w, stats := newTestWorker(t, src, q, dir)
	if err := w.run(context.Background()); err != nil {
		t.Fatalf("one bad entry must not fail the worker: %v", err)
	}

	records, err := sink.ReadRecords(filepath.Join(dir, "0001.htmls"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want the two readable entries", len(records))
	}
	if stats.contentErrors.Load() != 1 {
		t.Fatalf("contentErrors = %d", stats.contentErrors.Load())
	}
}

func TestWorkerArtifactFailureAborts(t *testing.T) {
	q := NewQueue(2)
	_ = q.Push(context.Background(), Batch{Seq: 1, IDs: []uint64{1}})
	q.Close()

	// Nonexistent directory makes artifact creation fail.
	w, _ := newTestWorker(t, mapSource{1: []byte("x")}, q, filepath.Join(t.TempDir(), "missing"))
	if err := w.run(context.Background()); err == nil {
		t.Fatalf("expected artifact create failure to abort the worker")
	}
}

func TestWorkerExitsOnEnd(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	w, stats := newTestWorker(t, mapSource{}, q, t.TempDir())
	if err := w.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.artifacts.Load() != 0 {
		t.Fatalf("END must not create an artifact")
	}
}
