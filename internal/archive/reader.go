package archive

import (
	"errors"

	"github.com/cockroachdb/pebble"
)

// Reader is a read handle over a point-in-time snapshot of the archive.
//
// A Reader is NOT safe for concurrent use: it owns a Pebble snapshot and, in
// future, per-handle buffers. Each goroutine must construct its own Reader
// via Archive.NewReader; sharing one handle across workers is a correctness
// bug, not a performance tradeoff.
type Reader struct {
	snap *pebble.Snapshot
}

// NewReader returns a fresh Reader over the archive's current state.
func (a *Archive) NewReader() *Reader {
	return &Reader{snap: a.db.NewSnapshot()}
}

// Close releases the underlying snapshot.
func (r *Reader) Close() error {
	if r == nil || r.snap == nil {
		return nil
	}
	return r.snap.Close()
}

// Scan iterates entries in id order, calling fn for each. Iteration stops
// when fn returns false. Records failing validation are reported as
// ErrCorrupt rather than skipped: a corrupt archive should surface, not
// silently shrink the corpus.
func (r *Reader) Scan(fn func(Entry) bool) error {
	lo, hi := EntryKeyBounds()
	iter, err := r.snap.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return err
	}
	defer iter.Close()

	for ok := iter.First(); ok; ok = iter.Next() {
		id, ok2 := IDFromEntryKey(iter.Key())
		if !ok2 {
			return ErrCorrupt
		}
		var e Entry
		if !DecodeEntryMeta(iter.Value(), &e) {
			return ErrCorrupt
		}
		e.ID = id
		if !fn(e) {
			break
		}
	}
	return iter.Error()
}

// Content fetches the raw content bytes for an entry id.
func (r *Reader) Content(id uint64) ([]byte, error) {
	val, closer, err := r.snap.Get(KeyContent(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), val...), nil
}
