package archive

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	pebblestore "github.com/corpustools/zimdir/internal/storage/pebble"
)

// Entry is one content item's metadata.
type Entry struct {
	ID        uint64
	Title     string
	Namespace byte
	Redirect  bool
	Deleted   bool
}

// Archive wraps the Pebble database holding a corpus.
type Archive struct {
	db *pebblestore.DB

	mu     sync.Mutex
	lastID uint64
}

// ErrNotFound is returned when an entry id has no content.
var ErrNotFound = errors.New("archive: entry not found")

// ErrCorrupt is returned when an entry record fails validation.
var ErrCorrupt = errors.New("archive: corrupt entry record")

// Open opens an existing archive read-only. It fails fast when the path does
// not hold an archive, so callers can abort before starting any goroutines.
func Open(path string) (*Archive, error) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: path, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	a := &Archive{db: db}
	if err := a.loadMeta(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return a, nil
}

// Create opens an archive read-write, creating it if absent. Used by the
// pack command and by tests; extraction never opens archives this way.
func Create(path string) (*Archive, error) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: path, Fsync: pebblestore.FsyncModeInterval})
	if err != nil {
		return nil, fmt.Errorf("create archive %s: %w", path, err)
	}
	a := &Archive{db: db}
	if err := a.loadMeta(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create archive %s: %w", path, err)
	}
	return a, nil
}

func (a *Archive) loadMeta() error {
	meta, err := a.db.Get(KeyMeta())
	if err != nil {
		// A freshly created archive has no metadata yet.
		return nil
	}
	if len(meta) < 8 {
		return ErrCorrupt
	}
	a.lastID = binary.BigEndian.Uint64(meta[:8])
	return nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Count returns the number of entries in the archive.
func (a *Archive) Count() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastID
}

// Append adds one entry with its content, assigning the next contiguous id.
// The metadata record, the content, and the archive metadata are committed as
// a single atomic batch.
func (a *Archive) Append(ctx context.Context, title string, namespace byte, redirect, deleted bool, content []byte) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	b := a.db.NewBatch()
	defer b.Close()

	id := a.lastID + 1
	if err := b.Set(KeyEntry(id), EncodeEntryMeta(title, namespace, redirect, deleted), nil); err != nil {
		return 0, err
	}
	if err := b.Set(KeyContent(id), content, nil); err != nil {
		return 0, err
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], id)
	if err := b.Set(KeyMeta(), meta[:], nil); err != nil {
		return 0, err
	}
	if err := a.db.CommitBatch(ctx, b); err != nil {
		return 0, err
	}
	a.lastID = id
	return id, nil
}
