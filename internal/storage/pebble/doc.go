// Package pebblestore provides a thin wrapper around Pebble with read-only
// open, fsync policy, snapshots, and batches.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{DataDir: "./corpus.zar", ReadOnly: true})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Point reads
//	v, _ := db.Get([]byte("k"))
//
//	// Atomic updates with batches (read-write mode only)
//	b := db.NewBatch()
//	_ = b.Set([]byte("k"), []byte("v"), nil)
//	_ = db.CommitBatch(context.Background(), b)
//	b.Close()
package pebblestore
