// Package archive implements the zimdir archive format on top of Pebble.
//
// # Overview
//
// An archive stores a corpus as numbered entries with metadata and raw
// content. Keys are lexicographically ordered so a full scan visits entries
// in id order, which is also the corpus order:
//   - za/m            (archive metadata: lastID)
//   - za/e/{id_be8}   (entry metadata: title, namespace, flags, crc32c)
//   - za/c/{id_be8}   (raw content bytes)
//
// Ids are assigned contiguously from 1 at build time and are stable for the
// archive's lifetime.
//
// API surface (internal)
//
//	a, _ := archive.Open(path)      // read-only, fails fast if absent
//	defer a.Close()
//
//	r, _ := a.NewReader()           // snapshot-backed handle
//	defer r.Close()
//	_ = r.Scan(func(e archive.Entry) bool { return true })
//	content, _ := r.Content(42)
//
// A Reader is not safe for concurrent use. Each pipeline stage constructs its
// own Reader and never shares it across goroutines.
package archive
