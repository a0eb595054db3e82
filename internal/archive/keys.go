package archive

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - za/m            (archive metadata)
// - za/e/{id_be8}   (entry metadata records)
// - za/c/{id_be8}   (entry content)

var (
	metaKey       = []byte("za/m")
	entryPrefix   = []byte("za/e/")
	contentPrefix = []byte("za/c/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyMeta returns the archive metadata key.
func KeyMeta() []byte { return metaKey }

// KeyEntry builds the entry metadata key with a big-endian id for ordering.
func KeyEntry(id uint64) []byte {
	k := make([]byte, 0, len(entryPrefix)+8)
	k = append(k, entryPrefix...)
	return appendBE8(k, id)
}

// KeyContent builds the content key for an entry id.
func KeyContent(id uint64) []byte {
	k := make([]byte, 0, len(contentPrefix)+8)
	k = append(k, contentPrefix...)
	return appendBE8(k, id)
}

// EntryKeyBounds returns the [lo, hi) range covering all entry metadata keys.
func EntryKeyBounds() (lo, hi []byte) {
	lo = append([]byte{}, entryPrefix...)
	hi = append(append([]byte{}, entryPrefix...), 0xFF)
	return lo, hi
}

// IDFromEntryKey extracts the entry id from a metadata key.
func IDFromEntryKey(k []byte) (uint64, bool) {
	if len(k) != len(entryPrefix)+8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(k[len(entryPrefix):]), true
}
