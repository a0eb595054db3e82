package archive

import (
	"encoding/binary"
	"hash/crc32"
)

// Entry metadata encoding:
// varint titleLen | title | namespace(1B) | flags(1B) | crc32c(everything before)

const (
	flagRedirect = 0x1
	flagDeleted  = 0x2
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// EncodeEntryMeta serializes an entry's metadata.
func EncodeEntryMeta(title string, namespace byte, redirect, deleted bool) []byte {
	out := make([]byte, 0, 10+len(title)+2+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(title)))
	out = append(out, tmp[:n]...)
	out = append(out, title...)
	out = append(out, namespace)
	var flags byte
	if redirect {
		flags |= flagRedirect
	}
	if deleted {
		flags |= flagDeleted
	}
	out = append(out, flags)

	crc := crc32.Checksum(out, castagnoli)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	return append(out, crcb[:]...)
}

// DecodeEntryMeta parses an entry metadata record into e (the id is left
// untouched). Returns false when the record is truncated or fails its crc.
func DecodeEntryMeta(b []byte, e *Entry) bool {
	if len(b) < 1+2+4 {
		return false
	}
	body, crcb := b[:len(b)-4], b[len(b)-4:]
	if crc32.Checksum(body, castagnoli) != binary.BigEndian.Uint32(crcb) {
		return false
	}
	tlen, n := binary.Uvarint(body)
	if n <= 0 || n+int(tlen)+2 != len(body) {
		return false
	}
	e.Title = string(body[n : n+int(tlen)])
	e.Namespace = body[n+int(tlen)]
	flags := body[n+int(tlen)+1]
	e.Redirect = flags&flagRedirect != 0
	e.Deleted = flags&flagDeleted != 0
	return true
}
