// Package sink writes batch artifacts: numbered, zero-padded, optionally
// gzip-compressed files of length-prefixed content records.
//
// Record format: uint32 big-endian byte length | raw content bytes.
package sink

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const extension = ".htmls"

// Options configures artifact creation.
type Options struct {
	// Zeroes is the total width the sequence number is left-padded to.
	Zeroes int
	// Compress wraps the artifact in a gzip stream and appends ".gz".
	Compress bool
}

// Name renders the artifact filename for a batch sequence number.
func Name(seq uint64, opts Options) string {
	name := fmt.Sprintf("%0*d%s", opts.Zeroes, seq, extension)
	if opts.Compress {
		name += ".gz"
	}
	return name
}

// Artifact is one open output file. Not safe for concurrent use; each worker
// owns at most one open Artifact at a time.
type Artifact struct {
	path string
	f    *os.File
	gz   *gzip.Writer
	w    io.Writer
}

// Create opens the artifact for a batch sequence number inside dir.
func Create(dir string, seq uint64, opts Options) (*Artifact, error) {
	path := filepath.Join(dir, Name(seq, opts))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}
	a := &Artifact{path: path, f: f, w: f}
	if opts.Compress {
		a.gz = gzip.NewWriter(f)
		a.w = a.gz
	}
	return a, nil
}

// Path returns the artifact's filesystem path.
func (a *Artifact) Path() string { return a.path }

// Append writes one length-prefixed record.
func (a *Artifact) Append(content []byte) error {
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(content)))
	if _, err := a.w.Write(prefix[:]); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	if _, err := a.w.Write(content); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Close finalizes the artifact, flushing the compression stream if any.
func (a *Artifact) Close() error {
	if a.gz != nil {
		if err := a.gz.Close(); err != nil {
			_ = a.f.Close()
			return fmt.Errorf("finalize artifact: %w", err)
		}
	}
	if err := a.f.Close(); err != nil {
		return fmt.Errorf("finalize artifact: %w", err)
	}
	return nil
}

// ReadRecords reads back every record of an artifact, transparently
// decompressing ".gz" files. Used by inspect tooling and tests.
func ReadRecords(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	var records [][]byte
	for {
		var prefix [4]byte
		if _, err := io.ReadFull(r, prefix[:]); err != nil {
			if err == io.EOF {
				return records, nil
			}
			return nil, err
		}
		content := make([]byte, binary.BigEndian.Uint32(prefix[:]))
		if _, err := io.ReadFull(r, content); err != nil {
			return nil, err
		}
		records = append(records, content)
	}
}
