package sink

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestName(t *testing.T) {
	cases := []struct {
		seq  uint64
		opts Options
		want string
	}{
		{1, Options{Zeroes: 4, Compress: true}, "0001.htmls.gz"},
		{42, Options{Zeroes: 4, Compress: false}, "0042.htmls"},
		{12345, Options{Zeroes: 4, Compress: true}, "12345.htmls.gz"},
		{7, Options{Zeroes: 6, Compress: false}, "000007.htmls"},
	}
	for _, c := range cases {
		if got := Name(c.seq, c.opts); got != c.want {
			t.Errorf("Name(%d, %+v) = %q, want %q", c.seq, c.opts, got, c.want)
		}
	}
}

func TestAppendLengthPrefix(t *testing.T) {
	dir := t.TempDir()
	a, err := Create(dir, 1, Options{Zeroes: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	content := []byte("hello, archive")
	if err := a.Append(content); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "0001.htmls"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(raw) != 4+len(content) {
		t.Fatalf("file size = %d", len(raw))
	}
	if binary.BigEndian.Uint32(raw[:4]) != uint32(len(content)) {
		t.Fatalf("prefix = %d, want %d", binary.BigEndian.Uint32(raw[:4]), len(content))
	}
	if !bytes.Equal(raw[4:], content) {
		t.Fatalf("content mismatch")
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a, err := Create(dir, 3, Options{Zeroes: 4, Compress: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := [][]byte{[]byte("first"), []byte(""), []byte("third record")}
	for _, c := range want {
		if err := a.Append(c); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadRecords(a.Path())
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("records = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Fatalf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCreateFailsOnMissingDir(t *testing.T) {
	if _, err := Create(filepath.Join(t.TempDir(), "nope"), 1, Options{Zeroes: 4}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
