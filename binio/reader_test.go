// SPDX-License-Identifier: EPL-2.0

package binio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func newReader(t *testing.T, b []byte) *Reader {
	t.Helper()

	r, err := NewReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return r
}

func TestNewReader_KeepsCursor(t *testing.T) {
	t.Parallel()

	rs := bytes.NewReader([]byte{1, 2, 3, 4, 5})
	rs.Seek(2, io.SeekStart)

	r, err := NewReader(rs)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if r.Size() != 5 {
		t.Errorf("Size() = %d, want 5", r.Size())
	}
	if r.Pos() != 2 {
		t.Errorf("Pos() = %d, want 2", r.Pos())
	}
	if got := r.Read8(); got != 3 {
		t.Errorf("Read8() = %d, want 3", got)
	}
}

func TestReader_Endianness(t *testing.T) {
	t.Parallel()

	r := newReader(t, []byte{
		0x12, 0x34, // 16B
		0x12, 0x34, // 16L
		0xFF, 0xFE, // 16Bs
		0x01, 0x02, 0x03, 0x04, // 32B
		0x01, 0x02, 0x03, 0x04, // 32L
		0x80, // 8s
	})

	if got := r.Read16B(); got != 0x1234 {
		t.Errorf("Read16B() = 0x%X, want 0x1234", got)
	}
	if got := r.Read16L(); got != 0x3412 {
		t.Errorf("Read16L() = 0x%X, want 0x3412", got)
	}
	if got := r.Read16Bs(); got != -2 {
		t.Errorf("Read16Bs() = %d, want -2", got)
	}
	if got := r.Read32B(); got != 0x01020304 {
		t.Errorf("Read32B() = 0x%X, want 0x01020304", got)
	}
	if got := r.Read32L(); got != 0x04030201 {
		t.Errorf("Read32L() = 0x%X, want 0x04030201", got)
	}
	if got := r.Read8s(); got != -128 {
		t.Errorf("Read8s() = %d, want -128", got)
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReader_StickyShortRead(t *testing.T) {
	t.Parallel()

	r := newReader(t, []byte{0xAA, 0xBB, 0xCC})

	if got := r.Read32B(); got != 0 {
		t.Errorf("Read32B() past end = 0x%X, want 0", got)
	}
	if !errors.Is(r.Err(), ErrShortRead) {
		t.Fatalf("Err() = %v, want ErrShortRead", r.Err())
	}

	// later reads keep failing and yield zero
	if got := r.Read8(); got != 0 {
		t.Errorf("Read8() after error = %d, want 0", got)
	}
	if r.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", r.Pos())
	}

	r.Reset()
	if got := r.Read8(); got != 0xAA {
		t.Errorf("Read8() after Reset = 0x%X, want 0xAA", got)
	}
}

func TestReader_Require(t *testing.T) {
	t.Parallel()

	r := newReader(t, make([]byte, 10))
	r.Skip(4)

	tests := []struct {
		name    string
		n       int64
		wantErr bool
	}{
		{"exact", 6, false},
		{"zero", 0, false},
		{"one past", 7, true},
		{"negative", -1, true},
		{"huge", 1 << 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := r.Require(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Require(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Require(%d) error = %v, want ErrOutOfBounds", tt.n, err)
			}
		})
	}

	if r.Err() != nil {
		t.Errorf("Require set the sticky error: %v", r.Err())
	}
}

func TestReader_Seek(t *testing.T) {
	t.Parallel()

	r := newReader(t, []byte{0, 1, 2, 3, 4, 5, 6, 7})

	if err := r.SeekFrom(2, 3); err != nil {
		t.Fatalf("SeekFrom(2, 3) error = %v", err)
	}
	if got := r.Read8(); got != 5 {
		t.Errorf("Read8() = %d, want 5", got)
	}

	if err := r.SeekTo(8); err != nil {
		t.Errorf("SeekTo(end) error = %v, want nil", err)
	}

	err := r.SeekFrom(4, 0xFFFFFFF0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SeekFrom() past end error = %v, want ErrOutOfBounds", err)
	}
	if r.Pos() != 8 {
		t.Errorf("Pos() after failed seek = %d, want 8", r.Pos())
	}

	r.Reset()
	r.SeekTo(0)
	if err := r.Skip(9); !errors.Is(err, ErrShortRead) {
		t.Errorf("Skip(9) error = %v, want ErrShortRead", err)
	}
}

func TestReader_ReadBytes(t *testing.T) {
	t.Parallel()

	r := newReader(t, []byte("abcdef"))

	if got := r.ReadBytes(3); string(got) != "abc" {
		t.Errorf("ReadBytes(3) = %q, want %q", got, "abc")
	}

	// an oversized length must fail without allocating
	if got := r.ReadBytes(1 << 30); got != nil {
		t.Errorf("ReadBytes(1<<30) = %d bytes, want nil", len(got))
	}
	if !errors.Is(r.Err(), ErrShortRead) {
		t.Errorf("Err() = %v, want ErrShortRead", r.Err())
	}
	if r.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", r.Pos())
	}
}

func TestReader_ReadTitle(t *testing.T) {
	t.Parallel()

	long := bytes.Repeat([]byte{'x'}, 100)

	tests := []struct {
		name string
		data []byte
		n    int
		want string
	}{
		{"cut at nul", []byte("Title\x00junk"), 10, "Title"},
		{"shorter than n", []byte("abc"), 20, "abc"},
		{"capped", long, 100, string(long[:NameSize])},
		{"zero length", []byte("abc"), 0, ""},
		{"leading nul", []byte("\x00abc"), 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newReader(t, tt.data)
			got := r.ReadTitle(tt.n)
			if string(got) != tt.want {
				t.Errorf("ReadTitle(%d) = %q, want %q", tt.n, got, tt.want)
			}
			if r.Err() != nil {
				t.Errorf("ReadTitle set the sticky error: %v", r.Err())
			}
		})
	}
}
