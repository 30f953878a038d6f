// SPDX-License-Identifier: EPL-2.0

package binio

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// NameSize is the largest title or name ReadTitle will return.
const NameSize = 64

// Reader is a bounds-checked, endian-aware field reader.
type Reader struct {
	rs   io.ReadSeeker
	size int64
	pos  int64
	err  error
	buf  [4]byte
}

// NewReader measures rs and returns a Reader positioned where rs was.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "locating stream cursor")
	}

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "measuring stream")
	}

	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "restoring stream cursor")
	}

	return &Reader{rs: rs, size: size, pos: cur}, nil
}

func (r *Reader) Size() int64 { return r.size }
func (r *Reader) Pos() int64  { return r.pos }
func (r *Reader) Err() error  { return r.err }

// Remaining is the number of bytes between the cursor and the end.
func (r *Reader) Remaining() int64 {
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// Reset clears a sticky error. The cursor is left untouched.
func (r *Reader) Reset() {
	r.err = nil
}

// Require reports ErrOutOfBounds unless n bytes are available at the
// cursor. It does not move the cursor or set the sticky error.
func (r *Reader) Require(n int64) error {
	if r.err != nil {
		return r.err
	}
	if n < 0 || n > r.Remaining() {
		return errors.Wrapf(ErrOutOfBounds, "need %d bytes at 0x%X, %d available", n, r.pos, r.Remaining())
	}
	return nil
}

// SeekTo moves the cursor to the absolute position pos.
func (r *Reader) SeekTo(pos int64) error {
	if r.err != nil {
		return r.err
	}
	if pos < 0 || pos > r.size {
		r.err = errors.Wrapf(ErrOutOfBounds, "seek to 0x%X past end 0x%X", pos, r.size)
		return r.err
	}
	if _, err := r.rs.Seek(pos, io.SeekStart); err != nil {
		r.err = errors.Wrapf(err, "seek to 0x%X", pos)
		return r.err
	}
	r.pos = pos
	return nil
}

// SeekFrom moves the cursor to base+off, where off comes from the file.
func (r *Reader) SeekFrom(base int64, off uint32) error {
	return r.SeekTo(base + int64(off))
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int64) error {
	if r.err != nil {
		return r.err
	}
	if n < 0 || n > r.Remaining() {
		r.err = errors.Wrapf(ErrShortRead, "skip %d bytes at 0x%X, %d available", n, r.pos, r.Remaining())
		return r.err
	}
	return r.SeekTo(r.pos + n)
}

func (r *Reader) fill(dst []byte) bool {
	if r.err != nil {
		clear(dst)
		return false
	}
	if int64(len(dst)) > r.Remaining() {
		r.err = errors.Wrapf(ErrShortRead, "need %d bytes at 0x%X, %d available", len(dst), r.pos, r.Remaining())
		clear(dst)
		return false
	}
	n, err := io.ReadFull(r.rs, dst)
	r.pos += int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrShortRead
		}
		r.err = errors.Wrapf(err, "read %d bytes at 0x%X", len(dst), r.pos-int64(n))
		clear(dst)
		return false
	}
	return true
}

func (r *Reader) Read8() uint8 {
	r.fill(r.buf[:1])
	return r.buf[0]
}

func (r *Reader) Read8s() int8 {
	return int8(r.Read8())
}

func (r *Reader) Read16B() uint16 {
	r.fill(r.buf[:2])
	return binary.BigEndian.Uint16(r.buf[:2])
}

func (r *Reader) Read16L() uint16 {
	r.fill(r.buf[:2])
	return binary.LittleEndian.Uint16(r.buf[:2])
}

func (r *Reader) Read16Bs() int16 {
	return int16(r.Read16B())
}

func (r *Reader) Read32B() uint32 {
	r.fill(r.buf[:4])
	return binary.BigEndian.Uint32(r.buf[:4])
}

func (r *Reader) Read32L() uint32 {
	r.fill(r.buf[:4])
	return binary.LittleEndian.Uint32(r.buf[:4])
}

// ReadFull fills dst completely or records ErrShortRead.
func (r *Reader) ReadFull(dst []byte) error {
	r.fill(dst)
	return r.err
}

// ReadBytes allocates and reads n bytes. The length is checked against
// the stream before anything is allocated.
func (r *Reader) ReadBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || int64(n) > r.Remaining() {
		r.err = errors.Wrapf(ErrShortRead, "need %d bytes at 0x%X, %d available", n, r.pos, r.Remaining())
		return nil
	}
	b := make([]byte, n)
	if !r.fill(b) {
		return nil
	}
	return b
}

// ReadTitle copies at most min(n, NameSize) bytes, stopping early at the
// end of the stream, and cuts the result at the first NUL. It never sets
// the sticky error, so a truncated title is not a failure.
func (r *Reader) ReadTitle(n int) []byte {
	if r.err != nil || n <= 0 {
		return nil
	}
	n = min(n, NameSize)
	if rem := r.Remaining(); int64(n) > rem {
		n = int(rem)
	}

	b := make([]byte, n)
	got, err := io.ReadFull(r.rs, b)
	r.pos += int64(got)
	if err != nil {
		b = b[:got]
	}

	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
