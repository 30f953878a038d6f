// SPDX-License-Identifier: EPL-2.0

// Package binio reads fixed-width fields out of untrusted module images.
//
// A Reader wraps an io.ReadSeeker whose total size is measured once, so
// every read and seek can be checked against the real end of the stream
// before it happens:
//
//	r, err := binio.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	magic := r.ReadBytes(4)
//	length := r.Read32B()
//	if err := r.Err(); err != nil {
//	    return err // ErrShortRead: the stream ended inside a field
//	}
//
// Field reads are sticky: after the first failure every further read
// returns zero and Err reports the first failure. Callers must check
// Err before a value is used to seek, size an allocation or bound a loop.
//
// Seeks never trust raw offsets. SeekTo and SeekFrom refuse any target
// outside [0, Size] with ErrOutOfBounds, and Require reports whether a
// declared amount of data is actually present at the cursor.
package binio
