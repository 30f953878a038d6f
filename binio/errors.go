// SPDX-License-Identifier: EPL-2.0

package binio

import "errors"

var (
	// ErrShortRead indicates the stream ended inside a field.
	ErrShortRead = errors.New("short read")

	// ErrOutOfBounds indicates an offset or length outside the stream.
	ErrOutOfBounds = errors.New("offset out of bounds")
)
