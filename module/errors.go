// SPDX-License-Identifier: EPL-2.0

package module

import (
	"errors"
	"fmt"

	"github.com/ik5/modload/binio"
)

var (
	// ErrLoad is the single category every failed load belongs to.
	ErrLoad = errors.New("module load error")

	// ErrFormatMismatch indicates a signature did not match.
	ErrFormatMismatch = errors.New("format signature mismatch")

	// ErrInvalidCount indicates a declared count exceeds what the format
	// or the stream can hold.
	ErrInvalidCount = errors.New("invalid count")

	// ErrUnrecognizedFormat indicates no registered loader accepted the stream.
	ErrUnrecognizedFormat = errors.New("unrecognized module format")

	// ErrAllocation indicates a load needed more memory than allowed.
	ErrAllocation = errors.New("allocation refused")

	// ErrShortRead indicates the stream ended inside a required field.
	ErrShortRead = binio.ErrShortRead

	// ErrOutOfBounds indicates an offset or length outside the stream.
	ErrOutOfBounds = binio.ErrOutOfBounds
)

// LoadError is returned by Registry for every failed load.
type LoadError struct {
	Path   string // file path, empty for streams
	Format string // loader short name, empty when nothing matched
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Format != "":
		return fmt.Sprintf("load %s (%s): %v", e.Path, e.Format, e.Err)
	case e.Path != "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	case e.Format != "":
		return fmt.Sprintf("load (%s): %v", e.Format, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }
