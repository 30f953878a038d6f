// SPDX-License-Identifier: EPL-2.0

package mtm

import (
	"fmt"

	"github.com/ik5/modload/module"
)

var (
	// ErrNotMTMFile indicates the stream does not start with an MTM signature.
	ErrNotMTMFile = fmt.Errorf("not an MTM file: %w", module.ErrFormatMismatch)

	// ErrBadChannelCount indicates a channel count outside 1..32.
	ErrBadChannelCount = fmt.Errorf("unsupported MTM channel count: %w", module.ErrInvalidCount)

	// ErrBadRowCount indicates a row count outside 1..64.
	ErrBadRowCount = fmt.Errorf("unsupported MTM row count: %w", module.ErrInvalidCount)

	// ErrBadTrackIndex indicates a pattern slot pointing past the track pool.
	ErrBadTrackIndex = fmt.Errorf("MTM track index out of range: %w", module.ErrOutOfBounds)
)
