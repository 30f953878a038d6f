// SPDX-License-Identifier: EPL-2.0

package mmd

import (
	"fmt"

	"github.com/ik5/modload/module"
)

var (
	// ErrNotMMDFile indicates the stream is neither MMD0 nor MMD1.
	ErrNotMMDFile = fmt.Errorf("not an MMD0/MMD1 file: %w", module.ErrFormatMismatch)

	// ErrBadBlock indicates a block whose declared size does not fit the file.
	ErrBadBlock = fmt.Errorf("invalid MMD block: %w", module.ErrOutOfBounds)

	// ErrBadSynth indicates a synthetic instrument with unusable tables.
	ErrBadSynth = fmt.Errorf("invalid MMD synth instrument: %w", module.ErrInvalidCount)
)
