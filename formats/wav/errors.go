// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNoSampleData indicates the sample has no PCM attached.
	ErrNoSampleData = errors.New("sample has no PCM data")

	// ErrUnsupportedBitDepth indicates PCM that is neither 8 nor 16 bit.
	ErrUnsupportedBitDepth = errors.New("only 8-bit and 16-bit samples supported")
)
