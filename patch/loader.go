// SPDX-License-Identifier: EPL-2.0

package patch

import (
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/modload/binio"
	"github.com/ik5/modload/module"
	"github.com/ik5/modload/utils"
	"github.com/pkg/errors"
)

// Loader implements module.PatchLoader with go-audio buffers.
type Loader struct {
	// MaxBytes caps a single sample. Zero uses the module default.
	MaxBytes int
	// SampleRate is recorded on the buffer format. Zero means C4 NTSC.
	SampleRate int
}

func (l Loader) LoadPatch(r *binio.Reader, id int, flags module.PatchFlag, s *module.Sample) error {
	size := s.ByteSize()
	if size < 0 {
		return errors.Wrapf(module.ErrInvalidCount, "sample %d: length %d", id, s.Length)
	}

	limit := l.MaxBytes
	if limit <= 0 {
		limit = module.DefaultLimits().MaxSampleBytes
	}
	if size > limit {
		return errors.Wrapf(module.ErrAllocation, "sample %d: %d bytes exceeds %d", id, size, limit)
	}
	if err := r.Require(int64(size)); err != nil {
		return errors.Wrapf(err, "sample %d", id)
	}

	raw := r.ReadBytes(size)
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "sample %d", id)
	}

	rate := l.SampleRate
	if rate <= 0 {
		rate = module.C4NTSCRate
	}

	data := make([]int, s.Length)
	depth := 8
	unsigned := flags&module.PatchUnsigned != 0

	if s.Is16Bit() {
		depth = 16
		for i := range data {
			b0, b1 := raw[2*i], raw[2*i+1]
			switch {
			case flags&module.PatchBigEndian != 0:
				data[i] = utils.Signed16BE(b0, b1)
			case unsigned:
				data[i] = utils.Unsigned16LE(b0, b1)
			default:
				data[i] = utils.Signed16LE(b0, b1)
			}
		}
	} else {
		for i, b := range raw {
			if unsigned {
				data[i] = utils.Unsigned8(b)
			} else {
				data[i] = utils.Signed8(b)
			}
		}
	}

	s.Data = &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: depth,
	}
	return nil
}
