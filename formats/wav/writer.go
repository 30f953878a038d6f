// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/modload/module"
	"github.com/pkg/errors"
)

const pcmFormat = 1

// WriteSample writes one decoded sample as a mono 16-bit PCM WAV file.
// 8-bit samples are scaled up so both depths share one output format.
func WriteSample(w io.WriteSeeker, s *module.Sample) error {
	if s == nil || s.Data == nil {
		return ErrNoSampleData
	}

	var scale int
	switch s.Data.SourceBitDepth {
	case 8:
		scale = 256
	case 16:
		scale = 1
	default:
		return ErrUnsupportedBitDepth
	}

	rate := module.C4NTSCRate
	if s.Data.Format != nil && s.Data.Format.SampleRate > 0 {
		rate = s.Data.Format.SampleRate
	}

	out := make([]int, len(s.Data.Data))
	for i, v := range s.Data.Data {
		out[i] = v * scale
	}

	enc := gowav.NewEncoder(w, rate, 16, 1, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           out,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "encoding wav")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "finishing wav")
	}
	return nil
}
