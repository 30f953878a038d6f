// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/modload/module"
)

func writeAndDecode(t *testing.T, s *module.Sample) *gowav.Decoder {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteSample(f, s); err != nil {
		f.Close()
		t.Fatalf("WriteSample() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { in.Close() })

	d := gowav.NewDecoder(in)
	if !d.IsValidFile() {
		t.Fatal("written file is not a valid WAV")
	}
	return d
}

func TestWriteSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		depth int
		rate  int
		data  []int
		want  []int
	}{
		{"8-bit scaled", 8, module.C4NTSCRate, []int{0, 127, -128, -1}, []int{0, 32512, -32768, -256}},
		{"16-bit as is", 16, module.C4PALRate, []int{1, -2, 32767, -32768}, []int{1, -2, 32767, -32768}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &module.Sample{
				Length: len(tt.data),
				Data: &goaudio.IntBuffer{
					Format:         &goaudio.Format{NumChannels: 1, SampleRate: tt.rate},
					Data:           tt.data,
					SourceBitDepth: tt.depth,
				},
			}

			d := writeAndDecode(t, s)
			buf, err := d.FullPCMBuffer()
			if err != nil {
				t.Fatalf("FullPCMBuffer() error = %v", err)
			}

			if int(d.SampleRate) != tt.rate {
				t.Errorf("SampleRate = %d, want %d", d.SampleRate, tt.rate)
			}
			if d.BitDepth != 16 || d.NumChans != 1 {
				t.Errorf("format = %d-bit %d ch, want 16-bit mono", d.BitDepth, d.NumChans)
			}
			if !slices.Equal(buf.Data, tt.want) {
				t.Errorf("Data = %v, want %v", buf.Data, tt.want)
			}
		})
	}
}

func TestWriteSample_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    *module.Sample
		want error
	}{
		{"nil sample", nil, ErrNoSampleData},
		{"skipped pcm", &module.Sample{Length: 10}, ErrNoSampleData},
		{"24-bit", &module.Sample{Data: &goaudio.IntBuffer{SourceBitDepth: 24}}, ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			if err := WriteSample(f, tt.s); !errors.Is(err, tt.want) {
				t.Errorf("WriteSample() error = %v, want %v", err, tt.want)
			}
		})
	}
}
