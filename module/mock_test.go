// SPDX-License-Identifier: EPL-2.0

package module

import (
	"errors"
	"sync/atomic"

	"github.com/ik5/modload/binio"
)

var errFakeDecode = errors.New("fake decode failure")

// fakeLoader accepts streams starting with magic.
type fakeLoader struct {
	name    string
	magic   string
	title   string
	loadErr error
	invalid bool
	tests   atomic.Int32
}

func (f *fakeLoader) Name() string        { return f.name }
func (f *fakeLoader) Description() string { return "fake " + f.name }

func (f *fakeLoader) Test(r *binio.Reader, start int64) (string, error) {
	f.tests.Add(1)
	id := r.ReadBytes(len(f.magic))
	if err := r.Err(); err != nil {
		return "", err
	}
	if string(id) != f.magic {
		return "", ErrFormatMismatch
	}
	return f.title, nil
}

func (f *fakeLoader) Load(cfg Config, r *binio.Reader, start int64) (*Module, error) {
	if r.Pos() != start {
		return nil, errors.New("cursor not at start")
	}
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	m := validModule()
	m.Name = f.title
	m.Type = f.name
	if f.invalid {
		m.Length = 2
	}
	return m, nil
}

// validModule is the smallest module that passes Validate.
func validModule() *Module {
	t := NewTrack(4)
	return &Module{
		Channels:        1,
		Length:          1,
		Speed:           6,
		BPM:             125,
		Order:           []int{0},
		Patterns:        []*Pattern{{Rows: 4, Tracks: []*Track{t}}},
		Tracks:          []*Track{t},
		Instruments:     []*Instrument{{Kind: InstrumentSample, Subs: []SubInstrument{{Sample: 0}}}},
		Samples:         []*Sample{{Length: 8, LoopStart: 2, LoopEnd: 6, Flags: SampleLoop}},
		ChannelSettings: []ChannelSetting{{Volume: 64, Pan: 0x80}},
	}
}
