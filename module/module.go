// SPDX-License-Identifier: EPL-2.0

package module

import (
	goaudio "github.com/go-audio/audio"
	"github.com/pkg/errors"
)

// C4 playback rates in Hz.
const (
	C4PALRate  = 8287
	C4NTSCRate = 8363
)

// Quirk flags tell the player about format specific behaviour.
type Quirk uint32

const (
	// QuirkVolSlideAll applies volume slides on every tick, including the first.
	QuirkVolSlideAll Quirk = 1 << iota
	// QuirkMEDBPM marks tempo values that use the OctaMED BPM model.
	QuirkMEDBPM
)

// SampleFlag describes the layout of a Sample's PCM data.
type SampleFlag uint8

const (
	SampleLoop SampleFlag = 1 << iota
	Sample16Bit
	SampleSynth // waveform owned by a synthetic instrument
)

// InstrumentKind is resolved once at decode time.
type InstrumentKind int

const (
	InstrumentEmpty InstrumentKind = iota
	InstrumentSample
	InstrumentSynth
	InstrumentHybrid
)

func (k InstrumentKind) String() string {
	switch k {
	case InstrumentSample:
		return "sample"
	case InstrumentSynth:
		return "synth"
	case InstrumentHybrid:
		return "hybrid"
	}
	return "empty"
}

// Event is one cell of a track.
type Event struct {
	Note uint8 // 0 = none, otherwise a semitone index
	Ins  uint8 // 0 = none, otherwise a 1-based instrument index
	FxT  uint8
	FxP  uint8
}

// Normalize clears effects the canonical enumeration does not know.
func (e *Event) Normalize() {
	if e.FxT > FxMax {
		e.FxT, e.FxP = 0, 0
	}
}

// Track is a channel's event list. Formats with a track pool share one
// *Track between several pattern slots.
type Track struct {
	Events []Event
}

// NewTrack allocates an empty track of the given row count.
func NewTrack(rows int) *Track {
	return &Track{Events: make([]Event, rows)}
}

func (t *Track) Rows() int { return len(t.Events) }

// Pattern is a rows x channels grid. Tracks[c] is the track played on
// channel c.
type Pattern struct {
	Rows   int
	Tracks []*Track
}

// Event returns the event at (channel, row), or nil when out of range.
func (p *Pattern) Event(channel, row int) *Event {
	if channel < 0 || channel >= len(p.Tracks) || row < 0 || row >= p.Rows {
		return nil
	}
	t := p.Tracks[channel]
	if t == nil || row >= len(t.Events) {
		return nil
	}
	return &t.Events[row]
}

// Synth holds the control tables of synthetic and hybrid instruments.
type Synth struct {
	VolSpeed  int
	WaveSpeed int
	VolTable  []byte
	WaveTable []byte
}

// SubInstrument selects one Sample with its playback parameters.
type SubInstrument struct {
	Volume    int
	Pan       int
	Transpose int
	Finetune  int
	Sample    int // index into Module.Samples
}

type Instrument struct {
	Name  string
	Kind  InstrumentKind
	Subs  []SubInstrument
	Synth *Synth // nil for plain samples
	Hold  int
	Decay int
}

// Sample describes one PCM waveform. Data is filled by a PatchLoader.
type Sample struct {
	Name      string
	Length    int // in sample frames
	LoopStart int
	LoopEnd   int
	Flags     SampleFlag
	Data      *goaudio.IntBuffer
}

func (s *Sample) Looped() bool { return s.Flags&SampleLoop != 0 }
func (s *Sample) Is16Bit() bool { return s.Flags&Sample16Bit != 0 }

// ByteSize is the size of the stored PCM data.
func (s *Sample) ByteSize() int {
	if s.Is16Bit() {
		return s.Length * 2
	}
	return s.Length
}

type ChannelSetting struct {
	Volume int
	Pan    int
}

// Module is the canonical song every loader produces.
type Module struct {
	Name     string
	Type     string
	Channels int
	Length   int // play sequence length
	Restart  int
	Speed    int // ticks per row
	BPM      int
	C4Rate   int
	Quirks   Quirk

	Order           []int
	Patterns        []*Pattern
	Tracks          []*Track
	Instruments     []*Instrument
	Samples         []*Sample
	ChannelSettings []ChannelSetting

	released bool
}

// Release drops everything the module references. It is safe to call
// more than once and on a partially built module, including a nil one.
func (m *Module) Release() {
	if m == nil || m.released {
		return
	}
	for _, s := range m.Samples {
		if s != nil {
			s.Data = nil
		}
	}
	for _, p := range m.Patterns {
		if p != nil {
			p.Tracks = nil
		}
	}
	m.Order = nil
	m.Patterns = nil
	m.Tracks = nil
	m.Instruments = nil
	m.Samples = nil
	m.ChannelSettings = nil
	m.released = true
}

// Released reports whether Release was called.
func (m *Module) Released() bool { return m.released }

// Validate checks the model invariants every loader must uphold.
func (m *Module) Validate() error {
	if m.released {
		return errors.New("module released")
	}
	if m.Length != len(m.Order) {
		return errors.Wrapf(ErrInvalidCount, "song length %d, order has %d entries", m.Length, len(m.Order))
	}
	for i, o := range m.Order {
		if o < 0 || o >= len(m.Patterns) {
			return errors.Wrapf(ErrInvalidCount, "order %d references pattern %d of %d", i, o, len(m.Patterns))
		}
	}
	if len(m.ChannelSettings) != m.Channels {
		return errors.Wrapf(ErrInvalidCount, "%d channel settings for %d channels", len(m.ChannelSettings), m.Channels)
	}

	for i, p := range m.Patterns {
		if p == nil || p.Rows < 1 {
			return errors.Wrapf(ErrInvalidCount, "pattern %d has no rows", i)
		}
		if len(p.Tracks) > m.Channels {
			return errors.Wrapf(ErrInvalidCount, "pattern %d has %d channels, module has %d", i, len(p.Tracks), m.Channels)
		}
		for c, t := range p.Tracks {
			if t == nil || len(t.Events) < p.Rows {
				return errors.Wrapf(ErrOutOfBounds, "pattern %d channel %d track shorter than %d rows", i, c, p.Rows)
			}
		}
	}
	for i, t := range m.Tracks {
		if t == nil {
			return errors.Wrapf(ErrInvalidCount, "track %d missing", i)
		}
		for r := range t.Events {
			if t.Events[r].FxT > FxMax {
				return errors.Wrapf(ErrOutOfBounds, "track %d row %d effect 0x%02X", i, r, t.Events[r].FxT)
			}
		}
	}

	for i, ins := range m.Instruments {
		if ins == nil {
			return errors.Wrapf(ErrInvalidCount, "instrument %d missing", i)
		}
		for j, sub := range ins.Subs {
			if sub.Sample < 0 || sub.Sample >= len(m.Samples) {
				return errors.Wrapf(ErrOutOfBounds, "instrument %d sub %d references sample %d of %d", i, j, sub.Sample, len(m.Samples))
			}
		}
	}
	for i, s := range m.Samples {
		if s.Length < 0 || s.LoopStart < 0 || s.LoopStart > s.LoopEnd || s.LoopEnd > s.Length {
			return errors.Wrapf(ErrOutOfBounds, "sample %d loop %d-%d length %d", i, s.LoopStart, s.LoopEnd, s.Length)
		}
	}
	return nil
}
