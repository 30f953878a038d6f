// SPDX-License-Identifier: EPL-2.0

package module

import (
	"errors"
	"log/slog"
	"testing"
)

func TestModule_Release(t *testing.T) {
	t.Parallel()

	m := validModule()
	m.Release()
	m.Release()

	if !m.Released() {
		t.Error("Released() = false after Release")
	}
	if m.Patterns != nil || m.Samples != nil || m.Tracks != nil {
		t.Error("Release() kept references")
	}
	if err := m.Validate(); err == nil {
		t.Error("Validate() on released module succeeded")
	}

	var nilModule *Module
	nilModule.Release()
}

func TestModule_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(m *Module)
		want   error
	}{
		{"valid", func(*Module) {}, nil},
		{"length mismatch", func(m *Module) { m.Length = 3 }, ErrInvalidCount},
		{"order past patterns", func(m *Module) { m.Order[0] = 1 }, ErrInvalidCount},
		{"missing channel settings", func(m *Module) { m.ChannelSettings = nil }, ErrInvalidCount},
		{"zero rows", func(m *Module) { m.Patterns[0].Rows = 0 }, ErrInvalidCount},
		{"short track", func(m *Module) { m.Patterns[0].Rows = 5 }, ErrOutOfBounds},
		{"nil track", func(m *Module) { m.Tracks = append(m.Tracks, nil) }, ErrInvalidCount},
		{"bad effect", func(m *Module) { m.Tracks[0].Events[1].FxT = FxMax + 1 }, ErrOutOfBounds},
		{"sample index", func(m *Module) { m.Instruments[0].Subs[0].Sample = 1 }, ErrOutOfBounds},
		{"loop past end", func(m *Module) { m.Samples[0].LoopEnd = 9 }, ErrOutOfBounds},
		{"loop reversed", func(m *Module) { m.Samples[0].LoopStart = 7 }, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := validModule()
			tt.mutate(m)

			err := m.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPattern_Event(t *testing.T) {
	t.Parallel()

	shared := NewTrack(4)
	p := &Pattern{Rows: 4, Tracks: []*Track{shared, shared}}

	p.Event(0, 2).Note = 49
	if got := p.Event(1, 2).Note; got != 49 {
		t.Errorf("shared track note = %d, want 49", got)
	}
	if p.Event(2, 0) != nil || p.Event(0, 4) != nil || p.Event(-1, 0) != nil {
		t.Error("Event() out of range returned a cell")
	}
}

func TestEvent_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want Event
	}{
		{Event{FxT: FxSpeed, FxP: 6}, Event{FxT: FxSpeed, FxP: 6}},
		{Event{FxT: FxMax, FxP: 1}, Event{FxT: FxMax, FxP: 1}},
		{Event{Note: 30, FxT: FxMax + 1, FxP: 9}, Event{Note: 30}},
	}

	for _, tt := range tests {
		got := tt.in
		got.Normalize()
		if got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSample_ByteSize(t *testing.T) {
	t.Parallel()

	s := &Sample{Length: 100}
	if s.ByteSize() != 100 {
		t.Errorf("8-bit ByteSize() = %d, want 100", s.ByteSize())
	}
	s.Flags |= Sample16Bit
	if s.ByteSize() != 200 {
		t.Errorf("16-bit ByteSize() = %d, want 200", s.ByteSize())
	}
}

func TestInstrumentKind_String(t *testing.T) {
	t.Parallel()

	want := map[InstrumentKind]string{
		InstrumentEmpty:  "empty",
		InstrumentSample: "sample",
		InstrumentSynth:  "synth",
		InstrumentHybrid: "hybrid",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}

func TestExtended(t *testing.T) {
	t.Parallel()

	if got := Extended(ExCut, 0x13); got != 0xC3 {
		t.Errorf("Extended(ExCut, 0x13) = 0x%02X, want 0xC3", got)
	}
}

func TestConfig_Normalize(t *testing.T) {
	t.Parallel()

	cfg := Config{Limits: Limits{MaxChannels: 8}}.Normalize()

	if cfg.Patches == nil || cfg.Logger == nil {
		t.Fatal("Normalize() left nil Patches or Logger")
	}
	def := DefaultLimits()
	if cfg.Limits.MaxChannels != 8 {
		t.Errorf("MaxChannels = %d, want 8", cfg.Limits.MaxChannels)
	}
	if cfg.Limits.MaxRows != def.MaxRows || cfg.Limits.MaxSampleBytes != def.MaxSampleBytes ||
		cfg.Limits.MaxEvents != def.MaxEvents {
		t.Errorf("Limits = %+v, want defaults besides MaxChannels", cfg.Limits)
	}

	logger := slog.New(slog.DiscardHandler)
	if got := (Config{Logger: logger}).Normalize().Logger; got != logger {
		t.Error("Normalize() replaced a caller logger")
	}
}
