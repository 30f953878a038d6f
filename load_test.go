// SPDX-License-Identifier: EPL-2.0

package modload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/modload/internal/modtest"
	"github.com/ik5/modload/module"
)

func mtmSong() []byte {
	var tr modtest.MTMTrack
	tr[3] = modtest.MTMEvent(10, 1, 0x0F, 0x04)
	return (&modtest.MTM{
		Name:        "MTM Song",
		Rows:        32,
		Channels:    2,
		Instruments: []modtest.MTMInstrument{{Name: "s", Data: []byte{0x80, 0xFF}}},
		Order:       []uint8{0, 0},
		Tracks:      []modtest.MTMTrack{tr},
		Patterns:    [][32]uint16{{1, 1}},
	}).Bytes()
}

func mmdSong() []byte {
	return (&modtest.MMD{
		Version: 1,
		Blocks: []*modtest.MMDBlock{
			{Tracks: 4, Rows: 1, Events: bytes.Join([][]byte{
				modtest.MMD1Event(1, 1, 0, 0), make([]byte, 12),
			}, nil)},
		},
		Instruments: []*modtest.MMDInstrument{{Data: []byte{0x7F, 0x80, 0x00, 0x01}}},
		PlaySeq:     []uint8{0},
		DefTempo:    125,
		Tempo2:      6,
		Title:       "MMD Song",
	}).Bytes()
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	var names []string
	for _, l := range DefaultRegistry().Loaders() {
		names = append(names, l.Name())
	}
	if len(names) != 2 || names[0] != "MMD0/1" || names[1] != "MTM" {
		t.Errorf("loaders = %v, want [MMD0/1 MTM]", names)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		wantName string
		wantType string
		wantPCM  []int
	}{
		{"mtm", mtmSong(), "MTM Song", "MTM (MultiTracker 1.00)", []int{0, 127}},
		{"mmd", mmdSong(), "MMD Song", "MMD1 (OctaMED 4.00)", []int{127, -128, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// the module sits behind a container header
			data := append(bytes.Repeat([]byte{0xEE}, 100), tt.data...)

			m, err := Load(bytes.NewReader(data), 100, DefaultConfig())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			defer m.Release()

			if m.Name != tt.wantName || m.Type != tt.wantType {
				t.Errorf("Name/Type = %q/%q, want %q/%q", m.Name, m.Type, tt.wantName, tt.wantType)
			}
			got := m.Samples[0].Data.Data
			if len(got) != len(tt.wantPCM) {
				t.Fatalf("PCM = %v, want %v", got, tt.wantPCM)
			}
			for i := range got {
				if got[i] != tt.wantPCM[i] {
					t.Errorf("PCM = %v, want %v", got, tt.wantPCM)
					break
				}
			}
		})
	}
}

func TestLoad_Unrecognized(t *testing.T) {
	t.Parallel()

	// a valid module at the wrong offset is not found
	_, err := Load(bytes.NewReader(mtmSong()), 1, DefaultConfig())
	if !errors.Is(err, module.ErrLoad) || !errors.Is(err, module.ErrUnrecognizedFormat) {
		t.Errorf("Load() error = %v, want unrecognized ErrLoad", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	data := mmdSong()
	data = data[:len(data)-20]

	m, err := Load(bytes.NewReader(data), 0, DefaultConfig())
	if m != nil {
		t.Error("Load() returned a module for a truncated file")
	}
	if !errors.Is(err, module.ErrLoad) {
		t.Fatalf("Load() error = %v, want ErrLoad", err)
	}
	if errors.Is(err, module.ErrUnrecognizedFormat) {
		t.Error("truncated MMD reported as unrecognized")
	}

	var le *module.LoadError
	if !errors.As(err, &le) || le.Format != "MMD0/1" {
		t.Errorf("LoadError = %+v, want format MMD0/1", le)
	}
}

func TestLoadModule(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "song.mtm")
	if err := os.WriteFile(path, mtmSong(), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadModule(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadModule() error = %v", err)
	}
	if m.Length != 2 || m.Patterns[0].Rows != 32 {
		t.Errorf("Length=%d rows=%d, want 2, 32", m.Length, m.Patterns[0].Rows)
	}
	if got := *m.Patterns[0].Event(1, 3); got != (module.Event{Note: 35, Ins: 1, FxT: module.FxSpeed, FxP: 4}) {
		t.Errorf("event(1,3) = %+v", got)
	}
}
