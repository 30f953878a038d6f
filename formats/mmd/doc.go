// SPDX-License-Identifier: EPL-2.0

// Package mmd decodes MED 2.10 (MMD0) and OctaMED 4 (MMD1) modules.
//
// An MMD file is a graph of absolute offsets: the header points at the
// song block, the block (pattern) pointer table, the instrument pointer
// table and an optional expansion block. Every offset is relative to the
// start offset given to Load, so modules embedded in larger containers
// load the same way. Each offset and every count read from the file is
// checked against the stream before it is followed.
//
// # Basic Usage
//
//	f, _ := os.Open("song.med")
//	r, _ := binio.NewReader(f)
//	m, err := mmd.Decoder{}.Load(module.DefaultConfig(), r, 0)
//
// # Patterns
//
// Blocks are read in two passes. The first pass only reads each block's
// track count; the largest becomes the module's channel count. The second
// pass allocates every pattern with that many tracks and decodes events.
// MMD0 stores 3 bytes per event, MMD1 4 bytes. Non-zero notes are shifted
// up by 36 semitones (plus the song transpose in MMD1), and notes played
// by sampled instruments are folded into three octaves.
//
// # Instruments
//
// The instrument type code selects how the record is read:
//   - 0: a plain sample, one SubInstrument
//   - -1: synthetic, one looped Sample and SubInstrument per waveform;
//     a waveform count of 0xFFFF leaves the slot empty
//   - -2: hybrid, one sample plus synth volume/waveform tables
//
// Other codes leave the instrument empty.
//
// # Tempo
//
// The song flags select one of three tempo encodings: 8-channel mode maps
// the tempo through a table of mix-buffer speeds, BPM mode divides the
// stored tempo by the beat length, and otherwise the value is used as is.
// The same rule is applied to tempo commands in the patterns.
package mmd
