// SPDX-License-Identifier: EPL-2.0

// Package mtm decodes MultiTracker (MTM) modules.
//
// MTM has a fixed layout with no offset tables: header, instrument
// records, a 128 byte order list, a pool of 64-row tracks, per-pattern
// track index lists, a comment block and finally the unsigned sample
// data.
//
// # Basic Usage
//
//	f, _ := os.Open("song.mtm")
//	r, _ := binio.NewReader(f)
//	m, err := mtm.Decoder{}.Load(module.DefaultConfig(), r, 0)
//
// # Shared Tracks
//
// Patterns do not own events; each channel slot stores an index into the
// track pool. The decoded patterns keep that sharing: two slots with the
// same index hold the same *module.Track. Index 0 is the empty track,
// which the file does not store.
//
// # Events
//
// Each cell is 3 bytes: a 6-bit note (offset by 25 when non-zero), a 6-bit
// instrument split across two nibbles, a 4-bit Protracker command and its
// parameter. The extended command E8x is turned into a set-panning command
// with the parameter scaled to the 0-255 pan range.
package mtm
