// SPDX-License-Identifier: EPL-2.0

// Package modload loads tracker music modules into one canonical model.
//
// Tracker formats store the same ideas (an order list, patterns of note
// events, instruments and samples) in incompatible binary layouts. This
// package detects the layout of a file and decodes it into a
// module.Module that a player can consume without knowing where it came
// from.
//
// # Supported Formats
//
//   - MMD0/MMD1 (MED 2.10, OctaMED) via formats/mmd
//   - MTM (MultiTracker) via formats/mtm
//
// # Quick Start
//
//	m, err := modload.LoadModule("song.med", modload.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Name, m.Type, m.Channels)
//
// # Detection
//
// DefaultRegistry tries each loader's Test in order at the start offset
// and runs Load for the first one that matches. Modules embedded in other
// files are loaded by passing their offset:
//
//	m, err := modload.Load(container, offset, modload.DefaultConfig())
//
// # Safety
//
// Module files are untrusted input. Every offset, count and length read
// from a file is checked against the stream size and against
// module.Limits before it is used, and a file that fails a check is
// rejected as a whole; no partially decoded module is ever returned.
//
// # Samples
//
// DefaultConfig loads sample PCM into go-audio IntBuffers through
// patch.Loader. formats/wav can write them out as WAV files.
package modload
