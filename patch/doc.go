// SPDX-License-Identifier: EPL-2.0

// Package patch is the default sample payload loader.
//
// Loader reads the raw PCM of one sample from a binio.Reader and stores
// it on the Sample as a go-audio IntBuffer, converting unsigned and
// big-endian encodings to signed values on the way:
//
//	cfg := module.DefaultConfig()
//	cfg.Patches = patch.Loader{}
//	m, err := reg.Load(cfg, f, 0)
//	pcm := m.Samples[0].Data.Data // []int, signed
//
// The declared sample size is checked against MaxBytes and against the
// bytes left in the stream before any buffer is allocated.
package patch
