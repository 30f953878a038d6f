// SPDX-License-Identifier: EPL-2.0

// Package wav exports decoded module samples as WAV files.
//
// Samples loaded through patch.Loader carry their PCM as a go-audio
// IntBuffer. WriteSample encodes that buffer with the go-audio WAV
// encoder:
//
//	f, _ := os.Create("sample01.wav")
//	defer f.Close()
//	err := wav.WriteSample(f, m.Samples[0])
//
// Output is always mono 16-bit PCM at the rate recorded on the buffer;
// 8-bit samples are scaled by 256.
//
// # Error Handling
//
//   - ErrNoSampleData: the sample was loaded without PCM (for example
//     with module.SkipPatches)
//   - ErrUnsupportedBitDepth: the buffer is neither 8 nor 16 bit
package wav
