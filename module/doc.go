// SPDX-License-Identifier: EPL-2.0

// Package module defines the canonical tracker module model and the
// loader framework that fills it.
//
// # Model
//
// A Module holds the play sequence (Order), Patterns, the Tracks they
// play, Instruments with their SubInstruments, Samples and per-channel
// defaults. Pattern.Tracks[c] is a pointer into Module.Tracks, so formats
// with a shared track pool expose the very same *Track from every
// pattern slot that references it.
//
// # Loaders
//
// Each format implements Loader:
//
//	type Loader interface {
//	    Name() string
//	    Description() string
//	    Test(r *binio.Reader, start int64) (title string, err error)
//	    Load(cfg Config, r *binio.Reader, start int64) (*Module, error)
//	}
//
// Test is cheap and side-effect free. Load builds the module all or
// nothing: a loader that fails releases whatever it built and returns a
// nil module.
//
// # Registry
//
// A Registry tries its loaders in order. For every candidate it seeks to
// the start offset, calls Test, and on the first match seeks back and
// calls Load:
//
//	reg := module.NewRegistry(mmd.Decoder{}, mtm.Decoder{})
//	m, err := reg.LoadFile(module.DefaultConfig(), "song.mtm")
//	if errors.Is(err, module.ErrLoad) {
//	    // unrecognized or invalid
//	}
//
// The registry is immutable after NewRegistry and can be shared by
// concurrent loads.
//
// # Errors
//
// Every error returned by Registry.Load is a *LoadError. errors.Is
// matches ErrLoad for all of them, and the wrapped sentinel
// (ErrUnrecognizedFormat, ErrShortRead, ErrOutOfBounds, ErrInvalidCount,
// ErrAllocation) tells them apart.
package module
