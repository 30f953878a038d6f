// SPDX-License-Identifier: EPL-2.0

package modload

import (
	"io"

	"github.com/ik5/modload/formats/mmd"
	"github.com/ik5/modload/formats/mtm"
	"github.com/ik5/modload/module"
	"github.com/ik5/modload/patch"
)

var defaultRegistry = module.NewRegistry(
	mmd.Decoder{},
	mtm.Decoder{},
)

// DefaultRegistry returns the registry of built-in loaders. The same
// immutable registry is shared by every caller.
func DefaultRegistry() *module.Registry {
	return defaultRegistry
}

// DefaultConfig is module.DefaultConfig with sample PCM loaded into
// go-audio buffers.
func DefaultConfig() module.Config {
	cfg := module.DefaultConfig()
	cfg.Patches = patch.Loader{MaxBytes: cfg.Limits.MaxSampleBytes}
	return cfg
}

// LoadModule loads the module file at path with the built-in loaders.
//
// Example:
//
//	m, err := modload.LoadModule("song.mtm", modload.DefaultConfig())
//	if errors.Is(err, module.ErrLoad) {
//	    // not a module, or a broken one
//	}
func LoadModule(path string, cfg module.Config) (*module.Module, error) {
	return defaultRegistry.LoadFile(cfg, path)
}

// Load loads a module stored at offset start of rs.
func Load(rs io.ReadSeeker, start int64, cfg module.Config) (*module.Module, error) {
	return defaultRegistry.Load(cfg, rs, start)
}
