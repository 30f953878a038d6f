// SPDX-License-Identifier: EPL-2.0

package module

import "log/slog"

// Limits bounds every file-declared count before it is used. Loaders use
// the tighter of a limit and the width of the field being read.
type Limits struct {
	MaxChannels    int
	MaxRows        int
	MaxPatterns    int
	MaxWaveforms   int
	MaxSampleBytes int
	// MaxEvents caps the pattern cells of one module, summed over every
	// pattern after padding to the module channel count.
	MaxEvents int
}

// DefaultLimits returns conservative maxima for the supported formats.
func DefaultLimits() Limits {
	return Limits{
		MaxChannels:    64,
		MaxRows:        3200,
		MaxPatterns:    0xFFFF,
		MaxWaveforms:   64,
		MaxSampleBytes: 16 << 20,
		MaxEvents:      1 << 22,
	}
}

// Config is the per-load context handed to a Loader.
type Config struct {
	// Patches ingests sample PCM. Nil skips the PCM bytes.
	Patches PatchLoader
	// Logger receives Debug diagnostics. Nil discards them.
	Logger *slog.Logger
	Limits Limits
}

// DefaultConfig returns a Config that skips sample PCM and logs nothing.
func DefaultConfig() Config {
	return Config{
		Patches: SkipPatches{},
		Logger:  slog.New(slog.DiscardHandler),
		Limits:  DefaultLimits(),
	}
}

// Normalize fills zero fields from DefaultConfig.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Patches == nil {
		c.Patches = def.Patches
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	if c.Limits.MaxChannels <= 0 {
		c.Limits.MaxChannels = def.Limits.MaxChannels
	}
	if c.Limits.MaxRows <= 0 {
		c.Limits.MaxRows = def.Limits.MaxRows
	}
	if c.Limits.MaxPatterns <= 0 {
		c.Limits.MaxPatterns = def.Limits.MaxPatterns
	}
	if c.Limits.MaxWaveforms <= 0 {
		c.Limits.MaxWaveforms = def.Limits.MaxWaveforms
	}
	if c.Limits.MaxSampleBytes <= 0 {
		c.Limits.MaxSampleBytes = def.Limits.MaxSampleBytes
	}
	if c.Limits.MaxEvents <= 0 {
		c.Limits.MaxEvents = def.Limits.MaxEvents
	}
	return c
}
