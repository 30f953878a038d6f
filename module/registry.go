// SPDX-License-Identifier: EPL-2.0

package module

import (
	"io"
	"os"

	"github.com/ik5/modload/binio"
	"github.com/pkg/errors"
)

// Registry is an ordered, immutable list of loaders. It is safe for
// concurrent use since nothing mutates it after NewRegistry.
type Registry struct {
	loaders []Loader
}

// NewRegistry builds a registry that tries loaders in the given order.
func NewRegistry(loaders ...Loader) *Registry {
	l := make([]Loader, 0, len(loaders))
	for _, ld := range loaders {
		if ld != nil {
			l = append(l, ld)
		}
	}
	return &Registry{loaders: l}
}

// Loaders returns a copy of the registered loaders, in order.
func (r *Registry) Loaders() []Loader {
	return append([]Loader(nil), r.loaders...)
}

// Get finds a loader by its short name.
func (r *Registry) Get(name string) (Loader, bool) {
	for _, l := range r.loaders {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// Probe runs each loader's Test at start and returns the first match with
// the title it extracted.
func (r *Registry) Probe(rs io.ReadSeeker, start int64) (Loader, string, error) {
	br, err := binio.NewReader(rs)
	if err != nil {
		return nil, "", errors.Wrap(err, "probe")
	}

	l, title := r.probe(br, start, nil)
	if l == nil {
		return nil, "", &LoadError{Err: ErrUnrecognizedFormat}
	}
	return l, title, nil
}

func (r *Registry) probe(br *binio.Reader, start int64, cfg *Config) (Loader, string) {
	for _, l := range r.loaders {
		br.Reset()
		if err := br.SeekTo(start); err != nil {
			return nil, ""
		}

		title, err := l.Test(br, start)
		if err != nil {
			if cfg != nil {
				cfg.Logger.Debug("loader rejected stream", "format", l.Name(), "err", err)
			}
			continue
		}
		return l, title
	}
	return nil, ""
}

// Load detects the format of rs at start and decodes it. Every failure
// is a *LoadError matching ErrLoad.
func (r *Registry) Load(cfg Config, rs io.ReadSeeker, start int64) (*Module, error) {
	cfg = cfg.Normalize()

	br, err := binio.NewReader(rs)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	l, title := r.probe(br, start, &cfg)
	if l == nil {
		return nil, &LoadError{Err: ErrUnrecognizedFormat}
	}

	br.Reset()
	if err := br.SeekTo(start); err != nil {
		return nil, &LoadError{Format: l.Name(), Err: err}
	}

	cfg.Logger.Debug("loading module", "format", l.Name(), "description", l.Description(), "title", title)

	m, err := l.Load(cfg, br, start)
	if err != nil {
		m.Release()
		return nil, &LoadError{Format: l.Name(), Err: err}
	}
	if err := m.Validate(); err != nil {
		m.Release()
		return nil, &LoadError{Format: l.Name(), Err: err}
	}

	return m, nil
}

// LoadFile opens path and loads the module stored at its beginning.
func (r *Registry) LoadFile(cfg Config, path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	m, err := r.Load(cfg, f, 0)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return m, nil
}
