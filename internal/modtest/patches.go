// SPDX-License-Identifier: EPL-2.0

package modtest

import (
	"sync"

	"github.com/ik5/modload/binio"
	"github.com/ik5/modload/module"
)

// PatchCall records one LoadPatch invocation.
type PatchCall struct {
	ID     int
	Flags  module.PatchFlag
	Length int
	Pos    int64
	Bytes  []byte
}

// RecordingPatches is a PatchLoader that reads and keeps the raw bytes.
type RecordingPatches struct {
	mtx   sync.Mutex
	Calls []PatchCall
}

func (p *RecordingPatches) LoadPatch(r *binio.Reader, id int, flags module.PatchFlag, s *module.Sample) error {
	pos := r.Pos()
	raw := r.ReadBytes(s.ByteSize())
	if err := r.Err(); err != nil {
		return err
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.Calls = append(p.Calls, PatchCall{ID: id, Flags: flags, Length: s.Length, Pos: pos, Bytes: raw})
	return nil
}

// FailingPatches fails every LoadPatch with Err.
type FailingPatches struct {
	Err error
}

func (p FailingPatches) LoadPatch(*binio.Reader, int, module.PatchFlag, *module.Sample) error {
	return p.Err
}
