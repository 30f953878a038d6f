// SPDX-License-Identifier: EPL-2.0

package module

import (
	"github.com/ik5/modload/binio"
	"github.com/pkg/errors"
)

// Loader decodes one module format.
type Loader interface {
	// Name is a short format tag, e.g. "MTM".
	Name() string
	Description() string

	// Test checks the signature at start and returns a best-effort title.
	// It must not touch anything but the reader's cursor.
	Test(r *binio.Reader, start int64) (title string, err error)

	// Load decodes the whole module. On error no module is returned.
	Load(cfg Config, r *binio.Reader, start int64) (*Module, error)
}

// PatchFlag tells a PatchLoader how the stored PCM is encoded.
type PatchFlag uint8

const (
	// PatchUnsigned marks unsigned PCM; signed is the default.
	PatchUnsigned PatchFlag = 1 << iota
	// PatchBigEndian marks big-endian 16-bit PCM; little-endian is the default.
	PatchBigEndian
)

// PatchLoader ingests a sample's PCM from the reader's cursor. s.Length
// and s.Flags describe how many bytes to read.
type PatchLoader interface {
	LoadPatch(r *binio.Reader, id int, flags PatchFlag, s *Sample) error
}

// SkipPatches is a PatchLoader that only advances past the PCM bytes.
type SkipPatches struct{}

func (SkipPatches) LoadPatch(r *binio.Reader, id int, _ PatchFlag, s *Sample) error {
	if err := r.Skip(int64(s.ByteSize())); err != nil {
		return errors.Wrapf(err, "sample %d", id)
	}
	return nil
}
