// SPDX-License-Identifier: EPL-2.0

package mmd

import (
	"github.com/ik5/modload/binio"
	"github.com/ik5/modload/module"
	"github.com/ik5/modload/utils"
	"github.com/pkg/errors"
)

const (
	expansionSize  = 52
	instrNameSize  = 40
	instrExtFields = 4
)

type expansion struct {
	present        bool
	smpOffset      uint32
	sEntries       int
	sEntrySize     int
	iinfoOffset    uint32
	iEntries       int
	iEntrySize     int
	songNameOffset uint32
	songNameLen    uint32
}

// instrExt is the per-instrument extension record.
type instrExt struct {
	name     string
	hold     uint8
	decay    uint8
	finetune uint8
}

func (st *loadState) readExpansion(m *module.Module) error {
	off := st.hdr.expDataOffset
	if off == 0 {
		return nil
	}

	r := st.r
	if err := r.SeekFrom(st.start, off); err != nil {
		return errors.Wrap(err, "expansion block")
	}
	if err := r.Require(expansionSize); err != nil {
		return errors.Wrap(err, "expansion block")
	}

	x := &st.exp
	x.present = true
	r.Skip(4) // next module
	x.smpOffset = r.Read32B()
	x.sEntries = int(r.Read16B())
	x.sEntrySize = int(r.Read16B())
	r.Skip(8) // annotation text
	x.iinfoOffset = r.Read32B()
	x.iEntries = int(r.Read16B())
	x.iEntrySize = int(r.Read16B())
	r.Skip(16) // jump mask, colours, channel split, notation info
	x.songNameOffset = r.Read32B()
	x.songNameLen = r.Read32B()

	if err := r.Err(); err != nil {
		return errors.Wrap(err, "expansion block")
	}

	st.log.Debug("expansion", "expsmp_offset", x.smpOffset, "iinfo_offset", x.iinfoOffset,
		"songname_offset", x.songNameOffset, "songname_len", x.songNameLen)

	if x.songNameLen > 0 {
		n := int(min(x.songNameLen, binio.NameSize))
		if err := r.SeekFrom(st.start, x.songNameOffset); err != nil {
			return errors.Wrap(err, "song name")
		}
		if err := r.Require(int64(n)); err != nil {
			return errors.Wrap(err, "song name")
		}
		m.Name = utils.DecodeName(r.ReadTitle(n), utils.Amiga)
	}
	return nil
}

// instrumentExt reads the name and extension fields of instrument i.
// Missing entries yield the zero value.
func (st *loadState) instrumentExt(i int) (instrExt, error) {
	var ext instrExt
	x := &st.exp
	if !x.present {
		return ext, nil
	}
	r := st.r

	if i < x.iEntries && x.iEntrySize > 0 {
		pos := st.start + int64(x.iinfoOffset) + int64(i)*int64(x.iEntrySize)
		if err := r.SeekTo(pos); err != nil {
			return ext, errors.Wrapf(err, "instrument %d info", i)
		}
		raw := r.ReadBytes(min(instrNameSize, x.iEntrySize))
		if err := r.Err(); err != nil {
			return ext, errors.Wrapf(err, "instrument %d info", i)
		}
		ext.name = utils.DecodeName(raw, utils.Amiga)
	}

	if i < x.sEntries && x.sEntrySize > 0 {
		pos := st.start + int64(x.smpOffset) + int64(i)*int64(x.sEntrySize)
		if err := r.SeekTo(pos); err != nil {
			return ext, errors.Wrapf(err, "instrument %d extension", i)
		}
		var fields [instrExtFields]byte
		if err := r.ReadFull(fields[:min(instrExtFields, x.sEntrySize)]); err != nil {
			return ext, errors.Wrapf(err, "instrument %d extension", i)
		}
		ext.hold = fields[0]
		ext.decay = fields[1]
		// fields[2] suppresses MIDI note off
		ext.finetune = fields[3]
	}

	return ext, nil
}
