// SPDX-License-Identifier: EPL-2.0

package mmd

import (
	"github.com/ik5/modload/module"
	"github.com/pkg/errors"
)

// blockHeader is the part of a block needed to size it.
type blockHeader struct {
	tracks    int
	rows      int
	eventSize int
}

// dataSize is the number of event bytes that follow the header.
func (b blockHeader) dataSize() int64 {
	return int64(b.tracks) * int64(b.rows) * int64(b.eventSize)
}

// blockOffset reads entry i of the block pointer table.
func (st *loadState) blockOffset(i int) (uint32, error) {
	r := st.r
	if err := r.SeekTo(st.start + int64(st.hdr.blockArrOffset) + int64(i)*4); err != nil {
		return 0, errors.Wrapf(err, "block %d pointer", i)
	}
	off := r.Read32B()
	if err := r.Err(); err != nil {
		return 0, errors.Wrapf(err, "block %d pointer", i)
	}
	return off, nil
}

// readBlockHeader seeks to the block at off and reads its header,
// leaving the cursor on the first event. The declared size is checked
// against the stream before it is returned.
func (st *loadState) readBlockHeader(i int, off uint32) (blockHeader, error) {
	r := st.r
	if err := r.SeekFrom(st.start, off); err != nil {
		return blockHeader{}, errors.Wrapf(err, "block %d", i)
	}

	var b blockHeader
	if st.hdr.version > 0 {
		b.tracks = int(r.Read16B())
		b.rows = int(r.Read16B()) + 1
		r.Skip(4) // block info pointer
		b.eventSize = 4
	} else {
		b.tracks = int(r.Read8())
		b.rows = int(r.Read8()) + 1
		b.eventSize = 3
	}
	if err := r.Err(); err != nil {
		return blockHeader{}, errors.Wrapf(err, "block %d", i)
	}

	lim := st.cfg.Limits
	if b.tracks > lim.MaxChannels {
		return blockHeader{}, errors.Wrapf(ErrBadBlock, "block %d: %d tracks exceeds %d", i, b.tracks, lim.MaxChannels)
	}
	if b.rows > lim.MaxRows {
		return blockHeader{}, errors.Wrapf(ErrBadBlock, "block %d: %d lines exceeds %d", i, b.rows, lim.MaxRows)
	}
	if err := r.Require(b.dataSize()); err != nil {
		return blockHeader{}, errors.Wrapf(ErrBadBlock, "block %d: %d tracks x %d lines: %v", i, b.tracks, b.rows, err)
	}
	return b, nil
}

func (st *loadState) requireBlockTable() error {
	r := st.r
	if err := r.SeekFrom(st.start, st.hdr.blockArrOffset); err != nil {
		return errors.Wrap(err, "block table")
	}
	if err := r.Require(int64(st.song.numBlocks) * 4); err != nil {
		return errors.Wrapf(module.ErrInvalidCount, "block table of %d entries: %v", st.song.numBlocks, err)
	}
	return nil
}

// scanChannels is the first pass: the module channel count is the
// largest track count of any block, and the padded event total is
// checked against the limit.
func (st *loadState) scanChannels(m *module.Module) error {
	if err := st.requireBlockTable(); err != nil {
		return err
	}

	m.Channels = 0
	rows := int64(0)
	for i := range st.song.numBlocks {
		off, err := st.blockOffset(i)
		if err != nil {
			return err
		}
		if off == 0 {
			rows++
			continue
		}
		b, err := st.readBlockHeader(i, off)
		if err != nil {
			return err
		}
		st.log.Debug("block", "index", i, "offset", off, "tracks", b.tracks, "lines", b.rows)
		m.Channels = max(m.Channels, b.tracks)
		rows += int64(b.rows)
	}

	// Blocks are padded to the module channel count and table entries
	// may share one block.
	events := rows * int64(m.Channels)
	if limit := int64(st.cfg.Limits.MaxEvents); events > limit {
		return errors.Wrapf(module.ErrInvalidCount, "%d blocks: %d lines x %d channels exceeds %d events",
			st.song.numBlocks, rows, m.Channels, limit)
	}
	return nil
}

// readBlocks is the second pass: patterns and tracks are allocated from
// the channel count found by scanChannels, then events are decoded.
func (st *loadState) readBlocks(m *module.Module) error {
	numBlocks := st.song.numBlocks
	chn := m.Channels

	m.Patterns = make([]*module.Pattern, numBlocks)
	m.Tracks = make([]*module.Track, numBlocks*chn)

	for i := range numBlocks {
		off, err := st.blockOffset(i)
		if err != nil {
			return err
		}

		b := blockHeader{rows: 1}
		if off != 0 {
			if b, err = st.readBlockHeader(i, off); err != nil {
				return err
			}
			if b.tracks > chn {
				return errors.Wrapf(ErrBadBlock, "block %d: %d tracks changed since first pass", i, b.tracks)
			}
		}

		p := &module.Pattern{Rows: b.rows, Tracks: make([]*module.Track, chn)}
		for k := range chn {
			t := module.NewTrack(b.rows)
			p.Tracks[k] = t
			m.Tracks[i*chn+k] = t
		}
		m.Patterns[i] = p

		if off == 0 || b.tracks == 0 {
			continue
		}

		data := st.r.ReadBytes(int(b.dataSize()))
		if err := st.r.Err(); err != nil {
			return errors.Wrapf(err, "block %d events", i)
		}
		st.decodeEvents(p, b, data)
	}
	return nil
}

// decodeEvents fills p from the raw row-major event data of a block.
func (st *loadState) decodeEvents(p *module.Pattern, b blockHeader, data []byte) {
	hexVol := st.song.flags&flagVolHex != 0
	pos := 0
	for row := range b.rows {
		for k := range b.tracks {
			e := p.Event(k, row)
			if b.eventSize == 4 {
				*e = decodeMMD1(data[pos], data[pos+1], data[pos+2], data[pos+3], st.song.playTransp)
			} else {
				*e = decodeMMD0(data[pos], data[pos+1], data[pos+2])
			}
			translateEffect(e, st.tempo, hexVol)
			e.Normalize()
			pos += b.eventSize
		}
	}
}

// decodeMMD0 unpacks a 3-byte cell: 6-bit note, instrument bits 4 and 5
// in the top of byte 0, instrument bits 0-3 and the command in byte 1.
func decodeMMD0(b0, b1, b2 uint8) module.Event {
	e := module.Event{
		Note: b0 & 0x3F,
		Ins:  b1>>4 | (b0&0x80)>>3 | (b0&0x40)>>1,
		FxT:  b1 & 0x0F,
		FxP:  b2,
	}
	if e.Note != 0 {
		e.Note += noteBase
	}
	return e
}

// decodeMMD1 unpacks a 4-byte cell. Notes are shifted by the song
// transpose; the result wraps like the byte-sized note field it fills.
func decodeMMD1(b0, b1, b2, b3 uint8, transpose int8) module.Event {
	e := module.Event{
		Note: b0 & 0x7F,
		Ins:  b1 & 0x3F,
		FxT:  b2,
		FxP:  b3,
	}
	if e.Note != 0 {
		e.Note = uint8(int(e.Note) + noteBase + int(transpose))
	}
	return e
}

// clampNotes folds notes of sampled instruments into the three octaves
// above the note base. Instruments with synth tables keep their range.
func clampNotes(m *module.Module) {
	for _, p := range m.Patterns {
		for _, t := range p.Tracks {
			for j := range t.Events {
				e := &t.Events[j]
				if e.Note == 0 || e.Ins == 0 {
					continue
				}
				if idx := int(e.Ins) - 1; idx < len(m.Instruments) && m.Instruments[idx].Synth != nil {
					continue
				}
				for e.Note > noteClampTop {
					e.Note -= 12
				}
			}
		}
	}
}
