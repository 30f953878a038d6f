// SPDX-License-Identifier: EPL-2.0

package modtest

import (
	"encoding/binary"
)

// Offsets of MMD header and song fields.
const (
	MMDHeaderSize    = 52
	MMDSongSize      = 788
	MMDOffSong       = 8
	MMDOffBlockArr   = 16
	MMDOffSmplArr    = 24
	MMDOffExpData    = 32
	MMDOffNumBlocks  = MMDHeaderSize + 63*8
	MMDOffSongLen    = MMDOffNumBlocks + 2
	MMDOffNumSamples = MMDHeaderSize + MMDSongSize - 1
)

// MMDSampleParams is one entry of the song's per-instrument table.
type MMDSampleParams struct {
	Rep       uint16
	Replen    uint16
	Volume    uint8
	Transpose int8
}

// MMDBlock is one block. A nil *MMDBlock is stored as a zero pointer.
// Events holds the raw row-major cells.
type MMDBlock struct {
	Tracks int
	Rows   int
	Events []byte
}

// MMDInstrument is one instrument. A nil *MMDInstrument is stored as a
// zero pointer.
type MMDInstrument struct {
	Type int16
	// Length overrides the stored length of a sampled instrument.
	Length uint32
	Data   []byte

	VolTable  []byte
	WaveTable []byte
	VolSpeed  uint8
	WaveSpeed uint8
	// Waveforms are the synth waveforms, or the hybrid sample in
	// Waveforms[0].
	Waveforms [][]byte
	// WaveformCount overrides the stored waveform count when non-zero.
	WaveformCount uint16
}

// MMDExt is one instrument extension record.
type MMDExt struct {
	Name     string
	Hold     uint8
	Decay    uint8
	Finetune uint8
}

// MMD describes an MMD0 or MMD1 image.
type MMD struct {
	Version     int
	Blocks      []*MMDBlock
	Instruments []*MMDInstrument
	Params      []MMDSampleParams
	PlaySeq     []uint8
	DefTempo    uint16
	Transpose   int8
	Flags       uint8
	Flags2      uint8
	Tempo2      uint8
	TrackVol    [16]uint8

	// Expansion data is written when Title or Ext is set.
	Title string
	Ext   []MMDExt
}

// MMD0Event packs one 3-byte cell.
func MMD0Event(note, ins, fxt, fxp uint8) []byte {
	return []byte{
		note&0x3F | (ins&0x10)<<3 | (ins&0x20)<<1,
		(ins&0x0F)<<4 | fxt&0x0F,
		fxp,
	}
}

// MMD1Event packs one 4-byte cell.
func MMD1Event(note, ins, fxt, fxp uint8) []byte {
	return []byte{note & 0x7F, ins & 0x3F, fxt, fxp}
}

type image struct {
	b []byte
}

func (im *image) pos() uint32 { return uint32(len(im.b)) }

func (im *image) u8(v uint8) { im.b = append(im.b, v) }

func (im *image) u16(v uint16) { im.b = binary.BigEndian.AppendUint16(im.b, v) }

func (im *image) u32(v uint32) { im.b = binary.BigEndian.AppendUint32(im.b, v) }

func (im *image) raw(v []byte) { im.b = append(im.b, v...) }

func (im *image) zero(n int) { im.b = append(im.b, make([]byte, n)...) }

func (im *image) put32(at, v uint32) { binary.BigEndian.PutUint32(im.b[at:], v) }

func (m *MMD) Bytes() []byte {
	im := &image{}

	im.raw([]byte{'M', 'M', 'D', '0' + byte(m.Version)})
	im.zero(MMDHeaderSize - 4)

	// song
	im.put32(MMDOffSong, im.pos())
	for i := range 63 {
		var p MMDSampleParams
		if i < len(m.Params) {
			p = m.Params[i]
		}
		im.u16(p.Rep)
		im.u16(p.Replen)
		im.u8(0)
		im.u8(0)
		im.u8(p.Volume)
		im.u8(uint8(p.Transpose))
	}
	im.u16(uint16(len(m.Blocks)))
	im.u16(uint16(len(m.PlaySeq)))
	var seq [256]byte
	copy(seq[:], m.PlaySeq)
	im.raw(seq[:])
	im.u16(m.DefTempo)
	im.u8(uint8(m.Transpose))
	im.u8(m.Flags)
	im.u8(m.Flags2)
	im.u8(m.Tempo2)
	im.raw(m.TrackVol[:])
	im.u8(64)
	im.u8(uint8(len(m.Instruments)))

	// blocks
	table := im.pos()
	im.put32(MMDOffBlockArr, table)
	im.zero(4 * len(m.Blocks))
	for i, b := range m.Blocks {
		if b == nil {
			continue
		}
		im.put32(table+uint32(4*i), im.pos())
		if m.Version > 0 {
			im.u16(uint16(b.Tracks))
			im.u16(uint16(b.Rows - 1))
			im.u32(0)
		} else {
			im.u8(uint8(b.Tracks))
			im.u8(uint8(b.Rows - 1))
		}
		im.raw(b.Events)
	}

	// instruments
	table = im.pos()
	im.put32(MMDOffSmplArr, table)
	im.zero(4 * len(m.Instruments))
	for i, ins := range m.Instruments {
		if ins == nil {
			continue
		}
		im.put32(table+uint32(4*i), im.pos())
		im.instrument(ins)
	}

	if m.Title != "" || len(m.Ext) > 0 {
		m.expansion(im)
	}
	return im.b
}

func (im *image) instrument(ins *MMDInstrument) {
	base := im.pos()
	if ins.Type == 0 {
		length := ins.Length
		if length == 0 {
			length = uint32(len(ins.Data))
		}
		im.u32(length)
		im.u16(0)
		im.raw(ins.Data)
		return
	}

	im.u32(0)
	im.u16(uint16(ins.Type))
	im.u8(0) // decay
	im.zero(3)
	im.u16(0)
	im.u16(0)
	im.u16(uint16(len(ins.VolTable)))
	im.u16(uint16(len(ins.WaveTable)))
	im.u8(ins.VolSpeed)
	im.u8(ins.WaveSpeed)
	count := ins.WaveformCount
	if count == 0 {
		count = uint16(len(ins.Waveforms))
	}
	im.u16(count)
	var tbl [128]byte
	copy(tbl[:], ins.VolTable)
	im.raw(tbl[:])
	tbl = [128]byte{}
	copy(tbl[:], ins.WaveTable)
	im.raw(tbl[:])

	ptrs := im.pos()
	im.zero(64 * 4)
	for j, wf := range ins.Waveforms {
		im.put32(ptrs+uint32(4*j), im.pos()-base)
		if ins.Type == -2 {
			im.u32(uint32(len(wf)))
			im.u16(0)
		} else {
			im.u16(uint16(len(wf) / 2))
		}
		im.raw(wf)
	}
}

func (m *MMD) expansion(im *image) {
	exp := im.pos()
	im.put32(MMDOffExpData, exp)
	im.zero(52)

	smp := im.pos()
	for _, x := range m.Ext {
		im.u8(x.Hold)
		im.u8(x.Decay)
		im.u8(0)
		im.u8(x.Finetune)
	}

	iinfo := im.pos()
	for _, x := range m.Ext {
		im.raw(fixed(x.Name, 42))
	}

	name := im.pos()
	im.raw([]byte(m.Title))
	im.u8(0)

	put16 := func(at uint32, v uint16) { binary.BigEndian.PutUint16(im.b[at:], v) }
	im.put32(exp+4, smp)
	put16(exp+8, uint16(len(m.Ext)))
	put16(exp+10, 4)
	im.put32(exp+20, iinfo)
	put16(exp+24, uint16(len(m.Ext)))
	put16(exp+26, 42)
	im.put32(exp+44, name)
	im.put32(exp+48, uint32(len(m.Title)+1))
}
