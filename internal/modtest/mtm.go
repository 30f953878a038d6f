// SPDX-License-Identifier: EPL-2.0

package modtest

import (
	"bytes"
	"encoding/binary"
)

// Offsets of MTM header fields.
const (
	MTMOffTracks   = 24
	MTMOffPatterns = 26
	MTMOffModlen   = 27
	MTMOffExtraLen = 28
	MTMOffSamples  = 30
	MTMOffRows     = 32
	MTMOffChannels = 33
	MTMHeaderSize  = 66
	MTMInstrSize   = 37
)

type MTMInstrument struct {
	Name      string
	Length    uint32
	LoopStart uint32
	LoopEnd   uint32
	Finetune  uint8
	Volume    uint8
	Attr      uint8
	Data      []byte
}

// MTMTrack is one stored track: 64 rows of 3 bytes.
type MTMTrack [64][3]byte

// MTM describes an MTM image. Tracks holds the stored tracks, which the
// file numbers from 1.
type MTM struct {
	Version     uint8
	Name        string
	Rows        uint8
	Channels    uint8
	Pan         [32]uint8
	Instruments []MTMInstrument
	Order       []uint8
	Tracks      []MTMTrack
	Patterns    [][32]uint16
	Comment     []byte
}

// MTMEvent packs one cell.
func MTMEvent(note, ins, fxt, fxp uint8) [3]byte {
	return [3]byte{
		note<<2 | (ins>>4)&0x03,
		(ins&0x0F)<<4 | fxt&0x0F,
		fxp,
	}
}

func (m *MTM) Bytes() []byte {
	var buf bytes.Buffer
	w := func(v any) { binary.Write(&buf, binary.LittleEndian, v) }

	version := m.Version
	if version == 0 {
		version = 0x10
	}
	buf.WriteString("MTM")
	buf.WriteByte(version)
	buf.Write(fixed(m.Name, 20))
	w(uint16(len(m.Tracks)))
	buf.WriteByte(uint8(len(m.Patterns) - 1))
	buf.WriteByte(uint8(len(m.Order) - 1))
	w(uint16(len(m.Comment)))
	buf.WriteByte(uint8(len(m.Instruments)))
	buf.WriteByte(0)
	buf.WriteByte(m.Rows)
	buf.WriteByte(m.Channels)
	buf.Write(m.Pan[:])

	for _, ins := range m.Instruments {
		buf.Write(fixed(ins.Name, 22))
		length := ins.Length
		if length == 0 {
			length = uint32(len(ins.Data))
		}
		w(length)
		w(ins.LoopStart)
		w(ins.LoopEnd)
		buf.WriteByte(ins.Finetune)
		buf.WriteByte(ins.Volume)
		buf.WriteByte(ins.Attr)
	}

	var order [128]byte
	copy(order[:], m.Order)
	buf.Write(order[:])

	for _, t := range m.Tracks {
		for _, e := range t {
			buf.Write(e[:])
		}
	}
	for _, p := range m.Patterns {
		w(p)
	}
	buf.Write(m.Comment)

	for _, ins := range m.Instruments {
		buf.Write(ins.Data)
	}
	return buf.Bytes()
}

// fixed pads or cuts s to n bytes.
func fixed(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}
