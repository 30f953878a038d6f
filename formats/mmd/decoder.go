// SPDX-License-Identifier: EPL-2.0

package mmd

import (
	"log/slog"

	"github.com/ik5/modload/binio"
	"github.com/ik5/modload/module"
	"github.com/ik5/modload/utils"
	"github.com/pkg/errors"
)

const (
	headerSize   = 52
	songSize     = 788
	songSamples  = 63
	playSeqSize  = 256
	trackVolumes = 16
	noteBase     = 36
	noteClampTop = 36 + 36
)

// Song flags.
const (
	flagVolHex   = 0x10
	flagSTSlide  = 0x20
	flag8Channel = 0x40
	flag2BMask   = 0x1F
	flag2BPM     = 0x20
)

type header struct {
	version        int
	modlen         uint32
	songOffset     uint32
	blockArrOffset uint32
	smplArrOffset  uint32
	expDataOffset  uint32
}

type sampleParams struct {
	rep        uint16
	replen     uint16
	midiCh     uint8
	midiPreset uint8
	volume     uint8
	transpose  int8
}

type song struct {
	samples    [songSamples]sampleParams
	numBlocks  int
	songLen    int
	playSeq    [playSeqSize]uint8
	defTempo   int
	playTransp int8
	flags      uint8
	flags2     uint8
	tempo2     uint8
	trackVol   [trackVolumes]uint8
	masterVol  uint8
	numSamples int
}

// loadState is threaded through every decoding step of one load.
type loadState struct {
	cfg   module.Config
	log   *slog.Logger
	r     *binio.Reader
	start int64
	hdr   header
	song  song
	tempo tempoMode
	exp   expansion

	// sampleBytes is the PCM size of every sample added so far.
	sampleBytes int64
}

// Decoder loads MED 2.10 (MMD0) and OctaMED 4 (MMD1) modules.
type Decoder struct{}

func (Decoder) Name() string        { return "MMD0/1" }
func (Decoder) Description() string { return "MED 2.10/OctaMED" }

func (Decoder) Test(r *binio.Reader, start int64) (string, error) {
	var id [4]byte
	if err := r.ReadFull(id[:]); err != nil {
		return "", err
	}
	if string(id[:]) != "MMD0" && string(id[:]) != "MMD1" {
		return "", ErrNotMMDFile
	}

	r.Skip(28)
	expOffset := r.Read32B()
	if err := r.Err(); err != nil {
		return "", err
	}
	if expOffset == 0 {
		return "", nil
	}

	// The title is best effort: a broken expansion block still leaves a
	// recognizable module.
	if r.SeekTo(start+int64(expOffset)+44) != nil {
		r.Reset()
		return "", nil
	}
	nameOffset := r.Read32B()
	nameLen := r.Read32B()
	if r.Err() != nil || r.SeekFrom(start, nameOffset) != nil {
		r.Reset()
		return "", nil
	}
	return utils.DecodeName(r.ReadTitle(int(min(nameLen, binio.NameSize))), utils.Amiga), nil
}

func (Decoder) Load(cfg module.Config, r *binio.Reader, start int64) (*module.Module, error) {
	cfg = cfg.Normalize()
	st := &loadState{
		cfg:   cfg,
		log:   cfg.Logger.With("format", "MMD"),
		r:     r,
		start: start,
	}

	m := &module.Module{}
	if err := st.load(m); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func (st *loadState) load(m *module.Module) error {
	if err := st.readHeader(); err != nil {
		return err
	}
	if err := st.readSong(); err != nil {
		return err
	}

	s := &st.song
	st.tempo = tempoMode{
		eightChannel: s.flags&flag8Channel != 0,
		bpmOn:        s.flags2&flag2BPM != 0,
		bpmLen:       1 + int(s.flags2&flag2BMask),
	}

	m.C4Rate = module.C4NTSCRate
	m.Quirks |= module.QuirkMEDBPM
	if s.flags&flagSTSlide == 0 {
		m.Quirks |= module.QuirkVolSlideAll
	}

	// In 8-channel mode the tempo gadget selects the mix buffer size
	// (1-10, lower is faster); otherwise it is a BPM value, optionally
	// divided by the beat length.
	m.Speed = int(s.tempo2)
	m.BPM = st.tempo.convert(s.defTempo)
	m.Length = s.songLen
	m.Order = make([]int, s.songLen)
	for i := range m.Order {
		m.Order[i] = int(s.playSeq[i])
	}

	if err := st.readExpansion(m); err != nil {
		return err
	}

	if err := st.scanChannels(m); err != nil {
		return err
	}

	switch {
	case st.hdr.version > 0:
		m.Type = "MMD1 (OctaMED 4.00)"
	case m.Channels > 4:
		m.Type = "MMD0 (OctaMED 2.00)"
	default:
		m.Type = "MMD0 (MED 2.10)"
	}

	st.log.Debug("module info", "type", m.Type, "name", m.Name, "channels", m.Channels,
		"patterns", s.numBlocks, "instruments", s.numSamples, "length", s.songLen)
	st.log.Debug("tempo", "bpm_mode", st.tempo.bpmOn, "bpm_len", st.tempo.bpmLen,
		"8ch", st.tempo.eightChannel, "transpose", s.playTransp)

	if err := st.readBlocks(m); err != nil {
		return err
	}
	if err := st.readInstruments(m); err != nil {
		return err
	}

	clampNotes(m)

	m.ChannelSettings = make([]module.ChannelSetting, m.Channels)
	for i := range m.ChannelSettings {
		vol := 64
		if i < trackVolumes {
			vol = int(s.trackVol[i])
		}
		m.ChannelSettings[i] = module.ChannelSetting{
			Volume: vol,
			Pan:    ((i + 1) / 2) % 2 * 0xFF,
		}
	}

	return nil
}

func (st *loadState) readHeader() error {
	r := st.r
	if err := r.SeekTo(st.start); err != nil {
		return err
	}
	if err := r.Require(headerSize); err != nil {
		return errors.Wrap(err, "header")
	}

	var id [4]byte
	r.ReadFull(id[:])
	switch string(id[:]) {
	case "MMD0", "MMD1":
	default:
		return ErrNotMMDFile
	}

	h := &st.hdr
	h.version = int(id[3] - '0')
	h.modlen = r.Read32B()
	h.songOffset = r.Read32B()
	r.Skip(4)
	h.blockArrOffset = r.Read32B()
	r.Skip(4)
	h.smplArrOffset = r.Read32B()
	r.Skip(4)
	h.expDataOffset = r.Read32B()
	// reserved pointer and the saved player state are not needed
	r.Skip(4 + 12)

	if err := r.Err(); err != nil {
		return errors.Wrap(err, "header")
	}

	st.log.Debug("header", "version", h.version, "song_offset", h.songOffset,
		"blockarr_offset", h.blockArrOffset, "smplarr_offset", h.smplArrOffset,
		"expdata_offset", h.expDataOffset)
	return nil
}

func (st *loadState) readSong() error {
	r := st.r
	if err := r.SeekFrom(st.start, st.hdr.songOffset); err != nil {
		return errors.Wrap(err, "song block")
	}
	if err := r.Require(songSize); err != nil {
		return errors.Wrap(err, "song block")
	}

	s := &st.song
	for i := range s.samples {
		s.samples[i] = sampleParams{
			rep:        r.Read16B(),
			replen:     r.Read16B(),
			midiCh:     r.Read8(),
			midiPreset: r.Read8(),
			volume:     r.Read8(),
			transpose:  r.Read8s(),
		}
	}
	s.numBlocks = int(r.Read16B())
	s.songLen = int(r.Read16B())
	r.ReadFull(s.playSeq[:])
	s.defTempo = int(r.Read16B())
	s.playTransp = r.Read8s()
	s.flags = r.Read8()
	s.flags2 = r.Read8()
	s.tempo2 = r.Read8()
	r.ReadFull(s.trackVol[:])
	s.masterVol = r.Read8()
	s.numSamples = int(r.Read8())

	if err := r.Err(); err != nil {
		return errors.Wrap(err, "song block")
	}

	if s.numBlocks > st.cfg.Limits.MaxPatterns {
		return errors.Wrapf(module.ErrInvalidCount, "%d blocks exceeds %d", s.numBlocks, st.cfg.Limits.MaxPatterns)
	}
	if s.songLen > playSeqSize {
		return errors.Wrapf(module.ErrInvalidCount, "song length %d exceeds %d", s.songLen, playSeqSize)
	}
	if s.numSamples > songSamples {
		return errors.Wrapf(module.ErrInvalidCount, "%d instruments exceeds %d", s.numSamples, songSamples)
	}
	for i := range s.songLen {
		if int(s.playSeq[i]) >= s.numBlocks {
			return errors.Wrapf(module.ErrInvalidCount, "play sequence %d references block %d of %d", i, s.playSeq[i], s.numBlocks)
		}
	}
	return nil
}
