// SPDX-License-Identifier: EPL-2.0

package mtm

import (
	"fmt"
	"log/slog"

	"github.com/ik5/modload/binio"
	"github.com/ik5/modload/module"
	"github.com/ik5/modload/utils"
	"github.com/pkg/errors"
)

const (
	version        = 0x10
	headerSize     = 66
	instrumentSize = 37
	maxChannels    = 32
	orderSize      = 128
	trackRows      = 64
	trackSize      = trackRows * 3
	patternSize    = maxChannels * 2
	noteBase       = 25
)

type header struct {
	version  uint8
	name     []byte
	tracks   int
	patterns int
	modlen   int
	extralen int
	samples  int
	rows     int
	channels int
	pan      [maxChannels]uint8
}

type instrument struct {
	name      []byte
	length    uint32
	loopStart uint32
	loopEnd   uint32
	finetune  uint8
	volume    uint8
	attr      uint8
}

// Decoder loads MultiTracker modules.
type Decoder struct{}

func (Decoder) Name() string        { return "MTM" }
func (Decoder) Description() string { return "Multitracker" }

func (Decoder) Test(r *binio.Reader, start int64) (string, error) {
	var id [4]byte
	if err := r.ReadFull(id[:]); err != nil {
		return "", err
	}
	if string(id[:3]) != "MTM" || id[3] != version {
		return "", ErrNotMTMFile
	}

	return utils.DecodeName(r.ReadTitle(20), utils.DOS), nil
}

func readHeader(r *binio.Reader) (*header, error) {
	if err := r.Require(headerSize); err != nil {
		return nil, errors.Wrap(err, "header")
	}

	var h header
	var magic [3]byte
	r.ReadFull(magic[:])
	h.version = r.Read8()
	h.name = r.ReadBytes(20)
	h.tracks = int(r.Read16L())
	h.patterns = int(r.Read8()) + 1
	h.modlen = int(r.Read8()) + 1
	h.extralen = int(r.Read16L())
	h.samples = int(r.Read8())
	r.Read8() // attributes, always zero
	h.rows = int(r.Read8())
	h.channels = int(r.Read8())
	r.ReadFull(h.pan[:])

	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "header")
	}
	if string(magic[:]) != "MTM" {
		return nil, ErrNotMTMFile
	}
	return &h, nil
}

func (h *header) validate(lim module.Limits) error {
	if h.channels < 1 || h.channels > min(maxChannels, lim.MaxChannels) {
		return errors.Wrapf(ErrBadChannelCount, "%d", h.channels)
	}
	if h.rows < 1 || h.rows > min(trackRows, lim.MaxRows) {
		return errors.Wrapf(ErrBadRowCount, "%d", h.rows)
	}
	if h.modlen > orderSize {
		return errors.Wrapf(module.ErrInvalidCount, "song length %d exceeds %d", h.modlen, orderSize)
	}
	if h.patterns > lim.MaxPatterns {
		return errors.Wrapf(module.ErrInvalidCount, "%d patterns exceeds %d", h.patterns, lim.MaxPatterns)
	}
	return nil
}

func (Decoder) Load(cfg module.Config, r *binio.Reader, start int64) (*module.Module, error) {
	cfg = cfg.Normalize()

	m := &module.Module{}
	if err := load(m, cfg, r, start); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func load(m *module.Module, cfg module.Config, r *binio.Reader, start int64) error {
	log := cfg.Logger.With("format", "MTM")

	if err := r.SeekTo(start); err != nil {
		return err
	}

	h, err := readHeader(r)
	if err != nil {
		return err
	}
	if err := h.validate(cfg.Limits); err != nil {
		return err
	}

	// Everything up to the sample data has a fixed size; refuse the file
	// before allocating anything if it cannot be there.
	fixed := int64(h.samples)*instrumentSize + orderSize +
		int64(h.tracks)*trackSize + int64(h.patterns)*patternSize + int64(h.extralen)
	if err := r.Require(fixed); err != nil {
		return errors.Wrapf(module.ErrInvalidCount,
			"%d instruments, %d tracks, %d patterns need %d bytes: %v",
			h.samples, h.tracks, h.patterns, fixed, err)
	}

	m.Name = utils.DecodeName(h.name, utils.DOS)
	m.Type = fmt.Sprintf("MTM (MultiTracker %d.%02d)", h.version>>4, h.version&0x0F)
	m.Channels = h.channels
	m.Length = h.modlen
	m.Speed = 6
	m.BPM = 125
	m.C4Rate = module.C4PALRate

	log.Debug("module info", "name", m.Name, "type", m.Type, "channels", h.channels,
		"tracks", h.tracks, "patterns", h.patterns, "length", h.modlen, "samples", h.samples)

	if err := loadInstruments(m, r, h.samples, log); err != nil {
		return err
	}

	order := make([]byte, orderSize)
	if err := r.ReadFull(order); err != nil {
		return errors.Wrap(err, "order list")
	}
	m.Order = make([]int, h.modlen)
	for i := range m.Order {
		if int(order[i]) >= h.patterns {
			return errors.Wrapf(module.ErrInvalidCount, "order %d references pattern %d of %d", i, order[i], h.patterns)
		}
		m.Order[i] = int(order[i])
	}

	if err := loadTracks(m, r, h.tracks); err != nil {
		return err
	}
	if err := loadPatterns(m, r, h); err != nil {
		return err
	}

	if err := r.Skip(int64(h.extralen)); err != nil {
		return errors.Wrap(err, "comment")
	}

	for i, s := range m.Samples {
		if err := cfg.Patches.LoadPatch(r, i, module.PatchUnsigned, s); err != nil {
			return err
		}
	}

	m.ChannelSettings = make([]module.ChannelSetting, h.channels)
	for i := range m.ChannelSettings {
		m.ChannelSettings[i] = module.ChannelSetting{Volume: 64, Pan: int(h.pan[i]) << 4}
	}

	return nil
}

func readInstrument(r *binio.Reader) instrument {
	return instrument{
		name:      r.ReadBytes(22),
		length:    r.Read32L(),
		loopStart: r.Read32L(),
		loopEnd:   r.Read32L(),
		finetune:  r.Read8(),
		volume:    r.Read8(),
		attr:      r.Read8(),
	}
}

func loadInstruments(m *module.Module, r *binio.Reader, count int, log *slog.Logger) error {
	m.Instruments = make([]*module.Instrument, count)
	m.Samples = make([]*module.Sample, count)

	for i := range count {
		mih := readInstrument(r)
		if err := r.Err(); err != nil {
			return errors.Wrapf(err, "instrument %d", i)
		}

		s := &module.Sample{
			Name:      utils.DecodeName(mih.name, utils.DOS),
			Length:    int(mih.length),
			LoopStart: int(mih.loopStart),
			LoopEnd:   int(mih.loopEnd),
		}
		if mih.attr&1 != 0 {
			s.Flags |= module.Sample16Bit
			s.Length >>= 1
			s.LoopStart >>= 1
			s.LoopEnd >>= 1
		}
		if s.LoopEnd-s.LoopStart > 1 {
			s.Flags |= module.SampleLoop
		} else {
			s.LoopStart, s.LoopEnd = 0, 0
		}
		if s.LoopStart > s.LoopEnd || s.LoopEnd > s.Length {
			return errors.Wrapf(module.ErrOutOfBounds, "instrument %d loop %d-%d past length %d",
				i, s.LoopStart, s.LoopEnd, s.Length)
		}

		ins := &module.Instrument{Name: s.Name}
		if s.Length > 0 {
			ins.Kind = module.InstrumentSample
			ins.Subs = []module.SubInstrument{{
				Volume:   int(mih.volume),
				Pan:      0x80,
				Finetune: int(int8(mih.finetune << 4)),
				Sample:   i,
			}}
		}

		m.Instruments[i] = ins
		m.Samples[i] = s

		log.Debug("instrument", "index", i, "name", ins.Name, "length", s.Length,
			"loop_start", s.LoopStart, "loop_end", s.LoopEnd, "16bit", s.Is16Bit(),
			"volume", mih.volume, "finetune", int8(mih.finetune<<4))
	}
	return nil
}

// decodeEvent unpacks one 3-byte MTM cell.
func decodeEvent(b0, b1, b2 uint8) module.Event {
	e := module.Event{
		Note: b0 >> 2,
		Ins:  (b0&0x03)<<4 | b1>>4,
		FxT:  b1 & 0x0F,
		FxP:  b2,
	}
	if e.Note != 0 {
		e.Note += noteBase
	}
	if e.FxT > module.FxSpeed {
		e.FxT, e.FxP = 0, 0
	}
	if e.FxT == module.FxExtended && e.FxP>>4 == module.ExSetPan {
		e.FxT = module.FxSetPan
		e.FxP <<= 4
	}
	return e
}

// loadTracks reads the shared track pool. Slot 0 is the implicit empty
// track and is not stored in the file.
func loadTracks(m *module.Module, r *binio.Reader, stored int) error {
	m.Tracks = make([]*module.Track, stored+1)
	m.Tracks[0] = module.NewTrack(trackRows)

	buf := make([]byte, trackSize)
	for i := 1; i <= stored; i++ {
		if err := r.ReadFull(buf); err != nil {
			return errors.Wrapf(err, "track %d", i)
		}
		t := module.NewTrack(trackRows)
		for j := range t.Events {
			t.Events[j] = decodeEvent(buf[j*3], buf[j*3+1], buf[j*3+2])
		}
		m.Tracks[i] = t
	}
	return nil
}

func loadPatterns(m *module.Module, r *binio.Reader, h *header) error {
	m.Patterns = make([]*module.Pattern, h.patterns)

	for i := range m.Patterns {
		var slots [maxChannels]uint16
		for j := range slots {
			slots[j] = r.Read16L()
		}
		if err := r.Err(); err != nil {
			return errors.Wrapf(err, "pattern %d", i)
		}

		p := &module.Pattern{Rows: h.rows, Tracks: make([]*module.Track, h.channels)}
		for j := range p.Tracks {
			idx := int(slots[j])
			if idx >= len(m.Tracks) {
				return errors.Wrapf(ErrBadTrackIndex, "pattern %d channel %d: track %d of %d", i, j, idx, len(m.Tracks))
			}
			p.Tracks[j] = m.Tracks[idx]
		}
		m.Patterns[i] = p
	}
	return nil
}
