// SPDX-License-Identifier: EPL-2.0

package mmd

import (
	"github.com/ik5/modload/module"
	"github.com/pkg/errors"
)

const (
	instrHeaderSize = 6
	synthTableSize  = 128
	synthWaveforms  = 64
	synthHeaderSize = 16 + 2*synthTableSize
	noWaveforms     = 0xFFFF
	synthTranspose  = -24
)

// Instrument type codes stored in the instrument header.
const (
	typeSample = 0
	typeSynth  = -1
	typeHybrid = -2
)

// synthHeader follows the common instrument header for synthetic and
// hybrid instruments.
type synthHeader struct {
	decay     uint8
	rep       uint16
	replen    uint16
	volTblLen int
	wfTblLen  int
	volSpeed  uint8
	wfSpeed   uint8
	wforms    int
	volTbl    [synthTableSize]byte
	wfTbl     [synthTableSize]byte
}

func (s *synthHeader) tables() *module.Synth {
	return &module.Synth{
		VolSpeed:  int(s.volSpeed),
		WaveSpeed: int(s.wfSpeed),
		VolTable:  append([]byte(nil), s.volTbl[:s.volTblLen]...),
		WaveTable: append([]byte(nil), s.wfTbl[:s.wfTblLen]...),
	}
}

// instrumentKind resolves a stored type code once.
func instrumentKind(code int16) module.InstrumentKind {
	switch code {
	case typeSample:
		return module.InstrumentSample
	case typeSynth:
		return module.InstrumentSynth
	case typeHybrid:
		return module.InstrumentHybrid
	}
	return module.InstrumentEmpty
}

func (st *loadState) readSynthHeader(i int) (*synthHeader, error) {
	r := st.r
	if err := r.Require(synthHeaderSize); err != nil {
		return nil, errors.Wrapf(err, "instrument %d synth header", i)
	}

	s := &synthHeader{}
	s.decay = r.Read8()
	r.Skip(3)
	s.rep = r.Read16B()
	s.replen = r.Read16B()
	s.volTblLen = int(r.Read16B())
	s.wfTblLen = int(r.Read16B())
	s.volSpeed = r.Read8()
	s.wfSpeed = r.Read8()
	s.wforms = int(r.Read16B())
	r.ReadFull(s.volTbl[:])
	r.ReadFull(s.wfTbl[:])

	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "instrument %d synth header", i)
	}
	if s.volTblLen > synthTableSize || s.wfTblLen > synthTableSize {
		return nil, errors.Wrapf(ErrBadSynth, "instrument %d: table lengths %d/%d", i, s.volTblLen, s.wfTblLen)
	}
	return s, nil
}

// songSample builds the Sample of a sampled or hybrid instrument from
// its stored length and the song's loop record.
func songSample(i int, length uint32, sp sampleParams) (*module.Sample, error) {
	s := &module.Sample{Length: int(length)}
	if sp.replen > 1 {
		s.Flags |= module.SampleLoop
		s.LoopStart = 2 * int(sp.rep)
		s.LoopEnd = s.LoopStart + 2*int(sp.replen)
	}
	if s.LoopEnd > s.Length {
		return nil, errors.Wrapf(module.ErrOutOfBounds, "instrument %d loop %d-%d past length %d",
			i, s.LoopStart, s.LoopEnd, s.Length)
	}
	return s, nil
}

// addSample registers s and hands its PCM to the patch loader. The
// summed sample sizes may not exceed the module's bytes.
func (st *loadState) addSample(m *module.Module, s *module.Sample) (int, error) {
	id := len(m.Samples)
	st.sampleBytes += int64(s.ByteSize())
	if budget := st.r.Size() - st.start; st.sampleBytes > budget {
		return id, errors.Wrapf(module.ErrAllocation, "sample %d: %d sample bytes in a %d byte module",
			id, st.sampleBytes, budget)
	}
	m.Samples = append(m.Samples, s)
	if err := st.cfg.Patches.LoadPatch(st.r, id, 0, s); err != nil {
		return id, err
	}
	return id, nil
}

func (st *loadState) readInstruments(m *module.Module) error {
	r := st.r
	count := st.song.numSamples

	if err := r.SeekFrom(st.start, st.hdr.smplArrOffset); err != nil {
		return errors.Wrap(err, "instrument table")
	}
	if err := r.Require(int64(count) * 4); err != nil {
		return errors.Wrapf(module.ErrInvalidCount, "instrument table of %d entries: %v", count, err)
	}

	m.Instruments = make([]*module.Instrument, count)
	for i := range count {
		m.Instruments[i] = &module.Instrument{}
		if err := st.readInstrument(m, i); err != nil {
			return err
		}
	}
	return nil
}

func (st *loadState) readInstrument(m *module.Module, i int) error {
	r := st.r
	if err := r.SeekTo(st.start + int64(st.hdr.smplArrOffset) + int64(i)*4); err != nil {
		return errors.Wrapf(err, "instrument %d pointer", i)
	}
	off := r.Read32B()
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "instrument %d pointer", i)
	}
	if off == 0 {
		return nil
	}

	base := st.start + int64(off)
	if err := r.SeekTo(base); err != nil {
		return errors.Wrapf(err, "instrument %d", i)
	}
	length := r.Read32B()
	code := r.Read16Bs()
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "instrument %d", i)
	}

	ext, err := st.instrumentExt(i)
	if err != nil {
		return err
	}

	ins := m.Instruments[i]
	ins.Name = ext.name
	ins.Hold = int(ext.hold)
	ins.Decay = int(ext.decay)

	sp := st.song.samples[i]
	sub := module.SubInstrument{
		Volume:    int(sp.volume),
		Pan:       0x80,
		Transpose: int(sp.transpose),
		Finetune:  int(int8(ext.finetune)),
	}

	kind := instrumentKind(code)
	st.log.Debug("instrument", "index", i, "offset", off, "name", ins.Name, "type", kind.String(),
		"volume", sp.volume, "transpose", sp.transpose, "finetune", sub.Finetune)

	// every kind starts reading right after the common header
	if err := r.SeekTo(base + instrHeaderSize); err != nil {
		return errors.Wrapf(err, "instrument %d", i)
	}

	switch kind {
	case module.InstrumentSample:
		// Synth and hybrid instruments keep the stored finetune; plain
		// samples scale it to the 1/128 semitone steps.
		sub.Finetune = int(int8(ext.finetune << 4))
		s, err := songSample(i, length, sp)
		if err != nil {
			return err
		}
		if sub.Sample, err = st.addSample(m, s); err != nil {
			return err
		}
		ins.Kind = kind
		ins.Subs = []module.SubInstrument{sub}

	case module.InstrumentHybrid:
		return st.readHybrid(m, ins, i, base, sub)

	case module.InstrumentSynth:
		return st.readSynth(m, ins, i, base, sub)
	}
	return nil
}

// readHybrid loads a conventional sample driven by synth tables. The
// first waveform pointer locates the sample.
func (st *loadState) readHybrid(m *module.Module, ins *module.Instrument, i int, base int64, sub module.SubInstrument) error {
	r := st.r
	sh, err := st.readSynthHeader(i)
	if err != nil {
		return err
	}
	wf0 := r.Read32B()
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "instrument %d waveform pointer", i)
	}

	if err := r.SeekTo(base + int64(wf0)); err != nil {
		return errors.Wrapf(err, "instrument %d hybrid sample", i)
	}
	length := r.Read32B()
	r.Read16B() // type of the embedded sample
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "instrument %d hybrid sample", i)
	}

	s, err := songSample(i, length, st.song.samples[i])
	if err != nil {
		return err
	}
	if sub.Sample, err = st.addSample(m, s); err != nil {
		return err
	}

	ins.Kind = module.InstrumentHybrid
	ins.Subs = []module.SubInstrument{sub}
	ins.Synth = sh.tables()
	return nil
}

// readSynth loads a synthetic instrument: each waveform becomes one
// looped Sample and one SubInstrument.
func (st *loadState) readSynth(m *module.Module, ins *module.Instrument, i int, base int64, sub module.SubInstrument) error {
	r := st.r
	sh, err := st.readSynthHeader(i)
	if err != nil {
		return err
	}
	if sh.wforms == noWaveforms {
		st.log.Debug("synth instrument without waveforms", "index", i)
		return nil
	}

	limit := min(synthWaveforms, st.cfg.Limits.MaxWaveforms)
	if sh.wforms > limit {
		return errors.Wrapf(ErrBadSynth, "instrument %d: %d waveforms exceeds %d", i, sh.wforms, limit)
	}

	var wf [synthWaveforms]uint32
	for j := range wf {
		wf[j] = r.Read32B()
	}
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "instrument %d waveform pointers", i)
	}

	sub.Transpose += synthTranspose
	ins.Kind = module.InstrumentSynth
	ins.Subs = make([]module.SubInstrument, 0, sh.wforms)
	ins.Synth = sh.tables()

	for j := range sh.wforms {
		if err := r.SeekTo(base + int64(wf[j])); err != nil {
			return errors.Wrapf(err, "instrument %d waveform %d", i, j)
		}
		words := r.Read16B()
		if err := r.Err(); err != nil {
			return errors.Wrapf(err, "instrument %d waveform %d", i, j)
		}

		s := &module.Sample{Length: 2 * int(words), Flags: module.SampleSynth}
		if s.Length > 1 {
			s.Flags |= module.SampleLoop
			s.LoopEnd = s.Length
		}

		sub.Sample, err = st.addSample(m, s)
		if err != nil {
			return err
		}
		ins.Subs = append(ins.Subs, sub)
	}
	return nil
}
