// SPDX-License-Identifier: EPL-2.0

package mmd

import "github.com/ik5/modload/module"

// eightChannelTempos maps the 8-channel mode tempo gadget (1-10) to BPM.
var eightChannelTempos = [10]int{47, 43, 40, 37, 35, 32, 30, 29, 27, 26}

func eightChannelTempo(tempo int) int {
	if tempo <= 0 {
		return tempo
	}
	return eightChannelTempos[min(tempo, 10)-1]
}

// tempoMode is the song's tempo encoding, fixed for the whole load.
type tempoMode struct {
	eightChannel bool
	bpmOn        bool
	bpmLen       int
}

func (t tempoMode) convert(tempo int) int {
	switch {
	case t.eightChannel:
		return eightChannelTempo(tempo)
	case t.bpmOn:
		return tempo / t.bpmLen
	}
	return tempo
}

// translateEffect rewrites a MED command into the canonical enumeration.
// Commands without a canonical counterpart become "no effect".
func translateEffect(e *module.Event, tempo tempoMode, hexVol bool) {
	switch e.FxT {
	case 0x00, 0x01, 0x02:
		// arpeggio and slides share the Protracker numbering
	case 0x03:
		e.FxT = module.FxTonePorta
	case 0x04:
		// twice as deep as the Protracker vibrato
		e.FxT = module.FxMEDVibrato
	case 0x05:
		e.FxT = module.FxTonePortaVolSlide
	case 0x06:
		e.FxT = module.FxVibratoVolSlide
	case 0x07:
		e.FxT = module.FxTremolo
	case 0x09:
		if e.FxP == 0 || e.FxP > 0x20 {
			e.FxT, e.FxP = 0, 0
			break
		}
		e.FxT = module.FxSpeed
	case 0x0B:
		e.FxT = module.FxJump
	case 0x0C:
		e.FxT = module.FxVolume
		if !hexVol {
			e.FxP = (e.FxP>>4)*10 + e.FxP&0x0F
		}
	case 0x0D:
		e.FxT = module.FxVolSlide
	case 0x0F:
		translateMisc(e, tempo)
	case 0x11:
		e.FxT = module.FxFinePortaUp
	case 0x12:
		e.FxT = module.FxFinePortaDown
	case 0x14:
		e.FxT = module.FxVibrato
	case 0x15:
		e.FxT = module.FxFinetune
	case 0x16:
		e.FxT = module.FxExtended
		e.FxP = module.Extended(module.ExPatternLoop, e.FxP)
	case 0x18:
		e.FxT = module.FxExtended
		e.FxP = module.Extended(module.ExCut, e.FxP)
	case 0x19:
		e.FxT = module.FxOffset
	case 0x1A:
		e.FxT = module.FxFineVolSlideUp
	case 0x1B:
		e.FxT = module.FxFineVolSlideDown
	case 0x1D:
		e.FxT = module.FxBreak
	case 0x1E:
		e.FxT = module.FxPatternDelay
	case 0x1F:
		switch {
		case e.FxP>>4 != 0:
			e.FxT = module.FxExtended
			e.FxP = module.Extended(module.ExDelay, e.FxP>>4)
		case e.FxP&0x0F != 0:
			e.FxT = module.FxExtended
			e.FxP = module.Extended(module.ExRetrig, e.FxP)
		default:
			e.FxT, e.FxP = 0, 0
		}
	default:
		// 0x08 hold/decay, 0x0E synth jump and unknown commands
		e.FxT, e.FxP = 0, 0
	}
}

// translateMisc handles the 0x0F command family.
func translateMisc(e *module.Event, tempo tempoMode) {
	switch p := e.FxP; {
	case p == 0x00:
		e.FxT = module.FxBreak
	case p <= 0xF0:
		e.FxT = module.FxSetBPM
		e.FxP = uint8(min(tempo.convert(int(p)), 0xFF))
	case p == 0xF1:
		e.FxT, e.FxP = module.FxExtended, module.Extended(module.ExRetrig, 3)
	case p == 0xF2:
		e.FxT, e.FxP = module.FxExtended, module.Extended(module.ExDelay, 3)
	case p == 0xF3:
		e.FxT, e.FxP = module.FxExtended, module.Extended(module.ExRetrig, 2)
	case p == 0xF8:
		e.FxT, e.FxP = module.FxExtended, module.Extended(module.ExFilter, 1)
	case p == 0xF9:
		e.FxT, e.FxP = module.FxExtended, module.Extended(module.ExFilter, 0)
	case p == 0xFE:
		e.FxT, e.FxP = module.FxSpeed, 0
	case p == 0xFF:
		e.FxT, e.FxP = module.FxExtended, module.Extended(module.ExCut, 0)
	default:
		e.FxT, e.FxP = 0, 0
	}
}
