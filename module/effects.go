// SPDX-License-Identifier: EPL-2.0

package module

// Canonical effect types. 0x00-0x0F follow the Protracker numbering so
// formats that store Protracker commands map onto them unchanged.
const (
	FxArpeggio          uint8 = 0x00
	FxPortaUp           uint8 = 0x01
	FxPortaDown         uint8 = 0x02
	FxTonePorta         uint8 = 0x03
	FxVibrato           uint8 = 0x04
	FxTonePortaVolSlide uint8 = 0x05
	FxVibratoVolSlide   uint8 = 0x06
	FxTremolo           uint8 = 0x07
	FxSetPan            uint8 = 0x08
	FxOffset            uint8 = 0x09
	FxVolSlide          uint8 = 0x0A
	FxJump              uint8 = 0x0B
	FxVolume            uint8 = 0x0C
	FxBreak             uint8 = 0x0D
	FxExtended          uint8 = 0x0E
	FxSpeed             uint8 = 0x0F
	FxFinePortaUp       uint8 = 0x10
	FxFinePortaDown     uint8 = 0x11
	FxFineVolSlideUp    uint8 = 0x12
	FxFineVolSlideDown  uint8 = 0x13
	FxFinetune          uint8 = 0x14
	FxPatternDelay      uint8 = 0x15
	FxSetBPM            uint8 = 0x16
	FxMEDVibrato        uint8 = 0x17

	// FxMax is the highest valid canonical effect type.
	FxMax = FxMEDVibrato
)

// Sub-commands carried in the high nibble of an FxExtended parameter.
const (
	ExFilter      uint8 = 0x0
	ExPatternLoop uint8 = 0x6
	ExSetPan      uint8 = 0x8
	ExRetrig      uint8 = 0x9
	ExCut         uint8 = 0xC
	ExDelay       uint8 = 0xD
)

// Extended builds an FxExtended parameter from a sub-command and value.
func Extended(sub, val uint8) uint8 {
	return sub<<4 | val&0x0F
}
