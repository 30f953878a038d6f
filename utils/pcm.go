// SPDX-License-Identifier: EPL-2.0

package utils

// Signed8 converts a stored signed 8-bit PCM byte.
func Signed8(b byte) int {
	return int(int8(b))
}

// Unsigned8 converts a stored unsigned 8-bit PCM byte to signed.
func Unsigned8(b byte) int {
	return int(b) - 0x80
}

// Signed16LE converts two stored bytes of little-endian signed PCM.
func Signed16LE(lo, hi byte) int {
	return int(int16(uint16(lo) | uint16(hi)<<8))
}

// Signed16BE converts two stored bytes of big-endian signed PCM.
func Signed16BE(hi, lo byte) int {
	return int(int16(uint16(lo) | uint16(hi)<<8))
}

// Unsigned16LE converts two stored bytes of little-endian unsigned PCM.
func Unsigned16LE(lo, hi byte) int {
	return int(uint16(lo)|uint16(hi)<<8) - 0x8000
}
