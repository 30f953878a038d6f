// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestSigned8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input byte
		want  int
	}{
		{0x00, 0},
		{0x7F, 127},
		{0x80, -128},
		{0xFF, -1},
	}

	for _, tt := range tests {
		if got := Signed8(tt.input); got != tt.want {
			t.Errorf("Signed8(0x%02X) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestUnsigned8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input byte
		want  int
	}{
		{0x80, 0},
		{0x00, -128},
		{0xFF, 127},
	}

	for _, tt := range tests {
		if got := Unsigned8(tt.input); got != tt.want {
			t.Errorf("Unsigned8(0x%02X) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestSigned16(t *testing.T) {
	t.Parallel()

	if got := Signed16LE(0x00, 0x80); got != math.MinInt16 {
		t.Errorf("Signed16LE(0x00, 0x80) = %d, want %d", got, math.MinInt16)
	}
	if got := Signed16LE(0xFF, 0x7F); got != math.MaxInt16 {
		t.Errorf("Signed16LE(0xFF, 0x7F) = %d, want %d", got, math.MaxInt16)
	}
	if got := Signed16BE(0x7F, 0xFF); got != math.MaxInt16 {
		t.Errorf("Signed16BE(0x7F, 0xFF) = %d, want %d", got, math.MaxInt16)
	}
	if got := Unsigned16LE(0x00, 0x80); got != 0 {
		t.Errorf("Unsigned16LE(0x00, 0x80) = %d, want 0", got)
	}
	if got := Unsigned16LE(0x00, 0x00); got != math.MinInt16 {
		t.Errorf("Unsigned16LE(0x00, 0x00) = %d, want %d", got, math.MinInt16)
	}
}
