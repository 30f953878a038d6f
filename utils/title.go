// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Legacy code pages module names are stored in.
var (
	Amiga = charmap.ISO8859_1
	DOS   = charmap.CodePage437
)

// DecodeName converts a raw name field to UTF-8. The field is cut at the
// first NUL, control characters become spaces and trailing blanks are
// dropped.
func DecodeName(raw []byte, cp encoding.Encoding) string {
	for i, c := range raw {
		if c == 0 {
			raw = raw[:i]
			break
		}
	}

	s, err := cp.NewDecoder().Bytes(raw)
	if err != nil {
		// single-byte code pages never fail; keep the raw bytes if one does
		s = raw
	}

	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, string(s))

	return strings.TrimRight(name, " ")
}
