// github.com/draftview/w2d - a library for decoding W2D drawing streams
// Copyright (C) 2026  The w2d authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package w2d

import (
	"encoding/binary"
	"errors"
	"unicode/utf16"
)

var errUnpairedSurrogate = errors.New("unpaired UTF-16 surrogate")

// ReadUTF16LE reads charCount UTF-16 code units (2*charCount bytes) and
// decodes them to a string.  Unpaired surrogates fail with an
// [EncodingError] instead of being replaced by U+FFFD, so that text
// runs survive the decode byte-for-byte.
func (c *Cursor) ReadUTF16LE(charCount int) (string, error) {
	start := c.Pos()
	raw, err := c.ReadBytes(2 * charCount)
	if err != nil {
		return "", err
	}

	runes := make([]rune, 0, charCount)
	for i := 0; i < len(raw); i += 2 {
		u := binary.LittleEndian.Uint16(raw[i:])
		switch {
		case u >= 0xD800 && u <= 0xDBFF: // high surrogate
			if i+3 >= len(raw) {
				return "", &EncodingError{Pos: start + int64(i), Err: errUnpairedSurrogate}
			}
			lo := binary.LittleEndian.Uint16(raw[i+2:])
			if lo < 0xDC00 || lo > 0xDFFF {
				return "", &EncodingError{Pos: start + int64(i), Err: errUnpairedSurrogate}
			}
			runes = append(runes, utf16.DecodeRune(rune(u), rune(lo)))
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF: // low surrogate without a high one
			return "", &EncodingError{Pos: start + int64(i), Err: errUnpairedSurrogate}
		default:
			runes = append(runes, rune(u))
		}
	}
	return string(runes), nil
}
