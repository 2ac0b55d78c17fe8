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

package content

import (
	"github.com/draftview/w2d"
)

// handleText decodes the binary text opcode: an int32 anchor point, an
// extended count of UTF-16 code units, and the UTF-16LE payload.  The
// decoded run keeps every codepoint intact; directionality is detected
// here so the renderer can lay the run out right-to-left.
func handleText(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	anchor, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	count, err := c.ReadCount(true)
	if err != nil {
		return nil, err
	}
	value, err := c.ReadUTF16LE(count)
	if err != nil {
		return nil, err
	}
	return Text{
		Op:     op,
		Anchor: d.abs(anchor),
		Value:  value,
		RTL:    isRightToLeft(value),
	}, nil
}
