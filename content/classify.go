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
	"errors"
	"math"

	"github.com/draftview/w2d"
)

// boundary describes the extent of one record, determined before any
// handler runs.  Which of the three formats applies is purely
// positional: '(' and '{' at a record boundary introduce the extended
// formats, any other byte is itself a single-byte binary opcode.
type boundary struct {
	code  w2d.Code
	start int64

	// body is the record payload for the self-describing formats.  It
	// is nil for single-byte binary opcodes, whose payload length is
	// known only to the handler and is consumed from the main cursor.
	body    []byte
	bodyPos int64
}

// classify determines the format and extent of the next record.  On
// return the cursor is positioned at the next record boundary for the
// self-describing formats, or directly after the opcode byte for
// single-byte binary opcodes.
//
// A non-nil error is a record-level failure: the cursor has still been
// advanced as far as the format allows (to end of buffer on
// truncation), so the caller can resynchronize.
func classify(c *w2d.Cursor) (boundary, error) {
	start := c.Pos()
	first, err := c.Peek()
	if err != nil {
		return boundary{start: start}, err
	}

	switch first {
	case '(':
		return classifyASCII(c)
	case '{':
		return classifyExtBinary(c)
	default:
		c.Skip(1)
		return boundary{code: w2d.BinaryCode(first), start: start}, nil
	}
}

// classifyASCII scans forward from an opening parenthesis to the
// matching close, honoring nested parentheses.  Quoted text suppresses
// parenthesis matching.  The scan happens before the mnemonic is known,
// because the record extent cannot be inferred any other way.
func classifyASCII(c *w2d.Cursor) (boundary, error) {
	start := c.Pos()
	c.Skip(1) // the '('
	b := boundary{code: w2d.Code{Format: w2d.ExtASCII}, start: start}

	var inner []byte
	innerPos := c.Pos()
	depth := 1
	quoted := false
	escaped := false
	for {
		ch, err := c.ReadUint8()
		if err != nil {
			c.SkipToEnd()
			return b, &w2d.MalformedRecordError{Pos: start, Err: errors.New("unterminated parenthesis")}
		}
		if quoted {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				quoted = false
			}
		} else {
			switch ch {
			case '"':
				quoted = true
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					inner = c.Between(innerPos, c.Pos()-1)
					return parseMnemonic(b, inner, innerPos)
				}
			}
		}
	}
}

func parseMnemonic(b boundary, inner []byte, innerPos int64) (boundary, error) {
	sub := w2d.NewCursorAt(inner, innerPos)
	sub.SkipSpace()
	if sub.AtEnd() {
		return b, &w2d.MalformedRecordError{Pos: b.start, Err: errors.New("missing mnemonic")}
	}
	if next, _ := sub.Peek(); next == '"' || next == '(' {
		return b, &w2d.MalformedRecordError{Pos: b.start, Err: errors.New("missing mnemonic")}
	}
	name, err := sub.ReadToken()
	if err != nil {
		return b, &w2d.MalformedRecordError{Pos: b.start, Err: err}
	}
	b.code = w2d.ASCIICode(name)
	b.bodyPos = sub.Pos()
	b.body = inner[b.bodyPos-innerPos:]
	return b, nil
}

// classifyExtBinary reads the extended binary frame: one reserved byte,
// a 4-byte little-endian payload size, a 2-byte little-endian opcode
// code, exactly size payload bytes, and a mandatory closing brace.
func classifyExtBinary(c *w2d.Cursor) (boundary, error) {
	start := c.Pos()
	c.Skip(1) // the '{'
	b := boundary{code: w2d.Code{Format: w2d.ExtBinary}, start: start}

	if _, err := c.ReadUint8(); err != nil { // reserved
		c.SkipToEnd()
		return b, err
	}
	size, err := c.ReadUint32()
	if err != nil {
		c.SkipToEnd()
		return b, err
	}
	code, err := c.ReadUint16()
	if err != nil {
		c.SkipToEnd()
		return b, err
	}
	b.code = w2d.ExtBinaryCode(code)

	b.bodyPos = c.Pos()
	// int(size) can wrap on 32-bit platforms, so compare before converting
	if uint64(size) > uint64(c.Remaining()) {
		have := c.Remaining()
		c.SkipToEnd()
		return b, &w2d.TruncatedStreamError{
			Pos:  b.bodyPos,
			Want: int(min(uint64(size), math.MaxInt32)),
			Have: have,
		}
	}
	b.body, _ = c.ReadBytes(int(size))

	close, err := c.ReadUint8()
	if err != nil {
		return b, err
	}
	if close != '}' {
		// leave the unexpected byte for the next classification attempt
		c.Unread(1)
		return b, &w2d.MalformedRecordError{Pos: start, Err: errors.New("missing closing brace")}
	}
	return b, nil
}
