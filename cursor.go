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
	"math"
)

// A Cursor reads scalar fields from a byte buffer.  All multi-byte
// integers are little-endian.  Every read is bounds-checked and fails
// with a [TruncatedStreamError] if not enough bytes remain; a failed
// read does not advance the cursor.
type Cursor struct {
	data []byte
	pos  int
	base int64
}

// NewCursor returns a cursor over data, positioned at the start.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// NewCursorAt returns a cursor over data whose reported positions are
// offset by base.  This is used for sub-cursors over record payloads,
// so that errors still carry offsets into the original stream.
func NewCursorAt(data []byte, base int64) *Cursor {
	return &Cursor{data: data, base: base}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int64 {
	return c.base + int64(c.pos)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// AtEnd reports whether all bytes have been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.data)
}

func (c *Cursor) truncated(want int) error {
	return &TruncatedStreamError{Pos: c.Pos(), Want: want, Have: c.Remaining()}
}

// ReadBytes returns the next n bytes.  The returned slice aliases the
// cursor's buffer and must not be modified.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, c.truncated(n)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if c.AtEnd() {
		return 0, c.truncated(1)
	}
	return c.data[c.pos], nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if c.Remaining() < n {
		return c.truncated(n)
	}
	c.pos += n
	return nil
}

// SkipToEnd advances the cursor past all remaining bytes.
func (c *Cursor) SkipToEnd() {
	c.pos = len(c.data)
}

// Unread moves the cursor back by n bytes.  It panics if the cursor is
// moved before the start of the buffer.
func (c *Cursor) Unread(n int) {
	if n > c.pos {
		panic("w2d: Unread past start of buffer")
	}
	c.pos -= n
}

// Between returns the bytes between the absolute offsets from and to.
// The slice aliases the cursor's buffer and must not be modified.
func (c *Cursor) Between(from, to int64) []byte {
	return c.data[from-c.base : to-c.base]
}

// ReadUint8 reads an unsigned byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	if c.AtEnd() {
		return 0, c.truncated(1)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	if c.Remaining() < 2 {
		return 0, c.truncated(2)
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, c.truncated(4)
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadInt8 reads a signed byte.
func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads a little-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads a little-endian IEEE-754 single-precision float.
func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadCount reads a count value.  The count is a single byte; if
// allowExtended is true and the byte is zero, a following little-endian
// uint16 is read and 256+value is returned, for counts up to 65791.
// Opcodes without extended-count support receive the byte unchanged.
func (c *Cursor) ReadCount(allowExtended bool) (int, error) {
	b, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	if b != 0 || !allowExtended {
		return int(b), nil
	}
	v, err := c.ReadUint16()
	if err != nil {
		return 0, err
	}
	return 256 + int(v), nil
}

// ReadGUID reads a 16-byte block identifier.
func (c *Cursor) ReadGUID() (GUID, error) {
	var g GUID
	if c.Remaining() < 16 {
		return g, c.truncated(16)
	}
	g.Data1, _ = c.ReadUint32()
	g.Data2, _ = c.ReadUint16()
	g.Data3, _ = c.ReadUint16()
	b, _ := c.ReadBytes(8)
	copy(g.Data4[:], b)
	return g, nil
}

// ReadPoint16 reads a point as two little-endian int16 values.
func (c *Cursor) ReadPoint16() (Point, error) {
	if c.Remaining() < 4 {
		return Point{}, c.truncated(4)
	}
	x, _ := c.ReadInt16()
	y, _ := c.ReadInt16()
	return Point{int32(x), int32(y)}, nil
}

// ReadPoint32 reads a point as two little-endian int32 values.
func (c *Cursor) ReadPoint32() (Point, error) {
	if c.Remaining() < 8 {
		return Point{}, c.truncated(8)
	}
	x, _ := c.ReadInt32()
	y, _ := c.ReadInt32()
	return Point{x, y}, nil
}

// SkipSpace advances the cursor past ASCII whitespace.
func (c *Cursor) SkipSpace() {
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' && b != '\f' {
			break
		}
		c.pos++
	}
}

// ReadToken reads one whitespace-delimited field of an extended ASCII
// record.  A field starting with a double quote is read as a quoted
// string via [Cursor.ReadQuoted]; otherwise the token extends to the
// next whitespace byte or parenthesis.
func (c *Cursor) ReadToken() (string, error) {
	c.SkipSpace()
	if c.AtEnd() {
		return "", c.truncated(1)
	}
	if c.data[c.pos] == '"' {
		return c.ReadQuoted()
	}
	start := c.pos
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' ||
			b == '(' || b == ')' {
			break
		}
		c.pos++
	}
	return string(c.data[start:c.pos]), nil
}

// ReadQuoted reads a double-quoted string.  Only the escape sequences
// `\"` and `\\` are recognised; any other backslash is kept literally.
func (c *Cursor) ReadQuoted() (string, error) {
	c.SkipSpace()
	start := c.Pos()
	b, err := c.ReadUint8()
	if err != nil {
		return "", err
	}
	if b != '"' {
		return "", &MalformedRecordError{Pos: start, Err: errors.New("expected quoted string")}
	}
	var res []byte
	for {
		b, err := c.ReadUint8()
		if err != nil {
			return "", &MalformedRecordError{Pos: start, Err: errors.New("unterminated quoted string")}
		}
		switch b {
		case '"':
			return string(res), nil
		case '\\':
			next, err := c.ReadUint8()
			if err != nil {
				return "", &MalformedRecordError{Pos: start, Err: errors.New("unterminated quoted string")}
			}
			if next == '"' || next == '\\' {
				res = append(res, next)
			} else {
				res = append(res, '\\', next)
			}
		default:
			res = append(res, b)
		}
	}
}
