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

import "fmt"

// Point is a position in source logical units.  Depending on the opcode
// it was decoded from, a point is either absolute or relative to the
// current position.
type Point struct {
	X, Y int32
}

// Add returns the point translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Format identifies which of the three wire formats a record uses.
type Format uint8

// The three wire formats of a W2D stream.
const (
	Binary Format = iota // single-byte opcode with fixed or count-prefixed payload
	ExtASCII             // "( Mnemonic ... )"
	ExtBinary            // "{ reserved size code payload }"
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case ExtASCII:
		return "extended ASCII"
	case ExtBinary:
		return "extended binary"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Code is the identity of an opcode: the opcode byte for single-byte
// binary records, the 16-bit code for extended binary records, or the
// mnemonic for extended ASCII records.
type Code struct {
	Format Format
	Value  uint16 // Binary and ExtBinary only
	Name   string // ExtASCII only
}

// BinaryCode returns the Code for a single-byte binary opcode.
func BinaryCode(b byte) Code {
	return Code{Format: Binary, Value: uint16(b)}
}

// ASCIICode returns the Code for an extended ASCII mnemonic.
func ASCIICode(name string) Code {
	return Code{Format: ExtASCII, Name: name}
}

// ExtBinaryCode returns the Code for an extended binary opcode.
func ExtBinaryCode(v uint16) Code {
	return Code{Format: ExtBinary, Value: v}
}

func (c Code) String() string {
	switch c.Format {
	case Binary:
		b := byte(c.Value)
		if b >= 0x21 && b <= 0x7E {
			return fmt.Sprintf("0x%02X %q", b, b)
		}
		return fmt.Sprintf("0x%02X", b)
	case ExtASCII:
		return "(" + c.Name + ")"
	case ExtBinary:
		return fmt.Sprintf("{0x%04X}", c.Value)
	default:
		return fmt.Sprintf("Code(%d,%d,%q)", c.Format, c.Value, c.Name)
	}
}
