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

// Single-byte binary opcodes.  The byte value is the opcode identity.
// Lowercase variants of drawing opcodes take coordinates relative to
// the current position.
const (
	OpEndOfStream byte = 0x00

	OpSetColor        byte = 'C' // R, G, B, A
	OpSetColorIndexed byte = 'c' // palette index
	OpSetBackground   byte = 'B' // R, G, B, A

	OpLine        byte = 'L' // x1 y1 x2 y2, int16 absolute
	OpLineRel     byte = 'l' // deltas from current position
	OpPolyline    byte = 'P' // extended count, then int16 pairs
	OpPolylineRel byte = 'p'
	OpCircle      byte = 'R' // center int32 pair, radius uint32
	OpEllipse     byte = 'E' // center, rx, ry, tilt
	OpText        byte = 'T' // anchor, extended count, UTF-16LE
	OpMarker      byte = 'D' // draw marker at int32 point

	OpMoveTo    byte = 'M' // set current position
	OpSetOrigin byte = 'O' // set origin offset

	OpSetLineWeight   byte = 'W'
	OpFillOn          byte = 'F'
	OpFillOff         byte = 'f'
	OpVisibilityOn    byte = 'V'
	OpVisibilityOff   byte = 'v'
	OpSetMarkerSymbol byte = 'K'
	OpSetMarkerSize   byte = 'k'

	OpSaveState    byte = 'S'
	OpRestoreState byte = 's'
	OpResetState   byte = 'N'
)

// Extended ASCII mnemonics.
const (
	NameColor       = "Color"
	NameBackground  = "Background"
	NameLayer       = "Layer"
	NameFont        = "Font"
	NameLineWeight  = "LineWeight"
	NameLinePattern = "LinePattern"
	NameLineStyle   = "LineStyle"
	NameFillPattern = "FillPattern"
	NameUnits       = "Units"
	NameClip        = "Clip"
	NameVisibility  = "Visibility"
	NameComment     = "Comment"
)

// Nested option groups of the Font mnemonic.
const (
	fontOptName     = "Name"
	fontOptHeight   = "Height"
	fontOptRotation = "Rotation"
	fontOptSpacing  = "Spacing"
	fontOptScale    = "Scale"
)

// Extended binary opcodes.
const (
	ExtImage            uint16 = 0x0001 // compressed image, payload stays opaque
	ExtBlockRef         uint16 = 0x0002 // 16-byte GUID
	ExtEncryptedSection uint16 = 0x0003 // opaque, never validated
)
