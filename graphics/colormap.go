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

package graphics

// DefaultPalette is the 256-entry color map used by the indexed color
// opcode: 16 standard colors, a 6x6x6 color cube, and a 24-step gray
// ramp.  All entries are fully opaque.
var DefaultPalette [256]Color

var standardColors = [16]Color{
	{0, 0, 0, 255},       // black
	{128, 0, 0, 255},     // maroon
	{0, 128, 0, 255},     // green
	{128, 128, 0, 255},   // olive
	{0, 0, 128, 255},     // navy
	{128, 0, 128, 255},   // purple
	{0, 128, 128, 255},   // teal
	{192, 192, 192, 255}, // silver
	{128, 128, 128, 255}, // gray
	{255, 0, 0, 255},     // red
	{0, 255, 0, 255},     // lime
	{255, 255, 0, 255},   // yellow
	{0, 0, 255, 255},     // blue
	{255, 0, 255, 255},   // magenta
	{0, 255, 255, 255},   // cyan
	{255, 255, 255, 255}, // white
}

func init() {
	copy(DefaultPalette[:16], standardColors[:])

	ramp := [6]uint8{0, 51, 102, 153, 204, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				i := 16 + 36*r + 6*g + b
				DefaultPalette[i] = Color{ramp[r], ramp[g], ramp[b], 255}
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		DefaultPalette[232+i] = Color{v, v, v, 255}
	}
}
