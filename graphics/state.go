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

// Package graphics holds the mutable drawing attribute state of a W2D
// decode session, its save/restore stack, and the logical-to-device
// coordinate transform.
package graphics

import (
	"seehuhn.de/go/geom/rect"

	"github.com/draftview/w2d"
)

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// LineCapStyle is the style of the end of a line.
type LineCapStyle uint8

// Possible values for LineCapStyle.
const (
	LineCapButt   LineCapStyle = 0
	LineCapRound  LineCapStyle = 1
	LineCapSquare LineCapStyle = 2
)

// LineJoinStyle is the style of the corner between two line segments.
type LineJoinStyle uint8

// Possible values for LineJoinStyle.
const (
	LineJoinMiter LineJoinStyle = 0
	LineJoinRound LineJoinStyle = 1
	LineJoinBevel LineJoinStyle = 2
)

// FontInfo describes the font used for subsequent text opcodes.  Only
// the descriptor is tracked; glyph shaping and embedding happen in the
// rendering backend.
type FontInfo struct {
	Name     string
	Height   float64
	Rotation float64 // degrees, counter-clockwise
	Spacing  float64 // inter-character spacing factor
	Scale    float64 // horizontal width scale
}

// Parameters collects all drawing attributes consulted by the opcode
// handlers.  A single Parameters value is exclusively owned by one
// decode session.
type Parameters struct {
	Color      Color
	Background Color

	FillOn      bool
	FillPattern int

	LineWeight  uint32
	LineCap     LineCapStyle
	LineJoin    LineJoinStyle
	LinePattern int

	Font FontInfo

	// Origin is the offset added to absolute coordinates, in source
	// logical units.
	Origin w2d.Point

	// UnitScale is the logical-unit scale factor set by the Units
	// opcode.
	UnitScale float64

	Visible bool

	Layer   string
	LayerID int

	// Clip is the active clip region in source logical units.  The
	// zero rectangle means no clipping.
	Clip rect.Rect

	MarkerSymbol uint8
	MarkerSize   uint16
}

// Clone returns a copy of the parameters.  Parameters contain no
// reference types, so a value copy is a deep copy.
func (p *Parameters) Clone() *Parameters {
	res := *p
	return &res
}

// State is the graphics state of one decode session: the current
// attribute set plus the save/restore stack.
type State struct {
	*Parameters

	// Modified is false until the first attribute-setting opcode of the
	// session (or after a reset).
	Modified bool

	stack []*Parameters
}

// NewState returns a graphics state with the documented defaults:
// opaque black color, fill off, visibility on, unit scale 1, no clip
// region, no active layer.
func NewState() *State {
	return &State{Parameters: defaultParameters()}
}

func defaultParameters() *Parameters {
	return &Parameters{
		Color:      Black,
		Background: White,
		FillOn:     false,
		LineWeight: 1,
		LineCap:    LineCapButt,
		LineJoin:   LineJoinMiter,
		Font:       FontInfo{Height: 1, Spacing: 1, Scale: 1},
		UnitScale:  1,
		Visible:    true,
	}
}

// Save pushes a deep copy of the current parameters onto the stack.
// Later mutations never alias the pushed snapshot.
func (s *State) Save() {
	s.stack = append(s.stack, s.Parameters.Clone())
}

// Restore replaces the current parameters with the most recent
// snapshot.  Restoring with an empty stack is a no-op, never an error,
// and reports whether a snapshot was applied.
func (s *State) Restore() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.Parameters = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Reset clears the stack and reinitialises all parameters to their
// defaults.
func (s *State) Reset() {
	s.Parameters = defaultParameters()
	s.Modified = false
	s.stack = s.stack[:0]
}

// Depth returns the number of saved snapshots.
func (s *State) Depth() int {
	return len(s.stack)
}

// HasClip reports whether a clip region is active.
func (s *State) HasClip() bool {
	return !s.Clip.IsZero()
}
