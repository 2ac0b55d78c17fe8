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
	"seehuhn.de/go/geom/rect"

	"github.com/draftview/w2d"
	"github.com/draftview/w2d/graphics"
)

// A Record is one decoded opcode.  Records are immutable values,
// produced by a handler and delivered to the sink exactly once.
type Record interface {
	// Code returns the opcode identity the record was decoded from.
	Code() w2d.Code
}

// A Sink receives decoded records in stream order.  Records are never
// dropped: unknown opcodes and recoverable decode failures arrive as
// [Unknown] and [ErrorRecord] values.  The decoder never blocks on sink
// I/O; backpressure is the sink's own concern.
type Sink interface {
	Record(rec Record) error
}

// A Recorder is a Sink that accumulates all records in memory.
type Recorder struct {
	Records []Record
}

// Record appends rec to the recorded sequence.
func (r *Recorder) Record(rec Record) error {
	r.Records = append(r.Records, rec)
	return nil
}

// Drawing records.  All coordinates are absolute source logical units;
// relative opcodes are resolved against the current position before the
// record is built.

// Line is a single line segment.
type Line struct {
	Op       w2d.Code
	From, To w2d.Point
}

func (r Line) Code() w2d.Code { return r.Op }

// Polyline is a connected sequence of line segments.
type Polyline struct {
	Op     w2d.Code
	Points []w2d.Point
}

func (r Polyline) Code() w2d.Code { return r.Op }

// Circle is a full circle.
type Circle struct {
	Op     w2d.Code
	Center w2d.Point
	Radius uint32
}

func (r Circle) Code() w2d.Code { return r.Op }

// Ellipse is an axis-aligned ellipse, optionally tilted.
type Ellipse struct {
	Op     w2d.Code
	Center w2d.Point
	Rx, Ry uint32
	Tilt   uint16 // 1/65536 of a revolution
}

func (r Ellipse) Code() w2d.Code { return r.Op }

// Text is a text run anchored at a point.
type Text struct {
	Op     w2d.Code
	Anchor w2d.Point
	Value  string
	RTL    bool // true if the run reads right-to-left
}

func (r Text) Code() w2d.Code { return r.Op }

// Marker draws the current marker symbol at a point.
type Marker struct {
	Op w2d.Code
	At w2d.Point
}

func (r Marker) Code() w2d.Code { return r.Op }

// MoveTo sets the current position without drawing.
type MoveTo struct {
	Op w2d.Code
	To w2d.Point
}

func (r MoveTo) Code() w2d.Code { return r.Op }

// Attribute records.  Each one has already been applied to the session
// state when it reaches the sink.

// SetColor sets the foreground color.  Index is the palette index for
// the indexed form, or -1 for direct RGBA.
type SetColor struct {
	Op    w2d.Code
	Color graphics.Color
	Index int
}

func (r SetColor) Code() w2d.Code { return r.Op }

// SetBackground sets the background color.
type SetBackground struct {
	Op    w2d.Code
	Color graphics.Color
}

func (r SetBackground) Code() w2d.Code { return r.Op }

// SetFill switches area fill on or off.
type SetFill struct {
	Op w2d.Code
	On bool
}

func (r SetFill) Code() w2d.Code { return r.Op }

// SetFillPattern selects the fill pattern.
type SetFillPattern struct {
	Op      w2d.Code
	Pattern int
}

func (r SetFillPattern) Code() w2d.Code { return r.Op }

// SetVisibility switches drawing visibility.
type SetVisibility struct {
	Op w2d.Code
	On bool
}

func (r SetVisibility) Code() w2d.Code { return r.Op }

// SetLineWeight sets the line weight in logical units.
type SetLineWeight struct {
	Op     w2d.Code
	Weight uint32
}

func (r SetLineWeight) Code() w2d.Code { return r.Op }

// SetLineStyle sets the cap and join styles.
type SetLineStyle struct {
	Op   w2d.Code
	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle
}

func (r SetLineStyle) Code() w2d.Code { return r.Op }

// SetLinePattern selects the line dash pattern.
type SetLinePattern struct {
	Op      w2d.Code
	Pattern int
}

func (r SetLinePattern) Code() w2d.Code { return r.Op }

// SetMarkerSymbol selects the marker glyph.
type SetMarkerSymbol struct {
	Op     w2d.Code
	Symbol uint8
}

func (r SetMarkerSymbol) Code() w2d.Code { return r.Op }

// SetMarkerSize sets the marker size in logical units.
type SetMarkerSize struct {
	Op   w2d.Code
	Size uint16
}

func (r SetMarkerSize) Code() w2d.Code { return r.Op }

// SetLayer sets the active layer.
type SetLayer struct {
	Op   w2d.Code
	Name string
	ID   int
}

func (r SetLayer) Code() w2d.Code { return r.Op }

// SetFont sets the font descriptor for subsequent text.
type SetFont struct {
	Op   w2d.Code
	Font graphics.FontInfo
}

func (r SetFont) Code() w2d.Code { return r.Op }

// SetUnits sets the logical-unit scale factor.
type SetUnits struct {
	Op    w2d.Code
	Scale float64
}

func (r SetUnits) Code() w2d.Code { return r.Op }

// SetClip sets or clears the clip region (logical units).
type SetClip struct {
	Op   w2d.Code
	Clip rect.Rect
	On   bool
}

func (r SetClip) Code() w2d.Code { return r.Op }

// SetOrigin sets the origin offset.
type SetOrigin struct {
	Op     w2d.Code
	Origin w2d.Point
}

func (r SetOrigin) Code() w2d.Code { return r.Op }

// Control records.

// SaveState pushed a snapshot of the graphics state.
type SaveState struct {
	Op w2d.Code
}

func (r SaveState) Code() w2d.Code { return r.Op }

// RestoreState popped a snapshot.  Restored is false when the stack was
// empty and the opcode was a no-op.
type RestoreState struct {
	Op       w2d.Code
	Restored bool
}

func (r RestoreState) Code() w2d.Code { return r.Op }

// ResetState reinitialised the graphics state and cleared the stack.
type ResetState struct {
	Op w2d.Code
}

func (r ResetState) Code() w2d.Code { return r.Op }

// EndOfStream terminates the session.
type EndOfStream struct {
	Op w2d.Code
}

func (r EndOfStream) Code() w2d.Code { return r.Op }

// Comment is free text with no state effect.
type Comment struct {
	Op   w2d.Code
	Text string
}

func (r Comment) Code() w2d.Code { return r.Op }

// Payload records.

// Image is a compressed image payload.  The blob is passed through
// untouched; codec work belongs to the rendering backend.
type Image struct {
	Op       w2d.Code
	Format   uint16
	Min, Max w2d.Point // bounds in logical units
	Data     []byte
}

func (r Image) Code() w2d.Code { return r.Op }

// BlockRef references an external block by GUID.
type BlockRef struct {
	Op w2d.Code
	ID w2d.GUID
}

func (r BlockRef) Code() w2d.Code { return r.Op }

// EncryptedSection is an opaque encrypted payload.  It is surfaced to
// the sink but never validated or decrypted.
type EncryptedSection struct {
	Op   w2d.Code
	Data []byte
}

func (r EncryptedSection) Code() w2d.Code { return r.Op }

// Unknown is a record whose opcode has no registered handler.  The raw
// payload is preserved so that nothing is silently dropped.
type Unknown struct {
	Op   w2d.Code
	Data []byte
}

func (r Unknown) Code() w2d.Code { return r.Op }

// ErrorRecord marks a record that could not be decoded but whose extent
// was known, so the session continued at the next boundary.
type ErrorRecord struct {
	Op  w2d.Code
	Pos int64
	Err error
}

func (r ErrorRecord) Code() w2d.Code { return r.Op }
