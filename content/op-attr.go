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
	"fmt"

	"seehuhn.de/go/geom/rect"

	"github.com/draftview/w2d"
	"github.com/draftview/w2d/graphics"
)

// Attribute opcode handlers.  Every handler applies its change to the
// session state before returning the record, so the sink always sees a
// state consistent with the records delivered so far.

// == Binary forms ===================================================

func handleSetColor(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	raw, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	col := graphics.Color{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}
	d.State.Color = col
	d.State.Modified = true
	return SetColor{Op: op, Color: col, Index: -1}, nil
}

func handleSetColorIndexed(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	idx, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	col := graphics.DefaultPalette[idx]
	d.State.Color = col
	d.State.Modified = true
	return SetColor{Op: op, Color: col, Index: int(idx)}, nil
}

func handleSetBackground(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	raw, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	col := graphics.Color{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}
	d.State.Background = col
	d.State.Modified = true
	return SetBackground{Op: op, Color: col}, nil
}

func handleSetLineWeight(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	w, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	d.State.LineWeight = w
	d.State.Modified = true
	return SetLineWeight{Op: op, Weight: w}, nil
}

// handleFill serves both the fill-on and fill-off opcodes.
func handleFill(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	on := byte(op.Value) == OpFillOn
	d.State.FillOn = on
	d.State.Modified = true
	return SetFill{Op: op, On: on}, nil
}

// handleVisibility serves both the visibility-on and -off opcodes.
func handleVisibility(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	on := byte(op.Value) == OpVisibilityOn
	d.State.Visible = on
	d.State.Modified = true
	return SetVisibility{Op: op, On: on}, nil
}

func handleSetMarkerSymbol(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	sym, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	d.State.MarkerSymbol = sym
	d.State.Modified = true
	return SetMarkerSymbol{Op: op, Symbol: sym}, nil
}

func handleSetMarkerSize(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	size, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	d.State.MarkerSize = size
	d.State.Modified = true
	return SetMarkerSize{Op: op, Size: size}, nil
}

func handleSetOrigin(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	origin, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	d.State.Origin = origin
	d.State.Modified = true
	// the pen is undefined after an origin change
	d.pos = origin
	return SetOrigin{Op: op, Origin: origin}, nil
}

// == Extended ASCII forms ===========================================

func asciiColor(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	col, err := colorField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.Color = col
	d.State.Modified = true
	return SetColor{Op: op, Color: col, Index: -1}, nil
}

func asciiBackground(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	col, err := colorField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.Background = col
	d.State.Modified = true
	return SetBackground{Op: op, Color: col}, nil
}

func asciiLayer(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	name, err := c.ReadToken()
	if err != nil {
		return nil, err
	}
	id, err := intField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.Layer = name
	d.State.LayerID = id
	d.State.Modified = true
	return SetLayer{Op: op, Name: name, ID: id}, nil
}

// asciiFont parses nested option groups like
// (Font (Name "Arial") (Height 40) (Rotation 90)).  Any subset of the
// options may appear, in any order; unknown options are skipped for
// forward compatibility.
func asciiFont(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	font := d.State.Font
	for {
		c.SkipSpace()
		if c.AtEnd() {
			break
		}
		open, _ := c.Peek()
		if open != '(' {
			return nil, errors.New("expected font option group")
		}
		c.Skip(1)
		optName, err := c.ReadToken()
		if err != nil {
			return nil, err
		}
		switch optName {
		case fontOptName:
			font.Name, err = c.ReadToken()
		case fontOptHeight:
			font.Height, err = floatField(c)
		case fontOptRotation:
			font.Rotation, err = floatField(c)
		case fontOptSpacing:
			font.Spacing, err = floatField(c)
		case fontOptScale:
			font.Scale, err = floatField(c)
		default:
			err = skipGroupBody(c)
		}
		if err != nil {
			return nil, err
		}
		c.SkipSpace()
		close, err := c.ReadUint8()
		if err != nil || close != ')' {
			return nil, fmt.Errorf("unterminated %s option", optName)
		}
	}
	d.State.Font = font
	d.State.Modified = true
	return SetFont{Op: op, Font: font}, nil
}

// skipGroupBody consumes the fields of an unrecognised option group up
// to, but not including, its closing parenthesis.  Groups may nest, and
// [Cursor.ReadToken] never consumes a parenthesis, so the brackets are
// consumed here and balanced by depth.
func skipGroupBody(c *w2d.Cursor) error {
	depth := 0
	for {
		c.SkipSpace()
		if c.AtEnd() {
			return nil
		}
		b, _ := c.Peek()
		switch b {
		case '(':
			depth++
			c.Skip(1)
		case ')':
			if depth == 0 {
				return nil
			}
			depth--
			c.Skip(1)
		default:
			if _, err := c.ReadToken(); err != nil {
				return err
			}
		}
	}
}

func asciiLineWeight(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	w, err := intField(c)
	if err != nil {
		return nil, err
	}
	if w < 0 {
		return nil, errors.New("negative line weight")
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.LineWeight = uint32(w)
	d.State.Modified = true
	return SetLineWeight{Op: op, Weight: uint32(w)}, nil
}

func asciiLinePattern(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	pat, err := intField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.LinePattern = pat
	d.State.Modified = true
	return SetLinePattern{Op: op, Pattern: pat}, nil
}

func asciiLineStyle(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	capVal, err := intField(c)
	if err != nil {
		return nil, err
	}
	joinVal, err := intField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	// out-of-range styles fall back to the defaults
	if capVal < 0 || capVal > 2 {
		capVal = 0
	}
	if joinVal < 0 || joinVal > 2 {
		joinVal = 0
	}
	d.State.LineCap = graphics.LineCapStyle(capVal)
	d.State.LineJoin = graphics.LineJoinStyle(joinVal)
	d.State.Modified = true
	return SetLineStyle{
		Op:   op,
		Cap:  graphics.LineCapStyle(capVal),
		Join: graphics.LineJoinStyle(joinVal),
	}, nil
}

func asciiFillPattern(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	pat, err := intField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.FillPattern = pat
	d.State.Modified = true
	return SetFillPattern{Op: op, Pattern: pat}, nil
}

func asciiUnits(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	scale, err := floatField(c)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, errors.New("unit scale must be positive")
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.UnitScale = scale
	d.State.Modified = true
	return SetUnits{Op: op, Scale: scale}, nil
}

func asciiClip(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	c.SkipSpace()
	if c.AtEnd() { // (Clip) clears the region
		d.State.Clip = rect.Rect{}
		d.State.Modified = true
		return SetClip{Op: op, On: false}, nil
	}
	var coords [4]float64
	for i := range coords {
		v, err := floatField(c)
		if err != nil {
			return nil, err
		}
		coords[i] = v
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	clip := rect.Rect{LLx: coords[0], LLy: coords[1], URx: coords[2], URy: coords[3]}
	d.State.Clip = clip
	d.State.Modified = true
	return SetClip{Op: op, Clip: clip, On: true}, nil
}

func asciiVisibility(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	on, err := boolField(c)
	if err != nil {
		return nil, err
	}
	if err := noMoreFields(c); err != nil {
		return nil, err
	}
	d.State.Visible = on
	d.State.Modified = true
	return SetVisibility{Op: op, On: on}, nil
}

func asciiComment(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	c.SkipSpace()
	raw, err := c.ReadBytes(c.Remaining())
	if err != nil {
		return nil, err
	}
	return Comment{Op: op, Text: string(raw)}, nil
}
