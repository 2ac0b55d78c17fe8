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

	"github.com/draftview/w2d"
)

// Drawing opcode handlers.  Absolute coordinates are resolved against
// the origin offset, relative ones against the current position.  The
// current position ends up at the last vertex of line and polyline
// records and is left alone by circles, ellipses, text and markers.

func handleLine(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	p1, err := c.ReadPoint16()
	if err != nil {
		return nil, err
	}
	p2, err := c.ReadPoint16()
	if err != nil {
		return nil, err
	}
	from := d.abs(p1)
	to := d.abs(p2)
	d.pos = to
	return Line{Op: op, From: from, To: to}, nil
}

func handleLineRel(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	d1, err := c.ReadPoint16()
	if err != nil {
		return nil, err
	}
	d2, err := c.ReadPoint16()
	if err != nil {
		return nil, err
	}
	from := d.pos.Add(d1)
	to := from.Add(d2)
	d.pos = to
	return Line{Op: op, From: from, To: to}, nil
}

func handlePolyline(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	count, err := c.ReadCount(true)
	if err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, errors.New("polyline needs at least 2 vertices")
	}
	points := make([]w2d.Point, count)
	for i := range points {
		p, err := c.ReadPoint16()
		if err != nil {
			return nil, err
		}
		points[i] = d.abs(p)
	}
	d.pos = points[count-1]
	return Polyline{Op: op, Points: points}, nil
}

func handlePolylineRel(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	count, err := c.ReadCount(true)
	if err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, errors.New("polyline needs at least 2 vertices")
	}
	points := make([]w2d.Point, count)
	cur := d.pos
	for i := range points {
		delta, err := c.ReadPoint16()
		if err != nil {
			return nil, err
		}
		cur = cur.Add(delta)
		points[i] = cur
	}
	d.pos = cur
	return Polyline{Op: op, Points: points}, nil
}

func handleCircle(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	center, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	radius, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	return Circle{Op: op, Center: d.abs(center), Radius: radius}, nil
}

func handleEllipse(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	center, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	rx, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	ry, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	tilt, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	return Ellipse{Op: op, Center: d.abs(center), Rx: rx, Ry: ry, Tilt: tilt}, nil
}

func handleMarker(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	at, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	return Marker{Op: op, At: d.abs(at)}, nil
}

func handleMoveTo(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	to, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	d.pos = d.abs(to)
	return MoveTo{Op: op, To: d.pos}, nil
}
