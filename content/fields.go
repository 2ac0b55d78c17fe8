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
	"fmt"
	"strconv"

	"github.com/draftview/w2d"
	"github.com/draftview/w2d/graphics"
)

// Field parsers for extended ASCII record payloads.

func intField(c *w2d.Cursor) (int, error) {
	tok, err := c.ReadToken()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", tok)
	}
	return v, nil
}

func floatField(c *w2d.Cursor) (float64, error) {
	tok, err := c.ReadToken()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", tok)
	}
	return v, nil
}

func boolField(c *w2d.Cursor) (bool, error) {
	tok, err := c.ReadToken()
	if err != nil {
		return false, err
	}
	switch tok {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q", tok)
}

func colorField(c *w2d.Cursor) (graphics.Color, error) {
	var channels [4]uint8
	for i := range channels {
		v, err := intField(c)
		if err != nil {
			return graphics.Color{}, err
		}
		if v < 0 || v > 255 {
			return graphics.Color{}, fmt.Errorf("color channel %d out of range", v)
		}
		channels[i] = uint8(v)
	}
	return graphics.Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// noMoreFields checks that the record payload is exhausted.
func noMoreFields(c *w2d.Cursor) error {
	c.SkipSpace()
	if !c.AtEnd() {
		tok, _ := c.ReadToken()
		return fmt.Errorf("unexpected field %q", tok)
	}
	return nil
}
