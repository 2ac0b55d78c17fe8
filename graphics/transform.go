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

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/draftview/w2d"
)

// DeviceTransform maps points from source logical units to device
// space.  Scale and FlipY are configuration: the correct axis/origin
// convention depends on the header and unit opcodes of the stream and
// differs between producers, so neither value is hardcoded.
type DeviceTransform struct {
	// Scale is the logical-to-device scale factor.
	Scale float64

	// FlipY mirrors the Y axis: y' = PageHeight - y*Scale.  Set this
	// for streams authored with a Y-up origin when the device is
	// Y-down (or vice versa).
	FlipY bool

	// PageHeight is the device-space page height used when FlipY is
	// set.
	PageHeight float64
}

// NewDeviceTransform returns a transform with the given configuration.
func NewDeviceTransform(scale float64, flipY bool, pageHeight float64) DeviceTransform {
	return DeviceTransform{Scale: scale, FlipY: flipY, PageHeight: pageHeight}
}

// ToDevice maps a logical point to device space.
func (t DeviceTransform) ToDevice(p w2d.Point) vec.Vec2 {
	x := float64(p.X) * t.Scale
	y := float64(p.Y) * t.Scale
	if t.FlipY {
		y = t.PageHeight - y
	}
	return vec.Vec2{X: x, Y: y}
}

// RectToDevice maps an axis-aligned logical rectangle to device space.
// The corners are normalised so that the result has its lower-left
// corner at (LLx, LLy) even when FlipY swaps the corners.
func (t DeviceTransform) RectToDevice(min, max w2d.Point) rect.Rect {
	a := t.ToDevice(min)
	b := t.ToDevice(max)
	if a.X > b.X {
		a.X, b.X = b.X, a.X
	}
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return rect.Rect{LLx: a.X, LLy: a.Y, URx: b.X, URy: b.Y}
}
