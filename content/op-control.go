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
	"golang.org/x/exp/slices"

	"github.com/draftview/w2d"
)

// Control opcode and extended binary payload handlers.

func handleSaveState(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	d.State.Save()
	return SaveState{Op: op}, nil
}

func handleRestoreState(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	restored := d.State.Restore()
	return RestoreState{Op: op, Restored: restored}, nil
}

func handleResetState(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	d.State.Reset()
	return ResetState{Op: op}, nil
}

func handleEndOfStream(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	return EndOfStream{Op: op}, nil
}

// extImage surfaces a compressed image payload.  The blob is an opaque
// unit of work for the rendering backend; no codec runs here.
func extImage(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	format, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	min, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	max, err := c.ReadPoint32()
	if err != nil {
		return nil, err
	}
	blob, err := c.ReadBytes(c.Remaining())
	if err != nil {
		return nil, err
	}
	return Image{
		Op:     op,
		Format: format,
		Min:    d.abs(min),
		Max:    d.abs(max),
		Data:   slices.Clone(blob),
	}, nil
}

func extBlockRef(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	id, err := c.ReadGUID()
	if err != nil {
		return nil, err
	}
	return BlockRef{Op: op, ID: id}, nil
}

// extEncryptedSection passes an encrypted payload through without
// validation; decryption is outside the decoder's contract.
func extEncryptedSection(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	blob, err := c.ReadBytes(c.Remaining())
	if err != nil {
		return nil, err
	}
	return EncryptedSection{Op: op, Data: slices.Clone(blob)}, nil
}
