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
	"testing"

	"github.com/draftview/w2d"
)

func nopHandler(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error) {
	return Comment{Op: op}, nil
}

func TestRegisterDuplicate(t *testing.T) {
	codes := []w2d.Code{
		w2d.BinaryCode('Z'),
		w2d.ASCIICode("Custom"),
		w2d.ExtBinaryCode(0x7777),
	}
	for _, code := range codes {
		r := NewRegistry()
		if err := r.Register(code, nopHandler); err != nil {
			t.Fatalf("%s: first registration failed: %s", code, err)
		}
		if err := r.Register(code, nopHandler); err == nil {
			t.Errorf("%s: duplicate registration succeeded", code)
		}
	}
}

func TestRegisterNilHandler(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(w2d.BinaryCode('Z'), nil); err == nil {
		t.Error("nil handler registration succeeded")
	}
}

func TestRegisterEmptyMnemonic(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(w2d.ASCIICode(""), nopHandler); err == nil {
		t.Error("empty mnemonic registration succeeded")
	}
}

// TestBuiltinComplete checks that every opcode of the standard
// vocabulary resolves to a handler.
func TestBuiltinComplete(t *testing.T) {
	r := Builtin()

	binary := []byte{
		OpEndOfStream,
		OpSetColor, OpSetColorIndexed, OpSetBackground,
		OpLine, OpLineRel, OpPolyline, OpPolylineRel,
		OpCircle, OpEllipse, OpText, OpMarker,
		OpMoveTo, OpSetOrigin,
		OpSetLineWeight, OpFillOn, OpFillOff,
		OpVisibilityOn, OpVisibilityOff,
		OpSetMarkerSymbol, OpSetMarkerSize,
		OpSaveState, OpRestoreState, OpResetState,
	}
	for _, b := range binary {
		if r.handler(w2d.BinaryCode(b)) == nil {
			t.Errorf("no handler for %s", w2d.BinaryCode(b))
		}
	}

	ascii := []string{
		NameColor, NameBackground, NameLayer, NameFont,
		NameLineWeight, NameLinePattern, NameLineStyle,
		NameFillPattern, NameUnits, NameClip, NameVisibility,
		NameComment,
	}
	for _, name := range ascii {
		if r.handler(w2d.ASCIICode(name)) == nil {
			t.Errorf("no handler for %s", w2d.ASCIICode(name))
		}
	}

	for _, v := range []uint16{ExtImage, ExtBlockRef, ExtEncryptedSection} {
		if r.handler(w2d.ExtBinaryCode(v)) == nil {
			t.Errorf("no handler for %s", w2d.ExtBinaryCode(v))
		}
	}

	want := len(binary) + len(ascii) + 3
	if got := len(r.Codes()); got != want {
		t.Errorf("Codes() lists %d opcodes, want %d", got, want)
	}
}
