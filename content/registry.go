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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/draftview/w2d"
)

// A Handler decodes the payload of one record.  For single-byte binary
// opcodes the cursor is the session cursor, positioned directly after
// the opcode byte; for the extended formats it covers exactly the
// record payload.  Handlers may mutate the session's graphics state and
// return the decoded record.
type Handler func(d *Decoder, c *w2d.Cursor, op w2d.Code) (Record, error)

// A Registry is a static table mapping (wire format, opcode identity)
// to handlers.  It is populated once at initialization; duplicate
// registration fails immediately rather than at decode time.
type Registry struct {
	binary [256]Handler
	ascii  map[string]Handler
	ext    map[uint16]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ascii: make(map[string]Handler),
		ext:   make(map[uint16]Handler),
	}
}

// Register binds a handler to an opcode identity.  Registering the same
// identity twice is an error.
func (r *Registry) Register(code w2d.Code, h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler for opcode %s", code)
	}
	switch code.Format {
	case w2d.Binary:
		if code.Value > 0xFF {
			return fmt.Errorf("binary opcode %s out of range", code)
		}
		if r.binary[code.Value] != nil {
			return fmt.Errorf("duplicate handler for opcode %s", code)
		}
		r.binary[code.Value] = h
	case w2d.ExtASCII:
		if code.Name == "" {
			return fmt.Errorf("empty mnemonic")
		}
		if _, ok := r.ascii[code.Name]; ok {
			return fmt.Errorf("duplicate handler for opcode %s", code)
		}
		r.ascii[code.Name] = h
	case w2d.ExtBinary:
		if _, ok := r.ext[code.Value]; ok {
			return fmt.Errorf("duplicate handler for opcode %s", code)
		}
		r.ext[code.Value] = h
	default:
		return fmt.Errorf("unknown wire format %d", code.Format)
	}
	return nil
}

func (r *Registry) mustRegister(code w2d.Code, h Handler) {
	if err := r.Register(code, h); err != nil {
		panic(err)
	}
}

// handler returns the handler for the given opcode identity, or nil.
func (r *Registry) handler(code w2d.Code) Handler {
	switch code.Format {
	case w2d.Binary:
		return r.binary[byte(code.Value)]
	case w2d.ExtASCII:
		return r.ascii[code.Name]
	case w2d.ExtBinary:
		return r.ext[code.Value]
	default:
		return nil
	}
}

// Codes returns all registered opcode identities, sorted by format,
// then by value or mnemonic.
func (r *Registry) Codes() []w2d.Code {
	var res []w2d.Code
	for v, h := range r.binary {
		if h != nil {
			res = append(res, w2d.BinaryCode(byte(v)))
		}
	}
	names := maps.Keys(r.ascii)
	slices.Sort(names)
	for _, name := range names {
		res = append(res, w2d.ASCIICode(name))
	}
	values := maps.Keys(r.ext)
	slices.Sort(values)
	for _, v := range values {
		res = append(res, w2d.ExtBinaryCode(v))
	}
	return res
}

// Builtin returns a registry with all standard opcode handlers.
func Builtin() *Registry {
	r := NewRegistry()

	r.mustRegister(w2d.BinaryCode(OpEndOfStream), handleEndOfStream)

	r.mustRegister(w2d.BinaryCode(OpSetColor), handleSetColor)
	r.mustRegister(w2d.BinaryCode(OpSetColorIndexed), handleSetColorIndexed)
	r.mustRegister(w2d.BinaryCode(OpSetBackground), handleSetBackground)
	r.mustRegister(w2d.BinaryCode(OpSetLineWeight), handleSetLineWeight)
	r.mustRegister(w2d.BinaryCode(OpFillOn), handleFill)
	r.mustRegister(w2d.BinaryCode(OpFillOff), handleFill)
	r.mustRegister(w2d.BinaryCode(OpVisibilityOn), handleVisibility)
	r.mustRegister(w2d.BinaryCode(OpVisibilityOff), handleVisibility)
	r.mustRegister(w2d.BinaryCode(OpSetMarkerSymbol), handleSetMarkerSymbol)
	r.mustRegister(w2d.BinaryCode(OpSetMarkerSize), handleSetMarkerSize)

	r.mustRegister(w2d.BinaryCode(OpLine), handleLine)
	r.mustRegister(w2d.BinaryCode(OpLineRel), handleLineRel)
	r.mustRegister(w2d.BinaryCode(OpPolyline), handlePolyline)
	r.mustRegister(w2d.BinaryCode(OpPolylineRel), handlePolylineRel)
	r.mustRegister(w2d.BinaryCode(OpCircle), handleCircle)
	r.mustRegister(w2d.BinaryCode(OpEllipse), handleEllipse)
	r.mustRegister(w2d.BinaryCode(OpText), handleText)
	r.mustRegister(w2d.BinaryCode(OpMarker), handleMarker)
	r.mustRegister(w2d.BinaryCode(OpMoveTo), handleMoveTo)
	r.mustRegister(w2d.BinaryCode(OpSetOrigin), handleSetOrigin)

	r.mustRegister(w2d.BinaryCode(OpSaveState), handleSaveState)
	r.mustRegister(w2d.BinaryCode(OpRestoreState), handleRestoreState)
	r.mustRegister(w2d.BinaryCode(OpResetState), handleResetState)

	r.mustRegister(w2d.ASCIICode(NameColor), asciiColor)
	r.mustRegister(w2d.ASCIICode(NameBackground), asciiBackground)
	r.mustRegister(w2d.ASCIICode(NameLayer), asciiLayer)
	r.mustRegister(w2d.ASCIICode(NameFont), asciiFont)
	r.mustRegister(w2d.ASCIICode(NameLineWeight), asciiLineWeight)
	r.mustRegister(w2d.ASCIICode(NameLinePattern), asciiLinePattern)
	r.mustRegister(w2d.ASCIICode(NameLineStyle), asciiLineStyle)
	r.mustRegister(w2d.ASCIICode(NameFillPattern), asciiFillPattern)
	r.mustRegister(w2d.ASCIICode(NameUnits), asciiUnits)
	r.mustRegister(w2d.ASCIICode(NameClip), asciiClip)
	r.mustRegister(w2d.ASCIICode(NameVisibility), asciiVisibility)
	r.mustRegister(w2d.ASCIICode(NameComment), asciiComment)

	r.mustRegister(w2d.ExtBinaryCode(ExtImage), extImage)
	r.mustRegister(w2d.ExtBinaryCode(ExtBlockRef), extBlockRef)
	r.mustRegister(w2d.ExtBinaryCode(ExtEncryptedSection), extEncryptedSection)

	return r
}
