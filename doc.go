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

// Package w2d provides the primitive codec and shared types for decoding
// W2D drawing streams.
//
// A W2D stream multiplexes three wire formats over a single byte
// sequence: single-byte binary opcodes with fixed or count-prefixed
// payloads, extended ASCII records of the form "( Mnemonic ... )", and
// extended binary records of the form "{ reserved size code payload }".
// This package contains the bounds-checked [Cursor] used to read scalar
// fields in all three formats, together with the error taxonomy shared
// by the higher-level packages:
//
//   - [github.com/draftview/w2d/content] classifies records and
//     dispatches them to opcode handlers.
//   - [github.com/draftview/w2d/graphics] holds the drawing attribute
//     state and the logical-to-device coordinate transform.
//
// Typical use goes through the content package:
//
//	rec := &content.Recorder{}
//	dec := content.NewDecoder(nil, rec)
//	summary, err := dec.Decode(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	... use rec.Records and summary ...
package w2d
