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

// Package content decodes W2D opcode streams into typed drawing records
// and a consistent graphics state.
//
// One byte stream multiplexes three wire formats: single-byte binary
// opcodes, extended ASCII records "( Mnemonic ... )" and extended
// binary records "{ reserved size code payload }".  The [Decoder]
// classifies each record, resolves the handler registered for its
// opcode identity, invokes it, and delivers the resulting [Record] to a
// [Sink].  Decoding is single-threaded and owns its state exclusively,
// so independent streams can be decoded concurrently one session per
// goroutine without locking.
package content

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/draftview/w2d"
	"github.com/draftview/w2d/graphics"
)

// A Decoder drives one decode session.  The graphics state, the current
// position and the cursor are exclusively owned by the session; a
// Decoder must not be used from multiple goroutines at the same time.
type Decoder struct {
	// State is the graphics state mutated by attribute opcodes.  It is
	// reinitialised at the start of every Decode call.
	State *graphics.State

	// Transform maps decoded points to device space.  It is
	// configuration, not stream state: the correct scale and axis
	// convention come from the caller.
	Transform graphics.DeviceTransform

	// Sink receives the decoded records.  A nil sink discards them.
	Sink Sink

	registry *Registry

	// pos is the current position for relative opcodes, threaded
	// explicitly through the session so that sessions never interfere.
	pos w2d.Point
}

// NewDecoder returns a decoder using the given registry and sink.  A
// nil registry means [Builtin].
func NewDecoder(reg *Registry, sink Sink) *Decoder {
	if reg == nil {
		reg = Builtin()
	}
	return &Decoder{
		State:     graphics.NewState(),
		Transform: graphics.NewDeviceTransform(1, false, 0),
		Sink:      sink,
		registry:  reg,
	}
}

// Position returns the current position in source logical units.
func (d *Decoder) Position() w2d.Point {
	return d.pos
}

// abs resolves an absolute wire coordinate against the origin offset.
func (d *Decoder) abs(p w2d.Point) w2d.Point {
	return p.Add(d.State.Origin)
}

// Decode decodes one opcode stream.  It dispatches records until the
// end of the buffer or an explicit end-of-stream opcode, delivering
// every record to the sink, and returns a summary of record counts.
//
// Per-record failures in the self-describing formats become
// [ErrorRecord] values in the output; only an
// [w2d.UnrecoverableStreamError] aborts the session.  Decoding the same
// buffer twice yields an identical record sequence: the graphics state
// and current position are reinitialised on every call.
func (d *Decoder) Decode(data []byte) (*Summary, error) {
	d.State = graphics.NewState()
	d.pos = w2d.Point{}

	sum := &Summary{ByError: make(map[string]int)}
	c := w2d.NewCursor(data)
	for !c.AtEnd() {
		rec, err := d.Dispatch(c)
		if err != nil {
			sum.ByError[errorKind(err)]++
			return sum, err
		}
		if err := d.emit(rec); err != nil {
			return sum, err
		}
		sum.count(rec)
		if _, done := rec.(EndOfStream); done {
			break
		}
	}
	return sum, nil
}

// Dispatch decodes a single record: classify, resolve the handler,
// invoke it, resynchronize.  Callers driving their own loop may stop
// between records; records are decoded atomically once begun.
//
// A non-nil error is always an *[w2d.UnrecoverableStreamError]; all
// other failures are returned as [ErrorRecord] values.
func (d *Decoder) Dispatch(c *w2d.Cursor) (Record, error) {
	b, err := classify(c)
	if err != nil {
		if b.code.Format == w2d.Binary {
			// truncation mid single-byte opcode cannot be resynchronized
			return nil, &w2d.UnrecoverableStreamError{Pos: b.start, Err: err}
		}
		return ErrorRecord{Op: b.code, Pos: b.start, Err: err}, nil
	}

	h := d.registry.handler(b.code)

	if b.code.Format == w2d.Binary {
		if h == nil {
			// the payload length of an unregistered binary opcode is
			// unknowable, so the next boundary cannot be found
			return nil, &w2d.UnrecoverableStreamError{
				Pos: b.start,
				Err: fmt.Errorf("no handler for opcode %s", b.code),
			}
		}
		rec, err := h(d, c, b.code)
		if err != nil {
			return nil, &w2d.UnrecoverableStreamError{
				Pos: b.start,
				Err: &w2d.OpcodeError{Code: b.code, Pos: b.start, Err: err},
			}
		}
		return rec, nil
	}

	// extended formats: the cursor already sits at the next boundary
	if h == nil {
		return Unknown{Op: b.code, Data: slices.Clone(b.body)}, nil
	}
	sub := w2d.NewCursorAt(b.body, b.bodyPos)
	rec, err := h(d, sub, b.code)
	if err != nil {
		opErr := &w2d.OpcodeError{Code: b.code, Pos: b.start, Err: err}
		return ErrorRecord{Op: b.code, Pos: b.start, Err: opErr}, nil
	}
	return rec, nil
}

func (d *Decoder) emit(rec Record) error {
	if d.Sink == nil {
		return nil
	}
	return d.Sink.Record(rec)
}

// A Summary counts the records of one decode session by kind.
type Summary struct {
	Records int // total records delivered to the sink
	Decoded int
	Unknown int
	Failed  int

	// ByError counts failures by error kind, including a session-fatal
	// error if one occurred.
	ByError map[string]int
}

func (s *Summary) count(rec Record) {
	s.Records++
	switch r := rec.(type) {
	case Unknown:
		s.Unknown++
	case ErrorRecord:
		s.Failed++
		s.ByError[errorKind(r.Err)]++
	default:
		s.Decoded++
	}
}

func (s *Summary) String() string {
	res := fmt.Sprintf("%d records: %d decoded, %d unknown, %d failed",
		s.Records, s.Decoded, s.Unknown, s.Failed)
	if len(s.ByError) > 0 {
		kinds := maps.Keys(s.ByError)
		slices.Sort(kinds)
		parts := make([]string, len(kinds))
		for i, k := range kinds {
			parts[i] = fmt.Sprintf("%s: %d", k, s.ByError[k])
		}
		res += " (" + strings.Join(parts, ", ") + ")"
	}
	return res
}

func errorKind(err error) string {
	var (
		trunc   *w2d.TruncatedStreamError
		enc     *w2d.EncodingError
		mal     *w2d.MalformedRecordError
		op      *w2d.OpcodeError
		unrecov *w2d.UnrecoverableStreamError
	)
	switch {
	case errors.As(err, &trunc):
		return "truncated stream"
	case errors.As(err, &enc):
		return "encoding error"
	case errors.As(err, &mal):
		return "malformed record"
	case errors.As(err, &op):
		return "opcode error"
	case errors.As(err, &unrecov):
		return "unrecoverable"
	default:
		return "other"
	}
}
