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

package w2d

import (
	"errors"
	"strconv"
)

// TruncatedStreamError indicates that a read reached the end of the
// stream before the required number of bytes was available.
type TruncatedStreamError struct {
	Pos  int64 // byte offset where the read started
	Want int   // bytes required
	Have int   // bytes remaining
}

func (err *TruncatedStreamError) Error() string {
	return "truncated stream at byte " + strconv.FormatInt(err.Pos, 10) +
		": need " + strconv.Itoa(err.Want) + " bytes, have " + strconv.Itoa(err.Have)
}

// MalformedRecordError indicates a structural violation in a record,
// for example a missing closing brace or an unterminated parenthesis.
type MalformedRecordError struct {
	Pos int64
	Err error
}

func (err *MalformedRecordError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "malformed record at byte " + strconv.FormatInt(err.Pos, 10) + middle
}

func (err *MalformedRecordError) Unwrap() error {
	return err.Err
}

// EncodingError indicates that a text payload could not be decoded, for
// example an unpaired UTF-16 surrogate.  Invalid text is never silently
// substituted.
type EncodingError struct {
	Pos int64
	Err error
}

func (err *EncodingError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "text encoding error at byte " + strconv.FormatInt(err.Pos, 10) + middle
}

func (err *EncodingError) Unwrap() error {
	return err.Err
}

// OpcodeError indicates that a handler failed to decode the payload of
// an otherwise well-framed record.
type OpcodeError struct {
	Code Code
	Pos  int64
	Err  error
}

func (err *OpcodeError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "opcode " + err.Code.String() + " at byte " +
		strconv.FormatInt(err.Pos, 10) + middle
}

func (err *OpcodeError) Unwrap() error {
	return err.Err
}

// UnrecoverableStreamError indicates that the decoder cannot find the
// next record boundary and the session must be abandoned.
type UnrecoverableStreamError struct {
	Pos int64
	Err error
}

func (err *UnrecoverableStreamError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "unrecoverable stream error at byte " + strconv.FormatInt(err.Pos, 10) + middle
}

func (err *UnrecoverableStreamError) Unwrap() error {
	return err.Err
}

// IsTruncated reports whether err is (or wraps) a TruncatedStreamError.
func IsTruncated(err error) bool {
	var trunc *TruncatedStreamError
	return errors.As(err, &trunc)
}
