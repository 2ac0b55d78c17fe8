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
	"encoding/binary"
	"errors"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"

	"github.com/draftview/w2d"
	"github.com/draftview/w2d/graphics"
)

// stream builds test opcode streams.
type stream struct {
	buf []byte
}

func (s *stream) bytes(bb ...byte) *stream {
	s.buf = append(s.buf, bb...)
	return s
}

func (s *stream) str(text string) *stream {
	s.buf = append(s.buf, text...)
	return s
}

func (s *stream) i16(vv ...int16) *stream {
	for _, v := range vv {
		s.buf = binary.LittleEndian.AppendUint16(s.buf, uint16(v))
	}
	return s
}

func (s *stream) i32(vv ...int32) *stream {
	for _, v := range vv {
		s.buf = binary.LittleEndian.AppendUint32(s.buf, uint32(v))
	}
	return s
}

func (s *stream) u32(v uint32) *stream {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, v)
	return s
}

func (s *stream) utf16le(text string) *stream {
	for _, u := range utf16.Encode([]rune(text)) {
		s.buf = binary.LittleEndian.AppendUint16(s.buf, u)
	}
	return s
}

func decodeAll(t *testing.T, data []byte) (*Recorder, *Summary, *Decoder) {
	t.Helper()
	rec := &Recorder{}
	dec := NewDecoder(nil, rec)
	sum, err := dec.Decode(data)
	if err != nil {
		t.Fatalf("unexpected decode error: %s", err)
	}
	return rec, sum, dec
}

func TestDecodeSequence(t *testing.T) {
	s := &stream{}
	s.str(`(Color 255 0 0 255)`)
	s.bytes(OpMoveTo).i32(100, 200)
	s.bytes(OpLineRel).i16(10, 10, 5, 0)
	s.bytes(OpLine).i16(0, 0, 50, 60)
	s.bytes(OpPolyline, 3).i16(1, 1, 2, 2, 3, 3)
	s.bytes(OpEndOfStream)

	rec, sum, _ := decodeAll(t, s.buf)

	want := []Record{
		SetColor{
			Op:    w2d.ASCIICode(NameColor),
			Color: graphics.Color{R: 255, A: 255},
			Index: -1,
		},
		MoveTo{Op: w2d.BinaryCode(OpMoveTo), To: w2d.Point{X: 100, Y: 200}},
		Line{
			Op:   w2d.BinaryCode(OpLineRel),
			From: w2d.Point{X: 110, Y: 210},
			To:   w2d.Point{X: 115, Y: 210},
		},
		Line{
			Op: w2d.BinaryCode(OpLine),
			To: w2d.Point{X: 50, Y: 60},
		},
		Polyline{
			Op: w2d.BinaryCode(OpPolyline),
			Points: []w2d.Point{
				{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3},
			},
		},
		EndOfStream{Op: w2d.BinaryCode(OpEndOfStream)},
	}
	if d := cmp.Diff(want, rec.Records); d != "" {
		t.Errorf("record sequence differs (-want +got):\n%s", d)
	}
	if sum.Records != 6 || sum.Decoded != 6 || sum.Unknown != 0 || sum.Failed != 0 {
		t.Errorf("summary = %s", sum)
	}
}

// TestDecodeTwiceIdentical checks that decoding is restartable: the
// same buffer decoded twice through the same decoder yields an
// identical record sequence.
func TestDecodeTwiceIdentical(t *testing.T) {
	s := &stream{}
	s.str(`(Layer "walls" 4)`)
	s.bytes(OpSetColor, 1, 2, 3, 4)
	s.bytes(OpMoveTo).i32(10, 10)
	s.bytes(OpLineRel).i16(1, 1, 1, 1)
	s.bytes(OpSaveState, OpRestoreState)
	s.bytes(OpEndOfStream)

	first, _, dec := decodeAll(t, s.buf)

	second := &Recorder{}
	dec.Sink = second
	if _, err := dec.Decode(s.buf); err != nil {
		t.Fatalf("second decode failed: %s", err)
	}
	if d := cmp.Diff(first.Records, second.Records); d != "" {
		t.Errorf("second decode differs (-first +second):\n%s", d)
	}
}

func TestUnknownExtBinaryContinues(t *testing.T) {
	s := &stream{}
	s.bytes(extFrame(0x00FE, []byte{0xAA, 0xBB})...)
	s.bytes(OpLine).i16(0, 0, 1, 1)
	s.bytes(OpEndOfStream)

	rec, sum, _ := decodeAll(t, s.buf)

	if sum.Unknown != 1 || sum.Decoded != 2 || sum.Failed != 0 {
		t.Fatalf("summary = %s", sum)
	}
	unk, ok := rec.Records[0].(Unknown)
	if !ok {
		t.Fatalf("first record is %T, want Unknown", rec.Records[0])
	}
	if unk.Op != w2d.ExtBinaryCode(0x00FE) {
		t.Errorf("unknown code = %s, want {0x00FE}", unk.Op)
	}
	if string(unk.Data) != "\xAA\xBB" {
		t.Errorf("unknown payload = % x", unk.Data)
	}
}

func TestUnknownBinaryIsFatal(t *testing.T) {
	// 0x7F is not a registered opcode and its payload length is
	// unknowable, so the session cannot resynchronize
	dec := NewDecoder(nil, &Recorder{})
	_, err := dec.Decode([]byte{0x7F, 1, 2, 3})
	var fatal *w2d.UnrecoverableStreamError
	if !errors.As(err, &fatal) {
		t.Fatalf("got %v, want UnrecoverableStreamError", err)
	}
}

func TestTruncatedExtBinaryRecovers(t *testing.T) {
	s := &stream{}
	s.bytes(OpLine).i16(0, 0, 1, 1)
	frame := extFrame(ExtImage, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	s.bytes(frame[:len(frame)-6]...) // cut mid payload

	rec, sum, _ := decodeAll(t, s.buf)

	if len(rec.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(rec.Records))
	}
	errRec, ok := rec.Records[1].(ErrorRecord)
	if !ok {
		t.Fatalf("second record is %T, want ErrorRecord", rec.Records[1])
	}
	if !w2d.IsTruncated(errRec.Err) {
		t.Errorf("error = %v, want TruncatedStreamError", errRec.Err)
	}
	if sum.Failed != 1 || sum.ByError["truncated stream"] != 1 {
		t.Errorf("summary = %s", sum)
	}
}

func TestTruncatedBinaryIsFatal(t *testing.T) {
	s := &stream{}
	s.bytes(OpLine).i16(0, 0, 1) // one int16 short

	dec := NewDecoder(nil, &Recorder{})
	sum, err := dec.Decode(s.buf)
	var fatal *w2d.UnrecoverableStreamError
	if !errors.As(err, &fatal) {
		t.Fatalf("got %v, want UnrecoverableStreamError", err)
	}
	if !w2d.IsTruncated(err) {
		t.Errorf("cause is %v, want TruncatedStreamError", err)
	}
	if sum.Records != 0 {
		t.Errorf("%d records emitted from a fatally truncated stream", sum.Records)
	}
}

func TestMalformedASCIIRecovers(t *testing.T) {
	s := &stream{}
	s.str(`(Color 999 0 0 255)`) // channel out of range
	s.bytes(OpLine).i16(0, 0, 1, 1)
	s.bytes(OpEndOfStream)

	rec, sum, _ := decodeAll(t, s.buf)

	if _, ok := rec.Records[0].(ErrorRecord); !ok {
		t.Fatalf("first record is %T, want ErrorRecord", rec.Records[0])
	}
	if _, ok := rec.Records[1].(Line); !ok {
		t.Fatalf("second record is %T, want Line", rec.Records[1])
	}
	if sum.Failed != 1 || sum.ByError["opcode error"] != 1 {
		t.Errorf("summary = %s", sum)
	}
}

func TestEndOfStreamStops(t *testing.T) {
	data := []byte{OpEndOfStream, 0xFF, 0xFF, 0xFF} // trailing garbage
	rec, sum, _ := decodeAll(t, data)
	if len(rec.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(rec.Records))
	}
	if _, ok := rec.Records[0].(EndOfStream); !ok {
		t.Errorf("record is %T, want EndOfStream", rec.Records[0])
	}
	if sum.Records != 1 {
		t.Errorf("summary = %s", sum)
	}
}

func TestSaveRestoreOverStream(t *testing.T) {
	s := &stream{}
	s.bytes(OpSetColor, 10, 20, 30, 255)
	s.bytes(OpSaveState)
	s.str(`(Color 0 255 0 255)`)
	s.bytes(OpRestoreState)
	s.bytes(OpRestoreState) // stack now empty: must be a no-op
	s.bytes(OpEndOfStream)

	rec, _, dec := decodeAll(t, s.buf)

	want := graphics.Color{R: 10, G: 20, B: 30, A: 255}
	if dec.State.Color != want {
		t.Errorf("final color = %v, want %v", dec.State.Color, want)
	}

	restores := 0
	for _, r := range rec.Records {
		if rs, ok := r.(RestoreState); ok {
			switch restores {
			case 0:
				if !rs.Restored {
					t.Error("first restore reported empty stack")
				}
			case 1:
				if rs.Restored {
					t.Error("second restore claims to have popped a snapshot")
				}
			}
			restores++
		}
	}
	if restores != 2 {
		t.Errorf("saw %d restore records, want 2", restores)
	}
}

func TestTextOpcode(t *testing.T) {
	const greeting = "שלום עולם"
	s := &stream{}
	s.bytes(OpText).i32(500, 700)
	s.bytes(byte(len([]rune(greeting)))) // 9 code units, no extension
	s.utf16le(greeting)
	s.bytes(OpEndOfStream)

	rec, _, _ := decodeAll(t, s.buf)

	text, ok := rec.Records[0].(Text)
	if !ok {
		t.Fatalf("record is %T, want Text", rec.Records[0])
	}
	if text.Value != greeting {
		t.Errorf("value = %q, want %q", text.Value, greeting)
	}
	if !text.RTL {
		t.Error("Hebrew run not detected as right-to-left")
	}
	if text.Anchor != (w2d.Point{X: 500, Y: 700}) {
		t.Errorf("anchor = %v", text.Anchor)
	}
}

func TestAttributeState(t *testing.T) {
	s := &stream{}
	s.str(`(Units 0.5)`)
	s.str(`(Clip 0 0 1000 2000)`)
	s.str(`(Font (Name "Arial") (Height 40) (Rotation 90) (Slant 12))`)
	s.str(`(Visibility off)`)
	s.str(`(LineStyle 1 2)`)
	s.bytes(OpEndOfStream)

	_, sum, dec := decodeAll(t, s.buf)

	if sum.Failed != 0 {
		t.Fatalf("summary = %s", sum)
	}
	st := dec.State
	if st.UnitScale != 0.5 {
		t.Errorf("unit scale = %g, want 0.5", st.UnitScale)
	}
	if !st.HasClip() || st.Clip.URx != 1000 || st.Clip.URy != 2000 {
		t.Errorf("clip = %+v", st.Clip)
	}
	if st.Font.Name != "Arial" || st.Font.Height != 40 || st.Font.Rotation != 90 {
		t.Errorf("font = %+v", st.Font)
	}
	if st.Visible {
		t.Error("visibility still on")
	}
	if st.LineCap != graphics.LineCapRound || st.LineJoin != graphics.LineJoinBevel {
		t.Errorf("line style = %v/%v", st.LineCap, st.LineJoin)
	}
	if !st.Modified {
		t.Error("state not marked modified")
	}
}

// TestFontUnknownOptionNested checks that an unrecognised font option
// is skipped even when it contains nested groups or quoted
// parentheses, and that known options after it still apply.
func TestFontUnknownOptionNested(t *testing.T) {
	s := &stream{}
	s.str(`(Font (Extra (Deep 1) "x(y") (Height 40))`)
	s.bytes(OpEndOfStream)

	rec, sum, dec := decodeAll(t, s.buf)

	if sum.Failed != 0 {
		t.Fatalf("summary = %s", sum)
	}
	font, ok := rec.Records[0].(SetFont)
	if !ok {
		t.Fatalf("record is %T, want SetFont", rec.Records[0])
	}
	if font.Font.Height != 40 {
		t.Errorf("height = %g, want 40", font.Font.Height)
	}
	if dec.State.Font.Height != 40 {
		t.Errorf("state height = %g, want 40", dec.State.Font.Height)
	}
}

func TestBlockRef(t *testing.T) {
	payload := []byte{
		0x78, 0x56, 0x34, 0x12,
		0xCD, 0xAB,
		0x01, 0xEF,
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	}
	s := &stream{}
	s.bytes(extFrame(ExtBlockRef, payload)...)
	s.bytes(OpEndOfStream)

	rec, _, _ := decodeAll(t, s.buf)

	ref, ok := rec.Records[0].(BlockRef)
	if !ok {
		t.Fatalf("record is %T, want BlockRef", rec.Records[0])
	}
	want := "12345678-abcd-ef01-0011-223344556677"
	if got := ref.ID.String(); got != want {
		t.Errorf("GUID = %q, want %q", got, want)
	}
}

func TestImagePayloadOpaque(t *testing.T) {
	blob := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	p := &stream{}
	p.i16(7) // image format code
	p.i32(0, 0, 400, 300)
	p.bytes(blob...)

	s := &stream{}
	s.bytes(extFrame(ExtImage, p.buf)...)
	s.bytes(OpEndOfStream)

	rec, _, _ := decodeAll(t, s.buf)

	img, ok := rec.Records[0].(Image)
	if !ok {
		t.Fatalf("record is %T, want Image", rec.Records[0])
	}
	if img.Format != 7 {
		t.Errorf("format = %d, want 7", img.Format)
	}
	if img.Max != (w2d.Point{X: 400, Y: 300}) {
		t.Errorf("bounds max = %v", img.Max)
	}
	if string(img.Data) != string(blob) {
		t.Errorf("blob = % x, want % x", img.Data, blob)
	}
}

func TestResetMidStream(t *testing.T) {
	s := &stream{}
	s.bytes(OpSetColor, 1, 2, 3, 4)
	s.bytes(OpSaveState, OpSaveState)
	s.bytes(OpResetState)
	s.bytes(OpEndOfStream)

	_, _, dec := decodeAll(t, s.buf)

	if dec.State.Color != graphics.Black {
		t.Errorf("color after reset = %v, want black", dec.State.Color)
	}
	if dec.State.Depth() != 0 {
		t.Errorf("stack depth after reset = %d, want 0", dec.State.Depth())
	}
}

type failingSink struct{}

func (failingSink) Record(Record) error { return errors.New("sink full") }

func TestSinkErrorPropagates(t *testing.T) {
	dec := NewDecoder(nil, failingSink{})
	_, err := dec.Decode([]byte{OpEndOfStream})
	if err == nil || err.Error() != "sink full" {
		t.Errorf("got %v, want sink error", err)
	}
}

func TestExtendedCountPolyline(t *testing.T) {
	const n = 300
	s := &stream{}
	s.bytes(OpPolylineRel, 0) // count byte 0 triggers the extension
	s.i16(int16(n - 256))     // 300 - 256 = 44 as little-endian uint16
	for i := 0; i < n; i++ {
		s.i16(1, 0)
	}
	s.bytes(OpEndOfStream)

	rec, sum, _ := decodeAll(t, s.buf)

	if sum.Failed != 0 {
		t.Fatalf("summary = %s", sum)
	}
	poly, ok := rec.Records[0].(Polyline)
	if !ok {
		t.Fatalf("record is %T, want Polyline", rec.Records[0])
	}
	if len(poly.Points) != n {
		t.Fatalf("got %d points, want %d", len(poly.Points), n)
	}
	if poly.Points[n-1] != (w2d.Point{X: n, Y: 0}) {
		t.Errorf("last point = %v, want (%d,0)", poly.Points[n-1], n)
	}
}
