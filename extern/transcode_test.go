// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package extern

import (
	"testing"

	"seehuhn.de/go/zrtex"
)

func TestTranscoderUTF16BERoundTrip(t *testing.T) {
	cfg := &zrtex.Config{ExternalEncoding: "utf-8", InternalEncoding: "utf-16be"}
	tr, err := NewTranscoder(cfg)
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}

	s, ok := tr.JcodeChr(0x3042) // U+3042 HIRAGANA LETTER A
	if !ok {
		t.Fatalf("JcodeChr(0x3042) rejected")
	}
	v, ok := tr.JcodeOrd(s)
	if !ok || v != 0x3042 {
		t.Fatalf("JcodeOrd(%q) = %d, %v; want 0x3042, true", s, v, ok)
	}
}

func TestTranscoderJIS0208EUCRoundTrip(t *testing.T) {
	cfg := &zrtex.Config{ExternalEncoding: "euc-jp", InternalEncoding: "jis0208-raw"}
	tr, err := NewTranscoder(cfg)
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}

	// ku-ten pair (0x30, 0x21) names a real JIS X 0208 row/cell.
	internal := int32(0x30)<<8 | 0x21
	s, ok := tr.JcodeChr(internal)
	if !ok {
		t.Fatalf("JcodeChr(%#x) rejected", internal)
	}
	if len(s) != 2 || s[0] != 0x30|0x80 || s[1] != 0x21|0x80 {
		t.Fatalf("JcodeChr(%#x) = %q, want EUC-JP bytes with the high bit set", internal, s)
	}
	v, ok := tr.JcodeOrd(s)
	if !ok || v != internal {
		t.Fatalf("JcodeOrd(%q) = %#x, %v; want %#x, true", s, v, ok, internal)
	}
}

func TestTranscoderUnknownEncodingRejected(t *testing.T) {
	_, err := NewTranscoder(&zrtex.Config{ExternalEncoding: "ebcdic", InternalEncoding: "utf-16be"})
	if err == nil {
		t.Fatal("expected an error for an unrecognised external encoding")
	}
}

func TestTranscoderXJISPassthrough(t *testing.T) {
	cfg := &zrtex.Config{ExternalEncoding: "*xjis*", InternalEncoding: "utf-16be"}
	tr, err := NewTranscoder(cfg)
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}
	s, ok := tr.JcodeChr('A')
	if !ok || s != "A" {
		t.Fatalf("JcodeChr('A') = %q, %v; want \"A\", true", s, ok)
	}
}

func TestTranscodableSatisfiesNumericTranscoder(t *testing.T) {
	cfg := &zrtex.Config{ExternalEncoding: "euc-jp", InternalEncoding: "jis0208-raw"}
	tr, err := NewTranscoder(cfg)
	if err != nil {
		t.Fatalf("NewTranscoder: %v", err)
	}
	if !tr.Transcodable(0x3021) {
		t.Errorf("Transcodable(0x3021) = false, want true")
	}
	if tr.Transcodable(0x0001) {
		t.Errorf("Transcodable(0x0001) = true, want false (outside the ku-ten grid)")
	}
}
