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
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"seehuhn.de/go/zrtex"
)

// xjisEncodingName is the private passthrough mode §4.11 describes: JIS
// bytes pass unchanged so that ptftopl output can be post-processed
// without re-decoding.
const xjisEncodingName = "*xjis*"

// externalCodec resolves cfg.ExternalEncoding to an x/text Japanese
// encoding, wiring golang.org/x/text/encoding/japanese (the teacher's
// x/text dependency family) to component K's external half.
func externalCodec(name string) (encoding.Encoding, bool) {
	switch name {
	case "jis":
		return japanese.ISO2022JP, true
	case "euc-jp":
		return japanese.EUCJP, true
	case "sjis":
		return japanese.ShiftJIS, true
	case "utf-8", "":
		return nil, true // nil marks the UTF-8 identity codec
	default:
		return nil, false
	}
}

// Transcoder implements component K's jcode_chr/jcode_ord boundary: an
// "external" byte encoding (JIS/EUC-JP/Shift-JIS/UTF-8) paired with an
// "internal" codepoint space (JIS0208 ku-ten pairs, or raw UTF-16BE code
// units) used by the rest of the module's atoms and MAP descriptions.
type Transcoder struct {
	external string // "jis", "euc-jp", "sjis", "utf-8", or the private "*xjis*"
	internal string // "jis0208-raw" or "utf-16be"
}

// NewTranscoder builds the transcoder named by cfg's ExternalEncoding and
// InternalEncoding fields.
func NewTranscoder(cfg *zrtex.Config) (*Transcoder, error) {
	cfg = zrtex.Or(cfg)
	ext := cfg.ExternalEncoding
	if ext == "" {
		ext = "utf-8"
	}
	in := cfg.InternalEncoding
	if in == "" {
		in = "utf-16be"
	}
	if ext != xjisEncodingName {
		if _, ok := externalCodec(ext); !ok {
			return nil, &zrtex.SemanticError{Msg: "unknown external encoding " + ext}
		}
	}
	if in != "jis0208-raw" && in != "utf-16be" {
		return nil, &zrtex.SemanticError{Msg: "unknown internal encoding " + in}
	}
	return &Transcoder{external: ext, internal: in}, nil
}

// Transcodable reports whether code round-trips through this transcoder,
// satisfying numeric.Transcoder so the K-kind number codec (§4.1) can
// validate Japanese character atoms against the configured encoding
// pair instead of the package-default 0..0xFFFF range.
func (t *Transcoder) Transcodable(code int32) bool {
	_, ok := t.JcodeChr(code)
	return ok
}

// JcodeChr returns the 1..2-byte external byte string encoding internal
// codepoint v, or ok=false if v is not round-trippable in this
// transcoder's external encoding.
func (t *Transcoder) JcodeChr(v int32) (s string, ok bool) {
	r, ok := t.internalToRune(v)
	if !ok {
		return "", false
	}
	if t.external == xjisEncodingName {
		return string(runeToJISBytes(r)), true
	}
	codec, known := externalCodec(t.external)
	if !known {
		return "", false
	}
	if codec == nil {
		return string(r), true
	}
	out, _, err := transform.String(codec.NewEncoder(), string(r))
	if err != nil || out == "" {
		return "", false
	}
	return out, true
}

// JcodeOrd is the inverse of JcodeChr: decode the external byte string s
// and return its internal codepoint.
func (t *Transcoder) JcodeOrd(s string) (v int32, ok bool) {
	var r rune
	if t.external == xjisEncodingName {
		var n int
		r, n, ok = jisBytesToRune([]byte(s))
		if !ok || n != len(s) {
			return 0, false
		}
	} else {
		codec, known := externalCodec(t.external)
		if !known {
			return 0, false
		}
		if codec == nil {
			rr, n := utf8.DecodeRuneInString(s)
			if rr == utf8.RuneError || n != len(s) {
				return 0, false
			}
			r = rr
		} else {
			out, _, err := transform.String(codec.NewDecoder(), s)
			if err != nil {
				return 0, false
			}
			rr, n := utf8.DecodeRuneInString(out)
			if rr == utf8.RuneError || n != len(out) {
				return 0, false
			}
			r = rr
		}
	}
	return t.runeToInternal(r)
}

// internalToRune expands an internal codepoint to the Unicode rune it
// names. For "jis0208-raw" the value is a packed ku-ten pair (each byte
// in 0x21..0x7E); it is widened to an EUC-JP byte pair and decoded via
// the same japanese.EUCJP table the external side uses, so jis0208-raw
// and euc-jp agree on which runes exist.
func (t *Transcoder) internalToRune(v int32) (rune, bool) {
	switch t.internal {
	case "utf-16be":
		if v < 0 || v > 0x10FFFF {
			return 0, false
		}
		return rune(v), true
	case "jis0208-raw":
		hi, lo := byte(v>>8), byte(v)
		if hi < 0x21 || hi > 0x7E || lo < 0x21 || lo > 0x7E {
			return 0, false
		}
		euc := []byte{hi | 0x80, lo | 0x80}
		out, _, err := transform.Bytes(japanese.EUCJP.NewDecoder(), euc)
		if err != nil {
			return 0, false
		}
		r, n := utf8.DecodeRune(out)
		if r == utf8.RuneError || n != len(out) {
			return 0, false
		}
		return r, true
	default:
		return 0, false
	}
}

// runeToInternal is the inverse of internalToRune.
func (t *Transcoder) runeToInternal(r rune) (int32, bool) {
	switch t.internal {
	case "utf-16be":
		return int32(r), true
	case "jis0208-raw":
		out, _, err := transform.String(japanese.EUCJP.NewEncoder(), string(r))
		if err != nil || len(out) != 2 {
			return 0, false
		}
		hi, lo := out[0]&0x7F, out[1]&0x7F
		return int32(hi)<<8 | int32(lo), true
	default:
		return 0, false
	}
}

// runeToJISBytes and jisBytesToRune implement the private "*xjis*" mode:
// JIS bytes pass through the transcoder unchanged, so callers that
// already have 7-bit JIS text (e.g. post-processing ptftopl's own
// output) are not forced through a decode/re-encode round trip.
func runeToJISBytes(r rune) []byte {
	return []byte(string(r))
}

func jisBytesToRune(b []byte) (rune, int, bool) {
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n <= 1 {
		return 0, 0, false
	}
	return r, n, true
}
