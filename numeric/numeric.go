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

package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/zrtex"
)

// Transcoder checks whether a Japanese character code round-trips through
// the configured external encoding; it is the hook component K supplies.
// A nil Transcoder accepts any code in 0..0xFFFF.
type Transcoder interface {
	// Transcodable reports whether code can be represented in the
	// external encoding and recovered unchanged.
	Transcodable(code int32) bool
}

// Options configures parsing/emission beyond the fixed per-Kind rules.
type Options struct {
	// FreeNumber widens D/O/H ranges to the full signed 32-bit domain.
	FreeNumber bool
	// Transcoder validates K-kind values; nil accepts 0..0xFFFF.
	Transcoder Transcoder
}

func (o *Options) transcodable(v int32) bool {
	if o == nil || o.Transcoder == nil {
		return v >= 0 && v <= 0xFFFF
	}
	return o.Transcoder.Transcodable(v)
}

func (o *Options) free() bool { return o != nil && o.FreeNumber }

const maxUint32 = 1<<32 - 1

// Parse converts token according to kind's grammar and range and returns
// the numeric value. For KindR the value is a Fixed (scaled by 2^20).
func Parse(kind zrtex.Kind, token string, opt *Options) (int64, error) {
	switch kind {
	case zrtex.KindC:
		return parseC(token)
	case zrtex.KindK:
		return parseK(token, opt)
	case zrtex.KindD:
		lo, hi := rangeD(opt)
		return parseUint(token, 10, lo, hi)
	case zrtex.KindF:
		return parseFace(token)
	case zrtex.KindO:
		lo, hi := rangeWide(opt)
		return parseUint(token, 8, lo, hi)
	case zrtex.KindH:
		lo, hi := rangeWide(opt)
		return parseUint(token, 16, lo, hi)
	case zrtex.KindI:
		// I never appears as a parse-time prefix: it is purely an
		// emission-time alias for O/H (§4.1). Accept either grammar.
		lo, hi := rangeWide(opt)
		if v, err := parseUint(token, 8, lo, hi); err == nil {
			return v, nil
		}
		return parseUint(token, 16, lo, hi)
	case zrtex.KindR:
		return ParseReal(token)
	default:
		return 0, &zrtex.SyntaxError{Msg: fmt.Sprintf("unknown numeric prefix %q", kind)}
	}
}

func rangeD(opt *Options) (int64, int64) {
	if opt.free() {
		return math.MinInt32, math.MaxInt32
	}
	return 0, 255
}

func rangeWide(opt *Options) (int64, int64) {
	if opt.free() {
		return math.MinInt32, math.MaxInt32
	}
	return 0, maxUint32
}

func parseUint(token string, base int, lo, hi int64) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(token), base, 64)
	if err != nil {
		// fall back to unsigned parse: O/H tokens occupy the full
		// 0..2^32-1 domain, which does not fit a signed 32-bit parse.
		uv, uerr := strconv.ParseUint(strings.TrimSpace(token), base, 64)
		if uerr != nil {
			return 0, &zrtex.SyntaxError{Msg: fmt.Sprintf("malformed numeral %q", token)}
		}
		v = int64(uv)
	}
	if v < lo || v > hi {
		return 0, &zrtex.SemanticError{Msg: fmt.Sprintf("value %d out of range [%d,%d]", v, lo, hi)}
	}
	return v, nil
}

func parseC(token string) (int64, error) {
	r := []rune(token)
	if len(r) != 1 {
		return 0, &zrtex.SyntaxError{Msg: fmt.Sprintf("C prefix expects one character, got %q", token)}
	}
	if r[0] < 0 || r[0] > 0xFF || !IsWordChar(byte(r[0])) {
		return 0, &zrtex.SemanticError{Msg: fmt.Sprintf("character %q is not printable", token)}
	}
	return int64(r[0]), nil
}

// IsWordChar reports whether b is in the printable "word" class PL uses
// for unescaped C atoms: printable, non-whitespace, and not one of the
// characters the tokenizer treats as structural (parens).
func IsWordChar(b byte) bool {
	if b < 0x21 || b > 0x7E {
		return false
	}
	return b != '(' && b != ')'
}

func parseFace(token string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		if fv, ok := zrtex.FaceCodeValue(strings.TrimSpace(token)); ok {
			return int64(fv), nil
		}
		return 0, &zrtex.SyntaxError{Msg: fmt.Sprintf("malformed face code %q", token)}
	}
	if v < 0 || v >= zrtex.NumberOfFaceCodes {
		return 0, &zrtex.SemanticError{Msg: fmt.Sprintf("face code %d out of range", v)}
	}
	return v, nil
}

func parseK(token string, opt *Options) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(token), 16, 64)
	if err != nil {
		v, err = strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil {
			return 0, &zrtex.SyntaxError{Msg: fmt.Sprintf("malformed Japanese code %q", token)}
		}
	}
	if v < 0 || v > 0xFFFFFFFF || !opt.transcodable(int32(v)) {
		return 0, &zrtex.SemanticError{Msg: fmt.Sprintf("code %#x is not round-trippable in the configured encoding", v)}
	}
	return v, nil
}

// ParseReal scales the textual decimal token by 2^20, rounding
// half-away-from-zero, and reports an error if the result falls outside
// the signed 32-bit fixed-point domain.
func ParseReal(token string) (int64, error) {
	token = strings.TrimSpace(token)
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &zrtex.SyntaxError{Msg: fmt.Sprintf("malformed real %q", token)}
	}
	fx, err := zrtex.NewFixed(f)
	if err != nil {
		return 0, err
	}
	return int64(fx), nil
}

// Fallback chooses the prefix actually used to emit (kind, value),
// downgrading kind per §4.1's emission-fallback rules when value cannot
// be represented, and returns the resulting kind (I resolves to O or H;
// value itself is never altered, only its prefix).
func Fallback(kind zrtex.Kind, value int64, preferHex bool) zrtex.Kind {
	if kind == zrtex.KindF && (value < 0 || value >= zrtex.NumberOfFaceCodes) {
		kind = zrtex.KindD
	}
	if kind == zrtex.KindC && (value < 0 || value > 0xFF || !IsWordChar(byte(value))) {
		kind = zrtex.KindI
	}
	if kind == zrtex.KindD && (value < 0 || value > 255) {
		kind = zrtex.KindI
	}
	if kind == zrtex.KindI {
		if preferHex {
			return zrtex.KindH
		}
		return zrtex.KindO
	}
	return kind
}

// FallbackK applies the K-specific fallback rule (§4.1): a Japanese code
// that does not round-trip through the configured external encoding is
// re-emitted as H instead.
func FallbackK(value int64, opt *Options) zrtex.Kind {
	if !opt.transcodable(int32(value)) {
		return zrtex.KindH
	}
	return zrtex.KindK
}

// Format renders (kind, value) as the two-token "<prefix> <text>" pair a
// PL emitter writes for a cooked number, applying the kind/K fallback
// rules first. It returns the kind actually used alongside the formatted
// value text (without the prefix letter).
func Format(kind zrtex.Kind, value int64, opt *Options, preferHex bool) (zrtex.Kind, string, error) {
	if kind == zrtex.KindK {
		kind = FallbackK(value, opt)
	} else {
		kind = Fallback(kind, value, preferHex)
	}
	switch kind {
	case zrtex.KindC:
		return kind, string(rune(value)), nil
	case zrtex.KindK:
		return kind, strconv.FormatInt(value, 16), nil
	case zrtex.KindD, zrtex.KindF:
		return kind, strconv.FormatInt(value, 10), nil
	case zrtex.KindO:
		return kind, strconv.FormatInt(value, 8), nil
	case zrtex.KindH:
		return kind, strings.ToUpper(strconv.FormatInt(value, 16)), nil
	case zrtex.KindR:
		return kind, FormatReal(zrtex.Fixed(value)), nil
	default:
		return kind, "", &zrtex.InternalError{Msg: fmt.Sprintf("unhandled kind %v in Format", kind)}
	}
}

// FormatReal renders a Fixed (2^20-scaled) value as the shortest decimal
// string that reproduces it when re-scaled and rounded, matching the PL
// real format: an optional sign, an integer part, a dot, and as many
// fractional digits as are needed to round-trip.
//
// This is TeX's print_scaled: the fractional remainder is carried as
// s = 10*frac+5 (the +5 lives inside the remainder, not as a separate
// counter), each step corrects s by 32768-delta/2 once delta exceeds a
// full unit so that the final printed digit rounds instead of
// truncating, and the loop stops once the remaining remainder s is no
// larger than delta — the same bound the source format uses, but folded
// back into s on every step instead of compared against a stale bias.
func FormatReal(value zrtex.Fixed) string {
	neg := value < 0
	v := int64(value)
	if neg {
		v = -v
	}

	whole := v / zrtex.FixedDenom
	frac := v % zrtex.FixedDenom

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatInt(whole, 10))
	sb.WriteByte('.')

	if frac == 0 {
		sb.WriteByte('0')
		return sb.String()
	}

	const unity = int64(zrtex.FixedDenom)
	s := 10*frac + 5
	delta := int64(10)
	for {
		if delta > unity {
			s += 32768 - delta/2
		}
		digit := s / unity
		sb.WriteByte(byte('0' + digit))
		s = 10 * (s % unity)
		delta *= 10
		if s <= delta {
			break
		}
	}
	return sb.String()
}
