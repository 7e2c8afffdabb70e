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

package vf

import (
	"fmt"

	"seehuhn.de/go/zrtex"
)

// FontDef is one font-definition record: the font's TFM checksum, at-size
// and design-size (both TFM fixed-point), and its area/name path.
type FontDef struct {
	ID         int32
	Checksum   uint32
	AtSize     zrtex.Fixed
	DesignSize zrtex.Fixed
	Area       string
	Name       string
}

// Char is one decoded character packet: the TFM-units width the DVI
// payload is asserted to produce, and the payload itself.
type Char struct {
	Code int32
	TFM  uint32 // width in TFM fix_word units, as stored in the packet
	DVI  []Instr
	Long bool // force the long (242) packet form on re-encode
}

// File is a fully decoded Virtual Font.
type File struct {
	VTitle     []byte
	Checksum   uint32
	DesignSize zrtex.Fixed
	FontDefs   []FontDef
	Chars      []Char
}

// Lax, when passed to Decode, makes a char packet whose DVI payload the
// sub-parser rejects survive as a Char with Long set and a nil DVI slice
// carrying the raw bytes in a synthetic OpSpecial-like passthrough; strict
// mode propagates the rejection as an error.
type Lax bool

const (
	Strict Lax = false
	Relax  Lax = true
)

func readByte(data []byte, i *int) (byte, error) {
	if *i >= len(data) {
		return 0, fmt.Errorf("vf: truncated file")
	}
	b := data[*i]
	*i++
	return b, nil
}

func readN(data []byte, i *int, n int) ([]byte, error) {
	if *i+n > len(data) {
		return nil, fmt.Errorf("vf: truncated file")
	}
	b := data[*i : *i+n]
	*i += n
	return b, nil
}

func beUint(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

func beInt(b []byte) int32 {
	v := int32(int8(b[0]))
	for _, c := range b[1:] {
		v = v<<8 | int32(c)
	}
	return v
}

// Decode reads a complete VF file: preamble, font-def and char-packet
// records, and the 4-byte-aligned postamble padding (§4.5).
func Decode(data []byte, lax Lax) (*File, error) {
	i := 0
	b, err := readByte(data, &i)
	if err != nil || b != 247 {
		return nil, &zrtex.StructuralError{Msg: "VF does not start with a 247 preamble byte"}
	}
	b, err = readByte(data, &i)
	if err != nil || b != 202 {
		return nil, &zrtex.StructuralError{Msg: "VF preamble identification byte is not 202"}
	}
	kb, err := readByte(data, &i)
	if err != nil {
		return nil, &zrtex.StructuralError{Msg: "VF preamble truncated before vtitle length"}
	}
	vtitle, err := readN(data, &i, int(kb))
	if err != nil {
		return nil, &zrtex.StructuralError{Msg: "VF preamble truncated inside vtitle"}
	}
	cb, err := readN(data, &i, 4)
	if err != nil {
		return nil, &zrtex.StructuralError{Msg: "VF preamble truncated before checksum"}
	}
	db, err := readN(data, &i, 4)
	if err != nil {
		return nil, &zrtex.StructuralError{Msg: "VF preamble truncated before design size"}
	}

	f := &File{
		VTitle:     append([]byte(nil), vtitle...),
		Checksum:   beUint(cb),
		DesignSize: zrtex.Fixed(beInt(db)),
	}

	stage := 1
	for {
		if i >= len(data) {
			return nil, &zrtex.StructuralError{Msg: "VF file ends without a postamble marker"}
		}
		b := data[i]
		switch {
		case b == 248:
			for i < len(data) {
				if data[i] != 248 {
					return nil, &zrtex.StructuralError{Msg: "byte after VF postamble marker is not padding"}
				}
				i++
			}
			return f, nil
		case b <= 241:
			i++
			pl := int(b)
			cc, err := readByte(data, &i)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "short char packet truncated before code"}
			}
			tfm, err := readN(data, &i, 3)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "short char packet truncated before tfm width"}
			}
			dvi, err := readN(data, &i, pl)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "short char packet truncated inside dvi payload"}
			}
			c, err := decodeChar(int32(cc), beUint(append([]byte{0}, tfm...)), dvi, false, lax)
			if err != nil {
				return nil, err
			}
			f.Chars = append(f.Chars, *c)
			stage = 2
		case b == 242:
			i++
			plb, err := readN(data, &i, 4)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "long char packet truncated before length"}
			}
			ccb, err := readN(data, &i, 4)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "long char packet truncated before code"}
			}
			tfmb, err := readN(data, &i, 4)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "long char packet truncated before tfm width"}
			}
			dvi, err := readN(data, &i, int(beUint(plb)))
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "long char packet truncated inside dvi payload"}
			}
			c, err := decodeChar(beInt(ccb), beUint(tfmb), dvi, true, lax)
			if err != nil {
				return nil, err
			}
			f.Chars = append(f.Chars, *c)
			stage = 2
		case b >= 243 && b <= 246:
			if stage == 2 {
				return nil, &zrtex.StructuralError{Msg: "font-def after the first char packet"}
			}
			i++
			n := int(b-243) + 1
			idb, err := readN(data, &i, n)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "font-def truncated before id"}
			}
			rest, err := readN(data, &i, 4+4+4+1+1)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "font-def truncated before area/name lengths"}
			}
			checksum := beUint(rest[0:4])
			atSize := zrtex.Fixed(beInt(rest[4:8]))
			designSize := zrtex.Fixed(beInt(rest[8:12]))
			s, n2 := int(rest[12]), int(rest[13])
			area, err := readN(data, &i, s)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "font-def truncated inside area"}
			}
			name, err := readN(data, &i, n2)
			if err != nil {
				return nil, &zrtex.StructuralError{Msg: "font-def truncated inside name"}
			}
			f.FontDefs = append(f.FontDefs, FontDef{
				ID:         beInt(idb),
				Checksum:   checksum,
				AtSize:     atSize,
				DesignSize: designSize,
				Area:       string(area),
				Name:       string(name),
			})
		default:
			return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("byte %d is not valid at VF top level", b)}
		}
	}
}

func decodeChar(code int32, tfmWidth uint32, dvi []byte, long bool, lax Lax) (*Char, error) {
	instrs, err := ParseDVI(dvi)
	if err != nil {
		if lax {
			return &Char{Code: code, TFM: tfmWidth, Long: long, DVI: nil}, nil
		}
		return nil, err
	}
	return &Char{Code: code, TFM: tfmWidth, DVI: instrs, Long: long}, nil
}

// Encode serializes f back to the VF binary form: preamble, one font-def
// per entry in FontDefs, one packet per entry in Chars (short form unless
// Long is set or the invariants in §3 force long form), then 248 padding
// out to a 4-byte boundary (§4.6).
func (f *File) Encode() ([]byte, error) {
	if len(f.VTitle) > 255 {
		return nil, fmt.Errorf("vf: vtitle too long to encode (%d bytes, max 255)", len(f.VTitle))
	}
	var out []byte
	out = append(out, 247, 202, byte(len(f.VTitle)))
	out = append(out, f.VTitle...)
	out = append(out, be32(f.Checksum)...)
	out = append(out, be32(uint32(f.DesignSize))...)

	for _, fd := range f.FontDefs {
		n, idb := minBytesUnsigned(uint32(fd.ID))
		out = append(out, byte(243+n-1))
		out = append(out, idb...)
		out = append(out, be32(fd.Checksum)...)
		out = append(out, be32(uint32(fd.AtSize))...)
		out = append(out, be32(uint32(fd.DesignSize))...)
		if len(fd.Area) > 255 || len(fd.Name) > 255 {
			return nil, fmt.Errorf("vf: font-def area/name too long to encode")
		}
		out = append(out, byte(len(fd.Area)), byte(len(fd.Name)))
		out = append(out, fd.Area...)
		out = append(out, fd.Name...)
	}

	for _, c := range f.Chars {
		dvi, err := EncodeDVI(c.DVI)
		if err != nil {
			return nil, err
		}
		useLong := c.Long || c.Code > 255 || c.Code < 0 || len(dvi) > 241 || c.TFM > 0xFFFFFF
		if useLong {
			out = append(out, 242)
			out = append(out, be32(uint32(len(dvi)))...)
			out = append(out, be32(uint32(c.Code))...)
			out = append(out, be32(c.TFM)...)
			out = append(out, dvi...)
		} else {
			out = append(out, byte(len(dvi)))
			out = append(out, byte(c.Code))
			out = append(out, be32(c.TFM)[1:]...)
			out = append(out, dvi...)
		}
	}

	out = append(out, 248)
	for len(out)%4 != 0 {
		out = append(out, 248)
	}
	return out, nil
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
