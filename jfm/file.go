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

package jfm

import (
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/tfm"
)

// File is a decoded JFM: the tfm.File preamble/side-table shape, but with
// an 18-bit codespace and 4-byte char-info rows of (code_hi, code_lo,
// widx_depthidx_heightidx, padding) rather than tfm's 1-byte code (§6).
// lf being 9 or 11 distinguishes horizontal (9) from vertical (11) JFM.
type File struct {
	Vertical bool
	Base     tfm.File
	Entries  map[int32]tfm.CharInfo // keyed by the full 18-bit code
}

// Decode reads a JFM binary file: its char-info table uses an 18-bit code
// field (code_hi<<16 | code_lo, the extra 2 bits living in the row's
// padding byte) instead of tfm's direct 8-bit offset from Bc.
func Decode(r io.Reader) (*File, error) {
	var pre [12]uint16
	if err := binary.Read(r, binary.BigEndian, &pre); err != nil {
		return nil, &zrtex.ExternalError{Command: "jfm.Decode", Err: err}
	}
	lf := pre[0]
	vertical := lf == 11
	if lf != 9 && lf != 11 {
		return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("lf=%d is not a recognised JFM preamble (want 9 or 11)", lf)}
	}
	lh, nc, nw, nh, nd := pre[1], pre[2], pre[4], pre[5], pre[6]

	header := make([]uint32, lh)
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short header: %v", err)}
	}
	f := &File{Vertical: vertical}
	if len(header) >= 2 {
		f.Base.Checksum = header[0]
		f.Base.DesignSize = zrtex.Fixed(header[1])
	}

	f.Entries = make(map[int32]tfm.CharInfo, nc)
	for i := 0; i < int(nc); i++ {
		var row [4]byte
		if err := binary.Read(r, binary.BigEndian, &row); err != nil {
			return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short char-info table: %v", err)}
		}
		code := int32(row[0])<<16 | int32(row[1])
		code |= int32(row[3]&0xC0) << 10 // two spare high bits of the 18-bit code
		f.Entries[code] = tfm.CharInfo{
			WidthIndex: row[2],
			DepthIndex: row[3] & 0x3F,
		}
	}

	var err error
	if f.Base.Widths, err = readFixed(r, int(nw)); err != nil {
		return nil, err
	}
	if f.Base.Heights, err = readFixed(r, int(nh)); err != nil {
		return nil, err
	}
	if f.Base.Depths, err = readFixed(r, int(nd)); err != nil {
		return nil, err
	}
	return f, nil
}

func readFixed(r io.Reader, n int) ([]zrtex.Fixed, error) {
	raw := make([]int32, n)
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short fixed-point table: %v", err)}
	}
	out := make([]zrtex.Fixed, n)
	for i, v := range raw {
		out[i] = zrtex.Fixed(v)
	}
	return out, nil
}

// Encode writes f in the JFM binary layout.
func (f *File) Encode(w io.Writer) error {
	lf := uint16(9)
	if f.Vertical {
		lf = 11
	}
	lh := uint16(2)
	nc := uint16(len(f.Entries))
	nw, nh, nd := uint16(len(f.Base.Widths)), uint16(len(f.Base.Heights)), uint16(len(f.Base.Depths))
	pre := [12]uint16{lf, lh, nc, 0, nw, nh, nd, 0, 0, 0, 0, 0}
	if err := binary.Write(w, binary.BigEndian, &pre); err != nil {
		return err
	}
	header := []uint32{f.Base.Checksum, uint32(f.Base.DesignSize)}
	if err := binary.Write(w, binary.BigEndian, header); err != nil {
		return err
	}

	codes := make([]int32, 0, len(f.Entries))
	for c := range f.Entries {
		codes = append(codes, c)
	}
	sortInt32(codes)
	for _, code := range codes {
		ci := f.Entries[code]
		row := [4]byte{
			byte(code >> 16),
			byte(code),
			ci.WidthIndex,
			ci.DepthIndex&0x3F | byte((code>>10)&0xC0),
		}
		if err := binary.Write(w, binary.BigEndian, &row); err != nil {
			return err
		}
	}
	for _, tbl := range [][]zrtex.Fixed{f.Base.Widths, f.Base.Heights, f.Base.Depths} {
		raw := make([]int32, len(tbl))
		for i, v := range tbl {
			raw[i] = int32(v)
		}
		if err := binary.Write(w, binary.BigEndian, raw); err != nil {
			return err
		}
	}
	return nil
}

func sortInt32(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
