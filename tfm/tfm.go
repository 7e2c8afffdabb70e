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

package tfm

import (
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/zrtex"
)

// CodeWidth names the width in bits of a TFM family member's
// character-code field: 8-bit classic TFM, 18-bit JFM, or 32-bit OFM.
// Decode records it in File.CodeWidth; neither Decode nor Encode changes
// the char-info row layout by it.
type CodeWidth int

const (
	CodeWidthTFM CodeWidth = 8
	CodeWidthJFM CodeWidth = 18
	CodeWidthOFM CodeWidth = 32
)

// CharInfo is one char-info table row: indices into the four side tables.
// A zero WidthIndex marks the character as absent from the font.
type CharInfo struct {
	WidthIndex  byte
	HeightIndex byte // top nibble
	DepthIndex  byte // bottom nibble
	ItalicIndex byte // top 6 bits
	Tag         byte // bottom 2 bits: 0 none, 1 LIG, 2 LIST, 3 EXTEN
	Remainder   byte
}

// File is the decoded form of a TFM/JFM/OFM binary file (§6): the
// preamble's scalar fields plus the char-info table and four side tables.
type File struct {
	CodeWidth CodeWidth

	Checksum     uint32
	DesignSize   zrtex.Fixed
	CodingScheme string
	Family       string
	SevenBitSafe bool
	Face         byte
	HeaderRest   []uint32 // header words beyond the 18 named ones (lh > 18)

	Bc, Ec int32 // smallest/largest character code (bc > ec means empty font)

	CharInfo map[int32]CharInfo
	Widths   []zrtex.Fixed
	Heights  []zrtex.Fixed
	Depths   []zrtex.Fixed
	Italics  []zrtex.Fixed
	Params   []zrtex.Fixed

	// LigKern, Kern and Exten tables are preserved as raw 32-bit words:
	// this codec does not interpret LIGTABLE/kerning semantics (a
	// Non-goal), only round-trips their binary payload.
	LigKern []uint32
	Kern    []zrtex.Fixed
	Exten   []uint32
}

const headerWords = 18 // lh words this codec names explicitly (checksum..7 param names are separate)

// Decode reads a TFM-family binary file. width is stored in the result's
// CodeWidth field; the char-info rows are always read in the classic
// 4-byte TFM layout, one row per code from Bc to Ec.
func Decode(r io.Reader, width CodeWidth) (*File, error) {
	var pre [12]uint16
	if err := binary.Read(r, binary.BigEndian, &pre); err != nil {
		return nil, &zrtex.ExternalError{Command: "tfm.Decode", Err: err}
	}
	lf, lh, bc, ec, nw, nh, nd, ni, nl, nk, ne, np := pre[0], pre[1], pre[2], pre[3],
		pre[4], pre[5], pre[6], pre[7], pre[8], pre[9], pre[10], pre[11]
	_ = lf

	f := &File{CodeWidth: width, Bc: int32(bc), Ec: int32(ec)}

	header := make([]uint32, lh)
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short header: %v", err)}
	}
	if len(header) < 2 {
		return nil, &zrtex.StructuralError{Msg: "header shorter than the required checksum+designsize words"}
	}
	f.Checksum = header[0]
	f.DesignSize = zrtex.Fixed(header[1])
	if len(header) > 2 {
		f.CodingScheme = decodeBCPL(header[2:], 10)
	}
	if len(header) > 12 {
		f.Family = decodeBCPL(header[12:], 5)
	}
	if len(header) > 17 {
		w := header[17]
		f.Face = byte(w & 0xFF)
		f.SevenBitSafe = w&0xFF000000 != 0
	}
	if len(header) > 18 {
		f.HeaderRest = append([]uint32(nil), header[18:]...)
	}

	n := int(ec) - int(bc) + 1
	if ec < bc {
		n = 0
	}
	f.CharInfo = make(map[int32]CharInfo, n)
	for i := 0; i < n; i++ {
		var row [4]byte
		if err := binary.Read(r, binary.BigEndian, &row); err != nil {
			return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short char-info table: %v", err)}
		}
		ci := CharInfo{
			WidthIndex:  row[0],
			HeightIndex: row[1] >> 4,
			DepthIndex:  row[1] & 0xF,
			ItalicIndex: row[2] >> 2,
			Tag:         row[2] & 0x3,
			Remainder:   row[3],
		}
		if ci.WidthIndex != 0 {
			f.CharInfo[int32(bc)+int32(i)] = ci
		}
	}

	var err error
	if f.Widths, err = readFixedTable(r, int(nw)); err != nil {
		return nil, err
	}
	if f.Heights, err = readFixedTable(r, int(nh)); err != nil {
		return nil, err
	}
	if f.Depths, err = readFixedTable(r, int(nd)); err != nil {
		return nil, err
	}
	if f.Italics, err = readFixedTable(r, int(ni)); err != nil {
		return nil, err
	}
	f.LigKern = make([]uint32, nl)
	if err := binary.Read(r, binary.BigEndian, &f.LigKern); err != nil {
		return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short lig/kern table: %v", err)}
	}
	if f.Kern, err = readFixedTable(r, int(nk)); err != nil {
		return nil, err
	}
	f.Exten = make([]uint32, ne)
	if err := binary.Read(r, binary.BigEndian, &f.Exten); err != nil {
		return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("short exten table: %v", err)}
	}
	if f.Params, err = readFixedTable(r, int(np)); err != nil {
		return nil, err
	}
	return f, nil
}

func readFixedTable(r io.Reader, n int) ([]zrtex.Fixed, error) {
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

// decodeBCPL reads a TeX "BCPL string": a length byte followed by that many
// characters, packed into maxWords 32-bit words (4 chars/word).
func decodeBCPL(words []uint32, maxWords int) string {
	if len(words) == 0 {
		return ""
	}
	if maxWords > len(words) {
		maxWords = len(words)
	}
	buf := make([]byte, maxWords*4)
	for i, w := range words[:maxWords] {
		buf[4*i] = byte(w >> 24)
		buf[4*i+1] = byte(w >> 16)
		buf[4*i+2] = byte(w >> 8)
		buf[4*i+3] = byte(w)
	}
	if len(buf) == 0 {
		return ""
	}
	n := int(buf[0])
	if n > len(buf)-1 {
		n = len(buf) - 1
	}
	return string(buf[1 : 1+n])
}

// encodeBCPL is decodeBCPL's inverse: it packs s as a length byte plus
// bytes into nWords 32-bit words, padding with zero bytes.
func encodeBCPL(s string, nWords int) []uint32 {
	buf := make([]byte, nWords*4)
	buf[0] = byte(len(s))
	copy(buf[1:], s)
	out := make([]uint32, nWords)
	for i := range out {
		out[i] = uint32(buf[4*i])<<24 | uint32(buf[4*i+1])<<16 | uint32(buf[4*i+2])<<8 | uint32(buf[4*i+3])
	}
	return out
}

// Encode writes f in the classic big-endian TFM binary layout.
func (f *File) Encode(w io.Writer) error {
	n := 0
	if f.Ec >= f.Bc {
		n = int(f.Ec-f.Bc) + 1
	}
	lh := uint16(headerWords + len(f.HeaderRest))
	lf := uint16(6+int(lh)) + uint16(n) + uint16(len(f.Widths)) + uint16(len(f.Heights)) +
		uint16(len(f.Depths)) + uint16(len(f.Italics)) + uint16(len(f.LigKern)) +
		uint16(len(f.Kern)) + uint16(len(f.Exten)) + uint16(len(f.Params))

	pre := [12]uint16{
		lf, lh, uint16(f.Bc), uint16(f.Ec),
		uint16(len(f.Widths)), uint16(len(f.Heights)), uint16(len(f.Depths)), uint16(len(f.Italics)),
		uint16(len(f.LigKern)), uint16(len(f.Kern)), uint16(len(f.Exten)), uint16(len(f.Params)),
	}
	if err := binary.Write(w, binary.BigEndian, &pre); err != nil {
		return err
	}

	header := make([]uint32, 0, lh)
	header = append(header, f.Checksum, uint32(f.DesignSize))
	header = append(header, encodeBCPL(f.CodingScheme, 10)...)
	header = append(header, encodeBCPL(f.Family, 5)...)
	faceWord := uint32(f.Face)
	if f.SevenBitSafe {
		faceWord |= 0xFF000000
	}
	header = append(header, faceWord)
	header = append(header, f.HeaderRest...)
	if err := binary.Write(w, binary.BigEndian, header); err != nil {
		return err
	}

	for c := f.Bc; c <= f.Ec; c++ {
		ci := f.CharInfo[c]
		row := [4]byte{
			ci.WidthIndex,
			ci.HeightIndex<<4 | ci.DepthIndex,
			ci.ItalicIndex<<2 | ci.Tag,
			ci.Remainder,
		}
		if err := binary.Write(w, binary.BigEndian, &row); err != nil {
			return err
		}
	}

	for _, tbl := range [][]zrtex.Fixed{f.Widths, f.Heights, f.Depths, f.Italics} {
		if err := writeFixedTable(w, tbl); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, f.LigKern); err != nil {
		return err
	}
	if err := writeFixedTable(w, f.Kern); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, f.Exten); err != nil {
		return err
	}
	return writeFixedTable(w, f.Params)
}

func writeFixedTable(w io.Writer, tbl []zrtex.Fixed) error {
	raw := make([]int32, len(tbl))
	for i, v := range tbl {
		raw[i] = int32(v)
	}
	return binary.Write(w, binary.BigEndian, raw)
}

// Width looks up a character's width, or 0 if it is not present in the
// font (WidthIndex 0 is conventionally the all-zero "missing" slot).
func (f *File) Width(c int32) zrtex.Fixed {
	ci, ok := f.CharInfo[c]
	if !ok || int(ci.WidthIndex) >= len(f.Widths) {
		return 0
	}
	return f.Widths[ci.WidthIndex]
}
