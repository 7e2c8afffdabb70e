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
	"testing"

	"seehuhn.de/go/zrtex"
)

func sampleFile() *File {
	return &File{
		VTitle:     []byte("sample"),
		Checksum:   0x12345678,
		DesignSize: zrtex.Fixed(10 << 20),
		FontDefs: []FontDef{
			{ID: 0, Checksum: 1, AtSize: zrtex.Fixed(10 << 20), DesignSize: zrtex.Fixed(10 << 20), Name: "cmr10"},
		},
		Chars: []Char{
			{Code: 65, TFM: 100, DVI: []Instr{{Op: OpSetChar, Code: 66}}},
		},
	}
}

func TestVFEncodeDecodeRoundTrip(t *testing.T) {
	f := sampleFile()
	data, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(data)%4 != 0 {
		t.Fatalf("encoded VF length %d is not 4-byte aligned", len(data))
	}
	got, err := Decode(data, Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got.Checksum != f.Checksum || got.DesignSize != f.DesignSize {
		t.Errorf("preamble mismatch: %+v", got)
	}
	if len(got.FontDefs) != 1 || got.FontDefs[0].Name != "cmr10" {
		t.Errorf("font-defs mismatch: %+v", got.FontDefs)
	}
	if len(got.Chars) != 1 || got.Chars[0].Code != 65 || got.Chars[0].TFM != 100 {
		t.Errorf("chars mismatch: %+v", got.Chars)
	}
}

func TestVFLongFormForHighCode(t *testing.T) {
	f := &File{Chars: []Char{{Code: 300, DVI: []Instr{{Op: OpSetChar, Code: 10}}}}}
	data, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	const markerOffset = 3 + 4 + 4 // preamble fixed fields with an empty vtitle
	if data[markerOffset] != 242 {
		t.Errorf("code 300 must use the long packet form, got marker byte %d", data[markerOffset])
	}
}

func TestVFRejectsBadPreamble(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3}, Strict); err == nil {
		t.Fatal("expected error for non-247 preamble byte")
	}
}

func TestVFFontDefAfterCharRejected(t *testing.T) {
	var bad []byte
	bad = append(bad, 247, 202, 0) // preamble, k=0
	bad = append(bad, be32(0)...)  // checksum
	bad = append(bad, be32(0)...)  // design size
	bad = append(bad, 1, 65, 0, 0, 0, 0) // short char packet: pl=1, cc=65, tfm[3], dvi[1]
	bad = append(bad, 243, 0) // font-def, 1-byte id = 0
	bad = append(bad, be32(0)...) // checksum
	bad = append(bad, be32(0)...) // at-size
	bad = append(bad, be32(0)...) // design size
	bad = append(bad, 0, 0)       // area length, name length
	bad = append(bad, 248, 248, 248, 248)
	if _, err := Decode(bad, Strict); err == nil {
		t.Fatal("expected error for font-def record after first char packet")
	}
}
