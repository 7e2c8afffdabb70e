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
	"bytes"
	"testing"

	"seehuhn.de/go/zrtex"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := &File{
		CodeWidth:    CodeWidthTFM,
		Checksum:     0,
		DesignSize:   1 << 20,
		CodingScheme: "TeX text",
		Family:       "TESTFONT",
		Bc:           65,
		Ec:           66,
		CharInfo: map[int32]CharInfo{
			65: {WidthIndex: 1},
			66: {WidthIndex: 2, HeightIndex: 1},
		},
		Widths:  []zrtex.Fixed{0, 1 << 19, 1 << 18},
		Heights: []zrtex.Fixed{0, 1 << 17},
		Depths:  []zrtex.Fixed{0},
		Italics: []zrtex.Fixed{0},
		Params:  []zrtex.Fixed{0, 1 << 20},
	}

	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(&buf, CodeWidthTFM)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bc != f.Bc || got.Ec != f.Ec {
		t.Fatalf("bc/ec = %d/%d, want %d/%d", got.Bc, got.Ec, f.Bc, f.Ec)
	}
	if got.CodingScheme != f.CodingScheme {
		t.Errorf("coding scheme = %q, want %q", got.CodingScheme, f.CodingScheme)
	}
	if got.Family != f.Family {
		t.Errorf("family = %q, want %q", got.Family, f.Family)
	}
	if got.Width(65) != f.Widths[1] {
		t.Errorf("width(65) = %v, want %v", got.Width(65), f.Widths[1])
	}
	if got.Width(66) != f.Widths[2] {
		t.Errorf("width(66) = %v, want %v", got.Width(66), f.Widths[2])
	}
	if len(got.Params) != len(f.Params) || got.Params[1] != f.Params[1] {
		t.Errorf("params = %v, want %v", got.Params, f.Params)
	}
}

func TestWidthMissingCharacter(t *testing.T) {
	f := &File{Bc: 1, Ec: 0, CharInfo: map[int32]CharInfo{}}
	if f.Width(5) != 0 {
		t.Error("missing character should report width 0")
	}
}
