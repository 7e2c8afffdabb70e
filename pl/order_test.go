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

package pl

import (
	"testing"

	"seehuhn.de/go/zrtex"
)

func TestRearrangeOrdersByDeclarationCategory(t *testing.T) {
	src := "(CODINGSCHEME TEX) (VTITLE T) (FAMILY TEX)"
	toks, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	forest, err := BuildForest(toks)
	if err != nil {
		t.Fatal(err)
	}
	s := &zrtex.Struct{Lists: forest}
	out := Rearrange(s, nil)
	want := []string{"VTITLE", "FAMILY", "CODINGSCHEME"}
	for i, w := range want {
		if out.Lists[i].Head() != w {
			t.Errorf("position %d = %q, want %q", i, out.Lists[i].Head(), w)
		}
	}
}

func TestRearrangeGroupsByCharacterCode(t *testing.T) {
	src := "(CHARACTER C B (CHARWD R 1.0)) (CHARACTER C A (CHARWD R 1.0))"
	toks, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	forest, err := BuildForest(toks)
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range forest {
		cooked, err := Cook(n, nil)
		if err != nil {
			t.Fatal(err)
		}
		forest[i] = cooked
	}
	s := &zrtex.Struct{Lists: forest}
	out := Rearrange(s, nil)
	a := out.Lists[0].Items[1]
	b := out.Lists[1].Items[1]
	if a.Value != 'A' || b.Value != 'B' {
		t.Errorf("order = %v, %v, want A before B", a.Value, b.Value)
	}
}
