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

func mustCook(t *testing.T, src string) *zrtex.Node {
	t.Helper()
	toks, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	n, err := BuildTree(toks)
	if err != nil {
		t.Fatal(err)
	}
	cooked, err := Cook(n, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cooked
}

func TestCookNumericPair(t *testing.T) {
	n := mustCook(t, "(FACE F 0)")
	if len(n.Items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(n.Items), n.Items)
	}
	num := n.Items[1]
	if !num.IsCooked() || num.Kind != zrtex.KindF || num.Value != 0 {
		t.Errorf("items[1] = %+v, want cooked F 0", num)
	}
}

func TestCookDropsComment(t *testing.T) {
	n := mustCook(t, "(FAMILY (COMMENT ignore me) TEX)")
	if len(n.Items) != 2 {
		t.Fatalf("got %d items, want 2 (COMMENT dropped): %+v", len(n.Items), n.Items)
	}
	if n.Items[1].Bareword != "TEX" {
		t.Errorf("items[1] = %+v, want bareword TEX", n.Items[1])
	}
}

func TestCookRecursesNestedLists(t *testing.T) {
	n := mustCook(t, "(CHARACTER C A (CHARWD R 1.0))")
	wd := n.Items[2]
	if !wd.IsList() || wd.Head() != "CHARWD" {
		t.Fatalf("items[2] = %+v", wd)
	}
	val := wd.Items[1]
	if !val.IsCooked() || val.Kind != zrtex.KindR || val.Value != 1048576 {
		t.Errorf("CHARWD value = %+v, want cooked R 1048576", val)
	}
}

func TestCookAndEmitRoundTrip(t *testing.T) {
	src := "(FAMILY TEX) (FACE F 0) (CHARACTER C A (CHARWD R 1.0) (CHARHT R 0.5))"
	toks, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	forest, err := BuildForest(toks)
	if err != nil {
		t.Fatal(err)
	}
	s := &zrtex.Struct{}
	for _, n := range forest {
		cooked, err := Cook(n, nil)
		if err != nil {
			t.Fatal(err)
		}
		s.Lists = append(s.Lists, cooked)
	}

	text, err := EmitStruct(s, DefaultEmitOptions())
	if err != nil {
		t.Fatal(err)
	}

	toks2, err := Tokenize([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	forest2, err := BuildForest(toks2)
	if err != nil {
		t.Fatal(err)
	}
	if len(forest2) != len(forest) {
		t.Fatalf("re-parsed %d top-level lists, want %d", len(forest2), len(forest))
	}
	for i, n := range forest2 {
		cooked, err := Cook(n, nil)
		if err != nil {
			t.Fatal(err)
		}
		if cooked.Head() != s.Lists[i].Head() {
			t.Errorf("list %d head = %q, want %q", i, cooked.Head(), s.Lists[i].Head())
		}
	}
}
