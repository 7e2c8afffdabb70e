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

package zvp

import (
	"testing"

	"seehuhn.de/go/zrtex"
)

func charwd(v int64) *zrtex.Node {
	return zrtex.NewList(zrtex.NewBareword("CHARWD"), zrtex.NewCooked(zrtex.KindR, v))
}

func charsInType(t int32, codes ...int32) *zrtex.Node {
	items := []*zrtex.Node{zrtex.NewBareword("CHARSINTYPE"), zrtex.NewCooked(zrtex.KindD, int64(t))}
	for _, c := range codes {
		items = append(items, zrtex.NewCooked(zrtex.KindD, int64(c)))
	}
	return zrtex.NewList(items...)
}

func charsInSubtype(t, u int32, codes ...int32) *zrtex.Node {
	items := []*zrtex.Node{zrtex.NewBareword("CHARSINSUBTYPE"), zrtex.NewCooked(zrtex.KindD, int64(t)), zrtex.NewCooked(zrtex.KindD, int64(u))}
	for _, c := range codes {
		items = append(items, zrtex.NewCooked(zrtex.KindD, int64(c)))
	}
	return zrtex.NewList(items...)
}

func TestDivideSubtypeMigration(t *testing.T) {
	tree := &zrtex.Struct{Lists: []*zrtex.Node{
		zrtex.NewList(zrtex.NewBareword("TYPE"), zrtex.NewCooked(zrtex.KindD, 1), charwd(524288)),   // 0.5
		zrtex.NewList(zrtex.NewBareword("SUBTYPE"), zrtex.NewCooked(zrtex.KindD, 1), zrtex.NewCooked(zrtex.KindD, 1), charwd(700000)), // disagrees with the parent's 0.5
		charsInType(1, 0x21, 0x22),
		charsInSubtype(1, 1, 0x22),
		zrtex.NewList(zrtex.NewBareword("GLUEKERN"), zrtex.NewCooked(zrtex.KindD, 1), zrtex.NewCooked(zrtex.KindD, 2)),
		zrtex.NewList(zrtex.NewBareword("CODESPACE"), zrtex.NewList(zrtex.NewBareword("CTRANGE"), zrtex.NewCooked(zrtex.KindH, 0x21), zrtex.NewCooked(zrtex.KindH, 0x22))),
	}}

	_, jfm, err := Divide(tree, 8)
	if err != nil {
		t.Fatal(err)
	}

	var types []int32
	var gluekernTypes []int32
	for _, n := range jfm.Lists {
		switch n.Head() {
		case "TYPE":
			v, _ := intArg(n.Items, 1)
			types = append(types, v)
		case "GLUEKERN":
			v, _ := intArg(n.Items, 1)
			gluekernTypes = append(gluekernTypes, v)
		}
	}
	if len(types) != 2 {
		t.Fatalf("expected a new TYPE allocated from the migrated subtype, got types=%v", types)
	}
	if len(gluekernTypes) != 2 {
		t.Fatalf("expected GLUEKERN duplicated across the migration group, got %v", gluekernTypes)
	}
}

func TestDivideCharacterSynthesis(t *testing.T) {
	tree := &zrtex.Struct{Lists: []*zrtex.Node{
		zrtex.NewList(zrtex.NewBareword("TYPE"), zrtex.NewCooked(zrtex.KindD, 1), charwd(524288)),
		charsInType(1, 0x21),
		zrtex.NewList(zrtex.NewBareword("CODESPACE"), zrtex.NewCooked(zrtex.KindH, 0x21)),
	}}
	vf, _, err := Divide(tree, 8)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range vf.Lists {
		if n.Head() == "CHARACTER" {
			found = true
			code, _ := intArg(n.Items, 1)
			if code != 0x21 {
				t.Errorf("synthesized char has code %d, want 0x21", code)
			}
		}
	}
	if !found {
		t.Fatal("no CHARACTER packet synthesized for codespace entry")
	}
}

func TestDivideInconsistentTypeRejected(t *testing.T) {
	tree := &zrtex.Struct{Lists: []*zrtex.Node{
		charsInType(1, 0x21), // TYPE 1 referenced but never declared
		zrtex.NewList(zrtex.NewBareword("CODESPACE"), zrtex.NewCooked(zrtex.KindH, 0x21)),
	}}
	if _, _, err := Divide(tree, 8); err == nil {
		t.Fatal("expected error for CHARSINTYPE without a matching TYPE")
	}
}
