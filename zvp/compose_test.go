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

func TestComposeRoundTripSingleType(t *testing.T) {
	tree := &zrtex.Struct{Lists: []*zrtex.Node{
		zrtex.NewList(zrtex.NewBareword("TYPE"), zrtex.NewCooked(zrtex.KindD, 1), charwd(524288)),
		charsInType(1, 0x21, 0x22),
		zrtex.NewList(zrtex.NewBareword("CODESPACE"), zrtex.NewList(zrtex.NewBareword("CTRANGE"), zrtex.NewCooked(zrtex.KindH, 0x21), zrtex.NewCooked(zrtex.KindH, 0x22))),
	}}
	vf, jfm, err := Divide(tree, 8)
	if err != nil {
		t.Fatal(err)
	}
	composed, err := Compose(vf, jfm)
	if err != nil {
		t.Fatal(err)
	}

	var sawType, sawChars bool
	for _, n := range composed.Lists {
		switch n.Head() {
		case "TYPE":
			sawType = true
		case "CHARSINTYPE":
			sawChars = true
			codes := codesFromItems(n.Items[2:])
			if len(codes) != 2 {
				t.Errorf("CHARSINTYPE has %d codes, want 2: %v", len(codes), codes)
			}
		}
	}
	if !sawType || !sawChars {
		t.Fatal("composed tree is missing TYPE/CHARSINTYPE")
	}
}

func TestBucketByMapGroupsIdenticalForms(t *testing.T) {
	chdsc := map[int32]chardesc{
		1: {mapNode: zrtex.NewList(zrtex.NewBareword("MAP"), zrtex.NewBareword("SETCHAR"))},
		2: {mapNode: zrtex.NewList(zrtex.NewBareword("MAP"), zrtex.NewBareword("SETCHAR"))},
		3: {mapNode: nil},
	}
	buckets := bucketByMap([]int32{1, 2, 3}, chdsc)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2 (one shared SETCHAR form, one nil)", len(buckets))
	}
	if len(buckets[0].codes) != 2 {
		t.Errorf("largest bucket has %d codes, want 2", len(buckets[0].codes))
	}
}

func TestClassifyBucketsPromotesFrequentToSubtype(t *testing.T) {
	buckets := []*bucket{
		{codes: []int32{1, 2, 3}},
		{codes: []int32{4, 5}},
		{codes: []int32{6}},
	}
	canonical, subtypes, singles := classifyBuckets(buckets)
	if canonical != buckets[0] {
		t.Error("canonical should be the largest bucket")
	}
	if len(subtypes) != 1 || subtypes[1] != buckets[1] {
		t.Errorf("expected bucket[1] promoted to subtype 1, got %v", subtypes)
	}
	if len(singles) != 1 || singles[0] != 6 {
		t.Errorf("expected singleton code 6, got %v", singles)
	}
}
