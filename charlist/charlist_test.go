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

package charlist

import "testing"

func TestRangifyThresholdBoundary(t *testing.T) {
	codes := []int32{0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29}
	l := FromCodes(codes)

	items := Rangify(l, 8)
	if len(items) != 1 || items[0].Start != 0x21 || items[0].End != 0x29 {
		t.Fatalf("threshold 8: got %+v, want one range 0x21..0x29", items)
	}

	items = Rangify(l, 10)
	if len(items) != len(codes) {
		t.Fatalf("threshold 10: got %d items, want %d individual atoms", len(items), len(codes))
	}
	for _, it := range items {
		if it.IsRange() {
			t.Errorf("item %+v should not be a range under threshold 10", it)
		}
	}
}

func TestNamedRegistryRoundTrip(t *testing.T) {
	gl94db, ok := Lookup("GL94DB")
	if !ok {
		t.Fatal("GL94DB not registered")
	}
	name, ok := MatchName(gl94db)
	if !ok || name != "GL94DB" {
		t.Fatalf("MatchName(GL94DB) = %q, %v", name, ok)
	}
}

func TestMatchNameRejectsDifferentSet(t *testing.T) {
	l := FromCodes([]int32{1, 2, 3})
	if _, ok := MatchName(l); ok {
		t.Error("small set should not match any registered named charlist")
	}
}

func TestUnionDifference(t *testing.T) {
	a := FromCodes([]int32{1, 2, 3, 5})
	b := FromCodes([]int32{3, 4, 5})
	u := Union(a, b)
	if u.Len() != 5 {
		t.Errorf("union len = %d, want 5", u.Len())
	}
	d := Difference(a, b)
	if d.Len() != 2 {
		t.Errorf("difference len = %d, want 2: %v", d.Len(), d.Codes())
	}
}

func TestFromCodesMergesAdjacent(t *testing.T) {
	l := FromCodes([]int32{5, 3, 4, 10})
	if len(l.Ranges) != 2 {
		t.Fatalf("got %d ranges, want 2: %+v", len(l.Ranges), l.Ranges)
	}
	if l.Ranges[0] != (Range{Start: 3, End: 5}) {
		t.Errorf("range 0 = %+v", l.Ranges[0])
	}
}
