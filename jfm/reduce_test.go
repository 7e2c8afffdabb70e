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
	"testing"

	"seehuhn.de/go/zrtex"
)

func TestCoverGreedyPartition(t *testing.T) {
	sorted := []zrtex.Fixed{0, 1, 2, 100, 101}
	slotOf, reps := cover(sorted, 5, SwMid)
	if len(reps) != 2 {
		t.Fatalf("got %d classes, want 2: %v", len(reps), reps)
	}
	if slotOf[0] != slotOf[2] || slotOf[3] != slotOf[4] || slotOf[0] == slotOf[3] {
		t.Errorf("slot assignment = %v, want [0,0,0,1,1]", slotOf)
	}
}

func TestShortenFindsMinimalE(t *testing.T) {
	sorted := []zrtex.Fixed{0, 10, 20, 1000, 1010}
	e := shorten(sorted, 2)
	if classCount(sorted, e) > 2 {
		t.Fatalf("shorten returned e=%d but class count is %d, want <=2", e, classCount(sorted, e))
	}
	if e > 0 && classCount(sorted, e-1) <= 2 {
		t.Errorf("e=%d is not minimal: e-1 already satisfies the bound", e)
	}
}

func TestReduceWidthOverflow(t *testing.T) {
	var entries []RawEntry
	for i := int32(0); i < 260; i++ {
		entries = append(entries, RawEntry{Code: i, W: zrtex.Fixed(i + 1)})
	}
	if _, err := Reduce(entries); err == nil {
		t.Fatal("expected error for >255 distinct widths")
	}
}

func TestReduceClassFrequencyOrder(t *testing.T) {
	entries := []RawEntry{
		{Code: 1, W: 10, H: 5, D: 0},
		{Code: 2, W: 20, H: 5, D: 0},
		{Code: 3, W: 30, H: 5, D: 0},
		{Code: 4, W: 10, H: 5, D: 0},
		{Code: 5, W: 40, H: 7, D: 0},
	}
	r, err := Reduce(entries)
	if err != nil {
		t.Fatal(err)
	}
	// (W=10,H=5) appears twice; every other combination appears once, so
	// it must be assigned class 0.
	if r.CodeToClass[1] != 0 || r.CodeToClass[4] != 0 {
		t.Errorf("codes 1,4 (most frequent combo) = class %d,%d, want 0,0", r.CodeToClass[1], r.CodeToClass[4])
	}
}

func TestReduceJPLBoundsError(t *testing.T) {
	var entries []RawEntry
	for i := int32(0); i < 50; i++ {
		entries = append(entries, RawEntry{Code: i, W: zrtex.Fixed(i), H: zrtex.Fixed(i * 3), D: zrtex.Fixed(i)})
	}
	dw, dh, imt, vmt := ReduceJPL(entries, 0)
	if len(vmt) > 256 {
		t.Fatalf("|vmt| = %d, want <= 256", len(vmt))
	}
	for _, e := range entries {
		idx, ok := imt[e.Code]
		if !ok || idx >= len(vmt) {
			t.Fatalf("code %d maps to class %d, out of range", e.Code, idx)
		}
		v := vmt[idx]
		if abs(v.W-e.W) > dw {
			t.Errorf("code %d width error %v exceeds dw %v", e.Code, v.W-e.W, dw)
		}
		if abs(v.H-e.H) > dh || abs(v.D-e.D) > dh {
			t.Errorf("code %d height/depth error exceeds dh %v", e.Code, dh)
		}
	}
}

func TestReserveZeroSlotSwapsExistingClass(t *testing.T) {
	imt := map[int32]int{10: 0, 11: 1, 12: 2}
	vmt := []RawEntry{
		{W: 5, H: 5, D: 5},
		{W: 0, H: 0, D: 0},
		{W: 9, H: 9, D: 9},
	}
	vmt = reserveZeroSlot(imt, vmt)
	if vmt[0] != (RawEntry{W: 0, H: 0, D: 0}) {
		t.Fatalf("vmt[0] = %+v, want the zero triple", vmt[0])
	}
	if imt[10] != 1 || imt[11] != 0 || imt[12] != 2 {
		t.Errorf("imt after swap = %v, want code 10->1, 11->0, 12->2", imt)
	}
}

func TestReserveZeroSlotNoopWithoutZeroTriple(t *testing.T) {
	imt := map[int32]int{10: 0, 11: 1}
	vmt := []RawEntry{{W: 5, H: 5, D: 5}, {W: 9, H: 9, D: 9}}
	got := reserveZeroSlot(imt, vmt)
	if len(got) != 2 || got[0].W != 5 || got[1].W != 9 {
		t.Errorf("reserveZeroSlot changed table with no zero triple present: %v", got)
	}
}

func TestReduceJPLReservesZeroSlotWhenPresent(t *testing.T) {
	entries := []RawEntry{
		{Code: 0, W: 0, H: 0, D: 0},
		{Code: 1, W: 100000, H: 200000, D: 0},
		{Code: 2, W: 300000, H: 400000, D: 0},
	}
	_, _, imt, vmt := ReduceJPL(entries, 1)
	idx := imt[0]
	if idx != 0 {
		t.Fatalf("all-zero code maps to class %d, want 0 (vmt=%v)", idx, vmt)
	}
	if vmt[0] != (RawEntry{W: 0, H: 0, D: 0}) {
		t.Errorf("vmt[0] = %+v, want the zero triple", vmt[0])
	}
}

func abs(x zrtex.Fixed) zrtex.Fixed {
	if x < 0 {
		return -x
	}
	return x
}
