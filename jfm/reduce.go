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
	"sort"

	"seehuhn.de/go/zrtex"
)

// RawEntry is one character's unreduced metric triple, the input to every
// reducer in this file (§4.7).
type RawEntry struct {
	Code       int32
	W, H, D    zrtex.Fixed
}

// classKey identifies one (width, height-slot, depth-slot) combination.
type classKey struct {
	w      zrtex.Fixed
	hSlot  int
	dSlot  int
}

// Reduced is the result of reducing a raw metric table: the distinct width
// values (direct index, §4.7 caps this at 255), the height/depth class
// representatives (capped at 16, slot 0 reserved for zero), and the
// per-character class assignment, classes numbered by descending
// frequency with ties broken by first-seen order (§8's stability
// invariant).
type Reduced struct {
	Widths      []zrtex.Fixed
	HeightReps  []zrtex.Fixed
	DepthReps   []zrtex.Fixed
	CodeToClass map[int32]int
	// ClassOf lists each class's (width, reduced-height, reduced-depth)
	// triple, indexed by the class numbers CodeToClass assigns.
	ClassOf []RawEntry
}

// Reduce implements tfm_reduce, the classic reducer: widths are
// enumerated directly (at most 255 distinct values, else an error);
// heights and depths are independently compressed via the rounding cover
// with a target of 15 non-zero slots (m=16, slot 0 reserved for the zero
// value every JFM table carries); the resulting (w,h,d) triples are
// counted, and classes are numbered by descending frequency.
func Reduce(entries []RawEntry) (*Reduced, error) {
	widthSet := map[zrtex.Fixed]bool{}
	var heights, depths []zrtex.Fixed
	for _, e := range entries {
		widthSet[e.W] = true
		if e.H != 0 {
			heights = append(heights, e.H)
		}
		if e.D != 0 {
			depths = append(depths, e.D)
		}
	}
	if len(widthSet) > 255 {
		return nil, &zrtex.SemanticError{Msg: "more than 255 distinct character widths; tfm_reduce cannot represent them"}
	}
	widths := sortedKeys(widthSet)
	widthIndex := make(map[zrtex.Fixed]int, len(widths))
	for i, w := range widths {
		widthIndex[w] = i
	}

	hReps, hSlotOf := reduceAxis(heights, 16)
	dReps, dSlotOf := reduceAxis(depths, 16)

	return buildClasses(entries, widths, widthIndex, hReps, hSlotOf, dReps, dSlotOf), nil
}

// reduceAxis reduces values (which may contain zeros, skipped: zero always
// maps to slot 0) to at most maxSlots classes via shorten+cover, and
// returns the representative table (index 0 is the zero value) plus a
// lookup from value to slot.
func reduceAxis(values []zrtex.Fixed, maxSlots int) ([]zrtex.Fixed, map[zrtex.Fixed]int) {
	distinct := dedupeSorted(values)
	reps := []zrtex.Fixed{0}
	slotOf := map[zrtex.Fixed]int{0: 0}
	if len(distinct) == 0 {
		return reps, slotOf
	}
	e := shorten(distinct, maxSlots-1)
	classSlot, classReps := cover(distinct, e, SwMid)
	reps = append(reps, classReps...)
	for i, v := range distinct {
		slotOf[v] = classSlot[i] + 1
	}
	return reps, slotOf
}

func buildClasses(entries []RawEntry, widths []zrtex.Fixed, widthIndex map[zrtex.Fixed]int,
	hReps []zrtex.Fixed, hSlotOf map[zrtex.Fixed]int, dReps []zrtex.Fixed, dSlotOf map[zrtex.Fixed]int) *Reduced {
	type counted struct {
		key   classKey
		first int
		count int
	}
	order := map[classKey]int{}
	var counts []*counted
	for i, e := range entries {
		key := classKey{w: e.W, hSlot: hSlotOf[e.H], dSlot: dSlotOf[e.D]}
		if idx, ok := order[key]; ok {
			counts[idx].count++
			continue
		}
		order[key] = len(counts)
		counts = append(counts, &counted{key: key, first: i, count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

	classOf := make([]RawEntry, len(counts))
	classIndex := make(map[classKey]int, len(counts))
	for i, c := range counts {
		classIndex[c.key] = i
		classOf[i] = RawEntry{W: c.key.w, H: hReps[c.key.hSlot], D: dReps[c.key.dSlot]}
	}

	codeToClass := make(map[int32]int, len(entries))
	for _, e := range entries {
		key := classKey{w: e.W, hSlot: hSlotOf[e.H], dSlot: dSlotOf[e.D]}
		codeToClass[e.Code] = classIndex[key]
	}

	return &Reduced{
		Widths:      widths,
		HeightReps:  hReps,
		DepthReps:   dReps,
		CodeToClass: codeToClass,
		ClassOf:     classOf,
	}
}

func sortedKeys(set map[zrtex.Fixed]bool) []zrtex.Fixed {
	out := make([]zrtex.Fixed, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// convergenceThreshold is the balanced reducers' bisection stopping
// precision, expressed in Fixed units (2^-20 per unit): one unit, about
// 9.5e-7, the finest step the integer bisection can resolve. Both
// ReduceJPL and ReduceJPLX use it.
const convergenceThreshold = 1

// ReduceJPL implements tfm_reduce_jpl, the balanced reducer: widths are
// bounded by error dw, heights and depths share a bound dh found by
// doubling-then-bisecting search so that the resulting (w,h,d) triple set
// has at most 256 members. vmt[0] holds the all-zero triple whenever any
// character maps to one, per §3's reserved-zero-slot convention.
func ReduceJPL(entries []RawEntry, dw zrtex.Fixed) (dwOut, dhOut zrtex.Fixed, imt map[int32]int, vmt []RawEntry) {
	widths := make([]zrtex.Fixed, len(entries))
	heights := make([]zrtex.Fixed, len(entries))
	depths := make([]zrtex.Fixed, len(entries))
	for i, e := range entries {
		widths[i], heights[i], depths[i] = e.W, e.H, e.D
	}
	wDistinct := dedupeSorted(widths)
	wE := dw
	if wE < 1 {
		wE = shorten(wDistinct, 256)
	}
	wSlot, wReps := cover(wDistinct, wE, SwMid)
	wSlotOf := make(map[zrtex.Fixed]int, len(wDistinct))
	for i, v := range wDistinct {
		wSlotOf[v] = wSlot[i]
	}

	budget := 256
	if len(wReps) > 0 {
		budget /= len(wReps)
	}
	dh := searchDh(heights, depths, budget)

	hDistinct := dedupeSorted(heights)
	dDistinct := dedupeSorted(depths)
	hSlot, hReps := cover(hDistinct, dh, SwMid)
	dSlot, dReps := cover(dDistinct, dh, SwMid)
	hSlotOf := make(map[zrtex.Fixed]int, len(hDistinct))
	for i, v := range hDistinct {
		hSlotOf[v] = hSlot[i]
	}
	dSlotOf := make(map[zrtex.Fixed]int, len(dDistinct))
	for i, v := range dDistinct {
		dSlotOf[v] = dSlot[i]
	}

	imt = make(map[int32]int, len(entries))
	seen := map[[3]int]int{}
	for _, e := range entries {
		key := [3]int{wSlotOf[e.W], hSlotOf[e.H], dSlotOf[e.D]}
		idx, ok := seen[key]
		if !ok {
			idx = len(vmt)
			seen[key] = idx
			vmt = append(vmt, RawEntry{W: wReps[key[0]], H: hReps[key[1]], D: dReps[key[2]]})
		}
		imt[e.Code] = idx
	}
	vmt = reserveZeroSlot(imt, vmt)
	return wE, dh, imt, vmt
}

// reserveZeroSlot moves the class holding the literal (0,0,0) triple to
// value_table index 0, matching §3's data model (the classic Reduce
// already gets this for free: its height/depth representative tables
// always prepend a zero slot). If no character maps to an all-zero
// triple there is nothing to reserve, and the table is left as the
// balanced reducer built it rather than grown past its class budget.
func reserveZeroSlot(imt map[int32]int, vmt []RawEntry) []RawEntry {
	zeroIdx := -1
	for i, e := range vmt {
		if e.W == 0 && e.H == 0 && e.D == 0 {
			zeroIdx = i
			break
		}
	}
	if zeroIdx <= 0 {
		return vmt
	}
	vmt[0], vmt[zeroIdx] = vmt[zeroIdx], vmt[0]
	for code, idx := range imt {
		switch idx {
		case 0:
			imt[code] = zeroIdx
		case zeroIdx:
			imt[code] = 0
		}
	}
	return vmt
}

// searchDh binary-searches the smallest dh (doubling-probe to find an
// upper bound, then bisecting) so that the combined height/depth class
// count stays within budget.
func searchDh(heights, depths []zrtex.Fixed, budget int) zrtex.Fixed {
	if budget < 1 {
		budget = 1
	}
	hDistinct := dedupeSorted(heights)
	dDistinct := dedupeSorted(depths)
	fits := func(dh zrtex.Fixed) bool {
		return classCount(hDistinct, dh)*classCount(dDistinct, dh) <= budget
	}
	if fits(0) {
		return 0
	}
	lo, hi := zrtex.Fixed(0), zrtex.Fixed(1)
	for !fits(hi) {
		hi *= 2
		if hi > 1<<20 {
			break
		}
	}
	lo = hi / 2
	for hi-lo > convergenceThreshold {
		mid := lo + (hi-lo)/2
		if mid == lo {
			break
		}
		if fits(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// ReduceJPLX implements tfm_reduce_jpl_x, the ratio-balanced reducer: a
// single parameter d bounds height/depth directly and width by d/bRatio,
// found by the same doubling-then-bisection schedule used by ReduceJPL.
// Like ReduceJPL, vmt[0] is reserved for the all-zero triple whenever any
// character maps to one.
const bRatio = 8

func ReduceJPLX(entries []RawEntry, budget int) (d zrtex.Fixed, imt map[int32]int, vmt []RawEntry) {
	widths := make([]zrtex.Fixed, len(entries))
	heights := make([]zrtex.Fixed, len(entries))
	depths := make([]zrtex.Fixed, len(entries))
	for i, e := range entries {
		widths[i], heights[i], depths[i] = e.W, e.H, e.D
	}
	wDistinct := dedupeSorted(widths)
	hDistinct := dedupeSorted(heights)
	dDistinct := dedupeSorted(depths)

	fits := func(dd zrtex.Fixed) bool {
		wE := dd / bRatio
		return classCount(wDistinct, wE)*classCount(hDistinct, dd)*classCount(dDistinct, dd) <= budget
	}
	lo, hi := zrtex.Fixed(0), zrtex.Fixed(1)
	if !fits(hi) {
		for !fits(hi) {
			hi *= 2
			if hi > 1<<20 {
				break
			}
		}
		lo = hi / 2
		for hi-lo > convergenceThreshold {
			mid := lo + (hi-lo)/2
			if mid == lo {
				break
			}
			if fits(mid) {
				hi = mid
			} else {
				lo = mid
			}
		}
		d = hi
	}

	wE := d / bRatio
	wSlot, wReps := cover(wDistinct, wE, SwMid)
	hSlot, hReps := cover(hDistinct, d, SwMid)
	dSlot, dReps := cover(dDistinct, d, SwMid)
	wSlotOf := make(map[zrtex.Fixed]int, len(wDistinct))
	for i, v := range wDistinct {
		wSlotOf[v] = wSlot[i]
	}
	hSlotOf := make(map[zrtex.Fixed]int, len(hDistinct))
	for i, v := range hDistinct {
		hSlotOf[v] = hSlot[i]
	}
	dSlotOf := make(map[zrtex.Fixed]int, len(dDistinct))
	for i, v := range dDistinct {
		dSlotOf[v] = dSlot[i]
	}

	imt = make(map[int32]int, len(entries))
	seen := map[[3]int]int{}
	for _, e := range entries {
		key := [3]int{wSlotOf[e.W], hSlotOf[e.H], dSlotOf[e.D]}
		idx, ok := seen[key]
		if !ok {
			idx = len(vmt)
			seen[key] = idx
			vmt = append(vmt, RawEntry{W: wReps[key[0]], H: hReps[key[1]], D: dReps[key[2]]})
		}
		imt[e.Code] = idx
	}
	vmt = reserveZeroSlot(imt, vmt)
	return d, imt, vmt
}
