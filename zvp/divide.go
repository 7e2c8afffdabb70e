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
	"fmt"
	"sort"

	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/charlist"
)

type typeEntry struct {
	t    int32
	m    metric
	subs []int32 // subtype indices belonging to this type, in first-seen order
}

type subtypeEntry struct {
	t, u int32
	m    metric
}

// divider accumulates the side tables built while walking a composite ZVP
// tree (§4.8).
type divider struct {
	vfPass, jfmPass, bothPass []*zrtex.Node

	types      map[int32]*typeEntry
	subtypes   map[[2]int32]*subtypeEntry
	charsInTy  map[int32][]int32
	charsInSub map[[2]int32][]int32
	characters map[int32]metric
	gluekern   []*zrtex.Node
	codespace  *charlist.List

	typeOrder []int32
	charOrder []int32
}

// Divide splits a composite ZVP tree into its VF and JFM halves.
func Divide(tree *zrtex.Struct, threshold int) (vf, jfm *zrtex.Struct, err error) {
	d := &divider{
		types:      make(map[int32]*typeEntry),
		subtypes:   make(map[[2]int32]*subtypeEntry),
		charsInTy:  make(map[int32][]int32),
		charsInSub: make(map[[2]int32][]int32),
		characters: make(map[int32]metric),
	}
	if err := d.classify(tree); err != nil {
		return nil, nil, err
	}
	if d.codespace == nil {
		d.codespace = defaultCodespace()
	}
	if err := d.checkConsistency(); err != nil {
		return nil, nil, err
	}
	migrated, err := d.migrateSubtypes()
	if err != nil {
		return nil, nil, err
	}
	d.recompileGluekern(migrated)
	vfChars, err := d.synthesizeCharacters()
	if err != nil {
		return nil, nil, err
	}

	vf = &zrtex.Struct{}
	vf.Lists = append(vf.Lists, d.vfPass...)
	vf.Lists = append(vf.Lists, d.bothPass...)
	vf.Lists = append(vf.Lists, vfChars...)

	jfm = &zrtex.Struct{}
	jfm.Lists = append(jfm.Lists, d.jfmPass...)
	jfm.Lists = append(jfm.Lists, d.bothPass...)
	jfm.Lists = append(jfm.Lists, d.typeNodes()...)
	jfm.Lists = append(jfm.Lists, d.charsInTypeNodes()...)
	jfm.Lists = append(jfm.Lists, d.charsInSubtypeNodes()...)
	jfm.Lists = append(jfm.Lists, d.gluekern...)
	jfm.Lists = append(jfm.Lists, codespaceToNode(d.codespace, threshold))
	return vf, jfm, nil
}

func (d *divider) classify(tree *zrtex.Struct) error {
	for _, n := range tree.Lists {
		head := n.Head()
		switch {
		case sharedHeads[head]:
			d.bothPass = append(d.bothPass, n)
		case head == "TYPE":
			t, ok := intArg(n.Items, 1)
			if !ok {
				return &zrtex.SyntaxError{Msg: "TYPE list missing its numeric index"}
			}
			e := &typeEntry{t: t, m: extractMetric(n.Items[2:])}
			d.types[t] = e
			d.typeOrder = append(d.typeOrder, t)
		case head == "SUBTYPE":
			t, ok1 := intArg(n.Items, 1)
			u, ok2 := intArg(n.Items, 2)
			if !ok1 || !ok2 {
				return &zrtex.SyntaxError{Msg: "SUBTYPE list missing its numeric indices"}
			}
			d.subtypes[[2]int32{t, u}] = &subtypeEntry{t: t, u: u, m: extractMetric(n.Items[3:])}
		case head == "CHARSINTYPE":
			t, ok := intArg(n.Items, 1)
			if !ok {
				return &zrtex.SyntaxError{Msg: "CHARSINTYPE list missing its numeric index"}
			}
			d.charsInTy[t] = append(d.charsInTy[t], codesFromItems(n.Items[2:])...)
		case head == "CHARSINSUBTYPE":
			t, ok1 := intArg(n.Items, 1)
			u, ok2 := intArg(n.Items, 2)
			if !ok1 || !ok2 {
				return &zrtex.SyntaxError{Msg: "CHARSINSUBTYPE list missing its numeric indices"}
			}
			d.charsInSub[[2]int32{t, u}] = append(d.charsInSub[[2]int32{t, u}], codesFromItems(n.Items[3:])...)
		case head == "CHARACTER":
			code, ok := intArg(n.Items, 1)
			if !ok {
				return &zrtex.SyntaxError{Msg: "CHARACTER list missing its code"}
			}
			d.characters[code] = extractMetric(n.Items[2:])
			d.charOrder = append(d.charOrder, code)
		case head == "GLUEKERN":
			d.gluekern = append(d.gluekern, n)
		case head == "CODESPACE":
			d.codespace = codespaceFromNode(n)
		case vfOnlyHeads[head]:
			d.vfPass = append(d.vfPass, n)
		default:
			d.jfmPass = append(d.jfmPass, n)
		}
	}
	return nil
}

func codesFromItems(items []*zrtex.Node) []int32 {
	var out []int32
	for _, it := range items {
		if it.IsList() && len(it.Items) >= 3 && it.Items[0].Bareword == "CTRANGE" {
			lo, hi := it.Items[1].Value, it.Items[2].Value
			for c := lo; c <= hi; c++ {
				out = append(out, int32(c))
			}
			continue
		}
		if it.IsCooked() {
			out = append(out, int32(it.Value))
		}
	}
	return out
}

// checkConsistency implements the §4.8 step-5 sanity checks that can be
// verified before migration runs.
func (d *divider) checkConsistency() error {
	for t := range d.charsInTy {
		if t == 0 {
			continue
		}
		if _, ok := d.types[t]; !ok {
			return &zrtex.StructuralError{Msg: fmt.Sprintf("CHARSINTYPE %d has no matching TYPE", t)}
		}
	}
	for t := range d.types {
		if t == 0 {
			continue
		}
		if _, ok := d.charsInTy[t]; !ok {
			return &zrtex.StructuralError{Msg: fmt.Sprintf("TYPE %d has no matching CHARSINTYPE", t)}
		}
	}
	inType := make(map[int32]int32)
	for t, codes := range d.charsInTy {
		for _, c := range codes {
			if prev, ok := inType[c]; ok && prev != 0 && t != 0 {
				return &zrtex.SemanticError{Msg: fmt.Sprintf("code %d assigned to both TYPE %d and TYPE %d", c, prev, t)}
			}
			inType[c] = t
		}
	}
	inSub := make(map[int32][2]int32)
	for k, codes := range d.charsInSub {
		for _, c := range codes {
			if _, ok := inSub[c]; ok {
				return &zrtex.SemanticError{Msg: fmt.Sprintf("code %d assigned to more than one subtype", c)}
			}
			if owner, ok := inType[c]; ok && owner != k[0] {
				return &zrtex.SemanticError{Msg: fmt.Sprintf("code %d in subtype (%d,%d) is outside its parent type's CHARSINTYPE", c, k[0], k[1])}
			}
			inSub[c] = k
		}
	}
	for c := range d.characters {
		if d.codespace != nil && !d.codespace.Contains(c) {
			return &zrtex.SemanticError{Msg: fmt.Sprintf("CHARACTER %d lies outside the codespace", c)}
		}
	}
	return nil
}

// migrateSubtypes implements §4.8 step 2, returning the migration-group
// table (parent type -> new type indices allocated from it) consumed by
// GLUEKERN recompilation.
func (d *divider) migrateSubtypes() (map[int32][]int32, error) {
	migrated := make(map[int32][]int32)
	target := make(map[int32]int32) // parent t -> allocated t'
	nextFree := int32(0)
	for t := range d.types {
		if t > nextFree {
			nextFree = t
		}
	}
	nextFree++

	var keys [][2]int32
	for k := range d.subtypes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	for _, k := range keys {
		t, u := k[0], k[1]
		sub := d.subtypes[k]
		parent, ok := d.types[t]
		if !ok {
			return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("SUBTYPE %d %d has no parent TYPE", t, u)}
		}
		if metricsAgree(parent.m, sub.m) {
			continue
		}
		tp, seen := target[t]
		if !seen {
			tp = nextFree
			nextFree++
			target[t] = tp
			migrated[t] = append(migrated[t], tp)

			d.types[tp] = &typeEntry{t: tp, m: sub.m}
			d.typeOrder = append(d.typeOrder, tp)
			codes := d.charsInSub[k]
			d.charsInTy[tp] = append(d.charsInTy[tp], codes...)
			removeCodes(d.charsInTy, t, codes)
			delete(d.charsInSub, k)
		} else {
			sub.t = tp
			d.subtypes[[2]int32{tp, u}] = sub
			delete(d.subtypes, k)
			codes := d.charsInSub[k]
			d.charsInSub[[2]int32{tp, u}] = codes
			delete(d.charsInSub, k)
			removeCodes(d.charsInTy, t, codes)
		}
	}
	return migrated, nil
}

func removeCodes(m map[int32][]int32, t int32, codes []int32) {
	if len(codes) == 0 {
		return
	}
	remove := make(map[int32]bool, len(codes))
	for _, c := range codes {
		remove[c] = true
	}
	kept := m[t][:0]
	for _, c := range m[t] {
		if !remove[c] {
			kept = append(kept, c)
		}
	}
	m[t] = kept
}

// recompileGluekern implements §4.8 step 3: duplicating rows that name a
// migrated type for every member of its migration group.
func (d *divider) recompileGluekern(migrated map[int32][]int32) {
	if len(migrated) == 0 {
		return
	}
	var out []*zrtex.Node
	for _, row := range d.gluekern {
		t, ok := intArg(row.Items, 1)
		group, migratedRow := migrated[t]
		if !ok || !migratedRow {
			out = append(out, row)
			continue
		}
		out = append(out, row)
		for _, tp := range group {
			clone := row.Clone()
			clone.Items[1] = zrtex.NewCooked(clone.Items[1].Kind, int64(tp))
			out = append(out, clone)
		}
	}
	d.gluekern = out
}

// synthesizeCharacters implements §4.8 step 4.
func (d *divider) synthesizeCharacters() ([]*zrtex.Node, error) {
	typeOf := make(map[int32]int32)
	for t, codes := range d.charsInTy {
		for _, c := range codes {
			typeOf[c] = t
		}
	}
	subOf := make(map[int32][2]int32)
	for k, codes := range d.charsInSub {
		for _, c := range codes {
			subOf[c] = k
		}
	}

	codes := d.codespace.Codes()
	var out []*zrtex.Node
	for _, c := range codes {
		t := typeOf[c]
		ty, ok := d.types[t]
		var wd metric
		if ok {
			wd = ty.m
		} else if t != 0 {
			return nil, &zrtex.StructuralError{Msg: fmt.Sprintf("code %d names TYPE %d which does not exist", c, t)}
		}
		m := metric{wd: wd.wd, hasWd: wd.hasWd, ht: wd.ht, hasHt: wd.hasHt, dp: wd.dp, hasDp: wd.hasDp, ic: wd.ic, hasIc: wd.hasIc}
		if own, ok := d.characters[c]; ok && own.mapNode != nil {
			m.mapNode = own.mapNode
		} else if k, ok := subOf[c]; ok {
			if sub, ok := d.subtypes[k]; ok && sub.m.mapNode != nil {
				m.mapNode = sub.m.mapNode
			}
		}
		if m.mapNode == nil && ty != nil {
			m.mapNode = ty.m.mapNode
		}
		indexArgs := []*zrtex.Node{codeArg(c)}
		out = append(out, buildMetricNode("CHARACTER", indexArgs, m))
	}
	return out, nil
}

func (d *divider) typeNodes() []*zrtex.Node {
	var out []*zrtex.Node
	for _, t := range d.typeOrder {
		e := d.types[t]
		out = append(out, buildMetricNode("TYPE", []*zrtex.Node{zrtex.NewCooked(zrtex.KindD, int64(t))}, e.m))
	}
	return out
}

func (d *divider) charsInTypeNodes() []*zrtex.Node {
	var out []*zrtex.Node
	for _, t := range d.typeOrder {
		codes := d.charsInTy[t]
		if len(codes) == 0 {
			continue
		}
		items := []*zrtex.Node{zrtex.NewBareword("CHARSINTYPE"), zrtex.NewCooked(zrtex.KindD, int64(t))}
		for _, c := range codes {
			items = append(items, codeArg(c))
		}
		out = append(out, zrtex.NewList(items...))
	}
	return out
}

func (d *divider) charsInSubtypeNodes() []*zrtex.Node {
	var keys [][2]int32
	for k := range d.charsInSub {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	var out []*zrtex.Node
	for _, k := range keys {
		codes := d.charsInSub[k]
		if len(codes) == 0 {
			continue
		}
		items := []*zrtex.Node{zrtex.NewBareword("CHARSINSUBTYPE"), zrtex.NewCooked(zrtex.KindD, int64(k[0])), zrtex.NewCooked(zrtex.KindD, int64(k[1]))}
		for _, c := range codes {
			items = append(items, codeArg(c))
		}
		out = append(out, zrtex.NewList(items...))
	}
	return out
}
