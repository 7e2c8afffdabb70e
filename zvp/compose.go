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
	"seehuhn.de/go/zrtex/pl"
)

// chardesc is one code's composed (CHARWD, MAP) pair, read off a VF
// CHARACTER packet.
type chardesc struct {
	wd      zrtex.Fixed
	hasWd   bool
	mapNode *zrtex.Node
}

// typedesc is one JFM TYPE's (CHARWD, MAP) pair.
type typedesc struct {
	t       int32
	wd      zrtex.Fixed
	hasWd   bool
	ht, dp  zrtex.Fixed
	hasHt, hasDp bool
	mapNode *zrtex.Node
}

// Compose runs the ZVP divider in reverse (§4.9): given a parsed VF and
// parsed JFM tree, it reconstructs a single ZVP document, inferring
// SUBTYPE buckets from how often each type's characters share a MAP form.
func Compose(vf, jfm *zrtex.Struct) (*zrtex.Struct, error) {
	var shared []*zrtex.Node
	var vfOnly []*zrtex.Node
	var jfmOnly []*zrtex.Node
	vfShared := map[string]*zrtex.Node{}
	jfmShared := map[string]*zrtex.Node{}

	for _, n := range vf.Lists {
		head := n.Head()
		if sharedHeads[head] {
			vfShared[head] = n
			continue
		}
		if head == "CHARACTER" {
			continue
		}
		vfOnly = append(vfOnly, n)
	}
	for _, n := range jfm.Lists {
		head := n.Head()
		if sharedHeads[head] {
			jfmShared[head] = n
			continue
		}
		if head == "TYPE" || head == "CHARSINTYPE" || head == "CODESPACE" {
			continue
		}
		jfmOnly = append(jfmOnly, n)
	}
	for head, n := range vfShared {
		if other, ok := jfmShared[head]; ok {
			if !checksumCompatible(head, n, other) {
				return nil, &zrtex.SemanticError{Msg: fmt.Sprintf("%s mismatch between VF and JFM", head)}
			}
		}
		shared = append(shared, n)
	}

	chdsc := make(map[int32]chardesc)
	for _, n := range vf.Lists {
		if n.Head() != "CHARACTER" {
			continue
		}
		code, ok := intArg(n.Items, 1)
		if !ok {
			continue
		}
		m := extractMetric(n.Items[2:])
		chdsc[code] = chardesc{wd: m.wd, hasWd: m.hasWd, mapNode: selfCodeContract(m.mapNode, code)}
	}

	tydsc := make(map[int32]typedesc)
	var typeOrder []int32
	typeOfCode := make(map[int32]int32)
	for _, n := range jfm.Lists {
		switch n.Head() {
		case "TYPE":
			t, ok := intArg(n.Items, 1)
			if !ok {
				continue
			}
			m := extractMetric(n.Items[2:])
			tydsc[t] = typedesc{t: t, wd: m.wd, hasWd: m.hasWd, ht: m.ht, hasHt: m.hasHt, dp: m.dp, hasDp: m.hasDp, mapNode: m.mapNode}
			typeOrder = append(typeOrder, t)
		case "CHARSINTYPE":
			t, ok := intArg(n.Items, 1)
			if !ok {
				continue
			}
			for _, c := range codesFromItems(n.Items[2:]) {
				typeOfCode[c] = t
			}
		}
	}

	var out []*zrtex.Node
	out = append(out, shared...)
	out = append(out, vfOnly...)
	out = append(out, jfmOnly...)

	for _, t := range typeOrder {
		ty := tydsc[t]
		var codes []int32
		for c, ct := range typeOfCode {
			if ct == t {
				codes = append(codes, c)
			}
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

		buckets := bucketByMap(codes, chdsc)
		canonical, subtypeBuckets, singles := classifyBuckets(buckets)

		typeMetric := metric{wd: ty.wd, hasWd: ty.hasWd, ht: ty.ht, hasHt: ty.hasHt, dp: ty.dp, hasDp: ty.hasDp}
		if canonical != nil {
			typeMetric.mapNode = canonical.form
		}
		out = append(out, buildMetricNode("TYPE", []*zrtex.Node{zrtex.NewCooked(zrtex.KindD, int64(t))}, typeMetric))

		items := []*zrtex.Node{zrtex.NewBareword("CHARSINTYPE"), zrtex.NewCooked(zrtex.KindD, int64(t))}
		for _, c := range codes {
			items = append(items, codeArg(c))
		}
		out = append(out, zrtex.NewList(items...))

		for u, b := range subtypeBuckets {
			subMetric := metric{mapNode: b.form}
			out = append(out, buildMetricNode("SUBTYPE", []*zrtex.Node{
				zrtex.NewCooked(zrtex.KindD, int64(t)), zrtex.NewCooked(zrtex.KindD, int64(u)),
			}, subMetric))
			subItems := []*zrtex.Node{zrtex.NewBareword("CHARSINSUBTYPE"), zrtex.NewCooked(zrtex.KindD, int64(t)), zrtex.NewCooked(zrtex.KindD, int64(u))}
			for _, c := range b.codes {
				subItems = append(subItems, codeArg(c))
			}
			out = append(out, zrtex.NewList(subItems...))
		}

		for _, c := range singles {
			if cd, ok := chdsc[c]; ok && cd.mapNode != nil {
				out = append(out, zrtex.NewList(zrtex.NewBareword("CHARACTER"), codeArg(c), zrtex.NewList(zrtex.NewBareword("MAP"), cd.mapNode)))
			}
		}
	}

	allCodes := make([]int32, 0, len(typeOfCode))
	for c := range typeOfCode {
		allCodes = append(allCodes, c)
	}
	out = append(out, codespaceToNode(charlist.FromCodes(allCodes), 8))

	return pl.Rearrange(&zrtex.Struct{Lists: out}, nil), nil
}

func checksumCompatible(head string, a, b *zrtex.Node) bool {
	if head != "CHECKSUM" {
		return true
	}
	av, bv := a.Items[1].Value, b.Items[1].Value
	return av == bv || av == 0 || bv == 0
}

// selfCodeContract returns a copy of the MAP list n in which every direct
// "(SETCHAR code)" child whose value equals the packet's own code is
// reduced to a code-less "(SETCHAR)", per §4.9 step 3's self-code
// contraction. SETCHAR lists nested deeper than the MAP's own children are
// left as they are.
func selfCodeContract(n *zrtex.Node, code int32) *zrtex.Node {
	if n == nil || !n.IsList() {
		return n
	}
	out := n.Clone()
	for _, it := range out.Items[1:] {
		if it.IsList() && it.Head() == "SETCHAR" && len(it.Items) == 2 && it.Items[1].IsCooked() && it.Items[1].Value == int64(code) {
			it.Items = it.Items[:1]
		}
	}
	return out
}

type bucket struct {
	form  *zrtex.Node
	key   string
	codes []int32
}

func bucketByMap(codes []int32, chdsc map[int32]chardesc) []*bucket {
	byKey := map[string]*bucket{}
	var order []string
	for _, c := range codes {
		cd := chdsc[c]
		key := serializeMap(cd.mapNode)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{form: cd.mapNode, key: key}
			byKey[key] = b
			order = append(order, key)
		}
		b.codes = append(b.codes, c)
	}
	out := make([]*bucket, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].codes) > len(out[j].codes) })
	return out
}

func serializeMap(n *zrtex.Node) string {
	if n == nil {
		return ""
	}
	var sb []byte
	var walk func(*zrtex.Node)
	walk = func(x *zrtex.Node) {
		if x == nil {
			return
		}
		if x.Bareword != "" {
			sb = append(sb, x.Bareword...)
			sb = append(sb, ' ')
			return
		}
		if x.IsCooked() {
			sb = append(sb, byte(x.Kind))
			sb = append(sb, ' ')
			return
		}
		for _, c := range x.Items {
			walk(c)
		}
	}
	walk(n)
	return string(sb)
}

// classifyBuckets implements §4.9 step 3's bucket classification: the
// largest bucket becomes the type's own (canonical) MAP; subsequent
// buckets with more than one member become SUBTYPEs (numbered from 1);
// everything else is emitted per-character.
func classifyBuckets(buckets []*bucket) (canonical *bucket, subtypes map[int32]*bucket, singles []int32) {
	subtypes = make(map[int32]*bucket)
	if len(buckets) == 0 {
		return nil, subtypes, nil
	}
	canonical = buckets[0]
	u := int32(1)
	for _, b := range buckets[1:] {
		if len(b.codes) > 1 && u < 256 {
			subtypes[u] = b
			u++
			continue
		}
		singles = append(singles, b.codes...)
	}
	return canonical, subtypes, singles
}

