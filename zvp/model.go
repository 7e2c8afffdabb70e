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
	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/charlist"
)

// structuralHeads names the list heads extracted into side tables rather
// than passed through verbatim (§4.8 step 1).
var structuralHeads = map[string]bool{
	"TYPE": true, "SUBTYPE": true, "CHARSINTYPE": true, "CHARSINSUBTYPE": true,
	"CHARACTER": true, "GLUEKERN": true, "CODESPACE": true,
}

// sharedHeads are copied unchanged into both the VF and JFM output.
var sharedHeads = map[string]bool{
	"DESIGNSIZE": true, "CHECKSUM": true,
}

// vfOnlyHeads pass through to the VF output alone.
var vfOnlyHeads = map[string]bool{
	"VTITLE": true, "MAPFONT": true,
}

// metric holds the subset of a TYPE/SUBTYPE/CHARACTER description that
// participates in subtype-migration comparison and char-packet synthesis.
type metric struct {
	wd, ht, dp, ic    zrtex.Fixed
	hasWd, hasHt, hasDp, hasIc bool
	mapNode           *zrtex.Node
	extra             []*zrtex.Node // other sublists (e.g. COMMENT), preserved verbatim
}

// extractMetric scans a TYPE/SUBTYPE/CHARACTER list's trailing items
// (everything after the head and its numeric index arguments) for
// CHARWD/CHARHT/CHARDP/CHARIC/MAP sublists.
func extractMetric(items []*zrtex.Node) metric {
	var m metric
	for _, it := range items {
		if !it.IsList() || len(it.Items) < 2 {
			continue
		}
		head := it.Items[0].Bareword
		switch head {
		case "CHARWD":
			m.wd, m.hasWd = zrtex.Fixed(it.Items[1].Value), true
		case "CHARHT":
			m.ht, m.hasHt = zrtex.Fixed(it.Items[1].Value), true
		case "CHARDP":
			m.dp, m.hasDp = zrtex.Fixed(it.Items[1].Value), true
		case "CHARIC":
			m.ic, m.hasIc = zrtex.Fixed(it.Items[1].Value), true
		case "MAP":
			m.mapNode = it
		default:
			m.extra = append(m.extra, it)
		}
	}
	return m
}

// buildMetricNode reconstructs a TYPE/SUBTYPE/CHARACTER body from a
// metric: the index-argument nodes (already formed by the caller) followed
// by whichever of CHARWD/CHARHT/CHARDP/CHARIC/MAP/extra are present.
func buildMetricNode(head string, indexArgs []*zrtex.Node, m metric) *zrtex.Node {
	items := append([]*zrtex.Node{zrtex.NewBareword(head)}, indexArgs...)
	if m.hasWd {
		items = append(items, zrtex.NewList(zrtex.NewBareword("CHARWD"), zrtex.NewCooked(zrtex.KindR, int64(m.wd))))
	}
	if m.hasHt {
		items = append(items, zrtex.NewList(zrtex.NewBareword("CHARHT"), zrtex.NewCooked(zrtex.KindR, int64(m.ht))))
	}
	if m.hasDp {
		items = append(items, zrtex.NewList(zrtex.NewBareword("CHARDP"), zrtex.NewCooked(zrtex.KindR, int64(m.dp))))
	}
	if m.hasIc {
		items = append(items, zrtex.NewList(zrtex.NewBareword("CHARIC"), zrtex.NewCooked(zrtex.KindR, int64(m.ic))))
	}
	if m.mapNode != nil {
		items = append(items, m.mapNode)
	}
	items = append(items, m.extra...)
	return zrtex.NewList(items...)
}

// metricsAgree reports whether a subtype's metric is a pure mapping
// variant of its parent type: every width, height and depth the subtype
// specifies must match the parent's value for that axis (§4.8 step 2).
// CHARIC is not compared.
func metricsAgree(parent, child metric) bool {
	if child.hasWd && (!parent.hasWd || parent.wd != child.wd) {
		return false
	}
	if child.hasHt && (!parent.hasHt || parent.ht != child.ht) {
		return false
	}
	if child.hasDp && (!parent.hasDp || parent.dp != child.dp) {
		return false
	}
	return true
}

// intArg reads items[idx] as a cooked number's integer value, or ok=false
// if idx is out of range or the item is not cooked.
func intArg(items []*zrtex.Node, idx int) (int32, bool) {
	if idx >= len(items) || !items[idx].IsCooked() {
		return 0, false
	}
	return int32(items[idx].Value), true
}

// codeArg builds a cooked numeric node for a character code, defaulting
// to the D prefix (the emitter downgrades further per §4.1 as needed).
func codeArg(code int32) *zrtex.Node {
	return zrtex.NewCooked(zrtex.KindD, int64(code))
}

// defaultCodespace is GL94DB, the codespace §4.8 names as the default when
// no explicit CODESPACE list is present.
func defaultCodespace() *charlist.List {
	l, _ := charlist.Lookup("GL94DB")
	return l
}

// codespaceFromNode reads a CODESPACE list's body: either a CTRANGE
// sublist or a run of bare cooked-number atoms (§4.10).
func codespaceFromNode(n *zrtex.Node) *charlist.List {
	var codes []int32
	for _, it := range n.Items[1:] {
		if it.IsList() && len(it.Items) >= 3 && it.Items[0].Bareword == "CTRANGE" {
			lo, hi := it.Items[1].Value, it.Items[2].Value
			for c := lo; c <= hi; c++ {
				codes = append(codes, int32(c))
			}
			continue
		}
		if it.IsCooked() {
			codes = append(codes, int32(it.Value))
		}
	}
	return charlist.FromCodes(codes)
}

// codespaceToNode emits a CODESPACE list: the registered name if l matches
// one, else an explicit run of CTRANGE/atom items per the rangify
// threshold.
func codespaceToNode(l *charlist.List, threshold int) *zrtex.Node {
	if name, ok := charlist.MatchName(l); ok {
		return zrtex.NewList(zrtex.NewBareword("CODESPACE"), zrtex.NewBareword(name))
	}
	items := []*zrtex.Node{zrtex.NewBareword("CODESPACE")}
	for _, it := range charlist.Rangify(l, threshold) {
		if it.IsRange() {
			items = append(items, zrtex.NewList(
				zrtex.NewBareword("CTRANGE"),
				zrtex.NewCooked(zrtex.KindH, int64(it.Start)),
				zrtex.NewCooked(zrtex.KindH, int64(it.End)),
			))
		} else {
			items = append(items, zrtex.NewCooked(zrtex.KindH, int64(it.Start)))
		}
	}
	return zrtex.NewList(items...)
}
