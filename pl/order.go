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

import "seehuhn.de/go/zrtex"

// Dialect names a head-symbol -> 28-bit-weight table (§4.4). The same
// tokenizer/cooker/emitter engine serves every PL dialect; only the
// weight table (and hence canonical ordering) differs between them.
type Dialect struct {
	Name    string
	Weights map[string]uint32
}

const unknownWeight = 0xFFFFFFF

// category masks out the low 24 bits of a weight to select the
// secondary-key function f() uses.
func category(weight uint32) uint32 { return weight & 0xF000000 }

// StandardDialect is the default head table covering the properties named
// throughout the design: file-level metadata, the four metric fields,
// structural JFM/VF properties, and MAPFONT/CHARACTER. Category 0x0
// entries (most headers) sort by declaration order among themselves;
// category 0x1/0x2/0x3 entries (indexed by TYPE/SUBTYPE/CHARACTER/MAPFONT
// number, or GLUEKERN's (type,subtype) pair) sort by that index.
var StandardDialect = &Dialect{
	Name: "ZVP",
	Weights: map[string]uint32{
		// Category 0x0 ("weight itself"): ordinary file-level headers,
		// ordered among themselves by declaration order.
		"VTITLE":           1,
		"FAMILY":           2,
		"FACE":             3,
		"CODINGSCHEME":     4,
		"DESIGNSIZE":       5,
		"CHECKSUM":         6,
		"SEVENBITSAFEFLAG": 7,
		"HEADERBYTE":       8,
		"FONTDIMEN":        9,
		"CODESPACE":        10,
		"BOUNDARYCHAR":     11,
		"LIGTABLE":         12,

		// Category 0x1 ("first numeric argument"): TYPE/CHARSINTYPE key
		// on their type number; MAPFONT/CHARACTER key on their font
		// number / character code. All four share one numbering space,
		// so a TYPE and a CHARSINTYPE with the same index land adjacent
		// (tie broken by declaration order).
		"TYPE":        0x1000000,
		"CHARSINTYPE": 0x1000000,
		"MAPFONT":     0x1000000,
		"CHARACTER":   0x1000000,

		// Category 0x3 ("(first<<16)|second"): SUBTYPE/CHARSINSUBTYPE/
		// GLUEKERN key on their (type, subtype) pair.
		"SUBTYPE":        0x3000000,
		"CHARSINSUBTYPE": 0x3000000,
		"GLUEKERN":       0x3000000,

		"COMMENT": unknownWeight,
	},
}

// Key computes the canonical sort key for a top-level list under d.
func (d *Dialect) Key(n *zrtex.Node) uint32 {
	weight, ok := d.Weights[n.Head()]
	if !ok {
		return unknownWeight
	}
	cat := category(weight)
	switch cat {
	case 0x0000000:
		return weight
	case 0x1000000:
		v, ok := firstNumericArg(n)
		if !ok {
			return weight
		}
		return cat | (uint32(v) & 0xFFFFFF)
	case 0x2000000:
		v, ok := firstNumericArg(n)
		if !ok {
			return weight
		}
		return cat | ((uint32(v) & 0xFF) << 16)
	case 0x3000000:
		a, okA := firstNumericArg(n)
		b, okB := secondNumericArg(n)
		if !okA || !okB {
			return weight
		}
		return cat | ((uint32(a) & 0xFFFF) << 16) | (uint32(b) & 0xFFFF)
	default:
		return weight
	}
}

func firstNumericArg(n *zrtex.Node) (int64, bool) {
	for _, c := range n.Items[1:] {
		if c.IsCooked() {
			return c.Value, true
		}
	}
	return 0, false
}

func secondNumericArg(n *zrtex.Node) (int64, bool) {
	found := 0
	for _, c := range n.Items[1:] {
		if c.IsCooked() {
			found++
			if found == 2 {
				return c.Value, true
			}
		}
	}
	return 0, false
}

// Rearrange stable-sorts s's top-level lists by d's canonical key,
// preserving relative order among equal keys (§4.4).
func Rearrange(s *zrtex.Struct, d *Dialect) *zrtex.Struct {
	if d == nil {
		d = StandardDialect
	}
	out := &zrtex.Struct{Lists: append([]*zrtex.Node(nil), s.Lists...)}
	keys := make([]uint32, len(out.Lists))
	for i, l := range out.Lists {
		keys[i] = d.Key(l)
	}
	// insertion sort: stable and fine for the handful of top-level
	// properties a PL file carries (tens, not thousands, of entries).
	for i := 1; i < len(out.Lists); i++ {
		j := i
		for j > 0 && keys[j-1] > keys[j] {
			keys[j-1], keys[j] = keys[j], keys[j-1]
			out.Lists[j-1], out.Lists[j] = out.Lists[j], out.Lists[j-1]
			j--
		}
	}
	return out
}

// Value returns the first cooked-number child of a list headed by head,
// or ok=false if n is not such a list or carries no cooked number.
func Value(n *zrtex.Node, head string) (int64, bool) {
	if n.Head() != head {
		return 0, false
	}
	return firstNumericArg(n)
}
