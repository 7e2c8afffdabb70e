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

package zrtex

// Kind identifies one of the PL numeric prefixes (§4.1 of the design).
type Kind byte

const (
	// KindNone marks a Node that is not a cooked number.
	KindNone Kind = 0
	KindC    Kind = 'C' // printable byte
	KindK    Kind = 'K' // Japanese character, external encoding
	KindD    Kind = 'D' // unsigned decimal, 0..255
	KindF    Kind = 'F' // face code, 0..17
	KindO    Kind = 'O' // octal, 0..2^32-1
	KindH    Kind = 'H' // hex, 0..2^32-1
	KindR    Kind = 'R' // real, fixed-point, signed 32-bit
	KindI    Kind = 'I' // alias resolved to O or H at emission time
)

func (k Kind) String() string {
	if k == KindNone {
		return "<none>"
	}
	return string(rune(k))
}

// NumberOfFaceCodes is the size of the face-code enumeration (MRR..LIE).
const NumberOfFaceCodes = 18

// faceCodeNames lists the 18-entry face code enumeration in bareword form,
// indices 0..17.
var faceCodeNames = [NumberOfFaceCodes]string{
	"MRR", "MIR", "MBR", "MLR", "MXR", "MRI", "MII", "MBI", "MLI", "MXI",
	"BRR", "BIR", "BBR", "BLR", "BXR", "LRR", "LIR", "LIE",
}

// FaceCodeName returns the bareword for face code v, or "" if v is out of
// range (v must be 0..17).
func FaceCodeName(v int32) string {
	if v < 0 || int(v) >= NumberOfFaceCodes {
		return ""
	}
	return faceCodeNames[v]
}

// FaceCodeValue returns the face code numbered by name, and whether name
// was recognised.
func FaceCodeValue(name string) (int32, bool) {
	for i, n := range faceCodeNames {
		if n == name {
			return int32(i), true
		}
	}
	return 0, false
}

// Node is one element of a property-list tree: a Bareword, a Raw string
// awaiting interpretation, a Cooked number, or a nested List.
//
// Exactly one of the typed accessors is meaningful for any given Node; the
// Kind field (KindNone for non-numeric nodes) and the Items field (non-nil
// only for lists) distinguish which.
type Node struct {
	// Bareword holds a symbolic identifier (e.g. "CHARWD"), set when
	// Kind == KindNone and Items == nil and this is not a raw string.
	Bareword string

	// Raw holds an uninterpreted string token, set when IsRaw is true.
	Raw   string
	IsRaw bool

	// Kind and Value hold a cooked number's prefix and value. Value is
	// the integer value for all kinds except KindR, where it is the
	// fixed-point value scaled by 2^20 (see Fixed).
	Kind  Kind
	Value int64

	// Literal is the exact source token for a cooked number, preserved so
	// that re-emitting an unmodified value is byte-exact. Any mutation of
	// Value or Kind must clear Literal.
	Literal string
	hasLit  bool

	// Items holds the children of a List node (the first child is
	// conventionally a Bareword: the list's head).
	Items []*Node
}

// NewBareword returns a bareword leaf.
func NewBareword(s string) *Node { return &Node{Bareword: s} }

// NewRaw returns a raw-string leaf awaiting interpretation.
func NewRaw(s string) *Node { return &Node{Raw: s, IsRaw: true} }

// NewCooked returns a cooked-number leaf with no preserved literal.
func NewCooked(kind Kind, value int64) *Node {
	return &Node{Kind: kind, Value: value}
}

// NewCookedLiteral returns a cooked-number leaf that will re-emit literal
// verbatim until the value is mutated.
func NewCookedLiteral(kind Kind, value int64, literal string) *Node {
	return &Node{Kind: kind, Value: value, Literal: literal, hasLit: true}
}

// NewList returns a list node with the given children.
func NewList(items ...*Node) *Node {
	return &Node{Items: items}
}

// IsList reports whether n is a nested list.
func (n *Node) IsList() bool { return n != nil && n.Items != nil }

// IsCooked reports whether n is a cooked number.
func (n *Node) IsCooked() bool { return n != nil && n.Kind != KindNone }

// Head returns the symbol heading a list: its first child's bareword, or
// that child's raw text in a tree that has not been cooked yet. It returns
// "" if n is not a non-empty list or its first child is neither.
func (n *Node) Head() string {
	if !n.IsList() || len(n.Items) == 0 {
		return ""
	}
	if h := n.Items[0]; h.IsRaw {
		return h.Raw
	}
	return n.Items[0].Bareword
}

// SetValue mutates a cooked number's value in place and clears its
// preserved literal, per §3's invariant that mutation clears the token.
func (n *Node) SetValue(v int64) {
	n.Value = v
	n.Literal = ""
	n.hasLit = false
}

// SetKind mutates a cooked number's prefix in place and clears its
// preserved literal.
func (n *Node) SetKind(k Kind) {
	n.Kind = k
	n.Literal = ""
	n.hasLit = false
}

// HasLiteral reports whether n carries a preserved source token that is
// still valid for its current (Kind, Value).
func (n *Node) HasLiteral() bool { return n.hasLit }

// Clone returns a deep copy of n: every sub-list and cooked-number atom is
// duplicated, so mutating the result never aliases n (§4.4).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Items != nil {
		out.Items = make([]*Node, len(n.Items))
		for i, c := range n.Items {
			out.Items[i] = c.Clone()
		}
	}
	return &out
}

// ShallowClone copies only enough of n to uniquify cooked-number atoms, so
// that per-atom mutation on the clone cannot alias the original's cooked
// leaves. List structure below the top level is shared.
func (n *Node) ShallowClone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.IsCooked() {
		return &out
	}
	if n.Items != nil {
		out.Items = make([]*Node, len(n.Items))
		copy(out.Items, n.Items)
		for i, c := range out.Items {
			if c.IsCooked() {
				cc := *c
				out.Items[i] = &cc
			}
		}
	}
	return &out
}

// Struct is an ordered sequence of top-level PL-lists representing a
// whole file (§3's PL-struct).
type Struct struct {
	Lists []*Node
}

// Clone returns a deep copy of s.
func (s *Struct) Clone() *Struct {
	if s == nil {
		return nil
	}
	out := &Struct{Lists: make([]*Node, len(s.Lists))}
	for i, l := range s.Lists {
		out.Lists[i] = l.Clone()
	}
	return out
}
