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

import (
	"strings"

	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/numeric"
)

// wrapColumn is the line-length heuristic §4.3 uses to pack runs of
// Japanese/[JUX]xxxx atoms before breaking.
const wrapColumn = 72

// EmitOptions configures the emitter.
type EmitOptions struct {
	// Indent is the number of spaces nested lists are indented by at
	// each level; negative selects inline mode (space-separated, no
	// newlines).
	Indent int

	NumOpt    *numeric.Options
	PreferHex bool
}

// DefaultEmitOptions returns the conventional three-space indent.
func DefaultEmitOptions() *EmitOptions {
	return &EmitOptions{Indent: 3}
}

// EmitStruct formats every top-level list of s, one per line (or
// space-separated in inline mode).
func EmitStruct(s *zrtex.Struct, opt *EmitOptions) (string, error) {
	if opt == nil {
		opt = DefaultEmitOptions()
	}
	sep := "\n"
	if opt.Indent < 0 {
		sep = " "
	}
	parts := make([]string, len(s.Lists))
	for i, l := range s.Lists {
		text, err := EmitNode(l, 0, opt)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, sep) + "\n", nil
}

// EmitNode formats a single list node at the given indent level.
func EmitNode(n *zrtex.Node, indent int, opt *EmitOptions) (string, error) {
	if opt == nil {
		opt = DefaultEmitOptions()
	}
	var sb strings.Builder
	if err := emitNode(&sb, n, indent, opt); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func emitNode(sb *strings.Builder, n *zrtex.Node, indent int, opt *EmitOptions) error {
	if !n.IsList() {
		return emitAtom(sb, n, opt)
	}
	sb.WriteByte('(')
	childIndent := indent + opt.Indent
	if opt.Indent < 0 {
		childIndent = indent
	}
	if opt.Indent >= 0 && len(n.Items) > 8 && isJapaneseAtomRun(n.Items[1:]) {
		sb.WriteString(n.Items[0].Bareword)
		sb.WriteByte('\n')
		atoms := make([]string, len(n.Items)-1)
		for i, item := range n.Items[1:] {
			var asb strings.Builder
			if err := emitAtom(&asb, item, opt); err != nil {
				return err
			}
			atoms[i] = asb.String()
		}
		sb.WriteString(wrapJapanese(atoms, childIndent))
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", indent))
		sb.WriteByte(')')
		return nil
	}
	if len(n.Items) == 0 {
		sb.WriteByte(')')
		return nil
	}

	// The head stays on the opening line together with every leaf atom
	// that follows it; only a nested list forces a break, onto its own
	// line at childIndent. The closing paren lines up with that same
	// childIndent once anything broke, or stays on the line it's on
	// when the list was all atoms (tftopl/pltotf's own convention).
	if err := emitAtom(sb, n.Items[0], opt); err != nil {
		return err
	}
	broke := false
	for _, item := range n.Items[1:] {
		if item.IsList() {
			if opt.Indent < 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", childIndent))
				broke = true
			}
			if err := emitNode(sb, item, childIndent, opt); err != nil {
				return err
			}
			continue
		}
		sb.WriteByte(' ')
		if err := emitAtom(sb, item, opt); err != nil {
			return err
		}
	}
	if opt.Indent >= 0 && broke {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", childIndent))
	}
	sb.WriteByte(')')
	return nil
}

func emitAtom(sb *strings.Builder, n *zrtex.Node, opt *EmitOptions) error {
	switch {
	case n.IsCooked():
		return emitCooked(sb, n, opt)
	case n.IsRaw:
		sb.WriteString(n.Raw)
		return nil
	default:
		sb.WriteString(n.Bareword)
		return nil
	}
}

func emitCooked(sb *strings.Builder, n *zrtex.Node, opt *EmitOptions) error {
	if n.HasLiteral() {
		sb.WriteByte(byte(n.Kind))
		sb.WriteByte(' ')
		sb.WriteString(n.Literal)
		return nil
	}
	kind, text, err := numeric.Format(n.Kind, n.Value, opt.NumOpt, opt.PreferHex)
	if err != nil {
		return err
	}
	sb.WriteByte(byte(kind))
	sb.WriteByte(' ')
	sb.WriteString(text)
	return nil
}

// isJapaneseAtomRun reports whether items are all leaf atoms (no nested
// lists, no cooked numbers) and at least one of them starts with "U" or
// "X", as the "Uxxxx"/"Xhhhh" escape barewords do. The other atoms are
// not inspected. A run like this gets wrapJapanese's column packing.
func isJapaneseAtomRun(items []*zrtex.Node) bool {
	seen := false
	for _, it := range items {
		if it.IsList() || it.IsCooked() {
			return false
		}
		text := it.Bareword
		if it.IsRaw {
			text = it.Raw
		}
		if strings.HasPrefix(text, "U") || strings.HasPrefix(text, "X") {
			seen = true
		}
	}
	return seen
}

// wrapJapanese packs whitespace-joined atoms up to wrapColumn before
// inserting a line break, each line starting at indent. emitNode uses it
// for a list of more than eight items whose non-head items pass
// isJapaneseAtomRun; such a list puts its head alone on the first line
// and the packed atoms on the following lines.
func wrapJapanese(atoms []string, indent int) string {
	var sb strings.Builder
	col := indent
	sb.WriteString(strings.Repeat(" ", indent))
	for i, a := range atoms {
		if i > 0 {
			if col+1+len(a) > wrapColumn {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", indent))
				col = indent
			} else {
				sb.WriteByte(' ')
				col++
			}
		}
		sb.WriteString(a)
		col += len(a)
	}
	return sb.String()
}
