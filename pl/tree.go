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
	"fmt"

	"seehuhn.de/go/zrtex"
)

// BuildTree performs recursive descent over a flat token vector, building
// the nested list structure. The outer "(" at index 0 is required; its
// matching ")" is found by level counting.
func BuildTree(toks []Token) (*zrtex.Node, error) {
	if len(toks) == 0 || toks[0].Text != "(" {
		return nil, &Unbalanced{Depth: 0, Msg: "expected '(' at start of list"}
	}
	n, next, err := buildList(toks, 0)
	if err != nil {
		return nil, err
	}
	if next != len(toks) {
		return nil, &Unbalanced{Depth: 0, Msg: fmt.Sprintf("unexpected trailing tokens starting at %d", next)}
	}
	return n, nil
}

// BuildForest parses a run of top-level lists, used for a whole PL-struct
// file where several "(...)" lists follow one another.
func BuildForest(toks []Token) ([]*zrtex.Node, error) {
	var out []*zrtex.Node
	i := 0
	for i < len(toks) {
		if toks[i].Text != "(" {
			return nil, &Unbalanced{Depth: 0, Msg: fmt.Sprintf("expected '(' at token %d", i)}
		}
		n, next, err := buildList(toks, i)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		i = next
	}
	return out, nil
}

// buildList assumes toks[start] == "(" and returns the parsed list plus
// the index just past its matching ")".
func buildList(toks []Token, start int) (*zrtex.Node, int, error) {
	if toks[start].Text != "(" {
		return nil, 0, &Unbalanced{Depth: 0, Msg: fmt.Sprintf("expected '(' at token %d", start)}
	}
	var items []*zrtex.Node
	depth := 1
	i := start + 1
	for i < len(toks) {
		switch toks[i].Text {
		case "(":
			child, next, err := buildList(toks, i)
			if err != nil {
				return nil, 0, err
			}
			items = append(items, child)
			i = next
		case ")":
			depth--
			return zrtex.NewList(items...), i + 1, nil
		default:
			items = append(items, leafNode(toks[i]))
			i++
		}
	}
	return nil, 0, &Unbalanced{Depth: depth, Msg: fmt.Sprintf("unbalanced '(' opened at token %d", start)}
}

func leafNode(t Token) *zrtex.Node {
	n := zrtex.NewRaw(t.Text)
	return n
}

// patchCharsInType rewrites literal, unescaped parens inside a
// CHARSINTYPE...CHARSINSUBTYPE-style block into the Xhh hex-escape the
// tokenizer expects, and normalizes "U xxxx" (a space after U, as some
// upstream tools emit) into "Uxxxx". It operates on raw source text
// before tokenization, scanning only the span between a "(CHARSINTYPE"
// header and its closing paren.
func patchCharsInType(src []byte) []byte {
	const head = "(CHARSINTYPE"
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		idx := indexFrom(src, head, i)
		if idx < 0 {
			out = append(out, src[i:]...)
			break
		}
		out = append(out, src[i:idx]...)
		end := matchParen(src, idx)
		if end < 0 {
			out = append(out, src[idx:]...)
			break
		}
		out = append(out, patchSpan(src[idx:end+1])...)
		i = end + 1
	}
	return out
}

func indexFrom(src []byte, sub string, from int) int {
	for i := from; i+len(sub) <= len(src); i++ {
		if string(src[i:i+len(sub)]) == sub {
			return i
		}
	}
	return -1
}

// matchParen returns the index of the ")" matching the "(" at src[open].
func matchParen(src []byte, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// patchSpan rewrites literal parens that appear as bare characters inside
// the span (i.e. not part of the span's own outer delimiters) to
// Xhh-escapes, and "U xxxx" to "Uxxxx". The span's own outer "(" and ")"
// (positions 0 and len-1) are left untouched, as is any inner "(" that
// opens a well-formed CHARACTER/nested sub-list (tracked via depth).
func patchSpan(span []byte) []byte {
	out := make([]byte, 0, len(span))
	depth := 0
	for i := 0; i < len(span); i++ {
		c := span[i]
		switch c {
		case '(':
			depth++
			if depth > 1 && looksLikeLiteralParen(span, i) {
				out = append(out, []byte("X0028")...)
				depth--
				continue
			}
			out = append(out, c)
		case ')':
			if depth <= 1 {
				depth--
				out = append(out, c)
				continue
			}
			if looksLikeLiteralParen(span, i) {
				out = append(out, []byte("X0029")...)
				depth--
				continue
			}
			depth--
			out = append(out, c)
		case 'U':
			if i+1 < len(span) && span[i+1] == ' ' && isHexRun(span, i+2) {
				out = append(out, 'U')
				i++ // drop the space
				continue
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// looksLikeLiteralParen is a heuristic: a paren that is immediately
// adjacent to non-whitespace on both sides (i.e. not separated as its own
// token by the tokenizer's usual whitespace rules) is a literal character
// rather than a structural delimiter.
func looksLikeLiteralParen(span []byte, i int) bool {
	before := i > 0 && !isSpace(span[i-1]) && span[i-1] != '('
	after := i+1 < len(span) && !isSpace(span[i+1]) && span[i+1] != ')'
	return before && after
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isHexRun(span []byte, i int) bool {
	n := 0
	for i < len(span) && isHexDigit(span[i]) {
		i++
		n++
	}
	return n > 0
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
