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
	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/numeric"
)

var prefixKinds = map[string]zrtex.Kind{
	"C": zrtex.KindC,
	"K": zrtex.KindK,
	"D": zrtex.KindD,
	"F": zrtex.KindF,
	"O": zrtex.KindO,
	"H": zrtex.KindH,
	"R": zrtex.KindR,
	"I": zrtex.KindI,
}

// Cook walks a just-parsed tree in place, drops every sub-list headed
// COMMENT, and replaces every (prefix-bareword, value-token) pair with a
// single cooked-number node, recursing into surviving nested lists.
func Cook(n *zrtex.Node, opt *numeric.Options) (*zrtex.Node, error) {
	if !n.IsList() {
		return n, nil
	}
	out := make([]*zrtex.Node, 0, len(n.Items))
	items := n.Items
	for i := 0; i < len(items); i++ {
		item := items[i]
		if item.IsList() {
			if item.Head() == "COMMENT" {
				continue
			}
			cooked, err := Cook(item, opt)
			if err != nil {
				return nil, err
			}
			out = append(out, cooked)
			continue
		}
		if !item.IsRaw {
			out = append(out, item)
			continue
		}
		if kind, ok := prefixKinds[item.Raw]; ok && i+1 < len(items) {
			numTok := items[i+1]
			if numTok.IsList() {
				// a prefix letter followed by a list is not a numeric
				// pair (e.g. the bareword happens to coincide with a
				// prefix letter used as an ordinary head); leave as-is.
				out = append(out, item)
				continue
			}
			tokenText := numTok.Raw
			if !numTok.IsRaw {
				tokenText = numTok.Bareword
			}
			val, err := numeric.Parse(kind, tokenText, opt)
			if err != nil {
				return nil, err
			}
			out = append(out, zrtex.NewCookedLiteral(kind, val, tokenText))
			i++ // skip the consumed number token
			continue
		}
		out = append(out, rawToBareword(item))
	}
	n.Items = out
	return n, nil
}

// rawToBareword reinterprets a not-yet-classified raw token as a
// bareword, once cooking has determined it is not a numeric prefix.
func rawToBareword(n *zrtex.Node) *zrtex.Node {
	if n.IsRaw {
		return zrtex.NewBareword(n.Raw)
	}
	return n
}
