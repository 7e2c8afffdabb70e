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

// Package pl implements the tokenizer, tree builder, cooking pass, emitter
// and canonical-ordering rules shared by every property-list text dialect
// (PL, JPL, OPL, VPL, ZPL, ZVP): the same engine serves all of them, since
// they differ only in which head symbols they use and which weight table
// orders those heads.
package pl

import (
	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/numeric"
)

// Parse tokenizes src, builds its forest of top-level lists, and cooks
// every list's numeric atoms under cfg, returning the resulting Struct.
// This is the inverse the emitter's EmitStruct targets: for any Struct s
// built this way, Cook(BuildForest(Tokenize(EmitStruct(s)))) reproduces an
// equivalent tree (§8).
func Parse(src []byte, cfg *zrtex.Config) (*zrtex.Struct, error) {
	cfg = zrtex.Or(cfg)
	patched := patchCharsInType(src)
	toks, err := Tokenize(patched)
	if err != nil {
		return nil, err
	}
	forest, err := BuildForest(toks)
	if err != nil {
		return nil, err
	}
	opt := &numeric.Options{FreeNumber: cfg.FreeNumber}
	out := make([]*zrtex.Node, len(forest))
	for i, n := range forest {
		cooked, err := Cook(n, opt)
		if err != nil {
			return nil, err
		}
		out[i] = cooked
	}
	return &zrtex.Struct{Lists: out}, nil
}

// EmitOptionsFromConfig builds the EmitOptions an emitter should use to
// match cfg's numeric-formatting preferences.
func EmitOptionsFromConfig(cfg *zrtex.Config) *EmitOptions {
	cfg = zrtex.Or(cfg)
	return &EmitOptions{
		Indent:    3,
		NumOpt:    &numeric.Options{FreeNumber: cfg.FreeNumber},
		PreferHex: cfg.PreferHex,
	}
}
