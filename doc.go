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

// Package zrtex provides the shared data model for reading, writing and
// rebalancing TeX font metric data: the property-list tree used by the
// PL/JPL/OPL/VPL/ZPL/ZVP text formats, the configuration flags shared by
// the subpackages, and the error taxonomy every operation returns into.
//
// Subpackages implement the individual conversions:
//
//	numeric   the six/seven typed numeric prefixes used by PL atoms
//	pl        tokenizer, tree builder, cooker and emitter for property lists
//	charlist  ranges-vs-enumeration algebra for sets of character codes
//	tfm       binary TFM metric file codec
//	jfm       JFM binary extension and the class-reduction algorithm
//	vf        binary Virtual Font codec and its DVI mini-interpreter
//	zvp       the ZVP divider/composer that splits a VF+JFM composite
//	extern    external command wrappers and the charset transcoder
//
// A typical round trip reads a property list, cooks its numbers, puts its
// top-level lists in canonical order, and writes it back out. The binary
// codecs (tfm, jfm, vf) work on their own File types; no function here
// converts a property-list tree into one of them.
//
//	cfg := zrtex.DefaultConfig()
//	tree, err := pl.Parse(src, cfg)
//	if err != nil {
//	        log.Fatal(err)
//	}
//	text, err := pl.EmitStruct(pl.Rearrange(tree, nil), pl.EmitOptionsFromConfig(cfg))
//	if err != nil {
//	        log.Fatal(err)
//	}
package zrtex
