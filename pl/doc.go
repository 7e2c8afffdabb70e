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

// Package pl implements the Lisp-like property-list text format shared by
// the PL/JPL/OPL/VPL/ZPL/ZVP dialects: a tokenizer, a tree builder, the
// "cooking" pass that turns prefix+token pairs into typed numbers, an
// emitter that formats a tree back to text, and the small set of
// PL-struct utilities (canonical ordering, cloning) that operate on
// already-cooked trees.
package pl
