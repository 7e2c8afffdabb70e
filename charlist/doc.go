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

// Package charlist implements the ranges-versus-enumeration algebra used to
// represent codespaces and other character-code sets compactly: adjacent
// codes are compacted into inclusive ranges once a run is long enough, and
// a small process-wide registry recognizes a handful of conventional named
// charlists (UNICODE-BMP, GL94DB) so that a set matching one of them can be
// emitted by name instead of by enumeration.
package charlist
