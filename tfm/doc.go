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

// Package tfm decodes and encodes the classic TFM binary metric format: a
// 16-bit-word-count preamble, a char-info table, four side tables
// (width/height/depth/italic), and a param table. All multi-byte integers
// are big-endian (§6).
//
// The char-info table's code-field width is the one structural difference
// between TFM (8-bit codes), JFM (18-bit codes, read and written by the
// jfm package's own codec) and OFM (32-bit codes). CodeWidth names these
// widths, and the caller passes one to Decode; this package reads and
// writes only the classic 4-byte TFM row, so OFM's wider rows are not
// supported here.
package tfm
