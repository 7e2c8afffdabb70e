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

// Package extern is the boundary component (K): spawning the TeX
// toolchain's conversion commands, resolving files via kpsewhich, loading
// the ZRTeXtor.cfg configuration file, parsing PostScript encoding
// vectors, and transcoding Japanese character codes between external
// (JIS/EUC-JP/Shift-JIS/UTF-8) and internal (JIS0208-raw/UTF-16BE) forms.
package extern
