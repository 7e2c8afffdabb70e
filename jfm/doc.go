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

// Package jfm extends the tfm binary codec to the Japanese/vertical-text
// class-based variant (18-bit codespace, a class table keyed by type and
// subtype) and implements the metric-reduction algorithms that compress a
// per-character raw metric table down into the small index tables a TFM
// family side table can hold: the classic exact reducer (tfm_reduce), and
// the two error-bounded balancing reducers used by the JFM family of
// tools (tfm_reduce_jpl, tfm_reduce_jpl_x).
package jfm
