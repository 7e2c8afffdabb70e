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

// Package zvp splits a composite ZVP property-list tree (one document
// describing both a virtual font and its backing JFM) into separate VF-
// and JFM-shaped trees, and performs the inverse recombination.
//
// Divide walks a ZVP tree classifying each top-level list as JFM-only,
// VF-only, shared, or structural (TYPE/SUBTYPE/CHARSINTYPE/CHARSINSUBTYPE/
// CHARACTER/GLUEKERN/CODESPACE), migrates subtypes whose metrics disagree
// with their parent type into new top-level types, recompiles GLUEKERN
// rows across the resulting migration groups, and synthesizes one VF
// CHARACTER packet per codespace entry. Compose runs the process in
// reverse, inferring SUBTYPEs from frequency-bucketed MAP forms.
package zvp
