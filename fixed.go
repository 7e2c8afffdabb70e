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

package zrtex

import "math"

// FixedDenom is the TFM unit denominator: a Fixed value of FixedDenom
// represents 1.0 design-size unit.
const FixedDenom = 1 << 20

// Fixed is a signed 32-bit fixed-point number with denominator 2^20, the
// representation used for TFM/JFM/VF design-size quantities and PL "R"
// atoms.
type Fixed int32

// NewFixed scales a float64 by 2^20, rounding half-away-from-zero, and
// reports an error if the result does not fit in a signed 32-bit value.
func NewFixed(x float64) (Fixed, error) {
	scaled := x * FixedDenom
	var rounded float64
	if scaled >= 0 {
		rounded = math.Floor(scaled + 0.5)
	} else {
		rounded = math.Ceil(scaled - 0.5)
	}
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return 0, &SemanticError{Msg: "real value out of fixed-point range"}
	}
	return Fixed(int32(rounded)), nil
}

// Float returns the value of x as a float64.
func (x Fixed) Float() float64 {
	return float64(x) / FixedDenom
}
