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

package extern

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseEncVector(t *testing.T) {
	src := strings.NewReader(`% this is a comment
/TestEncoding [
  /space /exclam /quotedbl
  /.notdef .
  /A /B
] def
`)
	got, err := ParseEncVector(src)
	if err != nil {
		t.Fatalf("ParseEncVector: %v", err)
	}
	want := []string{"space", "exclam", "quotedbl", ".notdef", "", "A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseEncVector = %#v, want %#v", got, want)
	}
}

func TestParseEncVectorMissingBracket(t *testing.T) {
	_, err := ParseEncVector(strings.NewReader("/Broken /a /b def"))
	if err == nil {
		t.Fatal("expected a syntax error when the array is never opened")
	}
}
