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

package vf

import (
	"bytes"
	"testing"
)

func TestParseDVISetCharAndMoves(t *testing.T) {
	data := []byte{65, 148, 10, 147, 66} // setchar A, right1 w=10, reuse-w, setchar B
	instrs, err := ParseDVI(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(instrs) != 4 {
		t.Fatalf("got %d instrs, want 4: %+v", len(instrs), instrs)
	}
	if instrs[0].Op != OpSetChar || instrs[0].Code != 65 {
		t.Errorf("instr 0 = %+v", instrs[0])
	}
	if instrs[1].Register != RegW || instrs[1].Reuse {
		t.Errorf("instr 1 = %+v, want w-store not reuse", instrs[1])
	}
	if instrs[2].Register != RegW || !instrs[2].Reuse || instrs[2].Width != 10 {
		t.Errorf("instr 2 = %+v, want w-reuse of 10", instrs[2])
	}
}

func TestParseDVIReuseBeforeSetRejects(t *testing.T) {
	if _, err := ParseDVI([]byte{147}); err == nil {
		t.Fatal("expected reject for reuse-w with no prior store")
	}
}

func TestParseDVIUnbalancedPush(t *testing.T) {
	if _, err := ParseDVI([]byte{141}); err == nil {
		t.Fatal("expected reject for unmatched PUSH")
	}
}

func TestParseDVIPopEmptyRejects(t *testing.T) {
	if _, err := ParseDVI([]byte{142}); err == nil {
		t.Fatal("expected reject for POP with empty stack")
	}
}

func TestEncodeDVIRoundTrip(t *testing.T) {
	data := []byte{65, 141, 148, 10, 147, 142, 66}
	instrs, err := ParseDVI(data)
	if err != nil {
		t.Fatal(err)
	}
	out, err := EncodeDVI(instrs)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("re-encoded = %v, want %v", out, data)
	}
}

func TestCompileReuseAfterRepeatedMove(t *testing.T) {
	frame := NewFrame()
	first := Compile(OpMoveRight, 0, frame, false)
	if first.Reuse {
		t.Errorf("first move of 0 should store, not reuse: %+v", first)
	}
	second := Compile(OpMoveRight, 0, frame, false)
	if !second.Reuse || second.Register != RegW {
		t.Errorf("second move of 0 should reuse w: %+v", second)
	}
}
