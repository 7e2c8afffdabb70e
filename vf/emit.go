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
	"fmt"
)

// EncodeDVI serializes instrs back to their DVI byte form. Each Instr
// already names the register (if any) and whether it reuses a stored
// value, so encoding replays that choice directly rather than
// re-optimizing it. Operands are always written in their shortest form,
// so for a packet built by ParseDVI from bytes that already use the
// shortest forms this reproduces the original bytes exactly (§8's
// emit_vf(parse_vf(b)) = b law); a longer-than-needed operand comes back
// shortened. Fresh
// packets built by a composer should run their moves through Compile
// first so Register/Reuse already reflect the cheapest encoding.
func EncodeDVI(instrs []Instr) ([]byte, error) {
	var out []byte
	depth := 0
	for _, in := range instrs {
		switch in.Op {
		case OpSetChar:
			if in.Code <= 127 {
				out = append(out, byte(in.Code))
			} else {
				n, bs := minBytesUnsigned(uint32(in.Code))
				out = append(out, byte(128+n-1))
				out = append(out, bs...)
			}
		case OpSetRule:
			out = append(out, 132)
			out = append(out, signedBytes(in.Height, 4)...)
			out = append(out, signedBytes(in.Width, 4)...)
		case OpPush:
			out = append(out, 141)
			depth++
		case OpPop:
			if depth == 0 {
				return nil, fmt.Errorf("vf: POP without matching PUSH")
			}
			out = append(out, 142)
			depth--
		case OpMoveRight, OpMoveDown:
			bs, err := encodeMove(in)
			if err != nil {
				return nil, err
			}
			out = append(out, bs...)
		case OpSelectFont:
			if in.Code >= 0 && in.Code <= 63 {
				out = append(out, byte(171+in.Code))
			} else {
				n, bs := minBytesUnsigned(uint32(in.Code))
				out = append(out, byte(235+n-1))
				out = append(out, bs...)
			}
		case OpSpecial:
			n, lbs := minBytesUnsigned(uint32(len(in.Data)))
			out = append(out, byte(239+n-1))
			out = append(out, lbs...)
			out = append(out, in.Data...)
		case OpDir:
			out = append(out, 255, byte(in.Dir))
		default:
			return nil, fmt.Errorf("vf: unknown instruction op %d", in.Op)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("vf: unbalanced PUSH without matching POP")
	}
	return out, nil
}

func encodeMove(in Instr) ([]byte, error) {
	var plainBase, reuseOp, storeBase byte
	switch in.Register {
	case RegNone:
		if in.Op == OpMoveRight {
			plainBase = 143
		} else {
			plainBase = 157
		}
		n, bs := minBytesSigned(in.delta())
		return append([]byte{plainBase + n - 1}, bs...), nil
	case RegW:
		reuseOp, storeBase = 147, 148
	case RegX:
		reuseOp, storeBase = 152, 153
	case RegY:
		reuseOp, storeBase = 161, 162
	case RegZ:
		reuseOp, storeBase = 166, 167
	default:
		return nil, fmt.Errorf("vf: unknown move register %q", in.Register)
	}
	if in.Reuse {
		return []byte{reuseOp}, nil
	}
	n, bs := minBytesSigned(in.delta())
	return append([]byte{storeBase + n - 1}, bs...), nil
}

func (in Instr) delta() int32 {
	if in.Op == OpMoveDown {
		return in.Height
	}
	return in.Width
}

func minBytesUnsigned(v uint32) (byte, []byte) {
	for n := byte(1); n <= 4; n++ {
		if v < uint32(1)<<(8*n) {
			out := make([]byte, n)
			x := v
			for i := int(n) - 1; i >= 0; i-- {
				out[i] = byte(x)
				x >>= 8
			}
			return n, out
		}
	}
	out := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return 4, out
}

func signedBytes(v int32, n int) []byte {
	out := make([]byte, n)
	x := v
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(x)
		x >>= 8
	}
	return out
}

func minBytesSigned(v int32) (byte, []byte) {
	for n := byte(1); n <= 4; n++ {
		lo := int32(-1) << (8*n - 1)
		hi := -lo - 1
		if n == 4 {
			lo, hi = -2147483648, 2147483647
		}
		if v >= lo && v <= hi {
			return n, signedBytes(v, int(n))
		}
	}
	return 4, signedBytes(v, 4)
}

// Compile chooses the cheapest valid encoding for a MOVERIGHT/MOVELEFT (or
// MOVEDOWN/MOVEUP) of delta, following the four-case schedule of §4.6:
// prefer reusing or loading the w register (z for vertical moves), then x
// (y), then fall back to a plain N-byte move. simple forces the plain
// form for every move (a configuration flag, §5).
func Compile(op Op, delta int32, frame *Frame, simple bool) Instr {
	if simple {
		return Instr{Op: op, Width: delta, Height: delta}
	}
	primary, secondary := RegW, RegX
	if op == OpMoveDown {
		primary, secondary = RegZ, RegY
	}
	for _, reg := range [2]Register{primary, secondary} {
		set, val := frameValue(frame, reg)
		if set && val == delta {
			return setInstr(op, delta, reg, true)
		}
	}
	for _, reg := range [2]Register{primary, secondary} {
		if set, _ := frameValue(frame, reg); !set {
			setFrameValue(frame, reg, delta)
			return setInstr(op, delta, reg, false)
		}
	}
	return Instr{Op: op, Width: delta, Height: delta}
}

func frameValue(f *Frame, reg Register) (bool, int32) {
	switch reg {
	case RegW:
		return f.wSet, f.w
	case RegX:
		return f.xSet, f.x
	case RegY:
		return f.ySet, f.y
	case RegZ:
		return f.zSet, f.z
	}
	return false, 0
}

func setFrameValue(f *Frame, reg Register, v int32) {
	switch reg {
	case RegW:
		f.w, f.wSet = v, true
	case RegX:
		f.x, f.xSet = v, true
	case RegY:
		f.y, f.ySet = v, true
	case RegZ:
		f.z, f.zSet = v, true
	}
}

func setInstr(op Op, delta int32, reg Register, reuse bool) Instr {
	in := Instr{Op: op, Register: reg, Reuse: reuse}
	if op == OpMoveDown {
		in.Height = delta
	} else {
		in.Width = delta
	}
	return in
}
