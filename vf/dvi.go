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

// Op names one DVI mini-interpreter instruction kind (§4.5.1). Only the
// subset of DVI opcodes a VF char packet may carry is represented; a full
// DVI page-description interpreter is out of scope.
type Op int

const (
	OpSetChar Op = iota
	OpSetRule
	OpPush
	OpPop
	OpMoveRight
	OpMoveDown
	OpSelectFont
	OpSpecial
	OpDir
)

// Register names which w/x/y/z slot a move instruction reads or stores;
// zero (no register) marks a plain N-byte move untracked by any frame.
type Register byte

const (
	RegNone Register = 0
	RegW    Register = 'w'
	RegX    Register = 'x'
	RegY    Register = 'y'
	RegZ    Register = 'z'
)

// Instr is one decoded DVI instruction.
type Instr struct {
	Op       Op
	Code     int32    // SETCHAR / SELECTFONT
	Height   int32    // SETRULE, or MOVEDOWN's delta
	Width    int32    // SETRULE, or MOVERIGHT's delta
	Register Register // which frame register a move touches, if any
	Reuse    bool      // move reused the register's stored value (zero-byte form)
	Data     []byte    // SPECIAL payload
	Dir      int32     // DIR n (JFM vertical-writing extension)
}

// Frame tracks one push/pop level's last-set w/x/y/z values (§4.5.1).
type Frame struct {
	w, x, y, z       int32
	wSet, xSet, ySet, zSet bool
}

// NewFrame returns an empty register frame, the starting state Compile
// expects for the outermost (unpushed) level.
func NewFrame() *Frame { return &Frame{} }

// Reject is returned by ParseDVI when it encounters a byte sequence it
// cannot interpret; callers in lax mode fall back to a DIRECTHEX atom.
type Reject struct {
	Offset int
	Msg    string
}

func (e *Reject) Error() string { return e.Msg }

// ParseDVI decodes a VF char packet's DVI payload into a sequence of
// Instr, maintaining the push/pop register-frame stack needed to resolve
// reused w/x/y/z moves.
func ParseDVI(data []byte) ([]Instr, error) {
	var out []Instr
	frames := []*Frame{{}}
	cur := func() *Frame { return frames[len(frames)-1] }
	i := 0
	for i < len(data) {
		b := data[i]
		i++
		switch {
		case b <= 127:
			out = append(out, Instr{Op: OpSetChar, Code: int32(b)})
		case b >= 128 && b <= 131:
			n := int(b-128) + 1
			v, err := readUnsigned(data, &i, n)
			if err != nil {
				return nil, err
			}
			out = append(out, Instr{Op: OpSetChar, Code: int32(v)})
		case b == 132:
			h, err := readSigned(data, &i, 4)
			if err != nil {
				return nil, err
			}
			w, err := readSigned(data, &i, 4)
			if err != nil {
				return nil, err
			}
			out = append(out, Instr{Op: OpSetRule, Height: h, Width: w})
		case b == 141:
			frames = append(frames, &Frame{})
			out = append(out, Instr{Op: OpPush})
		case b == 142:
			if len(frames) <= 1 {
				return nil, &Reject{Offset: i - 1, Msg: "POP with empty frame stack"}
			}
			frames = frames[:len(frames)-1]
			out = append(out, Instr{Op: OpPop})
		case b >= 143 && b <= 146:
			d, err := readSigned(data, &i, int(b-143)+1)
			if err != nil {
				return nil, err
			}
			out = append(out, Instr{Op: OpMoveRight, Width: d})
		case b == 147:
			if !cur().wSet {
				return nil, &Reject{Offset: i - 1, Msg: "reuse-w before w is ever set"}
			}
			out = append(out, Instr{Op: OpMoveRight, Width: cur().w, Register: RegW, Reuse: true})
		case b >= 148 && b <= 151:
			d, err := readSigned(data, &i, int(b-148)+1)
			if err != nil {
				return nil, err
			}
			cur().w, cur().wSet = d, true
			out = append(out, Instr{Op: OpMoveRight, Width: d, Register: RegW})
		case b == 152:
			if !cur().xSet {
				return nil, &Reject{Offset: i - 1, Msg: "reuse-x before x is ever set"}
			}
			out = append(out, Instr{Op: OpMoveRight, Width: cur().x, Register: RegX, Reuse: true})
		case b >= 153 && b <= 156:
			d, err := readSigned(data, &i, int(b-153)+1)
			if err != nil {
				return nil, err
			}
			cur().x, cur().xSet = d, true
			out = append(out, Instr{Op: OpMoveRight, Width: d, Register: RegX})
		case b >= 157 && b <= 160:
			d, err := readSigned(data, &i, int(b-157)+1)
			if err != nil {
				return nil, err
			}
			out = append(out, Instr{Op: OpMoveDown, Height: d})
		case b == 161:
			if !cur().ySet {
				return nil, &Reject{Offset: i - 1, Msg: "reuse-y before y is ever set"}
			}
			out = append(out, Instr{Op: OpMoveDown, Height: cur().y, Register: RegY, Reuse: true})
		case b >= 162 && b <= 165:
			d, err := readSigned(data, &i, int(b-162)+1)
			if err != nil {
				return nil, err
			}
			cur().y, cur().ySet = d, true
			out = append(out, Instr{Op: OpMoveDown, Height: d, Register: RegY})
		case b == 166:
			if !cur().zSet {
				return nil, &Reject{Offset: i - 1, Msg: "reuse-z before z is ever set"}
			}
			out = append(out, Instr{Op: OpMoveDown, Height: cur().z, Register: RegZ, Reuse: true})
		case b >= 167 && b <= 170:
			d, err := readSigned(data, &i, int(b-167)+1)
			if err != nil {
				return nil, err
			}
			cur().z, cur().zSet = d, true
			out = append(out, Instr{Op: OpMoveDown, Height: d, Register: RegZ})
		case b >= 171 && b <= 234:
			out = append(out, Instr{Op: OpSelectFont, Code: int32(b - 171)})
		case b >= 235 && b <= 238:
			v, err := readUnsigned(data, &i, int(b-235)+1)
			if err != nil {
				return nil, err
			}
			out = append(out, Instr{Op: OpSelectFont, Code: int32(v)})
		case b >= 239 && b <= 242:
			length, err := readUnsigned(data, &i, int(b-239)+1)
			if err != nil {
				return nil, err
			}
			if i+int(length) > len(data) {
				return nil, &Reject{Offset: i, Msg: "SPECIAL payload runs past end of packet"}
			}
			body := append([]byte(nil), data[i:i+int(length)]...)
			i += int(length)
			out = append(out, Instr{Op: OpSpecial, Data: body})
		case b == 255:
			if i >= len(data) {
				return nil, &Reject{Offset: i, Msg: "DIR missing its operand byte"}
			}
			out = append(out, Instr{Op: OpDir, Dir: int32(data[i])})
			i++
		default:
			return nil, &Reject{Offset: i - 1, Msg: "byte not valid in a VF DVI payload"}
		}
	}
	if len(frames) != 1 {
		return nil, &Reject{Offset: len(data), Msg: "unbalanced PUSH without matching POP"}
	}
	return out, nil
}

func readUnsigned(data []byte, i *int, n int) (uint32, error) {
	if *i+n > len(data) {
		return 0, &Reject{Offset: *i, Msg: "operand runs past end of packet"}
	}
	var v uint32
	for _, b := range data[*i : *i+n] {
		v = v<<8 | uint32(b)
	}
	*i += n
	return v, nil
}

func readSigned(data []byte, i *int, n int) (int32, error) {
	if *i+n > len(data) {
		return 0, &Reject{Offset: *i, Msg: "operand runs past end of packet"}
	}
	v := int32(int8(data[*i]))
	for _, b := range data[*i+1 : *i+n] {
		v = v<<8 | int32(b)
	}
	*i += n
	return v, nil
}
