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

import "fmt"

// SyntaxError reports a malformed token, an unbalanced paren run, or a
// numeric literal that does not match its prefix's grammar.
type SyntaxError struct {
	Where string // file/stream name, or "" if unknown
	Pos   int    // token index or byte offset, -1 if not tracked
	Msg   string
}

func (err *SyntaxError) Error() string {
	if err.Pos >= 0 {
		return fmt.Sprintf("%s: syntax error at %d: %s", where(err.Where), err.Pos, err.Msg)
	}
	return fmt.Sprintf("%s: syntax error: %s", where(err.Where), err.Msg)
}

// SemanticError reports a value out of range for its prefix, an
// inconsistent codespace, or a duplicate subtype/type assignment.
type SemanticError struct {
	Where string
	Msg   string
}

func (err *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", where(err.Where), err.Msg)
}

// StructuralError reports a record appearing at the wrong VF parser
// stage, a CHARSINTYPE without a matching TYPE, or similar tree-shape
// violations.
type StructuralError struct {
	Where string
	Msg   string
}

func (err *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", where(err.Where), err.Msg)
}

// ExternalError reports a spawned command failing, or a file the
// external toolchain could not locate.
type ExternalError struct {
	Command string
	Stderr  string
	Err     error
}

func (err *ExternalError) Error() string {
	msg := fmt.Sprintf("running %q failed", err.Command)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.Stderr != "" {
		msg += "\n" + err.Stderr
	}
	return msg
}

func (err *ExternalError) Unwrap() error {
	return err.Err
}

// InternalError reports an invariant the code believes unreachable. Seeing
// one means a bug in this module, not in the caller's input.
type InternalError struct {
	Msg string
}

func (err *InternalError) Error() string {
	return "internal error: " + err.Msg
}

func where(name string) string {
	if name == "" {
		return "zrtex"
	}
	return name
}
