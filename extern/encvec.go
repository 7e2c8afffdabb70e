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
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"seehuhn.de/go/zrtex"
)

// ParseEncVector reads a PostScript encoding-vector file of the shape
// "/EncodingName [ /glyph1 /glyph2 ... ] def" and returns the glyph names
// in array order (a "." entry marks an unencoded slot and becomes "").
// This is a thin named-array reader, not a PostScript interpreter: §1
// lists .enc parsing as an out-of-scope collaborator whose interface is
// still specified here.
//
// .enc files are normally 7-bit PostScript, but some font vendors drop
// accented glyph-name comments in Windows-1252; bytes that are not valid
// UTF-8 are decoded via golang.org/x/text/encoding/charmap as a Latin-1
// superset fallback before tokenizing.
func ParseEncVector(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &zrtex.ExternalError{Command: "ParseEncVector", Err: err}
	}
	if !utf8.Valid(data) {
		if decoded, _, derr := transform.Bytes(charmap.Windows1252.NewDecoder(), data); derr == nil {
			data = decoded
		}
	}
	text := stripPSComments(string(data))

	open := strings.IndexByte(text, '[')
	if open < 0 {
		return nil, &zrtex.SyntaxError{Where: ".enc", Pos: -1, Msg: "no '[' opening the encoding array"}
	}
	depth := 0
	closeIdx := -1
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return nil, &zrtex.SyntaxError{Where: ".enc", Pos: open, Msg: "unbalanced '[' in encoding array"}
	}

	fields := strings.Fields(text[open+1 : closeIdx])
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		switch {
		case f == ".":
			names = append(names, "")
		case strings.HasPrefix(f, "/"):
			names = append(names, f[1:])
		default:
			return nil, &zrtex.SyntaxError{Where: ".enc", Pos: -1, Msg: "encoding array entry " + f + " is not a glyph name"}
		}
	}
	return names, nil
}

func stripPSComments(s string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = line[:i]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
