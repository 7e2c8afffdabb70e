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
	"bytes"
	"context"
	"os/exec"
	"regexp"

	"seehuhn.de/go/zrtex"
)

// benignStderr matches stderr lines the conversion tools are known to emit
// on success; their presence does not indicate failure (§6).
var benignStderr = regexp.MustCompile(`I had to round some|Input file is in kanji|LIG`)

// Run spawns name with args, capturing stdout and stderr into separate
// buffers via a three-pipe spawn. The command's exit status is not
// consulted: callers determine success from the expected output file's
// existence and Clean's verdict on the captured stderr (§6).
func Run(ctx context.Context, name string, args []string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()
	stdout, stderr = outBuf.String(), errBuf.String()
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			return stdout, stderr, &zrtex.ExternalError{Command: name, Stderr: stderr, Err: runErr}
		}
	}
	return stdout, stderr, nil
}

// Clean reports whether stderr contains nothing but benign diagnostic
// lines (§6): lines matching benignStderr are ignored, any other
// non-blank line marks the run as unclean.
func Clean(stderr string) bool {
	for _, line := range splitLines(stderr) {
		if line == "" {
			continue
		}
		if !benignStderr.MatchString(line) {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, trimCR(s[start:i]))
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, trimCR(s[start:]))
	}
	return out
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}
