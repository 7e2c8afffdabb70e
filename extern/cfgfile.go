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
	"strconv"
	"strings"

	"seehuhn.de/go/zrtex"
)

// commandKeys lists the ZRTeXtor.cfg keys that override a command name
// rather than a flag, per §6.
var commandKeys = map[string]bool{
	"kpsewhich": true, "tftopl": true, "ptftopl": true, "pltotf": true,
	"ppltotf": true, "uptftopl": true, "uppltotf": true, "vptovf": true,
	"opl2ofm": true,
}

// LoadConfig reads a ZRTeXtor.cfg-style file (line-based "key = value",
// "#" comments) into cfg, overriding either a command name or one of the
// §5 flags §9's supplemented-features note extends the file format to
// (rangify_threshold, prefer_hex, external_encoding, internal_encoding).
// Starting from a fresh *zrtex.Config is the caller's responsibility;
// LoadConfig only applies the keys it finds.
func LoadConfig(r io.Reader, cfg *zrtex.Config) error {
	cfg = zrtex.Or(cfg)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return &zrtex.SyntaxError{Where: "ZRTeXtor.cfg", Pos: lineNo, Msg: "expected key = value"}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		applyConfigKey(cfg, key, value)
	}
	return scanner.Err()
}

func applyConfigKey(cfg *zrtex.Config, key, value string) {
	switch {
	case commandKeys[key]:
		if cfg.Commands == nil {
			cfg.Commands = map[string]string{}
		}
		cfg.Commands[key] = value
	case key == "rangify_threshold":
		if n, err := strconv.Atoi(value); err == nil {
			cfg.RangifyThreshold = n
		}
	case key == "prefer_hex":
		cfg.PreferHex = isTruthy(value)
	case key == "use_uptex_tool":
		cfg.UseUpTeXTool = isTruthy(value)
	case key == "strict_vf":
		cfg.StrictVF = isTruthy(value)
	case key == "free_number":
		cfg.FreeNumber = isTruthy(value)
	case key == "external_encoding":
		cfg.ExternalEncoding = value
	case key == "internal_encoding":
		cfg.InternalEncoding = value
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
