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
	"strings"
	"testing"

	"seehuhn.de/go/zrtex"
)

func TestLoadConfigOverridesCommandsAndFlags(t *testing.T) {
	src := strings.NewReader(`
# a comment
kpsewhich = /opt/texlive/bin/kpsewhich
rangify_threshold = 12
prefer_hex = true
external_encoding = euc-jp
`)
	cfg := zrtex.DefaultConfig()
	if err := LoadConfig(src, cfg); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.Command("kpsewhich"); got != "/opt/texlive/bin/kpsewhich" {
		t.Errorf("kpsewhich command = %q, want the overridden path", got)
	}
	if cfg.RangifyThreshold != 12 {
		t.Errorf("RangifyThreshold = %d, want 12", cfg.RangifyThreshold)
	}
	if !cfg.PreferHex {
		t.Errorf("PreferHex = false, want true")
	}
	if cfg.ExternalEncoding != "euc-jp" {
		t.Errorf("ExternalEncoding = %q, want euc-jp", cfg.ExternalEncoding)
	}
}

func TestLoadConfigRejectsMalformedLine(t *testing.T) {
	src := strings.NewReader("this line has no equals sign\n")
	err := LoadConfig(src, zrtex.DefaultConfig())
	if err == nil {
		t.Fatal("expected a syntax error for a line without '='")
	}
}
