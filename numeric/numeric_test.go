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

package numeric

import (
	"testing"

	"seehuhn.de/go/zrtex"
)

func TestParseD(t *testing.T) {
	cases := []struct {
		token   string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"255", 255, false},
		{"256", 0, true},
		{"-1", 0, true},
	}
	for _, c := range cases {
		got, err := Parse(zrtex.KindD, c.token, nil)
		if (err != nil) != c.wantErr {
			t.Fatalf("Parse(D,%q): err=%v, wantErr=%v", c.token, err, c.wantErr)
		}
		if err == nil && got != c.want {
			t.Errorf("Parse(D,%q) = %d, want %d", c.token, got, c.want)
		}
	}
}

func TestParseFace(t *testing.T) {
	v, err := Parse(zrtex.KindF, "17", nil)
	if err != nil || v != 17 {
		t.Fatalf("Parse(F,17) = %d, %v", v, err)
	}
	v, err = Parse(zrtex.KindF, "LIE", nil)
	if err != nil || v != 17 {
		t.Fatalf("Parse(F,LIE) = %d, %v", v, err)
	}
	if _, err := Parse(zrtex.KindF, "18", nil); err == nil {
		t.Error("Parse(F,18) should fail")
	}
}

func TestRealRoundTrip(t *testing.T) {
	cases := []string{"1.0", "0.5", "-0.5", "10.0", "0.0", "-0.0000004"}
	for _, token := range cases {
		v, err := ParseReal(token)
		if err != nil {
			t.Fatalf("ParseReal(%q): %v", token, err)
		}
		got := FormatReal(zrtex.Fixed(v))
		v2, err := ParseReal(got)
		if err != nil {
			t.Fatalf("ParseReal(FormatReal(%q)=%q): %v", token, got, err)
		}
		if v2 != v {
			t.Errorf("round-trip %q -> %v -> %q -> %v", token, v, got, v2)
		}
	}
}

func TestRealRoundTripEverySmallFixed(t *testing.T) {
	// print_scaled must round, not truncate, its last digit: every Fixed
	// value in this range (not just the ones with a short exact decimal)
	// has to survive FormatReal->ParseReal unchanged, including the
	// smallest representable units where the naive early-stop test fires
	// before the fraction is pinned down (e.g. Fixed(1), Fixed(50)).
	for v := int32(-2000); v <= 2000; v++ {
		got := FormatReal(zrtex.Fixed(v))
		v2, err := ParseReal(got)
		if err != nil {
			t.Fatalf("ParseReal(FormatReal(%d)=%q): %v", v, got, err)
		}
		if v2 != int64(v) {
			t.Errorf("round-trip %d -> %q -> %d", v, got, v2)
		}
	}
}

func TestRealOne(t *testing.T) {
	v, err := ParseReal("1.0")
	if err != nil {
		t.Fatal(err)
	}
	if v != 1048576 {
		t.Errorf("ParseReal(1.0) = %d, want 1048576", v)
	}
	if got := FormatReal(zrtex.Fixed(v)); got != "1.0" {
		t.Errorf("FormatReal(1048576) = %q, want %q", got, "1.0")
	}
}

func TestDFallbackToOctal(t *testing.T) {
	got := Fallback(zrtex.KindD, 256, false)
	if got != zrtex.KindO {
		t.Errorf("Fallback(D,256,false) = %v, want O", got)
	}
	got = Fallback(zrtex.KindD, 256, true)
	if got != zrtex.KindH {
		t.Errorf("Fallback(D,256,true) = %v, want H", got)
	}
}

func TestFaceFallback(t *testing.T) {
	if got := Fallback(zrtex.KindF, 18, false); got != zrtex.KindD {
		t.Errorf("Fallback(F,18) = %v, want D", got)
	}
}
