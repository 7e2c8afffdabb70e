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

// Command zvpmerge composes a VPL + JPL pair back into one ZVP file, the
// inverse of zvpdiv (§4.9).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/pl"
	"seehuhn.de/go/zrtex/zvp"
)

func main() {
	out := flag.String("o", "", "output .zvp file (default: stdout)")
	flag.Parse()

	if len(flag.Args()) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: zvpmerge [options] <input.vpl> <input.jpl>")
		os.Exit(1)
	}
	vplFile, jplFile := flag.Arg(0), flag.Arg(1)

	cfg := zrtex.DefaultConfig()

	vfTree, err := readPL(vplFile, cfg)
	if err != nil {
		log.Fatalf("failed to read %s: %v", vplFile, err)
	}
	jfmTree, err := readPL(jplFile, cfg)
	if err != nil {
		log.Fatalf("failed to read %s: %v", jplFile, err)
	}

	merged, err := zvp.Compose(vfTree, jfmTree)
	if err != nil {
		log.Fatalf("failed to compose ZVP: %v", err)
	}

	text, err := pl.EmitStruct(merged, pl.DefaultEmitOptions())
	if err != nil {
		log.Fatalf("failed to emit ZVP: %v", err)
	}

	if *out == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*out, []byte(text), 0644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func readPL(name string, cfg *zrtex.Config) (*zrtex.Struct, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return pl.Parse(src, cfg)
}
