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

// Command zvpdiv splits a composite ZVP property list into its VF-side
// (.vpl) and JFM-side (.jpl) halves (§4.8).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"seehuhn.de/go/zrtex"
	"seehuhn.de/go/zrtex/pl"
	"seehuhn.de/go/zrtex/zvp"
)

func main() {
	vplOut := flag.String("vpl", "", "output .vpl file (default: <input base>.vpl)")
	jplOut := flag.String("jpl", "", "output .jpl file (default: <input base>.jpl)")
	threshold := flag.Int("rangify-threshold", 8, "minimum run length before a charlist compacts into a CTRANGE")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: zvpdiv [options] <input.zvp>")
		os.Exit(1)
	}
	inputFile := flag.Arg(0)
	base := strings.TrimSuffix(inputFile, ".zvp")
	if *vplOut == "" {
		*vplOut = base + ".vpl"
	}
	if *jplOut == "" {
		*jplOut = base + ".jpl"
	}

	src, err := os.ReadFile(inputFile)
	if err != nil {
		log.Fatalf("failed to read input file: %v", err)
	}

	cfg := zrtex.DefaultConfig()
	cfg.RangifyThreshold = *threshold

	tree, err := pl.Parse(src, cfg)
	if err != nil {
		log.Fatalf("failed to parse ZVP: %v", err)
	}

	vf, jfm, err := zvp.Divide(tree, cfg.RangifyThreshold)
	if err != nil {
		log.Fatalf("failed to divide ZVP: %v", err)
	}

	if err := writePL(*vplOut, vf); err != nil {
		log.Fatalf("failed to write %s: %v", *vplOut, err)
	}
	if err := writePL(*jplOut, jfm); err != nil {
		log.Fatalf("failed to write %s: %v", *jplOut, err)
	}

	fmt.Printf("Wrote %s and %s\n", *vplOut, *jplOut)
}

func writePL(name string, tree *zrtex.Struct) error {
	text, err := pl.EmitStruct(tree, pl.DefaultEmitOptions())
	if err != nil {
		return err
	}
	return os.WriteFile(name, []byte(text), 0644)
}
