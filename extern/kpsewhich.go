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
	"context"
	"strconv"
	"strings"

	"seehuhn.de/go/zrtex"
)

// LocateOptions selects how a file is resolved by kpsewhich: either a
// single format string (passed as "-format") or a fuller option map (§6).
type LocateOptions struct {
	Format    string
	DPI       int
	Engine    string
	Mode      string
	ProgName  string
	MustExist bool
}

// Locate runs kpsewhich for name under opts and returns the absolute path
// it printed. It returns ok=false (with the error unset) when kpsewhich
// ran cleanly but found nothing to report, matching §6's "returns
// undefined" contract; a non-nil error means the command itself failed.
func Locate(ctx context.Context, cfg *zrtex.Config, name string, opts LocateOptions) (path string, ok bool, err error) {
	cfg = zrtex.Or(cfg)
	args := buildKpsewhichArgs(opts)
	args = append(args, name)

	stdout, stderr, err := Run(ctx, cfg.Command("kpsewhich"), args)
	if err != nil {
		return "", false, err
	}
	if !Clean(stderr) {
		return "", false, &zrtex.ExternalError{Command: "kpsewhich", Stderr: stderr}
	}
	out := strings.TrimSpace(stdout)
	if out == "" {
		return "", false, nil
	}
	return out, true, nil
}

func buildKpsewhichArgs(opts LocateOptions) []string {
	var args []string
	if opts.Format != "" {
		args = append(args, "-format", opts.Format)
	}
	if opts.DPI != 0 {
		args = append(args, "-dpi", strconv.Itoa(opts.DPI))
	}
	if opts.Engine != "" {
		args = append(args, "-engine", opts.Engine)
	}
	if opts.Mode != "" {
		args = append(args, "-mode", opts.Mode)
	}
	if opts.ProgName != "" {
		args = append(args, "-progname", opts.ProgName)
	}
	if opts.MustExist {
		args = append(args, "-must-exist")
	}
	return args
}
