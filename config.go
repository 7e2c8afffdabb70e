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

// Config collects the process-wide flags §5 describes as mutable globals
// in the source system. Here they are an explicit value threaded through
// operations (or defaulted via DefaultConfig), so two callers never step
// on each other's configuration.
type Config struct {
	// StrictVF upgrades several structural conditions (unknown property,
	// missing char packet, CHARWD mismatch) from silent drops/DIRECTHEX
	// fallbacks into errors. Default true.
	StrictVF bool

	// FreeNumber widens non-R numeric prefix ranges to full signed
	// 32-bit instead of their documented narrower ranges.
	FreeNumber bool

	// PreferHex selects H over O when an I-kind (O/H alias) value must
	// be emitted.
	PreferHex bool

	// RangifyThreshold is the minimum run length of contiguous codes a
	// charlist will compact into a CTRANGE; shorter runs list codes
	// individually. Default 8.
	RangifyThreshold int

	// UseUpTeXTool selects the uptftopl/uppltotf command names over the
	// ptftopl/pltotf ones when shelling out.
	UseUpTeXTool bool

	// ForcedPrefix, if non-zero, overrides the emission-fallback choice
	// in §4.1 for all atoms regardless of their natural prefix.
	ForcedPrefix Kind

	// ExternalEncoding and InternalEncoding name the charset transcoder
	// pair used by the K component (jcode_chr/jcode_ord). Recognised
	// external encodings: "jis", "euc-jp", "sjis", "utf-8". The internal
	// encoding is either "jis0208-raw" or "utf-16be".
	ExternalEncoding string
	InternalEncoding string

	// Commands overrides external tool names (kpsewhich, tftopl,
	// ptftopl, pltotf, ppltotf, uptftopl, uppltotf, vptovf, opl2ofm).
	Commands map[string]string
}

// DefaultConfig returns the configuration top-level operations use when
// called without explicit configuration.
func DefaultConfig() *Config {
	return &Config{
		StrictVF:         true,
		RangifyThreshold: 8,
		ExternalEncoding: "utf-8",
		InternalEncoding: "utf-16be",
		Commands: map[string]string{
			"kpsewhich": "kpsewhich",
			"tftopl":    "tftopl",
			"ptftopl":   "ptftopl",
			"pltotf":    "pltotf",
			"ppltotf":   "ppltotf",
			"uptftopl":  "uptftopl",
			"uppltotf":  "uppltotf",
			"vptovf":    "vptovf",
			"opl2ofm":   "opl2ofm",
		},
	}
}

// Or returns cfg if non-nil, else DefaultConfig(). Every package-level
// entry point that takes an optional *zrtex.Config calls this first, so
// tests can invoke it with nil.
func Or(cfg *Config) *Config {
	if cfg != nil {
		return cfg
	}
	return DefaultConfig()
}

// Command returns the resolved external command name for key, falling
// back to key itself if no override is configured.
func (c *Config) Command(key string) string {
	if c == nil || c.Commands == nil {
		return key
	}
	if v, ok := c.Commands[key]; ok && v != "" {
		return v
	}
	return key
}
