// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads renderpass settings from TOML files and exposes them
// as live option values.
//
// Example file:
//
//	[core]
//	background_color = "#1a1a1aff"
//
//	[workarounds]
//	max_buffer_size = 4096
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/internal/logging"
)

// DefaultMaxBufferSize is used when workarounds.max_buffer_size is absent or
// not positive.
const DefaultMaxBufferSize = 4096

// DefaultBackgroundColor is the clear color used when none is configured.
var DefaultBackgroundColor = gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}

// ErrInvalidColor is returned for color strings that cannot be parsed.
var ErrInvalidColor = errors.New("config: invalid color")

// Config mirrors the TOML file layout.
type Config struct {
	Core        CoreSection        `toml:"core"`
	Workarounds WorkaroundsSection `toml:"workarounds"`
}

// CoreSection holds general rendering options.
type CoreSection struct {
	// BackgroundColor is "#rrggbb", "#rrggbbaa" or four floats "r g b a".
	BackgroundColor string `toml:"background_color"`
}

// WorkaroundsSection holds options that paper over driver problems.
type WorkaroundsSection struct {
	// MaxBufferSize caps the width and height of auxiliary buffers.
	MaxBufferSize int `toml:"max_buffer_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workarounds: WorkaroundsSection{MaxBufferSize: DefaultMaxBufferSize},
	}
}

// Load reads a TOML configuration file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	warnUndecoded(md)
	return cfg, nil
}

// Decode parses TOML text. Missing keys keep their defaults.
func Decode(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	warnUndecoded(md)
	return cfg, nil
}

func warnUndecoded(md toml.MetaData) {
	for _, key := range md.Undecoded() {
		logging.Logger().Warn("config: unknown option", "key", key.String())
	}
}

// ParseColor parses "#rrggbb", "#rrggbbaa" or "r g b a" (floats in [0, 1]).
// An empty string yields DefaultBackgroundColor.
func ParseColor(s string) (gputypes.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultBackgroundColor, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 6 {
			hex += "ff"
		}
		if len(hex) != 8 {
			return gputypes.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return gputypes.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return gputypes.Color{
			R: float64(v>>24&0xff) / 255,
			G: float64(v>>16&0xff) / 255,
			B: float64(v>>8&0xff) / 255,
			A: float64(v&0xff) / 255,
		}, nil
	}

	fields := strings.Fields(s)
	if len(fields) != 4 {
		return gputypes.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var c [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 || v > 1 {
			return gputypes.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c[i] = v
	}
	return gputypes.NewColor(c[0], c[1], c[2], c[3]), nil
}
