// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// IntOption is a live integer option. Values that are not positive read as
// the default. Safe for concurrent use.
type IntOption struct {
	name string
	def  int
	v    atomic.Int64
}

// NewIntOption creates an option that reads as def until set.
func NewIntOption(name string, def int) *IntOption {
	return &IntOption{name: name, def: def}
}

// Name returns the option's dotted name.
func (o *IntOption) Name() string { return o.name }

// Get returns the current value, or the default if unset or not positive.
func (o *IntOption) Get() int {
	if o == nil {
		return 0
	}
	if v := o.v.Load(); v > 0 {
		return int(v)
	}
	return o.def
}

// Set stores a new value. Zero or negative values restore the default.
func (o *IntOption) Set(v int) {
	o.v.Store(int64(v))
}

// ColorOption is a live color option. Safe for concurrent use.
type ColorOption struct {
	name string
	v    atomic.Pointer[gputypes.Color]
}

// NewColorOption creates an option holding def.
func NewColorOption(name string, def gputypes.Color) *ColorOption {
	o := &ColorOption{name: name}
	o.v.Store(&def)
	return o
}

// Name returns the option's dotted name.
func (o *ColorOption) Name() string { return o.name }

// Get returns the current color.
func (o *ColorOption) Get() gputypes.Color {
	return *o.v.Load()
}

// Set stores a new color.
func (o *ColorOption) Set(c gputypes.Color) {
	o.v.Store(&c)
}

// Store holds the live options consulted by the renderer.
type Store struct {
	MaxBufferSize   *IntOption
	BackgroundColor *ColorOption
}

// NewStore returns a store holding the built-in defaults.
func NewStore() *Store {
	return &Store{
		MaxBufferSize:   NewIntOption("workarounds.max_buffer_size", DefaultMaxBufferSize),
		BackgroundColor: NewColorOption("core.background_color", DefaultBackgroundColor),
	}
}

// Apply copies the values of cfg into the live options. On error no option
// is changed.
func (s *Store) Apply(cfg *Config) error {
	bg, err := ParseColor(cfg.Core.BackgroundColor)
	if err != nil {
		return err
	}
	s.MaxBufferSize.Set(cfg.Workarounds.MaxBufferSize)
	s.BackgroundColor.Set(bg)
	return nil
}
