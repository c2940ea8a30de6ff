// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
)

func TestDecode(t *testing.T) {
	cfg, err := Decode(`
[core]
background_color = "#ff000080"

[workarounds]
max_buffer_size = 2048
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Workarounds.MaxBufferSize != 2048 {
		t.Errorf("MaxBufferSize = %d, want 2048", cfg.Workarounds.MaxBufferSize)
	}
	if cfg.Core.BackgroundColor != "#ff000080" {
		t.Errorf("BackgroundColor = %q", cfg.Core.BackgroundColor)
	}
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode("")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Workarounds.MaxBufferSize != DefaultMaxBufferSize {
		t.Errorf("MaxBufferSize = %d, want %d", cfg.Workarounds.MaxBufferSize, DefaultMaxBufferSize)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode("[workarounds\nmax_buffer_size = 1"); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want gputypes.Color
		ok   bool
	}{
		{"", DefaultBackgroundColor, true},
		{"#ffffff", gputypes.Color{R: 1, G: 1, B: 1, A: 1}, true},
		{"#00000000", gputypes.Color{}, true},
		{"#ff0000ff", gputypes.Color{R: 1, A: 1}, true},
		{"0 0.5 1 1", gputypes.Color{G: 0.5, B: 1, A: 1}, true},
		{"#fff", gputypes.Color{}, false},
		{"#gggggg", gputypes.Color{}, false},
		{"1 1 1", gputypes.Color{}, false},
		{"2 0 0 1", gputypes.Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseColor(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("error %v is not ErrInvalidColor", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntOption(t *testing.T) {
	o := NewIntOption("workarounds.max_buffer_size", 4096)
	if got := o.Get(); got != 4096 {
		t.Errorf("unset Get = %d, want 4096", got)
	}
	o.Set(1024)
	if got := o.Get(); got != 1024 {
		t.Errorf("Get = %d, want 1024", got)
	}
	for _, v := range []int{0, -5} {
		o.Set(v)
		if got := o.Get(); got != 4096 {
			t.Errorf("Set(%d) then Get = %d, want default 4096", v, got)
		}
	}
	var nilOpt *IntOption
	if got := nilOpt.Get(); got != 0 {
		t.Errorf("nil option Get = %d, want 0", got)
	}
}

func TestStoreApply(t *testing.T) {
	s := NewStore()
	cfg := Default()
	cfg.Workarounds.MaxBufferSize = 100
	cfg.Core.BackgroundColor = "#000000ff"
	if err := s.Apply(cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := s.MaxBufferSize.Get(); got != 100 {
		t.Errorf("MaxBufferSize = %d, want 100", got)
	}
	if got := s.BackgroundColor.Get(); got != (gputypes.Color{A: 1}) {
		t.Errorf("BackgroundColor = %+v", got)
	}

	cfg.Workarounds.MaxBufferSize = 7
	cfg.Core.BackgroundColor = "bogus"
	if err := s.Apply(cfg); err == nil {
		t.Fatal("expected error for bad color")
	}
	if got := s.MaxBufferSize.Get(); got != 100 {
		t.Errorf("failed Apply changed MaxBufferSize to %d", got)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderpass.toml")
	writeFile(t, path, "[workarounds]\nmax_buffer_size = 512\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workarounds.MaxBufferSize != 512 {
		t.Errorf("MaxBufferSize = %d, want 512", cfg.Workarounds.MaxBufferSize)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderpass.toml")
	writeFile(t, path, "[workarounds]\nmax_buffer_size = 512\n")

	store := NewStore()
	if err := Reload(path, store); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, store) }()

	deadline := time.Now().Add(5 * time.Second)
	for store.MaxBufferSize.Get() != 256 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("option not reloaded, still %d", store.MaxBufferSize.Get())
		}
		// Rewrite until the watcher has been installed and sees a change.
		writeFile(t, path, "[workarounds]\nmax_buffer_size = 256\n")
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
