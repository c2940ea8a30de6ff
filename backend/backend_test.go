package backend_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/renderpass/backend"
	"github.com/gogpu/renderpass/backend/recording"
	_ "github.com/gogpu/renderpass/backend/software"
)

func TestBuiltinBackendsRegistered(t *testing.T) {
	got := backend.Available()
	for _, name := range []string{backend.BackendRecording, backend.BackendSoftware} {
		if !slices.Contains(got, name) {
			t.Errorf("Available() = %v, missing %q", got, name)
		}
	}
	if !slices.IsSorted(got) {
		t.Errorf("Available() = %v, want sorted", got)
	}
}

func TestDefaultPrefersSoftware(t *testing.T) {
	if got := backend.DefaultName(); got != backend.BackendSoftware {
		t.Errorf("DefaultName() = %q, want %q", got, backend.BackendSoftware)
	}
	b := backend.Default()
	if b == nil || b.Name() != backend.BackendSoftware {
		t.Errorf("Default() = %v, want the software backend", b)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{"", backend.BackendSoftware, nil},
		{backend.BackendSoftware, backend.BackendSoftware, nil},
		{backend.BackendRecording, backend.BackendRecording, nil},
		{"metal", "", backend.ErrBackendNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := backend.Open(tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Open(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer b.Close()
			if b.Name() != tt.want {
				t.Errorf("Open(%q).Name() = %q, want %q", tt.name, b.Name(), tt.want)
			}
		})
	}
}

func TestOpenReturnsFreshInstances(t *testing.T) {
	a, err := backend.Open(backend.BackendRecording)
	if err != nil {
		t.Fatal(err)
	}
	b, err := backend.Open(backend.BackendRecording)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("Open() returned the same instance twice")
	}
}

func TestRegisterUnregister(t *testing.T) {
	const name = "test-custom"
	backend.Register(name, func() backend.Backend { return recording.New() })
	t.Cleanup(func() { backend.Unregister(name) })

	if !backend.IsRegistered(name) {
		t.Fatalf("IsRegistered(%q) = false after Register", name)
	}
	if b := backend.Get(name); b == nil {
		t.Errorf("Get(%q) = nil", name)
	}
	if got := backend.DefaultName(); got != backend.BackendSoftware {
		t.Errorf("DefaultName() = %q, custom backends must not outrank the priority list", got)
	}

	backend.Unregister(name)
	if backend.IsRegistered(name) {
		t.Errorf("IsRegistered(%q) = true after Unregister", name)
	}
	if b := backend.Get(name); b != nil {
		t.Errorf("Get(%q) = %v after Unregister", name, b)
	}
}
