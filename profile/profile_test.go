package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/reap"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/reap", Quiet: true}
	if p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestProfiler_StartDisabled(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
	}{
		{"empty mode", Profiler{}},
		{"unknown mode", Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.p.Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("expected no-op profiler, got %T", s)
			}

			s.Stop()
		})
	}
}

func TestModes_Sorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("expected sorted modes, got %v", m)
	}
}
