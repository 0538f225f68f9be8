package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Start_Disabled(t *testing.T) {
	tests := []Profiler{
		{},
		{Mode: "", Path: t.TempDir()},
		{Mode: "no-such-mode", Quiet: true},
	}

	for _, p := range tests {
		s := p.Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("Start(%+v) = %T, want no-op", p, s)
		}

		s.Stop()
		s.Stop()
	}
}

func TestModes_Sorted(t *testing.T) {
	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}
}
