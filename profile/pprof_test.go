//go:build pprof

package profile

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestModes_Enabled(t *testing.T) {
	if !slices.Contains(Modes(), "cpu") {
		t.Errorf("Modes() = %v, want cpu", Modes())
	}
}

func TestProfiler_Start_WritesProfile(t *testing.T) {
	dir := t.TempDir()

	s := Profiler{Mode: "heap", Path: dir, Quiet: true}.Start()
	s.Stop()
	s.Stop()

	if _, err := os.Stat(filepath.Join(dir, "mem.pprof")); err != nil {
		t.Errorf("profile not written: %v", err)
	}
}
