package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	profile := NewProfile()

	if profile.NumCPU != runtime.NumCPU() {
		t.Errorf("NumCPU = %d, want %d", profile.NumCPU, runtime.NumCPU())
	}
	if profile.GOARCH != runtime.GOARCH || profile.GOOS != runtime.GOOS {
		t.Errorf("platform = %s/%s, want %s/%s", profile.GOOS, profile.GOARCH, runtime.GOOS, runtime.GOARCH)
	}
	if profile.ProfileVersion != CurrentProfileVersion {
		t.Errorf("ProfileVersion = %d, want %d", profile.ProfileVersion, CurrentProfileVersion)
	}
	if profile.CalibratedAt.IsZero() {
		t.Error("CalibratedAt is zero")
	}
}

func TestProfileSaveLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")

	original := NewProfile()
	original.OptimalWorkers = 6
	original.CalibrationSize = 4_000_000
	original.CalibrationTime = "1.2s"
	if err := original.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := loadProfile(path)
	if err != nil {
		t.Fatalf("loadProfile failed: %v", err)
	}
	if loaded.OptimalWorkers != 6 || loaded.CalibrationSize != 4_000_000 || loaded.NumCPU != original.NumCPU {
		t.Errorf("loaded %+v, want %+v", loaded, original)
	}
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	valid := NewProfile()
	valid.OptimalWorkers = 2
	if !valid.IsValid() {
		t.Error("expected profile for current hardware to be valid")
	}

	mutations := map[string]func(p *CalibrationProfile){
		"wrong CPU count":   func(p *CalibrationProfile) { p.NumCPU = 999 },
		"wrong arch":        func(p *CalibrationProfile) { p.GOARCH = "invalid_arch" },
		"wrong word size":   func(p *CalibrationProfile) { p.WordSize = 16 },
		"wrong version":     func(p *CalibrationProfile) { p.ProfileVersion = 999 },
		"no workers stored": func(p *CalibrationProfile) { p.OptimalWorkers = 0 },
	}
	for name, mutate := range mutations {
		p := NewProfile()
		p.OptimalWorkers = 2
		mutate(p)
		if p.IsValid() {
			t.Errorf("%s: expected invalid profile", name)
		}
	}

	var nilProfile *CalibrationProfile
	if nilProfile.IsValid() {
		t.Error("expected nil profile to be invalid")
	}
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	if profile.IsStale(time.Hour) {
		t.Error("expected fresh profile to not be stale")
	}
	profile.CalibratedAt = time.Now().Add(-2 * time.Hour)
	if !profile.IsStale(time.Hour) {
		t.Error("expected old profile to be stale")
	}
	var nilProfile *CalibrationProfile
	if !nilProfile.IsStale(time.Hour) {
		t.Error("expected nil profile to be stale")
	}
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	profile.OptimalWorkers = 8
	if str := profile.String(); !strings.Contains(str, "Workers:  8") {
		t.Errorf("String() = %q, should mention the worker count", str)
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	t.Parallel()
	if _, err := loadProfile("/nonexistent/path/to/profile.json"); err == nil {
		t.Error("expected error loading nonexistent profile")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.json")
	if err := os.WriteFile(invalid, []byte("not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProfile(invalid); err == nil {
		t.Error("expected error loading invalid JSON")
	}
}

func TestLoadOrCreateProfileAndCachedWorkers(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")

	profile, loaded := LoadOrCreateProfile(path)
	if loaded || profile == nil {
		t.Fatalf("expected a fresh profile, got loaded=%v profile=%v", loaded, profile)
	}
	if _, ok := CachedWorkers(path); ok {
		t.Error("CachedWorkers should fail without a profile")
	}

	profile.OptimalWorkers = 3
	if err := profile.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	if _, loaded := LoadOrCreateProfile(path); !loaded {
		t.Error("expected loaded to be true for existing file")
	}
	if w, ok := CachedWorkers(path); !ok || w != 3 {
		t.Errorf("CachedWorkers = %d, %v; want 3, true", w, ok)
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	if got := filepath.Base(GetDefaultProfilePath()); got != DefaultProfileFileName {
		t.Errorf("default profile path ends with %q, want %q", got, DefaultProfileFileName)
	}
}
