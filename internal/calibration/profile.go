package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

const (
	// CurrentProfileVersion is bumped when the profile layout changes.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is the profile file stored in the home directory.
	DefaultProfileFileName = ".sumbench_calibration.json"
	// DefaultProfileMaxAge is how long a stored profile is trusted.
	DefaultProfileMaxAge = 30 * 24 * time.Hour
)

// CalibrationProfile stores the outcome of a calibration for the current
// machine.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	OptimalWorkers  int    `json:"optimal_workers"`
	CalibrationSize int    `json:"calibration_size"`
	CalibrationTime string `json:"calibration_time"`
}

// NewProfile returns a profile stamped with the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// IsValid reports whether the profile was produced on compatible hardware.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.OptimalWorkers > 0
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String implements fmt.Stringer.
func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile (v%d)\n", p.ProfileVersion)
	fmt.Fprintf(&b, "  Machine:  %s/%s, %d CPUs, %d-bit, %s\n", p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.GoVersion)
	fmt.Fprintf(&b, "  Workers:  %d\n", p.OptimalWorkers)
	fmt.Fprintf(&b, "  Sample:   %d elements in %s\n", p.CalibrationSize, p.CalibrationTime)
	fmt.Fprintf(&b, "  Recorded: %s\n", p.CalibratedAt.Format(time.RFC3339))
	return b.String()
}

// SaveProfile writes the profile as indented JSON.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration profile")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.WrapError(err, "writing calibration profile")
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading calibration profile")
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.WrapError(err, "decoding calibration profile")
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one.
// The boolean reports whether a profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile location in the user's home
// directory, or in the working directory when home is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// CachedWorkers returns the worker count from a valid, fresh profile at path.
func CachedWorkers(path string) (int, bool) {
	p, loaded := LoadOrCreateProfile(path)
	if !loaded || !p.IsValid() || p.IsStale(DefaultProfileMaxAge) {
		return 0, false
	}
	return p.OptimalWorkers, true
}
