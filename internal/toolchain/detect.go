// Package toolchain detects installed MATLAB and IAR Embedded Workbench
// toolchains by scanning conventional install directories.
package toolchain

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Install describes one detected toolchain installation.
type Install struct {
	Path    string
	Version string
}

// Detector scans the configured search roots. Roots are explicit inputs
// rather than process-wide defaults so detection stays testable.
type Detector struct {
	MATLABRoots []string
	IARRoots    []string
}

// DefaultDetector returns a detector over the conventional Windows install
// locations.
func DefaultDetector() *Detector {
	return &Detector{
		MATLABRoots: []string{
			`C:\Program Files\MATLAB`,
			`C:\Program Files (x86)\MATLAB`,
		},
		IARRoots: []string{
			`C:\Program Files\IAR Systems`,
		},
	}
}

// matlabVersionPattern matches MATLAB release directories such as R2023a.
var matlabVersionPattern = regexp.MustCompile(`^R(\d{4})([ab])$`)

// iarVersionPattern extracts the version from IAR install directory names
// such as "Embedded Workbench 9.30".
var iarVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// DetectMATLAB scans the MATLAB roots for release directories containing a
// MATLAB executable and returns the newest install, or nil when none is
// found. Unreadable directories are skipped.
func (d *Detector) DetectMATLAB() *Install {
	var best *Install
	bestYear, bestRelease := 0, 0

	for _, root := range d.MATLABRoots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			m := matlabVersionPattern.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			dir := filepath.Join(root, e.Name())
			exe := filepath.Join(dir, "bin", "win64", "MATLAB.exe")
			if _, err := os.Stat(exe); err != nil {
				continue
			}

			year, _ := strconv.Atoi(m[1])
			release := 0
			if m[2] == "b" {
				release = 1
			}
			if best == nil || year > bestYear || (year == bestYear && release > bestRelease) {
				best = &Install{Path: dir, Version: e.Name()}
				bestYear, bestRelease = year, release
			}
		}
	}
	return best
}

// DetectIAR walks the IAR roots looking for iarbuild.exe and returns the
// newest versioned install, or nil when none is found. The version comes
// from the install directory name (e.g. "Embedded Workbench 9.30"), not
// from the common\bin directory holding the executable.
func (d *Detector) DetectIAR() *Install {
	var best *Install
	bestMajor, bestMinor := -1, -1

	for _, root := range d.IARRoots {
		_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return fs.SkipDir
			}
			if entry.IsDir() || entry.Name() != "iarbuild.exe" {
				return nil
			}

			dir := filepath.Dir(path)
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				return nil
			}
			m := iarVersionPattern.FindStringSubmatch(rel)
			if m == nil {
				return nil
			}
			major, _ := strconv.Atoi(m[1])
			minor, _ := strconv.Atoi(m[2])
			if major > bestMajor || (major == bestMajor && minor > bestMinor) {
				best = &Install{Path: dir, Version: m[1] + "." + m[2]}
				bestMajor, bestMinor = major, minor
			}
			return nil
		})
	}
	return best
}

// DetectAll runs both detections.
func (d *Detector) DetectAll() (matlab, iar *Install) {
	return d.DetectMATLAB(), d.DetectIAR()
}
