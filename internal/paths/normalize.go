// Package paths resolves and inspects the filesystem paths named by
// project configurations. Resolution understands the Windows conventions
// the build hosts use (drive letters, UNC shares, %VAR% references,
// extended-length prefixes) while staying runnable on any platform.
package paths

import (
	"errors"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
)

// LongPathThreshold is the length beyond which Windows paths receive the
// extended-length prefix.
const LongPathThreshold = 200

// Kind is the filesystem object kind a parameter is expected to name.
type Kind int

const (
	KindAny Kind = iota
	KindDir
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "path"
	}
}

// Normalizer resolves raw path strings into absolute, cleaned paths.
// Environment lookup and the working directory are injected so resolution
// is deterministic under test.
type Normalizer struct {
	Getenv  func(string) string
	WorkDir string

	goos string
}

// NewNormalizer returns a normalizer bound to the running process.
func NewNormalizer() *Normalizer {
	wd, _ := os.Getwd()
	return &Normalizer{
		Getenv:  os.Getenv,
		WorkDir: wd,
		goos:    runtime.GOOS,
	}
}

// Normalize expands environment references (%VAR%, ${VAR}, ~), makes the
// path absolute against the working directory, and cleans dot segments.
// On Windows, paths longer than LongPathThreshold get the extended-length
// prefix so downstream tools do not hit MAX_PATH.
func (n *Normalizer) Normalize(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("path is empty")
	}

	p = expandPercentRefs(p, n.Getenv)
	p = os.Expand(p, n.Getenv)
	p = n.expandHome(p)

	if n.goos == "windows" {
		return n.normalizeWindows(p), nil
	}
	return n.normalizePosix(p), nil
}

// percentRefPattern matches Windows-style %VAR% environment references.
var percentRefPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// expandPercentRefs replaces %VAR% references. Unknown variables are kept
// verbatim so the eventual finding shows what the user wrote.
func expandPercentRefs(p string, getenv func(string) string) string {
	return percentRefPattern.ReplaceAllStringFunc(p, func(m string) string {
		if v := getenv(m[1 : len(m)-1]); v != "" {
			return v
		}
		return m
	})
}

func (n *Normalizer) expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home := n.Getenv("HOME")
	if home == "" {
		home = n.Getenv("USERPROFILE")
	}
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	return home + p[1:]
}

func (n *Normalizer) normalizePosix(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = strings.TrimRight(n.WorkDir, "/") + "/" + p
	}
	return path.Clean(p)
}

func (n *Normalizer) normalizeWindows(p string) string {
	p = strings.ReplaceAll(p, "/", `\`)

	// Extended-length paths bypass all further normalization; Windows
	// treats them literally.
	if strings.HasPrefix(p, `\\?\`) {
		return p
	}

	if !strings.HasPrefix(p, `\\`) && !hasDrivePrefix(p) {
		p = strings.TrimRight(n.WorkDir, `\`) + `\` + p
	}
	p = cleanWindows(p)

	if len(p) > LongPathThreshold {
		if strings.HasPrefix(p, `\\`) {
			return `\\?\UNC\` + p[2:]
		}
		return `\\?\` + p
	}
	return p
}

// cleanWindows removes empty, "." and ".." segments while preserving the
// drive or UNC root. filepath.Clean is not used because it follows the
// host separator rules, not Windows rules.
func cleanWindows(p string) string {
	unc := strings.HasPrefix(p, `\\`)
	var root string
	rest := p
	switch {
	case unc:
		rest = p[2:]
	case hasDrivePrefix(p):
		root = p[:2]
		rest = p[2:]
	}

	var out []string
	for _, seg := range strings.Split(rest, `\`) {
		switch seg {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	joined := strings.Join(out, `\`)

	switch {
	case unc:
		return `\\` + joined
	case root != "":
		return root + `\` + joined
	default:
		return joined
	}
}

func hasDrivePrefix(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		(('a' <= p[0] && p[0] <= 'z') || ('A' <= p[0] && p[0] <= 'Z'))
}

// Stat reports whether a path exists and whether it is a directory. A
// missing path is not an error; callers turn it into a finding.
func Stat(p string) (exists, isDir bool, err error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, info.IsDir(), nil
}
