package lune

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/juju/errors"
)

// ProbeTimeout bounds the "--version" probe. Tests override it.
var ProbeTimeout = 5 * time.Second

// Locator finds a usable runtime binary
type Locator struct {
	override   string
	installDir string
	goos       string
	lookPath   func(file string) (string, error)
	run        func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewLocator creates a locator. override is an explicit binary path from
// settings; installDir is where Installer puts the managed copy.
func NewLocator(override, installDir string) *Locator {
	return &Locator{
		override:   override,
		installDir: installDir,
		goos:       runtime.GOOS,
		lookPath:   exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// SetOverride changes the explicit binary path
func (l *Locator) SetOverride(path string) {
	l.override = path
}

// Find returns the runtime path: the override if set, then the managed
// install, then PATH.
func (l *Locator) Find() (string, error) {
	if l.override != "" {
		if isExecutableFile(l.override) {
			return l.override, nil
		}
		return "", errors.NotFoundf("Lune at configured path %s", l.override)
	}

	if l.installDir != "" {
		managed := filepath.Join(l.installDir, BinaryNameFor(l.goos))
		if isExecutableFile(managed) {
			return managed, nil
		}
	}

	if path, err := l.lookPath(BinaryName); err == nil {
		return path, nil
	}

	return "", errors.NotFoundf("Lune (install it from https://lune-org.github.io/docs)")
}

// ProbeVersion runs "<path> --version" with ProbeTimeout and returns the
// version number it prints.
func (l *Locator) ProbeVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	out, err := l.run(ctx, path, "--version")
	if ctx.Err() == context.DeadlineExceeded {
		return "", errors.Timeoutf("probing %s", path)
	}
	if err != nil {
		return "", errors.Annotatef(err, "probing %s", path)
	}

	version := ParseVersionOutput(string(out))
	if version == "" {
		return "", errors.NotValidf("version output %q", strings.TrimSpace(string(out)))
	}
	return version, nil
}

// ParseVersionOutput extracts "0.8.9" from output such as "lune 0.8.9"
func ParseVersionOutput(out string) string {
	line := strings.TrimSpace(out)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[len(fields)-1], "v")
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}
