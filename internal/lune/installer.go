package lune

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/juju/errors"
	"github.com/tharvik/flock"

	"github.com/rblx2rojo/rblx2rojo/internal/download"
	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

// Installer file names
const (
	ArchiveFileName = "lune.zip"
	LockFileName    = ".install.lock"
)

// Installer downloads the latest runtime release into a directory
type Installer struct {
	installDir string
	releases   ReleaseSource
	fetcher    download.Fetcher

	goos   string
	goarch string
}

// NewInstaller creates an installer writing into installDir
func NewInstaller(installDir string, releases ReleaseSource, fetcher download.Fetcher) *Installer {
	return &Installer{
		installDir: installDir,
		releases:   releases,
		fetcher:    fetcher,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
	}
}

// InstallDir returns the directory the runtime is installed into
func (in *Installer) InstallDir() string {
	return in.installDir
}

// BinaryPath returns where the installed runtime binary lives
func (in *Installer) BinaryPath() string {
	return filepath.Join(in.installDir, BinaryNameFor(in.goos))
}

// IsInstalled reports whether the managed binary exists
func (in *Installer) IsInstalled() bool {
	info, err := os.Stat(in.BinaryPath())
	return err == nil && info.Mode().IsRegular()
}

// Install fetches the latest release for the host, extracts it and marks the
// binary executable. progress receives human readable status lines and may be
// nil. The installed binary path is returned.
func (in *Installer) Install(ctx context.Context, progress func(string)) (string, error) {
	report := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("lune install: %s", msg)
		if progress != nil {
			progress(msg)
		}
	}

	target, err := TargetFor(in.goos, in.goarch)
	if err != nil {
		return "", err
	}

	report("Checking latest Lune release for %s...", target)
	release, err := in.releases.Latest(ctx)
	if err != nil {
		return "", errors.Trace(err)
	}
	version := release.Version()

	asset, err := ResolveAsset(release, target)
	if err != nil {
		return "", err
	}

	if err := platform.CreateDirectoryIfNotExists(in.installDir); err != nil {
		return "", errors.Annotatef(err, "creating %s", in.installDir)
	}

	lock := flock.New(filepath.Join(in.installDir, LockFileName))
	defer lock.Close()

	locked, err := lock.TryLock()
	if err != nil {
		return "", errors.Annotate(err, "locking install directory")
	}
	if !locked {
		return "", errors.AlreadyExistsf("a Lune installation in progress in %s", in.installDir)
	}

	report("Downloading Lune v%s...", version)
	archive := filepath.Join(in.installDir, ArchiveFileName)
	_, err = in.fetcher.ToFile(ctx, asset.DownloadURL, archive, func(p download.Progress) {
		if pct := p.Percent(); pct >= 0 {
			report("Downloaded %d%% (%s)", pct, p.Speed())
		}
	})
	if err != nil {
		return "", errors.Trace(err)
	}
	defer func() {
		if err := os.Remove(archive); err != nil && !os.IsNotExist(err) {
			log.Printf("lune install: cannot remove %s: %v", archive, err)
		}
	}()

	report("Extracting...")
	if _, err := ExtractZip(archive, in.installDir); err != nil {
		return "", errors.Trace(err)
	}

	binary := in.BinaryPath()
	info, err := os.Stat(binary)
	if err != nil {
		return "", errors.NotFoundf("%s in %s", filepath.Base(binary), asset.Name)
	}

	if in.goos != "windows" {
		if err := os.Chmod(binary, info.Mode()|0111); err != nil {
			return "", errors.Annotatef(err, "marking %s executable", binary)
		}
	}

	report("✓ Lune v%s installed successfully!", version)
	return binary, nil
}
