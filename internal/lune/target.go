package lune

import (
	"fmt"
	"runtime"

	"github.com/juju/errors"
)

// Release asset operating systems
const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSMacOS   = "macos"
)

// Release asset architectures
const (
	ArchX8664   = "x86_64"
	ArchAArch64 = "aarch64"
)

// Binary and archive naming
const (
	BinaryName        = "lune"
	WindowsBinaryName = "lune.exe"
	AssetNameFormat   = "lune-%s-%s-%s.zip"
)

// Target is an (OS, architecture) pair as spelled in release asset names
type Target struct {
	OS   string
	Arch string
}

// String returns the target as "os-arch"
func (t Target) String() string {
	return t.OS + "-" + t.Arch
}

var supportedTargets = map[Target]bool{
	{OSWindows, ArchX8664}:   true,
	{OSWindows, ArchAArch64}: true,
	{OSLinux, ArchX8664}:     true,
	{OSLinux, ArchAArch64}:   true,
	{OSMacOS, ArchX8664}:     true,
	{OSMacOS, ArchAArch64}:   true,
}

// SupportedTargets returns the six targets with published release assets
func SupportedTargets() []Target {
	return []Target{
		{OSWindows, ArchX8664},
		{OSWindows, ArchAArch64},
		{OSLinux, ArchX8664},
		{OSLinux, ArchAArch64},
		{OSMacOS, ArchX8664},
		{OSMacOS, ArchAArch64},
	}
}

// TargetFor maps Go's GOOS/GOARCH onto a release target
func TargetFor(goos, goarch string) (Target, error) {
	var t Target

	switch goos {
	case "windows":
		t.OS = OSWindows
	case "linux":
		t.OS = OSLinux
	case "darwin":
		t.OS = OSMacOS
	default:
		return Target{}, errors.NotSupportedf("platform %s/%s", goos, goarch)
	}

	switch goarch {
	case "amd64":
		t.Arch = ArchX8664
	case "arm64":
		t.Arch = ArchAArch64
	default:
		return Target{}, errors.NotSupportedf("platform %s/%s", goos, goarch)
	}

	return t, nil
}

// HostTarget returns the target for the running process
func HostTarget() (Target, error) {
	return TargetFor(runtime.GOOS, runtime.GOARCH)
}

// AssetName returns the release asset name for target and version,
// e.g. lune-0.8.9-linux-x86_64.zip. Targets outside the supported six fail.
func AssetName(target Target, version string) (string, error) {
	if !supportedTargets[target] {
		return "", errors.NotSupportedf("no Lune release for %s %s", target.OS, target.Arch)
	}
	return fmt.Sprintf(AssetNameFormat, version, target.OS, target.Arch), nil
}

// BinaryNameFor returns the executable name on goos
func BinaryNameFor(goos string) string {
	if goos == "windows" {
		return WindowsBinaryName
	}
	return BinaryName
}
