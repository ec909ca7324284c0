package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// Application directory names
const (
	AppDirName     = "rblx2rojo"
	RuntimeDirName = "lune"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Roblox place and model extensions, binary first then XML
var (
	RobloxExtensions = []string{".rbxl", ".rbxm", ".rbxlx", ".rbxmx"}
)

// IsRobloxFile reports whether path has a place or model extension
func IsRobloxFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range RobloxExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// ValidateInputFile checks that path is an existing Roblox file
func ValidateInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NotValidf("empty input path")
	}
	if !IsRobloxFile(path) {
		return errors.NotValidf("input %s (expected one of %s)", filepath.Base(path), strings.Join(RobloxExtensions, ", "))
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NotFoundf("input file %s", path)
	}
	if err != nil {
		return errors.Annotatef(err, "checking input file %s", path)
	}
	if info.IsDir() {
		return errors.NotValidf("input %s is a directory", path)
	}
	return nil
}

// DefaultOutputDir returns "<parent>/<stem>_rojo" for an input file
func DefaultOutputDir(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), model.DefaultOutputDirName(inputPath))
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetAppDataDir returns the per-user directory owned by the application
func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", fmt.Errorf("failed to get user config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, AppDirName), nil
}

// GetRuntimeInstallDir returns the directory the managed Lune binary lives in
func GetRuntimeInstallDir() (string, error) {
	appDir, err := GetAppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, RuntimeDirName), nil
}

// GetExecutableDir returns the directory of the running binary
func GetExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// GetHomeDocumentsDir returns the directory file dialogs start in
func GetHomeDocumentsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	documents := filepath.Join(homeDir, "Documents")
	if info, err := os.Stat(documents); err == nil && info.IsDir() {
		return documents, nil
	}
	return homeDir, nil
}

// OpenFileInManager opens the path in the system file manager and highlights it
func OpenFileInManager(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("path does not exist: %v", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openInManagerLinux opens a directory, or the directory containing a file.
// File selection is not standardized on Linux.
func openInManagerLinux(path string) error {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
