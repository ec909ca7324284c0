package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestIsRobloxFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/places/Game.rbxl", true},
		{"/models/Sword.RBXM", true},
		{"Lobby.rbxlx", true},
		{"Tool.rbxmx", true},
		{"notes.txt", false},
		{"rbxl", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsRobloxFile(tt.path); got != tt.expected {
				t.Errorf("IsRobloxFile(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDefaultOutputDir(t *testing.T) {
	input := filepath.Join("home", "dev", "Game.rbxl")
	expected := filepath.Join("home", "dev", "Game_rojo")

	if got := DefaultOutputDir(input); got != expected {
		t.Errorf("DefaultOutputDir(%s) = %s, expected %s", input, got, expected)
	}
}

func TestValidateInputFile(t *testing.T) {
	tempDir := t.TempDir()

	place := filepath.Join(tempDir, "Game.rbxl")
	if err := os.WriteFile(place, []byte("<roblox!"), 0644); err != nil {
		t.Fatalf("Failed to write place: %v", err)
	}
	if err := ValidateInputFile(place); err != nil {
		t.Errorf("Expected valid input, got %v", err)
	}

	if err := ValidateInputFile(""); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid for empty path, got %v", err)
	}

	text := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(text, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write text file: %v", err)
	}
	if err := ValidateInputFile(text); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid for wrong extension, got %v", err)
	}

	missing := filepath.Join(tempDir, "Missing.rbxm")
	if err := ValidateInputFile(missing); !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound for missing file, got %v", err)
	}

	dirLike := filepath.Join(tempDir, "Folder.rbxm")
	if err := os.Mkdir(dirLike, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := ValidateInputFile(dirLike); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid for directory, got %v", err)
	}
}

func TestGetRuntimeInstallDir(t *testing.T) {
	dir, err := GetRuntimeInstallDir()
	if err != nil {
		t.Skipf("no user config directory on this host: %v", err)
	}

	if filepath.Base(dir) != RuntimeDirName {
		t.Errorf("Expected install dir to end with %q, got %s", RuntimeDirName, dir)
	}
	if filepath.Base(filepath.Dir(dir)) != AppDirName {
		t.Errorf("Expected install dir under %q, got %s", AppDirName, dir)
	}
}

func TestGetExecutableDir(t *testing.T) {
	dir, err := GetExecutableDir()
	if err != nil {
		t.Fatalf("Failed to get executable dir: %v", err)
	}
	if dir == "" {
		t.Fatal("Executable dir is empty")
	}
}

func TestGetHomeDocumentsDir(t *testing.T) {
	dir, err := GetHomeDocumentsDir()
	if err != nil {
		t.Fatalf("Failed to get documents directory: %v", err)
	}
	if dir == "" {
		t.Fatal("Documents directory is empty")
	}
}

func TestOpenFileInManager_NonExistentPath(t *testing.T) {
	tempDir := t.TempDir()
	nonExistent := filepath.Join(tempDir, "Game_rojo")

	err := OpenFileInManager(nonExistent)
	if err == nil {
		t.Fatal("Expected error for non-existent path, got nil")
	}

	if !strings.Contains(err.Error(), "path does not exist:") {
		t.Errorf("Error message should contain 'path does not exist:', got: %v", err)
	}
}

func TestOpenFileInManager_EmptyPath(t *testing.T) {
	if err := OpenFileInManager(""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestOpenFileInManager_WithExistingDir(t *testing.T) {
	tempDir := t.TempDir()

	// On CI or headless systems, this might fail, which is expected
	if err := OpenFileInManager(tempDir); err != nil {
		t.Logf("OpenFileInManager failed (expected on headless systems): %v", err)
	}
}
