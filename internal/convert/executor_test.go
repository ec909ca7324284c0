package convert

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// writeScript writes an executable shell script standing in for the runtime
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the runtime")
	}
	path := filepath.Join(t.TempDir(), "lune")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOSExecutor_FailingProcess(t *testing.T) {
	bin := writeScript(t, "echo one\necho '  two  '\necho bad >&2\nexit 3\n")

	var lines []string
	stderr, err := (&osExecutor{}).Run(context.Background(), bin, nil, func(line string) {
		lines = append(lines, line)
	})

	if len(lines) != 2 || lines[0] != "one" || lines[1] != "  two  " {
		t.Errorf("Expected stdout lines verbatim, got %q", lines)
	}
	if stderr != "bad\n" {
		t.Errorf("Expected stderr %q, got %q", "bad\n", stderr)
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Errorf("Expected exit code 3, got %d", exitErr.ExitCode())
	}
}

func TestOSExecutor_StderrDoesNotFailSuccessfulExit(t *testing.T) {
	bin := writeScript(t, "echo \"$@\"\necho 'warning: slow' >&2\nexit 0\n")

	var lines []string
	stderr, err := (&osExecutor{}).Run(context.Background(), bin, []string{"run", "a b"}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Expected success on exit 0, got %v", err)
	}
	if stderr != "warning: slow\n" {
		t.Errorf("Unexpected stderr %q", stderr)
	}
	if len(lines) != 1 || lines[0] != "run a b" {
		t.Errorf("Expected args echoed, got %q", lines)
	}
}

func TestConvert_RealProcessFailure(t *testing.T) {
	bin := writeScript(t, "echo converting\necho 'error: unsupported file' >&2\nexit 1\n")
	input, _, scripts := fixture(t)

	service := NewService(fakeRuntime{path: bin}, scripts)
	var logged []string
	service.SetLogCallback(func(taskID, line string) {
		logged = append(logged, line)
	})

	task, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}
	if task.LastError != "Lune conversion failed: error: unsupported file" {
		t.Errorf("Unexpected error message: %q", task.LastError)
	}
	if len(logged) == 0 || logged[len(logged)-1] != "converting" {
		t.Errorf("Expected script stdout in the log, got %q", logged)
	}
}
