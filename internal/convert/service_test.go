package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
)

type fakeRuntime struct {
	path string
	err  error
}

func (f fakeRuntime) Find() (string, error) {
	return f.path, f.err
}

// fakeExecutor records the invocation and replays canned output
type fakeExecutor struct {
	mu     sync.Mutex
	name   string
	args   []string
	lines  []string
	stderr string
	err    error
	before func(args []string)
	block  bool
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args []string, onLine func(string)) (string, error) {
	f.mu.Lock()
	f.name = name
	f.args = args
	f.mu.Unlock()

	if f.before != nil {
		f.before(args)
	}
	for _, line := range f.lines {
		onLine(line)
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.stderr, f.err
}

func (f *fakeExecutor) recorded() (string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.args
}

// fixture creates an input place file and a script under a temp dir
func fixture(t *testing.T) (input, script string, scripts *ScriptLocator) {
	t.Helper()
	dir := t.TempDir()

	input = filepath.Join(dir, "Game.rbxl")
	if err := os.WriteFile(input, []byte("<roblox/>"), 0644); err != nil {
		t.Fatal(err)
	}

	script = filepath.Join(dir, ScriptRelPath)
	if err := os.MkdirAll(filepath.Dir(script), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(script, []byte("-- convert"), 0644); err != nil {
		t.Fatal(err)
	}

	return input, script, NewScriptLocatorIn("", dir)
}

func newTestService(scripts *ScriptLocator, exec *fakeExecutor) *Service {
	s := NewService(fakeRuntime{path: "/opt/lune"}, scripts)
	s.exec = exec
	return s
}

func TestNewService(t *testing.T) {
	service := NewService(fakeRuntime{}, NewScriptLocatorIn(""))

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestBuildArgs(t *testing.T) {
	sel, err := model.SelectionFromNames([]string{"Workspace", "ServerStorage"})
	if err != nil {
		t.Fatal(err)
	}

	args, err := BuildArgs("/s/convert.luau", "/in/Game.rbxl", "/out", sel)
	if err != nil {
		t.Fatalf("BuildArgs returned error: %v", err)
	}

	expected := []string{"run", "/s/convert.luau", "/in/Game.rbxl", "/out", `["Workspace","ServerStorage"]`}
	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d", len(expected), len(args))
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestBuildArgs_EmptySelection(t *testing.T) {
	args, err := BuildArgs("s", "i", "o", model.NewServiceSelection(false))
	if err != nil {
		t.Fatal(err)
	}
	if args[4] != "[]" {
		t.Errorf("Expected [] for empty selection, got %s", args[4])
	}
}

func TestConvert_Success(t *testing.T) {
	input, script, scripts := fixture(t)
	out := filepath.Join(t.TempDir(), "Game_rojo")

	exec := &fakeExecutor{
		lines: []string{"Loaded place", "Wrote 12 files"},
		before: func(args []string) {
			project := `{"name":"Game","tree":{"$className":"DataModel","Workspace":{"$path":"src/Workspace"}}}`
			os.WriteFile(filepath.Join(args[3], model.ProjectFileName), []byte(project), 0644)
		},
	}
	service := newTestService(scripts, exec)

	var logged []string
	service.SetLogCallback(func(taskID, line string) {
		logged = append(logged, line)
	})

	task, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: out,
		Services:  model.NewServiceSelection(true),
	})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	if task.Status != model.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", task.Status)
	}
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		t.Errorf("Expected output directory to be created")
	}

	name, args := exec.recorded()
	if name != "/opt/lune" {
		t.Errorf("Expected runtime /opt/lune, got %s", name)
	}
	wantScript, _ := filepath.Abs(script)
	if args[0] != "run" || args[1] != wantScript || args[2] != input || args[3] != out {
		t.Errorf("Unexpected args: %v", args)
	}

	if !strings.Contains(strings.Join(logged, "\n"), "Wrote 12 files") {
		t.Errorf("Expected script output to be forwarded, got %v", logged)
	}
	if task.Summary == nil || task.Summary.Name != "Game" {
		t.Errorf("Expected project summary for Game, got %v", task.Summary)
	}
}

func TestConvert_NoProjectFileStillCompletes(t *testing.T) {
	input, _, scripts := fixture(t)
	service := newTestService(scripts, &fakeExecutor{})

	task, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if task.Status != model.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", task.Status)
	}
	if task.Summary != nil {
		t.Errorf("Expected no summary, got %v", task.Summary)
	}
}

func TestConvert_ScriptFailure(t *testing.T) {
	input, _, scripts := fixture(t)
	exec := &fakeExecutor{
		stderr: "error: bad place file\n",
		err:    errors.New("exit status 1"),
	}
	service := newTestService(scripts, exec)

	task, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if err == nil {
		t.Fatal("Expected error for failing script, got nil")
	}
	if task.Status != model.TaskStatusError {
		t.Errorf("Expected status Error, got %s", task.Status)
	}
	if task.LastError != "Lune conversion failed: error: bad place file" {
		t.Errorf("Unexpected error message: %q", task.LastError)
	}
}

func TestConvert_RuntimeMissing(t *testing.T) {
	input, _, scripts := fixture(t)
	service := NewService(fakeRuntime{err: errors.NotFoundf("Lune")}, scripts)
	exec := &fakeExecutor{}
	service.exec = exec

	task, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if !errors.Is(err, errors.NotFound) {
		t.Fatalf("Expected NotFound error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Lune is not installed") {
		t.Errorf("Expected 'Lune is not installed' in error, got %v", err)
	}
	if task.Status != model.TaskStatusError {
		t.Errorf("Expected status Error, got %s", task.Status)
	}
	if name, _ := exec.recorded(); name != "" {
		t.Errorf("Runtime must not be started, got %s", name)
	}
}

func TestConvert_ScriptMissing(t *testing.T) {
	input, _, _ := fixture(t)
	service := newTestService(NewScriptLocatorIn("", t.TempDir()), &fakeExecutor{})

	_, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound error, got %v", err)
	}
}

func TestConvert_InvalidRequests(t *testing.T) {
	input, _, scripts := fixture(t)
	service := newTestService(scripts, &fakeExecutor{})

	tests := []struct {
		name string
		req  Request
	}{
		{"empty input", Request{OutputDir: "/out"}},
		{"missing input", Request{InputPath: "/nonexistent/Game.rbxl", OutputDir: "/out"}},
		{"wrong extension", Request{InputPath: "/tmp/Game.txt", OutputDir: "/out"}},
		{"empty output", Request{InputPath: input, OutputDir: "  "}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			task, err := service.Convert(context.Background(), test.req)
			if err == nil {
				t.Error("Expected error, got nil")
			}
			if task != nil {
				t.Errorf("Expected no task, got %v", task)
			}
		})
	}
}

func TestStartConversion_Duplicate(t *testing.T) {
	input, _, scripts := fixture(t)
	exec := &fakeExecutor{block: true}
	service := newTestService(scripts, exec)

	req := Request{InputPath: input, OutputDir: t.TempDir(), Services: model.NewServiceSelection(true)}
	task, err := service.StartConversion(req)
	if err != nil {
		t.Fatalf("StartConversion returned error: %v", err)
	}

	if _, err := service.StartConversion(req); err == nil {
		t.Error("Expected error for duplicate conversion, got nil")
	}

	if err := service.StopConversion(task.ID); err != nil {
		t.Fatalf("StopConversion returned error: %v", err)
	}
	waitFinished(t, service, task.ID)
}

// waitFinished polls until the background conversion has ended
func waitFinished(t *testing.T, service *Service, taskID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		service.tasksMutex.RLock()
		finished := service.tasks[taskID].Status.IsFinished()
		_, running := service.cancels[taskID]
		service.tasksMutex.RUnlock()
		if finished && !running {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task %s did not finish", taskID)
}

func TestStopConversion(t *testing.T) {
	input, _, scripts := fixture(t)
	exec := &fakeExecutor{block: true}
	service := newTestService(scripts, exec)

	done := make(chan *model.ConversionTask, 1)
	service.SetUpdateCallback(func(task *model.ConversionTask) {
		if task.Status == model.TaskStatusStopped {
			done <- task
		}
	})

	task, err := service.StartConversion(Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if err != nil {
		t.Fatalf("StartConversion returned error: %v", err)
	}

	// wait until the fake runtime has been invoked
	deadline := time.Now().Add(2 * time.Second)
	for {
		if name, _ := exec.recorded(); name != "" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("runtime was never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := service.StopConversion(task.ID); err != nil {
		t.Fatalf("StopConversion returned error: %v", err)
	}

	select {
	case stopped := <-done:
		if stopped.ID != task.ID {
			t.Errorf("Expected task %s, got %s", task.ID, stopped.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task did not stop")
	}
	waitFinished(t, service, task.ID)
}

func TestStopConversion_CallbackCanReadTask(t *testing.T) {
	input, _, scripts := fixture(t)
	exec := &fakeExecutor{block: true}
	service := newTestService(scripts, exec)

	var seen sync.Map
	service.SetUpdateCallback(func(task *model.ConversionTask) {
		if _, ok := service.GetTask(task.ID); ok {
			seen.Store(task.ID, true)
		}
	})

	task, err := service.StartConversion(Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if err != nil {
		t.Fatalf("StartConversion returned error: %v", err)
	}

	stopped := make(chan error, 1)
	go func() { stopped <- service.StopConversion(task.ID) }()

	select {
	case err := <-stopped:
		if err != nil {
			t.Fatalf("StopConversion returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("StopConversion blocked on the update callback")
	}
	waitFinished(t, service, task.ID)

	if _, ok := seen.Load(task.ID); !ok {
		t.Error("Expected the callback to read the task")
	}
}

func TestStopConversion_NotFound(t *testing.T) {
	service := NewService(fakeRuntime{}, NewScriptLocatorIn(""))

	err := service.StopConversion("nonexistent")
	if !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound error, got %v", err)
	}
}

func TestGetTask(t *testing.T) {
	input, _, scripts := fixture(t)
	service := newTestService(scripts, &fakeExecutor{})

	task, err := service.Convert(context.Background(), Request{
		InputPath: input,
		OutputDir: t.TempDir(),
		Services:  model.NewServiceSelection(true),
	})
	if err != nil {
		t.Fatal(err)
	}

	got, ok := service.GetTask(task.ID)
	if !ok || got != task {
		t.Errorf("GetTask(%s) did not return the task", task.ID)
	}
	if _, ok := service.GetTask("missing"); ok {
		t.Error("Expected missing task lookup to fail")
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected prefix %s, got %s", TaskIDPrefix, id1)
	}
	if id1 == id2 {
		t.Error("Expected unique IDs")
	}
}
