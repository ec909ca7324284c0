package convert

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
	"github.com/rblx2rojo/rblx2rojo/internal/platform"
	"github.com/rblx2rojo/rblx2rojo/internal/rojo"
)

// Subprocess constants
const (
	RunSubcommand = "run"
	TaskIDPrefix  = "convert-"

	// maxLineSize bounds a single stdout line from the script
	maxLineSize = 1024 * 1024
)

// Request describes one conversion
type Request struct {
	InputPath string
	OutputDir string
	Services  model.ServiceSelection
}

// Service runs conversions through the external runtime
type Service struct {
	runtime RuntimeFinder
	scripts *ScriptLocator
	exec    executor

	tasks      map[string]*model.ConversionTask
	cancels    map[string]context.CancelFunc
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConversionTask) // callback for UI updates
	onLog      func(taskID, line string)
}

// NewService creates a new conversion service
func NewService(runtime RuntimeFinder, scripts *ScriptLocator) *Service {
	return &Service{
		runtime: runtime,
		scripts: scripts,
		exec:    &osExecutor{},
		tasks:   make(map[string]*model.ConversionTask),
		cancels: make(map[string]context.CancelFunc),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// SetLogCallback sets the callback receiving each script output line
func (s *Service) SetLogCallback(callback func(taskID, line string)) {
	s.onLog = callback
}

// BuildArgs returns the runtime arguments: run, script, input, output and the
// JSON service list, in that order.
func BuildArgs(script, inputPath, outputDir string, services model.ServiceSelection) ([]string, error) {
	encoded, err := services.MarshalArgument()
	if err != nil {
		return nil, err
	}
	return []string{RunSubcommand, script, inputPath, outputDir, encoded}, nil
}

// StartConversion validates req and runs it in the background
func (s *Service) StartConversion(req Request) (*model.ConversionTask, error) {
	task, ctx, err := s.register(req)
	if err != nil {
		return nil, err
	}

	go s.run(ctx, task, req)

	return task, nil
}

// Convert runs req and blocks until the subprocess exits. The returned error
// is nil only when the task completed.
func (s *Service) Convert(ctx context.Context, req Request) (*model.ConversionTask, error) {
	task, taskCtx, err := s.register(req)
	if err != nil {
		return nil, err
	}

	stop := context.AfterFunc(ctx, func() { s.StopConversion(task.ID) })
	defer stop()

	if err := s.run(taskCtx, task, req); err != nil {
		return task, err
	}
	return task, nil
}

// register validates req and records a pending task
func (s *Service) register(req Request) (*model.ConversionTask, context.Context, error) {
	if err := platform.ValidateInputFile(req.InputPath); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return nil, nil, errors.NotValidf("empty output directory")
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.InputPath == req.InputPath && task.Status.IsActive() {
			return nil, nil, fmt.Errorf("conversion already in progress for file: %s", req.InputPath)
		}
	}

	task := &model.ConversionTask{
		ID:        generateTaskID(),
		InputPath: req.InputPath,
		OutputDir: req.OutputDir,
		Services:  req.Services.Names(),
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.tasks[task.ID] = task
	s.cancels[task.ID] = cancel

	return task, ctx, nil
}

// StopConversion stops a running conversion task
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[taskID]
	if !exists {
		s.tasksMutex.Unlock()
		return errors.NotFoundf("conversion task %s", taskID)
	}

	if task.Status.IsFinished() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	if cancel, ok := s.cancels[taskID]; ok {
		cancel()
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return nil
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// run performs the conversion and records the outcome on task
func (s *Service) run(ctx context.Context, task *model.ConversionTask, req Request) error {
	defer s.release(task.ID)

	s.setStatus(task, model.TaskStatusStarting)

	runtimePath, err := s.runtime.Find()
	if err != nil {
		return s.setTaskError(task, errors.Annotate(err, "Lune is not installed"))
	}

	script, err := s.scripts.Find()
	if err != nil {
		return s.setTaskError(task, err)
	}

	if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
		return s.setTaskError(task, errors.Annotatef(err, "creating output directory %s", req.OutputDir))
	}

	args, err := BuildArgs(script, req.InputPath, req.OutputDir, req.Services)
	if err != nil {
		return s.setTaskError(task, err)
	}

	s.logLine(task, fmt.Sprintf("Starting conversion of %s...", task.DisplayName()))
	s.logLine(task, "Running Lune conversion script...")
	log.Printf("convert: %s %s", runtimePath, strings.Join(args, " "))

	s.setStatus(task, model.TaskStatusRunning)

	stderr, runErr := s.exec.Run(ctx, runtimePath, args, func(line string) {
		s.logLine(task, line)
	})

	if ctx.Err() == context.Canceled {
		s.tasksMutex.Lock()
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
		return errors.New("conversion stopped")
	}

	if runErr != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = runErr.Error()
		}
		return s.setTaskError(task, fmt.Errorf("Lune conversion failed: %s", msg))
	}

	summary, err := rojo.Summarize(req.OutputDir)
	if err != nil && !errors.Is(err, errors.NotFound) {
		log.Printf("convert: cannot summarize %s: %v", req.OutputDir, err)
	}

	s.tasksMutex.Lock()
	task.Summary = summary
	task.Status = model.TaskStatusCompleted
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return nil
}

// release drops the cancel func of a finished task
func (s *Service) release(taskID string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if cancel, ok := s.cancels[taskID]; ok {
		cancel()
		delete(s.cancels, taskID)
	}
}

// logLine appends a line to the task and forwards it to the log callback
func (s *Service) logLine(task *model.ConversionTask, line string) {
	s.tasksMutex.Lock()
	task.AppendLog(line)
	s.tasksMutex.Unlock()

	if s.onLog != nil {
		s.onLog(task.ID, line)
	}
}

// setStatus moves task to status when the lifecycle allows it
func (s *Service) setStatus(task *model.ConversionTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	if !task.Status.CanTransition(status) {
		s.tasksMutex.Unlock()
		return
	}
	task.Status = status
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// setTaskError sets an error state for a task and returns err
func (s *Service) setTaskError(task *model.ConversionTask, err error) error {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Printf("convert: task %s failed: %v", task.ID, err)
	s.notifyUpdate(task)
	return err
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 so IDs sort by
// creation time
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}

// osExecutor is the production executor backed by os/exec
type osExecutor struct{}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, onLine func(string)) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", errors.Annotate(err, "creating stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return "", errors.Annotatef(err, "starting %s", name)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		onLine(scanner.Text())
	}

	waitErr := cmd.Wait()
	if waitErr == nil && scanner.Err() != nil {
		waitErr = errors.Annotate(scanner.Err(), "reading script output")
	}
	return stderr.String(), waitErr
}
