package model

// TaskStatus is a step in the conversion lifecycle:
// Pending -> Starting -> Running -> Completed | Error, with Stopping -> Stopped
// reachable from any unfinished step.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusStarting  TaskStatus = "Starting" // locating runtime and script
	TaskStatusRunning   TaskStatus = "Running"  // subprocess started
	TaskStatusStopping  TaskStatus = "Stopping"
	TaskStatusStopped   TaskStatus = "Stopped"
	TaskStatusCompleted TaskStatus = "Completed" // exit code 0
	TaskStatusError     TaskStatus = "Error"
)

var statusTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:  {TaskStatusStarting, TaskStatusStopping, TaskStatusError},
	TaskStatusStarting: {TaskStatusRunning, TaskStatusStopping, TaskStatusError},
	TaskStatusRunning:  {TaskStatusCompleted, TaskStatusStopping, TaskStatusError},
	TaskStatusStopping: {TaskStatusStopped, TaskStatusError},
}

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether a conversion is underway, including one that was
// created but has not started yet
func (ts TaskStatus) IsActive() bool {
	return !ts.IsFinished()
}

// IsFinished returns true for Completed, Stopped and Error
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// CanTransition reports whether a task may move from ts to next
func (ts TaskStatus) CanTransition(next TaskStatus) bool {
	for _, allowed := range statusTransitions[ts] {
		if allowed == next {
			return true
		}
	}
	return false
}
