package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ConversionTask represents a single place/model to Rojo project conversion
type ConversionTask struct {
	ID         string
	InputPath  string
	OutputDir  string
	Services   []string
	Status     TaskStatus
	Log        []string  // stdout lines echoed by the conversion script
	LastError  string    // last error message if any
	StartedAt  time.Time // when conversion started
	FinishedAt time.Time // when conversion finished
	Summary    *ProjectSummary
}

// AppendLog records one line of script output
func (ct *ConversionTask) AppendLog(line string) {
	ct.Log = append(ct.Log, line)
}

// DisplayName returns the input file name, or the raw path if it has none
func (ct *ConversionTask) DisplayName() string {
	if ct.InputPath == "" {
		return ""
	}
	// support both / and \ separators
	parts := strings.FieldsFunc(ct.InputPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ct.InputPath
	}
	return parts[len(parts)-1]
}

// Duration returns how long the task ran, or has been running so far
func (ct *ConversionTask) Duration() time.Duration {
	if ct.StartedAt.IsZero() {
		return 0
	}
	if ct.FinishedAt.IsZero() {
		return time.Since(ct.StartedAt)
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}

// GetDurationString returns the duration formatted as mm:ss or hh:mm:ss
func (ct *ConversionTask) GetDurationString() string {
	secs := int(ct.Duration().Seconds())
	if secs <= 0 {
		return "—"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ProjectSummary describes the Rojo project written by a conversion
type ProjectSummary struct {
	Name      string
	Services  []string
	Instances int
}

// String renders the summary as a single log line
func (ps *ProjectSummary) String() string {
	if ps == nil {
		return ""
	}
	return fmt.Sprintf("%s: %d instances in %s", ps.Name, ps.Instances, strings.Join(ps.Services, ", "))
}

// DefaultOutputDirName returns "<stem>_rojo" for an input file path
func DefaultOutputDirName(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_rojo"
}
