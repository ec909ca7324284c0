package model

import (
	"testing"
	"time"
)

func TestConversionTask_GetDurationString(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "—"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
	}

	for _, test := range tests {
		task := &ConversionTask{StartedAt: start, FinishedAt: start.Add(test.elapsed)}
		result := task.GetDurationString()
		if result != test.expected {
			t.Errorf("GetDurationString() with elapsed=%s = %s, expected %s", test.elapsed, result, test.expected)
		}
	}
}

func TestConversionTask_DurationNotStarted(t *testing.T) {
	task := &ConversionTask{}
	if task.Duration() != 0 {
		t.Errorf("Expected zero duration for unstarted task, got %s", task.Duration())
	}
}

func TestConversionTask_DisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/home/dev/places/Game.rbxl", "Game.rbxl"},
		{`C:\Users\dev\Model.rbxm`, "Model.rbxm"},
		{"Place.rbxlx", "Place.rbxlx"},
		{"", ""},
	}

	for _, test := range tests {
		task := &ConversionTask{InputPath: test.input}
		result := task.DisplayName()
		if result != test.expected {
			t.Errorf("DisplayName() with input='%s' = '%s', expected '%s'", test.input, result, test.expected)
		}
	}
}

func TestConversionTask_AppendLog(t *testing.T) {
	task := &ConversionTask{}
	task.AppendLog("Reading place")
	task.AppendLog("Writing src/ServerScriptService")

	if len(task.Log) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(task.Log))
	}
	if task.Log[1] != "Writing src/ServerScriptService" {
		t.Errorf("Unexpected second log line: %s", task.Log[1])
	}
}

func TestDefaultOutputDirName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/places/Game.rbxl", "Game_rojo"},
		{"/models/Sword.model.rbxm", "Sword.model_rojo"},
		{"Lobby.rbxlx", "Lobby_rojo"},
		{"/no/ext/Place", "Place_rojo"},
	}

	for _, test := range tests {
		result := DefaultOutputDirName(test.input)
		if result != test.expected {
			t.Errorf("DefaultOutputDirName(%s) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestProjectSummary_String(t *testing.T) {
	var nilSummary *ProjectSummary
	if nilSummary.String() != "" {
		t.Error("nil summary should render empty")
	}

	s := &ProjectSummary{Name: "Game", Services: []string{"ServerStorage", "Workspace"}, Instances: 4}
	expected := "Game: 4 instances in ServerStorage, Workspace"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}
