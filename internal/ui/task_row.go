package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
)

// TaskRow shows the state of the current conversion: input name, status,
// elapsed time and the project summary once it is done
type TaskRow struct {
	widget.BaseWidget

	task         *model.ConversionTask
	localization *Localization

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	durationLabel *widget.Label
	summaryLabel  *widget.Label

	stopBtn *widget.Button
	openBtn *widget.Button

	onStop   func(taskID string)
	onReveal func(dir string)
}

// NewTaskRow creates an empty task row
func NewTaskRow(localization *Localization) *TaskRow {
	tr := &TaskRow{localization: localization}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(onStop func(taskID string), onReveal func(dir string)) {
	tr.onStop = onStop
	tr.onReveal = onReveal
}

// UpdateTask shows task; nil clears the row
func (tr *TaskRow) UpdateTask(task *model.ConversionTask) {
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// RefreshTexts re-reads localized button labels
func (tr *TaskRow) RefreshTexts() {
	tr.stopBtn.SetText(tr.localization.GetText(KeyStop))
	tr.openBtn.SetText(IconFolder)
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.durationLabel = widget.NewLabel("")
	tr.durationLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.summaryLabel = widget.NewLabel("")
	tr.summaryLabel.Truncation = fyne.TextTruncateEllipsis

	tr.stopBtn = widget.NewButton(tr.localization.GetText(KeyStop), func() {
		if tr.task == nil || tr.onStop == nil {
			return
		}
		log.Printf("Stop clicked for task %s", tr.task.ID)
		tr.onStop(tr.task.ID)
	})
	tr.stopBtn.Importance = widget.MediumImportance

	// open -> reveal the output folder in the file manager
	tr.openBtn = widget.NewButton(IconFolder, func() {
		if tr.task == nil || tr.onReveal == nil {
			return
		}
		tr.onReveal(tr.task.OutputDir)
	})
	tr.openBtn.Importance = widget.LowImportance
}

func (tr *TaskRow) updateFromTask() {
	task := tr.task
	if task == nil {
		tr.titleLabel.SetText("")
		tr.statusLabel.SetText("")
		tr.durationLabel.SetText("")
		tr.summaryLabel.SetText("")
		tr.stopBtn.Hide()
		tr.openBtn.Hide()
		return
	}

	tr.titleLabel.SetText(task.DisplayName())
	tr.statusLabel.SetText(task.Status.String())
	tr.durationLabel.SetText(task.GetDurationString())

	switch {
	case task.Status == model.TaskStatusError:
		tr.summaryLabel.SetText(ErrorLinePrefix + task.LastError)
	case task.Summary != nil:
		tr.summaryLabel.SetText(task.Summary.String())
	default:
		tr.summaryLabel.SetText(task.OutputDir)
	}

	if task.Status.IsActive() {
		tr.stopBtn.Show()
	} else {
		tr.stopBtn.Hide()
	}
	if task.Status == model.TaskStatusCompleted {
		tr.openBtn.Show()
	} else {
		tr.openBtn.Hide()
	}
}

// CreateRenderer lays the row out as title/status on top and details below
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	top := container.NewBorder(nil, nil, nil,
		container.NewHBox(tr.statusLabel, tr.durationLabel, tr.stopBtn, tr.openBtn),
		tr.titleLabel)
	return widget.NewSimpleRenderer(container.NewVBox(top, tr.summaryLabel))
}
