package convert

import (
	"context"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	SetLogCallback(func(taskID, line string))
	StartConversion(req Request) (*model.ConversionTask, error)
	Convert(ctx context.Context, req Request) (*model.ConversionTask, error)
	StopConversion(taskID string) error
	GetTask(taskID string) (*model.ConversionTask, bool)
}

// RuntimeFinder locates the runtime binary. *lune.Locator implements it.
type RuntimeFinder interface {
	Find() (string, error)
}

// executor abstracts running the runtime for testing.
type executor interface {
	// Run starts name with args, passes each stdout line to onLine and
	// returns collected stderr together with the wait error.
	Run(ctx context.Context, name string, args []string, onLine func(string)) (string, error)
}
