package download

import (
	"context"
	"time"
)

// Fetcher defines the interface for the download service.
type Fetcher interface {
	// ToFile streams url into dest and returns the number of bytes written.
	ToFile(ctx context.Context, url, dest string, onProgress func(Progress)) (int64, error)

	// SetProgressInterval limits how often onProgress is called
	SetProgressInterval(interval time.Duration)
}
