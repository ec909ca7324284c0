package download

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/juju/errors"
)

// Defaults for the HTTP fetcher
const (
	DefaultUserAgent        = "rblx2rojo"
	DefaultProgressInterval = 500 * time.Millisecond
	CopyBufferSize          = 32 * 1024
)

// Progress describes how much of a download has arrived
type Progress struct {
	Downloaded int64
	Total      int64 // -1 if the server did not send a length
	Started    time.Time
}

// Percent returns completion in the range 0-100, or -1 if unknown
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return -1
	}
	percent := int(float64(p.Downloaded) / float64(p.Total) * 100)
	if percent > 100 {
		percent = 100
	}
	return percent
}

// Speed returns a human readable transfer rate (e.g., "1.2MB/s")
func (p Progress) Speed() string {
	if p.Started.IsZero() {
		return ""
	}
	elapsed := time.Since(p.Started)
	if elapsed.Seconds() <= 0 {
		return ""
	}
	bytesPerSecond := float64(p.Downloaded) / elapsed.Seconds()
	return fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
}

// Service downloads files over HTTP
type Service struct {
	client           *http.Client
	userAgent        string
	progressInterval time.Duration
}

// NewService creates a new download service. A nil client uses a client
// without a timeout; downloads run until done or the context is cancelled.
func NewService(client *http.Client) *Service {
	if client == nil {
		client = &http.Client{}
	}
	return &Service{
		client:           client,
		userAgent:        DefaultUserAgent,
		progressInterval: DefaultProgressInterval,
	}
}

// SetProgressInterval limits how often the progress callback fires
func (s *Service) SetProgressInterval(interval time.Duration) {
	s.progressInterval = interval
}

// ToFile downloads url into dest. A partial file is removed on failure.
func (s *Service) ToFile(ctx context.Context, url, dest string, onProgress func(Progress)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Annotatef(err, "building request for %s", url)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, errors.Annotatef(err, "downloading %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, errors.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, errors.Annotatef(err, "creating %s", dest)
	}

	progress := Progress{Total: resp.ContentLength, Started: time.Now()}
	written, err := s.copyWithProgress(out, resp.Body, &progress, onProgress)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(dest); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("download: cannot remove partial file %s: %v", dest, rmErr)
		}
		return written, errors.Annotatef(err, "writing %s", dest)
	}

	return written, nil
}

// copyWithProgress copies src to dst, reporting progress at most once per
// interval and always once at the end.
func (s *Service) copyWithProgress(dst io.Writer, src io.Reader, progress *Progress, onProgress func(Progress)) (int64, error) {
	buf := make([]byte, CopyBufferSize)
	var lastReport time.Time

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return progress.Downloaded, err
			}
			progress.Downloaded += int64(n)

			if onProgress != nil && time.Since(lastReport) >= s.progressInterval {
				lastReport = time.Now()
				onProgress(*progress)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return progress.Downloaded, readErr
		}
	}

	if onProgress != nil {
		onProgress(*progress)
	}
	return progress.Downloaded, nil
}
