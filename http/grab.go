package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aptly-dev/pkgstats/pkgstats"
	"github.com/cavaliergopher/grab/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	bufferSize       = 32 * 1024
	progressInterval = 200 * time.Millisecond
)

// GrabDownloader downloads files with grab, single attempt per file
type GrabDownloader struct {
	client   *grab.Client
	limiter  *rate.Limiter
	progress pkgstats.Progress
}

// Check interface
var (
	_ pkgstats.Downloader = (*GrabDownloader)(nil)
)

// NewGrabDownloader creates new downloader, downLimit is in bytes per second (0 for unlimited)
func NewGrabDownloader(downLimit int64, progress pkgstats.Progress) *GrabDownloader {
	client := grab.NewClient()
	client.UserAgent = "pkgstats/" + pkgstats.Version

	downloader := &GrabDownloader{
		client:   client,
		progress: progress,
	}

	if downLimit > 0 {
		burst := int(downLimit)
		if burst < bufferSize {
			burst = bufferSize
		}
		downloader.limiter = rate.NewLimiter(rate.Limit(downLimit), burst)
	}

	return downloader
}

// Download fetches url to destination, replacing existing file
func (d *GrabDownloader) Download(ctx context.Context, url string, destination string) error {
	log.Debug().Str("url", url).Str("destination", destination).Msg("download started")

	req, err := grab.NewRequest(destination, url)
	if err != nil {
		return errors.Wrap(err, url)
	}

	req = req.WithContext(ctx)
	req.NoResume = true
	req.BufferSize = bufferSize
	if d.limiter != nil {
		req.RateLimiter = d.limiter
	}

	resp := d.client.Do(req)

	barShown := false
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

Loop:
	for {
		select {
		case <-ticker.C:
			if d.progress == nil {
				continue
			}
			if !barShown && resp.Size() > 0 {
				d.progress.InitBar(resp.Size(), true)
				barShown = true
			}
			if barShown {
				d.progress.SetBar(int(resp.BytesComplete()))
			}
		case <-resp.Done:
			break Loop
		}
	}

	if barShown {
		d.progress.ShutdownBar()
	}

	if err = resp.Err(); err != nil {
		var statusErr grab.StatusCodeError
		if errors.As(err, &statusErr) {
			return &Error{Code: int(statusErr), URL: url}
		}
		return errors.Wrap(err, url)
	}

	log.Debug().Str("url", url).Int64("bytes", resp.BytesComplete()).
		Dur("duration", resp.Duration()).Msg("download finished")

	return nil
}

// GetProgress returns Progress object
func (d *GrabDownloader) GetProgress() pkgstats.Progress {
	return d.progress
}

// GetLength returns size of remote object by issuing HEAD request
func (d *GrabDownloader) GetLength(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return -1, errors.Wrap(err, url)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return -1, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return -1, &Error{Code: resp.StatusCode, URL: url}
	}

	if resp.ContentLength < 0 {
		return -1, fmt.Errorf("could not determine length of %s", url)
	}

	return resp.ContentLength, nil
}
