package http

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aptly-dev/pkgstats/pkgstats"
)

// DownloadTemp downloads url to temporary file and returns it opened
//
// Temporary file would be already removed, so no need to cleanup
func DownloadTemp(ctx context.Context, downloader pkgstats.Downloader, url string) (*os.File, error) {
	tempdir, err := os.MkdirTemp(os.TempDir(), "pkgstats")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempdir)

	tempfile := filepath.Join(tempdir, "buffer")

	err = downloader.Download(ctx, url, tempfile)
	if err != nil {
		return nil, err
	}

	return os.Open(tempfile)
}
