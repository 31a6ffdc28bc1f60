package http

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aptly-dev/pkgstats/pkgstats"
)

type expectedRequest struct {
	URL      string
	Err      error
	Response []byte
}

// FakeDownloader is like Downloader, but it used in tests
// to stub out results
type FakeDownloader struct {
	expected []expectedRequest
}

// Check interface
var (
	_ pkgstats.Downloader = (*FakeDownloader)(nil)
)

// NewFakeDownloader creates new expected downloader
func NewFakeDownloader() *FakeDownloader {
	return &FakeDownloader{}
}

// ExpectResponse installs expectation on upcoming download with response
func (f *FakeDownloader) ExpectResponse(url string, response []byte) *FakeDownloader {
	f.expected = append(f.expected, expectedRequest{URL: url, Response: response})
	return f
}

// ExpectError installs expectation on upcoming download with error
func (f *FakeDownloader) ExpectError(url string, err error) *FakeDownloader {
	f.expected = append(f.expected, expectedRequest{URL: url, Err: err})
	return f
}

// Empty verifies that are planned downloads have happened
func (f *FakeDownloader) Empty() bool {
	return len(f.expected) == 0
}

// Download performs fake download by matching against first expectation in the queue
func (f *FakeDownloader) Download(ctx context.Context, url string, filename string) error {
	if len(f.expected) == 0 || f.expected[0].URL != url {
		return fmt.Errorf("unexpected request for %s", url)
	}

	var expectation expectedRequest
	expectation, f.expected = f.expected[0], f.expected[1:]

	if expectation.Err != nil {
		return expectation.Err
	}

	err := os.MkdirAll(filepath.Dir(filename), 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, expectation.Response, 0644)
}

// GetProgress returns Progress object
func (f *FakeDownloader) GetProgress() pkgstats.Progress {
	return nil
}

// GetLength returns size of the next expected response
func (f *FakeDownloader) GetLength(ctx context.Context, url string) (int64, error) {
	for _, expectation := range f.expected {
		if expectation.URL == url {
			if expectation.Err != nil {
				return -1, expectation.Err
			}
			return int64(len(expectation.Response)), nil
		}
	}

	return -1, fmt.Errorf("unexpected request for %s", url)
}
