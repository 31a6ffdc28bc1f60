package contents

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// maxLineSize limits single line of Contents index
const maxLineSize = 1024 * 1024

// Aggregate counts files per package in lines and returns top n packages
func Aggregate(lines []string, n int) Report {
	counter := NewCounter()
	for _, line := range lines {
		counter.AddLine(line)
	}

	return counter.Top(n)
}

// AggregateReader reads Contents index line by line and returns top n packages
//
// Malformed lines are skipped, read errors are returned.
func AggregateReader(r io.Reader, n int) (Report, error) {
	counter := NewCounter()

	scanner := bufio.NewScanner(bufio.NewReaderSize(r, 32768))
	scanner.Buffer(nil, maxLineSize)

	for scanner.Scan() {
		counter.AddLine(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading line %d", counter.Stats().Lines+1)
	}

	stats := counter.Stats()
	log.Debug().
		Int("lines", stats.Lines).
		Int("entries", stats.Entries).
		Int("malformed", stats.Malformed).
		Int("packages", counter.Len()).
		Msg("contents index parsed")

	return counter.Top(n), nil
}

// AggregateFile parses Contents index stored at path
func AggregateFile(path string, n int) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	report, err := AggregateReader(f, n)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return report, nil
}
