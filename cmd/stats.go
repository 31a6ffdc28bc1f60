package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/aptly-dev/pkgstats/contents"
	ctx "github.com/aptly-dev/pkgstats/context"
	"github.com/aptly-dev/pkgstats/http"
	"github.com/aptly-dev/pkgstats/pkgstats"
	"github.com/aptly-dev/pkgstats/utils"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
)

var architectureRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func pkgstatsRun(cmd *commander.Command, args []string) error {
	if len(args) != 1 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	start := time.Now()

	architecture := args[0]
	if !architectureRegexp.MatchString(architecture) {
		return &ctx.UsageError{Message: fmt.Sprintf("invalid architecture %q", architecture)}
	}

	report, err := CollectStats(GetContext(), architecture)
	if err != nil {
		return err
	}

	progress := GetContext().Progress()
	PrintReport(progress, report)
	progress.Printf("total time: %.3f secs\n", time.Since(start).Seconds())
	progress.Flush()

	return nil
}

// CollectStats downloads and decompresses Contents index for architecture
// and returns packages owning the most files
func CollectStats(context *ctx.StatsContext, architecture string) (contents.Report, error) {
	config := context.Config()
	downloader := context.Downloader()
	progress := context.Progress()

	url, err := http.ResolveContentsURL(context, downloader, config.Mirror, architecture, config.StaticURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to locate Contents index")
	}

	err = os.MkdirAll(config.DownloadDir, 0755)
	if err != nil {
		return nil, err
	}

	compressed := filepath.Join(config.DownloadDir, http.ContentsFileName(architecture))

	size, err := downloader.GetLength(context, url)
	if err == nil {
		progress.ColoredPrintfStdErr("@{y}Downloading@| %s (%s)...", url, humanize.IBytes(uint64(size)))
	} else {
		log.Debug().Err(err).Str("url", url).Msg("unable to determine size")
		progress.ColoredPrintfStdErr("@{y}Downloading@| %s...", url)
	}

	if err = downloader.Download(context, url, compressed); err != nil {
		return nil, err
	}

	uncompressed := utils.DecompressedName(compressed)
	if err = utils.DecompressFile(compressed, uncompressed, config.KeepCompressed); err != nil {
		return nil, err
	}

	log.Debug().Str("file", uncompressed).Msg("parsing Contents index")

	return contents.AggregateFile(uncompressed, contents.DefaultTopN)
}

// PrintReport prints report with 1-based ranks
func PrintReport(progress pkgstats.Progress, report contents.Report) {
	for i, entry := range report {
		progress.Printf("%d. %s    %d\n", i+1, entry.Name, entry.Count)
	}
}
