package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"integral/channels"
	"integral/parallel"
	"integral/source"
)

type CLICmd struct {
	Input   []string `short:"i" help:"Path to a supported image file, may be specified multiple times" required:"" sep:"none" placeholder:"PATH"`
	Threads int      `short:"t" help:"Worker thread count, auto-detected if 0" default:"0"`
	OutDir  string   `short:"o" help:"Destination folder for .integral files" default:"." type:"path"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if len(c.Input) == 0 {
		return fmt.Errorf("paths to the images are required")
	}
	for _, path := range c.Input {
		if path == "" {
			return fmt.Errorf("path to an image can't be empty")
		}
	}

	if c.Threads < 0 {
		return fmt.Errorf("invalid thread count value: %d", c.Threads)
	}

	outDir, err := filepath.Abs(c.OutDir)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.OutDir, err)
	}
	c.OutDir = outDir

	return nil
}

// Run processes every input in order. A failing input is logged and
// skipped; the returned error only summarises how many inputs failed, so
// the process exits non-zero once all inputs were attempted if any of them
// failed. Cancelling ctx stops before the next input and returns ctx.Err()
// wrapped.
func (c *CLICmd) Run(ctx context.Context, pool *parallel.Pool) error {
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.OutDir, err)
	}

	pipeline := channels.NewPipeline(pool)
	var processedCount, errCount int
	var interrupted error
	for i, path := range c.Input {
		if interrupted = ctx.Err(); interrupted != nil {
			break
		}

		logger := slog.Default().With("file", path)
		if err := process(ctx, logger, pipeline, path, filepath.Join(c.OutDir, OutputName(i, path))); err != nil {
			errCount++
			logger.Error("could not process image", "error", err)
			continue
		}
		processedCount++
	}

	slog.Info("stats", "processed", processedCount, "errors", errCount,
		"total", processedCount+errCount)

	if interrupted != nil {
		return fmt.Errorf("interrupted after %d of %d files: %w", processedCount+errCount, len(c.Input), interrupted)
	}
	if errCount > 0 {
		return fmt.Errorf("error processing %d files", errCount)
	}
	return nil
}

func process(ctx context.Context, logger *slog.Logger, pipeline *channels.Pipeline, path, dest string) error {
	img, err := source.Load(path)
	if err != nil {
		return err
	}

	rows, cols := img.Channels.Dims()
	logger.Info("processing", "format", img.Format, "channels", len(img.Channels), "rows", rows, "cols", cols)

	t0 := time.Now()
	if err := pipeline.Run(ctx, img.Channels); err != nil {
		return err
	}
	logger.Info("done", "elapsed_ms", float64(time.Since(t0).Microseconds())/1000)

	if err := save(img.Channels, dest); err != nil {
		return err
	}
	logger.Debug("saved", "dest", dest)
	return nil
}
