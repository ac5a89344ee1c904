package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"integral/batch"
	"integral/parallel"
)

type cli struct {
	batch.CLICmd `embed:""`

	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFile  string `help:"Write logs to this file, rotated by size, instead of stderr" type:"path"`
}

func newLogger(level, file string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if file != "" {
		w = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})).
		With("run", uuid.NewString())
}

// startPool starts the shared worker pool sized from the configuration and
// logs the resolved worker count.
func startPool(c *cli) *parallel.Pool {
	pool := parallel.Start(c.Threads)
	slog.Info("running", "inputs", len(c.Input), "threads", pool.Workers(), "out", c.OutDir)
	return pool
}

func main() {
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("integral"),
		kong.Description("Build per-channel summed-area tables of images."),
		kong.UsageOnError(),
	)

	slog.SetDefault(newLogger(c.LogLevel, c.LogFile))
	pool := startPool(&c)

	err := c.Run(ctx, pool)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
