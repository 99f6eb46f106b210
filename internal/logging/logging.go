// Package logging builds the process logger: human-readable on a terminal,
// JSON otherwise, optionally mirrored to a rotating file.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"clock3d/internal/config"
)

// Options selects level and destinations.
type Options struct {
	Level   string
	Verbose bool
	Quiet   bool

	// File, when set, receives JSON logs with size-based rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// FromConfig maps the log section of a resolved config.
func FromConfig(c config.LogConfig, verbose, quiet bool) Options {
	return Options{
		Level:      c.Level,
		Verbose:    verbose,
		Quiet:      quiet,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// New returns a logger writing to w and, if configured, a log file. The
// returned closer releases the file and is never nil.
func New(opts Options, w io.Writer) (zerolog.Logger, io.Closer) {
	console := selectOutput(w)

	var closer io.Closer = nopCloser{}
	writer := console
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		closer = lj
		writer = zerolog.MultiLevelWriter(console, lj)
	}

	logger := zerolog.New(writer).Level(SelectLevel(opts)).With().Timestamp().Logger()
	return logger, closer
}

// SelectLevel picks the level: --verbose and --quiet beat the configured level,
// and an unparseable level falls back to info.
func SelectLevel(opts Options) zerolog.Level {
	switch {
	case opts.Verbose:
		return zerolog.DebugLevel
	case opts.Quiet:
		return zerolog.WarnLevel
	}
	if opts.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// selectOutput wraps w in a console writer when it is a terminal without NO_COLOR.
func selectOutput(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}
	return w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
