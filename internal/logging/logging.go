// Package logging configures the standard logger, optionally teeing it into a
// size-rotated file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrlokans/stacks/internal/config"
)

// Setup points the standard logger at stderr, plus cfg.File when set.
// The returned closer flushes and closes the rotated file; it is never nil.
func Setup(cfg config.Log) io.Closer {
	w, closer := Writer(cfg, os.Stderr)
	log.SetOutput(w)
	return closer
}

// Writer builds the log destination without touching the global logger.
func Writer(cfg config.Log, console io.Writer) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return console, nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return io.MultiWriter(console, file), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
