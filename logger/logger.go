// Package logger builds a zerolog.Logger that can be handed to routers
// and service managers: a console writer that is colorized when stdout is
// a terminal and uncolored otherwise, optionally duplicated
// to a size-rotated file via lumberjack. It is a trimmed-down version of
// cloudflared's logger package, stripped of CLI-flag parsing and the
// management-log streaming path, which have no analogue in an in-process
// network emulator.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig describes the optional rotating log file. A zero value
// disables file logging.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

func init() {
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.000Z07:00"
}

// New builds a logger for component (e.g. a router or service manager
// name), writing to the console and, if file.Path is set, to a rotating
// log file at the same time.
func New(component string, level zerolog.Level, file FileConfig) zerolog.Logger {
	var writers []io.Writer

	console := zerolog.ConsoleWriter{
		Out:     colorable.NewColorable(os.Stdout),
		NoColor: !term.IsTerminal(int(os.Stdout.Fd())),
	}
	writers = append(writers, console)

	if file.Path != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    defaultInt(file.MaxSizeMB, 10),
			MaxBackups: defaultInt(file.MaxBackups, 5),
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
