package logging

import (
	"os"

	"github.com/phuslu/log"
)

// FromVerbosity configures the process-wide diagnostic logger from the
// repeatable -v flag. Diagnostics go to stderr only; stdout carries
// nothing but rendered lines.
func FromVerbosity(verbosity int) {
	log.DefaultLogger = log.Logger{
		Level: level(verbosity),
		Writer: &log.ConsoleWriter{
			ColorOutput: true,
			Writer:      os.Stderr,
		},
	}
}

func level(verbosity int) log.Level {
	switch verbosity {
	case 0:
		return log.WarnLevel
	case 1:
		return log.InfoLevel
	case 2:
		return log.DebugLevel
	default:
		return log.TraceLevel
	}
}
