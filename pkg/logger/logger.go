package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Options controls how the logger is constructed.
type Options struct {
	Verbose bool
	Quiet   bool
	NoColor bool
}

// New builds the logrus logger used by all commands. Output goes to stderr
// so tables and generated content on stdout stay machine-readable.
func New(opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	log.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if opts.Quiet {
		log.SetLevel(logrus.WarnLevel)
	}

	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:          opts.NoColor || !isTerminal(os.Stderr),
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	return log
}

// Discard returns a logger that swallows everything. Used in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
