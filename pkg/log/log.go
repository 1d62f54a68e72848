// Package log provides the logger used throughout the emulator. The
// default implementation is backed by logrus, configured for plain
// single-line output.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger writing to stderr at the info level.
func New() Logger {
	return NewWithLevel(os.Stderr, "info")
}

// NewWithLevel returns a Logger writing to w at the named level
// (panic, fatal, error, warn, info, debug or trace). An unknown
// level falls back to info.
func NewWithLevel(w io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{Logger: l}
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}
