// Package logging configures the logrus loggers used across g4basic.
package logging

import (
	"fmt"
	"io"
	"path"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to out at the given level name.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return &logrus.Logger{
		Out: out,
		Formatter: &CallerTextFormatter{
			TextFormatter: logrus.TextFormatter{DisableTimestamp: true},
		},
		Hooks:        make(logrus.LevelHooks),
		Level:        lvl,
		ReportCaller: lvl >= logrus.DebugLevel,
	}, nil
}

// Named returns an entry tagged with the component name.
func Named(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Discard returns an entry that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// CallerTextFormatter prefixes messages with the calling file and line
// when caller reporting is on.
type CallerTextFormatter struct {
	logrus.TextFormatter
}

// Format renders a single log entry.
func (f *CallerTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Message = fmt.Sprintf("[%s:%03d] %s", path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}
