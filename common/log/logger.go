// Package log holds the process wide logrus logger used by the scheduler
// binaries. Library packages import logrus directly; this wrapper exists so
// that binaries can configure level, format and hooks in one place.
package log

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.StandardLogger()

func AddHook(hook logrus.Hook) {
	Log.AddHook(hook)
}

// SetLevel parses a level name (error|warn|info|debug|trace) and applies it.
func SetLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	Log.SetLevel(level)
	return nil
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

func Debugf(format string, args ...interface{}) {
	Log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Log.Infof(format, args...)
}

func Info(args ...interface{}) {
	Log.Info(args...)
}

func Errorf(format string, args ...interface{}) {
	Log.Errorf(format, args...)
}

func Error(args ...interface{}) {
	Log.Error(args...)
}
