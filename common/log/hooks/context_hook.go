package hooks

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// contextHook adds the "file:line" of the first frame below logrus to
// every entry, trimmed to the path inside the module.
type contextHook struct {
	levels []logrus.Level
	module string
}

// NewContextHook annotates entries at the given levels, all levels if none
// are given. Paths are cut after the last occurrence of module.
func NewContextHook(module string, levels ...logrus.Level) contextHook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return contextHook{levels: levels, module: module}
}

func (hook contextHook) Levels() []logrus.Level {
	return hook.levels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	if loc := callerLocation(string(debug.Stack()), hook.module); loc != "" {
		entry.Data["file:line"] = loc
	}
	return nil
}

// callerLocation walks a debug.Stack() dump and returns the file position of
// the first frame that is neither this hook nor logrus itself.
func callerLocation(stack, module string) string {
	lines := strings.Split(stack, "\n")
	// frames come in pairs: function line, then "\tfile:line +0x.." line
	for i := 1; i+1 < len(lines); i += 2 {
		fn, pos := lines[i], lines[i+1]
		if strings.Contains(fn, "sirupsen/logrus") ||
			strings.Contains(fn, "runtime/debug") ||
			strings.Contains(pos, "context_hook.go:") ||
			strings.Contains(fn, "common/log.") {
			continue
		}
		pos = strings.TrimSpace(pos)
		if idx := strings.LastIndex(pos, " +0x"); idx >= 0 {
			pos = pos[:idx]
		}
		if module != "" {
			if idx := strings.LastIndex(pos, module); idx >= 0 {
				pos = pos[idx+len(module):]
			}
		}
		return strings.TrimPrefix(pos, "/")
	}
	return ""
}
