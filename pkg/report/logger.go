// Package report is the console reporter used by the stn command. It keeps
// error and warning counts and prints messages according to the log level.
package report

import (
	"fmt"
	"strings"
	"sync"
)

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and the closing summary
	LogLevelWarning        // errors, warnings and the closing summary
	LogLevelVerbose        // everything including phase progress (default)
)

// LevelNames lists the log level names accepted on the command line, indexed
// by level.
var LevelNames = []string{"silent", "error", "warn", "verbose"}

// ParseLevel converts a level name into its log level.
func ParseLevel(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return LogLevelVerbose, nil
	}
	for level, candidate := range LevelNames {
		if candidate == name {
			return level, nil
		}
	}
	if name == "warning" {
		return LogLevelWarning, nil
	}
	return 0, fmt.Errorf("report: unknown log level %q", name)
}

// Logger stores the state of the reporter.
type Logger struct {
	LogLevel     int
	errorCount   int
	warningCount int

	// warnings are held back and shown just before the closing summary
	warnings []warning

	m *sync.Mutex
}

type warning struct {
	tag, msg string
}

// logger is the global reporter instance.
var logger = newLogger(LogLevelVerbose)

func newLogger(level int) *Logger {
	return &Logger{LogLevel: level, m: &sync.Mutex{}}
}

// Initialize resets the global reporter to the given log level.
func Initialize(level int) {
	logger = newLogger(level)
}

// LogLevel returns the current log level.
func LogLevel() int {
	return logger.LogLevel
}

// ShouldProceed reports whether no errors have been logged so far.
func ShouldProceed() bool {
	logger.m.Lock()
	defer logger.m.Unlock()
	return logger.errorCount == 0
}

// Counts returns the number of errors and warnings logged so far.
func Counts() (errors, warnings int) {
	logger.m.Lock()
	defer logger.m.Unlock()
	return logger.errorCount, logger.warningCount
}
