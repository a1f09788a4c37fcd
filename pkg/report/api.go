package report

import (
	"errors"

	"github.com/mtaka/STN-Core/pkg/units"
)

// LogError logs err under tag. A StructuralError is shown with its own
// banner naming the statement.
func LogError(tag string, err error) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.errorCount++
	if logger.LogLevel == LogLevelSilent {
		return
	}
	displayEndPhase(false)

	var serr *units.StructuralError
	if errors.As(err, &serr) {
		displayStructuralError(serr)
		return
	}
	PrintErrorMessage(tag, err)
}

// LogWarning records a warning. Warnings are displayed by Finish.
func LogWarning(tag, msg string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.warningCount++
	logger.warnings = append(logger.warnings, warning{tag: tag, msg: msg})
}

// LogInfo prints an informational message at the verbose level.
func LogInfo(tag, msg string) {
	if logger.LogLevel == LogLevelVerbose {
		PrintInfoMessage(tag, msg)
	}
}

// LogHeader prints the tool banner at the verbose level.
func LogHeader(version, target string) {
	if logger.LogLevel == LogLevelVerbose {
		displayHeader(version, target)
	}
}

// LogBeginPhase starts a progress line for a named phase.
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase closes the current phase. A phase interrupted by LogError has
// already been closed as failed.
func LogEndPhase() {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(ShouldProceed())
	}
}

// Finish prints held warnings and the closing summary. It returns whether
// the run succeeded.
func Finish(outputPath string) bool {
	logger.m.Lock()
	warnings := logger.warnings
	logger.warnings = nil
	errCount, warnCount := logger.errorCount, logger.warningCount
	logger.m.Unlock()

	if logger.LogLevel >= LogLevelWarning {
		for _, w := range warnings {
			PrintWarningMessage(w.tag, w.msg)
		}
	}
	if logger.LogLevel > LogLevelSilent {
		displayFinished(errCount == 0, errCount, warnCount, outputPath)
	}
	return errCount == 0
}
