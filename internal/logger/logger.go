// Package logger provides the engine's structured logging wrapper, in the
// same minimal style used across this codebase's services.
package logger

import (
	"fmt"
	"log"
	"os"
)

// Level represents the severity of a log message.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger wraps the standard logger with a fixed component tag and a
// severity floor; messages below the floor are dropped.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New creates a logger tagged with the given component name, logging at
// Info and above by default.
func New(component string) *Logger {
	return &Logger{
		level:  Info,
		logger: log.New(os.Stdout, "["+component+"] ", log.LstdFlags|log.Lshortfile),
	}
}

// SetLevel changes the severity floor.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(Debug, format, args...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(Info, format, args...)
}

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(Warn, format, args...)
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(Error, format, args...)
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Output(3, fmt.Sprintf("[%s] %s", level, msg))
}

// Fields formats key/value pairs for inclusion in a log line, e.g.
// logger.Infof("scale resolved%s", logger.Fields("page_id", pageID)).
func Fields(kv ...interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	out := " "
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%v=%v", kv[i], kv[i+1])
	}
	return out
}
