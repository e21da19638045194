package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger writes leveled, timestamped lines. Each component gets its own
// prefix through With so log lines read "[store] ...", "[import] ...".
type Logger struct {
	out       *log.Logger
	err       *log.Logger
	component string
	debug     bool
}

// NewLogger creates a Logger writing INFO/WARN/DEBUG to stdout and ERROR to stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr, os.Getenv("LOG_DEBUG") != "")
}

// NewLoggerTo is NewLogger with explicit sinks. Tests pass io.Discard.
func NewLoggerTo(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		out:   log.New(out, "", 0),
		err:   log.New(errOut, "", 0),
		debug: debug,
	}
}

// With returns a copy of the logger that prefixes every line with component.
func (l *Logger) With(component string) *Logger {
	cp := *l
	cp.component = component
	return &cp
}

func (l *Logger) line(level, format string) string {
	prefix := ""
	if l.component != "" {
		prefix = "[" + l.component + "] "
	}
	return fmt.Sprintf("[%s] %s %s%s", time.Now().Format("2006-01-02 15:04:05"), level, prefix, format)
}

func (l *Logger) Info(format string, args ...any) {
	l.out.Printf(l.line("\033[32mINFO\033[0m ", format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.out.Printf(l.line("\033[33mWARN\033[0m ", format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(l.line("\033[31mERROR\033[0m", format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.out.Printf(l.line("\033[36mDEBUG\033[0m", format), args...)
}
