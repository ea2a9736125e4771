package test

import (
	"fmt"
	"strings"
	"sync"
)

// Logger records every message it is given, prefixed by its level. It
// satisfies ncprep.Logger.
type Logger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *Logger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	l.Lines = append(l.Lines, level+" "+fmt.Sprintf(format, v...))
	l.mu.Unlock()
}

// Printf records an info line.
func (l *Logger) Printf(format string, v ...interface{}) { l.add("INFO", format, v...) }

// Debugf records a debug line.
func (l *Logger) Debugf(format string, v ...interface{}) { l.add("DEBUG", format, v...) }

// Warnf records a warn line.
func (l *Logger) Warnf(format string, v ...interface{}) { l.add("WARN", format, v...) }

// Errorf records an error line.
func (l *Logger) Errorf(format string, v ...interface{}) { l.add("ERROR", format, v...) }

// Contains reports whether any recorded line contains s.
func (l *Logger) Contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.Lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
