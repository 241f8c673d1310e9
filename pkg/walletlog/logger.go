/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walletlog

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

// Level is the severity of a wallet log entry.
type Level int

// Log levels, lowest severity first.
const (
	Verbose Level = iota
	Debug
	Info
	Warn
	Error
	Failure
)

// String returns string representation of given log level.
func (l Level) String() string {
	switch l {
	case Verbose:
		return "VERBOSE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Failure:
		return "FAILURE"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// ParseLevel returns the level from the given string.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "VERBOSE", "verbose":
		return Verbose, nil
	case "DEBUG", "debug":
		return Debug, nil
	case "INFO", "info":
		return Info, nil
	case "WARN", "warn", "WARNING", "warning":
		return Warn, nil
	case "ERROR", "error":
		return Error, nil
	case "FAILURE", "failure":
		return Failure, nil
	default:
		return Error, errors.New("walletlog: invalid log level")
	}
}

// Consumer receives wallet log entries and events.
type Consumer interface {
	Log(level Level, message, location string)
	Event(name string, properties map[string]string, measurements map[string]float64)
}

// Logger fans every entry out to the registered consumers.
// Consumers are added at configuration time; logging itself only takes a read lock.
type Logger struct {
	mu        sync.RWMutex
	consumers []Consumer
}

// New creates a logger with the given consumers.
func New(consumers ...Consumer) *Logger {
	return &Logger{consumers: consumers}
}

// Add registers a consumer.
func (l *Logger) Add(c Consumer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consumers = append(l.consumers, c)
}

// Consumers returns a copy of the registered consumers.
func (l *Logger) Consumers() []Consumer {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]Consumer(nil), l.consumers...)
}

// Logf formats and forwards a message at the given level.
func (l *Logger) Logf(level Level, format string, args ...interface{}) {
	l.log(level, fmt.Sprintf(format, args...), location(3))
}

func (l *Logger) Verbosef(format string, args ...interface{}) {
	l.log(Verbose, fmt.Sprintf(format, args...), location(3))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(Debug, fmt.Sprintf(format, args...), location(3))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(Info, fmt.Sprintf(format, args...), location(3))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(Warn, fmt.Sprintf(format, args...), location(3))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(Error, fmt.Sprintf(format, args...), location(3))
}

func (l *Logger) Failuref(format string, args ...interface{}) {
	l.log(Failure, fmt.Sprintf(format, args...), location(3))
}

// Event forwards a named event with its properties and measurements.
func (l *Logger) Event(name string, properties map[string]string, measurements map[string]float64) {
	if l == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, c := range l.consumers {
		c.Event(name, properties, measurements)
	}
}

func (l *Logger) log(level Level, message, loc string) {
	if l == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, c := range l.consumers {
		c.Log(level, message, loc)
	}
}

// location returns "file:line function" of the caller skip frames up.
func location(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}

	fn := "unknown"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = filepath.Base(f.Name())
	}

	return fmt.Sprintf("%s:%d %s", filepath.Base(file), line, fn)
}
