// Package logging provides categorized logging for the page behaviors and
// the sitecheck harness. Categories let a single behavior be traced in
// isolation. Output goes to stderr unless Init names a file; under
// js/wasm stderr surfaces on the browser console.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup and wiring
	CategoryNav    Category = "nav"    // Menu toggling, active link marking
	CategoryScroll Category = "scroll" // Anchor scrolling, navbar shadow
	CategoryReveal Category = "reveal" // Viewport reveal animation
	CategoryCards  Category = "cards"  // Card click expansion
	CategoryCheck  Category = "check"  // Headless audit harness
	CategoryWatch  Category = "watch"  // Filesystem watch mode
)

// Log levels
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

var (
	mu       sync.RWMutex
	sink     = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	file     *os.File
	logLevel = LevelInfo
)

// Init configures the level and destination. An empty path keeps stderr.
// On file open failure logging stays on stderr and the error is returned.
func Init(level, path string) error {
	mu.Lock()
	defer mu.Unlock()

	switch level {
	case "debug":
		logLevel = LevelDebug
	case "info", "":
		logLevel = LevelInfo
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}

	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if file != nil {
		file.Close()
	}
	file = f
	sink = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	return nil
}

// SetOutput redirects logging, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = log.New(w, "", 0)
}

// Close closes the log file if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
		sink = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	}
}

// IsDebug reports whether debug messages are being emitted.
func IsDebug() bool {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel <= LevelDebug
}

// Logger emits messages tagged with one category.
type Logger struct {
	category Category
}

// Get returns a logger for the given category.
func Get(category Category) *Logger {
	return &Logger{category: category}
}

func (l *Logger) logf(level int, tag, format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if level < logLevel {
		return
	}
	sink.Printf("[%s] %s: %s", tag, l.category, fmt.Sprintf(format, args...))
}

// Debug logs a debug message (only if level <= debug)
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, "DEBUG", format, args...)
}

// Info logs an informational message (only if level <= info)
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, "INFO", format, args...)
}

// Warn logs a warning message (only if level <= warn)
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, "WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, "ERROR", format, args...)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debug(format, args...)
}

// BootError logs error to the boot category
func BootError(format string, args ...interface{}) {
	Get(CategoryBoot).Error(format, args...)
}

// Nav logs to the nav category
func Nav(format string, args ...interface{}) {
	Get(CategoryNav).Info(format, args...)
}

// NavDebug logs debug to the nav category
func NavDebug(format string, args ...interface{}) {
	Get(CategoryNav).Debug(format, args...)
}

// Scroll logs to the scroll category
func Scroll(format string, args ...interface{}) {
	Get(CategoryScroll).Info(format, args...)
}

// ScrollDebug logs debug to the scroll category
func ScrollDebug(format string, args ...interface{}) {
	Get(CategoryScroll).Debug(format, args...)
}

// Reveal logs to the reveal category
func Reveal(format string, args ...interface{}) {
	Get(CategoryReveal).Info(format, args...)
}

// RevealDebug logs debug to the reveal category
func RevealDebug(format string, args ...interface{}) {
	Get(CategoryReveal).Debug(format, args...)
}

// Cards logs to the cards category
func Cards(format string, args ...interface{}) {
	Get(CategoryCards).Info(format, args...)
}

// CardsDebug logs debug to the cards category
func CardsDebug(format string, args ...interface{}) {
	Get(CategoryCards).Debug(format, args...)
}

// Check logs to the check category
func Check(format string, args ...interface{}) {
	Get(CategoryCheck).Info(format, args...)
}

// CheckDebug logs debug to the check category
func CheckDebug(format string, args ...interface{}) {
	Get(CategoryCheck).Debug(format, args...)
}

// CheckError logs error to the check category
func CheckError(format string, args ...interface{}) {
	Get(CategoryCheck).Error(format, args...)
}

// Watch logs to the watch category
func Watch(format string, args ...interface{}) {
	Get(CategoryWatch).Info(format, args...)
}

// WatchDebug logs debug to the watch category
func WatchDebug(format string, args ...interface{}) {
	Get(CategoryWatch).Debug(format, args...)
}

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
