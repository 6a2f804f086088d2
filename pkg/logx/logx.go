package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var logger = log.New(os.Stdout, "", log.LstdFlags)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be logged.
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= currentLevel.Load()
}

func output(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	logger.Printf("[%s] %s", tag, msg)
}

func Debug(args ...any) { output(LevelDebug, "DEBUG", fmt.Sprint(args...)) }
func Info(args ...any)  { output(LevelInfo, "INFO", fmt.Sprint(args...)) }
func Warn(args ...any)  { output(LevelWarn, "WARN", fmt.Sprint(args...)) }
func Error(args ...any) { output(LevelError, "ERROR", fmt.Sprint(args...)) }

func Debugf(format string, args ...any) { output(LevelDebug, "DEBUG", fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { output(LevelInfo, "INFO", fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { output(LevelWarn, "WARN", fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { output(LevelError, "ERROR", fmt.Sprintf(format, args...)) }

// Fatal logs the message and exits the process.
func Fatal(args ...any) {
	output(LevelError, "FATAL", fmt.Sprint(args...))
	os.Exit(1)
}

// Fatalf logs the formatted message and exits the process.
func Fatalf(format string, args ...any) {
	output(LevelError, "FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}
