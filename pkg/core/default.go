package core

import (
	"log/slog"
	"os"

	"actionstoolkit/pkg/command"
	"actionstoolkit/pkg/env"
)

// The functions in this file use a Core writing to os.Stdout and using the process
// environment. They assume stdout is always writable: if a write fails, the error is
// logged to stderr and the process exits with status 1. Use New to handle write
// errors instead.

var (
	std  = New(os.Stdout, env.OS{})
	exit = os.Exit
)

// Default returns the Core used by the package level functions.
func Default() *Core {
	return std
}

func must(err error) {
	if err != nil {
		slog.Error("Failed to write workflow command", "error", err)
		exit(1)
	}
}

// Input returns the value of an input, see Core.Input.
func Input(name string) (string, error) {
	return std.Input(name)
}

// GetState returns a saved state value, see Core.GetState.
func GetState(name string) (string, error) {
	return std.GetState(name)
}

// IsDebug reports whether step debug logging is enabled.
func IsDebug() bool {
	return std.IsDebug()
}

// SetOutput sets an output. It exits the process if stdout is not writable.
func SetOutput(name, value string) {
	must(std.SetOutput(name, value))
}

// ExportVariable exports a variable. It exits the process if it cannot be set or
// stdout is not writable.
func ExportVariable(name, value string) {
	must(std.ExportVariable(name, value))
}

// SetSecret masks value. It exits the process if stdout is not writable.
func SetSecret(value string) {
	must(std.SetSecret(value))
}

// AddPath extends PATH. It exits the process if stdout is not writable.
func AddPath(dir string) {
	must(std.AddPath(dir))
}

// SaveState saves state. It exits the process if stdout is not writable.
func SaveState(name, value string) {
	must(std.SaveState(name, value))
}

func Debug(message string) {
	must(std.Debug(message))
}

func Error(message string) {
	must(std.Error(message))
}

func Warning(message string) {
	must(std.Warning(message))
}

func Info(message string) {
	must(std.Info(message))
}

// Log writes an annotation with location. It exits the process if stdout is not
// writable.
func Log(level command.Level, l command.Log) {
	must(std.Log(level, l))
}

// StopLoggingFunc runs body with command processing stopped, see StopLogging. It exits
// the process if stdout is not writable.
func StopLoggingFunc[T any](body func() T) T {
	result, err := StopLogging(std, body)
	must(err)
	return result
}
