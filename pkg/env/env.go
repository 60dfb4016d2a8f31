// Package env gives the workflow command core access to environment variables.
//
// The process environment is global state. Code in this module reads and writes it
// only through the Env interface, so tests can use a Map instead.
package env

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

var (
	// ErrNotPresent is returned when a variable is not set. An empty value is present.
	ErrNotPresent = errors.New("environment variable not present")

	// ErrInvalidUnicode is returned when a variable is set but is not valid UTF-8.
	ErrInvalidUnicode = errors.New("environment variable was not valid unicode")
)

// Prefixes of the variables the orchestrator uses to pass values to a step.
const (
	InputPrefix = "INPUT"
	StatePrefix = "STATE"
)

// DebugVar is set to "1" by the orchestrator when step debug logging is enabled.
const DebugVar = "RUNNER_DEBUG"

// Env reads and writes environment variables.
type Env interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	// Environ returns the variables as "key=value" strings, suitable for exec.Cmd.Env.
	Environ() []string
}

// OS is the Env of the current process.
type OS struct{}

var _ Env = OS{}

func (OS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OS) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

func (OS) Environ() []string {
	return os.Environ()
}

// Map is an in-memory Env. The zero value is empty and ready to use.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

var _ Env = &Map{}

// NewMap returns a Map holding a copy of vars.
func NewMap(vars map[string]string) *Map {
	return &Map{vars: maps.Clone(vars)}
}

func (m *Map) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *Map) Setenv(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("invalid environment variable name %q", key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	return nil
}

func (m *Map) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+m.vars[k])
	}
	return result
}

// Key derives the variable name for a human readable name: spaces become underscores,
// the result is upper-cased and prefixed. "my input" with prefix INPUT is INPUT_MY_INPUT.
// Other characters are kept as they are.
func Key(prefix, name string) string {
	return prefix + "_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Lookup reads the variable for name, see Key.
func Lookup(e Env, prefix, name string) (string, error) {
	key := Key(prefix, name)
	value, ok := e.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNotPresent)
	}
	if !utf8.ValidString(value) {
		return "", fmt.Errorf("%s: %w", key, ErrInvalidUnicode)
	}
	return value, nil
}

// IsDebug reports whether DebugVar is exactly "1".
func IsDebug(e Env) bool {
	v, ok := e.LookupEnv(DebugVar)
	return ok && v == "1"
}
