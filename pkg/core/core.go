// Package core lets a step talk to the orchestrator that runs it: read inputs and
// state, set outputs, export variables, mask secrets, extend PATH and annotate logs.
//
// Everything written goes to one io.Writer as workflow command lines (see package
// command). Everything read comes from an env.Env.
package core

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"actionstoolkit/pkg/command"
	"actionstoolkit/pkg/env"
)

// Core writes workflow commands to out and reads and writes variables in env.
type Core struct {
	mu       sync.Mutex
	out      io.Writer
	env      env.Env
	newToken func() string
}

// Option configures a Core.
type Option func(*Core)

// WithTokenSource sets the function generating stop-commands tokens. The default is a
// random UUID.
func WithTokenSource(newToken func() string) Option {
	return func(c *Core) {
		c.newToken = newToken
	}
}

// New returns a Core writing to out. Each command line is passed to out in a single
// Write call.
func New(out io.Writer, e env.Env, opts ...Option) *Core {
	c := &Core{
		out:      out,
		env:      e,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Env returns the environment c reads from and writes to.
func (c *Core) Env() env.Env {
	return c.env
}

// Writer returns the sink c writes to. Writes to it are not ordered with the command
// lines written by c.
func (c *Core) Writer() io.Writer {
	return c.out
}

func (c *Core) write(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.out, line)
	return err
}

func (c *Core) issue(name, payload string) error {
	return c.write(command.Encode(name, nil, payload))
}

func (c *Core) issueNamed(name, key, value string) error {
	return c.write(command.EncodeNamed(name, key, value))
}

// Input returns the value of the input with the given name, read from INPUT_<NAME>.
// It returns an error wrapping env.ErrNotPresent if the input is not set.
func (c *Core) Input(name string) (string, error) {
	return env.Lookup(c.env, env.InputPrefix, name)
}

// SetOutput sets an output of the step.
func (c *Core) SetOutput(name, value string) error {
	return c.issueNamed(command.SetOutput, name, value)
}

// ExportVariable sets name in the environment of this process and asks the
// orchestrator to set it for the following steps.
func (c *Core) ExportVariable(name, value string) error {
	if err := c.env.Setenv(name, value); err != nil {
		return err
	}
	return c.issueNamed(command.SetEnv, name, value)
}

// SetSecret registers value as a secret. The orchestrator masks it in the log.
func (c *Core) SetSecret(value string) error {
	return c.issue(command.AddMask, value)
}

// AddPath prepends dir to the PATH of the following steps and appends it to the PATH
// of this process, so child processes started later find executables in dir.
func (c *Core) AddPath(dir string) error {
	if err := c.issue(command.AddPath, dir); err != nil {
		return err
	}
	return env.AppendPath(c.env, dir)
}

// SaveState saves a value for the post step of this action. The post step reads it
// with GetState.
func (c *Core) SaveState(name, value string) error {
	return c.issueNamed(command.SaveState, name, value)
}

// GetState returns a value saved with SaveState, read from STATE_<NAME>.
func (c *Core) GetState(name string) (string, error) {
	return env.Lookup(c.env, env.StatePrefix, name)
}

// IsDebug reports whether step debug logging is enabled.
func (c *Core) IsDebug() bool {
	return env.IsDebug(c.env)
}

// Info writes message as plain output.
func (c *Core) Info(message string) error {
	return c.write(message + "\n")
}
