package core

import "actionstoolkit/pkg/command"

// LogMessage writes an annotation without location. The message is data-escaped.
func (c *Core) LogMessage(level command.Level, message string) error {
	return c.issue(string(level), message)
}

func (c *Core) Debug(message string) error {
	return c.LogMessage(command.LevelDebug, message)
}

func (c *Core) Error(message string) error {
	return c.LogMessage(command.LevelError, message)
}

func (c *Core) Warning(message string) error {
	return c.LogMessage(command.LevelWarning, message)
}

// Log writes an annotation with optional location. Unlike LogMessage the message is
// written as it is.
func (c *Core) Log(level command.Level, l command.Log) error {
	return c.write(command.FormatLog(level, l))
}

func (c *Core) LogDebug(l command.Log) error {
	return c.Log(command.LevelDebug, l)
}

func (c *Core) LogError(l command.Log) error {
	return c.Log(command.LevelError, l)
}

func (c *Core) LogWarning(l command.Log) error {
	return c.Log(command.LevelWarning, l)
}
