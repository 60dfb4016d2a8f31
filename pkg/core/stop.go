package core

import (
	"errors"

	"actionstoolkit/pkg/command"
)

// StopLogging stops command processing, runs body and resumes command processing.
// While body runs, the orchestrator treats every line as plain output, including lines
// which look like workflow commands.
//
// The resume line is written from a deferred call, so it is also written when body
// panics. The panic continues afterwards. body's result is returned as it is.
func StopLogging[T any](c *Core, body func() T) (result T, err error) {
	token := c.newToken()
	if err := c.issue(command.StopCommands, token); err != nil {
		return result, err
	}
	defer func() {
		if resumeErr := c.issue(token, ""); resumeErr != nil && err == nil {
			err = resumeErr
		}
	}()
	return body(), nil
}

// StopCommands is StopLogging for a body that can fail. The error of body and the
// error writing the stop or resume line are joined.
func (c *Core) StopCommands(body func() error) error {
	bodyErr, err := StopLogging(c, body)
	return errors.Join(bodyErr, err)
}
