package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotCommand is returned by Parse for lines which are plain output.
var ErrNotCommand = errors.New("not a workflow command")

// Parse decodes one protocol line. The trailing newline is optional. Property values
// and the payload are unescaped.
func Parse(line string) (Command, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	rest, ok := strings.CutPrefix(line, "::")
	if !ok {
		return Command{}, ErrNotCommand
	}
	head, payload, ok := strings.Cut(rest, "::")
	if !ok {
		return Command{}, ErrNotCommand
	}

	name, props, hasProps := strings.Cut(head, " ")
	if name == "" {
		return Command{}, fmt.Errorf("%w: empty command name", ErrNotCommand)
	}

	cmd := Command{
		Name:    name,
		Payload: UnescapeData(payload),
	}
	if !hasProps {
		return cmd, nil
	}
	for _, part := range strings.Split(props, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			return Command{}, fmt.Errorf("%w: malformed property %q", ErrNotCommand, part)
		}
		cmd.Properties = append(cmd.Properties, Property{Key: key, Value: UnescapeProperty(value)})
	}
	return cmd, nil
}

// Line is one line of process output.
type Line struct {
	Raw     string   // The line without its trailing newline
	Command *Command // nil if the line is plain output
	Error   error
}

// Reader decodes process output line by line the way the orchestrator sees it: lines
// between stop-commands and the matching resume token are plain output.
type Reader struct {
	reader    *bufio.Reader
	stopToken string
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// Stopped reports whether command processing is currently stopped.
func (r *Reader) Stopped() bool {
	return r.stopToken != ""
}

// Next returns the next line. It returns io.EOF after the last line.
func (r *Reader) Next() (Line, error) {
	raw, err := r.reader.ReadString('\n')
	if err != nil && (err != io.EOF || raw == "") {
		return Line{}, err
	}
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")

	line := Line{Raw: raw}
	cmd, err := Parse(raw)
	if err != nil {
		return line, nil
	}

	switch {
	case r.stopToken != "":
		if cmd.Name != r.stopToken {
			return line, nil
		}
		r.stopToken = ""
	case cmd.Name == StopCommands:
		r.stopToken = cmd.Payload
	}

	line.Command = &cmd
	return line, nil
}

// Channel returns a channel which emits all remaining lines. A read error is sent as
// the last Line, with Error set.
func (r *Reader) Channel() <-chan Line {
	channel := make(chan Line)
	go func() {
		defer close(channel)
		for {
			line, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				channel <- Line{Error: fmt.Errorf("reading line: %w", err)}
				return
			}
			channel <- line
		}
	}()
	return channel
}

// Commands reads everything and returns the commands the orchestrator would process.
func (r *Reader) Commands() ([]Command, error) {
	var cmds []Command
	for line := range r.Channel() {
		if line.Error != nil {
			return cmds, line.Error
		}
		if line.Command != nil {
			cmds = append(cmds, *line.Command)
		}
	}
	return cmds, nil
}
