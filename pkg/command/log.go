package command

import "strconv"

// Level is the severity of an annotation.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Log is an annotation with an optional source location. Nil fields are omitted.
type Log struct {
	Message string
	File    *string
	Line    *uint
	Col     *uint
}

// Message returns a Log without location.
func Message(message string) Log {
	return Log{Message: message}
}

// At returns a copy of l located at file:line:col.
func (l Log) At(file string, line, col uint) Log {
	l.File = &file
	l.Line = &line
	l.Col = &col
	return l
}

// HasLocation reports whether any of file, line or col is set.
func (l Log) HasLocation() bool {
	return l.File != nil || l.Line != nil || l.Col != nil
}

// FormatLog formats l as a command line of the given level.
//
// The message is written verbatim, it is not data-escaped. Use Encode (or
// core.Core.LogMessage) for the escaped form of a message without location.
func FormatLog(level Level, l Log) string {
	if !l.HasLocation() {
		return "::" + string(level) + "::" + l.Message + "\n"
	}

	var props []Property
	if l.File != nil {
		props = append(props, Property{Key: "file", Value: *l.File})
	}
	if l.Line != nil {
		props = append(props, Property{Key: "line", Value: strconv.FormatUint(uint64(*l.Line), 10)})
	}
	if l.Col != nil {
		props = append(props, Property{Key: "col", Value: strconv.FormatUint(uint64(*l.Col), 10)})
	}

	return "::" + string(level) + " " + formatProperties(props) + "::" + l.Message + "\n"
}
