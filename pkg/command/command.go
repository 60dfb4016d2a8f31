package command

import "strings"

// Command names understood by the orchestrator.
const (
	AddMask      = "add-mask"
	AddPath      = "add-path"
	SetOutput    = "set-output"
	SetEnv       = "set-env"
	SaveState    = "save-state"
	StopCommands = "stop-commands"
)

// Property is a single key=value annotation of a command.
type Property struct {
	Key   string
	Value string
}

// Command is a single workflow command. It is built, encoded and dropped; nothing keeps
// a Command after it was written.
type Command struct {
	Name       string
	Properties []Property // Order is kept when encoding
	Payload    string
}

// Encode formats a command into one protocol line, including the trailing newline.
// Format: "::name key=value,key=value::payload\n"
func Encode(name string, properties []Property, payload string) string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(name)
	if len(properties) > 0 {
		b.WriteByte(' ')
		b.WriteString(formatProperties(properties))
	}
	b.WriteString("::")
	b.WriteString(EscapeData(payload))
	b.WriteByte('\n')
	return b.String()
}

// EncodeNamed formats a command carrying the single property name=key. This is the
// shape of set-output, set-env and save-state.
func EncodeNamed(name, key, value string) string {
	return Encode(name, []Property{{Key: "name", Value: key}}, value)
}

// String returns the encoded line of c.
func (c Command) String() string {
	return Encode(c.Name, c.Properties, c.Payload)
}

// Property returns the value of the first property with the given key.
func (c Command) Property(key string) (string, bool) {
	for _, p := range c.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func formatProperty(p Property) string {
	return p.Key + "=" + EscapeProperty(p.Value)
}

func formatProperties(properties []Property) string {
	parts := make([]string, 0, len(properties))
	for _, p := range properties {
		parts = append(parts, formatProperty(p))
	}
	return strings.Join(parts, ",")
}
