package action

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"actionstoolkit/pkg/core"
	"actionstoolkit/pkg/env"
)

// Metadata represents an action.yml file.
type Metadata struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Inputs      map[string]Input  `yaml:"inputs"`
	Outputs     map[string]Output `yaml:"outputs"`
	Runs        Runs              `yaml:"runs"`
}

// Input is an input declared by an action.
type Input struct {
	Description string  `yaml:"description"`
	Required    bool    `yaml:"required"`
	Default     *string `yaml:"default"`
}

// Output is an output declared by an action.
type Output struct {
	Description string `yaml:"description"`
}

// Runs describes how the orchestrator starts the action.
type Runs struct {
	Using string `yaml:"using"`
	Main  string `yaml:"main"`
	Post  string `yaml:"post,omitempty"`
}

// Parse decodes an action.yml.
func Parse(data []byte) (*Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse action metadata: %w", err)
	}
	return &m, nil
}

// Validate checks the metadata for structural correctness.
func Validate(m *Metadata) []error {
	var errs []error

	if m.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if m.Description == "" {
		errs = append(errs, errors.New("description is required"))
	}

	for _, name := range sortedKeys(m.Inputs) {
		input := m.Inputs[name]
		if input.Description == "" {
			errs = append(errs, fmt.Errorf("input %q: description is required", name))
		}
		if input.Required && input.Default != nil {
			errs = append(errs, fmt.Errorf("input %q: required input must not have a default", name))
		}
	}
	for _, name := range sortedKeys(m.Outputs) {
		if m.Outputs[name].Description == "" {
			errs = append(errs, fmt.Errorf("output %q: description is required", name))
		}
	}

	switch m.Runs.Using {
	case "node12", "node16", "node20", "composite", "docker":
	case "":
		errs = append(errs, errors.New("runs.using is required"))
	default:
		errs = append(errs, fmt.Errorf("runs.using: unknown runtime %q", m.Runs.Using))
	}

	return errs
}

// Input returns the value of a declared input. A set input wins, even if empty.
// Otherwise the declared default is used. A required input without value is an error.
func (m *Metadata) Input(c *core.Core, name string) (string, error) {
	input, ok := m.Inputs[name]
	if !ok {
		return "", fmt.Errorf("action %q has no input %q", m.Name, name)
	}

	value, err := c.Input(name)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, env.ErrNotPresent) {
		return "", fmt.Errorf("input %q: %w", name, err)
	}

	if input.Default != nil {
		return *input.Default, nil
	}
	if input.Required {
		return "", fmt.Errorf("input %q is required: %w", name, err)
	}
	return "", nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
