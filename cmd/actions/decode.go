package main

import (
	"encoding/json"
	"io"

	"actionstoolkit/pkg/command"
)

type decodedProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type decodedLine struct {
	Command    string            `json:"command,omitempty"`
	Properties []decodedProperty `json:"properties,omitempty"`
	Payload    *string           `json:"payload,omitempty"`
	Text       *string           `json:"text,omitempty"`
}

func decode(r io.Reader, w io.Writer, all bool) error {
	enc := json.NewEncoder(w)
	for line := range command.NewReader(r).Channel() {
		if line.Error != nil {
			return line.Error
		}

		var out decodedLine
		switch {
		case line.Command != nil:
			out.Command = line.Command.Name
			for _, p := range line.Command.Properties {
				out.Properties = append(out.Properties, decodedProperty{Key: p.Key, Value: p.Value})
			}
			out.Payload = &line.Command.Payload
		case all:
			out.Text = &line.Raw
		default:
			continue
		}

		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
