package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

var outputMap = map[string]func(v any) ([]byte, error){
	"json": func(v any) ([]byte, error) {
		return json.MarshalIndent(v, "", "    ")
	},
	"yaml": func(v any) ([]byte, error) {
		return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	},
}

func render(w io.Writer, format string, v any) error {
	marshal, ok := outputMap[format]
	if !ok {
		return fmt.Errorf("wrong output format %q", format)
	}

	b, err := marshal(v)
	if err != nil {
		return fmt.Errorf("error marshalling the output: %w", err)
	}

	if _, err := w.Write(b); err != nil {
		return err
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		_, err = w.Write([]byte("\n"))
	}
	return err
}
