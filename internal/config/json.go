package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// jsonDocument mirrors Settings with pointers so absent keys are detectable.
type jsonDocument struct {
	LogParameters *struct {
		PrintFunction       *bool `json:"print_function"`
		PrintLoop           *bool `json:"print_loop"`
		PrintIfStatement    *bool `json:"print_if_statement"`
		PrintTimeComplexity *bool `json:"print_time_complexity"`
	} `json:"LogParameters"`
	Output *Output `json:"Output"`
}

func loadJSON(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	var doc jsonDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse JSON: %w", path, err)
	}
	if doc.LogParameters == nil {
		return Settings{}, fmt.Errorf("%s: missing LogParameters", path)
	}
	p := doc.LogParameters
	fields := []struct {
		key string
		val *bool
	}{
		{requiredKeys[0], p.PrintFunction},
		{requiredKeys[1], p.PrintLoop},
		{requiredKeys[2], p.PrintIfStatement},
		{requiredKeys[3], p.PrintTimeComplexity},
	}
	for _, f := range fields {
		if f.val == nil {
			return Settings{}, missingKey(path, f.key)
		}
	}
	s := Settings{
		LogParameters: LogParameters{
			PrintFunction:       *p.PrintFunction,
			PrintLoop:           *p.PrintLoop,
			PrintIfStatement:    *p.PrintIfStatement,
			PrintTimeComplexity: *p.PrintTimeComplexity,
		},
	}
	if doc.Output != nil {
		s.Output = *doc.Output
	}
	return s, nil
}

func encodeJSON(w io.Writer, s Settings) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
