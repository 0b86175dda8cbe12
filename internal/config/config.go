// Package config loads the heartlog settings file.
//
// Two encodings are accepted. The JSON form keeps the historical log.json
// layout:
//
//	{"LogParameters": {"print_function": true, "print_loop": false,
//	                   "print_if_statement": false, "print_time_complexity": true}}
//
// The TOML form uses the same table and key names:
//
//	[LogParameters]
//	print_function = true
//	print_loop = false
//	print_if_statement = false
//	print_time_complexity = true
//
//	[Output]
//	log_dir = "logs"
//	color = "auto"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"heartlog/internal/trace"
)

// Default settings file names, in lookup order.
const (
	TOMLFile = "heartlog.toml"
	JSONFile = "log.json"
)

// DefaultLogDir is where log files go when the settings do not say.
const DefaultLogDir = "logs"

// ErrMissingKey is returned when a required LogParameters key is absent.
var ErrMissingKey = errors.New("missing required key")

// Settings is the loaded configuration.
type Settings struct {
	LogParameters LogParameters `toml:"LogParameters" json:"LogParameters"`
	Output        Output        `toml:"Output" json:"Output"`
}

// LogParameters controls console echoing. Every record is persisted
// regardless of these flags.
type LogParameters struct {
	PrintFunction       bool `toml:"print_function" json:"print_function"`
	PrintLoop           bool `toml:"print_loop" json:"print_loop"`
	PrintIfStatement    bool `toml:"print_if_statement" json:"print_if_statement"`
	PrintTimeComplexity bool `toml:"print_time_complexity" json:"print_time_complexity"`
}

// Output controls the log sink and console rendering. All keys are optional.
type Output struct {
	LogDir     string `toml:"log_dir" json:"log_dir"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	Compress   bool   `toml:"compress" json:"compress"`
	Color      string `toml:"color" json:"color"`
}

// requiredKeys lists the LogParameters keys every settings file must define.
var requiredKeys = []string{
	"print_function",
	"print_loop",
	"print_if_statement",
	"print_time_complexity",
}

// Default returns the settings written by `heartlog init`.
func Default() Settings {
	return Settings{
		LogParameters: LogParameters{
			PrintFunction:       true,
			PrintLoop:           true,
			PrintIfStatement:    false,
			PrintTimeComplexity: true,
		},
		Output: Output{
			LogDir: DefaultLogDir,
			Color:  "auto",
		},
	}
}

// PrintOptions converts the print flags into the emitter filter.
func (s Settings) PrintOptions() trace.PrintOptions {
	return trace.PrintOptions{
		Functions:    s.LogParameters.PrintFunction,
		Iterations:   s.LogParameters.PrintLoop,
		IfStatements: s.LogParameters.PrintIfStatement,
		Complexity:   s.LogParameters.PrintTimeComplexity,
	}
}

// Find returns the first default settings file present in dir.
func Find(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	for _, name := range []string{TOMLFile, JSONFile} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no %s or %s found in %s", TOMLFile, JSONFile, dir)
}

// Load reads the settings file at path. The encoding is chosen by extension.
func Load(path string) (Settings, error) {
	var (
		s   Settings
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		s, err = loadTOML(path)
	case ".json":
		s, err = loadJSON(path)
	default:
		return Settings{}, fmt.Errorf("%s: unsupported settings format %q (expected .toml or .json)", path, ext)
	}
	if err != nil {
		return Settings{}, err
	}
	if err := s.normalize(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) normalize() error {
	if strings.TrimSpace(s.Output.LogDir) == "" {
		s.Output.LogDir = DefaultLogDir
	}
	switch c := strings.ToLower(strings.TrimSpace(s.Output.Color)); c {
	case "", "auto":
		s.Output.Color = "auto"
	case "on", "off":
		s.Output.Color = c
	default:
		return fmt.Errorf("invalid [Output].color %q (expected auto|on|off)", s.Output.Color)
	}
	if s.Output.MaxSizeMB < 0 {
		return fmt.Errorf("[Output].max_size_mb must not be negative, got %d", s.Output.MaxSizeMB)
	}
	if s.Output.MaxBackups < 0 {
		return fmt.Errorf("[Output].max_backups must not be negative, got %d", s.Output.MaxBackups)
	}
	return nil
}

func missingKey(path, key string) error {
	return fmt.Errorf("%s: %w [LogParameters].%s", path, ErrMissingKey, key)
}
