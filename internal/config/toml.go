package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

func loadTOML(path string) (Settings, error) {
	var s Settings
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("LogParameters") {
		return Settings{}, fmt.Errorf("%s: missing [LogParameters]", path)
	}
	for _, key := range requiredKeys {
		if !meta.IsDefined("LogParameters", key) {
			return Settings{}, missingKey(path, key)
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return s, nil
}

func encodeTOML(w io.Writer, s Settings) error {
	if _, err := io.WriteString(w, "# heartlog settings\n"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(s)
}
