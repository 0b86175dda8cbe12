package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is a settings file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid settings format %q (expected toml|json)", s)
	}
}

// FileName returns the default file name for f.
func (f Format) FileName() string {
	if f == FormatJSON {
		return JSONFile
	}
	return TOMLFile
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s Settings, f Format) error {
	switch f {
	case FormatTOML:
		return encodeTOML(w, s)
	case FormatJSON:
		return encodeJSON(w, s)
	default:
		return fmt.Errorf("unknown settings format %q", f)
	}
}

// WriteFile creates path with s encoded as f. An existing file is never
// overwritten.
func WriteFile(path string, s Settings, f Format) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Encode(file, s, f)
}
