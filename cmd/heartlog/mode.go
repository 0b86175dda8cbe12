package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// mode is a tri-state auto|on|off switch used by --ui and the color setting.
type mode string

const (
	modeAuto mode = "auto"
	modeOn   mode = "on"
	modeOff  mode = "off"
)

func readMode(name, value string) (mode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (expected auto|on|off)", name, value)
	}
}

// enabled resolves auto against w: only a terminal file qualifies.
func (m mode) enabled(w io.Writer) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}
