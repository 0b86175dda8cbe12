package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersionHasDefault(t *testing.T) {
	if !strings.HasSuffix(Version, "-dev") {
		t.Fatalf("Version = %q, want a -dev build", Version)
	}
	if strings.Contains(Version, "\x1b[") {
		t.Fatalf("Version = %q, want plain text", Version)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()

	color.NoColor = false
	got := Colored("1.2.3-rc1")
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("Colored = %q, want coloured segments and a plain suffix", got)
	}
	for _, v := range []string{"dev", "1.2", "1.x.3", "1..3"} {
		if got := Colored(v); got != v {
			t.Fatalf("Colored(%q) = %q, want it unchanged", v, got)
		}
	}

	color.NoColor = true
	if got := Colored("1.2.3"); got != "1.2.3" {
		t.Fatalf("Colored with NoColor = %q, want %q", got, "1.2.3")
	}
}
