package main

import (
	"strings"
	"testing"
)

func TestColorizeHelp_PreservesText(t *testing.T) {
	in := `Record one consumption event

Usage:
  intake log <item> <amount> <unit> [flags]

Flags:
      --at string   event timestamp (default "now")
`
	out := colorizeHelp(in)
	for _, want := range []string{"Usage:", "intake log", "--at", "string", `(default "now")`} {
		if !strings.Contains(out, want) {
			t.Errorf("colorized help lost %q:\n%s", want, out)
		}
	}
}
