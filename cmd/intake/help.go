package main

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/alfredjeanlab/intake/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// "Consumption:", "Flags:", "Global Flags:". Usage stays plain.
	reHelpHeader = regexp.MustCompile(`(?m)^((?:[A-Z][a-z]+ ?)+):[ \t]*$`)

	// An indented subcommand name followed by its short description.
	reHelpCommand = regexp.MustCompile(`(?m)^(  )([a-z][\w-]*)(\s{2,})`)

	// Value type after a flag name, e.g. "--calories float".
	reHelpFlagType = regexp.MustCompile(`(--[\w-]+ )(string|float64|float|int|duration|stringArray)\b`)

	reHelpDefault = regexp.MustCompile(`\(default [^)]*\)`)

	// Example invocations start with "  intake ".
	reHelpExample = regexp.MustCompile(`(?m)^(  )(intake .*)$`)
)

// colorizedHelpFunc renders cobra's usage text and, on a color terminal,
// styles headers, command names, flag types, defaults, and examples.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()

		var buf bytes.Buffer
		desc := cmd.Long
		if desc == "" {
			desc = cmd.Short
		}
		if desc != "" {
			fmt.Fprintf(&buf, "%s\n\n", desc)
		}
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)

		if !ui.ShouldUseColor() {
			fmt.Fprint(out, buf.String())
			return
		}
		fmt.Fprint(out, colorizeHelp(buf.String()))
	}
}

func colorizeHelp(s string) string {
	s = reHelpHeader.ReplaceAllStringFunc(s, func(m string) string {
		if m == "Usage:" {
			return m
		}
		return ui.RenderAccent(m)
	})
	s = reHelpExample.ReplaceAllString(s, "$1"+ui.RenderCommand("$2"))
	s = reHelpCommand.ReplaceAllString(s, "$1"+ui.RenderCommand("$2")+"$3")
	s = reHelpFlagType.ReplaceAllString(s, "$1"+ui.RenderMuted("$2"))
	s = reHelpDefault.ReplaceAllStringFunc(s, ui.RenderMuted)
	return s
}
