package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/alfredjeanlab/intake/internal/ui"
	"github.com/spf13/cobra"
)

var toolCmd = &cobra.Command{
	Use:     "tool",
	Short:   "List or call operations through the generic tool interface",
	GroupID: "system",
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the operations the server exposes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := intakeClient.ListTools(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing tools: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), tools)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, t := range tools {
			fmt.Fprintf(w, "%s\t%s\n", ui.RenderCommand(t.Name), t.Description)
		}
		return w.Flush()
	},
}

var toolCallCmd = &cobra.Command{
	Use:   "call <name> [<json-args>]",
	Short: "Call an operation with raw JSON arguments",
	Example: `  intake tool call summarize_intake '{"user_id":"alice","from":"2026-10-01"}'
  echo '{"events":[]}' | intake tool call log_consumption -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw json.RawMessage
		if len(args) == 2 {
			data := []byte(args[1])
			if args[1] == "-" {
				var err error
				if data, err = readInput(cmd.InOrStdin(), "-"); err != nil {
					return err
				}
			}
			if !json.Valid(data) {
				return fmt.Errorf("arguments are not valid JSON")
			}
			raw = data
		}

		result, err := intakeClient.CallTool(cmd.Context(), args[0], raw)
		if err != nil {
			return fmt.Errorf("calling %s: %w", args[0], err)
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, result, "", "  "); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), string(result))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return nil
	},
}

func init() {
	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolCallCmd)
}
