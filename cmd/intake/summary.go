package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Sum calories over matching events",
	GroupID: "consumption",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := readQueryFlags(cmd)

		resp, err := intakeClient.SummarizeIntake(cmd.Context(), q.request())
		if err != nil {
			return fmt.Errorf("summarizing intake: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		printSummary(cmd.OutOrStdout(), resp, q)
		return nil
	},
}

func init() {
	addQueryFlags(summaryCmd)
}
