package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List consumption events in timestamp order",
	GroupID: "consumption",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := readQueryFlags(cmd)

		resp, err := intakeClient.ListConsumption(cmd.Context(), q.request())
		if err != nil {
			return fmt.Errorf("listing consumption: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		printEventsTable(cmd.OutOrStdout(), resp.Events)
		return nil
	},
}

func init() {
	addQueryFlags(listCmd)
}
