package main

import (
	"strings"

	"github.com/alfredjeanlab/intake/internal/intake"
	"github.com/spf13/cobra"
)

// queryFlags are the filter flags shared by list and summary.
type queryFlags struct {
	User string
	From string
	To   string
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "only events for this user_id (defaults to the active remote's user)")
	cmd.Flags().String("from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "inclusive end date (YYYY-MM-DD)")
}

func readQueryFlags(cmd *cobra.Command) queryFlags {
	user, _ := cmd.Flags().GetString("user")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if user == "" {
		user = remoteUser()
	}
	return queryFlags{User: user, From: from, To: to}
}

func (q queryFlags) request() *intake.QueryRequest {
	return &intake.QueryRequest{UserID: q.User, From: q.From, To: q.To}
}

func (q queryFlags) describe() string {
	var parts []string
	if q.User != "" {
		parts = append(parts, "user "+q.User)
	}
	if q.From != "" {
		parts = append(parts, "from "+q.From)
	}
	if q.To != "" {
		parts = append(parts, "to "+q.To)
	}
	return strings.Join(parts, ", ")
}

// remoteUser is the user configured on the active remote, if any.
func remoteUser() string {
	if r, ok := activeRemote(); ok {
		return r.User
	}
	return ""
}
