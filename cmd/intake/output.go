package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/ui"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printEventsTable(w io.Writer, events []*model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, ui.RenderMuted("no events"))
		return
	}

	notesWidth := ui.TerminalWidth() - 90
	if notesWidth < 16 {
		notesWidth = 16
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tTIMESTAMP\tITEM\tAMOUNT\tCALORIES\tSOURCE\tNOTES")
	for _, e := range events {
		notes := ""
		if e.Notes != nil {
			notes = ui.Truncate(*e.Notes, notesWidth)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.UserID,
			e.Timestamp,
			e.Item,
			ui.FormatAmount(e.Amount, e.Unit.String()),
			ui.FormatCalories(e.Calories),
			e.Source,
			notes,
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%s\n", ui.RenderMuted(fmt.Sprintf("%d event(s)", len(events))))
}

func printEventLine(w io.Writer, e *model.Event) {
	line := fmt.Sprintf("%s  %s  %s %s",
		ui.RenderMuted(e.Timestamp),
		ui.RenderAccent(e.UserID),
		e.Item,
		ui.FormatAmount(e.Amount, e.Unit.String()),
	)
	if e.Calories != nil {
		line += "  " + ui.FormatCalories(e.Calories)
	}
	fmt.Fprintln(w, line)
}

func printSummary(w io.Writer, s *model.Summary, req queryFlags) {
	scope := req.describe()
	fmt.Fprintf(w, "Events:    %s\n", ui.FormatNumber(float64(s.EventsCount)))
	fmt.Fprintf(w, "Calories:  %s kcal\n", ui.FormatNumber(s.TotalCalories))
	if scope != "" {
		fmt.Fprintf(w, "Scope:     %s\n", ui.RenderMuted(scope))
	}
}
