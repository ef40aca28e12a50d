package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <item> <amount> <unit>",
	Short: "Record a consumption event",
	Long: `Record one consumption event, or a batch read from --file.

A batch file holds either a JSON array of events or an object with an
"events" array. Use --file - to read from stdin. A batch is saved all or
nothing.`,
	Example: `  intake log apple 150 g --calories 78
  intake log coffee 1 serving --notes "oat milk" --at 2026-10-14T08:30:00Z
  intake log --file breakfast.json`,
	GroupID: "consumption",
	Args: func(cmd *cobra.Command, args []string) error {
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(3)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var batch []*model.RawEvent
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			batch, err = parseEventsFile(data)
			if err != nil {
				return err
			}
		} else {
			ev, err := eventFromArgs(cmd, args)
			if err != nil {
				return err
			}
			batch = []*model.RawEvent{ev}
		}

		resp, err := intakeClient.LogConsumption(cmd.Context(), batch)
		if err != nil {
			return fmt.Errorf("logging consumption: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d event(s)\n", resp.SavedCount)
		return nil
	},
}

// eventFromArgs builds a single event from positional args and flags.
// Optional fields are set only when their flag was given.
func eventFromArgs(cmd *cobra.Command, args []string) (*model.RawEvent, error) {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: must be a number", args[1])
	}

	at, _ := cmd.Flags().GetString("at")
	source, _ := cmd.Flags().GetString("source")
	id, _ := cmd.Flags().GetString("id")
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = remoteUser()
	}

	ev := &model.RawEvent{
		ID:        id,
		UserID:    user,
		Timestamp: at,
		Item:      args[0],
		Amount:    &amount,
		Unit:      args[2],
		Source:    source,
	}
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if cmd.Flags().Changed("calories") {
		c, _ := cmd.Flags().GetFloat64("calories")
		ev.Calories = &c
	}
	if cmd.Flags().Changed("notes") {
		n, _ := cmd.Flags().GetString("notes")
		ev.Notes = &n
	}
	return ev, nil
}

// parseEventsFile accepts a JSON array of events or {"events": [...]}.
func parseEventsFile(data []byte) ([]*model.RawEvent, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("event file is empty")
	}

	var batch []*model.RawEvent
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parsing events: %w", err)
		}
	case '{':
		var wrapped struct {
			Events []*model.RawEvent `json:"events"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parsing events: %w", err)
		}
		if wrapped.Events == nil {
			return nil, errors.New(`event file object has no "events" array`)
		}
		batch = wrapped.Events
	default:
		return nil, errors.New("event file must hold a JSON array or an object with an \"events\" array")
	}
	return batch, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func init() {
	registerLogFlags(logCmd)
}

func registerLogFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("calories", 0, "caloric value (kcal)")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("at", "", "event timestamp, ISO-8601 (default now, UTC)")
	cmd.Flags().String("source", "", "where the record came from (server default \"manual\")")
	cmd.Flags().String("id", "", "event id; reusing an id replaces the stored event")
	cmd.Flags().String("user", "", "user_id (defaults to the active remote's user, then the server default)")
	cmd.Flags().StringP("file", "f", "", "read a batch of events from a JSON file (- for stdin)")
}
