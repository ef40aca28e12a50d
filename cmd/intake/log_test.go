package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func parseLogFlags(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "log"}
	registerLogFlags(cmd)
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return cmd
}

func TestEventFromArgs_Minimal(t *testing.T) {
	cmd := parseLogFlags(t, "--user", "alice")
	before := time.Now().UTC().Add(-time.Second)

	ev, err := eventFromArgs(cmd, []string{"apple", "150", "g"})
	if err != nil {
		t.Fatalf("eventFromArgs: %v", err)
	}
	if ev.Item != "apple" || ev.Unit != "g" || ev.UserID != "alice" {
		t.Errorf("got item=%q unit=%q user=%q", ev.Item, ev.Unit, ev.UserID)
	}
	if ev.Amount == nil || *ev.Amount != 150 {
		t.Errorf("got amount=%v, want 150", ev.Amount)
	}
	if ev.Calories != nil {
		t.Errorf("calories should be absent, got %v", *ev.Calories)
	}
	if ev.Notes != nil {
		t.Errorf("notes should be absent, got %q", *ev.Notes)
	}
	if ev.ID != "" || ev.Source != "" {
		t.Errorf("id and source should be left for the server, got id=%q source=%q", ev.ID, ev.Source)
	}

	at, err := time.Parse(time.RFC3339, ev.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q is not RFC3339: %v", ev.Timestamp, err)
	}
	if at.Before(before.Truncate(time.Second)) {
		t.Errorf("timestamp %s is earlier than the call", ev.Timestamp)
	}
}

func TestEventFromArgs_AllFlags(t *testing.T) {
	cmd := parseLogFlags(t,
		"--user", "bob",
		"--calories", "0",
		"--notes", "",
		"--at", "2026-10-14T08:30:00Z",
		"--source", "scale",
		"--id", "ev-fixed",
	)

	ev, err := eventFromArgs(cmd, []string{"coffee", "1.5", "serving"})
	if err != nil {
		t.Fatalf("eventFromArgs: %v", err)
	}
	if ev.Calories == nil || *ev.Calories != 0 {
		t.Errorf("explicit zero calories should be kept, got %v", ev.Calories)
	}
	if ev.Notes == nil || *ev.Notes != "" {
		t.Errorf("explicit empty notes should be kept, got %v", ev.Notes)
	}
	if ev.Timestamp != "2026-10-14T08:30:00Z" {
		t.Errorf("got timestamp=%q", ev.Timestamp)
	}
	if ev.Source != "scale" || ev.ID != "ev-fixed" {
		t.Errorf("got source=%q id=%q", ev.Source, ev.ID)
	}
	if *ev.Amount != 1.5 {
		t.Errorf("got amount=%v, want 1.5", *ev.Amount)
	}
}

func TestEventFromArgs_BadAmount(t *testing.T) {
	cmd := parseLogFlags(t, "--user", "alice")
	_, err := eventFromArgs(cmd, []string{"apple", "lots", "g"})
	if err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
	if !strings.Contains(err.Error(), "lots") {
		t.Errorf("error %q should name the bad value", err)
	}
}

func TestParseEventsFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr string
	}{
		{
			name:  "array",
			input: `[{"item":"apple","amount":1,"unit":"piece","timestamp":"2026-10-14T08:00:00Z"},{"item":"tea","amount":250,"unit":"ml","timestamp":"2026-10-14T09:00:00Z"}]`,
			want:  2,
		},
		{
			name:  "wrapped object",
			input: "  \n{\"events\": [{\"item\":\"apple\",\"amount\":1,\"unit\":\"piece\"}]}\n",
			want:  1,
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  0,
		},
		{name: "empty input", input: "   ", wantErr: "empty"},
		{name: "object without events", input: `{"items": []}`, wantErr: `no "events"`},
		{name: "scalar", input: `42`, wantErr: "JSON array"},
		{name: "malformed", input: `[{"item":`, wantErr: "parsing events"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEventsFile([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got err=%v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEventsFile: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReadInput_Stdin(t *testing.T) {
	data, err := readInput(strings.NewReader("[]"), "-")
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("got %q, want %q", data, "[]")
	}
}

func TestReadInput_MissingFile(t *testing.T) {
	if _, err := readInput(nil, t.TempDir()+"/missing.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
