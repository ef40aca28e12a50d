package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/store"
)

// Record types written by ExportJSONL.
const (
	TypeHeader = "header"
	TypeEvent  = "event"
)

// Header is the first JSONL record written by ExportJSONL.
type Header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	EventCount int       `json:"event_count"`
	UserCount  int       `json:"user_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ExportJSONL writes every event in the store as JSONL to w, oldest first.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	evts, err := s.ScanEvents(ctx, model.EventFilter{})
	if err != nil {
		return fmt.Errorf("scan events: %w", err)
	}

	users := make(map[string]struct{})
	for _, e := range evts {
		users[e.UserID] = struct{}{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(Header{
		Version:    "1",
		Type:       TypeHeader,
		Timestamp:  time.Now().UTC(),
		EventCount: len(evts),
		UserCount:  len(users),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, e := range evts {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
		if err := enc.Encode(record{Type: TypeEvent, Data: data}); err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
	}

	return nil
}

// ReadJSONL parses an export produced by ExportJSONL. Records of unknown type
// are skipped. The events are returned as raw events so they can be fed back
// through validation.
func ReadJSONL(r io.Reader) (*Header, []*model.RawEvent, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var hdr *Header
	var evts []*model.RawEvent
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		if hdr == nil {
			var h Header
			if err := json.Unmarshal(raw, &h); err != nil {
				return nil, nil, fmt.Errorf("line %d: decode header: %w", line, err)
			}
			if h.Type != TypeHeader {
				return nil, nil, fmt.Errorf("line %d: expected header record, got %q", line, h.Type)
			}
			hdr = &h
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, nil, fmt.Errorf("line %d: decode record: %w", line, err)
		}
		if rec.Type != TypeEvent {
			continue
		}
		var e model.RawEvent
		if err := json.Unmarshal(rec.Data, &e); err != nil {
			return nil, nil, fmt.Errorf("line %d: decode event: %w", line, err)
		}
		evts = append(evts, &e)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read export: %w", err)
	}
	if hdr == nil {
		return nil, nil, fmt.Errorf("export is empty")
	}
	return hdr, evts, nil
}
