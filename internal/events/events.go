// Package events publishes notifications about saved consumption events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/intake/internal/model"
)

// Subject constants.
const (
	// SubjectAll matches every subject this service publishes on.
	SubjectAll = "intake.>"

	// TopicConsumptionLogged is published once per event after its batch commits.
	TopicConsumptionLogged = "intake.consumption.logged"
)

// ConsumptionLogged is the payload of TopicConsumptionLogged.
type ConsumptionLogged struct {
	Event *model.Event `json:"event"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives raw payloads from the event bus. The returned channel
// is closed once ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, subject string) (<-chan []byte, error)
	Close() error
}

// DecodeConsumptionLogged parses a TopicConsumptionLogged payload.
func DecodeConsumptionLogged(data []byte) (*ConsumptionLogged, error) {
	var ev ConsumptionLogged
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decoding consumption logged event: %w", err)
	}
	if ev.Event == nil {
		return nil, fmt.Errorf("decoding consumption logged event: missing event")
	}
	return &ev, nil
}
