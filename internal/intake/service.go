// Package intake implements the consumption event operations independent of
// any transport: ingestion, listing, and calorie aggregation.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/intake/internal/events"
	"github.com/alfredjeanlab/intake/internal/idgen"
	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/store"
)

// DefaultOwner is the user_id assigned to events submitted without one when
// no other owner is configured.
const DefaultOwner = "default-user"

// Service runs the three operations against a Store.
type Service struct {
	store        store.Store
	publisher    events.Publisher
	defaultOwner string
	logger       *slog.Logger

	newID func() (string, error)
}

// Option customizes a Service.
type Option func(*Service)

// WithDefaultOwner sets the user_id applied to events that omit it.
func WithDefaultOwner(owner string) Option {
	return func(s *Service) {
		if owner != "" {
			s.defaultOwner = owner
		}
	}
}

// WithLogger sets the logger used for ingestion and storage messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService returns a Service backed by the given store and publisher.
// A nil publisher disables notifications.
func NewService(s store.Store, p events.Publisher, opts ...Option) *Service {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	svc := &Service{
		store:        s,
		publisher:    p,
		defaultOwner: DefaultOwner,
		logger:       slog.Default(),
		newID:        idgen.EventID,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// DefaultOwnerID returns the owner assigned to events without a user_id.
func (s *Service) DefaultOwnerID() string {
	return s.defaultOwner
}

// LogConsumption validates and upserts a batch of events. The batch is all or
// nothing: the first invalid event or failed write rolls back every write in
// the batch. SavedCount is the number of events submitted.
func (s *Service) LogConsumption(ctx context.Context, req *LogConsumptionRequest) (*LogConsumptionResponse, error) {
	if req == nil || len(req.Events) == 0 {
		return &LogConsumptionResponse{SavedCount: 0}, nil
	}

	saved := make([]*model.Event, 0, len(req.Events))
	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		for i, raw := range req.Events {
			e, err := s.prepare(i, raw)
			if err != nil {
				return err
			}
			if err := tx.UpsertEvent(ctx, e); err != nil {
				return &StorageError{Op: "upsert event " + e.ID, Err: err}
			}
			saved = append(saved, e)
		}
		return nil
	})
	if err != nil {
		var ie *model.InvalidEventError
		var se *StorageError
		switch {
		case errors.As(err, &ie):
			s.logger.Info("rejected consumption batch", "events", len(req.Events), "index", ie.Index, "field", ie.Field)
		case errors.As(err, &se):
			s.logger.Error("consumption batch rolled back", "events", len(req.Events), "error", err)
		default:
			// Begin or commit failed.
			err = &StorageError{Op: "log consumption", Err: err}
			s.logger.Error("consumption batch failed", "events", len(req.Events), "error", err)
		}
		return nil, err
	}

	s.logger.Info("logged consumption", "events", len(saved))
	for _, e := range saved {
		if err := s.publisher.Publish(ctx, events.TopicConsumptionLogged, events.ConsumptionLogged{Event: e}); err != nil {
			s.logger.Warn("failed to publish event", "topic", events.TopicConsumptionLogged, "event_id", e.ID, "error", err)
		}
	}

	return &LogConsumptionResponse{SavedCount: len(req.Events)}, nil
}

// prepare applies defaults to a copy of raw and validates it.
func (s *Service) prepare(index int, raw *model.RawEvent) (*model.Event, error) {
	if raw == nil {
		return nil, &model.InvalidEventError{Index: index, Field: "event", Message: "is required"}
	}
	r := *raw
	if r.ID == "" {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("assign event id: %w", err)
		}
		r.ID = id
	}
	if r.UserID == "" {
		r.UserID = s.defaultOwner
	}
	if r.Source == "" {
		r.Source = model.DefaultSource
	}

	e, err := model.ValidateEvent(&r)
	if err != nil {
		var ie *model.InvalidEventError
		if errors.As(err, &ie) {
			ie.Index = index
		}
		return nil, err
	}
	return e, nil
}

// ListConsumption returns events matching the request, oldest first.
func (s *Service) ListConsumption(ctx context.Context, req *QueryRequest) (*ListConsumptionResponse, error) {
	evts, err := s.scan(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ListConsumptionResponse{Events: evts}, nil
}

// SummarizeIntake totals calories over the events ListConsumption would return.
func (s *Service) SummarizeIntake(ctx context.Context, req *QueryRequest) (*SummarizeIntakeResponse, error) {
	evts, err := s.scan(ctx, req)
	if err != nil {
		return nil, err
	}
	summary := model.Summarize(evts)
	return &summary, nil
}

func (s *Service) scan(ctx context.Context, req *QueryRequest) ([]*model.Event, error) {
	var filter model.EventFilter
	if req != nil {
		filter = req.Filter()
	}
	evts, err := s.store.ScanEvents(ctx, filter)
	if err != nil {
		err = &StorageError{Op: "scan events", Err: err}
		s.logger.Error("scan failed", "user_id", filter.Owner, "from", filter.FromDate, "to", filter.ToDate, "error", err)
		return nil, err
	}
	if evts == nil {
		evts = []*model.Event{}
	}
	return evts, nil
}
