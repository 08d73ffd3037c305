package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront/services/storefront/internal/application/command"
	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

const TrackedSubject = "behavior.tracked"

// counterForEvent maps event types to the product counter they bump.
var counterForEvent = map[entities.EventType]string{
	entities.EventProductView: entities.FieldViewCount,
	entities.EventAddToCart:   entities.FieldAddToCartCount,
}

// Publisher is satisfied by the NATS publisher in libs/go/messaging/nats.
type Publisher interface {
	Publish(subject string, payload any) error
}

// TrackedNotification is published after events are stored.
type TrackedNotification struct {
	Count      int                  `json:"count"`
	EventTypes []entities.EventType `json:"eventTypes"`
	SessionID  string               `json:"sessionId"`
}

type TrackingService struct {
	events    repositories.EventRepository
	products  repositories.ProductRepository
	publisher Publisher
	logger    *zap.Logger
}

// NewTrackingService builds the service; publisher may be nil when NATS is not configured.
func NewTrackingService(
	events repositories.EventRepository,
	products repositories.ProductRepository,
	publisher Publisher,
	logger *zap.Logger,
) *TrackingService {
	return &TrackingService{
		events:    events,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *TrackingService) TrackEvent(ctx context.Context, cmd command.TrackEventCommand, rc command.RequestContext) (*command.TrackEventCommandResult, error) {
	event, err := cmd.ToEvent(rc, false)
	if err != nil {
		return nil, err
	}

	id, err := s.events.Insert(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("track event: %w", err)
	}

	if err := s.bumpCounter(ctx, event); err != nil {
		return nil, fmt.Errorf("track event: %w", err)
	}

	s.notify([]*entities.BehaviorEvent{event})
	return &command.TrackEventCommandResult{ID: id.Hex(), EventType: event.EventType}, nil
}

// TrackBatch validates every event before storing any of them.
func (s *TrackingService) TrackBatch(ctx context.Context, cmd command.TrackBatchCommand, rc command.RequestContext) (*command.TrackBatchCommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	events := make([]*entities.BehaviorEvent, 0, len(cmd.Events))
	for i, c := range cmd.Events {
		event, err := c.ToEvent(rc, true)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, event)
	}

	n, err := s.events.InsertMany(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("track batch: %w", err)
	}

	s.notify(events)
	return &command.TrackBatchCommandResult{Count: n}, nil
}

func (s *TrackingService) bumpCounter(ctx context.Context, event *entities.BehaviorEvent) error {
	field, ok := counterForEvent[event.EventType]
	if !ok || event.Product == nil {
		return nil
	}
	return s.products.IncrementCounter(ctx, *event.Product, field)
}

// notify publishes a best-effort notification; failures are only logged.
func (s *TrackingService) notify(events []*entities.BehaviorEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}

	seen := make(map[entities.EventType]struct{})
	types := make([]entities.EventType, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.EventType]; ok {
			continue
		}
		seen[e.EventType] = struct{}{}
		types = append(types, e.EventType)
	}

	msg := TrackedNotification{
		Count:      len(events),
		EventTypes: types,
		SessionID:  events[0].SessionID,
	}
	if err := s.publisher.Publish(TrackedSubject, msg); err != nil {
		s.logger.Warn("publish tracked notification failed", zap.String("subject", TrackedSubject), zap.Error(err))
	}
}

// UserIDFromClaim converts a token subject into the document id; non-hex ids are ignored.
func UserIDFromClaim(userID string) *primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	return &id
}
