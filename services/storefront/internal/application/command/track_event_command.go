package command

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services/storefront/internal/domain/entities"
)

const (
	MaxBatchSize     = 500
	UnknownSessionID = "unknown"
)

var (
	ErrInvalidEventType = errors.New("invalid eventType")
	ErrInvalidProductID = errors.New("invalid productId")
	ErrNoEvents         = errors.New("events must not be empty")
	ErrBatchTooLarge    = fmt.Errorf("batch exceeds %d events", MaxBatchSize)
)

// TrackEventCommand is one event as sent by the browser tracker.
type TrackEventCommand struct {
	EventType string                 `json:"eventType"`
	ProductID string                 `json:"productId,omitempty"`
	SessionID string                 `json:"sessionId,omitempty"`
	Metadata  entities.EventMetadata `json:"metadata"`
	Timestamp *time.Time             `json:"timestamp,omitempty"`
}

type TrackBatchCommand struct {
	Events []TrackEventCommand `json:"events"`
}

// RequestContext carries what the transport knows about the caller.
type RequestContext struct {
	UserID          *primitive.ObjectID
	SessionHeader   string
	AttributionHint string
	DeviceHint      string
}

type TrackEventCommandResult struct {
	ID        string             `json:"id"`
	EventType entities.EventType `json:"eventType"`
}

type TrackBatchCommandResult struct {
	Count int `json:"count"`
}

// ToEvent validates the command and builds the document to persist. Batch
// events keep their client timestamp; single events are stamped on insert.
func (c TrackEventCommand) ToEvent(rc RequestContext, keepTimestamp bool) (*entities.BehaviorEvent, error) {
	eventType := entities.EventType(c.EventType)
	if !eventType.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidEventType, c.EventType)
	}

	event := &entities.BehaviorEvent{
		User:               rc.UserID,
		SessionID:          firstNonEmpty(c.SessionID, rc.SessionHeader, UnknownSessionID),
		EventType:          eventType,
		Metadata:           c.Metadata,
		AttributionChannel: entities.ChannelOrDefault(rc.AttributionHint),
		DeviceType:         entities.DeviceOrDefault(rc.DeviceHint),
	}

	if c.ProductID != "" {
		id, err := primitive.ObjectIDFromHex(c.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidProductID, c.ProductID)
		}
		event.Product = &id
	}

	if keepTimestamp && c.Timestamp != nil {
		event.Timestamp = c.Timestamp.UTC()
	}
	return event, nil
}

// Validate checks batch size limits.
func (c TrackBatchCommand) Validate() error {
	switch {
	case len(c.Events) == 0:
		return ErrNoEvents
	case len(c.Events) > MaxBatchSize:
		return ErrBatchTooLarge
	}
	return nil
}

// IsValidationError reports whether err was caused by bad client input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEventType) ||
		errors.Is(err, ErrInvalidProductID) ||
		errors.Is(err, ErrNoEvents) ||
		errors.Is(err, ErrBatchTooLarge)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
