package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

type EventRepo struct {
	collection Collection
}

func NewEventRepo(db *mongo.Database) *EventRepo {
	return NewEventRepoWithCollection(db.Collection(entities.BehaviorEventCollection))
}

func NewEventRepoWithCollection(c Collection) *EventRepo {
	return &EventRepo{collection: c}
}

func (r *EventRepo) Insert(ctx context.Context, event *entities.BehaviorEvent) (primitive.ObjectID, error) {
	stampEvent(event)

	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert event: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert event: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *EventRepo) InsertMany(ctx context.Context, events []*entities.BehaviorEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(events))
	for _, e := range events {
		stampEvent(e)
		docs = append(docs, e)
	}

	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert events: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *EventRepo) StageCounts(ctx context.Context, dr entities.DateRange, channel entities.Channel) ([]repositories.EventStageCount, error) {
	return aggregate[repositories.EventStageCount](ctx, r.collection, "funnel", funnelPipeline(dr, channel))
}

func (r *EventRepo) TrafficByChannel(ctx context.Context, dr entities.DateRange) ([]repositories.ChannelTraffic, error) {
	return aggregate[repositories.ChannelTraffic](ctx, r.collection, "traffic", trafficPipeline(dr))
}

func (r *EventRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// stampEvent assigns the id and document timestamps the schema layer used to fill in.
func stampEvent(e *entities.BehaviorEvent) {
	now := time.Now().UTC()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	e.CreatedAt = now
	e.UpdatedAt = now
}

var _ repositories.EventRepository = (*EventRepo)(nil)
