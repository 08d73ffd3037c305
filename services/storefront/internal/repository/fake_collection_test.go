package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection serves canned documents and records what it was asked.
type fakeCollection struct {
	docs  []any
	count int64
	err   error

	pipelines []any
	filters   []any
	findOpts  []*options.FindOptions
	inserted  []any
	updates   []any
	updateIDs []any
}

func (f *fakeCollection) cursor() (*mongo.Cursor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return mongo.NewCursorFromDocuments(f.docs, nil, nil)
}

func (f *fakeCollection) Aggregate(_ context.Context, pipeline any, _ ...*options.AggregateOptions) (*mongo.Cursor, error) {
	f.pipelines = append(f.pipelines, pipeline)
	return f.cursor()
}

func (f *fakeCollection) CountDocuments(_ context.Context, filter any, _ ...*options.CountOptions) (int64, error) {
	f.filters = append(f.filters, filter)
	return f.count, f.err
}

func (f *fakeCollection) Find(_ context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.filters = append(f.filters, filter)
	f.findOpts = append(f.findOpts, opts...)
	return f.cursor()
}

func (f *fakeCollection) InsertOne(_ context.Context, document any, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, document)
	return &mongo.InsertOneResult{InsertedID: idOf(document)}, nil
}

func (f *fakeCollection) InsertMany(_ context.Context, documents []any, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]any, 0, len(documents))
	for _, d := range documents {
		f.inserted = append(f.inserted, d)
		ids = append(ids, idOf(d))
	}
	return &mongo.InsertManyResult{InsertedIDs: ids}, nil
}

func (f *fakeCollection) UpdateByID(_ context.Context, id any, update any, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updateIDs = append(f.updateIDs, id)
	f.updates = append(f.updates, update)
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

var errBoom = errors.New("boom")
