package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

var counterFields = map[string]struct{}{
	entities.FieldViewCount:      {},
	entities.FieldAddToCartCount: {},
	entities.FieldPurchaseCount:  {},
}

type ProductRepo struct {
	collection Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return NewProductRepoWithCollection(db.Collection(entities.ProductCollection))
}

func NewProductRepoWithCollection(c Collection) *ProductRepo {
	return &ProductRepo{collection: c}
}

func (r *ProductRepo) CategoryTotals(ctx context.Context) ([]repositories.CategoryTotals, error) {
	return aggregate[repositories.CategoryTotals](ctx, r.collection, "category totals", categoryPipeline())
}

func (r *ProductRepo) TopSellers(ctx context.Context, limit int64) ([]entities.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: entities.FieldPurchaseCount, Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{
			"name":                      1,
			"category":                  1,
			"price":                     1,
			entities.FieldPurchaseCount: 1,
			entities.FieldViewCount:     1,
		})

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("find top sellers: %w", err)
	}

	products := make([]entities.Product, 0, limit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode top sellers: %w", err)
	}
	return products, nil
}

// IncrementCounter bumps one of the product's behavior counters by one.
func (r *ProductRepo) IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) error {
	if _, ok := counterFields[field]; !ok {
		return fmt.Errorf("increment %q: not a counter field", field)
	}

	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	return nil
}

var _ repositories.ProductRepository = (*ProductRepo)(nil)
