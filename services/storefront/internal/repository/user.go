package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

type UserRepo struct {
	collection Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return NewUserRepoWithCollection(db.Collection(entities.UserCollection))
}

func NewUserRepoWithCollection(c Collection) *UserRepo {
	return &UserRepo{collection: c}
}

func (r *UserRepo) SignupCohorts(ctx context.Context) ([]repositories.SignupCohort, error) {
	return aggregate[repositories.SignupCohort](ctx, r.collection, "signup cohorts", signupCohortPipeline())
}

func (r *UserRepo) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

var _ repositories.UserRepository = (*UserRepo)(nil)
