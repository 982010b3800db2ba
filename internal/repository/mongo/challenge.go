package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

var (
	_ repository.ChallengeRepository       = (*ChallengeRepo)(nil)
	_ repository.ChallengeResultRepository = (*ChallengeResultRepo)(nil)
)

// ChallengeRepo persists coding challenges.
type ChallengeRepo struct {
	col *mongo.Collection
}

func (d *DB) Challenges() *ChallengeRepo {
	return &ChallengeRepo{col: d.db.Collection(ColChallenges)}
}

func (r *ChallengeRepo) Insert(ctx context.Context, challenge *model.Challenge) error {
	if _, err := r.col.InsertOne(ctx, challenge); err != nil {
		return fmt.Errorf("mongo: inserting challenge: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *ChallengeRepo) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	var c model.Challenge
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("challenge", id)
		}
		return nil, fmt.Errorf("mongo: finding challenge %s: %w", id, apperror.Upstream(err))
	}
	return &c, nil
}

func (r *ChallengeRepo) List(ctx context.Context, filter repository.ChallengeFilter) ([]model.Challenge, error) {
	query := bson.M{}
	if filter.Company != "" {
		query["company"] = filter.Company
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing challenges: %w", apperror.Upstream(err))
	}

	var challenges []model.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, fmt.Errorf("mongo: decoding challenges: %w", apperror.Upstream(err))
	}
	return challenges, nil
}

func (r *ChallengeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("mongo: deleting challenge %s: %w", id, apperror.Upstream(err))
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("challenge", id)
	}
	return nil
}

// ChallengeResultRepo persists challenge submissions.
type ChallengeResultRepo struct {
	col *mongo.Collection
}

func (d *DB) ChallengeResults() *ChallengeResultRepo {
	return &ChallengeResultRepo{col: d.db.Collection(ColChallengeResults)}
}

func (r *ChallengeResultRepo) Insert(ctx context.Context, result *model.ChallengeResult) error {
	if _, err := r.col.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("mongo: inserting challenge result: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *ChallengeResultRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo: counting challenge results: %w", apperror.Upstream(err))
	}
	return n, nil
}
