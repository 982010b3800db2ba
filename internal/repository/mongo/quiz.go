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
	_ repository.QuizRepository       = (*QuizRepo)(nil)
	_ repository.QuizResultRepository = (*QuizResultRepo)(nil)
)

// QuizRepo persists quizzes.
type QuizRepo struct {
	col *mongo.Collection
}

func (d *DB) Quizzes() *QuizRepo {
	return &QuizRepo{col: d.db.Collection(ColQuizzes)}
}

func (r *QuizRepo) Insert(ctx context.Context, quiz *model.Quiz) error {
	if _, err := r.col.InsertOne(ctx, quiz); err != nil {
		return fmt.Errorf("mongo: inserting quiz: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *QuizRepo) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("quiz", id)
		}
		return nil, fmt.Errorf("mongo: finding quiz %s: %w", id, apperror.Upstream(err))
	}
	return &q, nil
}

func (r *QuizRepo) List(ctx context.Context, filter repository.QuizFilter) ([]model.Quiz, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Company != "" {
		query["company"] = filter.Company
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing quizzes: %w", apperror.Upstream(err))
	}

	var quizzes []model.Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, fmt.Errorf("mongo: decoding quizzes: %w", apperror.Upstream(err))
	}
	return quizzes, nil
}

func (r *QuizRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("mongo: deleting quiz %s: %w", id, apperror.Upstream(err))
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("quiz", id)
	}
	return nil
}

// QuizResultRepo persists graded quiz attempts.
type QuizResultRepo struct {
	col *mongo.Collection
}

func (d *DB) QuizResults() *QuizResultRepo {
	return &QuizResultRepo{col: d.db.Collection(ColQuizResults)}
}

func (r *QuizResultRepo) Insert(ctx context.Context, result *model.QuizResult) error {
	if _, err := r.col.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("mongo: inserting quiz result: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *QuizResultRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo: counting quiz results: %w", apperror.Upstream(err))
	}
	return n, nil
}
