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

var _ repository.InterviewRepository = (*InterviewRepo)(nil)

// InterviewRepo persists mock interview transcripts.
type InterviewRepo struct {
	col *mongo.Collection
}

func (d *DB) Interviews() *InterviewRepo {
	return &InterviewRepo{col: d.db.Collection(ColInterviews)}
}

func (r *InterviewRepo) Insert(ctx context.Context, interview *model.MockInterview) error {
	if _, err := r.col.InsertOne(ctx, interview); err != nil {
		return fmt.Errorf("mongo: inserting interview: %w", apperror.Upstream(err))
	}
	return nil
}

// FindByID looks up an interview scoped to its owner. A foreign user's id
// yields NotFound, indistinguishable from a nonexistent interview.
func (r *InterviewRepo) FindByID(ctx context.Context, id, userID string) (*model.MockInterview, error) {
	var iv model.MockInterview
	err := r.col.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&iv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("interview", id)
		}
		return nil, fmt.Errorf("mongo: finding interview %s: %w", id, apperror.Upstream(err))
	}
	return &iv, nil
}

func (r *InterviewRepo) ListByUser(ctx context.Context, userID string) ([]model.MockInterview, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("mongo: listing interviews: %w", apperror.Upstream(err))
	}

	var interviews []model.MockInterview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, fmt.Errorf("mongo: decoding interviews: %w", apperror.Upstream(err))
	}
	return interviews, nil
}

func (r *InterviewRepo) SetMessages(ctx context.Context, id string, messages []model.InterviewMessage) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"messages": messages}},
	)
	if err != nil {
		return fmt.Errorf("mongo: updating interview %s: %w", id, apperror.Upstream(err))
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("interview", id)
	}
	return nil
}
