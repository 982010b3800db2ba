package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo persists accounts in the users collection.
type UserRepo struct {
	col *mongo.Collection
}

// Users returns the account repository.
func (d *DB) Users() *UserRepo {
	return &UserRepo{col: d.db.Collection(ColUsers)}
}

// Insert stores a new user. The unique index on email turns a concurrent
// duplicate registration into a clean Conflict instead of a torn write.
func (r *UserRepo) Insert(ctx context.Context, user *model.User) error {
	_, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("email already registered")
		}
		return fmt.Errorf("mongo: inserting user: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"id": id}, id)
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M, key string) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("mongo: finding user: %w", apperror.Upstream(err))
	}
	return &u, nil
}

// IncrementPoints atomically adds delta to the user's points via $inc.
func (r *UserRepo) IncrementPoints(ctx context.Context, id string, delta int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$inc": bson.M{"points": delta}},
	)
	if err != nil {
		return fmt.Errorf("mongo: incrementing points for %s: %w", id, apperror.Upstream(err))
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo: listing users: %w", apperror.Upstream(err))
	}

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo: decoding users: %w", apperror.Upstream(err))
	}
	return users, nil
}

func (r *UserRepo) TopByPoints(ctx context.Context, role model.Role, limit int) ([]model.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing top users: %w", apperror.Upstream(err))
	}

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo: decoding top users: %w", apperror.Upstream(err))
	}
	return users, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("mongo: counting users: %w", apperror.Upstream(err))
	}
	return n, nil
}

// compile-time check that *SessionRepo implements repository.SessionRepository
var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo persists issued-token mirrors for revocation-on-logout.
type SessionRepo struct {
	col *mongo.Collection
}

func (d *DB) Sessions() *SessionRepo {
	return &SessionRepo{col: d.db.Collection(ColSessions)}
}

func (r *SessionRepo) Insert(ctx context.Context, session *model.Session) error {
	if _, err := r.col.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("mongo: inserting session: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *SessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("mongo: deleting sessions for %s: %w", userID, apperror.Upstream(err))
	}
	return nil
}
