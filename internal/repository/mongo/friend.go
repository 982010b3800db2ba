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

var _ repository.FriendRepository = (*FriendRepo)(nil)

// FriendRepo persists the friend graph. Edges are stored once, directed
// from requester to recipient; queries match either direction with $or.
type FriendRepo struct {
	col *mongo.Collection
}

func (d *DB) Friends() *FriendRepo {
	return &FriendRepo{col: d.db.Collection(ColFriends)}
}

func (r *FriendRepo) Insert(ctx context.Context, friendship *model.Friendship) error {
	if _, err := r.col.InsertOne(ctx, friendship); err != nil {
		return fmt.Errorf("mongo: inserting friendship: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *FriendRepo) FindBetween(ctx context.Context, userA, userB string) (*model.Friendship, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"user_id": userA, "friend_id": userB},
		bson.M{"user_id": userB, "friend_id": userA},
	}}

	var f model.Friendship
	err := r.col.FindOne(ctx, filter).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("friendship", userB)
		}
		return nil, fmt.Errorf("mongo: finding friendship: %w", apperror.Upstream(err))
	}
	return &f, nil
}

func (r *FriendRepo) FindRequest(ctx context.Context, id, recipientID string) (*model.Friendship, error) {
	var f model.Friendship
	err := r.col.FindOne(ctx, bson.M{"id": id, "friend_id": recipientID}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("friend request", id)
		}
		return nil, fmt.Errorf("mongo: finding friend request %s: %w", id, apperror.Upstream(err))
	}
	return &f, nil
}

func (r *FriendRepo) ListAccepted(ctx context.Context, userID string) ([]model.Friendship, error) {
	filter := bson.M{
		"$or":    bson.A{bson.M{"user_id": userID}, bson.M{"friend_id": userID}},
		"status": model.FriendAccepted,
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing friendships: %w", apperror.Upstream(err))
	}

	var friendships []model.Friendship
	if err := cursor.All(ctx, &friendships); err != nil {
		return nil, fmt.Errorf("mongo: decoding friendships: %w", apperror.Upstream(err))
	}
	return friendships, nil
}

func (r *FriendRepo) Accept(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": model.FriendAccepted}},
	)
	if err != nil {
		return fmt.Errorf("mongo: accepting friend request %s: %w", id, apperror.Upstream(err))
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("friend request", id)
	}
	return nil
}

func (r *FriendRepo) DeleteBetween(ctx context.Context, userA, userB string) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"user_id": userA, "friend_id": userB},
		bson.M{"user_id": userB, "friend_id": userA},
	}}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("mongo: deleting friendship: %w", apperror.Upstream(err))
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("friendship", userB)
	}
	return nil
}
