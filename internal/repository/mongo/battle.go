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

var _ repository.BattleRepository = (*BattleRepo)(nil)

// BattleRepo persists coding battles.
type BattleRepo struct {
	col *mongo.Collection
}

func (d *DB) Battles() *BattleRepo {
	return &BattleRepo{col: d.db.Collection(ColBattles)}
}

func (r *BattleRepo) Insert(ctx context.Context, battle *model.Battle) error {
	if _, err := r.col.InsertOne(ctx, battle); err != nil {
		return fmt.Errorf("mongo: inserting battle: %w", apperror.Upstream(err))
	}
	return nil
}

func (r *BattleRepo) FindByID(ctx context.Context, id string) (*model.Battle, error) {
	var b model.Battle
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("battle", id)
		}
		return nil, fmt.Errorf("mongo: finding battle %s: %w", id, apperror.Upstream(err))
	}
	return &b, nil
}

func (r *BattleRepo) ListWaiting(ctx context.Context) ([]model.Battle, error) {
	cursor, err := r.col.Find(ctx, bson.M{"status": model.BattleWaiting})
	if err != nil {
		return nil, fmt.Errorf("mongo: listing waiting battles: %w", apperror.Upstream(err))
	}

	var battles []model.Battle
	if err := cursor.All(ctx, &battles); err != nil {
		return nil, fmt.Errorf("mongo: decoding battles: %w", apperror.Upstream(err))
	}
	return battles, nil
}

func (r *BattleRepo) Update(ctx context.Context, battle *model.Battle) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": battle.ID},
		bson.M{"$set": bson.M{
			"players":   battle.Players,
			"status":    battle.Status,
			"winner_id": battle.WinnerID,
		}},
	)
	if err != nil {
		return fmt.Errorf("mongo: updating battle %s: %w", battle.ID, apperror.Upstream(err))
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("battle", battle.ID)
	}
	return nil
}
