package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

// BattleService manages head-to-head coding battles. The live relay of
// editor events happens over WebSocket (internal/ws); this service owns
// the battle lifecycle records.
type BattleService struct {
	battles    repository.BattleRepository
	challenges repository.ChallengeRepository
	logger     *slog.Logger
}

func NewBattleService(
	battles repository.BattleRepository,
	challenges repository.ChallengeRepository,
	logger *slog.Logger,
) *BattleService {
	return &BattleService{battles: battles, challenges: challenges, logger: logger}
}

// Create opens a waiting battle over the given challenge with the creator
// as its first player.
func (s *BattleService) Create(ctx context.Context, user *model.User, challengeID string) (*model.Battle, error) {
	if challengeID == "" {
		return nil, apperror.ValidationFailed("challengeId", "must not be empty")
	}
	if _, err := s.challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}

	battle := &model.Battle{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		Players: []model.BattlePlayer{
			{UserID: user.ID, Name: user.Name, Status: model.PlayerWaiting},
		},
		Status:    model.BattleWaiting,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.battles.Insert(ctx, battle); err != nil {
		return nil, err
	}

	s.logger.Info("battle created",
		slog.String("battleID", battle.ID),
		slog.String("challengeID", challengeID),
	)
	return battle, nil
}

// Join adds the user to a waiting battle. The second player flips the
// battle to active; joining a battle past waiting is a conflict, as is
// joining one you are already in.
func (s *BattleService) Join(ctx context.Context, user *model.User, battleID string) (*model.Battle, error) {
	battle, err := s.battles.FindByID(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if battle.Status != model.BattleWaiting {
		return nil, apperror.Conflict("battle already started")
	}
	for _, p := range battle.Players {
		if p.UserID == user.ID {
			return nil, apperror.Conflict("already in this battle")
		}
	}

	battle.Players = append(battle.Players, model.BattlePlayer{
		UserID: user.ID,
		Name:   user.Name,
		Status: model.PlayerReady,
	})
	if len(battle.Players) >= 2 {
		battle.Status = model.BattleActive
	}
	if err := s.battles.Update(ctx, battle); err != nil {
		return nil, err
	}

	s.logger.Info("battle joined",
		slog.String("battleID", battle.ID),
		slog.String("userID", user.ID),
		slog.String("status", string(battle.Status)),
	)
	return battle, nil
}

// Get returns one battle by id.
func (s *BattleService) Get(ctx context.Context, id string) (*model.Battle, error) {
	return s.battles.FindByID(ctx, id)
}

// ListWaiting returns battles still open for a second player.
func (s *BattleService) ListWaiting(ctx context.Context) ([]model.Battle, error) {
	return s.battles.ListWaiting(ctx)
}
