package model

import "time"

// BattleStatus is the lifecycle state of a coding battle.
//
// A battle is created waiting by its first player, becomes active when a
// second player joins, and ends completed once a result is recorded.
// Completion and winner assignment are an extension point: nothing in the
// current API flips a battle past active, but the fields are carried so a
// result recorder can be added without a data migration.
type BattleStatus string

const (
	BattleWaiting   BattleStatus = "waiting"
	BattleActive    BattleStatus = "active"
	BattleCompleted BattleStatus = "completed"
)

// PlayerStatus is the per-player state inside a battle.
type PlayerStatus string

const (
	PlayerWaiting PlayerStatus = "waiting"
	PlayerReady   PlayerStatus = "ready"
	PlayerActive  PlayerStatus = "active"
	PlayerDone    PlayerStatus = "done"
)

// BattlePlayer is one participant in a battle. Name is denormalized from
// the user record at join time so battle listings need no extra lookup.
type BattlePlayer struct {
	UserID string       `json:"userId" bson:"user_id"`
	Name   string       `json:"name"   bson:"name"`
	Status PlayerStatus `json:"status" bson:"status"`
}

// Battle is a head-to-head live coding match over one challenge.
type Battle struct {
	ID          string         `json:"id"                 bson:"id"`
	ChallengeID string         `json:"challengeId"        bson:"challenge_id"`
	Players     []BattlePlayer `json:"players"            bson:"players"`
	Status      BattleStatus   `json:"status"             bson:"status"`
	WinnerID    string         `json:"winnerId,omitempty" bson:"winner_id,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"          bson:"created_at"`
}
