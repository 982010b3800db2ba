package model

import "time"

// FriendshipStatus tracks a friend request through its lifecycle.
type FriendshipStatus string

const (
	FriendPending  FriendshipStatus = "pending"
	FriendAccepted FriendshipStatus = "accepted"
)

// Friendship is an edge in the friend graph, directed from the requester
// (UserID) to the recipient (FriendID). A pair of users has at most one
// edge between them regardless of direction.
type Friendship struct {
	ID        string           `json:"id"        bson:"id"`
	UserID    string           `json:"userId"    bson:"user_id"`
	FriendID  string           `json:"friendId"  bson:"friend_id"`
	Status    FriendshipStatus `json:"status"    bson:"status"`
	CreatedAt time.Time        `json:"createdAt" bson:"created_at"`
}
