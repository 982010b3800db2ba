// Package model defines the data structures used throughout the application.
package model

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User represents a registered account.
//
// The ID is an opaque UUID string generated at registration and never
// changed afterwards. Email is unique across all users; the store enforces
// this with a unique index.
//
// PasswordHash is only present for password-based accounts. Accounts
// created through Google sign-in carry a GoogleID instead and have no
// hash. The json:"-" tag keeps the hash out of every API response, so the
// struct can be encoded directly without a separate sanitizing step.
type User struct {
	ID           string    `json:"id"                   bson:"id"`
	Email        string    `json:"email"                bson:"email"`
	Name         string    `json:"name"                 bson:"name"`
	Role         Role      `json:"role"                 bson:"role"`
	PasswordHash string    `json:"-"                    bson:"password_hash,omitempty"`
	GoogleID     string    `json:"googleId,omitempty"   bson:"google_id,omitempty"`
	ProfilePic   string    `json:"profilePic,omitempty" bson:"profile_pic,omitempty"`
	Level        int       `json:"level"                bson:"level"`
	Points       int       `json:"points"               bson:"points"`
	Badges       []string  `json:"badges"               bson:"badges"`
	CreatedAt    time.Time `json:"createdAt"            bson:"created_at"`
}

// Session mirrors an issued token into the store so that logout can revoke
// it. Tokens are otherwise stateless; this record exists only for the
// cookie-based sign-in flow.
type Session struct {
	ID        string    `json:"id"        bson:"id"`
	Token     string    `json:"-"         bson:"session_token"`
	UserID    string    `json:"userId"    bson:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expires_at"`
}
