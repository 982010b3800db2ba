package model

import "time"

// InterviewMessage is one turn in a mock interview transcript.
type InterviewMessage struct {
	Role    string `json:"role"    bson:"role"` // "user" or "assistant"
	Content string `json:"content" bson:"content"`
}

// MockInterview is a question/answer session between a user and the
// interviewer backend. Messages are stored in conversation order.
type MockInterview struct {
	ID        string             `json:"id"        bson:"id"`
	UserID    string             `json:"userId"    bson:"user_id"`
	Messages  []InterviewMessage `json:"messages"  bson:"messages"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
